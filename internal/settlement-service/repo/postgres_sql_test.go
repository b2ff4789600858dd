package repo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
)

var columns = []string{
	"id", "user_id", "parlay_id", "market_type", "sport", "sport_key", "provider_event_id",
	"home_team", "away_team", "selection", "line", "over_under", "player_id", "player_name", "stat_type",
	"start_time", "odds", "units", "result", "settled_at",
}

func newMockRepo(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(db), mock
}

func TestFindPendingQuery(t *testing.T) {
	p, mock := newMockRepo(t)
	now := time.Date(2025, 11, 2, 22, 0, 0, 0, time.UTC)
	start := now.Add(-4 * time.Hour)

	rows := sqlmock.NewRows(columns).
		AddRow("l1", "u1", "p", "ML", "basketball", "nba", "evt-1",
			"Lakers", "Celtics", "Lakers", nil, nil, nil, nil, nil,
			start, "1.90", "1", "pending", nil).
		AddRow("p", "u1", nil, "Parlay", "", "", nil,
			nil, nil, nil, nil, nil, nil, nil, nil,
			start, "3.61", "1", "pending", nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM wagers WHERE result='pending' AND start_time <= $1") +
		".+" + regexp.QuoteMeta("(provider_event_id IS NOT NULL AND provider_event_id <> '') OR market_type = $2") +
		".+" + regexp.QuoteMeta("ORDER BY parlay_id NULLS LAST, start_time")).
		WithArgs(now, "Parlay").
		WillReturnRows(rows)

	ws, err := p.FindPending(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, ws, 2)
	assert.True(t, ws[0].IsLeg())
	assert.Equal(t, domain.MarketParlay, ws[1].MarketType)
	assert.Empty(t, ws[1].ProviderEventID)
	assert.False(t, ws[1].IsLeg())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPendingQueryError(t *testing.T) {
	p, mock := newMockRepo(t)
	mock.ExpectQuery("FROM wagers").WillReturnError(errors.New("conn reset"))

	_, err := p.FindPending(context.Background(), time.Now())
	assert.ErrorContains(t, err, "find pending wagers")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveResultIsConditional(t *testing.T) {
	at := time.Date(2025, 11, 2, 22, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("UPDATE wagers SET result=$2, settled_at=$3 WHERE id=$1 AND result='pending'")

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"transitioned", 1, true},
		{"already settled", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, mock := newMockRepo(t)
			mock.ExpectExec(query).
				WithArgs("w1", "win", at).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := p.SaveResult(context.Background(), "w1", domain.ResultWin, at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSaveResultError(t *testing.T) {
	p, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE wagers").WillReturnError(errors.New("deadlock"))

	ok, err := p.SaveResult(context.Background(), "w1", domain.ResultLoss, time.Now())
	assert.False(t, ok)
	assert.ErrorContains(t, err, "save result of w1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	p, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM wagers WHERE id=$1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := p.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

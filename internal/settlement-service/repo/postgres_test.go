package repo

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
)

// fakeRow preenche os destinos na ordem de wagerColumns
type fakeRow struct {
	vals []any
	err  error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	if len(dest) != len(f.vals) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.vals[i].(string)
		case *sql.NullString:
			if f.vals[i] == nil {
				*p = sql.NullString{}
			} else {
				*p = sql.NullString{String: f.vals[i].(string), Valid: true}
			}
		case *sql.NullFloat64:
			if f.vals[i] == nil {
				*p = sql.NullFloat64{}
			} else {
				*p = sql.NullFloat64{Float64: f.vals[i].(float64), Valid: true}
			}
		case *sql.NullTime:
			if f.vals[i] == nil {
				*p = sql.NullTime{}
			} else {
				*p = sql.NullTime{Time: f.vals[i].(time.Time), Valid: true}
			}
		case *time.Time:
			*p = f.vals[i].(time.Time)
		case *decimal.Decimal:
			if err := p.Scan(f.vals[i]); err != nil {
				return err
			}
		default:
			return errors.New("unexpected destination type")
		}
	}
	return nil
}

func TestScanWager(t *testing.T) {
	start := time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)
	row := fakeRow{vals: []any{
		"w1", "u1", "p1", "Total", "basketball", "nba", "evt-9",
		"Lakers", "Celtics", nil, 220.5, "Under", nil, nil, nil,
		start, "1.91", "2.5", "pending", nil,
	}}

	w, err := scanWager(row)
	require.NoError(t, err)
	assert.Equal(t, "p1", w.ParlayID)
	assert.True(t, w.IsLeg())
	assert.Equal(t, domain.MarketTotal, w.MarketType)
	assert.Equal(t, "evt-9", w.ProviderEventID)
	assert.Empty(t, w.Selection)
	require.NotNil(t, w.Line)
	assert.Equal(t, 220.5, *w.Line)
	assert.Equal(t, domain.Under, w.OverUnder)
	assert.Equal(t, "1.91", w.Odds.String())
	assert.Equal(t, "2.5", w.Units.String())
	assert.Equal(t, domain.ResultPending, w.Result)
	assert.Nil(t, w.SettledAt)
}

func TestScanWagerSettledWithoutLine(t *testing.T) {
	start := time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)
	settled := start.Add(3 * time.Hour)
	row := fakeRow{vals: []any{
		"w2", "u1", nil, "ML", "basketball", "nba", "evt-9",
		"Lakers", "Celtics", "Lakers", nil, nil, nil, nil, nil,
		start, "2.10", "1", "WIN", settled,
	}}

	w, err := scanWager(row)
	require.NoError(t, err)
	assert.False(t, w.IsLeg())
	assert.Nil(t, w.Line)
	assert.Equal(t, domain.ResultWin, w.Result)
	require.NotNil(t, w.SettledAt)
	assert.Equal(t, settled, *w.SettledAt)
}

func TestScanWagerError(t *testing.T) {
	_, err := scanWager(fakeRow{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/userstats"
)

var ErrNotFound = errors.New("wager not found")

// Postgres implementa a persistência de apostas, auditoria e estatísticas
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgres retorna uma instância do repositório de liquidação
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db, now: time.Now} }

const wagerColumns = `id,user_id,parlay_id,market_type,sport,sport_key,provider_event_id,
	home_team,away_team,selection,line,over_under,player_id,player_name,stat_type,
	start_time,odds,units,result,settled_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWager(s rowScanner) (domain.Wager, error) {
	var (
		w                                        domain.Wager
		parlayID, eventID, home, away, selection sql.NullString
		overUnder, playerID, playerName, stat    sql.NullString
		market, result                           string
		line                                     sql.NullFloat64
		settledAt                                sql.NullTime
	)
	err := s.Scan(
		&w.ID, &w.UserID, &parlayID, &market, &w.Sport, &w.SportKey, &eventID,
		&home, &away, &selection, &line, &overUnder, &playerID, &playerName, &stat,
		&w.StartTime, &w.Odds, &w.Units, &result, &settledAt,
	)
	if err != nil {
		return domain.Wager{}, err
	}

	w.ParlayID = parlayID.String
	w.MarketType = domain.MarketType(market)
	w.ProviderEventID = eventID.String
	w.HomeTeam = home.String
	w.AwayTeam = away.String
	w.Selection = selection.String
	w.OverUnder = overUnder.String
	w.PlayerID = playerID.String
	w.PlayerName = playerName.String
	w.StatType = stat.String
	w.Result = domain.ParseResult(result)
	if line.Valid {
		l := line.Float64
		w.Line = &l
	}
	if settledAt.Valid {
		t := settledAt.Time
		w.SettledAt = &t
	}
	return w, nil
}

func (p *Postgres) queryWagers(ctx context.Context, q string, args ...any) ([]domain.Wager, error) {
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wager: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// FindPending lista apostas pending já iniciadas e com evento do provedor.
// Parlays não têm evento próprio e entram pelo ramo parlay_id IS NULL.
func (p *Postgres) FindPending(ctx context.Context, now time.Time) ([]domain.Wager, error) {
	ws, err := p.queryWagers(ctx, `
		SELECT `+wagerColumns+` FROM wagers
		WHERE result='pending' AND start_time <= $1
		  AND (
		    (provider_event_id IS NOT NULL AND provider_event_id <> '')
		    OR market_type = $2
		  )
		ORDER BY parlay_id NULLS LAST, start_time`,
		now, string(domain.MarketParlay),
	)
	if err != nil {
		return nil, fmt.Errorf("find pending wagers: %w", err)
	}
	return ws, nil
}

// FindByID retorna uma aposta pelo id
func (p *Postgres) FindByID(ctx context.Context, id string) (domain.Wager, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+wagerColumns+` FROM wagers WHERE id=$1`, id)
	w, err := scanWager(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Wager{}, ErrNotFound
	}
	if err != nil {
		return domain.Wager{}, fmt.Errorf("find wager %s: %w", id, err)
	}
	return w, nil
}

// FindLegsByParlayID lista as pernas de uma parlay
func (p *Postgres) FindLegsByParlayID(ctx context.Context, parlayID string) ([]domain.Wager, error) {
	ws, err := p.queryWagers(ctx, `SELECT `+wagerColumns+` FROM wagers WHERE parlay_id=$1 ORDER BY id`, parlayID)
	if err != nil {
		return nil, fmt.Errorf("find legs of %s: %w", parlayID, err)
	}
	return ws, nil
}

// SaveResult grava o resultado só se a aposta ainda estiver pending.
// Retorna false quando outra execução já fez a transição.
func (p *Postgres) SaveResult(ctx context.Context, id string, result domain.Result, at time.Time) (bool, error) {
	res, err := p.db.ExecContext(ctx, `
		UPDATE wagers SET result=$2, settled_at=$3
		WHERE id=$1 AND result='pending'`,
		id, string(result), at,
	)
	if err != nil {
		return false, fmt.Errorf("save result of %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// AppendAudit insere uma entrada no log de auditoria
func (p *Postgres) AppendAudit(ctx context.Context, e AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = p.now()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO wager_audit_log (id,wager_id,user_id,previous,result,reason,source,pass_id,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, e.WagerID, e.UserID, string(e.Previous), string(e.Result), e.Reason, e.Source, e.PassID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit %s: %w", e.WagerID, err)
	}
	return nil
}

// RecomputeUserStats recalcula e grava o agregado do usuário
func (p *Postgres) RecomputeUserStats(ctx context.Context, userID string) (userstats.Stats, error) {
	ws, err := p.queryWagers(ctx, `
		SELECT `+wagerColumns+` FROM wagers
		WHERE user_id=$1 AND parlay_id IS NULL AND result <> 'pending'`, userID)
	if err != nil {
		return userstats.Stats{}, fmt.Errorf("load settled wagers of %s: %w", userID, err)
	}

	st := userstats.Compute(userID, ws, p.now())
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO user_stats (user_id,wins,losses,pushes,voids,win_rate,units_wagered,net_profit,roi,current_streak,longest_win_streak,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (user_id) DO UPDATE SET
			wins=EXCLUDED.wins, losses=EXCLUDED.losses, pushes=EXCLUDED.pushes, voids=EXCLUDED.voids,
			win_rate=EXCLUDED.win_rate, units_wagered=EXCLUDED.units_wagered,
			net_profit=EXCLUDED.net_profit, roi=EXCLUDED.roi,
			current_streak=EXCLUDED.current_streak, longest_win_streak=EXCLUDED.longest_win_streak,
			updated_at=EXCLUDED.updated_at`,
		st.UserID, st.Wins, st.Losses, st.Pushes, st.Voids, st.WinRate, st.UnitsWagered,
		st.NetProfit, st.ROI, st.CurrentStreak, st.LongestWinStreak, st.UpdatedAt,
	)
	if err != nil {
		return userstats.Stats{}, fmt.Errorf("upsert user stats %s: %w", userID, err)
	}
	return st, nil
}

// Ping verifica a conexão (usado no /healthz)
func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

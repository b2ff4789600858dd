package resolver

import (
	"context"
	"strings"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/season"
)

// StatFeed é o contrato dos endpoints de estatística de jogador
type StatFeed interface {
	FetchPlayerStatsByWeek(ctx context.Context, sportPath string, season int, segment string, week int, playerID string) ([]byte, error)
	FetchPlayerStatsByDate(ctx context.Context, sportPath, date, playerID string) ([]byte, error)
	FetchGradedPropsByDate(ctx context.Context, sportPath, date, playerID string) ([]byte, error)
}

// Lookup define como cada esporte consulta estatísticas no provedor
type Lookup int

const (
	LookupByDate Lookup = iota // roster por data, com fallback por jogador
	LookupByWeek               // endpoint por jogador e semana
	LookupGraded               // props avaliados por data e jogador
)

// feedZone é o fuso em que o provedor data os jogos
var feedZone = mustZone("America/New_York")

func mustZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("ET", -5*3600)
	}
	return loc
}

// GameDate formata a data do jogo como o provedor de estatísticas espera
func GameDate(t time.Time) string { return t.In(feedZone).Format("2006-01-02") }

// StatResolver busca e normaliza estatísticas de um jogador num jogo
type StatResolver struct {
	Feed    StatFeed
	Log     *zap.Logger
	Lookups map[string]Lookup // por path de estatística; ausente = LookupByDate
}

func NewStatResolver(feed StatFeed, log *zap.Logger) *StatResolver {
	return &StatResolver{
		Feed: feed,
		Log:  log,
		Lookups: map[string]Lookup{
			"nfl": LookupByWeek,
			"mlb": LookupGraded,
		},
	}
}

// PlayerStats retorna as estatísticas do jogador na data do jogo, ou nil quando
// nada está disponível. Falhas de transporte são registradas e engolidas.
func (r *StatResolver) PlayerStats(ctx context.Context, playerID, sportPath string, gameTime time.Time, providerEventID string) *domain.StatRecord {
	date := GameDate(gameTime)
	log := r.Log.With(
		zap.String("sport", sportPath),
		zap.String("playerId", playerID),
		zap.String("date", date),
	)

	switch r.Lookups[sportPath] {
	case LookupByWeek:
		return r.byWeek(ctx, log, playerID, sportPath, gameTime, date)
	case LookupGraded:
		return r.graded(ctx, log, playerID, sportPath, date)
	default:
		return r.byDate(ctx, log, playerID, sportPath, date, providerEventID)
	}
}

func (r *StatResolver) byWeek(ctx context.Context, log *zap.Logger, playerID, sportPath string, gameTime time.Time, date string) *domain.StatRecord {
	wk := season.Info(gameTime.In(feedZone))
	raw, err := r.Feed.FetchPlayerStatsByWeek(ctx, sportPath, wk.Season, string(wk.Segment), wk.Week, playerID)
	if err != nil {
		log.Warn("stats by week fetch failed", zap.String("week", wk.String()), zap.Error(err))
		return nil
	}
	entries, ok := decodeEntries(raw)
	if !ok {
		log.Warn("stats by week decode failed", zap.String("week", wk.String()))
		return nil
	}
	for _, e := range entries {
		if strings.HasPrefix(firstString(e, "Day", "Date", "GameDate"), date) {
			return &domain.StatRecord{Values: flatten(e)}
		}
	}
	log.Debug("no game entry for date", zap.String("week", wk.String()))
	return nil
}

func (r *StatResolver) graded(ctx context.Context, log *zap.Logger, playerID, sportPath, date string) *domain.StatRecord {
	raw, err := r.Feed.FetchGradedPropsByDate(ctx, sportPath, date, playerID)
	if err != nil {
		log.Warn("graded props fetch failed", zap.Error(err))
		return nil
	}
	entries, ok := decodeEntries(raw)
	if !ok {
		log.Warn("graded props decode failed")
		return nil
	}

	var props []domain.GradedProp
	for _, e := range entries {
		if id := asString(e["PlayerID"]); id != "" && id != playerID {
			continue
		}
		name := firstString(e, "Description", "Name", "Stat")
		if name == "" {
			continue
		}
		p := domain.GradedProp{Name: name}
		for _, k := range []string{"ResultValue", "Result", "Value", "Actual"} {
			if f, ok := asFloat(e[k]); ok {
				p.Value = &f
				break
			}
		}
		props = append(props, p)
	}
	if len(props) == 0 {
		return nil
	}
	return &domain.StatRecord{Props: props}
}

func (r *StatResolver) byDate(ctx context.Context, log *zap.Logger, playerID, sportPath, date, providerEventID string) *domain.StatRecord {
	raw, err := r.Feed.FetchPlayerStatsByDate(ctx, sportPath, date, "")
	if err == nil {
		if rec := pickPlayer(raw, playerID, providerEventID, true); rec != nil {
			return rec
		}
		log.Debug("player not in roster, trying player endpoint")
	} else {
		log.Warn("stats by date fetch failed", zap.Error(err))
	}

	raw, err = r.Feed.FetchPlayerStatsByDate(ctx, sportPath, date, playerID)
	if err != nil {
		log.Warn("stats by player fetch failed", zap.Error(err))
		return nil
	}
	return pickPlayer(raw, playerID, providerEventID, false)
}

// pickPlayer filtra o roster pelo jogador. Com strict, a entrada precisa ter o
// PlayerID pedido; sem strict (endpoint já filtrado) entradas sem PlayerID são aceitas.
// Em jogos duplos prefere a entrada do evento informado.
func pickPlayer(raw []byte, playerID, providerEventID string, strict bool) *domain.StatRecord {
	entries, ok := decodeEntries(raw)
	if !ok {
		return nil
	}
	var found map[string]any
	for _, e := range entries {
		id := asString(e["PlayerID"])
		if id != playerID && (strict || id != "") {
			continue
		}
		if found == nil {
			found = e
		}
		if providerEventID != "" && firstString(e, "GameKey", "GameID", "GlobalGameID") == providerEventID {
			found = e
			break
		}
	}
	if found == nil {
		return nil
	}
	return &domain.StatRecord{Values: flatten(found)}
}

package resolver

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
)

// ScoreFeed é o contrato do feed de placar: JSON bruto por esporte e janela de dias
type ScoreFeed interface {
	FetchScores(ctx context.Context, sportPath string, daysFrom int) ([]byte, error)
}

// scoreEvent é o formato de um jogo no feed de placar
type scoreEvent struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Scores    []struct {
		Name  string          `json:"name"`
		Score json.RawMessage `json:"score"`
	} `json:"scores"`
	HomeScore json.RawMessage `json:"home_score"`
	AwayScore json.RawMessage `json:"away_score"`
}

// ScoreResolver busca e normaliza o placar de um evento
type ScoreResolver struct {
	Feed     ScoreFeed
	DaysFrom int
	Log      *zap.Logger
}

func NewScoreResolver(feed ScoreFeed, daysFrom int, log *zap.Logger) *ScoreResolver {
	if daysFrom <= 0 {
		daysFrom = 3
	}
	return &ScoreResolver{Feed: feed, DaysFrom: daysFrom, Log: log}
}

// GameScore retorna o placar do evento ou nil quando não há dado (evento fora do feed,
// esporte desconhecido ou falha de transporte). Nunca devolve erro.
func (r *ScoreResolver) GameScore(ctx context.Context, providerEventID, sportKey string) *domain.Score {
	sp, ok := LookupSport(sportKey)
	if !ok {
		r.Log.Warn("unknown sport key for score feed", zap.String("sportKey", sportKey))
		return nil
	}

	raw, err := r.Feed.FetchScores(ctx, sp.Scores, r.DaysFrom)
	if err != nil {
		r.Log.Warn("score feed fetch failed", zap.String("sport", sp.Scores), zap.Error(err))
		return nil
	}

	var events []scoreEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		r.Log.Warn("score feed decode failed", zap.String("sport", sp.Scores), zap.Error(err))
		return nil
	}

	for i := range events {
		if events[i].ID == providerEventID {
			return normalizeScore(&events[i])
		}
	}
	return nil
}

func normalizeScore(ev *scoreEvent) *domain.Score {
	out := &domain.Score{
		Completed: ev.Completed,
		HomeTeam:  ev.HomeTeam,
		AwayTeam:  ev.AwayTeam,
	}
	if !ev.Completed {
		return out
	}

	// primeiro nomes exatos, depois por substring para absorver abreviações
	for _, exact := range []bool{true, false} {
		for _, s := range ev.Scores {
			match := domain.TeamMatches
			if exact {
				match = domain.TeamEquals
			}
			isHome, isAway := match(s.Name, ev.HomeTeam), match(s.Name, ev.AwayTeam)
			switch {
			case isHome && !isAway && out.HomeScore == nil:
				out.HomeScore = flexInt(s.Score)
			case isAway && !isHome && out.AwayScore == nil:
				out.AwayScore = flexInt(s.Score)
			}
		}
	}

	if out.HomeScore == nil {
		out.HomeScore = flexInt(ev.HomeScore)
	}
	if out.AwayScore == nil {
		out.AwayScore = flexInt(ev.AwayScore)
	}
	return out
}

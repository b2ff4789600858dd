package engine

import (
	"context"
	"strings"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/resolver"
)

// completedScore busca o placar e devolve uma decisão quando não dá para liquidar
func (e *Engine) completedScore(ctx context.Context, w *domain.Wager) (*domain.Score, *Decision) {
	if _, ok := resolver.LookupSport(sportKey(w)); !ok {
		d := void("unknown sport for score feed")
		return nil, &d
	}
	sc := e.scores.GameScore(ctx, w.ProviderEventID, sportKey(w))
	if sc == nil {
		d := pending("score not available")
		return nil, &d
	}
	if !sc.Completed {
		d := pending("game not completed")
		return nil, &d
	}
	if sc.HomeScore == nil || sc.AwayScore == nil {
		d := void("completed game missing score")
		return nil, &d
	}
	return sc, nil
}

// selectedSide casa a seleção com os times da aposta, ou do feed quando a aposta não os tem
func selectedSide(w *domain.Wager, sc *domain.Score) domain.Side {
	home, away := w.HomeTeam, w.AwayTeam
	if home == "" {
		home = sc.HomeTeam
	}
	if away == "" {
		away = sc.AwayTeam
	}
	return domain.MatchSide(w.Selection, home, away)
}

// differential retorna placar próprio menos o do adversário para o lado escolhido
func differential(side domain.Side, sc *domain.Score) int {
	if side == domain.SideHome {
		return *sc.HomeScore - *sc.AwayScore
	}
	return *sc.AwayScore - *sc.HomeScore
}

func (e *Engine) settleMoneyline(ctx context.Context, w *domain.Wager) Decision {
	sc, d := e.completedScore(ctx, w)
	if d != nil {
		return *d
	}
	side := selectedSide(w, sc)
	if side == domain.SideNone {
		return void("selection matches neither team")
	}
	switch diff := differential(side, sc); {
	case diff > 0:
		return decided(domain.ResultWin)
	case diff < 0:
		return decided(domain.ResultLoss)
	}
	return decided(domain.ResultPush)
}

// settleSpread compara a diferença de pontos do lado escolhido com a linha.
// Line é a margem que o lado escolhido precisa superar: favorito de -3 grava
// line=3 e azarão de +3 grava line=-3 (sinal invertido em relação à cotação).
func (e *Engine) settleSpread(ctx context.Context, w *domain.Wager) Decision {
	if w.Line == nil {
		return void("spread without line")
	}
	sc, d := e.completedScore(ctx, w)
	if d != nil {
		return *d
	}
	side := selectedSide(w, sc)
	if side == domain.SideNone {
		return void("selection matches neither team")
	}
	diff := float64(differential(side, sc))
	switch line := *w.Line; {
	case diff > line:
		return decided(domain.ResultWin)
	case diff < line:
		return decided(domain.ResultLoss)
	}
	return decided(domain.ResultPush)
}

func (e *Engine) settleTotal(ctx context.Context, w *domain.Wager) Decision {
	if w.Line == nil {
		return void("total without line")
	}
	side, ok := parseSide(w.OverUnder)
	if !ok {
		return void("total without over/under")
	}
	sc, d := e.completedScore(ctx, w)
	if d != nil {
		return *d
	}
	total := float64(*sc.HomeScore + *sc.AwayScore)
	return decided(compareLine(total, *w.Line, side))
}

// parseSide normaliza Over/Under
func parseSide(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "over", "o":
		return domain.Over, true
	case "under", "u":
		return domain.Under, true
	}
	return "", false
}

// compareLine aplica a regra de Over/Under; igualdade com a linha é push nos dois lados
func compareLine(actual, line float64, side string) domain.Result {
	if actual == line {
		return domain.ResultPush
	}
	over := actual > line
	if side == domain.Under {
		over = !over
	}
	if over {
		return domain.ResultWin
	}
	return domain.ResultLoss
}

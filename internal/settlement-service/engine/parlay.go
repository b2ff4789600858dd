package engine

import (
	"context"
	"fmt"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
)

// settleParlay combina as pernas: qualquer pending segura a parlay; qualquer
// loss perde; push ou void sem loss anula a parlay inteira; só win em todas ganha.
func (e *Engine) settleParlay(ctx context.Context, w *domain.Wager, depth int) (Decision, error) {
	if depth >= maxParlayDepth {
		return void("parlay nested too deep"), nil
	}

	legs, err := e.legs.FindLegsByParlayID(ctx, w.ID)
	if err != nil {
		return Decision{}, fmt.Errorf("find legs of parlay %s: %w", w.ID, err)
	}
	if len(legs) == 0 {
		return void("parlay has no legs"), nil
	}

	results := make([]domain.Result, 0, len(legs))
	for i := range legs {
		leg := &legs[i]
		if leg.Settled() {
			results = append(results, leg.Result)
			continue
		}
		d, err := e.settle(ctx, leg, depth+1)
		if err != nil {
			return Decision{}, err
		}
		results = append(results, d.Result)
	}
	return CombineLegs(results), nil
}

// CombineLegs aplica as regras de parlay sobre os resultados das pernas
func CombineLegs(results []domain.Result) Decision {
	if len(results) == 0 {
		return void("parlay has no legs")
	}

	var loss, degraded bool
	for _, r := range results {
		switch r {
		case domain.ResultPending:
			return pending("leg pending")
		case domain.ResultLoss:
			loss = true
		case domain.ResultPush, domain.ResultVoid:
			degraded = true
		}
	}

	switch {
	case loss:
		return decided(domain.ResultLoss)
	case degraded:
		return void("leg pushed or voided")
	}
	return decided(domain.ResultWin)
}

// Package engine decide o resultado de uma aposta (win/loss/push/void/pending)
// a partir do mercado registrado e dos dados resolvidos dos feeds.
//
// Regra geral: dado ambíguo ou incompleto resulta em void; dado ausente ou
// evento ainda não concluído resulta em pending. Nunca se chuta win/loss.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
)

// ScoreSource resolve o placar de um evento; nil = sem dado ainda
type ScoreSource interface {
	GameScore(ctx context.Context, providerEventID, sportKey string) *domain.Score
}

// StatSource resolve as estatísticas de um jogador; nil = sem dado ainda
type StatSource interface {
	PlayerStats(ctx context.Context, playerID, sportPath string, gameTime time.Time, providerEventID string) *domain.StatRecord
}

// LegStore lista as pernas de uma parlay
type LegStore interface {
	FindLegsByParlayID(ctx context.Context, parlayID string) ([]domain.Wager, error)
}

// Decision é o resultado calculado com o motivo (usado em logs e auditoria)
type Decision struct {
	Result domain.Result `json:"result"`
	Reason string        `json:"reason,omitempty"`
}

func pending(reason string) Decision { return Decision{Result: domain.ResultPending, Reason: reason} }
func void(reason string) Decision    { return Decision{Result: domain.ResultVoid, Reason: reason} }
func decided(r domain.Result) Decision {
	return Decision{Result: r}
}

// maxParlayDepth limita parlays aninhadas
const maxParlayDepth = 2

// Engine é a função de decisão; não tem efeitos colaterais além das leituras
type Engine struct {
	scores ScoreSource
	stats  StatSource
	legs   LegStore
	log    *zap.Logger
}

func New(scores ScoreSource, stats StatSource, legs LegStore, log *zap.Logger) *Engine {
	return &Engine{scores: scores, stats: stats, legs: legs, log: log}
}

// Settle calcula o resultado de uma aposta.
// O erro só aparece em falha de colaborador que não seja "sem dado" (ex: leitura das pernas).
func (e *Engine) Settle(ctx context.Context, w *domain.Wager) (Decision, error) {
	d, err := e.settle(ctx, w, 0)
	if err != nil {
		return pending("error"), err
	}

	fields := []zap.Field{
		zap.String("wagerId", w.ID),
		zap.String("market", string(w.MarketType)),
		zap.String("result", string(d.Result)),
	}
	switch d.Result {
	case domain.ResultVoid:
		e.log.Warn("wager voided", append(fields, zap.String("reason", d.Reason))...)
	case domain.ResultPending:
		e.log.Debug("wager still pending", append(fields, zap.String("reason", d.Reason))...)
	}
	return d, nil
}

func (e *Engine) settle(ctx context.Context, w *domain.Wager, depth int) (Decision, error) {
	if w.Settled() {
		return Decision{Result: w.Result, Reason: "already settled"}, nil
	}

	if w.MarketType == domain.MarketParlay {
		return e.settleParlay(ctx, w, depth)
	}

	if w.ProviderEventID == "" || w.Sport == "" {
		return void("missing provider linkage"), nil
	}

	switch w.MarketType {
	case domain.MarketML:
		return e.settleMoneyline(ctx, w), nil
	case domain.MarketSpread:
		return e.settleSpread(ctx, w), nil
	case domain.MarketTotal:
		return e.settleTotal(ctx, w), nil
	case domain.MarketPlayerProp:
		return e.settleProp(ctx, w), nil
	}
	return void(fmt.Sprintf("unknown market type %q", w.MarketType)), nil
}

// sportKey prefere o código neutro e cai para o nome do esporte
func sportKey(w *domain.Wager) string {
	if w.SportKey != "" {
		return w.SportKey
	}
	return w.Sport
}

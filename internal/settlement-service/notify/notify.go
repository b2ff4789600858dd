// Package notify publica as liquidações para o resto da plataforma.
// As falhas são só logadas por quem chama; nunca afetam o resultado gravado.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/odds"
	"github.com/radieske/bet-settlement-engine/pkg/contracts/events"
)

// Notifier recebe cada aposta logo após a transição para resultado terminal
type Notifier interface {
	OnSettled(ctx context.Context, w domain.Wager, passID string) error
}

// NewEvent monta o evento de contrato a partir da aposta liquidada
func NewEvent(w domain.Wager, passID string) events.BetSettled {
	at := time.Now().UTC()
	if w.SettledAt != nil {
		at = *w.SettledAt
	}
	return events.BetSettled{
		WagerID:    w.ID,
		UserID:     w.UserID,
		ParlayID:   w.ParlayID,
		MarketType: string(w.MarketType),
		Sport:      w.Sport,
		Result:     string(w.Result),
		Units:      w.Units.String(),
		Odds:       w.Odds.String(),
		Profit:     odds.Profit(w.Result, w.Units, w.Odds).String(),
		PassID:     passID,
		SettledAt:  at,
	}
}

// Multi repassa para vários notifiers e junta os erros
type Multi []Notifier

func (m Multi) OnSettled(ctx context.Context, w domain.Wager, passID string) error {
	var errs []error
	for _, n := range m {
		if err := n.OnSettled(ctx, w, passID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop descarta as notificações (testes e execução sem broker)
type Nop struct{}

func (Nop) OnSettled(context.Context, domain.Wager, string) error { return nil }

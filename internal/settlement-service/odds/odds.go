package odds

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
)

var (
	// MinOdds é a menor odd decimal aceita
	MinOdds = decimal.RequireFromString("1.01")

	ErrOddsTooLow   = errors.New("odds below minimum")
	ErrInvalidUnits = errors.New("units must be positive")
)

// Validate confere os limites de odd e stake de uma aposta
func Validate(o, units decimal.Decimal) error {
	if o.LessThan(MinOdds) {
		return fmt.Errorf("%w: %s", ErrOddsTooLow, o)
	}
	if !units.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidUnits, units)
	}
	return nil
}

// Profit retorna o lucro em unidades para um resultado:
// win = units*(odds-1), loss = -units, push/void/pending = 0
func Profit(r domain.Result, units, o decimal.Decimal) decimal.Decimal {
	switch r {
	case domain.ResultWin:
		return units.Mul(o.Sub(decimal.NewFromInt(1)))
	case domain.ResultLoss:
		return units.Neg()
	default:
		return decimal.Zero
	}
}

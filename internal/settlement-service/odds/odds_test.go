package odds_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/odds"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProfit(t *testing.T) {
	tests := []struct {
		name   string
		result domain.Result
		units  string
		odds   string
		want   string
	}{
		{"win pays units times odds minus one", domain.ResultWin, "2", "1.91", "1.82"},
		{"loss costs the stake", domain.ResultLoss, "2", "1.91", "-2"},
		{"push returns stake", domain.ResultPush, "2", "1.91", "0"},
		{"void returns stake", domain.ResultVoid, "2", "3.5", "0"},
		{"pending has no profit", domain.ResultPending, "1", "2", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := odds.Profit(tt.result, d(tt.units), d(tt.odds))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, odds.Validate(d("1.01"), d("0.5")))
	assert.ErrorIs(t, odds.Validate(d("1.00"), d("1")), odds.ErrOddsTooLow)
	assert.ErrorIs(t, odds.Validate(d("2"), d("0")), odds.ErrInvalidUnits)
}

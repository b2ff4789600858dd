// Package userstats agrega o histórico liquidado de um usuário
// (win rate, lucro, ROI e sequências).
package userstats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/odds"
)

// Stats é o agregado persistido em user_stats
type Stats struct {
	UserID string `json:"userId"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Pushes int `json:"pushes"`
	Voids  int `json:"voids"`

	// Invalid conta apostas liquidadas com odds ou unidades fora dos limites
	// de odds.Validate; elas ficam fora de todos os outros campos.
	Invalid int `json:"invalid"`

	WinRate      decimal.Decimal `json:"winRate"`      // wins / (wins+losses)
	UnitsWagered decimal.Decimal `json:"unitsWagered"` // só apostas com win/loss
	NetProfit    decimal.Decimal `json:"netProfit"`
	ROI          decimal.Decimal `json:"roi"` // netProfit / unitsWagered

	CurrentStreak    int `json:"currentStreak"` // +n vitórias seguidas, -n derrotas
	LongestWinStreak int `json:"longestWinStreak"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Compute calcula as estatísticas a partir das apostas do usuário.
// Apostas pending e pernas de parlay são ignoradas; push/void não quebram sequência.
// Apostas com odds/unidades inválidas só entram em Invalid.
func Compute(userID string, wagers []domain.Wager, now time.Time) Stats {
	st := Stats{
		UserID:       userID,
		WinRate:      decimal.Zero,
		UnitsWagered: decimal.Zero,
		NetProfit:    decimal.Zero,
		ROI:          decimal.Zero,
		UpdatedAt:    now,
	}

	settled := make([]domain.Wager, 0, len(wagers))
	for _, w := range wagers {
		if w.IsLeg() || !w.Settled() {
			continue
		}
		if odds.Validate(w.Odds, w.Units) != nil {
			st.Invalid++
			continue
		}
		settled = append(settled, w)
	}
	sort.SliceStable(settled, func(i, j int) bool {
		return settledAt(settled[i]).Before(settledAt(settled[j]))
	})

	var run int
	for _, w := range settled {
		switch w.Result {
		case domain.ResultWin:
			st.Wins++
			if run < 0 {
				run = 0
			}
			run++
			if run > st.LongestWinStreak {
				st.LongestWinStreak = run
			}
		case domain.ResultLoss:
			st.Losses++
			if run > 0 {
				run = 0
			}
			run--
		case domain.ResultPush:
			st.Pushes++
			continue
		case domain.ResultVoid:
			st.Voids++
			continue
		}
		st.UnitsWagered = st.UnitsWagered.Add(w.Units)
		st.NetProfit = st.NetProfit.Add(odds.Profit(w.Result, w.Units, w.Odds))
	}
	st.CurrentStreak = run

	if graded := st.Wins + st.Losses; graded > 0 {
		st.WinRate = decimal.NewFromInt(int64(st.Wins)).DivRound(decimal.NewFromInt(int64(graded)), 4)
	}
	if st.UnitsWagered.IsPositive() {
		st.ROI = st.NetProfit.DivRound(st.UnitsWagered, 4)
	}
	return st
}

func settledAt(w domain.Wager) time.Time {
	if w.SettledAt != nil {
		return *w.SettledAt
	}
	return w.StartTime
}

package events

import "time"

// Evento publicado no tópico "bet_settled" quando uma aposta atinge resultado terminal
type BetSettled struct {
	WagerID    string    `json:"wager_id"`
	UserID     string    `json:"user_id"`
	ParlayID   string    `json:"parlay_id,omitempty"`
	MarketType string    `json:"market_type"`
	Sport      string    `json:"sport"`
	Result     string    `json:"result"` // win | loss | push | void
	Units      string    `json:"units"`
	Odds       string    `json:"odds"`
	Profit     string    `json:"profit"` // em unidades, decimal como string
	PassID     string    `json:"pass_id"`
	SettledAt  time.Time `json:"settled_at"`
}

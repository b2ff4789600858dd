package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MarketType identifica o mercado registrado na aposta
type MarketType string

const (
	MarketML         MarketType = "ML"
	MarketSpread     MarketType = "Spread"
	MarketTotal      MarketType = "Total"
	MarketPlayerProp MarketType = "PlayerProp"
	MarketParlay     MarketType = "Parlay"
)

// Result é o resultado de liquidação de uma aposta.
// Qualquer valor diferente de pending é terminal.
type Result string

const (
	ResultPending Result = "pending"
	ResultWin     Result = "win"
	ResultLoss    Result = "loss"
	ResultPush    Result = "push"
	ResultVoid    Result = "void"
)

// Terminal indica se o resultado não pode mais ser alterado pela liquidação
func (r Result) Terminal() bool {
	switch r {
	case ResultWin, ResultLoss, ResultPush, ResultVoid:
		return true
	}
	return false
}

// ParseResult converte o valor persistido; desconhecidos viram pending
func ParseResult(s string) Result {
	switch r := Result(strings.ToLower(s)); r {
	case ResultWin, ResultLoss, ResultPush, ResultVoid:
		return r
	}
	return ResultPending
}

const (
	Over  = "Over"
	Under = "Under"
)

// Wager é a aposta persistida externamente, lida e atualizada pela liquidação.
// Campos opcionais usam ponteiros ou string vazia.
type Wager struct {
	ID       string
	UserID   string
	ParlayID string // preenchido nas pernas de parlay, aponta para a aposta pai

	MarketType      MarketType
	Sport           string
	SportKey        string // código neutro do esporte, ex: "nfl", "nba"
	ProviderEventID string

	HomeTeam  string
	AwayTeam  string
	Selection string // time escolhido em ML/Spread

	Line      *float64
	OverUnder string // Over | Under

	PlayerID   string
	PlayerName string
	StatType   string // descrição livre do prop, ex: "Rushing Yards"

	StartTime time.Time
	Odds      decimal.Decimal // decimal, >= 1.01
	Units     decimal.Decimal // stake, > 0

	Result    Result
	SettledAt *time.Time
}

// IsLeg indica se a aposta é perna de uma parlay
func (w *Wager) IsLeg() bool { return w.ParlayID != "" }

// Settled indica se a aposta já tem resultado terminal
func (w *Wager) Settled() bool { return w.Result.Terminal() }

// Score é o placar normalizado de um evento (efêmero).
// Completed=true com um dos placares ausente é um estado legítimo do feed.
type Score struct {
	Completed bool
	HomeScore *int
	AwayScore *int
	HomeTeam  string // nomes do feed, usados só como fallback
	AwayTeam  string
}

// GradedProp é um prop já avaliado pelo provedor; Value nil = ainda não avaliado
type GradedProp struct {
	Name  string
	Value *float64
}

// StatRecord é a estatística normalizada de um jogador para um jogo
type StatRecord struct {
	Values map[string]float64
	Props  []GradedProp
}

// HasProps indica que o provedor devolveu props avaliados em vez de boxscore
func (s *StatRecord) HasProps() bool { return s != nil && len(s.Props) > 0 }

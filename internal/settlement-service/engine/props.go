package engine

import (
	"context"
	"strings"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/resolver"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/statmap"
)

// derivedStat é um rótulo calculado a partir de vários campos do provedor
type derivedStat struct {
	sport     string
	fields    []string
	indicator bool // soma > 0 vira 1, senão 0
	partial   bool // campos ausentes contam como zero, desde que algum exista
}

var (
	pra = derivedStat{sport: "nba", fields: []string{"Points", "Rebounds", "Assists"}}
	td  = derivedStat{
		sport:     "nfl",
		fields:    []string{"RushingTouchdowns", "ReceivingTouchdowns", "FumbleReturnTouchdowns"},
		indicator: true,
		partial:   true,
	}
)

var derivedStats = map[string]derivedStat{
	"Points + Rebounds + Assists (PRA)": pra,
	"Points+Rebounds+Assists":           pra,
	"Anytime TD Scorer":                 td,
}

func (d derivedStat) value(values map[string]float64) (float64, bool) {
	var sum float64
	var seen int
	for _, f := range d.fields {
		v, ok := values[f]
		if !ok {
			if !d.partial {
				return 0, false
			}
			continue
		}
		sum += v
		seen++
	}
	if seen == 0 {
		return 0, false
	}
	if d.indicator {
		if sum > 0 {
			return 1, true
		}
		return 0, true
	}
	return sum, true
}

func (e *Engine) settleProp(ctx context.Context, w *domain.Wager) Decision {
	side, sideOK := parseSide(w.OverUnder)
	if w.PlayerID == "" || w.StatType == "" || w.Line == nil || !sideOK {
		return void("prop missing required fields")
	}
	sp, ok := resolver.LookupSport(sportKey(w))
	if !ok {
		return void("unknown sport for stats feed")
	}

	rec := e.stats.PlayerStats(ctx, w.PlayerID, sp.Stats, w.StartTime, w.ProviderEventID)
	if rec == nil {
		return pending("player stats not available")
	}

	if rec.HasProps() {
		return gradedProp(rec, w, sp.Key, side)
	}

	actual, d := statValue(rec, w.StatType, sp.Key)
	if d != nil {
		return *d
	}
	return decided(compareLine(actual, *w.Line, side))
}

// gradedProp liquida com o valor já avaliado pelo provedor
func gradedProp(rec *domain.StatRecord, w *domain.Wager, sport, side string) Decision {
	field, ok := statmap.Field(w.StatType, sport)
	if !ok {
		return void("unmapped stat type")
	}
	label := strings.TrimSpace(w.StatType)
	for _, p := range rec.Props {
		if !strings.EqualFold(p.Name, field) && !strings.EqualFold(p.Name, label) {
			continue
		}
		if p.Value == nil {
			return pending("prop not graded yet")
		}
		return decided(compareLine(*p.Value, *w.Line, side))
	}
	return void("graded prop not found")
}

// statValue lê o valor do boxscore, aplicando os rótulos derivados antes da tabela
func statValue(rec *domain.StatRecord, label, sport string) (float64, *Decision) {
	if ds, ok := derivedStats[strings.TrimSpace(label)]; ok && ds.sport == sport {
		v, ok := ds.value(rec.Values)
		if !ok {
			d := void("derived stat components missing")
			return 0, &d
		}
		return v, nil
	}

	field, ok := statmap.Field(label, sport)
	if !ok {
		d := void("unmapped stat type")
		return 0, &d
	}
	v, ok := rec.Values[field]
	if !ok {
		d := void("stat missing from record")
		return 0, &d
	}
	return v, nil
}

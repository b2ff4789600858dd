// Package season projeta uma data de calendário em (temporada, segmento, semana)
// para feeds que exigem consultas indexadas por semana (NFL).
//
// Não existe um calendário oficial por trás: as semanas saem de aritmética de
// calendário com âncoras fixas e são limitadas ao intervalo válido de cada segmento.
package season

import (
	"fmt"
	"time"
)

type Segment string

const (
	Pre  Segment = "PRE"
	Reg  Segment = "REG"
	Post Segment = "POST"
)

const (
	maxPreWeeks  = 4
	maxRegWeeks  = 18
	maxPostWeeks = 5
)

// Week identifica a semana de uma temporada
type Week struct {
	Season  int
	Segment Segment
	Week    int
}

// Key retorna a chave de temporada usada pelo provedor, ex: "2025REG"
func (w Week) Key() string { return fmt.Sprintf("%d%s", w.Season, w.Segment) }

func (w Week) String() string { return fmt.Sprintf("%s/%d", w.Key(), w.Week) }

// Info mapeia uma data para a semana da temporada.
// Março a julho não tem mapeamento real; devolve um placeholder seguro.
func Info(date time.Time) Week {
	year, month := date.Year(), date.Month()

	switch {
	case month == time.August:
		anchor := firstWeekday(year, time.August, time.Thursday)
		return Week{Season: year, Segment: Pre, Week: weekSince(date, anchor, maxPreWeeks)}
	case month >= time.September:
		return Week{Season: year, Segment: Reg, Week: RegularSeasonWeek(year, date)}
	case month <= time.February:
		anchor := firstWeekday(year, time.January, time.Saturday)
		return Week{Season: year - 1, Segment: Post, Week: weekSince(date, anchor, maxPostWeeks)}
	default:
		return Week{Season: year - 1, Segment: Reg, Week: 1}
	}
}

// RegularSeasonWeek calcula a semana de temporada regular a partir da âncora
// (quinta-feira seguinte à primeira segunda de setembro), limitada a [1,18]
func RegularSeasonWeek(season int, date time.Time) int {
	return weekSince(date, RegularSeasonAnchor(season), maxRegWeeks)
}

// RegularSeasonAnchor retorna o kickoff presumido da temporada regular
func RegularSeasonAnchor(season int) time.Time {
	return firstWeekday(season, time.September, time.Monday).AddDate(0, 0, 3)
}

func weekSince(date, anchor time.Time, maxWeek int) int {
	days := int(dayOf(date).Sub(anchor).Hours() / 24)
	return clamp(floorDiv(days, 7)+1, 1, maxWeek)
}

// dayOf descarta o horário, mantendo o dia de calendário da data
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func firstWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

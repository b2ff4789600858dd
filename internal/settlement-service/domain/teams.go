package domain

import "strings"

// normalizeTeam deixa o nome em minúsculas com espaços colapsados
func normalizeTeam(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TeamMatches compara nomes de times tolerando abreviações por substring:
// "Lakers" casa com "Los Angeles Lakers"
func TeamMatches(a, b string) bool {
	na, nb := normalizeTeam(a), normalizeTeam(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

// TeamEquals compara nomes de times ignorando caixa e espaços extras
func TeamEquals(a, b string) bool {
	na := normalizeTeam(a)
	return na != "" && na == normalizeTeam(b)
}

// Side indica o lado do confronto escolhido
type Side int

const (
	SideNone Side = iota
	SideHome
	SideAway
)

// MatchSide resolve a seleção contra os dois times.
// Igualdade exata ganha da substring; se casar com os dois lados é ambíguo e devolve SideNone.
func MatchSide(selection, home, away string) Side {
	switch eh, ea := TeamEquals(selection, home), TeamEquals(selection, away); {
	case eh && !ea:
		return SideHome
	case ea && !eh:
		return SideAway
	case eh && ea:
		return SideNone
	}
	mh, ma := TeamMatches(selection, home), TeamMatches(selection, away)
	switch {
	case mh && !ma:
		return SideHome
	case ma && !mh:
		return SideAway
	}
	return SideNone
}

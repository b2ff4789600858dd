// Package statmap traduz a descrição de um prop ("Passing Yards") no campo
// estatístico do provedor para cada esporte.
//
// A tabela é fechada e com correspondência exata: um rótulo fora dela não tem
// mapeamento e a aposta é anulada por quem chama. Rótulos derivados (PRA,
// Anytime TD) não ficam aqui, são calculados pelo engine.
package statmap

import "strings"

// tables: esporte -> rótulo humano -> campo do provedor.
// Para mlb o campo é a descrição do prop avaliado no feed.
var tables = map[string]map[string]string{
	"nfl": {
		"Passing Yards":        "PassingYards",
		"Passing Touchdowns":   "PassingTouchdowns",
		"Passing Attempts":     "PassingAttempts",
		"Passing Completions":  "PassingCompletions",
		"Interceptions Thrown": "PassingInterceptions",
		"Longest Completion":   "PassingLong",
		"Rushing Yards":        "RushingYards",
		"Rushing Attempts":     "RushingAttempts",
		"Rushing Touchdowns":   "RushingTouchdowns",
		"Longest Rush":         "RushingLong",
		"Receiving Yards":      "ReceivingYards",
		"Receptions":           "Receptions",
		"Receiving Touchdowns": "ReceivingTouchdowns",
		"Longest Reception":    "ReceivingLong",
		"Sacks":                "Sacks",
		"Tackles":              "Tackles",
		"Field Goals Made":     "FieldGoalsMade",
	},
	"nba": {
		"Points":              "Points",
		"Rebounds":            "Rebounds",
		"Assists":             "Assists",
		"Steals":              "Steals",
		"Blocks":              "BlockedShots",
		"Turnovers":           "Turnovers",
		"Three Pointers Made": "ThreePointersMade",
		"Free Throws Made":    "FreeThrowsMade",
		"Field Goals Made":    "FieldGoalsMade",
		"Minutes":             "Minutes",
	},
	"mlb": {
		"Hits":                "Total Hits",
		"Home Runs":           "Total Home Runs",
		"Total Bases":         "Total Bases",
		"RBIs":                "Total RBIs",
		"Runs Scored":         "Total Runs",
		"Stolen Bases":        "Total Stolen Bases",
		"Strikeouts":          "Total Strikeouts",
		"Hits Allowed":        "Hits Allowed",
		"Earned Runs Allowed": "Earned Runs Allowed",
		"Outs Recorded":       "Pitching Outs",
	},
	"nhl": {
		"Goals":            "Goals",
		"Assists":          "Assists",
		"Points":           "Points",
		"Shots on Goal":    "ShotsOnGoal",
		"Saves":            "GoaltendingSaves",
		"Blocked Shots":    "Blocks",
		"Power Play Goals": "PowerPlayGoals",
		"Penalty Minutes":  "PenaltyMinutes",
		"Hits":             "Hits",
	},
}

// NormalizeSport reduz o código do esporte ao formato das tabelas ("NFL" -> "nfl")
func NormalizeSport(sport string) string {
	return strings.ToLower(strings.TrimSpace(sport))
}

// Field retorna o campo do provedor para o rótulo no esporte informado
func Field(label, sport string) (string, bool) {
	t, ok := tables[NormalizeSport(sport)]
	if !ok {
		return "", false
	}
	f, ok := t[strings.TrimSpace(label)]
	return f, ok
}

package resolver

import "strings"

// SportPaths liga o código neutro do esporte aos paths de cada provedor
type SportPaths struct {
	Key    string // código neutro, ex: "nba"
	Scores string // path do feed de placar, ex: "basketball_nba"
	Stats  string // path do feed de estatísticas, ex: "nba"
}

var sports = []SportPaths{
	{Key: "nfl", Scores: "americanfootball_nfl", Stats: "nfl"},
	{Key: "nba", Scores: "basketball_nba", Stats: "nba"},
	{Key: "mlb", Scores: "baseball_mlb", Stats: "mlb"},
	{Key: "nhl", Scores: "icehockey_nhl", Stats: "nhl"},
	{Key: "ncaaf", Scores: "americanfootball_ncaaf", Stats: "cfb"},
	{Key: "ncaab", Scores: "basketball_ncaab", Stats: "cbb"},
}

// LookupSport aceita o código neutro ("NBA") ou o path do feed de placar ("basketball_nba")
func LookupSport(key string) (SportPaths, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, s := range sports {
		if s.Key == k || s.Scores == k {
			return s, true
		}
	}
	return SportPaths{}, false
}

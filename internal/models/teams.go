package models

import "strings"

// OpponentTeams is the fixed set of opponent codes a projection can be adjusted for.
var OpponentTeams = []string{
	"BOS", "CHI", "CLE", "DET", "IND", "MIL", "PHI", "ATL",
	"ORL", "MIA", "WAS", "NYK", "BKN", "TOR", "CHA",
}

var teamNames = map[string]string{
	"ATL": "Atlanta Hawks",
	"BOS": "Boston Celtics",
	"BKN": "Brooklyn Nets",
	"CHA": "Charlotte Hornets",
	"CHI": "Chicago Bulls",
	"CLE": "Cleveland Cavaliers",
	"DET": "Detroit Pistons",
	"IND": "Indiana Pacers",
	"MIA": "Miami Heat",
	"MIL": "Milwaukee Bucks",
	"NYK": "New York Knicks",
	"ORL": "Orlando Magic",
	"PHI": "Philadelphia 76ers",
	"TOR": "Toronto Raptors",
	"WAS": "Washington Wizards",
}

// Team is an entry of the opponent enumeration.
type Team struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Teams returns the opponent enumeration in display order.
func Teams() []Team {
	teams := make([]Team, 0, len(OpponentTeams))
	for _, code := range OpponentTeams {
		teams = append(teams, Team{Code: code, Name: TeamName(code)})
	}
	return teams
}

// TeamName returns the full name for a code, or the code itself if unknown.
func TeamName(code string) string {
	if name, ok := teamNames[code]; ok {
		return name
	}
	return code
}

// NormalizeOpponent trims and upper-cases an opponent code. The "no opponent"
// sentinels ("", "-", "none") all normalize to "".
func NormalizeOpponent(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "-" || code == "NONE" {
		return ""
	}
	return code
}

// IsOpponentTeam reports whether code (already normalized) is in the enumeration.
func IsOpponentTeam(code string) bool {
	for _, t := range OpponentTeams {
		if t == code {
			return true
		}
	}
	return false
}

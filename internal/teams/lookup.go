// Package teams maps the many spellings of NHL club names onto three-letter codes.
package teams

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/puck-savant/internal/models"
)

// Lookup resolves a team name, nickname, or code to its canonical code.
type Lookup interface {
	Code(name string) (string, error)
}

// Table is the in-memory Lookup used everywhere a feed hands us names instead of codes.
type Table struct {
	codes map[string]string
}

var nhlClubs = map[string][]string{
	"ANA": {"Anaheim Ducks", "Anaheim", "Ducks"},
	"BOS": {"Boston Bruins", "Boston", "Bruins"},
	"BUF": {"Buffalo Sabres", "Buffalo", "Sabres"},
	"CAR": {"Carolina Hurricanes", "Carolina", "Hurricanes"},
	"CBJ": {"Columbus Blue Jackets", "Columbus", "Blue Jackets"},
	"CGY": {"Calgary Flames", "Calgary", "Flames"},
	"CHI": {"Chicago Blackhawks", "Chicago", "Blackhawks"},
	"COL": {"Colorado Avalanche", "Colorado", "Avalanche"},
	"DAL": {"Dallas Stars", "Dallas", "Stars"},
	"DET": {"Detroit Red Wings", "Detroit", "Red Wings"},
	"EDM": {"Edmonton Oilers", "Edmonton", "Oilers"},
	"FLA": {"Florida Panthers", "Florida", "Panthers"},
	"LAK": {"Los Angeles Kings", "Los Angeles", "Kings", "LA Kings", "L.A. Kings", "LA"},
	"MIN": {"Minnesota Wild", "Minnesota", "Wild"},
	"MTL": {"Montreal Canadiens", "Montréal Canadiens", "Montreal", "Canadiens"},
	"NJD": {"New Jersey Devils", "New Jersey", "Devils", "NJ"},
	"NSH": {"Nashville Predators", "Nashville", "Predators"},
	"NYI": {"New York Islanders", "NY Islanders", "Islanders"},
	"NYR": {"New York Rangers", "NY Rangers", "Rangers"},
	"OTT": {"Ottawa Senators", "Ottawa", "Senators"},
	"PHI": {"Philadelphia Flyers", "Philadelphia", "Flyers"},
	"PIT": {"Pittsburgh Penguins", "Pittsburgh", "Penguins"},
	"SEA": {"Seattle Kraken", "Seattle", "Kraken"},
	"SJS": {"San Jose Sharks", "San Jose", "Sharks", "SJ"},
	"STL": {"St. Louis Blues", "St Louis Blues", "St. Louis", "Blues"},
	"TBL": {"Tampa Bay Lightning", "Tampa Bay", "Lightning", "TB"},
	"TOR": {"Toronto Maple Leafs", "Toronto", "Maple Leafs"},
	"UTA": {"Utah Hockey Club", "Utah Mammoth", "Utah", "ARI", "Arizona Coyotes"},
	"VAN": {"Vancouver Canucks", "Vancouver", "Canucks"},
	"VGK": {"Vegas Golden Knights", "Vegas", "Golden Knights"},
	"WPG": {"Winnipeg Jets", "Winnipeg", "Jets"},
	"WSH": {"Washington Capitals", "Washington", "Capitals"},
}

// NewNHLTable builds the lookup for the current 32 clubs.
func NewNHLTable() *Table {
	t := &Table{codes: make(map[string]string, len(nhlClubs)*4)}
	for code, names := range nhlClubs {
		t.Add(code, code)
		for _, name := range names {
			t.Add(name, code)
		}
	}
	return t
}

// Add registers an alias. Later registrations win.
func (t *Table) Add(name, code string) {
	t.codes[normalize(name)] = code
}

// Code returns the canonical code for name.
func (t *Table) Code(name string) (string, error) {
	if code, ok := t.codes[normalize(name)]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnknownTeam, name)
}

// Codes lists every canonical code, sorted.
func (t *Table) Codes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, code := range t.codes {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

package catalog

import (
	"sort"
	"strings"

	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

// Sport groups are matched by league-name substring, mirroring how the
// schedule feed labels leagues.
var SportGroups = map[string][]string{
	"soccer":     {"K League", "Premier League", "La Liga", "Serie A", "Bundesliga", "Ligue 1", "Champions League", "J League"},
	"baseball":   {"KBO", "MLB", "NPB"},
	"basketball": {"KBL", "WKBL", "NBA"},
	"volleyball": {"V-League"},
}

// Filter is the conjunction of the catalog's filter axes. The zero value on
// any axis passes everything.
type Filter struct {
	Sport      string      // key into SportGroups
	MarketType market.Type // exact match
	LocalDate  string      // "2006-01-02"
	League     string      // exact match
	Search     string      // case-insensitive substring on either team
}

// Match reports whether the fixture passes every set axis.
func (flt Filter) Match(f Fixture) bool {
	if flt.Sport != "" && !inSportGroup(flt.Sport, f.League) {
		return false
	}
	if flt.MarketType != "" && f.MarketType != flt.MarketType {
		return false
	}
	if flt.LocalDate != "" && f.LocalDate != flt.LocalDate {
		return false
	}
	if flt.League != "" && f.League != flt.League {
		return false
	}
	if flt.Search != "" {
		q := strings.ToLower(flt.Search)
		if !strings.Contains(strings.ToLower(f.HomeTeam), q) &&
			!strings.Contains(strings.ToLower(f.AwayTeam), q) {
			return false
		}
	}
	return true
}

// Apply filters a fixture list, preserving order.
func (flt Filter) Apply(fs []Fixture) []Fixture {
	out := make([]Fixture, 0, len(fs))
	for _, f := range fs {
		if flt.Match(f) {
			out = append(out, f)
		}
	}
	return out
}

func inSportGroup(sport, league string) bool {
	for _, sub := range SportGroups[sport] {
		if strings.Contains(league, sub) {
			return true
		}
	}
	return false
}

// DateGroup is one display bucket of fixtures sharing a local date.
type DateGroup struct {
	LocalDate string    `json:"localDate"`
	Fixtures  []Fixture `json:"fixtures"`
}

// GroupByDate buckets fixtures by local date, ascending. Fixtures with no
// local date sort last under an empty key.
func GroupByDate(fs []Fixture) []DateGroup {
	byDate := make(map[string][]Fixture)
	for _, f := range fs {
		byDate[f.LocalDate] = append(byDate[f.LocalDate], f)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		// empty date bucket goes last
		if dates[i] == "" || dates[j] == "" {
			return dates[j] == ""
		}
		return dates[i] < dates[j]
	})

	groups := make([]DateGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, DateGroup{LocalDate: d, Fixtures: byDate[d]})
	}
	return groups
}

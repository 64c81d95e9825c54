package catalog

import (
	"strings"
	"time"

	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

// Reference clock for all admission-window math. Both "now" and the fixture's
// local date/time are interpreted in KST; mixing zones here would shift the
// kickoff gate by hours.
var KST = time.FixedZone("KST", 9*60*60)

// Fixture is one scheduled match inside a round. Seq is stable within the
// round only, not globally unique.
type Fixture struct {
	Seq   int    `json:"seq"`
	Round string `json:"round"`

	LocalDate  string     `json:"localDate"` // "2006-01-02", KST
	LocalTime  string     `json:"localTime"` // "15:04", KST
	KickoffUTC *time.Time `json:"kickoffUtc,omitempty"`

	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	League   string `json:"league"`

	MarketType market.Type   `json:"marketType"`
	Params     market.Params `json:"params"`

	// Generic odds columns; a nil slot is never selectable.
	OddsA *float64 `json:"oddsA"`
	OddsB *float64 `json:"oddsB"`
	OddsC *float64 `json:"oddsC"`

	// Present only once graded. Presence alone marks the fixture finished.
	ResultCode *string `json:"resultCode,omitempty"`
}

// State is the per-fixture admission state consumed by the builder.
type State string

const (
	StateOpen     State = "open"
	StateStarted  State = "started"
	StateFinished State = "finished"
	StateLocked   State = "locked"
)

// PairKey is the normalized fixture identity used for deduplication across
// catalog rows that refer to the same real match.
func PairKey(home, away string) string {
	return strings.ToLower(strings.TrimSpace(home)) + "|" + strings.ToLower(strings.TrimSpace(away))
}

func (f Fixture) PairKey() string {
	return PairKey(f.HomeTeam, f.AwayTeam)
}

// Odds returns the value in the given slot, nil when the slot is not offered.
func (f Fixture) Odds(s market.Slot) *float64 {
	switch s {
	case market.SlotA:
		return f.OddsA
	case market.SlotB:
		return f.OddsB
	case market.SlotC:
		return f.OddsC
	}
	return nil
}

// HasDraw reports whether the fixture's league carries a draw outcome, which
// decides 2-way vs 3-way rendering for handicap markets.
func (f Fixture) HasDraw() bool {
	switch f.MarketType {
	case market.ThreeWay, market.FiveValue:
		return true
	case market.Handicap:
		return f.OddsB != nil
	}
	return false
}

// Arity is the rendered outcome count, computed once per fixture.
func (f Fixture) Arity() int {
	return market.Arity(f.MarketType, f.HasDraw())
}

// Kickoff resolves the fixture's start instant. The local date/time pair wins;
// an unparsable pair falls back to the UTC timestamp. ok=false means the
// fixture has no usable schedule and is treated as never started.
func (f Fixture) Kickoff() (time.Time, bool) {
	if f.LocalDate != "" {
		layout := "2006-01-02 15:04"
		raw := f.LocalDate + " " + f.LocalTime
		if f.LocalTime == "" {
			layout = "2006-01-02"
			raw = f.LocalDate
		}
		if t, err := time.ParseInLocation(layout, raw, KST); err == nil {
			return t, true
		}
	}
	if f.KickoffUTC != nil {
		return *f.KickoffUTC, true
	}
	return time.Time{}, false
}

// StateAt computes the admission state for one fixture. selectedPairs maps the
// builder session's normalized pair keys to the seq that holds the selection:
// a different row for the same real match is locked, the holding row itself is
// not (it must stay toggleable).
func (f Fixture) StateAt(now time.Time, selectedPairs map[string]int) State {
	if f.ResultCode != nil {
		return StateFinished
	}
	if seq, ok := selectedPairs[f.PairKey()]; ok && seq != f.Seq {
		return StateLocked
	}
	if kickoff, ok := f.Kickoff(); ok && !now.In(KST).Before(kickoff) {
		return StateStarted
	}
	return StateOpen
}

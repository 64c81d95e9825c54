package builder

import (
	"errors"
	"math"

	"github.com/tri-kkk/football-prediction-sub000/internal/catalog"
	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

var (
	// ErrDuplicateFixture means a different catalog row for the same real
	// match already holds a selection.
	ErrDuplicateFixture = errors.New("another row for this fixture is already selected")
	// ErrNoOdds means the resolved odds slot is not offered on this fixture.
	ErrNoOdds = errors.New("no odds offered for this outcome")
)

// Set is the in-progress combination: at most one selection per normalized
// fixture pair, in insertion order. Not safe for concurrent use; Session
// adds the locking.
type Set struct {
	selections []Selection
}

// ToggleOutcome says what a toggle did to the set.
type ToggleOutcome string

const (
	Added    ToggleOutcome = "added"
	Removed  ToggleOutcome = "removed"
	Replaced ToggleOutcome = "replaced"
)

// ToggleResult carries the outcome plus the review-panel signals: the first
// selection opens the panel, emptying the set closes it.
type ToggleResult struct {
	Outcome     ToggleOutcome `json:"outcome"`
	PanelOpened bool          `json:"panelOpened"`
	PanelClosed bool          `json:"panelClosed"`
}

// Toggle applies one user gesture against a fixture.
//
// Add when the fixture has no selection, remove when the same prediction is
// toggled again, replace in place when a different prediction is chosen.
// A selection held by a different row of the same real match rejects the
// toggle without touching the set.
func (s *Set) Toggle(f catalog.Fixture, a market.Action) (ToggleResult, error) {
	pred, slot, err := market.Resolve(f.MarketType, f.HasDraw(), a)
	if err != nil {
		return ToggleResult{}, err
	}

	key := f.PairKey()
	idx := -1
	for i, sel := range s.selections {
		if sel.PairKey() == key {
			if sel.Seq != f.Seq {
				return ToggleResult{}, ErrDuplicateFixture
			}
			idx = i
			break
		}
	}

	if idx < 0 {
		odds := f.Odds(slot)
		if odds == nil {
			return ToggleResult{}, ErrNoOdds
		}
		opened := len(s.selections) == 0
		s.selections = append(s.selections, Selection{
			Seq:        f.Seq,
			HomeTeam:   f.HomeTeam,
			AwayTeam:   f.AwayTeam,
			League:     f.League,
			MarketType: f.MarketType,
			Prediction: pred,
			Odds:       *odds,
			Params:     f.Params,
		})
		return ToggleResult{Outcome: Added, PanelOpened: opened}, nil
	}

	if s.selections[idx].Prediction == pred {
		s.selections = append(s.selections[:idx], s.selections[idx+1:]...)
		return ToggleResult{Outcome: Removed, PanelClosed: len(s.selections) == 0}, nil
	}

	// different prediction on the same fixture: replace in place, odds
	// re-captured for the new outcome
	odds := f.Odds(slot)
	if odds == nil {
		return ToggleResult{}, ErrNoOdds
	}
	s.selections[idx].Prediction = pred
	s.selections[idx].Odds = *odds
	return ToggleResult{Outcome: Replaced}, nil
}

// Selections returns a copy of the legs in insertion order.
func (s *Set) Selections() []Selection {
	out := make([]Selection, len(s.selections))
	copy(out, s.selections)
	return out
}

func (s *Set) Len() int { return len(s.selections) }

func (s *Set) Clear() { s.selections = nil }

// SelectedPairs maps each held pair key to the seq holding it, for the
// catalog's locked-state computation.
func (s *Set) SelectedPairs() map[string]int {
	out := make(map[string]int, len(s.selections))
	for _, sel := range s.selections {
		out[sel.PairKey()] = sel.Seq
	}
	return out
}

// CombinedOdds is the product of all selection odds; 1 for the empty set.
func (s *Set) CombinedOdds() float64 {
	return CombinedOdds(s.selections)
}

// CombinedOdds is the pure product over a leg list; 1 for no legs.
func CombinedOdds(sels []Selection) float64 {
	total := 1.0
	for _, sel := range sels {
		total *= sel.Odds
	}
	return total
}

// ProjectedPayout is stake times combined odds, with the stake clamped to a
// non-negative integer and the payout rounded to whole won.
func ProjectedPayout(stake int64, combinedOdds float64) int64 {
	if stake < 0 {
		stake = 0
	}
	return int64(math.Round(float64(stake) * combinedOdds))
}

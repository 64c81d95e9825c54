package market

import (
	"errors"
	"fmt"
)

// Type is the shape of the bettable question on a fixture. Every type
// overlays the same three odds slots (A/B/C, historically home/draw/away)
// with its own semantics.
type Type string

const (
	ThreeWay  Type = "three_way"  // 1X2: home / draw / away
	Handicap  Type = "handicap"   // home covers / push / away covers
	OverUnder Type = "over_under" // over the line / under the line
	OddEven   Type = "odd_even"   // odd total / even total
	FiveValue Type = "five_value" // win / draw / loss variant with secondary labels
)

// Prediction is the user-facing meaning of a chosen slot.
type Prediction string

const (
	PredictHome  Prediction = "home"
	PredictDraw  Prediction = "draw"
	PredictAway  Prediction = "away"
	PredictOver  Prediction = "over"
	PredictUnder Prediction = "under"
	PredictOdd   Prediction = "odd"
	PredictEven  Prediction = "even"
)

// Slot identifies one of the three generic odds columns on a fixture.
type Slot int

const (
	SlotA Slot = iota // "home" column
	SlotB             // "draw" column, absent on 2-way markets
	SlotC             // "away" column
)

// Action is the UI gesture: the three buttons are laid out home/draw/away
// regardless of market type, and translation to a prediction happens here.
type Action int

const (
	ActionHome Action = iota
	ActionDraw
	ActionAway
)

// Params are descriptive market parameters. They only change the label shown
// for a slot, never which slot an action reads.
type Params struct {
	Handicap *float64 `json:"handicap,omitempty"`
	Line     *float64 `json:"line,omitempty"`
}

var (
	ErrUnknownType   = errors.New("unknown market type")
	ErrNoSuchOutcome = errors.New("market has no such outcome")
)

// Valid reports whether t is one of the supported market types.
func (t Type) Valid() bool {
	switch t {
	case ThreeWay, Handicap, OverUnder, OddEven, FiveValue:
		return true
	}
	return false
}

// Arity returns how many outcomes the market renders (2 or 3). hasDraw is
// the league draw-eligibility flag and only matters for handicap markets.
// Computed once per fixture, never user-configurable.
func Arity(t Type, hasDraw bool) int {
	switch t {
	case ThreeWay, FiveValue:
		return 3
	case Handicap:
		if hasDraw {
			return 3
		}
		return 2
	default:
		return 2
	}
}

// Resolve maps an action on a fixture of market type t to the prediction it
// means and the odds slot it reads. hasDraw gates the middle outcome for
// handicap markets.
func Resolve(t Type, hasDraw bool, a Action) (Prediction, Slot, error) {
	switch t {
	case ThreeWay, FiveValue:
		switch a {
		case ActionHome:
			return PredictHome, SlotA, nil
		case ActionDraw:
			return PredictDraw, SlotB, nil
		case ActionAway:
			return PredictAway, SlotC, nil
		}
	case Handicap:
		switch a {
		case ActionHome:
			return PredictHome, SlotA, nil
		case ActionDraw:
			if !hasDraw {
				return "", 0, ErrNoSuchOutcome
			}
			return PredictDraw, SlotB, nil
		case ActionAway:
			return PredictAway, SlotC, nil
		}
	case OverUnder:
		switch a {
		case ActionHome:
			return PredictOver, SlotA, nil
		case ActionAway:
			return PredictUnder, SlotC, nil
		case ActionDraw:
			return "", 0, ErrNoSuchOutcome
		}
	case OddEven:
		switch a {
		case ActionHome:
			return PredictOdd, SlotA, nil
		case ActionAway:
			return PredictEven, SlotC, nil
		case ActionDraw:
			return "", 0, ErrNoSuchOutcome
		}
	default:
		return "", 0, ErrUnknownType
	}
	return "", 0, ErrNoSuchOutcome
}

// SlotLabel is the display label for a slot, with market params applied.
func SlotLabel(t Type, p Params, s Slot) string {
	switch t {
	case Handicap:
		h := 0.0
		if p.Handicap != nil {
			h = *p.Handicap
		}
		switch s {
		case SlotA:
			return fmt.Sprintf("Home %+.1f", h)
		case SlotB:
			return "Push"
		case SlotC:
			return fmt.Sprintf("Away %+.1f", -h)
		}
	case OverUnder:
		l := 0.0
		if p.Line != nil {
			l = *p.Line
		}
		switch s {
		case SlotA:
			return fmt.Sprintf("Over %.1f", l)
		case SlotC:
			return fmt.Sprintf("Under %.1f", l)
		}
	case OddEven:
		switch s {
		case SlotA:
			return "Odd"
		case SlotC:
			return "Even"
		}
	case FiveValue:
		switch s {
		case SlotA:
			return "Win"
		case SlotB:
			return "Tie" // the draw outcome under its secondary label
		case SlotC:
			return "Loss"
		}
	default:
		switch s {
		case SlotA:
			return "Home"
		case SlotB:
			return "Draw"
		case SlotC:
			return "Away"
		}
	}
	return ""
}

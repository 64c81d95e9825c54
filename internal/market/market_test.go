package market

import "testing"

func TestResolveThreeWay(t *testing.T) {
	cases := []struct {
		action Action
		pred   Prediction
		slot   Slot
	}{
		{ActionHome, PredictHome, SlotA},
		{ActionDraw, PredictDraw, SlotB},
		{ActionAway, PredictAway, SlotC},
	}
	for _, c := range cases {
		pred, slot, err := Resolve(ThreeWay, true, c.action)
		if err != nil {
			t.Fatalf("resolve action %d: %v", c.action, err)
		}
		if pred != c.pred || slot != c.slot {
			t.Fatalf("action %d: got (%s, %d), want (%s, %d)", c.action, pred, slot, c.pred, c.slot)
		}
	}
}

func TestResolveOverUnderReadsOuterSlots(t *testing.T) {
	pred, slot, err := Resolve(OverUnder, false, ActionHome)
	if err != nil {
		t.Fatal(err)
	}
	if pred != PredictOver || slot != SlotA {
		t.Fatalf("home action: got (%s, %d)", pred, slot)
	}

	pred, slot, err = Resolve(OverUnder, false, ActionAway)
	if err != nil {
		t.Fatal(err)
	}
	if pred != PredictUnder || slot != SlotC {
		t.Fatalf("away action: got (%s, %d)", pred, slot)
	}

	if _, _, err := Resolve(OverUnder, false, ActionDraw); err != ErrNoSuchOutcome {
		t.Fatalf("draw on over/under: got %v", err)
	}
}

func TestResolveOddEven(t *testing.T) {
	pred, slot, _ := Resolve(OddEven, false, ActionHome)
	if pred != PredictOdd || slot != SlotA {
		t.Fatalf("got (%s, %d)", pred, slot)
	}
	pred, slot, _ = Resolve(OddEven, false, ActionAway)
	if pred != PredictEven || slot != SlotC {
		t.Fatalf("got (%s, %d)", pred, slot)
	}
}

func TestResolveHandicapDrawGatedByLeague(t *testing.T) {
	pred, slot, err := Resolve(Handicap, true, ActionDraw)
	if err != nil || pred != PredictDraw || slot != SlotB {
		t.Fatalf("draw-eligible league: got (%s, %d, %v)", pred, slot, err)
	}
	if _, _, err := Resolve(Handicap, false, ActionDraw); err != ErrNoSuchOutcome {
		t.Fatalf("no-draw league: got %v", err)
	}
}

func TestResolveUnknownType(t *testing.T) {
	if _, _, err := Resolve(Type("totals"), false, ActionHome); err != ErrUnknownType {
		t.Fatalf("got %v", err)
	}
}

func TestArity(t *testing.T) {
	cases := []struct {
		t       Type
		hasDraw bool
		want    int
	}{
		{ThreeWay, true, 3},
		{FiveValue, true, 3},
		{Handicap, true, 3},
		{Handicap, false, 2},
		{OverUnder, false, 2},
		{OddEven, false, 2},
	}
	for _, c := range cases {
		if got := Arity(c.t, c.hasDraw); got != c.want {
			t.Fatalf("%s hasDraw=%v: got %d, want %d", c.t, c.hasDraw, got, c.want)
		}
	}
}

func TestSlotLabels(t *testing.T) {
	h, l := 1.5, 2.5
	cases := []struct {
		t    Type
		p    Params
		s    Slot
		want string
	}{
		{ThreeWay, Params{}, SlotA, "Home"},
		{ThreeWay, Params{}, SlotB, "Draw"},
		{Handicap, Params{Handicap: &h}, SlotA, "Home +1.5"},
		{Handicap, Params{Handicap: &h}, SlotC, "Away -1.5"},
		{OverUnder, Params{Line: &l}, SlotA, "Over 2.5"},
		{OddEven, Params{}, SlotC, "Even"},
		{FiveValue, Params{}, SlotA, "Win"},
		{FiveValue, Params{}, SlotB, "Tie"},
		{FiveValue, Params{}, SlotC, "Loss"},
	}
	for _, c := range cases {
		if got := SlotLabel(c.t, c.p, c.s); got != c.want {
			t.Fatalf("%s slot %d: got %q, want %q", c.t, c.s, got, c.want)
		}
	}
}

package catalog

import (
	"testing"
	"time"

	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

func ptr[T any](v T) *T { return &v }

func TestKickoffParsesLocalPairInKST(t *testing.T) {
	f := Fixture{LocalDate: "2026-03-07", LocalTime: "19:30"}
	got, ok := f.Kickoff()
	if !ok {
		t.Fatal("expected a kickoff")
	}
	want := time.Date(2026, 3, 7, 19, 30, 0, 0, KST)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestKickoffFallsBackToUTC(t *testing.T) {
	utc := time.Date(2026, 3, 7, 10, 30, 0, 0, time.UTC)
	f := Fixture{LocalDate: "not-a-date", LocalTime: "??", KickoffUTC: &utc}
	got, ok := f.Kickoff()
	if !ok || !got.Equal(utc) {
		t.Fatalf("got (%v, %v), want utc fallback", got, ok)
	}
}

func TestKickoffUnusableMeansNeverStarted(t *testing.T) {
	f := Fixture{LocalDate: "garbage"}
	if _, ok := f.Kickoff(); ok {
		t.Fatal("expected no kickoff")
	}
	// far-future "now" must still leave the fixture open
	now := time.Date(2100, 1, 1, 0, 0, 0, 0, KST)
	if st := f.StateAt(now, nil); st != StateOpen {
		t.Fatalf("got %s, want open", st)
	}
}

func TestStateAt(t *testing.T) {
	now := time.Date(2026, 3, 7, 20, 0, 0, 0, KST)
	base := Fixture{
		Seq: 3, HomeTeam: "Ulsan", AwayTeam: "Jeonbuk",
		LocalDate: "2026-03-08", LocalTime: "19:30",
		MarketType: market.ThreeWay,
	}

	if st := base.StateAt(now, nil); st != StateOpen {
		t.Fatalf("future kickoff: got %s", st)
	}

	started := base
	started.LocalDate = "2026-03-07"
	started.LocalTime = "19:30"
	if st := started.StateAt(now, nil); st != StateStarted {
		t.Fatalf("past kickoff: got %s", st)
	}

	finished := started
	finished.ResultCode = ptr("H")
	if st := finished.StateAt(now, nil); st != StateFinished {
		t.Fatalf("result present: got %s", st)
	}

	// another row holds a selection for the same normalized pair
	pairs := map[string]int{PairKey("ULSAN ", "jeonbuk"): 7}
	if st := base.StateAt(now, pairs); st != StateLocked {
		t.Fatalf("other row selected: got %s", st)
	}

	// the holding row itself stays toggleable
	pairs[base.PairKey()] = base.Seq
	if st := base.StateAt(now, pairs); st != StateOpen {
		t.Fatalf("holding row: got %s", st)
	}
}

func TestHasDrawForHandicapFollowsMiddleSlot(t *testing.T) {
	f := Fixture{MarketType: market.Handicap, OddsB: ptr(3.1)}
	if !f.HasDraw() || f.Arity() != 3 {
		t.Fatalf("draw-eligible handicap: hasDraw=%v arity=%d", f.HasDraw(), f.Arity())
	}
	f.OddsB = nil
	if f.HasDraw() || f.Arity() != 2 {
		t.Fatalf("no-draw handicap: hasDraw=%v arity=%d", f.HasDraw(), f.Arity())
	}
}

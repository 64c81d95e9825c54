package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tri-kkk/football-prediction-sub000/internal/builder"
	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

func leg(seq int, home, away string, odds float64) builder.Selection {
	return builder.Selection{
		Seq: seq, HomeTeam: home, AwayTeam: away, League: "K League 1",
		MarketType: market.ThreeWay, Prediction: market.PredictHome, Odds: odds,
	}
}

func validSlip() *Slip {
	sels := []builder.Selection{
		leg(1, "Ulsan", "Jeonbuk", 1.80),
		leg(2, "Pohang", "Suwon", 2.10),
	}
	return &Slip{
		UserID: "u1", Round: "12", Selections: sels,
		TotalOdds: builder.CombinedOdds(sels), Amount: 10000,
	}
}

func TestValidateSlip(t *testing.T) {
	if err := validateSlip(validSlip(), 1000); err != nil {
		t.Fatalf("valid slip rejected: %v", err)
	}

	s := validSlip()
	s.Selections = nil
	if err := validateSlip(s, 1000); !errors.Is(err, ErrEmptySlip) {
		t.Fatalf("empty: %v", err)
	}

	s = validSlip()
	s.Amount = 999
	if err := validateSlip(s, 1000); !errors.Is(err, ErrStakeTooSmall) {
		t.Fatalf("stake: %v", err)
	}

	s = validSlip()
	s.TotalOdds += 0.01
	if err := validateSlip(s, 1000); !errors.Is(err, ErrOddsMismatch) {
		t.Fatalf("odds: %v", err)
	}
}

func TestValidateSlipRejectsRepeatedFixture(t *testing.T) {
	// two legs on the same real-world pairing under different seqs
	sels := []builder.Selection{
		leg(1, "Ulsan", "Jeonbuk", 1.80),
		leg(9, "ULSAN", "jeonbuk", 3.40),
	}
	s := &Slip{
		UserID: "u1", Round: "12", Selections: sels,
		TotalOdds: builder.CombinedOdds(sels), Amount: 10000,
	}
	if err := validateSlip(s, 1000); !errors.Is(err, ErrDuplicatePair) {
		t.Fatalf("want ErrDuplicatePair, got %v", err)
	}
}

// The raw save endpoint bypasses the builder session, so the repository has
// to hold the one-prediction-per-fixture line itself. Validation runs before
// the transaction opens: a nil handle proves no SQL was reached.
func TestSaveRejectsRepeatedFixtureBeforeAnySQL(t *testing.T) {
	p := NewPostgres(nil, 5, 1000, 0)
	sels := []builder.Selection{
		leg(1, "Ulsan", "Jeonbuk", 1.80),
		leg(9, "Ulsan", "Jeonbuk", 3.40),
	}
	s := &Slip{
		UserID: "u1", Round: "12", Selections: sels,
		TotalOdds: builder.CombinedOdds(sels), Amount: 10000,
	}
	if err := p.Save(context.Background(), s, TierFree); !errors.Is(err, ErrDuplicatePair) {
		t.Fatalf("want ErrDuplicatePair, got %v", err)
	}
}

func TestQuotaExceeded(t *testing.T) {
	// free tier: the 6th save of a round bounces at quota 5
	if quotaExceeded(TierFree, 4, 5) {
		t.Fatal("5th save must pass")
	}
	if !quotaExceeded(TierFree, 5, 5) {
		t.Fatal("6th save must bounce")
	}
	// premium is uncapped
	if quotaExceeded(TierPremium, 500, 5) {
		t.Fatal("premium must never bounce")
	}
	// unknown tiers get the free treatment
	if !quotaExceeded(Tier("trial"), 5, 5) {
		t.Fatal("unknown tier must be capped")
	}
}

func TestVisibleSince(t *testing.T) {
	now := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)

	if got := visibleSince(TierFree, 0, now); !got.IsZero() {
		t.Fatalf("no window set: %v", got)
	}
	if got := visibleSince(TierPremium, 72*time.Hour, now); !got.IsZero() {
		t.Fatalf("premium is unlimited: %v", got)
	}
	want := now.Add(-72 * time.Hour)
	if got := visibleSince(TierFree, 72*time.Hour, now); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

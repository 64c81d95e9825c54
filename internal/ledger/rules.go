package ledger

import (
	"math"
	"time"

	"github.com/tri-kkk/football-prediction-sub000/internal/builder"
)

// validateSlip checks everything decidable without the database. The builder
// path already enforces one prediction per fixture inside the session, but a
// slip arrives here from the raw save endpoint too, so the pair-key dedup is
// re-checked over whatever the client sent.
func validateSlip(slip *Slip, minStake int64) error {
	if len(slip.Selections) == 0 {
		return ErrEmptySlip
	}
	if slip.Amount < minStake {
		return ErrStakeTooSmall
	}
	seen := make(map[string]struct{}, len(slip.Selections))
	for _, sel := range slip.Selections {
		k := sel.PairKey()
		if _, dup := seen[k]; dup {
			return ErrDuplicatePair
		}
		seen[k] = struct{}{}
	}
	// the client sends the odds it showed; the selections are authoritative
	if math.Abs(builder.CombinedOdds(slip.Selections)-slip.TotalOdds) > 1e-6 {
		return ErrOddsMismatch
	}
	return nil
}

// quotaExceeded is the round cap decision: saved slips already in the round
// against the free-tier quota. Premium is uncapped.
func quotaExceeded(tier Tier, saved, quota int) bool {
	return tier != TierPremium && saved >= quota
}

// visibleSince is the lower bound on created_at for history reads. The zero
// time means unlimited: premium always, everyone when no window is set.
func visibleSince(tier Tier, window time.Duration, now time.Time) time.Time {
	if tier == TierPremium || window <= 0 {
		return time.Time{}
	}
	return now.Add(-window)
}

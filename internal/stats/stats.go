package stats

import "time"

// Aggregate is the per-user running total. It is mutated only by slip
// creation, slip settlement and the full reset; history deletion touches
// nothing but TotalDeleted. It is never rebuilt by rescanning history, so
// pruning slips cannot regress it.
type Aggregate struct {
	UserID string `json:"userId"`

	TotalSlips int64 `json:"totalSlips"`
	Pending    int64 `json:"pending"`
	Won        int64 `json:"won"`
	Lost       int64 `json:"lost"`

	TotalInvested int64 `json:"totalInvested"`
	TotalReturn   int64 `json:"totalReturn"`

	// History rows removed after they were already counted above.
	TotalDeleted int64 `json:"totalDeleted"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// HitRate is won/(won+lost)×100, always recomputed, 0 when nothing settled.
func (a Aggregate) HitRate() float64 {
	settled := a.Won + a.Lost
	if settled == 0 {
		return 0
	}
	return float64(a.Won) / float64(settled) * 100
}

// Delta is one slip event expressed as field increments. The same delta is
// applied in memory and bound as SQL parameters, so the two paths cannot
// drift.
type Delta struct {
	TotalSlips int64
	Pending    int64
	Won        int64
	Lost       int64

	TotalInvested int64
	TotalReturn   int64
	TotalDeleted  int64
}

// Created is a new pending slip. The stake counts toward TotalInvested
// immediately, not at settlement.
func Created(stake int64) Delta {
	return Delta{TotalSlips: 1, Pending: 1, TotalInvested: stake}
}

// Settled is a pending slip reaching a terminal status. payout is
// stake×totalOdds for a win, 0 for a loss.
func Settled(won bool, payout int64) Delta {
	d := Delta{Pending: -1, TotalReturn: payout}
	if won {
		d.Won = 1
	} else {
		d.Lost = 1
	}
	return d
}

// Deleted is n history rows removed. Every counted field stays put.
func Deleted(n int64) Delta {
	return Delta{TotalDeleted: n}
}

// Counted reports whether the delta moves any counted field. Deletion-only
// deltas do not, and they leave LastUpdated alone too.
func (d Delta) Counted() bool {
	return d.TotalSlips != 0 || d.Pending != 0 || d.Won != 0 || d.Lost != 0 ||
		d.TotalInvested != 0 || d.TotalReturn != 0
}

// Apply adds the delta to the aggregate.
func (a *Aggregate) Apply(d Delta) {
	a.TotalSlips += d.TotalSlips
	a.Pending += d.Pending
	a.Won += d.Won
	a.Lost += d.Lost
	a.TotalInvested += d.TotalInvested
	a.TotalReturn += d.TotalReturn
	a.TotalDeleted += d.TotalDeleted
}

// Reset zeroes the row. Only the explicit destructive reset calls this.
func (a *Aggregate) Reset() {
	*a = Aggregate{UserID: a.UserID}
}

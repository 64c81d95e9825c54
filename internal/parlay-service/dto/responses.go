package dto

import (
	"github.com/tri-kkk/football-prediction-sub000/internal/builder"
	"github.com/tri-kkk/football-prediction-sub000/internal/catalog"
	"github.com/tri-kkk/football-prediction-sub000/internal/ledger"
	"github.com/tri-kkk/football-prediction-sub000/internal/stats"
)

// MatchRow is one catalog row with its admission state and rendered arity.
type MatchRow struct {
	catalog.Fixture
	State catalog.State `json:"state"`
	Arity int           `json:"arity"`
}

// MatchGroup is one local-date display bucket.
type MatchGroup struct {
	LocalDate string     `json:"localDate"`
	Matches   []MatchRow `json:"matches"`
}

type MatchesResponse struct {
	Round   string       `json:"round"`
	Rounds  []string     `json:"rounds"`
	Matches []MatchRow   `json:"matches"`
	Groups  []MatchGroup `json:"groups"`
}

// BuilderResponse is the live view of the selection set: legs, combined odds
// and the payout projected for the requested stake.
type BuilderResponse struct {
	Selections      []builder.Selection   `json:"selections"`
	CombinedOdds    float64               `json:"combinedOdds"`
	Stake           int64                 `json:"stake"`
	ProjectedPayout int64                 `json:"projectedPayout"`
	Toggle          *builder.ToggleResult `json:"toggle,omitempty"`
}

type SlipListResponse struct {
	Slips    []ledger.Slip `json:"slips"`
	Counts   ledger.Counts `json:"counts"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// StatsResponse carries the aggregate row plus the hit rate, which is always
// recomputed and never stored.
type StatsResponse struct {
	stats.Aggregate
	HitRate float64 `json:"hitRate"`
}

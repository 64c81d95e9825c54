package ledger

import (
	"errors"
	"time"

	"github.com/tri-kkk/football-prediction-sub000/internal/builder"
)

// Status is the slip lifecycle: pending on save, then exactly one transition
// to a terminal status, driven by the settlement process. Never re-opened.
type Status string

const (
	StatusPending Status = "pending"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusWon || s == StatusLost
}

func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Tier gates the per-round save quota.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Slip is a saved combination. Selections and TotalOdds are frozen at save
// time; later odds changes or fixture settlement never rewrite them.
type Slip struct {
	ID         string              `json:"id"`
	UserID     string              `json:"userId"`
	Round      string              `json:"round"`
	Selections []builder.Selection `json:"selections"`
	TotalOdds  float64             `json:"totalOdds"`
	Amount     int64               `json:"amount"`
	Status     Status              `json:"status"`
	// 0 while pending, stake×totalOdds if won, 0 if lost.
	ActualReturn int64     `json:"actualReturn"`
	CreatedAt    time.Time `json:"createdAt"`
}

var (
	ErrQuotaExceeded = errors.New("round quota exceeded for this tier")
	ErrEmptySlip     = errors.New("slip has no selections")
	ErrStakeTooSmall = errors.New("stake below minimum")
	ErrDuplicatePair = errors.New("slip has two predictions for the same fixture")
	ErrOddsMismatch  = errors.New("total odds do not match the selections")
	ErrNotFound      = errors.New("slip not found")
)

// Counts are the per-status badge totals over the whole visible history,
// independent of the requested page or status filter.
type Counts struct {
	All     int64 `json:"all"`
	Pending int64 `json:"pending"`
	Won     int64 `json:"won"`
	Lost    int64 `json:"lost"`
}

// NormalizePage clamps pagination params to sane bounds.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

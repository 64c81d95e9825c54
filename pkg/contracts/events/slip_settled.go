package events

import "time"

// Event consumed by the settlement-worker once the grading process has
// resolved every leg of a slip. Status carries the terminal outcome only;
// the worker never grades.
type SlipSettled struct {
	SlipID string    `json:"slipId"`
	UserID string    `json:"userId"`
	Status string    `json:"status"` // "won" | "lost"
	Ts     time.Time `json:"ts"`
}

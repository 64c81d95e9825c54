package dto

import "github.com/tri-kkk/football-prediction-sub000/internal/builder"

// ToggleRequest is one builder gesture: the action names the UI column
// ("home" | "draw" | "away"), the market model translates it.
type ToggleRequest struct {
	Round  string `json:"round"`
	Seq    int    `json:"seq"`
	Action string `json:"action"`
}

// SaveSlipRequest is the raw ledger contract: the client sends the legs and
// the odds it displayed; selections are validated server-side.
type SaveSlipRequest struct {
	Round      string              `json:"round"`
	Selections []builder.Selection `json:"selections"`
	TotalOdds  float64             `json:"totalOdds"`
	Amount     int64               `json:"amount"`
}

// BuilderSaveRequest saves the server-held builder session as a slip.
type BuilderSaveRequest struct {
	Round  string `json:"round"`
	Amount int64  `json:"amount"`
}

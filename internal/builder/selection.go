package builder

import (
	"github.com/tri-kkk/football-prediction-sub000/internal/catalog"
	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

// Selection is one leg: a prediction bound to a fixture at the moment of
// choice. Team names are cached so dedup and display keep working even if the
// catalog row disappears mid-session; odds and params are frozen snapshots.
type Selection struct {
	Seq      int    `json:"seq"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	League   string `json:"league"`

	MarketType market.Type       `json:"marketType"`
	Prediction market.Prediction `json:"prediction"`
	Odds       float64           `json:"odds"`
	Params     market.Params     `json:"params"`
}

// PairKey is the normalized fixture identity of the leg.
func (s Selection) PairKey() string {
	return catalog.PairKey(s.HomeTeam, s.AwayTeam)
}

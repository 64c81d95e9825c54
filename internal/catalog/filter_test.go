package catalog

import (
	"testing"

	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

func sampleFixtures() []Fixture {
	return []Fixture{
		{Seq: 1, LocalDate: "2026-03-08", HomeTeam: "Ulsan HD", AwayTeam: "Jeonbuk", League: "K League 1", MarketType: market.ThreeWay},
		{Seq: 2, LocalDate: "2026-03-07", HomeTeam: "Doosan Bears", AwayTeam: "LG Twins", League: "KBO", MarketType: market.OverUnder},
		{Seq: 3, LocalDate: "2026-03-08", HomeTeam: "Arsenal", AwayTeam: "Chelsea", League: "Premier League", MarketType: market.Handicap},
	}
}

func TestFilterAxesAreANDed(t *testing.T) {
	fs := sampleFixtures()

	got := Filter{Sport: "soccer"}.Apply(fs)
	if len(got) != 2 {
		t.Fatalf("soccer: got %d fixtures", len(got))
	}

	got = Filter{Sport: "soccer", MarketType: market.Handicap}.Apply(fs)
	if len(got) != 1 || got[0].Seq != 3 {
		t.Fatalf("soccer+handicap: got %v", got)
	}

	got = Filter{Sport: "soccer", LocalDate: "2026-03-07"}.Apply(fs)
	if len(got) != 0 {
		t.Fatalf("conflicting axes: got %d fixtures", len(got))
	}
}

func TestFilterSearchIsCaseInsensitiveOnEitherTeam(t *testing.T) {
	fs := sampleFixtures()
	if got := (Filter{Search: "twins"}).Apply(fs); len(got) != 1 || got[0].Seq != 2 {
		t.Fatalf("away-team search: got %v", got)
	}
	if got := (Filter{Search: "ULSAN"}).Apply(fs); len(got) != 1 || got[0].Seq != 1 {
		t.Fatalf("home-team search: got %v", got)
	}
}

func TestUnsetFilterPassesEverything(t *testing.T) {
	fs := sampleFixtures()
	if got := (Filter{}).Apply(fs); len(got) != len(fs) {
		t.Fatalf("got %d fixtures", len(got))
	}
}

func TestGroupByDateAscending(t *testing.T) {
	groups := GroupByDate(sampleFixtures())
	if len(groups) != 2 {
		t.Fatalf("got %d groups", len(groups))
	}
	if groups[0].LocalDate != "2026-03-07" || groups[1].LocalDate != "2026-03-08" {
		t.Fatalf("order: %s, %s", groups[0].LocalDate, groups[1].LocalDate)
	}
	if len(groups[1].Fixtures) != 2 {
		t.Fatalf("2026-03-08 bucket: got %d fixtures", len(groups[1].Fixtures))
	}
}

func TestGroupByDatePutsUndatedLast(t *testing.T) {
	fs := append(sampleFixtures(), Fixture{Seq: 9})
	groups := GroupByDate(fs)
	if groups[len(groups)-1].LocalDate != "" {
		t.Fatalf("last group: %q", groups[len(groups)-1].LocalDate)
	}
}

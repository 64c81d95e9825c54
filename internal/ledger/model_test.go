package ledger

import "testing"

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 10, 2, 10},
		{1, 500, 1, 100},
	}
	for _, c := range cases {
		p, s := NormalizePage(c.page, c.size)
		if p != c.wantPage || s != c.wantSize {
			t.Fatalf("(%d,%d): got (%d,%d), want (%d,%d)", c.page, c.size, p, s, c.wantPage, c.wantSize)
		}
	}
}

func TestStatusLifecycle(t *testing.T) {
	if !StatusPending.Valid() || StatusPending.Terminal() {
		t.Fatal("pending is the only non-terminal status")
	}
	if !StatusWon.Terminal() || !StatusLost.Terminal() {
		t.Fatal("won and lost are terminal")
	}
	if Status("cancelled").Valid() {
		t.Fatal("no other status exists")
	}
}

package builder

import "testing"

func TestSessionSaveGuard(t *testing.T) {
	var s Session
	if err := s.BeginSave(); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginSave(); err != ErrSaveInFlight {
		t.Fatalf("second save: got %v", err)
	}
	s.EndSave()
	if err := s.BeginSave(); err != nil {
		t.Fatalf("after resolve: got %v", err)
	}
}

func TestSessionsReturnSameInstancePerUser(t *testing.T) {
	sessions := NewSessions()
	a := sessions.Get("u1")
	if sessions.Get("u1") != a {
		t.Fatal("expected the same session")
	}
	if sessions.Get("u2") == a {
		t.Fatal("expected a distinct session per user")
	}
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tri-kkk/football-prediction-sub000/internal/builder"
	"github.com/tri-kkk/football-prediction-sub000/internal/catalog"
	"github.com/tri-kkk/football-prediction-sub000/internal/ledger"
	"github.com/tri-kkk/football-prediction-sub000/internal/market"
	"github.com/tri-kkk/football-prediction-sub000/internal/parlay-service/dto"
	"github.com/tri-kkk/football-prediction-sub000/internal/shared/metrics"
)

// roundFixtures reads a round catalog through the redis front when present.
func (s *Server) roundFixtures(ctx context.Context, round string) ([]catalog.Fixture, error) {
	if s.cache != nil {
		var cached []catalog.Fixture
		if ok, _ := s.cache.GetRound(ctx, round, &cached); ok {
			return cached, nil
		}
	}
	fs, err := s.catalog.ListRound(ctx, round)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetRound(ctx, round, fs, s.cacheTTL)
	}
	return fs, nil
}

func (s *Server) getMatches(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.catalog.Rounds(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	round := r.URL.Query().Get("round")
	if round == "" {
		round = "0" // unclassified bucket
		if len(rounds) > 0 {
			round = rounds[0]
		}
	}

	fs, err := s.roundFixtures(r.Context(), round)
	if err != nil {
		s.fail(w, err)
		return
	}

	flt := catalog.Filter{
		Sport:      r.URL.Query().Get("sport"),
		MarketType: market.Type(r.URL.Query().Get("market")),
		LocalDate:  r.URL.Query().Get("date"),
		League:     r.URL.Query().Get("league"),
		Search:     r.URL.Query().Get("q"),
	}
	fs = flt.Apply(fs)

	// locked states need the caller's builder session; anonymous browsing
	// just never sees a locked row
	var pairs map[string]int
	if userID, _, ok := s.user(r); ok {
		pairs = s.sessions.Get(userID).SelectedPairs()
	}

	now := s.now()
	flat := make([]dto.MatchRow, 0, len(fs))
	groups := make([]dto.MatchGroup, 0)
	for _, g := range catalog.GroupByDate(fs) {
		mg := dto.MatchGroup{LocalDate: g.LocalDate}
		for _, f := range g.Fixtures {
			row := dto.MatchRow{
				Fixture: f,
				State:   f.StateAt(now, pairs),
				Arity:   f.Arity(),
			}
			mg.Matches = append(mg.Matches, row)
			flat = append(flat, row)
		}
		groups = append(groups, mg)
	}

	writeJSON(w, http.StatusOK, dto.MatchesResponse{
		Round:   round,
		Rounds:  rounds,
		Matches: flat,
		Groups:  groups,
	})
}

func parseAction(raw string) (market.Action, error) {
	switch raw {
	case "home":
		return market.ActionHome, nil
	case "draw":
		return market.ActionDraw, nil
	case "away":
		return market.ActionAway, nil
	}
	return 0, market.ErrNoSuchOutcome
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}

	var req dto.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	action, err := parseAction(req.Action)
	if err != nil {
		s.fail(w, err)
		return
	}

	fs, err := s.roundFixtures(r.Context(), req.Round)
	if err != nil {
		s.fail(w, err)
		return
	}
	var fixture *catalog.Fixture
	for i := range fs {
		if fs[i].Seq == req.Seq {
			fixture = &fs[i]
			break
		}
	}
	if fixture == nil {
		writeErr(w, http.StatusNotFound, "fixture not found")
		return
	}

	sess := s.sessions.Get(userID)

	// started and finished fixtures are not selectable; a locked row is
	// rejected by the set itself
	switch st := fixture.StateAt(s.now(), nil); st {
	case catalog.StateStarted, catalog.StateFinished:
		writeErr(w, http.StatusConflict, "fixture is "+string(st))
		return
	}

	res, err := sess.Toggle(*fixture, action)
	if err != nil {
		s.fail(w, err)
		return
	}

	sels, combined := sess.Snapshot()
	writeJSON(w, http.StatusOK, dto.BuilderResponse{
		Selections:   sels,
		CombinedOdds: combined,
		Toggle:       &res,
	})
}

func (s *Server) getBuilder(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}

	stake, _ := strconv.ParseInt(r.URL.Query().Get("stake"), 10, 64)
	sels, combined := s.sessions.Get(userID).Snapshot()
	writeJSON(w, http.StatusOK, dto.BuilderResponse{
		Selections:      sels,
		CombinedOdds:    combined,
		Stake:           maxInt64(stake, 0),
		ProjectedPayout: builder.ProjectedPayout(stake, combined),
	})
}

func (s *Server) clearBuilder(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}
	s.sessions.Get(userID).Clear()
	w.WriteHeader(http.StatusNoContent)
}

// saveGuarded runs one ledger save under the session's in-flight guard.
func (s *Server) saveGuarded(ctx context.Context, userID string, slip *ledger.Slip, tier ledger.Tier) error {
	sess := s.sessions.Get(userID)
	if err := sess.BeginSave(); err != nil {
		return err
	}
	defer sess.EndSave()
	return s.ledger.Save(ctx, slip, tier)
}

func (s *Server) saveFromBuilder(w http.ResponseWriter, r *http.Request) {
	userID, tier, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}

	var req dto.BuilderSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}

	sess := s.sessions.Get(userID)
	sels, combined := sess.Snapshot()

	slip := &ledger.Slip{
		UserID:     userID,
		Round:      req.Round,
		Selections: sels,
		TotalOdds:  combined,
		Amount:     req.Amount,
	}
	if err := s.saveGuarded(r.Context(), userID, slip, tier); err != nil {
		s.countRejection(err)
		s.fail(w, err)
		return
	}

	// the set survives transport failures above; only an accepted save
	// clears it
	sess.Clear()
	metrics.SlipsSaved.Inc()
	writeJSON(w, http.StatusCreated, slip)
}

func (s *Server) saveSlip(w http.ResponseWriter, r *http.Request) {
	userID, tier, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}

	var req dto.SaveSlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}

	slip := &ledger.Slip{
		UserID:     userID,
		Round:      req.Round,
		Selections: req.Selections,
		TotalOdds:  req.TotalOdds,
		Amount:     req.Amount,
	}
	if err := s.saveGuarded(r.Context(), userID, slip, tier); err != nil {
		s.countRejection(err)
		s.fail(w, err)
		return
	}

	metrics.SlipsSaved.Inc()
	writeJSON(w, http.StatusCreated, slip)
}

func (s *Server) listSlips(w http.ResponseWriter, r *http.Request) {
	userID, tier, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}

	status := ledger.Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeErr(w, http.StatusBadRequest, "bad status filter")
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	page, pageSize = ledger.NormalizePage(page, pageSize)

	slips, counts, err := s.ledger.List(r.Context(), userID, tier, status, page, pageSize)
	if err != nil {
		s.fail(w, err)
		return
	}
	if slips == nil {
		slips = []ledger.Slip{}
	}
	writeJSON(w, http.StatusOK, dto.SlipListResponse{
		Slips:    slips,
		Counts:   counts,
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *Server) deleteSlip(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.ledger.Delete(r.Context(), userID, id); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: 1})
}

func (s *Server) deleteSlips(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}
	if r.URL.Query().Get("all") != "true" {
		writeErr(w, http.StatusBadRequest, "all=true required")
		return
	}
	n, err := s.ledger.DeleteAll(r.Context(), userID)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: n})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}
	a, err := s.stats.Get(r.Context(), userID)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.StatsResponse{Aggregate: a, HitRate: a.HitRate()})
}

func (s *Server) resetStats(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.user(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "X-User-Id required")
		return
	}
	if err := s.ledger.ResetAll(r.Context(), userID); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) countRejection(err error) {
	switch {
	case errors.Is(err, ledger.ErrQuotaExceeded):
		metrics.SlipsRejected.WithLabelValues("quota").Inc()
	case errors.Is(err, builder.ErrSaveInFlight):
		metrics.SlipsRejected.WithLabelValues("save_in_flight").Inc()
	case errors.Is(err, ledger.ErrStakeTooSmall):
		metrics.SlipsRejected.WithLabelValues("min_stake").Inc()
	case errors.Is(err, ledger.ErrOddsMismatch):
		metrics.SlipsRejected.WithLabelValues("odds_mismatch").Inc()
	case errors.Is(err, ledger.ErrEmptySlip):
		metrics.SlipsRejected.WithLabelValues("empty").Inc()
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/tri-kkk/football-prediction-sub000/internal/builder"
	"github.com/tri-kkk/football-prediction-sub000/internal/catalog"
	"github.com/tri-kkk/football-prediction-sub000/internal/ledger"
	"github.com/tri-kkk/football-prediction-sub000/internal/market"
	"github.com/tri-kkk/football-prediction-sub000/internal/stats"
)

// Ledger is the slip persistence surface used by the handlers.
type Ledger interface {
	Save(ctx context.Context, slip *ledger.Slip, tier ledger.Tier) error
	Delete(ctx context.Context, userID, slipID string) error
	DeleteAll(ctx context.Context, userID string) (int64, error)
	ResetAll(ctx context.Context, userID string) error
	List(ctx context.Context, userID string, tier ledger.Tier, status ledger.Status, page, pageSize int) ([]ledger.Slip, ledger.Counts, error)
}

// Catalog reads the fixture schedule.
type Catalog interface {
	ListRound(ctx context.Context, round string) ([]catalog.Fixture, error)
	Rounds(ctx context.Context) ([]string, error)
}

// StatsReader reads the aggregate row.
type StatsReader interface {
	Get(ctx context.Context, userID string) (stats.Aggregate, error)
}

// RoundCache is the short-TTL redis front for round catalogs; nil disables it.
type RoundCache interface {
	GetRound(ctx context.Context, round string, dst *[]catalog.Fixture) (bool, error)
	SetRound(ctx context.Context, round string, fs []catalog.Fixture, ttl time.Duration) error
}

type Server struct {
	log      *zap.Logger
	ledger   Ledger
	catalog  Catalog
	cache    RoundCache
	stats    StatsReader
	sessions *builder.Sessions
	cacheTTL time.Duration

	corsOrigins []string

	// injectable clock so admission tests can pin "now"
	now func() time.Time
}

func NewServer(log *zap.Logger, l Ledger, c Catalog, rc RoundCache, sr StatsReader, corsOrigins []string, cacheTTL time.Duration) *Server {
	return &Server{
		log:         log,
		ledger:      l,
		catalog:     c,
		cache:       rc,
		stats:       sr,
		sessions:    builder.NewSessions(),
		cacheTTL:    cacheTTL,
		corsOrigins: corsOrigins,
		now:         time.Now,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	c := corslib.New(corslib.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-Id", "X-User-Tier"},
	})
	r.Use(c.Handler)

	r.Get("/v1/matches", s.getMatches)

	r.Get("/v1/slips", s.listSlips)
	r.Post("/v1/slips", s.saveSlip)
	r.Delete("/v1/slips", s.deleteSlips) // ?all=true
	r.Delete("/v1/slips/{id}", s.deleteSlip)

	r.Get("/v1/stats", s.getStats)
	r.Delete("/v1/stats", s.resetStats)

	r.Post("/v1/builder/toggle", s.toggle)
	r.Get("/v1/builder", s.getBuilder)
	r.Delete("/v1/builder", s.clearBuilder)
	r.Post("/v1/builder/save", s.saveFromBuilder)

	return r
}

// identity is resolved upstream; the headers carry the result.
func (s *Server) user(r *http.Request) (userID string, tier ledger.Tier, ok bool) {
	userID = r.Header.Get("X-User-Id")
	if userID == "" {
		return "", "", false
	}
	tier = ledger.TierFree
	if r.Header.Get("X-User-Tier") == string(ledger.TierPremium) {
		tier = ledger.TierPremium
	}
	return userID, tier, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps domain rejections to client statuses; anything unknown is a 500
// and gets logged. Rejections never mutate state, so the client may retry.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrQuotaExceeded),
		errors.Is(err, builder.ErrSaveInFlight),
		errors.Is(err, builder.ErrDuplicateFixture),
		errors.Is(err, ledger.ErrDuplicatePair),
		errors.Is(err, builder.ErrNoOdds),
		errors.Is(err, ledger.ErrOddsMismatch):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrStakeTooSmall),
		errors.Is(err, ledger.ErrEmptySlip),
		errors.Is(err, market.ErrNoSuchOutcome),
		errors.Is(err, market.ErrUnknownType):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("request failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

package catalog

import (
	"context"
	"database/sql"

	"github.com/tri-kkk/football-prediction-sub000/internal/market"
)

// Postgres reads the fixture schedule written by the ingest pipeline.
// This service never writes fixtures.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// ListRound returns every fixture of a round, ordered by seq. Round "0" is
// the unclassified bucket.
func (p *Postgres) ListRound(ctx context.Context, round string) ([]Fixture, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT seq, round, local_date, local_time, kickoff_utc,
		       home_team, away_team, league,
		       market_type, handicap, line,
		       odds_a, odds_b, odds_c, result_code
		FROM fixtures
		WHERE round = $1
		ORDER BY seq`, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Fixture
	for rows.Next() {
		var (
			f                   Fixture
			localDate, localTm  sql.NullString
			kickoff             sql.NullTime
			handicap, line      sql.NullFloat64
			oddsA, oddsB, oddsC sql.NullFloat64
			result              sql.NullString
			mt                  string
		)
		if err := rows.Scan(&f.Seq, &f.Round, &localDate, &localTm, &kickoff,
			&f.HomeTeam, &f.AwayTeam, &f.League,
			&mt, &handicap, &line,
			&oddsA, &oddsB, &oddsC, &result); err != nil {
			return nil, err
		}
		f.LocalDate = localDate.String
		f.LocalTime = localTm.String
		f.MarketType = market.Type(mt)
		if kickoff.Valid {
			t := kickoff.Time
			f.KickoffUTC = &t
		}
		if handicap.Valid {
			v := handicap.Float64
			f.Params.Handicap = &v
		}
		if line.Valid {
			v := line.Float64
			f.Params.Line = &v
		}
		if oddsA.Valid {
			v := oddsA.Float64
			f.OddsA = &v
		}
		if oddsB.Valid {
			v := oddsB.Float64
			f.OddsB = &v
		}
		if oddsC.Valid {
			v := oddsC.Float64
			f.OddsC = &v
		}
		if result.Valid {
			v := result.String
			f.ResultCode = &v
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Rounds lists the known round identifiers, newest first.
func (p *Postgres) Rounds(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT DISTINCT round FROM fixtures ORDER BY round DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

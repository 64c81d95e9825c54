package stats

import (
	"context"
	"database/sql"
)

// Postgres is the read side of the stats row. All mutation goes through the
// ledger's transactions so stats and history can never move independently.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Get returns the user's aggregate, creating the zero row on first access.
func (p *Postgres) Get(ctx context.Context, userID string) (Aggregate, error) {
	a := Aggregate{UserID: userID}
	err := p.db.QueryRowContext(ctx, `
		SELECT total_slips, pending, won, lost,
		       total_invested, total_return, total_deleted, last_updated
		FROM parlay_stats WHERE user_id=$1`, userID).
		Scan(&a.TotalSlips, &a.Pending, &a.Won, &a.Lost,
			&a.TotalInvested, &a.TotalReturn, &a.TotalDeleted, &a.LastUpdated)
	if err == sql.ErrNoRows {
		if _, ierr := p.db.ExecContext(ctx, `
			INSERT INTO parlay_stats (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO NOTHING`, userID); ierr != nil {
			return a, ierr
		}
		return a, nil
	}
	return a, err
}

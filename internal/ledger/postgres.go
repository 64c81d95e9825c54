package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tri-kkk/football-prediction-sub000/internal/stats"
)

// Postgres persists slips and the per-user stats row. Every mutation that
// touches both tables runs inside one transaction, with the stats row as the
// per-user lock, so quota checks and stat updates cannot race across tabs.
type Postgres struct {
	db         *sql.DB
	freeQuota  int           // saved slips per round on the free tier
	minStake   int64         // minimum accepted stake
	freeWindow time.Duration // free-tier history visibility window, 0 = unlimited
}

func NewPostgres(db *sql.DB, freeQuota int, minStake int64, freeWindow time.Duration) *Postgres {
	return &Postgres{db: db, freeQuota: freeQuota, minStake: minStake, freeWindow: freeWindow}
}

// lockStats ensures the user's stats row exists and takes it FOR UPDATE,
// serializing every slip mutation for that user.
func lockStats(ctx context.Context, tx *sql.Tx, userID string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO parlay_stats (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return err
	}
	var id string
	return tx.QueryRowContext(ctx, `
		SELECT user_id FROM parlay_stats WHERE user_id=$1 FOR UPDATE`, userID).Scan(&id)
}

// applyDelta binds a stats delta as SQL parameters, the same numbers the
// in-memory Apply would add. A delta that moves no counted field leaves
// last_updated alone.
func applyDelta(ctx context.Context, tx *sql.Tx, userID string, d stats.Delta) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE parlay_stats
		SET total_slips = total_slips + $1,
		    pending = pending + $2,
		    won = won + $3,
		    lost = lost + $4,
		    total_invested = total_invested + $5,
		    total_return = total_return + $6,
		    total_deleted = total_deleted + $7,
		    last_updated = CASE WHEN $8 THEN NOW() ELSE last_updated END
		WHERE user_id=$9`,
		d.TotalSlips, d.Pending, d.Won, d.Lost,
		d.TotalInvested, d.TotalReturn, d.TotalDeleted,
		d.Counted(), userID)
	return err
}

// Save persists a new pending slip. The quota check and the insert are one
// atomic unit: a free-tier user cannot exceed the round cap even under
// concurrent submissions from multiple tabs.
func (p *Postgres) Save(ctx context.Context, slip *Slip, tier Tier) error {
	if err := validateSlip(slip, p.minStake); err != nil {
		return err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockStats(ctx, tx, slip.UserID); err != nil {
		return err
	}

	var n int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM parlay_slips
		WHERE user_id=$1 AND round=$2`, slip.UserID, slip.Round).Scan(&n); err != nil {
		return err
	}
	if quotaExceeded(tier, n, p.freeQuota) {
		return ErrQuotaExceeded
	}

	slip.ID = uuid.NewString()
	slip.Status = StatusPending
	slip.ActualReturn = 0
	slip.CreatedAt = time.Now()

	sels, err := json.Marshal(slip.Selections)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO parlay_slips (id, user_id, round, selections, total_odds, amount, status, actual_return, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,'pending',0,$7)`,
		slip.ID, slip.UserID, slip.Round, sels, slip.TotalOdds, slip.Amount, slip.CreatedAt); err != nil {
		return err
	}

	if err := applyDelta(ctx, tx, slip.UserID, stats.Created(slip.Amount)); err != nil {
		return err
	}

	return tx.Commit()
}

// Settle moves a pending slip to its terminal status and applies the stats
// delta in the same transaction. Replays of an already-settled slip are
// no-ops.
func (p *Postgres) Settle(ctx context.Context, slipID string, won bool) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// lock ordering is stats row first, slip row second, everywhere; the
	// unlocked read only discovers whose stats row to take
	var userID string
	err = tx.QueryRowContext(ctx, `
		SELECT user_id FROM parlay_slips WHERE id=$1`, slipID).Scan(&userID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := lockStats(ctx, tx, userID); err != nil {
		return err
	}

	var (
		amount    int64
		totalOdds float64
		status    string
	)
	err = tx.QueryRowContext(ctx, `
		SELECT amount, total_odds, status
		FROM parlay_slips WHERE id=$1 FOR UPDATE`, slipID).
		Scan(&amount, &totalOdds, &status)
	if err == sql.ErrNoRows {
		return ErrNotFound // deleted between the two reads
	}
	if err != nil {
		return err
	}
	if Status(status) != StatusPending {
		return nil // already settled
	}

	var payout int64
	newStatus := StatusLost
	if won {
		newStatus = StatusWon
		payout = int64(math.Round(float64(amount) * totalOdds))
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE parlay_slips SET status=$1, actual_return=$2 WHERE id=$3`,
		string(newStatus), payout, slipID); err != nil {
		return err
	}

	if err := applyDelta(ctx, tx, userID, stats.Settled(won, payout)); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes exactly one slip from history. Only total_deleted moves;
// the counted fields stay untouched regardless of the slip's status.
func (p *Postgres) Delete(ctx context.Context, userID, slipID string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockStats(ctx, tx, userID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM parlay_slips WHERE id=$1 AND user_id=$2`, slipID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if err := applyDelta(ctx, tx, userID, stats.Deleted(1)); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteAll empties the user's history; total_deleted absorbs the count and
// nothing else moves.
func (p *Postgres) DeleteAll(ctx context.Context, userID string) (int64, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := lockStats(ctx, tx, userID); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM parlay_slips WHERE user_id=$1`, userID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()

	if err := applyDelta(ctx, tx, userID, stats.Deleted(n)); err != nil {
		return 0, err
	}

	return n, tx.Commit()
}

// ResetAll wipes history and zeroes the stats row in one transaction.
// Irreversible.
func (p *Postgres) ResetAll(ctx context.Context, userID string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockStats(ctx, tx, userID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM parlay_slips WHERE user_id=$1`, userID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE parlay_stats
		SET total_slips=0, pending=0, won=0, lost=0,
		    total_invested=0, total_return=0, total_deleted=0,
		    last_updated=NOW()
		WHERE user_id=$1`, userID); err != nil {
		return err
	}

	return tx.Commit()
}

// List returns one page, most recent first, plus per-status counts over the
// whole visible set. A free-tier history window limits visibility without
// deleting anything.
func (p *Postgres) List(ctx context.Context, userID string, tier Tier, status Status, page, pageSize int) ([]Slip, Counts, error) {
	page, pageSize = NormalizePage(page, pageSize)
	since := visibleSince(tier, p.freeWindow, time.Now())

	var counts Counts
	rows, err := p.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM parlay_slips
		WHERE user_id=$1 AND created_at >= $2
		GROUP BY status`, userID, since)
	if err != nil {
		return nil, counts, err
	}
	for rows.Next() {
		var st string
		var n int64
		if err := rows.Scan(&st, &n); err != nil {
			rows.Close()
			return nil, counts, err
		}
		counts.All += n
		switch Status(st) {
		case StatusPending:
			counts.Pending = n
		case StatusWon:
			counts.Won = n
		case StatusLost:
			counts.Lost = n
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, counts, err
	}

	q := `
		SELECT id, user_id, round, selections, total_odds, amount, status, actual_return, created_at
		FROM parlay_slips
		WHERE user_id=$1 AND created_at >= $2`
	args := []any{userID, since}
	if status != "" {
		q += ` AND status=$3`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(pageSize) + ` OFFSET ` + strconv.Itoa((page-1)*pageSize)

	rows, err = p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, counts, err
	}
	defer rows.Close()

	var out []Slip
	for rows.Next() {
		var (
			s    Slip
			sels []byte
			st   string
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.Round, &sels, &s.TotalOdds,
			&s.Amount, &st, &s.ActualReturn, &s.CreatedAt); err != nil {
			return nil, counts, err
		}
		s.Status = Status(st)
		if err := json.Unmarshal(sels, &s.Selections); err != nil {
			return nil, counts, err
		}
		out = append(out, s)
	}
	return out, counts, rows.Err()
}

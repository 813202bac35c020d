package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/tracker"
)

var _ tracker.Tracker = (*trackerRepo)(nil)

type trackerRepo struct{ db *sql.DB }

func New(db *sql.DB) *trackerRepo {
	return &trackerRepo{db: db}
}

func (r *trackerRepo) Get(ctx context.Context) (tracker.State, error) {
	var st tracker.State

	err := r.db.QueryRowContext(ctx, `
		SELECT active_raffle_id, active_raffle_owner
		FROM tracker
		WHERE id = 1
	`).Scan(&st.ActiveRaffleID, &st.ActiveRaffleOwner)
	if err != nil {
		return tracker.State{}, fmt.Errorf("get tracker: %w", err)
	}

	return st, nil
}

func (r *trackerRepo) Advance(tx *sql.Tx, raffleID int64, owner string) error {
	_, err := tx.Exec(`
		UPDATE tracker
		SET active_raffle_id = $1,
		    active_raffle_owner = $2
		WHERE id = 1
	`, raffleID, owner)
	if err != nil {
		return fmt.Errorf("advance tracker: %w", err)
	}

	return nil
}

func (r *trackerRepo) AddPoints(tx *sql.Tx, owner string, points int64) error {
	_, err := tx.Exec(`
		INSERT INTO points (owner, points)
		VALUES ($1, $2)
		ON CONFLICT (owner) DO UPDATE
		SET points = points.points + EXCLUDED.points
	`, owner, points)
	if err != nil {
		return fmt.Errorf("add points: %w", err)
	}

	return nil
}

func (r *trackerRepo) GetPoints(ctx context.Context, owner string) (int64, error) {
	var pts int64

	err := r.db.QueryRowContext(ctx, `
		SELECT points FROM points WHERE owner = $1
	`, owner).Scan(&pts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}

		return 0, fmt.Errorf("get points: %w", err)
	}

	return pts, nil
}

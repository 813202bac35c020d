package winners

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/winners"
)

var _ winners.Winners = (*winnersRepo)(nil)

type winnersRepo struct{ db *sql.DB }

func New(db *sql.DB) *winnersRepo {
	return &winnersRepo{db: db}
}

func (r *winnersRepo) Insert(tx *sql.Tx, w winners.Winner) error {
	_, err := tx.Exec(`
		INSERT INTO winners (raffle_id, rank, owner, number, payout, paid)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, w.RaffleID, w.Rank, w.Owner, w.Number, w.Payout, w.Paid)
	if err != nil {
		return fmt.Errorf("insert winner: %w", err)
	}

	return nil
}

func scanWinners(rows *sql.Rows) ([]winners.Winner, error) {
	defer rows.Close()

	var out []winners.Winner

	for rows.Next() {
		var w winners.Winner

		err := rows.Scan(&w.RaffleID, &w.Rank, &w.Owner, &w.Number, &w.Payout, &w.Paid)
		if err != nil {
			return nil, fmt.Errorf("scan winner: %w", err)
		}

		out = append(out, w)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate winners: %w", err)
	}

	return out, nil
}

func (r *winnersRepo) ListByRaffle(ctx context.Context, raffleID int64) ([]winners.Winner, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT raffle_id, rank, owner, number, payout, paid
		FROM winners
		WHERE raffle_id = $1
		ORDER BY rank
	`, raffleID)
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}

	return scanWinners(rows)
}

func (r *winnersRepo) ListByRaffleTx(tx *sql.Tx, raffleID int64) ([]winners.Winner, error) {
	rows, err := tx.Query(`
		SELECT raffle_id, rank, owner, number, payout, paid
		FROM winners
		WHERE raffle_id = $1
		ORDER BY rank
		FOR UPDATE
	`, raffleID)
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}

	return scanWinners(rows)
}

func (r *winnersRepo) GetByOwner(tx *sql.Tx, raffleID int64, owner string) (winners.Winner, error) {
	var w winners.Winner

	// Unpaid ranks first, so an owner holding several winning tickets
	// claims them one by one; once all are paid the best rank comes back
	// and the service reports AlreadyPaid.
	err := tx.QueryRow(`
		SELECT raffle_id, rank, owner, number, payout, paid
		FROM winners
		WHERE raffle_id = $1 AND owner = $2
		ORDER BY paid, rank
		LIMIT 1
		FOR UPDATE
	`, raffleID, owner).Scan(&w.RaffleID, &w.Rank, &w.Owner, &w.Number, &w.Payout, &w.Paid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return winners.Winner{}, winners.ErrWinnerNotFound
		}

		return winners.Winner{}, fmt.Errorf("get winner by owner: %w", err)
	}

	return w, nil
}

func (r *winnersRepo) MarkPaid(tx *sql.Tx, raffleID int64, rank int32) error {
	res, err := tx.Exec(`
		UPDATE winners
		SET paid = TRUE
		WHERE raffle_id = $1
		  AND rank = $2
		  AND paid = FALSE
	`, raffleID, rank)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return winners.ErrAlreadyPaid
	}

	return nil
}

func (r *winnersRepo) CountUnpaid(tx *sql.Tx, raffleID int64) (int, error) {
	var n int

	err := tx.QueryRow(`
		SELECT COUNT(*)
		FROM winners
		WHERE raffle_id = $1 AND paid = FALSE
	`, raffleID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unpaid: %w", err)
	}

	return n, nil
}

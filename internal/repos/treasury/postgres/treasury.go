package treasury

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/treasury"
)

var _ treasury.Treasury = (*treasuryRepo)(nil)

type treasuryRepo struct{ db *sql.DB }

func New(db *sql.DB) *treasuryRepo {
	return &treasuryRepo{db: db}
}

func (r *treasuryRepo) GetBalance(ctx context.Context) (int64, error) {
	var balance int64

	err := r.db.QueryRowContext(ctx, `
		SELECT balance FROM treasury WHERE id = 1
	`).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("get treasury balance: %w", err)
	}

	return balance, nil
}

func (r *treasuryRepo) LockAndGetBalance(tx *sql.Tx) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT balance FROM treasury WHERE id = 1 FOR UPDATE
	`).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("lock/get treasury balance: %w", err)
	}

	return balance, nil
}

func (r *treasuryRepo) Credit(tx *sql.Tx, amount int64) error {
	_, err := tx.Exec(`
		UPDATE treasury SET balance = balance + $1 WHERE id = 1
	`, amount)
	if err != nil {
		return fmt.Errorf("credit treasury: %w", err)
	}

	return nil
}

func (r *treasuryRepo) Debit(tx *sql.Tx, amount int64) error {
	res, err := tx.Exec(`
		UPDATE treasury
		SET balance = balance - $1
		WHERE id = 1
		  AND balance >= $1
	`, amount)
	if err != nil {
		return fmt.Errorf("debit treasury: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return treasury.ErrInsufficientFunds
	}

	return nil
}

package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/accounts"
)

func (r *accountsRepo) Get(ctx context.Context, owner string) (accounts.Account, error) {
	acc := accounts.Account{Owner: owner}

	err := r.db.QueryRowContext(ctx, `
		SELECT balance, locked_balance
		FROM accounts
		WHERE owner = $1
	`, owner).Scan(&acc.Balance, &acc.Locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acc, nil
}

func (r *accountsRepo) LockAndGet(tx *sql.Tx, owner string) (accounts.Account, error) {
	acc := accounts.Account{Owner: owner}

	err := tx.QueryRow(`
		SELECT balance, locked_balance
		FROM accounts
		WHERE owner = $1
		FOR UPDATE
	`, owner).Scan(&acc.Balance, &acc.Locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("lock/get account: %w", err)
	}

	return acc, nil
}

func (r *accountsRepo) Credit(tx *sql.Tx, owner string, amount int64) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance + $2
		WHERE owner = $1
	`, owner, amount)
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}

	return nil
}

func (r *accountsRepo) Debit(tx *sql.Tx, owner string, amount int64) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance - $2
		WHERE owner = $1
		  AND balance - locked_balance >= $2
	`, owner, amount)
	if err != nil {
		return fmt.Errorf("debit account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrInsufficientAvailable
	}

	return nil
}

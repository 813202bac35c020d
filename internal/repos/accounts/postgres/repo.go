package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/accounts"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ accounts.Accounts = (*accountsRepo)(nil)

type accountsRepo struct{ db *sql.DB }

func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: db}
}

func (r *accountsRepo) Create(tx *sql.Tx, owner string) error {
	_, err := tx.Exec(`
		INSERT INTO accounts (owner, balance, locked_balance)
		VALUES ($1, 0, 0)
	`, owner)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return accounts.ErrAccountExists
		}

		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *accountsRepo) Ensure(tx *sql.Tx, owner string) error {
	_, err := tx.Exec(`
		INSERT INTO accounts (owner, balance, locked_balance)
		VALUES ($1, 0, 0)
		ON CONFLICT (owner) DO NOTHING
	`, owner)
	if err != nil {
		return fmt.Errorf("ensure account: %w", err)
	}

	return nil
}

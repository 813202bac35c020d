package treasury

import (
	"context"
	"database/sql"
	"errors"
)

var ErrInsufficientFunds = errors.New("insufficient treasury funds")

// Treasury is the single shared custody record pooling raffle proceeds
// and seed fees. The row is created by migration and never removed.
type Treasury interface {
	GetBalance(ctx context.Context) (int64, error)
	LockAndGetBalance(tx *sql.Tx) (int64, error)
	Credit(tx *sql.Tx, amount int64) error
	Debit(tx *sql.Tx, amount int64) error
}

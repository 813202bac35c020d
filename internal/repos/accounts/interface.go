package accounts

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrAccountExists         = errors.New("account already exists")
	ErrInsufficientAvailable = errors.New("insufficient available funds")
	ErrLockedOutOfRange      = errors.New("locked balance out of range")
)

// Account is a per-owner custody record. Locked is the portion of Balance
// committed to open raffles; only Balance-Locked may be withdrawn.
type Account struct {
	Owner   string
	Balance int64
	Locked  int64
}

func (a Account) Available() int64 {
	return a.Balance - a.Locked
}

type Accounts interface {
	// Create inserts a fresh zero-balance record; the owner must not
	// already hold one.
	Create(tx *sql.Tx, owner string) error
	// Ensure inserts the record if missing and is a no-op otherwise.
	Ensure(tx *sql.Tx, owner string) error
	Get(ctx context.Context, owner string) (Account, error)
	LockAndGet(tx *sql.Tx, owner string) (Account, error)
	Credit(tx *sql.Tx, owner string, amount int64) error
	Debit(tx *sql.Tx, owner string, amount int64) error
	AdjustLocked(tx *sql.Tx, owner string, delta int64) error
}

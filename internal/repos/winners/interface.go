package winners

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrWinnerNotFound = errors.New("winner not found")
	ErrAlreadyPaid    = errors.New("winner already paid")
)

// Winner is one entry of a raffle's ranked winner list. Rank starts at 1;
// Payout is the share of the pool assigned at selection time.
type Winner struct {
	RaffleID int64
	Rank     int32
	Owner    string
	Number   int64
	Payout   int64
	Paid     bool
}

type Winners interface {
	Insert(tx *sql.Tx, w Winner) error
	ListByRaffle(ctx context.Context, raffleID int64) ([]Winner, error)
	ListByRaffleTx(tx *sql.Tx, raffleID int64) ([]Winner, error)
	// GetByOwner returns owner's best-ranked unpaid entry, falling back
	// to the best paid one once everything is settled.
	GetByOwner(tx *sql.Tx, raffleID int64, owner string) (Winner, error)
	// MarkPaid flips the paid flag exactly once.
	MarkPaid(tx *sql.Tx, raffleID int64, rank int32) error
	CountUnpaid(tx *sql.Tx, raffleID int64) (int, error)
}

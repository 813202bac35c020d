package raffles

import (
	"context"
	"database/sql"
	"errors"
)

var ErrRaffleNotFound = errors.New("raffle not found")

// Raffle is the per-round state record. Active mirrors the open phase,
// WinnerSelected the one-shot draw, IsClosed the settled/archived phase.
type Raffle struct {
	ID             int64
	Name           string
	TicketPrice    int64
	MaxTickets     int32
	LowerBound     int64
	UpperBound     int64
	TotalSold      int32
	Pool           int64
	StartTime      int64
	EndTime        int64
	Creator        string
	WinnerSelected bool
	IsClosed       bool
	Active         bool
}

type Raffles interface {
	// Create inserts an open raffle and returns its round id.
	Create(tx *sql.Tx, r Raffle) (int64, error)
	Get(ctx context.Context, id int64) (Raffle, error)
	LockAndGet(tx *sql.Tx, id int64) (Raffle, error)
	// RecordSale bumps total_sold and adds the ticket price to the pool.
	RecordSale(tx *sql.Tx, id int64, price int64) error
	// MarkSelected flips active off and records that the draw happened.
	MarkSelected(tx *sql.Tx, id int64) error
	MarkClosed(tx *sql.Tx, id int64) error
	// Delete reclaims a settled record; tickets and winners cascade.
	Delete(tx *sql.Tx, id int64) error
}

package tickets

import (
	"database/sql"
	"errors"
)

var ErrDuplicateTicketNumber = errors.New("duplicate ticket number")

// Ticket is an owned numbered entry in one raffle. The serial ID preserves
// arrival order, which the winner sort uses as its tie-break.
type Ticket struct {
	ID       int64
	RaffleID int64
	Owner    string
	Number   int64
}

type Tickets interface {
	// Insert records a ticket; the number must be unique within the raffle.
	Insert(tx *sql.Tx, raffleID int64, owner string, number int64) error
	// ListByRaffle returns all tickets in arrival order.
	ListByRaffle(tx *sql.Tx, raffleID int64) ([]Ticket, error)
}

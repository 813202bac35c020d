package tickets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/tickets"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ tickets.Tickets = (*ticketsRepo)(nil)

type ticketsRepo struct{ db *sql.DB }

func New(db *sql.DB) *ticketsRepo {
	return &ticketsRepo{db: db}
}

// Insert relies on the (raffle_id, number) unique index for the uniqueness
// guarantee; the tickets themselves stay in arrival order.
func (r *ticketsRepo) Insert(tx *sql.Tx, raffleID int64, owner string, number int64) error {
	_, err := tx.Exec(`
		INSERT INTO tickets (raffle_id, owner, number)
		VALUES ($1, $2, $3)
	`, raffleID, owner, number)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return tickets.ErrDuplicateTicketNumber
		}

		return fmt.Errorf("insert ticket: %w", err)
	}

	return nil
}

func (r *ticketsRepo) ListByRaffle(tx *sql.Tx, raffleID int64) ([]tickets.Ticket, error) {
	rows, err := tx.Query(`
		SELECT id, raffle_id, owner, number
		FROM tickets
		WHERE raffle_id = $1
		ORDER BY id
	`, raffleID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var out []tickets.Ticket

	for rows.Next() {
		var t tickets.Ticket

		err = rows.Scan(&t.ID, &t.RaffleID, &t.Owner, &t.Number)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}

		out = append(out, t)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}

	return out, nil
}

package raffles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/raffles"
)

var _ raffles.Raffles = (*rafflesRepo)(nil)

type rafflesRepo struct{ db *sql.DB }

func New(db *sql.DB) *rafflesRepo {
	return &rafflesRepo{db: db}
}

const raffleColumns = `
	id, name, ticket_price, max_tickets, lower_bound, upper_bound,
	total_sold, pool, start_time, end_time, creator,
	winner_selected, is_closed, active
`

func (r *rafflesRepo) Create(tx *sql.Tx, rf raffles.Raffle) (int64, error) {
	var id int64

	err := tx.QueryRow(`
		INSERT INTO raffles (
			name, ticket_price, max_tickets, lower_bound, upper_bound,
			total_sold, pool, start_time, end_time, creator,
			winner_selected, is_closed, active
		)
		VALUES ($1, $2, $3, $4, $5, 0, 0, $6, $7, $8, FALSE, FALSE, TRUE)
		RETURNING id
	`, rf.Name, rf.TicketPrice, rf.MaxTickets, rf.LowerBound, rf.UpperBound,
		rf.StartTime, rf.EndTime, rf.Creator).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create raffle: %w", err)
	}

	return id, nil
}

func scanRaffle(row *sql.Row) (raffles.Raffle, error) {
	var rf raffles.Raffle

	err := row.Scan(
		&rf.ID, &rf.Name, &rf.TicketPrice, &rf.MaxTickets, &rf.LowerBound, &rf.UpperBound,
		&rf.TotalSold, &rf.Pool, &rf.StartTime, &rf.EndTime, &rf.Creator,
		&rf.WinnerSelected, &rf.IsClosed, &rf.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return raffles.Raffle{}, raffles.ErrRaffleNotFound
		}

		return raffles.Raffle{}, fmt.Errorf("scan raffle: %w", err)
	}

	return rf, nil
}

func (r *rafflesRepo) Get(ctx context.Context, id int64) (raffles.Raffle, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+raffleColumns+`
		FROM raffles
		WHERE id = $1
	`, id)

	return scanRaffle(row)
}

func (r *rafflesRepo) LockAndGet(tx *sql.Tx, id int64) (raffles.Raffle, error) {
	row := tx.QueryRow(`
		SELECT `+raffleColumns+`
		FROM raffles
		WHERE id = $1
		FOR UPDATE
	`, id)

	return scanRaffle(row)
}

func (r *rafflesRepo) RecordSale(tx *sql.Tx, id int64, price int64) error {
	res, err := tx.Exec(`
		UPDATE raffles
		SET total_sold = total_sold + 1,
		    pool = pool + $2
		WHERE id = $1
	`, id, price)
	if err != nil {
		return fmt.Errorf("record sale: %w", err)
	}

	return requireOneRow(res, "record sale")
}

func (r *rafflesRepo) MarkSelected(tx *sql.Tx, id int64) error {
	res, err := tx.Exec(`
		UPDATE raffles
		SET winner_selected = TRUE,
		    active = FALSE
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("mark selected: %w", err)
	}

	return requireOneRow(res, "mark selected")
}

func (r *rafflesRepo) MarkClosed(tx *sql.Tx, id int64) error {
	res, err := tx.Exec(`
		UPDATE raffles
		SET is_closed = TRUE
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("mark closed: %w", err)
	}

	return requireOneRow(res, "mark closed")
}

func (r *rafflesRepo) Delete(tx *sql.Tx, id int64) error {
	res, err := tx.Exec(`
		DELETE FROM raffles WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete raffle: %w", err)
	}

	return requireOneRow(res, "delete raffle")
}

func requireOneRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}

	if affected == 0 {
		return raffles.ErrRaffleNotFound
	}

	return nil
}

package journal

import (
	"database/sql"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/journal"
)

var _ journal.Journal = (*journalRepo)(nil)

type journalRepo struct{ db *sql.DB }

func New(db *sql.DB) *journalRepo {
	return &journalRepo{db: db}
}

func (r *journalRepo) Insert(tx *sql.Tx, e journal.Entry) error {
	_, err := tx.Exec(`
		INSERT INTO journal (id, source, destination, amount)
		VALUES ($1, $2, $3, $4)
	`, e.ID, e.Source, e.Destination, e.Amount)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}

	return nil
}

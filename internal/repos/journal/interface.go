package journal

import (
	"database/sql"

	"github.com/google/uuid"
)

// Entry is the audit row written for every value move between custody
// records; deposits and withdrawals use the "external" endpoint.
type Entry struct {
	ID          uuid.UUID
	Source      string
	Destination string
	Amount      int64
}

type Journal interface {
	Insert(tx *sql.Tx, e Entry) error
}

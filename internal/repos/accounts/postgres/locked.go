package accounts

import (
	"database/sql"
	"fmt"

	"github.com/avolkovs/rafflehub/internal/repos/accounts"
)

// AdjustLocked moves the locked watermark by delta, keeping it inside
// [0, balance]. The WHERE clause enforces the range so a violating call
// touches zero rows.
func (r *accountsRepo) AdjustLocked(tx *sql.Tx, owner string, delta int64) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET locked_balance = locked_balance + $2
		WHERE owner = $1
		  AND locked_balance + $2 >= 0
		  AND locked_balance + $2 <= balance
	`, owner, delta)
	if err != nil {
		return fmt.Errorf("adjust locked: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrLockedOutOfRange
	}

	return nil
}

package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/avolkovs/rafflehub/internal/infra/pgtestutil"
	"github.com/avolkovs/rafflehub/internal/repos/accounts"
)

func TestAccounts_AdjustLocked_Table(t *testing.T) {
	t.Parallel()

	type tc struct {
		name       string
		balance    int64
		locked     int64
		delta      int64
		wantLocked int64
		wantErr    bool // true -> expect accounts.ErrLockedOutOfRange
	}

	tests := []tc{
		{
			name:       "lock_within_balance",
			balance:    1_000,
			locked:     0,
			delta:      400,
			wantLocked: 400,
		},
		{
			name:       "lock_exact_full_balance",
			balance:    1_000,
			locked:     0,
			delta:      1_000,
			wantLocked: 1_000,
		},
		{
			name:    "lock_beyond_balance_rejected",
			balance: 1_000,
			locked:  800,
			delta:   300,
			wantErr: true,
		},
		{
			name:       "unlock_to_zero",
			balance:    1_000,
			locked:     700,
			delta:      -700,
			wantLocked: 0,
		},
		{
			name:    "unlock_below_zero_rejected",
			balance: 1_000,
			locked:  100,
			delta:   -200,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			seed := func(db *sql.DB) {
				_, err := db.Exec(`
					INSERT INTO accounts (owner, balance, locked_balance)
					VALUES ('holder', $1, $2)
				`, tt.balance, tt.locked)
				if err != nil {
					t.Fatalf("seed account: %v", err)
				}
			}
			seed(db)

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			err = repo.AdjustLocked(tx, "holder", tt.delta)

			if tt.wantErr {
				if !errors.Is(err, accounts.ErrLockedOutOfRange) {
					t.Fatalf("expected ErrLockedOutOfRange, got: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("adjust locked: %v", err)
			}

			err = tx.Commit()
			if err != nil {
				t.Fatalf("commit: %v", err)
			}

			acc, err := repo.Get(ctx, "holder")
			if err != nil {
				t.Fatalf("get account: %v", err)
			}

			if acc.Locked != tt.wantLocked {
				t.Fatalf("locked: want %d, got %d", tt.wantLocked, acc.Locked)
			}

			if acc.Locked < 0 || acc.Locked > acc.Balance {
				t.Fatalf("invariant violated: locked %d, balance %d", acc.Locked, acc.Balance)
			}
		})
	}
}

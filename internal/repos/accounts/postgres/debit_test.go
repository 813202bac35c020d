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

func TestAccounts_Debit_Table(t *testing.T) {
	t.Parallel()

	type seedFn func(db *sql.DB, t *testing.T)
	type tc struct {
		name          string
		seed          seedFn
		owner         string
		amount        int64
		wantBalance   int64
		wantErr       bool // true -> expect accounts.ErrInsufficientAvailable
		checkFinalBal bool
	}

	upsert := func(db *sql.DB, owner string, bal, locked int64, t *testing.T) {
		_, err := db.Exec(`
			INSERT INTO accounts (owner, balance, locked_balance) VALUES ($1, $2, $3)
			ON CONFLICT (owner) DO UPDATE
			SET balance = EXCLUDED.balance, locked_balance = EXCLUDED.locked_balance
		`, owner, bal, locked)
		if err != nil {
			t.Fatalf("seed upsert account(%s): %v", owner, err)
		}
	}

	tests := []tc{
		{
			name:          "sufficient_available_decrease",
			seed:          func(db *sql.DB, t *testing.T) { upsert(db, "p1", 1_000, 0, t) },
			owner:         "p1",
			amount:        250,
			wantBalance:   750,
			wantErr:       false,
			checkFinalBal: true,
		},
		{
			name:          "exact_available_to_locked_floor",
			seed:          func(db *sql.DB, t *testing.T) { upsert(db, "p2", 1_000, 400, t) },
			owner:         "p2",
			amount:        600,
			wantBalance:   400,
			wantErr:       false,
			checkFinalBal: true,
		},
		{
			name:          "locked_funds_not_spendable",
			seed:          func(db *sql.DB, t *testing.T) { upsert(db, "p3", 1_000, 800, t) },
			owner:         "p3",
			amount:        300,
			wantBalance:   1_000, // unchanged
			wantErr:       true,
			checkFinalBal: true,
		},
		{
			name:          "insufficient_balance_unchanged",
			seed:          func(db *sql.DB, t *testing.T) { upsert(db, "p4", 200, 0, t) },
			owner:         "p4",
			amount:        300,
			wantBalance:   200,
			wantErr:       true,
			checkFinalBal: true,
		},
		{
			name:          "account_missing_treated_as_insufficient",
			seed:          func(_ *sql.DB, _ *testing.T) {},
			owner:         "ghost",
			amount:        100,
			wantBalance:   0,
			wantErr:       true,
			checkFinalBal: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			if tt.seed != nil {
				tt.seed(db, t)
			}

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			err = repo.Debit(tx, tt.owner, tt.amount)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error (insufficient or missing), got nil")
				}
				if !errors.Is(err, accounts.ErrInsufficientAvailable) {
					t.Fatalf("expected ErrInsufficientAvailable, got: %v", err)
				}
				// no commit on error
			} else {
				if err != nil {
					t.Fatalf("debit: %v", err)
				}
				err = tx.Commit()
				if err != nil {
					t.Fatalf("commit: %v", err)
				}
			}

			if tt.checkFinalBal {
				acc, err := repo.Get(ctx, tt.owner)
				if err != nil {
					t.Fatalf("get account: %v", err)
				}
				if acc.Balance != tt.wantBalance {
					t.Fatalf("final balance: want %d, got %d", tt.wantBalance, acc.Balance)
				}
			}
		})
	}
}

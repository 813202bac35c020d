package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avolkovs/rafflehub/internal/infra/logging"
	"github.com/avolkovs/rafflehub/internal/infra/pgutils"
	"github.com/avolkovs/rafflehub/internal/repos/accounts"
	pgaccounts "github.com/avolkovs/rafflehub/internal/repos/accounts/postgres"
	"github.com/avolkovs/rafflehub/internal/repos/journal"
	pgjournal "github.com/avolkovs/rafflehub/internal/repos/journal/postgres"
	"github.com/avolkovs/rafflehub/internal/repos/treasury"
	pgtreasury "github.com/avolkovs/rafflehub/internal/repos/treasury/postgres"
)

// externalEndpoint is the journal name for value crossing the custody
// boundary (deposits in, withdrawals out).
const externalEndpoint = "external"

type Service struct {
	db       *sql.DB
	accounts accounts.Accounts
	treasury treasury.Treasury
	journal  journal.Journal
	log      *slog.Logger
}

func New(dbx *sql.DB) *Service {
	return &Service{
		db:       dbx,
		accounts: pgaccounts.New(dbx),
		treasury: pgtreasury.New(dbx),
		journal:  pgjournal.New(dbx),
		log:      logging.Component("ledger"),
	}
}

// CreateAccount makes a fresh custody record for owner and applies the
// initial deposit in the same transaction. Zero-balance accounts are
// legal, so amount 0 only creates the row.
func (s *Service) CreateAccount(ctx context.Context, caller, owner string, amount int64) error {
	if caller != owner {
		return ErrNotOwner
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Create(tx, owner)
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		if amount == 0 {
			return nil
		}

		return s.depositTx(tx, owner, amount)
	})
	if err != nil {
		return fmt.Errorf("create account flow: %w", err)
	}

	return nil
}

// Deposit credits owner's balance with funds entering custody. The row is
// materialized on first deposit.
func (s *Service) Deposit(ctx context.Context, owner string, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Ensure(tx, owner)
		if err != nil {
			return fmt.Errorf("ensure account: %w", err)
		}

		return s.depositTx(tx, owner, amount)
	})
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}

	s.log.Info("deposit accepted", "owner", owner, "amount", amount)

	return nil
}

func (s *Service) depositTx(tx *sql.Tx, owner string, amount int64) error {
	acc, err := s.accounts.LockAndGet(tx, owner)
	if err != nil {
		return fmt.Errorf("lock account: %w", err)
	}

	_, err = checkedAdd(acc.Balance, amount)
	if err != nil {
		return err
	}

	err = s.accounts.Credit(tx, owner, amount)
	if err != nil {
		return fmt.Errorf("credit: %w", err)
	}

	err = s.journal.Insert(tx, journal.Entry{
		ID:          uuid.New(),
		Source:      externalEndpoint,
		Destination: owner,
		Amount:      amount,
	})
	if err != nil {
		return fmt.Errorf("journal deposit: %w", err)
	}

	return nil
}

// Withdraw debits owner's available (unlocked) balance; only the owner
// may withdraw.
func (s *Service) Withdraw(ctx context.Context, caller, owner string, amount int64) error {
	if caller != owner {
		return ErrNotOwner
	}

	if amount <= 0 {
		return ErrZeroAmount
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		acc, err := s.accounts.LockAndGet(tx, owner)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		if amount > acc.Available() {
			return accounts.ErrInsufficientAvailable
		}

		_, err = checkedSub(acc.Balance, amount)
		if err != nil {
			return err
		}

		err = s.accounts.Debit(tx, owner, amount)
		if err != nil {
			return fmt.Errorf("debit: %w", err)
		}

		err = s.journal.Insert(tx, journal.Entry{
			ID:          uuid.New(),
			Source:      owner,
			Destination: externalEndpoint,
			Amount:      amount,
		})
		if err != nil {
			return fmt.Errorf("journal withdrawal: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}

	s.log.Info("withdrawal settled", "owner", owner, "amount", amount)

	return nil
}

// LockFunds raises the locked watermark while funds sit committed to an
// open raffle; UnlockFunds lowers it again.
func (s *Service) LockFunds(ctx context.Context, caller, owner string, amount int64) error {
	return s.adjustLocked(ctx, caller, owner, amount)
}

func (s *Service) UnlockFunds(ctx context.Context, caller, owner string, amount int64) error {
	return s.adjustLocked(ctx, caller, owner, -amount)
}

func (s *Service) adjustLocked(ctx context.Context, caller, owner string, delta int64) error {
	if caller != owner {
		return ErrNotOwner
	}

	if delta == 0 {
		return ErrZeroAmount
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.accounts.LockAndGet(tx, owner)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		return s.accounts.AdjustLocked(tx, owner, delta)
	})
	if err != nil {
		return fmt.Errorf("adjust locked funds: %w", err)
	}

	return nil
}

// GetAccount returns the balance snapshot (no locks; read endpoint).
func (s *Service) GetAccount(ctx context.Context, owner string) (accounts.Account, error) {
	acc, err := s.accounts.Get(ctx, owner)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acc, nil
}

func (s *Service) TreasuryBalance(ctx context.Context) (int64, error) {
	balance, err := s.treasury.GetBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("treasury balance: %w", err)
	}

	return balance, nil
}

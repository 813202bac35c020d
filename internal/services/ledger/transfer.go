package ledger

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkovs/rafflehub/internal/repos/journal"
)

// Direction picks which party must present authorization for a move:
// the user signs payments into the treasury, the treasury signs payouts.
// The arithmetic is identical either way.
type Direction int

const (
	UserSigned Direction = iota + 1
	TreasurySigned
)

// Party identifies one custody endpoint of a transfer.
type Party struct {
	treasury bool
	owner    string
}

func UserParty(owner string) Party {
	return Party{owner: owner}
}

func TreasuryParty() Party {
	return Party{treasury: true}
}

func (p Party) name() string {
	if p.treasury {
		return "treasury"
	}

	return p.owner
}

// Move debits src and credits dst inside the caller's transaction. It is
// the sole path by which value moves between custody records: every guard
// runs before the first UPDATE, so a failed move leaves both untouched
// once the transaction rolls back.
func (s *Service) Move(tx *sql.Tx, caller string, dir Direction, src, dst Party, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}

	if src == dst {
		return ErrSameDestination
	}

	switch dir {
	case UserSigned:
		if src.treasury {
			return fmt.Errorf("user-signed move from treasury: %w", ErrNotOwner)
		}

		if src.owner != caller {
			return ErrNotOwner
		}
	case TreasurySigned:
		if !src.treasury {
			return fmt.Errorf("treasury-signed move from user record: %w", ErrNotOwner)
		}
	default:
		return fmt.Errorf("unknown transfer direction %d", dir)
	}

	err := s.debit(tx, src, amount)
	if err != nil {
		return err
	}

	err = s.credit(tx, dst, amount)
	if err != nil {
		return err
	}

	err = s.journal.Insert(tx, journal.Entry{
		ID:          uuid.New(),
		Source:      src.name(),
		Destination: dst.name(),
		Amount:      amount,
	})
	if err != nil {
		return fmt.Errorf("journal transfer: %w", err)
	}

	return nil
}

func (s *Service) debit(tx *sql.Tx, p Party, amount int64) error {
	if p.treasury {
		balance, err := s.treasury.LockAndGetBalance(tx)
		if err != nil {
			return fmt.Errorf("lock treasury: %w", err)
		}

		if balance < amount {
			return ErrInsufficientBalance
		}

		err = s.treasury.Debit(tx, amount)
		if err != nil {
			return fmt.Errorf("debit treasury: %w", err)
		}

		return nil
	}

	acc, err := s.accounts.LockAndGet(tx, p.owner)
	if err != nil {
		return fmt.Errorf("lock source account: %w", err)
	}

	if amount > acc.Available() {
		return ErrInsufficientBalance
	}

	err = s.accounts.Debit(tx, p.owner, amount)
	if err != nil {
		return fmt.Errorf("debit source account: %w", err)
	}

	return nil
}

func (s *Service) credit(tx *sql.Tx, p Party, amount int64) error {
	if p.treasury {
		balance, err := s.treasury.LockAndGetBalance(tx)
		if err != nil {
			return fmt.Errorf("lock treasury: %w", err)
		}

		_, err = checkedAdd(balance, amount)
		if err != nil {
			return err
		}

		err = s.treasury.Credit(tx, amount)
		if err != nil {
			return fmt.Errorf("credit treasury: %w", err)
		}

		return nil
	}

	err := s.accounts.Ensure(tx, p.owner)
	if err != nil {
		return fmt.Errorf("ensure destination account: %w", err)
	}

	acc, err := s.accounts.LockAndGet(tx, p.owner)
	if err != nil {
		return fmt.Errorf("lock destination account: %w", err)
	}

	_, err = checkedAdd(acc.Balance, amount)
	if err != nil {
		return err
	}

	err = s.accounts.Credit(tx, p.owner, amount)
	if err != nil {
		return fmt.Errorf("credit destination account: %w", err)
	}

	return nil
}

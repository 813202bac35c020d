package ledger

import (
	"errors"
	"math"
)

var (
	ErrZeroAmount          = errors.New("zero amount")
	ErrArithmeticOverflow  = errors.New("balance overflow")
	ErrArithmeticUnderflow = errors.New("balance underflow")
	ErrSameDestination     = errors.New("source and destination are the same")
	ErrNotOwner            = errors.New("caller is not the record owner")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// checkedAdd adds two non-negative amounts, refusing to wrap.
func checkedAdd(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, ErrArithmeticOverflow
	}

	return a + b, nil
}

// checkedSub subtracts b from a, refusing to go below zero.
func checkedSub(a, b int64) (int64, error) {
	if b > a {
		return 0, ErrArithmeticUnderflow
	}

	return a - b, nil
}

package raffle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PayoutSplit is the ranked percentage split of the pool, first rank
// first ("50,30,20"). Shares must be positive and sum to 100.
type PayoutSplit []int64

func (p *PayoutSplit) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		return errors.New("empty payout split")
	}

	parts := strings.Split(raw, ",")
	shares := make(PayoutSplit, 0, len(parts))

	var sum int64

	for _, part := range parts {
		share, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return fmt.Errorf("parse payout share %q: %w", part, err)
		}

		if share <= 0 {
			return fmt.Errorf("payout share must be positive, got %d", share)
		}

		shares = append(shares, share)
		sum += share
	}

	if sum != 100 {
		return fmt.Errorf("payout shares must sum to 100, got %d", sum)
	}

	*p = shares

	return nil
}

type Config struct {
	// SeedFund is charged to the creator on initialization; it backs the
	// out-of-band randomness fee for the round.
	SeedFund int64 `env:"RAFFLE_SEED_FUND"`
	// WinnerCount is how many ranked winners a draw selects, capped at
	// the number of tickets actually sold.
	WinnerCount      int         `env:"RAFFLE_WINNER_COUNT"`
	PayoutSplit      PayoutSplit `env:"RAFFLE_PAYOUT_SPLIT"`
	PointsPerTicket  int64       `env:"RAFFLE_POINTS_PER_TICKET"`
	PointsForSelling int64       `env:"RAFFLE_POINTS_FOR_SELLING"`
}

func (c Config) Validate() error {
	if c.SeedFund <= 0 {
		return errors.New("seed fund must be positive")
	}

	if c.WinnerCount <= 0 {
		return errors.New("winner count must be positive")
	}

	if len(c.PayoutSplit) != c.WinnerCount {
		return fmt.Errorf("payout split has %d shares for %d winners",
			len(c.PayoutSplit), c.WinnerCount)
	}

	return nil
}

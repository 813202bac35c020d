package tracker

import (
	"context"
	"database/sql"
)

// State is the process-wide registry row: which raffle round is live and
// who created it. Round 0 means no raffle has run yet.
type State struct {
	ActiveRaffleID    int64
	ActiveRaffleOwner string
}

type Tracker interface {
	Get(ctx context.Context) (State, error)
	// Advance points the registry at the new round.
	Advance(tx *sql.Tx, raffleID int64, owner string) error
	// AddPoints accrues reward points for an owner across raffles.
	AddPoints(tx *sql.Tx, owner string, points int64) error
	GetPoints(ctx context.Context, owner string) (int64, error)
}

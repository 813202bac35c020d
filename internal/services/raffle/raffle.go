package raffle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/avolkovs/rafflehub/internal/infra/logging"
	"github.com/avolkovs/rafflehub/internal/infra/pgutils"
	"github.com/avolkovs/rafflehub/internal/repos/raffles"
	pgraffles "github.com/avolkovs/rafflehub/internal/repos/raffles/postgres"
	"github.com/avolkovs/rafflehub/internal/repos/tickets"
	pgtickets "github.com/avolkovs/rafflehub/internal/repos/tickets/postgres"
	"github.com/avolkovs/rafflehub/internal/repos/tracker"
	pgtracker "github.com/avolkovs/rafflehub/internal/repos/tracker/postgres"
	"github.com/avolkovs/rafflehub/internal/repos/winners"
	pgwinners "github.com/avolkovs/rafflehub/internal/repos/winners/postgres"
	"github.com/avolkovs/rafflehub/internal/services/ledger"
)

type Service struct {
	db      *sql.DB
	ledger  *ledger.Service
	raffles raffles.Raffles
	tickets tickets.Tickets
	winners winners.Winners
	tracker tracker.Tracker
	cfg     Config
	log     *slog.Logger
}

func New(dbx *sql.DB, ledgerSrv *ledger.Service, cfg Config) (*Service, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("raffle config: %w", err)
	}

	return &Service{
		db:      dbx,
		ledger:  ledgerSrv,
		raffles: pgraffles.New(dbx),
		tickets: pgtickets.New(dbx),
		winners: pgwinners.New(dbx),
		tracker: pgtracker.New(dbx),
		cfg:     cfg,
		log:     logging.Component("raffle"),
	}, nil
}

// Initialize opens a new raffle round. The creator funds the round's seed
// fee into the treasury, the registry advances to the new round, and the
// creator earns selling points — all in one transaction.
func (s *Service) Initialize(ctx context.Context, caller, name string, ticketPrice int64, maxTickets int32, endTime, lower, upper int64) (raffles.Raffle, error) {
	if len(name) < 2 {
		return raffles.Raffle{}, ErrEmptyName
	}

	if ticketPrice <= 0 || maxTickets <= 0 {
		return raffles.Raffle{}, ErrInvalidAmount
	}

	if lower < 0 || upper <= lower {
		return raffles.Raffle{}, ErrInvalidBound
	}

	now := time.Now().Unix()
	if endTime <= now {
		return raffles.Raffle{}, ErrInvalidEndTime
	}

	rf := raffles.Raffle{
		Name:        name,
		TicketPrice: ticketPrice,
		MaxTickets:  maxTickets,
		LowerBound:  lower,
		UpperBound:  upper,
		StartTime:   now,
		EndTime:     endTime,
		Creator:     caller,
		Active:      true,
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		id, err := s.raffles.Create(tx, rf)
		if err != nil {
			return fmt.Errorf("create raffle: %w", err)
		}

		rf.ID = id

		err = s.ledger.Move(tx, caller, ledger.UserSigned,
			ledger.UserParty(caller), ledger.TreasuryParty(), s.cfg.SeedFund)
		if err != nil {
			return fmt.Errorf("fund raffle seed: %w", err)
		}

		err = s.tracker.Advance(tx, id, caller)
		if err != nil {
			return fmt.Errorf("advance tracker: %w", err)
		}

		err = s.tracker.AddPoints(tx, caller, s.cfg.PointsForSelling)
		if err != nil {
			return fmt.Errorf("selling points: %w", err)
		}

		return nil
	})
	if err != nil {
		return raffles.Raffle{}, fmt.Errorf("initialize raffle: %w", err)
	}

	s.log.Info("raffle initialized", "raffleId", rf.ID, "creator", caller)

	return rf, nil
}

// BuyTicket issues one numbered ticket to caller. The ticket row and the
// price transfer happen in the same transaction; if either fails nothing
// is recorded.
func (s *Service) BuyTicket(ctx context.Context, caller string, raffleID, number int64) (tickets.Ticket, error) {
	var bought tickets.Ticket

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		rf, err := s.raffles.LockAndGet(tx, raffleID)
		if err != nil {
			return fmt.Errorf("lock raffle: %w", err)
		}

		if !rf.Active {
			return ErrRaffleInactive
		}

		if time.Now().Unix() > rf.EndTime {
			return ErrRaffleExpired
		}

		if rf.TotalSold >= rf.MaxTickets {
			return ErrTicketLimitReached
		}

		if rf.TotalSold == math.MaxInt32 {
			return ledger.ErrArithmeticOverflow
		}

		if number < rf.LowerBound || number > rf.UpperBound {
			return ErrNumberOutOfBounds
		}

		err = s.ledger.Move(tx, caller, ledger.UserSigned,
			ledger.UserParty(caller), ledger.TreasuryParty(), rf.TicketPrice)
		if err != nil {
			return fmt.Errorf("pay ticket price: %w", err)
		}

		err = s.tickets.Insert(tx, raffleID, caller, number)
		if err != nil {
			return fmt.Errorf("record ticket: %w", err)
		}

		err = s.raffles.RecordSale(tx, raffleID, rf.TicketPrice)
		if err != nil {
			return fmt.Errorf("record sale: %w", err)
		}

		err = s.tracker.AddPoints(tx, caller, s.cfg.PointsPerTicket)
		if err != nil {
			return fmt.Errorf("ticket points: %w", err)
		}

		bought = tickets.Ticket{RaffleID: raffleID, Owner: caller, Number: number}

		return nil
	})
	if err != nil {
		return tickets.Ticket{}, fmt.Errorf("buy ticket: %w", err)
	}

	return bought, nil
}

// SelectWinner runs the one-shot draw. The seed comes from the external
// randomness source; ranking is a pure function of (seed, tickets, bound),
// so replays with the same inputs produce the same list. Only the creator
// may draw before the end time.
func (s *Service) SelectWinner(ctx context.Context, caller string, raffleID int64, seed uint64) ([]winners.Winner, error) {
	var selected []winners.Winner

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		rf, err := s.raffles.LockAndGet(tx, raffleID)
		if err != nil {
			return fmt.Errorf("lock raffle: %w", err)
		}

		if rf.IsClosed {
			return ErrAlreadyClosed
		}

		if rf.WinnerSelected {
			return ErrWinnerAlreadySelected
		}

		if caller != rf.Creator && time.Now().Unix() <= rf.EndTime {
			return ErrNotCreator
		}

		ts, err := s.tickets.ListByRaffle(tx, raffleID)
		if err != nil {
			return fmt.Errorf("list tickets: %w", err)
		}

		if len(ts) == 0 {
			return ErrNoTickets
		}

		ranked := rankTickets(seed, rf.LowerBound, rf.UpperBound, ts, s.cfg.WinnerCount)
		payouts := splitPool(rf.Pool, s.cfg.PayoutSplit, len(ranked))

		for i, t := range ranked {
			w := winners.Winner{
				RaffleID: raffleID,
				Rank:     int32(i + 1),
				Owner:    t.Owner,
				Number:   t.Number,
				Payout:   payouts[i],
				// A small pool truncates low ranks to zero; record
				// those as settled so payout never moves a zero amount.
				Paid: payouts[i] == 0,
			}

			err = s.winners.Insert(tx, w)
			if err != nil {
				return fmt.Errorf("record winner: %w", err)
			}

			selected = append(selected, w)
		}

		err = s.raffles.MarkSelected(tx, raffleID)
		if err != nil {
			return fmt.Errorf("mark selected: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("select winner: %w", err)
	}

	s.log.Info("winners selected", "raffleId", raffleID, "count", len(selected))

	return selected, nil
}

// Distribute pays every still-unpaid winner its recorded share from the
// treasury and settles the raffle. The is_closed guard makes it one-shot.
func (s *Service) Distribute(ctx context.Context, raffleID int64) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		rf, err := s.raffles.LockAndGet(tx, raffleID)
		if err != nil {
			return fmt.Errorf("lock raffle: %w", err)
		}

		if rf.IsClosed {
			return ErrAlreadyClosed
		}

		if !rf.WinnerSelected {
			return ErrWinnerNotSelected
		}

		ws, err := s.winners.ListByRaffleTx(tx, raffleID)
		if err != nil {
			return fmt.Errorf("list winners: %w", err)
		}

		for _, w := range ws {
			if w.Paid {
				continue
			}

			err = s.ledger.Move(tx, "", ledger.TreasurySigned,
				ledger.TreasuryParty(), ledger.UserParty(w.Owner), w.Payout)
			if err != nil {
				return fmt.Errorf("pay rank %d: %w", w.Rank, err)
			}

			err = s.winners.MarkPaid(tx, raffleID, w.Rank)
			if err != nil {
				return fmt.Errorf("mark rank %d paid: %w", w.Rank, err)
			}
		}

		err = s.raffles.MarkClosed(tx, raffleID)
		if err != nil {
			return fmt.Errorf("mark closed: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("distribute rewards: %w", err)
	}

	s.log.Info("rewards distributed", "raffleId", raffleID)

	return nil
}

// Claim pays one winner its own share; the raffle settles once the last
// winner has claimed.
func (s *Service) Claim(ctx context.Context, caller string, raffleID int64) (winners.Winner, error) {
	var claimed winners.Winner

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		rf, err := s.raffles.LockAndGet(tx, raffleID)
		if err != nil {
			return fmt.Errorf("lock raffle: %w", err)
		}

		if !rf.WinnerSelected {
			return ErrWinnerNotSelected
		}

		w, err := s.winners.GetByOwner(tx, raffleID, caller)
		if err != nil {
			if errors.Is(err, winners.ErrWinnerNotFound) {
				return ErrCallerNotWinner
			}

			return fmt.Errorf("get winner: %w", err)
		}

		if w.Paid {
			return winners.ErrAlreadyPaid
		}

		err = s.ledger.Move(tx, "", ledger.TreasurySigned,
			ledger.TreasuryParty(), ledger.UserParty(caller), w.Payout)
		if err != nil {
			return fmt.Errorf("pay claim: %w", err)
		}

		err = s.winners.MarkPaid(tx, raffleID, w.Rank)
		if err != nil {
			return fmt.Errorf("mark paid: %w", err)
		}

		unpaid, err := s.winners.CountUnpaid(tx, raffleID)
		if err != nil {
			return fmt.Errorf("count unpaid: %w", err)
		}

		if unpaid == 0 && !rf.IsClosed {
			err = s.raffles.MarkClosed(tx, raffleID)
			if err != nil {
				return fmt.Errorf("mark closed: %w", err)
			}
		}

		claimed = w
		claimed.Paid = true

		return nil
	})
	if err != nil {
		return winners.Winner{}, fmt.Errorf("claim reward: %w", err)
	}

	return claimed, nil
}

// Close reclaims a settled raffle record; only the creator may close, and
// only after distribution settled it.
func (s *Service) Close(ctx context.Context, caller string, raffleID int64) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		rf, err := s.raffles.LockAndGet(tx, raffleID)
		if err != nil {
			return fmt.Errorf("lock raffle: %w", err)
		}

		if rf.Creator != caller {
			return ErrNotCreator
		}

		if !rf.IsClosed {
			return ErrRaffleNotClosed
		}

		err = s.raffles.Delete(tx, raffleID)
		if err != nil {
			return fmt.Errorf("delete raffle: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("close raffle: %w", err)
	}

	s.log.Info("raffle closed", "raffleId", raffleID)

	return nil
}

func (s *Service) Get(ctx context.Context, raffleID int64) (raffles.Raffle, []winners.Winner, error) {
	rf, err := s.raffles.Get(ctx, raffleID)
	if err != nil {
		return raffles.Raffle{}, nil, fmt.Errorf("get raffle: %w", err)
	}

	ws, err := s.winners.ListByRaffle(ctx, raffleID)
	if err != nil {
		return raffles.Raffle{}, nil, fmt.Errorf("get winners: %w", err)
	}

	return rf, ws, nil
}

func (s *Service) TrackerState(ctx context.Context) (tracker.State, error) {
	st, err := s.tracker.Get(ctx)
	if err != nil {
		return tracker.State{}, fmt.Errorf("tracker state: %w", err)
	}

	return st, nil
}

func (s *Service) Points(ctx context.Context, owner string) (int64, error) {
	pts, err := s.tracker.GetPoints(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("points: %w", err)
	}

	return pts, nil
}

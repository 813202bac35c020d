package raffle

import "errors"

var (
	ErrEmptyName             = errors.New("empty raffle name")
	ErrInvalidAmount         = errors.New("invalid ticket price or ticket limit")
	ErrInvalidEndTime        = errors.New("end time is not in the future")
	ErrInvalidBound          = errors.New("invalid ticket number bound")
	ErrRaffleInactive        = errors.New("raffle is not active")
	ErrRaffleExpired         = errors.New("raffle end time has passed")
	ErrTicketLimitReached    = errors.New("ticket limit reached")
	ErrNumberOutOfBounds     = errors.New("ticket number outside configured bound")
	ErrAlreadyClosed         = errors.New("raffle already closed")
	ErrWinnerAlreadySelected = errors.New("winner already selected")
	ErrNoTickets             = errors.New("no tickets sold")
	ErrWinnerNotSelected     = errors.New("winner not selected yet")
	ErrCallerNotWinner       = errors.New("caller is not a winner")
	ErrRaffleNotClosed       = errors.New("raffle is not closed")
	ErrNotCreator            = errors.New("caller is not the raffle creator")
)

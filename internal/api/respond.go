package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/avolkovs/rafflehub/internal/repos/accounts"
	"github.com/avolkovs/rafflehub/internal/repos/raffles"
	"github.com/avolkovs/rafflehub/internal/repos/tickets"
	"github.com/avolkovs/rafflehub/internal/repos/treasury"
	"github.com/avolkovs/rafflehub/internal/repos/winners"
	"github.com/avolkovs/rafflehub/internal/services/ledger"
	"github.com/avolkovs/rafflehub/internal/services/raffle"
)

// HandlerProvider wraps the ledger and raffle services and exposes HTTP
// handlers.
type HandlerProvider struct {
	ledger *ledger.Service
	raffle *raffle.Service
}

// NewHandler returns a new Handler provider.
func NewHandler(ledgerSrv *ledger.Service, raffleSrv *raffle.Service) *HandlerProvider {
	return &HandlerProvider{ledger: ledgerSrv, raffle: raffleSrv}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain sentinels to HTTP statuses. Anything not
// in the taxonomy is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	// Validation.
	case errors.Is(err, ledger.ErrZeroAmount),
		errors.Is(err, raffle.ErrEmptyName),
		errors.Is(err, raffle.ErrInvalidAmount),
		errors.Is(err, raffle.ErrInvalidEndTime),
		errors.Is(err, raffle.ErrInvalidBound),
		errors.Is(err, raffle.ErrNumberOutOfBounds):
		writeError(w, http.StatusBadRequest, err.Error())

	// Authorization.
	case errors.Is(err, ledger.ErrNotOwner),
		errors.Is(err, raffle.ErrNotCreator),
		errors.Is(err, raffle.ErrCallerNotWinner):
		writeError(w, http.StatusForbidden, err.Error())

	// Missing records.
	case errors.Is(err, accounts.ErrAccountNotFound),
		errors.Is(err, raffles.ErrRaffleNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	// State, funds, and arithmetic conflicts.
	case errors.Is(err, accounts.ErrAccountExists),
		errors.Is(err, accounts.ErrInsufficientAvailable),
		errors.Is(err, accounts.ErrLockedOutOfRange),
		errors.Is(err, treasury.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrSameDestination),
		errors.Is(err, ledger.ErrArithmeticOverflow),
		errors.Is(err, ledger.ErrArithmeticUnderflow),
		errors.Is(err, tickets.ErrDuplicateTicketNumber),
		errors.Is(err, winners.ErrAlreadyPaid),
		errors.Is(err, raffle.ErrRaffleInactive),
		errors.Is(err, raffle.ErrRaffleExpired),
		errors.Is(err, raffle.ErrTicketLimitReached),
		errors.Is(err, raffle.ErrAlreadyClosed),
		errors.Is(err, raffle.ErrWinnerAlreadySelected),
		errors.Is(err, raffle.ErrNoTickets),
		errors.Is(err, raffle.ErrWinnerNotSelected),
		errors.Is(err, raffle.ErrRaffleNotClosed):
		writeError(w, http.StatusConflict, err.Error())

	default:
		slog.Error("unhandled domain error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// callerIdentity reads the authenticated caller from the X-Caller header.
// The upstream dispatch layer owns the actual authentication; the core
// only needs the identity for owner checks.
func callerIdentity(r *http.Request) (string, error) {
	caller := strings.TrimSpace(r.Header.Get("X-Caller"))
	if caller == "" {
		return "", fmt.Errorf("missing X-Caller header")
	}

	return caller, nil
}

func parseOwnerFromPath(r *http.Request) (string, error) {
	owner := chi.URLParam(r, "owner")
	if owner == "" {
		return "", fmt.Errorf("missing owner")
	}

	return owner, nil
}

func parseRaffleIDFromPath(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "raffleId")
	if idStr == "" {
		return 0, fmt.Errorf("missing raffleId")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid raffleId")
	}

	return id, nil
}

// decodeBody decodes a size-capped JSON request body into dst, rejecting
// unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

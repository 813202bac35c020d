package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkovs/rafflehub/internal/services/ledger"
	"github.com/avolkovs/rafflehub/internal/services/raffle"
)

// NewRouter constructs the chi router with all API endpoints registered.
func NewRouter(ledgerSrv *ledger.Service, raffleSrv *raffle.Service) http.Handler {
	h := NewHandler(ledgerSrv, raffleSrv)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/accounts", h.CreateAccountHandler)
	r.Get("/accounts/{owner}/balance", h.GetBalanceHandler)
	r.Post("/accounts/{owner}/deposit", h.DepositHandler)
	r.Post("/accounts/{owner}/withdraw", h.WithdrawHandler)
	r.Post("/accounts/{owner}/lock", h.LockFundsHandler)
	r.Post("/accounts/{owner}/unlock", h.UnlockFundsHandler)

	r.Get("/treasury/balance", h.TreasuryBalanceHandler)

	r.Post("/raffles", h.InitializeRaffleHandler)
	r.Get("/raffles/{raffleId}", h.GetRaffleHandler)
	r.Delete("/raffles/{raffleId}", h.CloseRaffleHandler)
	r.Post("/raffles/{raffleId}/tickets", h.BuyTicketHandler)
	r.Post("/raffles/{raffleId}/winners", h.SelectWinnerHandler)
	r.Post("/raffles/{raffleId}/distribute", h.DistributeHandler)
	r.Post("/raffles/{raffleId}/claim", h.ClaimHandler)

	r.Get("/tracker", h.TrackerHandler)
	r.Get("/tracker/points/{owner}", h.PointsHandler)

	return r
}

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/avolkovs/rafflehub/internal/services/ledger"
	"github.com/avolkovs/rafflehub/internal/services/raffle"
)

// NewServer creates and returns a configured *http.Server for the custody
// and raffle API.
func NewServer(port uint16, ledgerSrv *ledger.Service, raffleSrv *raffle.Service) *http.Server {
	mux := NewRouter(ledgerSrv, raffleSrv)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

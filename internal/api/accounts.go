package api

import (
	"net/http"
)

type createAccountRequest struct {
	Owner  string `json:"owner"`
	Amount int64  `json:"amount"`
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// CreateAccountHandler handles POST /accounts.
func (h *HandlerProvider) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req createAccountRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Owner == "" {
		writeError(w, http.StatusBadRequest, "owner required")
		return
	}

	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}

	err = h.ledger.CreateAccount(r.Context(), caller, req.Owner, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"owner":   req.Owner,
		"balance": req.Amount,
	})
}

// GetBalanceHandler handles GET /accounts/{owner}/balance.
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := parseOwnerFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := h.ledger.GetAccount(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"owner":     acc.Owner,
		"balance":   acc.Balance,
		"locked":    acc.Locked,
		"available": acc.Available(),
	})
}

// DepositHandler handles POST /accounts/{owner}/deposit.
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := parseOwnerFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req amountRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.ledger.Deposit(r.Context(), owner, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WithdrawHandler handles POST /accounts/{owner}/withdraw.
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	owner, err := parseOwnerFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req amountRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.ledger.Withdraw(r.Context(), caller, owner, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// LockFundsHandler handles POST /accounts/{owner}/lock.
func (h *HandlerProvider) LockFundsHandler(w http.ResponseWriter, r *http.Request) {
	h.adjustLocked(w, r, false)
}

// UnlockFundsHandler handles POST /accounts/{owner}/unlock.
func (h *HandlerProvider) UnlockFundsHandler(w http.ResponseWriter, r *http.Request) {
	h.adjustLocked(w, r, true)
}

func (h *HandlerProvider) adjustLocked(w http.ResponseWriter, r *http.Request, unlock bool) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	owner, err := parseOwnerFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req amountRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if unlock {
		err = h.ledger.UnlockFunds(r.Context(), caller, owner, req.Amount)
	} else {
		err = h.ledger.LockFunds(r.Context(), caller, owner, req.Amount)
	}

	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// TreasuryBalanceHandler handles GET /treasury/balance.
func (h *HandlerProvider) TreasuryBalanceHandler(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledger.TreasuryBalance(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

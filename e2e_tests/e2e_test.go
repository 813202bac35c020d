package e2etests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

const (
	baseURL = "http://localhost:8080"
	timeout = 5 * time.Second
)

var httpClient = &http.Client{Timeout: timeout}

func doJSON(t *testing.T, method, path, caller string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-Caller", caller)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)

	return resp.StatusCode, out
}

func waitUntilReady(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := httpClient.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		time.Sleep(200 * time.Millisecond)
	}

	t.Fatal("service did not become ready")
}

func uniqOwner(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestE2E_LedgerFlow(t *testing.T) {
	waitUntilReady(t)

	owner := uniqOwner("e2e-ledger")

	t.Run("deposit_materializes_account", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/accounts/"+owner+"/deposit", owner,
			map[string]any{"amount": 1000})
		if code != http.StatusOK {
			t.Fatalf("deposit: want 200, got %d (%v)", code, body)
		}

		code, body = doJSON(t, http.MethodGet, "/accounts/"+owner+"/balance", "", nil)
		if code != http.StatusOK {
			t.Fatalf("balance: want 200, got %d", code)
		}
		if body["balance"] != float64(1000) {
			t.Fatalf("balance: want 1000, got %v", body["balance"])
		}
	})

	t.Run("zero_deposit_rejected", func(t *testing.T) {
		code, _ := doJSON(t, http.MethodPost, "/accounts/"+owner+"/deposit", owner,
			map[string]any{"amount": 0})
		if code != http.StatusBadRequest {
			t.Fatalf("deposit(0): want 400, got %d", code)
		}
	})

	t.Run("foreign_withdraw_forbidden", func(t *testing.T) {
		code, _ := doJSON(t, http.MethodPost, "/accounts/"+owner+"/withdraw", "mallory",
			map[string]any{"amount": 100})
		if code != http.StatusForbidden {
			t.Fatalf("foreign withdraw: want 403, got %d", code)
		}
	})

	t.Run("locked_funds_block_withdraw", func(t *testing.T) {
		code, _ := doJSON(t, http.MethodPost, "/accounts/"+owner+"/lock", owner,
			map[string]any{"amount": 900})
		if code != http.StatusOK {
			t.Fatalf("lock: want 200, got %d", code)
		}

		code, _ = doJSON(t, http.MethodPost, "/accounts/"+owner+"/withdraw", owner,
			map[string]any{"amount": 200})
		if code != http.StatusConflict {
			t.Fatalf("withdraw over available: want 409, got %d", code)
		}

		code, body := doJSON(t, http.MethodGet, "/accounts/"+owner+"/balance", "", nil)
		if code != http.StatusOK || body["balance"] != float64(1000) {
			t.Fatalf("balance after failed withdraw: got %d %v", code, body)
		}
	})
}

func TestE2E_RaffleRoundTrip(t *testing.T) {
	waitUntilReady(t)

	creator := uniqOwner("e2e-creator")
	buyerA := uniqOwner("e2e-buyer-a")
	buyerB := uniqOwner("e2e-buyer-b")

	const price = 1_000_000

	for _, owner := range []string{creator, buyerA, buyerB} {
		code, body := doJSON(t, http.MethodPost, "/accounts/"+owner+"/deposit", owner,
			map[string]any{"amount": 10_000_000})
		if code != http.StatusOK {
			t.Fatalf("fund %s: got %d (%v)", owner, code, body)
		}
	}

	var raffleID float64

	t.Run("initialize", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, "/raffles", creator, map[string]any{
			"name":        "e2e round",
			"ticketPrice": price,
			"maxTickets":  10,
			"endTime":     time.Now().Add(time.Hour).Unix(),
			"lowerBound":  5000,
			"upperBound":  6000,
		})
		if code != http.StatusCreated {
			t.Fatalf("initialize: want 201, got %d (%v)", code, body)
		}

		var ok bool
		raffleID, ok = body["id"].(float64)
		if !ok || raffleID <= 0 {
			t.Fatalf("no raffle id in response: %v", body)
		}
	})

	path := fmt.Sprintf("/raffles/%d", int64(raffleID))

	t.Run("buy_tickets", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, path+"/tickets", buyerA,
			map[string]any{"number": 5244})
		if code != http.StatusCreated {
			t.Fatalf("buyerA ticket: want 201, got %d (%v)", code, body)
		}

		code, body = doJSON(t, http.MethodPost, path+"/tickets", buyerB,
			map[string]any{"number": 5999})
		if code != http.StatusCreated {
			t.Fatalf("buyerB ticket: want 201, got %d (%v)", code, body)
		}

		// Same number again: conflict.
		code, _ = doJSON(t, http.MethodPost, path+"/tickets", buyerB,
			map[string]any{"number": 5244})
		if code != http.StatusConflict {
			t.Fatalf("duplicate number: want 409, got %d", code)
		}
	})

	t.Run("select_and_distribute", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, path+"/winners", creator,
			map[string]any{"seed": 244}) // point 5244
		if code != http.StatusOK {
			t.Fatalf("select winner: want 200, got %d (%v)", code, body)
		}

		// One-shot draw.
		code, _ = doJSON(t, http.MethodPost, path+"/winners", creator,
			map[string]any{"seed": 244})
		if code != http.StatusConflict {
			t.Fatalf("second draw: want 409, got %d", code)
		}

		code, _ = doJSON(t, http.MethodPost, path+"/distribute", creator, nil)
		if code != http.StatusOK {
			t.Fatalf("distribute: want 200, got %d", code)
		}

		code, _ = doJSON(t, http.MethodPost, path+"/distribute", creator, nil)
		if code != http.StatusConflict {
			t.Fatalf("second distribute: want 409, got %d", code)
		}
	})

	t.Run("close", func(t *testing.T) {
		code, _ := doJSON(t, http.MethodDelete, path, buyerA, nil)
		if code != http.StatusForbidden {
			t.Fatalf("foreign close: want 403, got %d", code)
		}

		code, _ = doJSON(t, http.MethodDelete, path, creator, nil)
		if code != http.StatusOK {
			t.Fatalf("close: want 200, got %d", code)
		}

		code, _ = doJSON(t, http.MethodGet, path, "", nil)
		if code != http.StatusNotFound {
			t.Fatalf("closed raffle lookup: want 404, got %d", code)
		}
	})
}

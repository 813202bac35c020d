package api

import (
	"net/http"

	"github.com/avolkovs/rafflehub/internal/repos/raffles"
	"github.com/avolkovs/rafflehub/internal/repos/winners"
)

type initializeRaffleRequest struct {
	Name        string `json:"name"`
	TicketPrice int64  `json:"ticketPrice"`
	MaxTickets  int32  `json:"maxTickets"`
	EndTime     int64  `json:"endTime"`
	LowerBound  int64  `json:"lowerBound"`
	UpperBound  int64  `json:"upperBound"`
}

type buyTicketRequest struct {
	Number int64 `json:"number"`
}

type selectWinnerRequest struct {
	Seed uint64 `json:"seed"`
}

type winnerResponse struct {
	Rank   int32  `json:"rank"`
	Owner  string `json:"owner"`
	Number int64  `json:"number"`
	Payout int64  `json:"payout"`
	Paid   bool   `json:"paid"`
}

func toWinnerResponses(ws []winners.Winner) []winnerResponse {
	out := make([]winnerResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, winnerResponse{
			Rank:   w.Rank,
			Owner:  w.Owner,
			Number: w.Number,
			Payout: w.Payout,
			Paid:   w.Paid,
		})
	}

	return out
}

func raffleResponse(rf raffles.Raffle, ws []winners.Winner) map[string]any {
	return map[string]any{
		"id":             rf.ID,
		"name":           rf.Name,
		"ticketPrice":    rf.TicketPrice,
		"maxTickets":     rf.MaxTickets,
		"lowerBound":     rf.LowerBound,
		"upperBound":     rf.UpperBound,
		"totalSold":      rf.TotalSold,
		"pool":           rf.Pool,
		"startTime":      rf.StartTime,
		"endTime":        rf.EndTime,
		"creator":        rf.Creator,
		"winnerSelected": rf.WinnerSelected,
		"isClosed":       rf.IsClosed,
		"active":         rf.Active,
		"winners":        toWinnerResponses(ws),
	}
}

// InitializeRaffleHandler handles POST /raffles.
func (h *HandlerProvider) InitializeRaffleHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req initializeRaffleRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rf, err := h.raffle.Initialize(r.Context(), caller, req.Name,
		req.TicketPrice, req.MaxTickets, req.EndTime, req.LowerBound, req.UpperBound)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, raffleResponse(rf, nil))
}

// GetRaffleHandler handles GET /raffles/{raffleId}.
func (h *HandlerProvider) GetRaffleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseRaffleIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rf, ws, err := h.raffle.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, raffleResponse(rf, ws))
}

// BuyTicketHandler handles POST /raffles/{raffleId}/tickets.
func (h *HandlerProvider) BuyTicketHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := parseRaffleIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req buyTicketRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.raffle.BuyTicket(r.Context(), caller, id, req.Number)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"raffleId": t.RaffleID,
		"owner":    t.Owner,
		"number":   t.Number,
	})
}

// SelectWinnerHandler handles POST /raffles/{raffleId}/winners.
func (h *HandlerProvider) SelectWinnerHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := parseRaffleIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req selectWinnerRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, err := h.raffle.SelectWinner(r.Context(), caller, id, req.Seed)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"raffleId": id,
		"winners":  toWinnerResponses(ws),
	})
}

// DistributeHandler handles POST /raffles/{raffleId}/distribute.
func (h *HandlerProvider) DistributeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseRaffleIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.raffle.Distribute(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ClaimHandler handles POST /raffles/{raffleId}/claim.
func (h *HandlerProvider) ClaimHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := parseRaffleIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	claimed, err := h.raffle.Claim(r.Context(), caller, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rank":   claimed.Rank,
		"payout": claimed.Payout,
	})
}

// CloseRaffleHandler handles DELETE /raffles/{raffleId}.
func (h *HandlerProvider) CloseRaffleHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := parseRaffleIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.raffle.Close(r.Context(), caller, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// TrackerHandler handles GET /tracker.
func (h *HandlerProvider) TrackerHandler(w http.ResponseWriter, r *http.Request) {
	st, err := h.raffle.TrackerState(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"activeRaffleId":    st.ActiveRaffleID,
		"activeRaffleOwner": st.ActiveRaffleOwner,
	})
}

// PointsHandler handles GET /tracker/points/{owner}.
func (h *HandlerProvider) PointsHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := parseOwnerFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pts, err := h.raffle.Points(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"owner":  owner,
		"points": pts,
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/candystand/CandyBot_Go/internal/exchange"
	"github.com/candystand/CandyBot_Go/internal/logger"
)

type ExchangeRequest struct {
	GuildID string `json:"guild_id" validate:"required,max=64"`
	UserID  string `json:"user_id" validate:"required,max=64"`
	ItemID  int    `json:"item_id" validate:"required,min=1"`
	Amount  int    `json:"amount" validate:"required,min=1,max=1000"`
}

type ExchangeResponse struct {
	ItemID   int `json:"item_id"`
	Consumed int `json:"consumed"`
}

// HandleExchange handles spending item holdings
func HandleExchange(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ExchangeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Exchange"); err != nil {
			return
		}

		consumed, err := svc.Exchange(r.Context(), req.GuildID, req.UserID, req.ItemID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Exchange", err)
			return
		}

		log.Info("Exchange completed",
			"guild_id", req.GuildID,
			"user_id", req.UserID,
			"item_id", req.ItemID,
			"amount", len(consumed))

		respondJSON(w, http.StatusOK, ExchangeResponse{
			ItemID:   req.ItemID,
			Consumed: len(consumed),
		})
	}
}

type HoldingResponse struct {
	ItemID         int       `json:"item_id"`
	Count          int       `json:"count"`
	EarliestExpiry time.Time `json:"earliest_expiry"`
}

// HandleGetHoldings returns a member's spendable holdings grouped by item
func HandleGetHoldings(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		holdings, err := svc.ListHoldings(r.Context(), guildID, userID)
		if err != nil {
			respondServiceError(w, r, "Get holdings", err)
			return
		}

		resp := make([]HoldingResponse, 0, len(holdings))
		for _, h := range holdings {
			resp = append(resp, HoldingResponse{
				ItemID:         h.ItemID,
				Count:          h.Count,
				EarliestExpiry: h.EarliestExpiry,
			})
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

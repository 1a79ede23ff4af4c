package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/candystand/CandyBot_Go/internal/domain"
	"github.com/candystand/CandyBot_Go/internal/ledger"
	"github.com/candystand/CandyBot_Go/internal/logger"
	"github.com/candystand/CandyBot_Go/internal/metrics"
)

type GrantCandyRequest struct {
	GuildID    string `json:"guild_id" validate:"required,max=64"`
	GiverID    string `json:"giver_id" validate:"required,max=64"`
	ReceiverID string `json:"receiver_id" validate:"required,max=64"`
	MessageID  string `json:"message_id" validate:"required,max=64"`
	Tier       string `json:"tier" validate:"required,candytier"`
}

type GrantCandyResponse struct {
	Granted   int       `json:"granted"`
	Tier      string    `json:"tier"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleGrantCandy handles granting candy from one member to another
func HandleGrantCandy(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantCandyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant candy"); err != nil {
			return
		}

		units, err := svc.Grant(r.Context(), req.GuildID, req.GiverID, req.ReceiverID, req.MessageID, domain.CandyTier(req.Tier))
		if err != nil {
			recordGrantRejection(err)
			respondServiceError(w, r, "Grant candy", err)
			return
		}

		log.Info("Candy granted",
			"guild_id", req.GuildID,
			"giver_id", req.GiverID,
			"receiver_id", req.ReceiverID,
			"tier", req.Tier,
			"count", len(units))

		respondJSON(w, http.StatusCreated, GrantCandyResponse{
			Granted:   len(units),
			Tier:      req.Tier,
			ExpiresAt: units[0].ExpiresAt,
		})
	}
}

func recordGrantRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrSelfGrant):
		metrics.GrantRejections.WithLabelValues(metrics.RejectionReasonSelfGrant).Inc()
	case errors.Is(err, domain.ErrDuplicateGrant):
		metrics.GrantRejections.WithLabelValues(metrics.RejectionReasonDuplicate).Inc()
	case errors.Is(err, domain.ErrDailyCapExceeded):
		metrics.GrantRejections.WithLabelValues(metrics.RejectionReasonDailyCap).Inc()
	case errors.Is(err, domain.ErrMonthlyCapExceeded):
		metrics.GrantRejections.WithLabelValues(metrics.RejectionReasonMonthlyCap).Inc()
	}
}

type BalanceResponse struct {
	GuildID        string     `json:"guild_id"`
	UserID         string     `json:"user_id"`
	Balance        int        `json:"balance"`
	EarliestExpiry *time.Time `json:"earliest_expiry,omitempty"`
}

// HandleGetBalance returns a member's spendable candy balance and the expiry
// of their soonest-expiring unit
func HandleGetBalance(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		balance, err := svc.Balance(r.Context(), guildID, userID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		var expiry *time.Time
		if balance > 0 {
			expiry, err = svc.EarliestExpiry(r.Context(), guildID, userID)
			if err != nil {
				respondServiceError(w, r, "Get balance", err)
				return
			}
		}

		respondJSON(w, http.StatusOK, BalanceResponse{
			GuildID:        guildID,
			UserID:         userID,
			Balance:        balance,
			EarliestExpiry: expiry,
		})
	}
}

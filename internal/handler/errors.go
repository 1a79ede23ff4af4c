package handler

import (
	"errors"
	"net/http"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// User-facing error messages for service errors.
// These intentionally do not expose internal error details.
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Ledger messages
	ErrMsgSelfGrantError      = "You cannot give candy to yourself"
	ErrMsgDuplicateGrantError = "That message already awarded candy"
	ErrMsgDailyCapError       = "You reached today's candy limit"
	ErrMsgMonthlyCapError     = "You already gave super candy this month"
	ErrMsgNoCandyError        = "Not enough candy"

	// Draw messages
	ErrMsgItemNotFoundError = "Item not found"

	// Exchange messages
	ErrMsgNoHoldingError = "You don't have enough of that item"

	// Storage messages
	ErrMsgConflictError = "The request collided with another one. Please try again."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidTier):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrSelfGrant):
		return http.StatusBadRequest, ErrMsgSelfGrantError
	case errors.Is(err, domain.ErrDuplicateGrant):
		return http.StatusConflict, ErrMsgDuplicateGrantError
	case errors.Is(err, domain.ErrDailyCapExceeded):
		return http.StatusTooManyRequests, ErrMsgDailyCapError
	case errors.Is(err, domain.ErrMonthlyCapExceeded):
		return http.StatusTooManyRequests, ErrMsgMonthlyCapError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, ErrMsgNoCandyError
	case errors.Is(err, domain.ErrInsufficientHolding):
		return http.StatusBadRequest, ErrMsgNoHoldingError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrStorageConflict):
		return http.StatusConflict, ErrMsgConflictError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

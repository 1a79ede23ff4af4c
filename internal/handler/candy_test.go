package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHandleGrantCandy(t *testing.T) {
	validReq := GrantCandyRequest{
		GuildID:    "g1",
		GiverID:    "alice",
		ReceiverID: "bob",
		MessageID:  "m1",
		Tier:       "normal",
	}

	t.Run("Success", func(t *testing.T) {
		expiry := time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC)
		svc := &MockLedgerService{}
		svc.On("Grant", mock.Anything, "g1", "alice", "bob", "m1", domain.CandyTierNormal).
			Return([]domain.CandyUnit{{ID: uuid.New(), ExpiresAt: expiry}}, nil)

		w := postJSON(t, HandleGrantCandy(svc), "/api/v1/candy/grant", validReq)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp GrantCandyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Granted)
		assert.Equal(t, "normal", resp.Tier)
		assert.True(t, expiry.Equal(resp.ExpiresAt))
		svc.AssertExpectations(t)
	})

	t.Run("Invalid Tier Rejected Before Service", func(t *testing.T) {
		svc := &MockLedgerService{}
		req := validReq
		req.Tier = "mega"

		w := postJSON(t, HandleGrantCandy(svc), "/api/v1/candy/grant", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "tier")
		svc.AssertNotCalled(t, "Grant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Fields Rejected", func(t *testing.T) {
		svc := &MockLedgerService{}

		w := postJSON(t, HandleGrantCandy(svc), "/api/v1/candy/grant", GrantCandyRequest{GuildID: "g1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Body Rejected", func(t *testing.T) {
		svc := &MockLedgerService{}
		req := httptest.NewRequest("POST", "/api/v1/candy/grant", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()

		HandleGrantCandy(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})

	t.Run("Self Grant Maps To Bad Request", func(t *testing.T) {
		svc := &MockLedgerService{}
		svc.On("Grant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrSelfGrant)

		w := postJSON(t, HandleGrantCandy(svc), "/api/v1/candy/grant", validReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgSelfGrantError)
	})

	t.Run("Duplicate Maps To Conflict", func(t *testing.T) {
		svc := &MockLedgerService{}
		svc.On("Grant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrDuplicateGrant)

		w := postJSON(t, HandleGrantCandy(svc), "/api/v1/candy/grant", validReq)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Daily Cap Maps To Too Many Requests", func(t *testing.T) {
		svc := &MockLedgerService{}
		svc.On("Grant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrDailyCapExceeded)

		w := postJSON(t, HandleGrantCandy(svc), "/api/v1/candy/grant", validReq)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgDailyCapError)
	})

	t.Run("Unexpected Error Maps To Server Error", func(t *testing.T) {
		svc := &MockLedgerService{}
		svc.On("Grant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		w := postJSON(t, HandleGrantCandy(svc), "/api/v1/candy/grant", validReq)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
	})
}

func TestHandleGetBalance(t *testing.T) {
	t.Run("Success With Expiry", func(t *testing.T) {
		expiry := time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC)
		svc := &MockLedgerService{}
		svc.On("Balance", mock.Anything, "g1", "bob").Return(4, nil)
		svc.On("EarliestExpiry", mock.Anything, "g1", "bob").Return(&expiry, nil)

		req := httptest.NewRequest("GET", "/api/v1/candy/balance?guild_id=g1&user_id=bob", nil)
		w := httptest.NewRecorder()
		HandleGetBalance(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp BalanceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.Balance)
		require.NotNil(t, resp.EarliestExpiry)
		assert.True(t, expiry.Equal(*resp.EarliestExpiry))
	})

	t.Run("Zero Balance Skips Expiry Lookup", func(t *testing.T) {
		svc := &MockLedgerService{}
		svc.On("Balance", mock.Anything, "g1", "bob").Return(0, nil)

		req := httptest.NewRequest("GET", "/api/v1/candy/balance?guild_id=g1&user_id=bob", nil)
		w := httptest.NewRecorder()
		HandleGetBalance(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "earliest_expiry")
		svc.AssertNotCalled(t, "EarliestExpiry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Query Param", func(t *testing.T) {
		svc := &MockLedgerService{}

		req := httptest.NewRequest("GET", "/api/v1/candy/balance?guild_id=g1", nil)
		w := httptest.NewRecorder()
		HandleGetBalance(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "user_id")
	})
}

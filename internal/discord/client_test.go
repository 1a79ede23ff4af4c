package discord

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_GrantCandy(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/candy/grant", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "guild-1", req["guild_id"])
		assert.Equal(t, "giver-1", req["giver_id"])
		assert.Equal(t, "super", req["tier"])

		w.WriteHeader(http.StatusCreated)
		WriteJSON(w, map[string]interface{}{"granted": 3, "tier": "super"})
	})

	result, err := ctx.APIClient.GrantCandy("guild-1", "giver-1", "receiver-1", "msg-1", "super")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Granted)
	assert.Equal(t, "super", result.Tier)
}

func TestAPIClient_GrantCandy_ErrorEnvelope(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/candy/grant", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		WriteJSON(w, map[string]string{"error": "You reached today's candy limit"})
	})

	_, err := ctx.APIClient.GrantCandy("guild-1", "giver-1", "receiver-1", "msg-1", "normal")
	require.Error(t, err)
	assert.Equal(t, "API error: You reached today's candy limit", err.Error())
}

func TestAPIClient_GetHoldings(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/exchange/holdings", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, []map[string]interface{}{
			{"item_id": 1, "count": 4, "earliest_expiry": "2026-09-20T00:00:00Z"},
		})
	})

	holdings, err := ctx.APIClient.GetHoldings("guild-1", "user-1")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, 1, holdings[0].ItemID)
	assert.Equal(t, 4, holdings[0].Count)
}

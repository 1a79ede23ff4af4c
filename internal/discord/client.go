package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// APIClient handles communication with the CandyBot Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// GrantResult is the API response for a candy grant.
type GrantResult struct {
	Granted   int       `json:"granted"`
	Tier      string    `json:"tier"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BalanceResult is the API response for a balance query.
type BalanceResult struct {
	GuildID        string     `json:"guild_id"`
	UserID         string     `json:"user_id"`
	Balance        int        `json:"balance"`
	EarliestExpiry *time.Time `json:"earliest_expiry,omitempty"`
}

// DrawResult is one awarded item from a gacha draw.
type DrawResult struct {
	ItemID        int       `json:"item_id"`
	ItemName      string    `json:"item_name"`
	ItemTier      string    `json:"item_tier"`
	PityTriggered bool      `json:"pity_triggered"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ExchangeResult is the API response for an exchange.
type ExchangeResult struct {
	ItemID   int `json:"item_id"`
	Consumed int `json:"consumed"`
}

// Holding is one grouped row of a member's unspent items.
type Holding struct {
	ItemID         int       `json:"item_id"`
	Count          int       `json:"count"`
	EarliestExpiry time.Time `json:"earliest_expiry"`
}

// CatalogItem is one entry of the drawable item catalog.
type CatalogItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DropWeight  int    `json:"drop_weight"`
	Tier        string `json:"tier"`
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	// Retry configuration
	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// apiError extracts the error envelope from a non-success response.
func apiError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("API error: %s", errResp.Error)
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

// GrantCandy awards candy to a message author on behalf of a reactor
func (c *APIClient) GrantCandy(guildID, giverID, receiverID, messageID, tier string) (*GrantResult, error) {
	req := map[string]string{
		"guild_id":    guildID,
		"giver_id":    giverID,
		"receiver_id": receiverID,
		"message_id":  messageID,
		"tier":        tier,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/candy/grant", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var result GrantResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode grant response: %w", err)
	}

	return &result, nil
}

// GetBalance retrieves a member's spendable candy balance
func (c *APIClient) GetBalance(guildID, userID string) (*BalanceResult, error) {
	params := url.Values{}
	params.Set("guild_id", guildID)
	params.Set("user_id", userID)

	resp, err := c.doRequest(http.MethodGet, "/api/v1/candy/balance?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result BalanceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode balance response: %w", err)
	}

	return &result, nil
}

// Draw performs a single gacha draw
func (c *APIClient) Draw(guildID, userID string) ([]DrawResult, error) {
	return c.draw("/api/v1/gacha/draw", guildID, userID)
}

// DrawBatch performs a ten-pull gacha draw
func (c *APIClient) DrawBatch(guildID, userID string) ([]DrawResult, error) {
	return c.draw("/api/v1/gacha/draw-batch", guildID, userID)
}

func (c *APIClient) draw(path, guildID, userID string) ([]DrawResult, error) {
	req := map[string]string{
		"guild_id": guildID,
		"user_id":  userID,
	}

	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var drawResp struct {
		Results []DrawResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&drawResp); err != nil {
		return nil, fmt.Errorf("failed to decode draw response: %w", err)
	}

	return drawResp.Results, nil
}

// GetItems retrieves the drawable item catalog
func (c *APIClient) GetItems() ([]CatalogItem, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/gacha/items", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var items []CatalogItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode items response: %w", err)
	}

	return items, nil
}

// Exchange spends item holdings
func (c *APIClient) Exchange(guildID, userID string, itemID, amount int) (*ExchangeResult, error) {
	req := map[string]interface{}{
		"guild_id": guildID,
		"user_id":  userID,
		"item_id":  itemID,
		"amount":   amount,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/exchange", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result ExchangeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode exchange response: %w", err)
	}

	return &result, nil
}

// GetHoldings retrieves a member's unspent items grouped by catalog entry
func (c *APIClient) GetHoldings(guildID, userID string) ([]Holding, error) {
	params := url.Values{}
	params.Set("guild_id", guildID)
	params.Set("user_id", userID)

	resp, err := c.doRequest(http.MethodGet, "/api/v1/exchange/holdings?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var holdings []Holding
	if err := json.NewDecoder(resp.Body).Decode(&holdings); err != nil {
		return nil, fmt.Errorf("failed to decode holdings response: %w", err)
	}

	return holdings, nil
}

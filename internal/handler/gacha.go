package handler

import (
	"net/http"
	"time"

	"github.com/candystand/CandyBot_Go/internal/catalog"
	"github.com/candystand/CandyBot_Go/internal/gacha"
	"github.com/candystand/CandyBot_Go/internal/logger"
)

type DrawRequest struct {
	GuildID string `json:"guild_id" validate:"required,max=64"`
	UserID  string `json:"user_id" validate:"required,max=64"`
}

type DrawResultResponse struct {
	ItemID        int       `json:"item_id"`
	ItemName      string    `json:"item_name"`
	ItemTier      string    `json:"item_tier"`
	PityTriggered bool      `json:"pity_triggered"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type DrawResponse struct {
	Results []DrawResultResponse `json:"results"`
}

// HandleDraw handles a single gacha draw
func HandleDraw(svc gacha.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req DrawRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Draw"); err != nil {
			return
		}

		result, err := svc.Draw(r.Context(), req.GuildID, req.UserID)
		if err != nil {
			respondServiceError(w, r, "Draw", err)
			return
		}

		log.Info("Draw completed",
			"guild_id", req.GuildID,
			"user_id", req.UserID,
			"item", result.Item.Name,
			"pity", result.PityTriggered)

		respondJSON(w, http.StatusCreated, DrawResponse{
			Results: []DrawResultResponse{toDrawResultResponse(*result)},
		})
	}
}

// HandleDrawBatch handles a ten-pull: a fixed-size batch of draws performed
// as one atomic unit
func HandleDrawBatch(svc gacha.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req DrawRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Draw batch"); err != nil {
			return
		}

		results, err := svc.DrawBatch(r.Context(), req.GuildID, req.UserID)
		if err != nil {
			respondServiceError(w, r, "Draw batch", err)
			return
		}

		log.Info("Draw batch completed",
			"guild_id", req.GuildID,
			"user_id", req.UserID,
			"count", len(results))

		resp := DrawResponse{Results: make([]DrawResultResponse, 0, len(results))}
		for _, result := range results {
			resp.Results = append(resp.Results, toDrawResultResponse(result))
		}
		respondJSON(w, http.StatusCreated, resp)
	}
}

func toDrawResultResponse(result gacha.DrawResult) DrawResultResponse {
	return DrawResultResponse{
		ItemID:        result.Item.ID,
		ItemName:      result.Item.Name,
		ItemTier:      string(result.Item.Tier),
		PityTriggered: result.PityTriggered,
		ExpiresAt:     result.Award.ExpiresAt,
	}
}

type CatalogItemResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DropWeight  int    `json:"drop_weight"`
	Tier        string `json:"tier"`
}

// HandleGetItems returns the drawable item catalog
func HandleGetItems(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := cat.Items()
		resp := make([]CatalogItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, CatalogItemResponse{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				DropWeight:  item.DropWeight,
				Tier:        string(item.Tier),
			})
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

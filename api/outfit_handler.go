package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/julianramos/wardrobe-api/composition"
	"github.com/julianramos/wardrobe-api/models"
	"github.com/julianramos/wardrobe-api/utils"
)

// SaveOutfitRequest carries the selection snapshot the outfit builder
// accumulated: single slots for bottoms and shoes, ordered layers for
// tops and accessories.
type SaveOutfitRequest struct {
	Name        string                `json:"name"`
	Bottoms     *models.ClothingItem  `json:"bottoms"`
	Shoes       *models.ClothingItem  `json:"shoes"`
	Tops        []models.ClothingItem `json:"tops"`
	Accessories []models.ClothingItem `json:"accessories"`
}

// OutfitsHandler serves GET (list) and POST (save) on /api/outfits
func OutfitsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Outfits API]")

	owner, err := ownerFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		outfits, err := outfitStore.ListByOwner(r.Context(), owner)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("List failed: %v", err))
			respondStoreError(w, &logMessageBuilder, err)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Listed %d outfits", len(outfits)))
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Get all outfits for user",
			"outfits": outfits,
		})

	case http.MethodPost:
		var req SaveOutfitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}
		selection := composition.Selection{
			Bottoms:     req.Bottoms,
			Shoes:       req.Shoes,
			Tops:        req.Tops,
			Accessories: req.Accessories,
		}
		outfit, err := outfitStore.Save(r.Context(), owner, req.Name, selection)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Save failed: %v", err))
			respondStoreError(w, &logMessageBuilder, err)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Outfit %s saved", outfit.ID.Hex()))
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Outfit saved successfully",
			"outfit":  outfit,
		})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// OutfitItemHandler serves DELETE on /api/outfits/{id}
func OutfitItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Outfit Item API]")

	owner, err := ownerFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/outfits/")
	outfitID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Outfit not found", http.StatusNotFound)
		return
	}

	if r.Method != http.MethodDelete {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	outfit, err := outfitStore.Delete(r.Context(), owner, outfitID)
	if err != nil {
		respondStoreError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Outfit %s deleted", outfit.ID.Hex()))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Outfit deleted successfully",
		"deletedOutfit": outfit,
	})
}

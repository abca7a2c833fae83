package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/julianramos/wardrobe-api/models"
	"github.com/julianramos/wardrobe-api/utils"
)

// CreateItemRequest represents the payload for adding a clothing item
type CreateItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// ownerFromRequest resolves the authenticated user's ObjectID
func ownerFromRequest(r *http.Request) (primitive.ObjectID, error) {
	userIDStr, err := GetUserIDFromContext(r.Context())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(userIDStr)
}

// WardrobeHandler serves GET (list) and POST (create) on /api/wardrobe
func WardrobeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Wardrobe API]")

	owner, err := ownerFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := wardrobeStore.ListByOwner(r.Context(), owner)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("List failed: %v", err))
			respondStoreError(w, &logMessageBuilder, err)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Listed %d items", len(items)))
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Get all clothing items for user",
			"items":   items,
		})

	case http.MethodPost:
		var req CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}
		item, err := wardrobeStore.Create(r.Context(), owner, req.Name, models.Category(req.Category), req.Description, req.ImageURL)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Create failed: %v", err))
			respondStoreError(w, &logMessageBuilder, err)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Item %s added", item.ID.Hex()))
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Item added successfully",
			"item":    item,
		})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// WardrobeItemHandler serves GET and DELETE on /api/wardrobe/{id}
func WardrobeItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Wardrobe Item API]")

	owner, err := ownerFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/wardrobe/")
	itemID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Item not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := wardrobeStore.GetByID(r.Context(), owner, itemID)
		if err != nil {
			respondStoreError(w, &logMessageBuilder, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Get clothing item",
			"item":    item,
		})

	case http.MethodDelete:
		item, err := wardrobeStore.Delete(r.Context(), owner, itemID)
		if err != nil {
			respondStoreError(w, &logMessageBuilder, err)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Item %s deleted", item.ID.Hex()))
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message":     "Item deleted successfully",
			"deletedItem": item,
		})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

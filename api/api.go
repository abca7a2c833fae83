package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julianramos/wardrobe-api/ingest"
	"github.com/julianramos/wardrobe-api/store"
	"github.com/julianramos/wardrobe-api/utils"
)

var (
	wardrobeStore *store.Wardrobe
	outfitStore   *store.Outfits
	pipeline      *ingest.Pipeline
)

// Init wires the handlers to their stores and the ingestion pipeline.
// Must be called once before the routes are served.
func Init(w *store.Wardrobe, o *store.Outfits, p *ingest.Pipeline) {
	wardrobeStore = w
	outfitStore = o
	pipeline = p
}

// respondStoreError maps store errors onto HTTP statuses: validation
// failures are 400 with their specific message, missing documents are
// 404, anything else is a generic 500.
func respondStoreError(w http.ResponseWriter, logger *strings.Builder, err error) {
	if store.IsValidation(err) {
		utils.RespondError(w, logger, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, logger, "Item not found", http.StatusNotFound)
		return
	}
	utils.RespondError(w, logger, "Internal server error", http.StatusInternalServerError)
}

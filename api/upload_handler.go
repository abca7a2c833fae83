package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julianramos/wardrobe-api/utils"
)

// UploadHandler accepts a multipart image upload, runs it through the
// ingestion pipeline and returns the servable URL. A HEIC file that
// could not be transcoded still succeeds, with a warning attached.
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Upload API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, err := GetUserIDFromContext(r.Context()); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error reading file", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Upload received: %s (%s, %d bytes)",
		header.Filename, header.Header.Get("Content-Type"), len(fileBytes)))

	result, err := pipeline.Ingest(r.Context(), fileBytes, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Ingestion failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Error uploading file", http.StatusInternalServerError)
		return
	}

	response := map[string]string{
		"message":  "File uploaded successfully",
		"imageUrl": result.URL,
	}
	if result.Warning != "" {
		utils.AddToLogMessage(&logMessageBuilder, "Upload kept as HEIC, warning attached")
		response["message"] = "File uploaded successfully, but HEIC conversion failed. Image may not display in all browsers."
		response["warning"] = result.Warning
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Final image URL: %s", result.URL))
	utils.RespondJSON(w, http.StatusOK, response)
}

// ConvertHEICHandler transcodes HEIC blobs still sitting in storage
// from before conversion worked, replacing each with a JPEG.
func ConvertHEICHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Convert HEIC API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	converted, failed, err := pipeline.ConvertStored(r.Context())
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Backfill failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Error converting HEIC files", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Converted %d, failed %d", converted, failed))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "HEIC conversion complete",
		"converted": converted,
		"errors":    failed,
	})
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/julianramos/wardrobe-api/api"
	"github.com/julianramos/wardrobe-api/config"
	"github.com/julianramos/wardrobe-api/ingest"
	"github.com/julianramos/wardrobe-api/store"
	"github.com/julianramos/wardrobe-api/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Initialize blob storage
	blobs, err := newBlobStore()
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	pipeline := ingest.NewPipeline(blobs, ingest.DefaultCodecs())
	db := utils.Database()
	api.Init(store.NewWardrobe(db, blobs), store.NewOutfits(db), pipeline)

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	// Auth routes
	http.HandleFunc("/api/register", corsMiddleware(api.RegisterHandler))
	http.HandleFunc("/api/login", corsMiddleware(api.LoginHandler))
	http.HandleFunc("/auth/google/login", corsMiddleware(api.GoogleLoginHandler))
	http.HandleFunc("/auth/google/callback", corsMiddleware(api.GoogleCallbackHandler))

	// Wardrobe routes
	http.HandleFunc("/api/upload", corsMiddleware(api.AuthMiddleware(api.UploadHandler)))
	http.HandleFunc("/api/wardrobe", corsMiddleware(api.AuthMiddleware(api.WardrobeHandler)))
	http.HandleFunc("/api/wardrobe/", corsMiddleware(api.AuthMiddleware(api.WardrobeItemHandler)))
	http.HandleFunc("/api/outfits", corsMiddleware(api.AuthMiddleware(api.OutfitsHandler)))
	http.HandleFunc("/api/outfits/", corsMiddleware(api.AuthMiddleware(api.OutfitItemHandler)))
	http.HandleFunc("/api/convert-heic", corsMiddleware(api.AuthMiddleware(api.ConvertHEICHandler)))

	http.HandleFunc("/api/test", corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Backend is working!"})
	}))

	// Serve uploaded images when storing on local disk
	if config.StorageBackend == "local" {
		http.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.UploadDir))))
	}

	port := config.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func newBlobStore() (ingest.BlobStore, error) {
	if config.StorageBackend == "s3" {
		return ingest.NewS3Store(context.Background(), config.AWSRegion, config.AWSBucketName)
	}
	return ingest.NewLocalStore(config.UploadDir, config.PublicBaseURL)
}

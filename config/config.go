package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MongoURI           string
	DBName             string
	Port               string
	UploadDir          string
	PublicBaseURL      string
	StorageBackend     string
	AWSRegion          string
	AWSBucketName      string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	DBName = os.Getenv("DB_NAME")
	if DBName == "" {
		DBName = "wardrobe"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5003"
	}

	UploadDir = os.Getenv("UPLOAD_DIR")
	if UploadDir == "" {
		UploadDir = "uploads"
	}

	PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	if PublicBaseURL == "" {
		PublicBaseURL = "http://localhost:" + Port
	}

	// "local" (disk + /uploads static route) or "s3"
	StorageBackend = os.Getenv("STORAGE_BACKEND")
	if StorageBackend == "" {
		StorageBackend = "local"
	}

	AWSRegion = os.Getenv("AWS_REGION")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	GoogleRedirectURL = os.Getenv("GOOGLE_REDIRECT_URL")
	if GoogleRedirectURL == "" {
		GoogleRedirectURL = PublicBaseURL + "/auth/google/callback"
	}
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Media  MediaConfig
	AWS    AWSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
	PublicDir          string // static web client; empty disables serving
}

// StoreConfig holds the collection-file settings.
type StoreConfig struct {
	DataDir string // directory holding usuarios.json, outdoors.json, anuncios.json
}

// MediaConfig selects and configures how anúncio uploads are stored.
type MediaConfig struct {
	Backend   string // "local" (default) or "s3"
	UploadDir string // local backend only
}

// AWSConfig holds credentials and bucket for the S3 media backend.
type AWSConfig struct {
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	MediaBucket          string
	PresignExpireMinutes int
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "3000"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			PublicDir:          getEnv("PUBLIC_DIR", "public"),
		},
		Store: StoreConfig{
			DataDir: getEnv("DATA_DIR", "."),
		},
		Media: MediaConfig{
			Backend:   getEnv("MEDIA_BACKEND", "local"),
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
		AWS: AWSConfig{
			Region:               getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:          getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
			MediaBucket:          getEnv("AWS_S3_MEDIA_BUCKET", ""),
			PresignExpireMinutes: getEnvInt("AWS_PRESIGN_EXPIRE_MINUTES", 15),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

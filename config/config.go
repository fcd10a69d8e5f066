package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go-jobboard-backend/pkg/auth"

	"github.com/joho/godotenv"
)

const defaultUploadMaxBytes = 5 * 1024 * 1024

type Config struct {
	Port       string
	DBUrl      string
	CORSOrigin string
	LogLevel   string
	// Legacy shared-secret admin login (bcrypt hash)
	AdminPasswordHash string
	// Resume storage
	ResumeStorage  string // "local" or "s3"
	UploadDir      string
	UploadMaxBytes int64
	S3Provider     string
	S3AccessKeyID  string
	S3SecretKey    string
	S3Region       string
	S3Bucket       string
	WasabiEndpoint string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
	UploadsPerMinute         int
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBUrl:             getEnv("DATABASE_URL", ""),
		CORSOrigin:        strings.TrimRight(getEnv("CORS_ORIGIN", "http://localhost:3001"), "/"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AdminPasswordHash: strings.TrimSpace(getEnv("ADMIN_PASSWORD_HASH", "")),
		// Resume storage
		ResumeStorage:  strings.ToLower(getEnv("RESUME_STORAGE", "local")),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", defaultUploadMaxBytes)),
		S3Provider:     getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:  getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:       getEnv("S3_REGION", ""),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		WasabiEndpoint: getEnv("WASABI_ENDPOINT", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
		UploadsPerMinute:         getEnvInt("UPLOADS_PER_MINUTE", 10),
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Validate is run once at startup, before any component is built. A non-nil error
// means the process must not serve traffic.
func (c *Config) Validate() error {
	var errs []error

	if c.DBUrl == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	if err := auth.ValidateHash(c.AdminPasswordHash); err != nil {
		errs = append(errs, fmt.Errorf(
			"ADMIN_PASSWORD_HASH is missing or malformed (current value: %s): %w. "+
				"Quote the full bcrypt hash in .env, e.g. ADMIN_PASSWORD_HASH='$2b$10$...'",
			auth.HashPreview(c.AdminPasswordHash), err))
	}

	if c.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}

	switch c.ResumeStorage {
	case "local":
		if c.UploadDir == "" {
			errs = append(errs, errors.New("UPLOAD_DIR is required for local resume storage"))
		}
	case "s3":
		if c.S3Bucket == "" || c.S3Region == "" {
			errs = append(errs, errors.New("S3_BUCKET and S3_REGION are required for s3 resume storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("RESUME_STORAGE must be local or s3, got %q", c.ResumeStorage))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

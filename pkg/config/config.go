package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret   string
	JWTTokenTTL time.Duration

	// AWS S3 (or any S3-compatible object store)
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3UseSSL           string
	S3BucketName       string
	S3PublicBaseURL    string

	// OpenAI
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAITextModel  string
	OpenAIImageModel string

	// Services URLs
	AuthServiceURL      string
	PostServiceURL      string
	GeneratorServiceURL string

	// Rate limiting
	RateLimitRequests int
	GenerateRateLimit int
	RateLimitWindow   time.Duration
	GenerationLockTTL time.Duration

	ProfileDefaultRole string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "wplite"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "wplite.db"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTTokenTTL: getEnvDuration("JWT_TOKEN_TTL", 24*time.Hour),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "blog-images"),
		S3PublicBaseURL:    getEnv("S3_PUBLIC_BASE_URL", ""),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		OpenAITextModel:  getEnv("OPENAI_TEXT_MODEL", "gpt-4.1-2025-04-14"),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),

		AuthServiceURL:      getEnv("AUTH_SERVICE_URL", "http://localhost:8001"),
		PostServiceURL:      getEnv("POST_SERVICE_URL", "http://localhost:8002"),
		GeneratorServiceURL: getEnv("GENERATOR_SERVICE_URL", "http://localhost:8003"),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		GenerateRateLimit: getEnvInt("GENERATE_RATE_LIMIT", 10),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		GenerationLockTTL: getEnvDuration("GENERATION_LOCK_TTL", 3*time.Minute),

		ProfileDefaultRole: getEnv("PROFILE_DEFAULT_ROLE", "admin"),
	}

	// JWT_SECRET validation is optional - only required for services that use JWT
	// If not set, it will use default value and services without JWT will work fine

	return config, nil
}

// StorageCredentials is the subset of settings needed to talk to the object store.
type StorageCredentials struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UseSSL          string
	Bucket          string
	PublicBaseURL   string
}

// Complete reports whether every credential required for an upload is present.
func (s StorageCredentials) Complete() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != "" && s.Bucket != ""
}

// GeneratorCredentials are read on every generator invocation rather than at start-up,
// so rotating a key does not need a restart.
type GeneratorCredentials struct {
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAITextModel  string
	OpenAIImageModel string
	Storage          StorageCredentials
}

func LoadGeneratorCredentials() GeneratorCredentials {
	return GeneratorCredentials{
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OpenAITextModel:  getEnv("OPENAI_TEXT_MODEL", "gpt-4.1-2025-04-14"),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		Storage:          storageFromEnv(),
	}
}

func (c *Config) Storage() StorageCredentials {
	return StorageCredentials{
		Region:          c.AWSRegion,
		AccessKeyID:     c.AWSAccessKeyID,
		SecretAccessKey: c.AWSSecretAccessKey,
		Endpoint:        c.AWSEndpoint,
		UseSSL:          c.S3UseSSL,
		Bucket:          c.S3BucketName,
		PublicBaseURL:   c.S3PublicBaseURL,
	}
}

func storageFromEnv() StorageCredentials {
	return StorageCredentials{
		Region:          getEnv("AWS_REGION", "us-east-1"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Endpoint:        os.Getenv("AWS_ENDPOINT"),
		UseSSL:          getEnv("S3_USE_SSL", "true"),
		Bucket:          getEnv("S3_BUCKET_NAME", "blog-images"),
		PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

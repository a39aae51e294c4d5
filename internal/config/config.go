package config

import (
	"os"
	"strconv"
	"time"

	"sebbi-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort    string
	LogLevel      string
	SupabaseURL   string
	SupabaseKey   string
	StorageBucket string
	GCPProjectID  string
	GCPLocation   string
	GeminiModel   string
	MaxFileSize   int64
	FetchTimeout  time.Duration
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:    getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		SupabaseURL:   getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:   getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		StorageBucket: getEnvOrDefault("STORAGE_BUCKET", "pdfs"),
		GCPProjectID:  getEnvOrDefault("GCP_PROJECT_ID", ""),
		GCPLocation:   getEnvOrDefault("GCP_LOCATION", "us-central1"),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash-001"),
		MaxFileSize:   getEnvInt64OrDefault("MAX_FILE_SIZE", 15*1024*1024), // 15MB default
		FetchTimeout:  time.Duration(getEnvInt64OrDefault("HTTP_FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetStorageBucket returns the Supabase storage bucket name
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

// GetGCPProjectID returns the Google Cloud project ID
func (c *AppConfig) GetGCPProjectID() string {
	return c.GCPProjectID
}

// GetGCPLocation returns the Vertex AI region
func (c *AppConfig) GetGCPLocation() string {
	return c.GCPLocation
}

// GetGeminiModel returns the generative model name
func (c *AppConfig) GetGeminiModel() string {
	return c.GeminiModel
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetFetchTimeout returns the timeout for fetching remote PDFs
func (c *AppConfig) GetFetchTimeout() time.Duration {
	return c.FetchTimeout
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

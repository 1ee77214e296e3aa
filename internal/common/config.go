package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
	Extract  ExtractConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string
}

// OCRConfig holds configuration for the external OCR binaries.
type OCRConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // default "jpn+eng"
	DPI      int    // rasterization DPI for scanned PDFs, default 300
	MaxPages int    // 0 = no limit
}

// ExtractConfig holds configuration for the candidate extraction engine.
type ExtractConfig struct {
	WindowSize      int
	IncludeRejected bool
	MinConfidence   float64
	LabelConfigPath string // optional JSON override for label synonym sets
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("WELDREG_DB_PATH", "weldreg.db"),
		},
		OCR: OCRConfig{
			Pdftotext: getEnv("WELDREG_PDFTOTEXT", "pdftotext"),
			Pdftoppm:  getEnv("WELDREG_PDFTOPPM", "pdftoppm"),
			Tesseract: getEnv("WELDREG_TESSERACT", "tesseract"),
			Language:  getEnv("WELDREG_OCR_LANG", "jpn+eng"),
			DPI:       getEnvAsInt("WELDREG_OCR_DPI", 300),
			MaxPages:  getEnvAsInt("WELDREG_OCR_MAX_PAGES", 0),
		},
		Extract: ExtractConfig{
			WindowSize:      getEnvAsInt("WELDREG_WINDOW_SIZE", 1),
			IncludeRejected: getEnvAsBool("WELDREG_INCLUDE_REJECTED", false),
			MinConfidence:   getEnvAsFloat64("WELDREG_MIN_CONFIDENCE", 0),
			LabelConfigPath: getEnv("WELDREG_LABEL_CONFIG", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return ConfigError("WELDREG_DB_PATH is required")
	}
	if c.Extract.WindowSize < 0 {
		return ConfigError("WELDREG_WINDOW_SIZE must be >= 0")
	}
	if c.Extract.MinConfidence < 0 || c.Extract.MinConfidence > 1 {
		return ConfigError("WELDREG_MIN_CONFIDENCE must be in [0,1]")
	}
	if c.OCR.DPI <= 0 {
		return ConfigError("WELDREG_OCR_DPI must be positive")
	}
	return nil
}

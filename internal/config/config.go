package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Gemini    GeminiConfig
	OCR       OCRConfig
	Storage   StorageConfig
	Extractor ExtractorConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey string
	// Model is tried first; FallbackModels are tried in order when it fails.
	Model          string
	FallbackModels []string
	Temperature    float32
}

type OCRConfig struct {
	TesseractPath string
	// Languages are attempted in order until one yields usable text.
	Languages     []string
	TessdataDir   string
	LogConfidence bool
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type ExtractorConfig struct {
	// DemoPDFFallback substitutes a canned CV text when PDF parsing fails.
	// Off by default: production requests must see the real error.
	DemoPDFFallback bool
	RequestTimeout  time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "vietcareer"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			FallbackModels: getEnvAsSlice("GEMINI_FALLBACK_MODELS", "gemini-2.0-flash,gemini-1.5-flash,gemini-1.5-pro"),
			Temperature:    getEnvAsFloat32("GEMINI_TEMPERATURE", 0.3),
		},
		OCR: OCRConfig{
			TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),
			Languages:     getEnvAsSlice("OCR_LANGUAGES", "vie+eng,eng,vie"),
			TessdataDir:   getEnv("TESSDATA_DIR", ""),
			LogConfidence: getEnvAsBool("OCR_LOG_CONFIDENCE", true),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Extractor: ExtractorConfig{
			DemoPDFFallback: getEnvAsBool("EXTRACTOR_DEMO_PDF_FALLBACK", false),
			RequestTimeout:  getEnvAsDuration("SCORING_REQUEST_TIMEOUT", "120s"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	parts := strings.Split(valueStr, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDocxName   = "chủ nghĩa.docx"
	defaultOutputName = "questions.json"
	defaultTitle      = "Chủ nghĩa Xã hội Khoa học"
	defaultSubtitle   = "Hệ thống câu hỏi trắc nghiệm ôn tập"
)

// Config holds all application configuration.
type Config struct {
	DocxPath    string
	OutputPath  string
	Title       string
	Subtitle    string
	ProfilePath string
	// SkipPrefixes overrides the banner prefixes of paragraphs that are never
	// quiz content. Nil keeps the extractor defaults.
	SkipPrefixes []string

	LogLevel  string
	LogFormat string

	ServerPort     string
	GinMode        string
	StaticDir      string
	MaxUploadBytes int64
	ExtractRate    int
	RedisURL       string
	CacheTTL       time.Duration
	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	baseDir := executableDir()

	return &Config{
		DocxPath:       getEnv("DOCX_PATH", filepath.Join(baseDir, defaultDocxName)),
		OutputPath:     getEnv("OUTPUT_PATH", filepath.Join(baseDir, defaultOutputName)),
		Title:          getEnv("QUIZ_TITLE", defaultTitle),
		Subtitle:       getEnv("QUIZ_SUBTITLE", defaultSubtitle),
		ProfilePath:    getEnv("QUIZ_PROFILE", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		StaticDir:      getEnv("STATIC_DIR", ""),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 10)) * 1024 * 1024,
		ExtractRate:    getEnvInt("EXTRACT_RATE_PER_MINUTE", 30),
		RedisURL:       getEnv("REDIS_URL", ""),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		AllowedOrigins: parseList(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// executableDir is the directory holding the running binary, falling back to
// the working directory when it cannot be resolved.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseList splits a comma-separated string into a trimmed slice.
// Returns nil if the input is empty.
func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

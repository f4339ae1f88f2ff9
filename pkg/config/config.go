package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds runtime configuration derived from env vars or a .env file.
type App struct {
	DatabaseURL  string
	KafkaBrokers string
	KafkaTopic   string
	APIPort      string
	Environment  string
	LogLevel     string
	LogEncoding  string
	CORSOrigins  []string

	// IdentitySecret must accompany forwarded contact headers. Empty
	// disables them and all activity is stored anonymously.
	IdentitySecret string

	// Retention lifecycle for stored activity.
	ArchiveAfter  time.Duration
	PurgeAfter    time.Duration
	RetentionCron string

	// Page tracker settings.
	ActivityOrigin string
	TrackPageViews bool
}

// LoadDotEnv loads variables from the given files (".env" when none are
// named). File values override the process environment. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Overload(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// FromEnv loads the application configuration from environment variables.
func FromEnv() App {
	return App{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "ui.activity"),
		APIPort:        getEnv("API_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "production"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogEncoding:    getEnv("LOG_ENCODING", "json"),
		CORSOrigins:    getCORSOrigins(),
		IdentitySecret: os.Getenv("IDENTITY_SECRET"),
		ArchiveAfter:   getDuration("ARCHIVE_AFTER", 72*time.Hour),
		PurgeAfter:     getDuration("PURGE_AFTER", 30*24*time.Hour),
		RetentionCron:  getEnv("RETENTION_CRON", "@every 1h"),
		ActivityOrigin: getEnv("ACTIVITY_ORIGIN", "http://localhost:8080"),
		TrackPageViews: getBool("TRACK_PAGE_VIEWS", false),
	}
}

// Brokers splits KafkaBrokers into individual addresses.
func (a App) Brokers() []string {
	var out []string
	for _, b := range strings.Split(a.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

// getCORSOrigins returns ["*"] when CORS_ORIGINS is unset or empty.
func getCORSOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	origins := []string{}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

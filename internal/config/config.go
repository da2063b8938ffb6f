package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

type Config struct {
	// Application
	Version     string
	Environment string
	WorkerID    string
	Port        int
	LogLevel    string

	// Logdy (lightweight web log viewer)
	LogdyEnabled bool
	LogdyHost    string
	LogdyPort    int

	// Counting line
	LineOrientation string
	LinePosition    float64
	LineDirection   string

	// Category mapping overrides, "label=category" pairs
	CategoryMapping map[string]models.Category

	// Track lifecycle
	TrackExpiryFrames int64
	TrackHistoryLen   int

	// Built-in tracker
	TrackerEnabled      bool
	TrackerIoUThreshold float64

	// Detection-only fallback suppression
	FallbackWindowFrames int64
	FallbackMinDistance  float64
	FallbackBandHalf     float64

	// Density rate cutoffs, vehicles per minute
	DensityMediumRate float64
	DensityHighRate   float64

	// Detector
	ConfidenceThreshold float32
	ModelPath           string
	ModelConfigPath     string
	ModelNamesPath      string
	ModelInputSize      int

	// Outputs
	OutputDir      string
	AnnotatedVideo bool

	// Persistence
	SQLitePath string

	// NATS (for crossing events and summaries)
	NatsEnabled        bool
	NatsURL            string
	NatsConnectTimeout time.Duration
	NatsReconnectWait  time.Duration
	NatsMaxReconnects  int
	EventsSubject      string
	SummariesSubject   string

	// Graceful Shutdown
	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found, using environment variables and defaults")
	} else {
		log.Info().Msg("Loaded configuration from .env file")
	}

	return &Config{
		// Application
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		WorkerID:    getEnv("WORKER_ID", "streeteye-1"),
		Port:        getEnvInt("PORT", 8000),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Logdy (lightweight web log viewer)
		LogdyEnabled: getEnvBool("LOGDY_ENABLED", false),
		LogdyHost:    getEnv("LOGDY_HOST", "localhost"),
		LogdyPort:    getEnvInt("LOGDY_PORT", 8080),

		// Counting line
		LineOrientation: getEnv("LINE_ORIENTATION", "horizontal"),
		LinePosition:    getEnvFloat("LINE_POSITION", 430),
		LineDirection:   getEnv("LINE_DIRECTION", "both"),

		CategoryMapping: getEnvCategoryMapping("CATEGORY_MAPPING"),

		// Track lifecycle
		TrackExpiryFrames: int64(getEnvInt("TRACK_EXPIRY_FRAMES", 30)),
		TrackHistoryLen:   getEnvInt("TRACK_HISTORY_LEN", 16),

		// Built-in tracker
		TrackerEnabled:      getEnvBool("TRACKER_ENABLED", true),
		TrackerIoUThreshold: getEnvFloat("TRACKER_IOU_THRESHOLD", 0.3),

		// Fallback suppression window
		FallbackWindowFrames: int64(getEnvInt("FALLBACK_WINDOW_FRAMES", 25)),
		FallbackMinDistance:  getEnvFloat("FALLBACK_MIN_DISTANCE", 50),
		FallbackBandHalf:     getEnvFloat("FALLBACK_BAND_HALF", 0),

		// Density cutoffs
		DensityMediumRate: getEnvFloat("DENSITY_MEDIUM_RATE", 10),
		DensityHighRate:   getEnvFloat("DENSITY_HIGH_RATE", 30),

		// Detector
		ConfidenceThreshold: float32(getEnvFloat("CONFIDENCE_THRESHOLD", 0.4)),
		ModelPath:           getEnv("MODEL_PATH", "models/yolo.onnx"),
		ModelConfigPath:     getEnv("MODEL_CONFIG_PATH", ""),
		ModelNamesPath:      getEnv("MODEL_NAMES_PATH", ""),
		ModelInputSize:      getEnvInt("MODEL_INPUT_SIZE", 640),

		// Outputs
		OutputDir:      getEnv("OUTPUT_DIR", "outputs"),
		AnnotatedVideo: getEnvBool("ANNOTATED_VIDEO", false),

		// Persistence
		SQLitePath: getEnv("SQLITE_PATH", "streeteye.db"),

		// NATS
		NatsEnabled:        getEnvBool("NATS_ENABLED", false),
		NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		NatsConnectTimeout: getEnvDuration("NATS_CONNECT_TIMEOUT", 10*time.Second),
		NatsReconnectWait:  getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NatsMaxReconnects:  getEnvInt("NATS_MAX_RECONNECTS", -1), // -1 = unlimited
		EventsSubject:      getEnv("EVENTS_SUBJECT", "streeteye.crossings"),
		SummariesSubject:   getEnv("SUMMARIES_SUBJECT", "streeteye.summaries"),

		// Graceful Shutdown
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
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
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvCategoryMapping parses "label=category,label=category" override
// pairs. Malformed entries are skipped with a warning rather than
// failing startup.
func getEnvCategoryMapping(key string) map[string]models.Category {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	mapping := make(map[string]models.Category)
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			log.Warn().Str("pair", pair).Msg("Skipping malformed category mapping entry")
			continue
		}
		mapping[strings.ToLower(parts[0])] = models.Category(strings.ToLower(parts[1]))
	}
	return mapping
}

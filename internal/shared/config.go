package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	LogLevel        string
	HTTPAddr        string
	MetricsAddr     string
	StorageDriver   string // mongo|mysql
	MongoURI        string
	MongoDB         string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	SentimentURL    string
	SentimentKey    string
	SentimentRPS    int
	UpdateRate      float64
	UpdateBurst     int
	RescoreWorkers  int
	ShutdownTimeout time.Duration
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over .env.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be parsed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("var", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("var", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":5001"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		StorageDriver:   strings.ToLower(env("STORAGE_DRIVER", "mongo")),
		MongoURI:        env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         env("MONGO_DB", "shopcart"),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/shopcart?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SentimentURL:    env("SENTIMENT_API_URL", ""),
		SentimentKey:    env("SENTIMENT_API_KEY", ""),
		SentimentRPS:    atoi("SENTIMENT_API_RPS", 10),
		UpdateRate:      atof("UPDATE_RATE_PER_SEC", 0),
		UpdateBurst:     atoi("UPDATE_BURST", 3),
		RescoreWorkers:  atoi("RESCORE_WORKERS", 1),
		ShutdownTimeout: time.Duration(atoi("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	if os.Getenv("MONGO_URI") == "" && c.StorageDriver == "mongo" {
		log.Warn().Str("uri", c.MongoURI).Msg("MONGO_URI is empty, using default")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

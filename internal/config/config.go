package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Mongo    MongoConfig
	Logging  LoggingConfig
	Trending TrendingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr string
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Backend   string // "memory" or "redis"
	TTL       time.Duration
	RedisAddr string
}

// MongoConfig holds document-store configuration
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// TrendingConfig holds defaults for the trending endpoints
type TrendingConfig struct {
	WindowDays int
	TopK       int
}

// Load parses flags and environment variables to build configuration
func Load() *Config {
	httpAddr := flag.String("http", ":8080", "HTTP server address")
	cacheBackend := flag.String("cache-backend", "memory", "Cache backend: memory or redis")
	cacheTTL := flag.Duration("cache-ttl", 2*time.Minute, "Cache TTL for trending results")
	redisAddr := flag.String("redis-addr", "localhost:6379", "Redis server address")
	mongoURI := flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	mongoDB := flag.String("mongo-db", "campushot", "MongoDB database name")
	mongoTimeout := flag.Duration("mongo-timeout", 10*time.Second, "MongoDB operation timeout")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	windowDays := flag.Int("trending-window-days", 30, "Default recency window for trending, in days")
	topK := flag.Int("trending-top-k", 10, "Default number of trending items returned")

	flag.Parse()

	applyEnvOverrides(httpAddr, cacheBackend, cacheTTL, redisAddr, mongoURI, mongoDB, mongoTimeout, logLevel, windowDays, topK)

	return &Config{
		Server: ServerConfig{
			HTTPAddr: *httpAddr,
		},
		Cache: CacheConfig{
			Backend:   *cacheBackend,
			TTL:       *cacheTTL,
			RedisAddr: *redisAddr,
		},
		Mongo: MongoConfig{
			URI:      *mongoURI,
			Database: *mongoDB,
			Timeout:  *mongoTimeout,
		},
		Logging: LoggingConfig{
			Level: *logLevel,
		},
		Trending: TrendingConfig{
			WindowDays: *windowDays,
			TopK:       *topK,
		},
	}
}

func applyEnvOverrides(httpAddr *string, cacheBackend *string, cacheTTL *time.Duration, redisAddr, mongoURI, mongoDB *string, mongoTimeout *time.Duration, logLevel *string, windowDays, topK *int) {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		*httpAddr = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		*cacheBackend = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*cacheTTL = d
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		*redisAddr = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		*mongoURI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		*mongoDB = v
	}
	if v := os.Getenv("MONGO_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*mongoTimeout = d
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		*logLevel = v
	}
	if v := os.Getenv("TRENDING_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*windowDays = n
		}
	}
	if v := os.Getenv("TRENDING_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*topK = n
		}
	}
}

package config

import (
	"testing"
	"time"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "45s")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "campushot_test")
	t.Setenv("TRENDING_WINDOW_DAYS", "14")
	t.Setenv("TRENDING_TOP_K", "5")

	httpAddr := ":8080"
	cacheBackend := "memory"
	cacheTTL := 2 * time.Minute
	redisAddr := "localhost:6379"
	mongoURI := "mongodb://localhost:27017"
	mongoDB := "campushot"
	mongoTimeout := 10 * time.Second
	logLevel := "info"
	windowDays := 30
	topK := 10

	applyEnvOverrides(&httpAddr, &cacheBackend, &cacheTTL, &redisAddr, &mongoURI, &mongoDB, &mongoTimeout, &logLevel, &windowDays, &topK)

	if httpAddr != ":9090" {
		t.Errorf("httpAddr = %q, want :9090", httpAddr)
	}
	if cacheBackend != "redis" {
		t.Errorf("cacheBackend = %q, want redis", cacheBackend)
	}
	if cacheTTL != 45*time.Second {
		t.Errorf("cacheTTL = %v, want 45s", cacheTTL)
	}
	if mongoURI != "mongodb://db:27017" {
		t.Errorf("mongoURI = %q", mongoURI)
	}
	if mongoDB != "campushot_test" {
		t.Errorf("mongoDB = %q", mongoDB)
	}
	if windowDays != 14 {
		t.Errorf("windowDays = %d, want 14", windowDays)
	}
	if topK != 5 {
		t.Errorf("topK = %d, want 5", topK)
	}
}

func TestApplyEnvOverrides_IgnoresInvalid(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("TRENDING_TOP_K", "-3")

	httpAddr := ":8080"
	cacheBackend := "memory"
	cacheTTL := 2 * time.Minute
	redisAddr := "localhost:6379"
	mongoURI := "mongodb://localhost:27017"
	mongoDB := "campushot"
	mongoTimeout := 10 * time.Second
	logLevel := "info"
	windowDays := 30
	topK := 10

	applyEnvOverrides(&httpAddr, &cacheBackend, &cacheTTL, &redisAddr, &mongoURI, &mongoDB, &mongoTimeout, &logLevel, &windowDays, &topK)

	if cacheTTL != 2*time.Minute {
		t.Errorf("cacheTTL = %v, want unchanged 2m", cacheTTL)
	}
	if topK != 10 {
		t.Errorf("topK = %d, want unchanged 10", topK)
	}
}

package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	// Simulated latency per operation, standing in for real I/O.
	UploadLatencyMS  int
	ExtractLatencyMS int
	ListLatencyMS    int
	ReindexLatencyMS int
	QueryLatencyMS   int
	AuditLatencyMS   int
	StatsLatencyMS   int

	// Fixed pause between pipeline tracker stages.
	StageDelayMS int

	// Figure reported by the stats endpoint; nothing measures it.
	ReportedAvgLatencyMS int

	RetrievalTopK int

	APIRateLimitRPS   int
	APIRateLimitBurst int

	ClauseCacheSize       int
	ClauseCacheTTLSeconds int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		UploadLatencyMS:  mustEnvInt("UPLOAD_LATENCY_MS", 500),
		ExtractLatencyMS: mustEnvInt("EXTRACT_LATENCY_MS", 800),
		ListLatencyMS:    mustEnvInt("LIST_LATENCY_MS", 200),
		ReindexLatencyMS: mustEnvInt("REINDEX_LATENCY_MS", 600),
		QueryLatencyMS:   mustEnvInt("QUERY_LATENCY_MS", 300),
		AuditLatencyMS:   mustEnvInt("AUDIT_LATENCY_MS", 150),
		StatsLatencyMS:   mustEnvInt("STATS_LATENCY_MS", 150),

		StageDelayMS: mustEnvInt("STAGE_DELAY_MS", 400),

		ReportedAvgLatencyMS: mustEnvInt("REPORTED_AVG_LATENCY_MS", 1800),

		RetrievalTopK: mustEnvInt("RETRIEVAL_TOP_K", 20),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 50),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 100),

		ClauseCacheSize:       mustEnvInt("CLAUSE_CACHE_SIZE", 256),
		ClauseCacheTTLSeconds: mustEnvInt("CLAUSE_CACHE_TTL_SECONDS", 300),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
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

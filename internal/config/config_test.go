package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.ExtractLatencyMS != 800 {
		t.Fatalf("expected default extract latency 800, got %d", cfg.ExtractLatencyMS)
	}
	if cfg.StageDelayMS != 400 {
		t.Fatalf("expected default stage delay 400, got %d", cfg.StageDelayMS)
	}
	if cfg.RetrievalTopK != 20 {
		t.Fatalf("expected default top k 20, got %d", cfg.RetrievalTopK)
	}
	if cfg.APIRateLimitRPS != 50 || cfg.APIRateLimitBurst != 100 {
		t.Fatalf("unexpected rate limit defaults: %d/%d", cfg.APIRateLimitRPS, cfg.APIRateLimitBurst)
	}
	if cfg.ClauseCacheSize != 256 || cfg.ClauseCacheTTLSeconds != 300 {
		t.Fatalf("unexpected cache defaults: %d/%d", cfg.ClauseCacheSize, cfg.ClauseCacheTTLSeconds)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("STAGE_DELAY_MS", "0")
	t.Setenv("RETRIEVAL_TOP_K", "7")

	cfg := Load()
	if cfg.APIPort != "9090" {
		t.Fatalf("expected port override, got %s", cfg.APIPort)
	}
	// An explicit "0" parses to 0, it is not treated as unset.
	if cfg.StageDelayMS != 0 {
		t.Fatalf("expected stage delay 0, got %d", cfg.StageDelayMS)
	}
	if cfg.RetrievalTopK != 7 {
		t.Fatalf("expected top k 7, got %d", cfg.RetrievalTopK)
	}
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("UPLOAD_LATENCY_MS", "not-a-number")

	cfg := Load()
	if cfg.UploadLatencyMS != 500 {
		t.Fatalf("expected fallback on malformed value, got %d", cfg.UploadLatencyMS)
	}
}

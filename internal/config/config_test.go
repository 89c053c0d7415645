package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "fantachat-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.Timezone != "Europe/Rome" {
		t.Fatalf("unexpected Timezone: %q", cfg.Timezone)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL by default, got %q", cfg.DBURL)
	}
	if cfg.LiveRefreshInterval != time.Minute {
		t.Fatalf("unexpected LiveRefreshInterval: %s", cfg.LiveRefreshInterval)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_NewsdeskRequiresAPIKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NEWSDESK_ENABLED", "true")
	t.Setenv("NEWSDESK_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when NEWSDESK_ENABLED=true without NEWSDESK_API_KEY")
	}
}

func TestLoad_NewsdeskConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NEWSDESK_ENABLED", "true")
	t.Setenv("NEWSDESK_API_KEY", "sk-test")
	t.Setenv("NEWSDESK_MODEL", "gpt-4.1")
	t.Setenv("NEWSDESK_TIMEOUT", "45s")
	t.Setenv("NEWSDESK_MAX_RETRIES", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.NewsdeskEnabled {
		t.Fatalf("expected NewsdeskEnabled=true")
	}
	if cfg.NewsdeskModel != "gpt-4.1" {
		t.Fatalf("unexpected NewsdeskModel: %q", cfg.NewsdeskModel)
	}
	if cfg.NewsdeskTimeout != 45*time.Second {
		t.Fatalf("unexpected NewsdeskTimeout: %s", cfg.NewsdeskTimeout)
	}
	if cfg.NewsdeskMaxRetries != 3 {
		t.Fatalf("unexpected NewsdeskMaxRetries: %d", cfg.NewsdeskMaxRetries)
	}
}

func TestLoad_AuthgateCircuitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("AUTHGATE_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for AUTHGATE_CIRCUIT_FAILURE_COUNT=0")
	}
}

func TestLoad_WorkerPoolValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("WORKER_POOL_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for WORKER_POOL_SIZE=0")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "debug"},
		{in: "WARN", want: "warn"},
		{in: "warning", want: "warn"},
		{in: "error", want: "error"},
		{in: "", want: "info"},
		{in: "garbage", want: "info"},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in).String(); got != tt.want {
			t.Fatalf("parseLogLevel(%q)=%s want=%s", tt.in, got, tt.want)
		}
	}
}

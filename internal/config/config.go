package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fantachat/fantachat-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	Timezone                      string
	DBURL                         string
	DBDisablePreparedBinary       bool
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	CORSAllowedOrigins            []string
	WorkerPoolSize                int
	LiveRefreshInterval           time.Duration
	AuthgateBaseURL               string
	AuthgateIntrospectPath        string
	AuthgateTimeout               time.Duration
	AuthgateCacheTTL              time.Duration
	AuthgateCacheMaxEntries       int
	AuthgateCircuitEnabled        bool
	AuthgateCircuitFailureCount   int
	AuthgateCircuitOpenTimeout    time.Duration
	AuthgateCircuitHalfOpenMaxReq int
	NewsdeskEnabled               bool
	NewsdeskBaseURL               string
	NewsdeskAPIKey                string
	NewsdeskModel                 string
	NewsdeskTimeout               time.Duration
	NewsdeskMaxRetries            int
	NewsdeskCircuitEnabled        bool
	NewsdeskCircuitFailureCount   int
	NewsdeskCircuitOpenTimeout    time.Duration
	NewsdeskCircuitHalfOpenMaxReq int
	PprofEnabled                  bool
	PprofAddr                     string
	UptraceEnabled                bool
	UptraceDSN                    string
	UptraceLogsEnabled            bool
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
	LogLevel                      logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	workerPoolSize, err := getEnvAsInt("WORKER_POOL_SIZE", 16)
	if err != nil {
		return Config{}, fmt.Errorf("parse WORKER_POOL_SIZE: %w", err)
	}
	if workerPoolSize < 1 {
		return Config{}, fmt.Errorf("WORKER_POOL_SIZE must be >= 1")
	}

	liveRefreshInterval, err := time.ParseDuration(getEnv("LIVE_REFRESH_INTERVAL", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_REFRESH_INTERVAL: %w", err)
	}
	if liveRefreshInterval <= 0 {
		return Config{}, fmt.Errorf("LIVE_REFRESH_INTERVAL must be > 0")
	}

	authgateTimeout, err := time.ParseDuration(getEnv("AUTHGATE_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHGATE_TIMEOUT: %w", err)
	}
	authgateCacheTTL, err := time.ParseDuration(getEnv("AUTHGATE_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHGATE_CACHE_TTL: %w", err)
	}
	if authgateCacheTTL <= 0 {
		return Config{}, fmt.Errorf("AUTHGATE_CACHE_TTL must be > 0")
	}
	authgateCacheMaxEntries, err := getEnvAsInt("AUTHGATE_CACHE_MAX_ENTRIES", 10_000)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHGATE_CACHE_MAX_ENTRIES: %w", err)
	}
	if authgateCacheMaxEntries < 1 {
		return Config{}, fmt.Errorf("AUTHGATE_CACHE_MAX_ENTRIES must be >= 1")
	}
	authgateCircuitEnabled, err := strconv.ParseBool(getEnv("AUTHGATE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHGATE_CIRCUIT_ENABLED: %w", err)
	}
	authgateCircuitFailureCount, err := getEnvAsInt("AUTHGATE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHGATE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if authgateCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("AUTHGATE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	authgateCircuitOpenTimeout, err := time.ParseDuration(getEnv("AUTHGATE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHGATE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if authgateCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("AUTHGATE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	authgateCircuitHalfOpenMaxReq, err := getEnvAsInt("AUTHGATE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTHGATE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if authgateCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("AUTHGATE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	newsdeskEnabled, err := strconv.ParseBool(getEnv("NEWSDESK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWSDESK_ENABLED: %w", err)
	}
	newsdeskAPIKey := strings.TrimSpace(getEnv("NEWSDESK_API_KEY", ""))
	if newsdeskEnabled && newsdeskAPIKey == "" {
		return Config{}, fmt.Errorf("NEWSDESK_API_KEY is required when NEWSDESK_ENABLED=true")
	}
	newsdeskTimeout, err := time.ParseDuration(getEnv("NEWSDESK_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWSDESK_TIMEOUT: %w", err)
	}
	if newsdeskTimeout <= 0 {
		return Config{}, fmt.Errorf("NEWSDESK_TIMEOUT must be > 0")
	}
	newsdeskMaxRetries, err := getEnvAsInt("NEWSDESK_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWSDESK_MAX_RETRIES: %w", err)
	}
	if newsdeskMaxRetries < 0 {
		return Config{}, fmt.Errorf("NEWSDESK_MAX_RETRIES must be >= 0")
	}
	newsdeskCircuitEnabled, err := strconv.ParseBool(getEnv("NEWSDESK_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWSDESK_CIRCUIT_ENABLED: %w", err)
	}
	newsdeskCircuitFailureCount, err := getEnvAsInt("NEWSDESK_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWSDESK_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if newsdeskCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NEWSDESK_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	newsdeskCircuitOpenTimeout, err := time.ParseDuration(getEnv("NEWSDESK_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWSDESK_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if newsdeskCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NEWSDESK_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	newsdeskCircuitHalfOpenMaxReq, err := getEnvAsInt("NEWSDESK_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWSDESK_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if newsdeskCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("NEWSDESK_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "fantachat-api"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                      getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                   readTimeout,
		WriteTimeout:                  writeTimeout,
		Timezone:                      strings.TrimSpace(getEnv("APP_TIMEZONE", "Europe/Rome")),
		DBURL:                         strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:       dbDisablePreparedBinary,
		CacheEnabled:                  cacheEnabled,
		CacheTTL:                      cacheTTL,
		CORSAllowedOrigins:            splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		WorkerPoolSize:                workerPoolSize,
		LiveRefreshInterval:           liveRefreshInterval,
		AuthgateBaseURL:               getEnv("AUTHGATE_BASE_URL", "http://localhost:8081"),
		AuthgateIntrospectPath:        getEnv("AUTHGATE_INTROSPECT_PATH", "/v1/auth/introspect"),
		AuthgateTimeout:               authgateTimeout,
		AuthgateCacheTTL:              authgateCacheTTL,
		AuthgateCacheMaxEntries:       authgateCacheMaxEntries,
		AuthgateCircuitEnabled:        authgateCircuitEnabled,
		AuthgateCircuitFailureCount:   authgateCircuitFailureCount,
		AuthgateCircuitOpenTimeout:    authgateCircuitOpenTimeout,
		AuthgateCircuitHalfOpenMaxReq: authgateCircuitHalfOpenMaxReq,
		NewsdeskEnabled:               newsdeskEnabled,
		NewsdeskBaseURL:               strings.TrimSpace(getEnv("NEWSDESK_BASE_URL", "https://api.openai.com/v1")),
		NewsdeskAPIKey:                newsdeskAPIKey,
		NewsdeskModel:                 strings.TrimSpace(getEnv("NEWSDESK_MODEL", "gpt-4.1-mini")),
		NewsdeskTimeout:               newsdeskTimeout,
		NewsdeskMaxRetries:            newsdeskMaxRetries,
		NewsdeskCircuitEnabled:        newsdeskCircuitEnabled,
		NewsdeskCircuitFailureCount:   newsdeskCircuitFailureCount,
		NewsdeskCircuitOpenTimeout:    newsdeskCircuitOpenTimeout,
		NewsdeskCircuitHalfOpenMaxReq: newsdeskCircuitHalfOpenMaxReq,
		PprofEnabled:                  pprofEnabled,
		PprofAddr:                     pprofAddr,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		UptraceLogsEnabled:            uptraceLogsEnabled,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:        strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:    strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
		LogLevel:                      parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if cfg.Timezone == "" {
		return Config{}, fmt.Errorf("APP_TIMEZONE cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

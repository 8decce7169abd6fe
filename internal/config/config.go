// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Store     StoreConfig
	Seed      SeedConfig
	Search    SearchConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // json or pretty; empty picks by environment
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // default: 8080
	ReadTimeout  time.Duration // default: 15s
	WriteTimeout time.Duration // default: 15s
	IdleTimeout  time.Duration // default: 60s
}

// StoreConfig selects and locates the persistence backend.
type StoreConfig struct {
	Backend  string // sqlite (default) or badger
	DataPath string // directory holding the database files
}

// SQLitePath returns the SQLite database file location.
func (s StoreConfig) SQLitePath() string {
	return filepath.Join(s.DataPath, "slackdb.db")
}

// BadgerPath returns the Badger database directory.
func (s StoreConfig) BadgerPath() string {
	return filepath.Join(s.DataPath, "badger")
}

// SeedConfig locates the JSON scrape files used to seed an empty store.
type SeedConfig struct {
	OnStartup   bool
	Path        string
	WebbingFile string
	WeblockFile string
	RollerFile  string
}

// File returns the seed file path for a gear kind name ("webbing", "weblock", "roller").
func (s SeedConfig) File(kind string) string {
	var name string
	switch kind {
	case "webbing":
		name = s.WebbingFile
	case "weblock":
		name = s.WeblockFile
	case "roller":
		name = s.RollerFile
	default:
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.Path, name)
}

// SearchConfig holds full-text search configuration.
type SearchConfig struct {
	Enabled bool
}

// RateLimitConfig bounds write traffic per client IP.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// CORSConfig holds allowed origins for browser clients.
type CORSConfig struct {
	AllowedOrigins []string
}

type flagValues struct {
	env, logLevel, logFormat, envFile         string
	port, readTimeout, writeTimeout, idle     string
	storeBackend, dataPath                    string
	seedOnStartup, seedPath                   string
	webbingFile, weblockFile, rollerFile      string
	searchEnabled                             string
	rateLimitEnabled, rateLimitRPS, rateBurst string
	corsOrigins                               string
}

// LoadConfig loads configuration from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	var f flagValues
	fs := flag.NewFlagSet("slackdb", flag.ContinueOnError)

	fs.StringVar(&f.env, "env", "", "Environment (development, staging, production)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format (json, pretty)")
	fs.StringVar(&f.envFile, "env-file", ".env", "Path to .env file")

	fs.StringVar(&f.port, "port", "", "Server port (default: 8080)")
	fs.StringVar(&f.readTimeout, "read-timeout", "", "HTTP read timeout (default: 15s)")
	fs.StringVar(&f.writeTimeout, "write-timeout", "", "HTTP write timeout (default: 15s)")
	fs.StringVar(&f.idle, "idle-timeout", "", "HTTP idle timeout (default: 60s)")

	fs.StringVar(&f.storeBackend, "store", "", "Store backend (sqlite, badger)")
	fs.StringVar(&f.dataPath, "data-path", "", "Directory for database files")

	fs.StringVar(&f.seedOnStartup, "seed", "", "Seed empty tables on startup (default: true)")
	fs.StringVar(&f.seedPath, "seed-path", "", "Directory holding seed JSON files")
	fs.StringVar(&f.webbingFile, "webbing-file", "", "Webbing seed file (default: webbings.json)")
	fs.StringVar(&f.weblockFile, "weblock-file", "", "Weblock seed file (default: weblocks.json)")
	fs.StringVar(&f.rollerFile, "roller-file", "", "Roller seed file (default: rollers.json)")

	fs.StringVar(&f.searchEnabled, "search", "", "Enable full-text search (default: true)")
	fs.StringVar(&f.rateLimitEnabled, "rate-limit", "", "Enable write rate limiting (default: true)")
	fs.StringVar(&f.rateLimitRPS, "rate-limit-rps", "", "Write requests per second per client (default: 5)")
	fs.StringVar(&f.rateBurst, "rate-limit-burst", "", "Write burst per client (default: 20)")
	fs.StringVar(&f.corsOrigins, "cors-origins", "", "Comma-separated allowed origins (default: *)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(f.envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(f.env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(f.logLevel, "LOG_LEVEL", "info"),
			Format: getConfigValue(f.logFormat, "LOG_FORMAT", ""),
		},
		Server: ServerConfig{
			Port: getConfigValue(f.port, "SERVER_PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:  strings.ToLower(getConfigValue(f.storeBackend, "STORE_BACKEND", BackendSQLite)),
			DataPath: getConfigValue(f.dataPath, "DATA_PATH", ""),
		},
		Seed: SeedConfig{
			OnStartup:   getBoolConfigValue(f.seedOnStartup, "SEED_ON_STARTUP", true),
			Path:        getConfigValue(f.seedPath, "SEED_PATH", "."),
			WebbingFile: getConfigValue(f.webbingFile, "SEED_WEBBING_FILE", "webbings.json"),
			WeblockFile: getConfigValue(f.weblockFile, "SEED_WEBLOCK_FILE", "weblocks.json"),
			RollerFile:  getConfigValue(f.rollerFile, "SEED_ROLLER_FILE", "rollers.json"),
		},
		Search: SearchConfig{
			Enabled: getBoolConfigValue(f.searchEnabled, "SEARCH_ENABLED", true),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolConfigValue(f.rateLimitEnabled, "RATE_LIMIT_ENABLED", true),
			RPS:     getFloatConfigValue(f.rateLimitRPS, "RATE_LIMIT_RPS", 5),
			Burst:   getIntConfigValue(f.rateBurst, "RATE_LIMIT_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getConfigValue(f.corsOrigins, "CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = getDurationConfigValue(f.readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getDurationConfigValue(f.writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDurationConfigValue(f.idle, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("ENV is required")
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Logger.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("invalid log format: %s (must be json or pretty)", c.Logger.Format)
	}

	switch c.Store.Backend {
	case BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("invalid store backend: %s (must be sqlite or badger)", c.Store.Backend)
	}

	if c.Store.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("invalid rate limit: rps=%v burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}

	return nil
}

func (c *Config) expandPaths() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	if c.Store.DataPath, err = expandPath(c.Store.DataPath, filepath.Join(homeDir, ".slackdb")); err != nil {
		return fmt.Errorf("invalid data path: %w", err)
	}
	if c.Seed.Path, err = expandPath(c.Seed.Path, ""); err != nil {
		return fmt.Errorf("invalid seed path: %w", err)
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	s := getConfigValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes"
}

func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	s := getConfigValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	s := getConfigValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	s := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, s, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real environment variables take precedence over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}

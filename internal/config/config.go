package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server  ServerConfig `yaml:"server"`
	Sheets  SheetsConfig `yaml:"sheets"`
	Backend string       `yaml:"backend"`
	Local   LocalConfig  `yaml:"local"`
	Log     LogConfig    `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	// FunctionPath is an extra route for the submit handler matching the
	// hosting platform's function routing.
	FunctionPath string `yaml:"function_path"`
}

// SheetsConfig contains the target spreadsheet and service account settings.
type SheetsConfig struct {
	SpreadsheetID    string   `yaml:"spreadsheet_id"`
	SheetName        string   `yaml:"sheet_name"`
	// ValueInputOption is USER_ENTERED or RAW. USER_ENTERED lets the sheet
	// parse dates and numbers; answers starting with = + - or @ are sent with
	// a leading apostrophe so they are stored as text, not formulas.
	ValueInputOption string   `yaml:"value_input_option"`
	IncludeLabels    bool     `yaml:"include_labels"`
	Timeout          Duration `yaml:"timeout"`
	CredentialsFile  string   `yaml:"credentials_file"`
	ServiceAccount   string   `yaml:"-"` // env-only, never in YAML
	PrivateKey       string   `yaml:"-"` // env-only, never in YAML
}

// LocalConfig contains settings for the SQLite development backend.
type LocalConfig struct {
	Path string `yaml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → .env → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("TRAILBLAZER_CONFIG_PATH", "config/trailblazer.yaml")

	// Load YAML file if it exists (missing file is not an error)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	if err := loadDotEnv(getEnv("TRAILBLAZER_ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
			FunctionPath:    "/.netlify/functions/submit-form",
		},
		Sheets: SheetsConfig{
			SheetName:        "Trailblazer Form Submissions",
			ValueInputOption: "USER_ENTERED",
			Timeout:          Duration(20 * time.Second),
		},
		Backend: BackendSheets,
		Local: LocalConfig{
			Path: "data/trailblazer.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadDotEnv exports variables from a local .env file. Variables already set
// in the environment win; a missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("parsing env file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("TRAILBLAZER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TRAILBLAZER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = Duration(d)
		}
	}
	if v := os.Getenv("TRAILBLAZER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = Duration(d)
		}
	}
	if v := os.Getenv("TRAILBLAZER_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ShutdownTimeout = Duration(d)
		}
	}
	if v := os.Getenv("TRAILBLAZER_FUNCTION_PATH"); v != "" {
		cfg.Server.FunctionPath = v
	}

	// Sheets (GOOGLE_* names match the hosting platform's existing variables)
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		cfg.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("TRAILBLAZER_SHEET_NAME"); v != "" {
		cfg.Sheets.SheetName = v
	}
	if v := os.Getenv("TRAILBLAZER_VALUE_INPUT_OPTION"); v != "" {
		cfg.Sheets.ValueInputOption = v
	}
	if v := os.Getenv("TRAILBLAZER_INCLUDE_LABELS"); v != "" {
		cfg.Sheets.IncludeLabels = v == "true" || v == "1"
	}
	if v := os.Getenv("TRAILBLAZER_SHEETS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Sheets.Timeout = Duration(d)
		}
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.Sheets.CredentialsFile = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"); v != "" {
		cfg.Sheets.ServiceAccount = v
	}
	if v := os.Getenv("GOOGLE_PRIVATE_KEY"); v != "" {
		cfg.Sheets.PrivateKey = v
	}

	// Backend
	if v := os.Getenv("TRAILBLAZER_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TRAILBLAZER_DB_PATH"); v != "" {
		cfg.Local.Path = v
	}

	// Log
	if v := os.Getenv("TRAILBLAZER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TRAILBLAZER_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks that required configuration values are set.
// In dev mode (TRAILBLAZER_DEV_MODE=true), credential validation is skipped.
func (c *Config) validate() error {
	switch c.Backend {
	case BackendSheets, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSheets, BackendSQLite)
	}

	switch c.Sheets.ValueInputOption {
	case "USER_ENTERED", "RAW":
	default:
		return fmt.Errorf("invalid value_input_option %q (want USER_ENTERED or RAW)", c.Sheets.ValueInputOption)
	}

	if c.Sheets.SheetName == "" {
		return errors.New("sheets.sheet_name must not be empty")
	}

	if c.Backend != BackendSheets || os.Getenv("TRAILBLAZER_DEV_MODE") == "true" {
		return nil
	}

	if c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_ID is required")
	}
	if c.Sheets.CredentialsFile == "" {
		if c.Sheets.ServiceAccount == "" {
			return errors.New("GOOGLE_SERVICE_ACCOUNT_EMAIL is required (or GOOGLE_APPLICATION_CREDENTIALS)")
		}
		if c.Sheets.PrivateKey == "" {
			return errors.New("GOOGLE_PRIVATE_KEY is required (or GOOGLE_APPLICATION_CREDENTIALS)")
		}
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

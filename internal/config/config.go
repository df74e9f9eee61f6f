package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Source  SourceConfig  `yaml:"source" envconfig:"SOURCE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
}

// SourceConfig selects and parameterizes the sheet source. Exactly one mode
// is active per run: a published-CSV URL, a Sheets API read, or a local
// XLSX snapshot.
type SourceConfig struct {
	Mode       string        `yaml:"mode" envconfig:"MODE" validate:"oneof=url sheets xlsx"`
	URL        string        `yaml:"url" envconfig:"URL" validate:"omitempty,url"`
	SheetID    string        `yaml:"sheet_id" envconfig:"SHEET_ID" validate:"required_if=Mode sheets"`
	SheetRange string        `yaml:"sheet_range" envconfig:"SHEET_RANGE"`
	APIKey     string        `yaml:"api_key" envconfig:"API_KEY" validate:"required_if=Mode sheets"`
	XLSXPath   string        `yaml:"xlsx_path" envconfig:"XLSX_PATH" validate:"required_if=Mode xlsx"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"min=1s,max=5m"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// OutputConfig locates the run's artifact tree.
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
}

// TracingConfig toggles the per-stage span exporter.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED"`
	Exporter    string `yaml:"exporter" envconfig:"EXPORTER" validate:"oneof=stdout none"`
	PrettyPrint bool   `yaml:"pretty_print" envconfig:"PRETTY_PRINT"`
}

// Load loads configuration from a .env file (best effort), environment
// variables, and an optional YAML file. Environment values take precedence
// over file values; defaults fill the rest. configFile may be empty, in
// which case the usual locations are searched.
func Load(configFile string) (*Config, error) {
	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SPHASE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Source.Mode == "" {
		envConfig.Source.Mode = fileConfig.Source.Mode
	}
	if envConfig.Source.URL == "" {
		envConfig.Source.URL = fileConfig.Source.URL
	}
	if envConfig.Source.SheetID == "" {
		envConfig.Source.SheetID = fileConfig.Source.SheetID
	}
	if envConfig.Source.SheetRange == "" {
		envConfig.Source.SheetRange = fileConfig.Source.SheetRange
	}
	if envConfig.Source.APIKey == "" {
		envConfig.Source.APIKey = fileConfig.Source.APIKey
	}
	if envConfig.Source.XLSXPath == "" {
		envConfig.Source.XLSXPath = fileConfig.Source.XLSXPath
	}
	if envConfig.Source.Timeout == 0 {
		envConfig.Source.Timeout = fileConfig.Source.Timeout
	}

	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	if envConfig.Output.Dir == "" {
		envConfig.Output.Dir = fileConfig.Output.Dir
	}

	if !envConfig.Tracing.Enabled {
		envConfig.Tracing.Enabled = fileConfig.Tracing.Enabled
	}
	if envConfig.Tracing.Exporter == "" {
		envConfig.Tracing.Exporter = fileConfig.Tracing.Exporter
	}

	return envConfig
}

// normalize fills fields left empty by both the environment and the YAML
// file with their defaults, so validation only ever sees complete values.
func (c *Config) normalize() {
	def := Default()
	if c.Source.Mode == "" {
		c.Source.Mode = def.Source.Mode
	}
	if c.Source.SheetRange == "" {
		c.Source.SheetRange = def.Source.SheetRange
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = def.Source.Timeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
	if c.Logging.Output == "" {
		c.Logging.Output = def.Logging.Output
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = def.Logging.FilePath
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = def.Tracing.Exporter
	}
}

// Validate checks the configuration against its struct tags plus the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Source.Mode == "url" && c.Source.URL == "" {
		return fmt.Errorf("source mode %q requires a url", c.Source.Mode)
	}

	return nil
}

// findConfigFile returns the first config file found in the usual locations
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Mode:       "url",
			SheetRange: "Form responses 1!A:D",
			Timeout:    30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/sphase.log",
		},
		Output: OutputConfig{
			Dir: "reports",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Exporter:    "stdout",
			PrettyPrint: true,
		},
	}
}

// Package config holds the command-line configuration for the relayout
// CLI. Values resolve in precedence order: flags, then RELAYOUT_*
// environment variables, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultLanguage       = "eng"
	DefaultSourceDPI      = 0 // unknown
	DefaultWorkers        = 0 // sized to available CPUs
	DefaultTimeoutSeconds = 30
	DefaultThreshold      = 0.60
	DefaultLogLevel       = "info"
	DefaultOutput         = "-" // stdout
)

// Config holds all configuration for the relayout CLI
type Config struct {
	// Inputs are the page image paths, in page order
	Inputs []string

	// Output is the JSON result destination; "-" writes to stdout
	Output string

	// Recognition configuration
	SourceDPI int
	Language  string

	// Pipeline configuration
	Workers                int
	TimeoutSeconds         int
	LowConfidenceThreshold float64

	// Application configuration
	LogLevel string
	Version  string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output:                 DefaultOutput,
		SourceDPI:              DefaultSourceDPI,
		Language:               DefaultLanguage,
		Workers:                DefaultWorkers,
		TimeoutSeconds:         DefaultTimeoutSeconds,
		LowConfidenceThreshold: DefaultThreshold,
		LogLevel:               DefaultLogLevel,
		Version:                "1.0.0",
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
// Positional arguments are the input image paths.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)
	cfg.Inputs = pflag.Args()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and
// defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("RELAYOUT")
	viper.AutomaticEnv()

	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("dpi", cfg.SourceDPI)
	viper.SetDefault("lang", cfg.Language)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("timeout", cfg.TimeoutSeconds)
	viper.SetDefault("threshold", cfg.LowConfidenceThreshold)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("output", cfg.Output, "Output file for the JSON result ('-' for stdout)")
	pflag.Int("dpi", cfg.SourceDPI, "Resolution of the input images (0 if unknown)")
	pflag.String("lang", cfg.Language, "Recognition language hint, e.g. 'eng' or 'eng+deu'")
	pflag.Int("workers", cfg.Workers, "Page worker pool size (0 = number of CPUs)")
	pflag.Int("timeout", cfg.TimeoutSeconds, "Per-page recognition timeout in seconds")
	pflag.Float64("threshold", cfg.LowConfidenceThreshold, "Confidence below which sections are flagged for review")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("dpi", pflag.Lookup("dpi"))
	_ = viper.BindPFlag("lang", pflag.Lookup("lang"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("timeout", pflag.Lookup("timeout"))
	_ = viper.BindPFlag("threshold", pflag.Lookup("threshold"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] page1.png [page2.png ...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nrelayout - reconstruct an editable document from scanned page images\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  RELAYOUT_OUTPUT     Output file\n")
		fmt.Fprintf(os.Stderr, "  RELAYOUT_DPI        Input image resolution\n")
		fmt.Fprintf(os.Stderr, "  RELAYOUT_LANG       Recognition language\n")
		fmt.Fprintf(os.Stderr, "  RELAYOUT_WORKERS    Worker pool size\n")
		fmt.Fprintf(os.Stderr, "  RELAYOUT_TIMEOUT    Per-page timeout in seconds\n")
		fmt.Fprintf(os.Stderr, "  RELAYOUT_THRESHOLD  Low-confidence threshold\n")
		fmt.Fprintf(os.Stderr, "  RELAYOUT_LOGLEVEL   Log level\n")
	}
}

// populateConfigFromViper fills the configuration from resolved viper
// values
func populateConfigFromViper(cfg *Config) {
	cfg.Output = viper.GetString("output")
	cfg.SourceDPI = viper.GetInt("dpi")
	cfg.Language = viper.GetString("lang")
	cfg.Workers = viper.GetInt("workers")
	cfg.TimeoutSeconds = viper.GetInt("timeout")
	cfg.LowConfidenceThreshold = viper.GetFloat64("threshold")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return errors.New("at least one input image is required")
	}
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	if c.SourceDPI < 0 {
		return fmt.Errorf("dpi must not be negative, got %d", c.SourceDPI)
	}
	if c.Language == "" {
		return errors.New("language must not be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutSeconds)
	}
	if c.LowConfidenceThreshold < 0 || c.LowConfidenceThreshold > 1 {
		return fmt.Errorf("threshold must be in [0, 1], got %v", c.LowConfidenceThreshold)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// IsDebug returns true when debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a human-readable summary of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Inputs: %d, Output: %s, SourceDPI: %d, Language: %s, Workers: %d, Timeout: %ds, Threshold: %.2f, LogLevel: %s}",
		len(c.Inputs), c.Output, c.SourceDPI, c.Language, c.Workers, c.TimeoutSeconds, c.LowConfidenceThreshold, c.LogLevel)
}

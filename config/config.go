// config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Demo names accepted in the 'demos' list.
const (
	DemoRuns      = "runs"
	DemoRMultiple = "rmultiple"
)

// LogConfig holds the configuration for logging.
type LogConfig struct {
	LogLevel   string `yaml:"log_level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// NormalConfig holds the general, non-demo configuration.
type NormalConfig struct {
	LogDirectory   string `yaml:"log_directory"`
	StateDirectory string `yaml:"state_directory"`
}

// GroupingConfig describes one consecutive-run grouping request.
type GroupingConfig struct {
	Name           string `yaml:"name"`
	Values         []int  `yaml:"values"`
	MinConsecutive int    `yaml:"min_consecutive"`
	Offset         int    `yaml:"offset"`
}

// TradeConfig holds the inputs of the R-multiple calculator.
type TradeConfig struct {
	AccountValue   float64   `yaml:"account_value"`
	EntryPrice     float64   `yaml:"entry_price"`
	StopPrice      float64   `yaml:"stop_price"`
	RiskRate       float64   `yaml:"risk_rate"`
	Short          bool      `yaml:"short"`
	LotSize        int64     `yaml:"lot_size"`
	PricePrecision int32     `yaml:"price_precision"`
	TickSize       float64   `yaml:"tick_size"` // 0 disables tick snapping
	RMultiples     []float64 `yaml:"r_multiples"`
}

// DemoConfig is a generic container for a single demo's configuration.
// Config stays untyped until the demo's name is known.
type DemoConfig struct {
	Name    string      `yaml:"name"`
	Enabled bool        `yaml:"enabled"`
	Config  interface{} `yaml:"config"`
}

// Config is the top-level configuration structure.
type Config struct {
	Normal    *NormalConfig    `yaml:"normal_config"`
	Logs      *LogConfig       `yaml:"logs"`
	Groupings []GroupingConfig `yaml:"-"`
	Trade     *TradeConfig     `yaml:"-"` // nil when the rmultiple demo is disabled
}

// NewConfig creates a Config with the safe defaults applied.
func NewConfig() *Config {
	return &Config{
		Normal: &NormalConfig{
			LogDirectory:   "logs",
			StateDirectory: "state",
		},
		Logs: &LogConfig{
			LogLevel:   "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig loads configuration from a given path, applies defaults, and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a validated Config from raw YAML.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()

	var rawCfg struct {
		Normal *NormalConfig `yaml:"normal_config"`
		Logs   *LogConfig    `yaml:"logs"`
		Demos  []DemoConfig  `yaml:"demos"`
	}
	if err := yaml.Unmarshal(data, &rawCfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if rawCfg.Normal != nil {
		if rawCfg.Normal.LogDirectory != "" {
			cfg.Normal.LogDirectory = rawCfg.Normal.LogDirectory
		}
		if rawCfg.Normal.StateDirectory != "" {
			cfg.Normal.StateDirectory = rawCfg.Normal.StateDirectory
		}
	}
	if rawCfg.Logs != nil {
		// Unset keys keep their defaults; negative values are left for Validate to reject.
		if rawCfg.Logs.LogLevel != "" {
			cfg.Logs.LogLevel = rawCfg.Logs.LogLevel
		}
		if rawCfg.Logs.MaxSizeMB != 0 {
			cfg.Logs.MaxSizeMB = rawCfg.Logs.MaxSizeMB
		}
		if rawCfg.Logs.MaxBackups != 0 {
			cfg.Logs.MaxBackups = rawCfg.Logs.MaxBackups
		}
		if rawCfg.Logs.MaxAgeDays != 0 {
			cfg.Logs.MaxAgeDays = rawCfg.Logs.MaxAgeDays
		}
		cfg.Logs.Compress = rawCfg.Logs.Compress
	}

	// Unmarshal specific demo configs based on their 'name'
	for _, s := range rawCfg.Demos {
		if !s.Enabled {
			continue
		}

		configBytes, err := yaml.Marshal(s.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to re-marshal demo config '%s': %w", s.Name, err)
		}

		switch s.Name {
		case DemoRuns:
			var groupings []GroupingConfig
			if err := yaml.Unmarshal(configBytes, &groupings); err != nil {
				return nil, fmt.Errorf("failed to unmarshal runs config: %w", err)
			}
			cfg.Groupings = append(cfg.Groupings, groupings...)
		case DemoRMultiple:
			trade := &TradeConfig{PricePrecision: 2}
			if err := yaml.Unmarshal(configBytes, trade); err != nil {
				return nil, fmt.Errorf("failed to unmarshal rmultiple config: %w", err)
			}
			cfg.Trade = trade
		default:
			return nil, fmt.Errorf("unknown demo '%s', expected '%s' or '%s'", s.Name, DemoRuns, DemoRMultiple)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the completeness of the configuration. Domain checks on values
// (ordering, stop placement) are left to the calculators so one bad demo does not block the rest.
func (c *Config) Validate() error {
	if c.Normal == nil {
		return fmt.Errorf("'normal_config' block must be provided")
	}
	if c.Normal.LogDirectory == "" {
		return fmt.Errorf("'normal_config.log_directory' must be specified (e.g., 'logs')")
	}
	if c.Normal.StateDirectory == "" {
		return fmt.Errorf("'normal_config.state_directory' must be specified (e.g., 'state')")
	}

	if c.Logs == nil {
		return fmt.Errorf("'logs' block must be provided")
	}
	if c.Logs.LogLevel == "" {
		return fmt.Errorf("'logs.log_level' must be specified (e.g., 'info', 'debug', 'warn', 'error')")
	}
	if c.Logs.MaxSizeMB <= 0 {
		return fmt.Errorf("'logs.max_size_mb' must be positive")
	}
	if c.Logs.MaxBackups <= 0 {
		return fmt.Errorf("'logs.max_backups' must be positive")
	}
	if c.Logs.MaxAgeDays <= 0 {
		return fmt.Errorf("'logs.max_age_days' must be positive")
	}

	if len(c.Groupings) == 0 && c.Trade == nil {
		return fmt.Errorf("at least one of the '%s' or '%s' demos must be enabled", DemoRuns, DemoRMultiple)
	}
	for i, g := range c.Groupings {
		if g.Name == "" {
			return fmt.Errorf("runs: grouping #%d is missing 'name'", i+1)
		}
	}
	if c.Trade != nil && c.Trade.AccountValue == 0 {
		return fmt.Errorf("rmultiple: 'account_value' must be specified")
	}

	return nil
}

// EnvConfig holds overrides read from the environment.
type EnvConfig struct {
	LogLevel     string
	AccountValue string
}

// LoadEnvConfig reads the FINTECH_* environment variables.
func LoadEnvConfig() *EnvConfig {
	return &EnvConfig{
		LogLevel:     os.Getenv("FINTECH_LOG_LEVEL"),
		AccountValue: os.Getenv("FINTECH_ACCOUNT_VALUE"),
	}
}

// ApplyEnv applies the non-empty environment overrides to c.
func (c *Config) ApplyEnv(env *EnvConfig) error {
	if env == nil {
		return nil
	}
	if env.LogLevel != "" {
		c.Logs.LogLevel = env.LogLevel
	}
	if env.AccountValue != "" {
		if c.Trade == nil {
			return fmt.Errorf("FINTECH_ACCOUNT_VALUE is set but the '%s' demo is disabled", DemoRMultiple)
		}
		v, err := strconv.ParseFloat(env.AccountValue, 64)
		if err != nil {
			return fmt.Errorf("invalid FINTECH_ACCOUNT_VALUE %q: %w", env.AccountValue, err)
		}
		c.Trade.AccountValue = v
	}
	return nil
}

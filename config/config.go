package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"commodity-forecast-engine/forecast"
	"commodity-forecast-engine/regression"
)

// Config is the complete engine configuration.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Data    DataConfig    `json:"data"`
	Models  ModelsConfig  `json:"models"`
	Alerts  AlertConfig   `json:"alerts"`
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         string   `json:"port"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
	IdleTimeout  Duration `json:"idle_timeout"`
	RateLimit    float64  `json:"rate_limit"` // requests per second
	RateBurst    int      `json:"rate_burst"`
}

// DataConfig describes the cleaned input dataset.
type DataConfig struct {
	Path         string  `json:"path"`
	DateColumn   string  `json:"date_column"`
	TargetColumn string  `json:"target_column"`
	TrainRatio   float64 `json:"train_ratio"`
	SplitSeed    int64   `json:"split_seed"`
}

// ModelsConfig carries the fixed per-family parameter grids.
type ModelsConfig struct {
	ARIMA    forecast.ARIMAConfig      `json:"arima"`
	ETS      forecast.ETSConfig        `json:"ets"`
	Forest   regression.ForestConfig   `json:"forest"`
	Boosting regression.BoostingConfig `json:"boosting"`
	KNN      regression.KNNConfig      `json:"knn"`
	Selector regression.SelectorConfig `json:"selector"`
}

// AlertConfig contains alerting defaults.
type AlertConfig struct {
	DefaultThreshold float64 `json:"default_threshold"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // "text" or "json"
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			IdleTimeout:  Duration{120 * time.Second},
			RateLimit:    20,
			RateBurst:    40,
		},
		Data: DataConfig{
			Path:         "./data/index.csv",
			DateColumn:   "date",
			TargetColumn: "mining_index",
			TrainRatio:   0.8,
			SplitSeed:    42,
		},
		Models: ModelsConfig{
			ARIMA:    forecast.DefaultARIMAConfig(),
			ETS:      forecast.DefaultETSConfig(),
			Forest:   regression.DefaultForestConfig(),
			Boosting: regression.DefaultBoostingConfig(),
			KNN:      regression.DefaultKNNConfig(),
			Selector: regression.DefaultSelectorConfig(),
		},
		Alerts: AlertConfig{
			DefaultThreshold: 180,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile loads configuration from a JSON file, layered over defaults.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	return config, nil
}

// LoadFromEnv loads configuration from FORECAST_* environment variables,
// layered over defaults.
func LoadFromEnv() *Config {
	config := DefaultConfig()

	if port := os.Getenv("FORECAST_PORT"); port != "" {
		config.Server.Port = port
	}
	if path := os.Getenv("FORECAST_DATA_PATH"); path != "" {
		config.Data.Path = path
	}
	if target := os.Getenv("FORECAST_TARGET_COLUMN"); target != "" {
		config.Data.TargetColumn = target
	}
	if seed := os.Getenv("FORECAST_SPLIT_SEED"); seed != "" {
		if val, err := strconv.ParseInt(seed, 10, 64); err == nil {
			config.Data.SplitSeed = val
		}
	}
	if level := os.Getenv("FORECAST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if threshold := os.Getenv("FORECAST_ALERT_THRESHOLD"); threshold != "" {
		if val, err := strconv.ParseFloat(threshold, 64); err == nil {
			config.Alerts.DefaultThreshold = val
		}
	}

	return config
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if c.Data.Path == "" {
		return fmt.Errorf("data path cannot be empty")
	}
	if c.Data.TargetColumn == "" {
		return fmt.Errorf("target column cannot be empty")
	}
	if c.Data.TrainRatio <= 0 || c.Data.TrainRatio >= 1 {
		return fmt.Errorf("train ratio must be in (0,1), got %v", c.Data.TrainRatio)
	}
	if c.Models.Forest.Trees <= 0 {
		return fmt.Errorf("forest tree count must be positive")
	}
	if c.Models.Boosting.Rounds <= 0 {
		return fmt.Errorf("boosting rounds must be positive")
	}
	if c.Models.KNN.K <= 0 {
		return fmt.Errorf("knn k must be positive")
	}
	if c.Models.Selector.Keep <= 0 {
		return fmt.Errorf("selector keep count must be positive")
	}
	return nil
}

// Manager loads and holds the validated runtime configuration.
type Manager struct {
	config   *Config
	filename string
}

// NewManager loads configuration from the given file, or from the
// environment when the file is absent, and validates it.
func NewManager(filename string) (*Manager, error) {
	var config *Config
	var err error

	if filename != "" && fileExists(filename) {
		config, err = LoadFromFile(filename)
		if err != nil {
			return nil, err
		}
	} else {
		config = LoadFromEnv()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Manager{config: config, filename: filename}, nil
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() *Config {
	return m.config
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

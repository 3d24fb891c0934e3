// internal/config/config.go
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"papertrade/pkg/db"

	"github.com/ilyakaznacheev/cleanenv"
)

// QuoteConfig holds the market data provider configuration.
type QuoteConfig struct {
	BaseURL string        `yaml:"base_url" env:"QUOTE_BASE_URL" env-default:"https://www.alphavantage.co"`
	APIKey  string        `yaml:"api_key" env:"QUOTE_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env:"QUOTE_TIMEOUT" env-default:"10s"`
}

// AuthConfig holds session token configuration.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// AppConfig holds all application-wide configuration.
type AppConfig struct {
	ServerPort string         `yaml:"server_port" env:"SERVER_PORT" env-default:"8080"`
	DB         db.Config      `yaml:"db"`
	Redis      db.RedisConfig `yaml:"redis"`
	Quote      QuoteConfig    `yaml:"quote"`
	Auth       AuthConfig     `yaml:"auth"`
}

// LoadConfig reads configuration from an optional YAML file (the -config flag
// or CONFIG_PATH) with environment variables taking precedence.
func LoadConfig() (*AppConfig, error) {
	var cfg AppConfig

	path := fetchConfigPath()
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}

package core

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type RedisConfig struct {
	Addr        string `yaml:"addr"`
	StatsTTLSec int    `yaml:"statsTtlSec"`
}

type Config struct {
	Addr           string      `yaml:"addr"`
	DSN            string      `yaml:"dsn"`
	JWTSecret      string      `yaml:"jwtSecret"` // base64 encoded
	TauxHoraireSup float64     `yaml:"tauxHoraireSup"`
	MaxConnections int         `yaml:"maxConnections"`
	LogMode        string      `yaml:"logMode"`
	Redis          RedisConfig `yaml:"redis"`
}

// LoadConfig reads the YAML file when present, then applies environment
// overrides so deployments can keep secrets out of the file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:           "0.0.0.0:8090",
		TauxHoraireSup: 12.50,
		MaxConnections: 10,
		LogMode:        "dev",
		Redis:          RedisConfig{StatsTTLSec: 60},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	}

	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("GESTIRH_SIGNING_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("TAUX_HORAIRE_SUP"); v != "" {
		taux, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TAUX_HORAIRE_SUP: %w", err)
		}
		cfg.TauxHoraireSup = taux
	}
	if v := os.Getenv("LOG_MODE"); v != "" {
		cfg.LogMode = v
	}

	if cfg.DSN == "" {
		return nil, fmt.Errorf("DSN is required (config file or DSN env)")
	}

	return cfg, nil
}

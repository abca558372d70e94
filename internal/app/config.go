package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/studydeck-backend/internal/logger"
	"github.com/yungbote/studydeck-backend/internal/utils"
)

type Config struct {
	Port             string
	JWTSecretKey     string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	RedisAddr        string
	SignalSessionTTL time.Duration
}

// fileConfig is the optional config.yaml overlay; any field left empty
// falls back to the environment (and then to defaults).
type fileConfig struct {
	Port             string `yaml:"port"`
	JWTSecretKey     string `yaml:"jwt_secret_key"`
	AccessTokenTTL   int    `yaml:"access_token_ttl_seconds"`
	RefreshTokenTTL  int    `yaml:"refresh_token_ttl_seconds"`
	RedisAddr        string `yaml:"redis_addr"`
	SignalSessionTTL int    `yaml:"signal_session_ttl_seconds"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:             utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:     utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:   time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		RefreshTokenTTL:  time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second,
		RedisAddr:        utils.GetEnv("REDIS_ADDR", "", log),
		SignalSessionTTL: time.Duration(utils.GetEnvAsInt("SIGNAL_SESSION_TTL", 300, log)) * time.Second,
	}

	path := utils.GetEnv("CONFIG_FILE", "config.yaml", log)
	fc, err := loadFileConfig(path)
	if err != nil {
		log.Warn("Config file not loaded, using env only", "path", path, "error", err)
		return cfg
	}
	if fc == nil {
		return cfg
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.JWTSecretKey != "" {
		cfg.JWTSecretKey = fc.JWTSecretKey
	}
	if fc.AccessTokenTTL > 0 {
		cfg.AccessTokenTTL = time.Duration(fc.AccessTokenTTL) * time.Second
	}
	if fc.RefreshTokenTTL > 0 {
		cfg.RefreshTokenTTL = time.Duration(fc.RefreshTokenTTL) * time.Second
	}
	if fc.RedisAddr != "" {
		cfg.RedisAddr = fc.RedisAddr
	}
	if fc.SignalSessionTTL > 0 {
		cfg.SignalSessionTTL = time.Duration(fc.SignalSessionTTL) * time.Second
	}
	return cfg
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &fc, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type UpstreamConfig struct {
	BaseURL         string `yaml:"base_url"`
	SelfRegisterURL string `yaml:"self_register_url"`
	Timeout         string `yaml:"timeout"`
}

type WizardConfig struct {
	TTL string `yaml:"ttl"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

type CasbinConfig struct {
	ModelPath  string `yaml:"model_path"`
	PolicyPath string `yaml:"policy_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Wizard   WizardConfig   `yaml:"wizard"`
	Session  SessionConfig  `yaml:"session"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port    string
	GinMode string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	AccessTTL time.Duration

	UpstreamBaseURL  string
	SelfRegisterURL  string
	UpstreamTimeout  time.Duration
	WizardTTL        time.Duration
	SessionTTL       time.Duration
	CasbinModelPath  string
	CasbinPolicyPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// values that differ between deployments.
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	upTimeout, err := time.ParseDuration(configFile.Upstream.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	wizardTTL, err := time.ParseDuration(configFile.Wizard.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid wizard TTL: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	redisDB := configFile.Redis.DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	return &Config{
		Port:             env("PORT", fmt.Sprintf("%d", configFile.App.Port)),
		GinMode:          env("GIN_MODE", configFile.App.GinMode),
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          redisDB,
		JWTSecret:        env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:        configFile.JWT.Issuer,
		AccessTTL:        accTTL,
		UpstreamBaseURL:  env("UPSTREAM_BASE_URL", configFile.Upstream.BaseURL),
		SelfRegisterURL:  env("SELF_REGISTER_URL", configFile.Upstream.SelfRegisterURL),
		UpstreamTimeout:  upTimeout,
		WizardTTL:        wizardTTL,
		SessionTTL:       sessionTTL,
		CasbinModelPath:  configFile.Casbin.ModelPath,
		CasbinPolicyPath: configFile.Casbin.PolicyPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf ConfigFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cf, nil
}

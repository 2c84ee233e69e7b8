package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Admin    AdminConfig    `yaml:"admin"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	AdminEventsTopic   string   `yaml:"admin_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// AuthMode selects how the admin gate authenticates a request. Resolved once
// at startup; request handling never reads the environment.
type AuthMode string

const (
	AuthModeReal   AuthMode = "real"
	AuthModeMock   AuthMode = "mock"
	AuthModeBypass AuthMode = "bypass"
)

type AuthConfig struct {
	Mode              AuthMode `yaml:"mode"`
	SessionCookieName string   `yaml:"session_cookie_name"`
	MockCookieName    string   `yaml:"mock_cookie_name"`
	SessionTTLMinutes int      `yaml:"session_ttl_minutes"`
	SignInPath        string   `yaml:"sign_in_path"`
	// PublicPaths are matched exactly; no prefix or suffix rules.
	PublicPaths []string `yaml:"public_paths"`
}

type AdminConfig struct {
	ActionTimeoutSeconds int `yaml:"action_timeout_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	cfg.Auth.Mode = resolveAuthMode(cfg.Auth.Mode)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Auth.SessionCookieName == "" {
		cfg.Auth.SessionCookieName = "admin_session"
	}
	if cfg.Auth.MockCookieName == "" {
		cfg.Auth.MockCookieName = "mock_admin_auth"
	}
	if cfg.Auth.SessionTTLMinutes == 0 {
		cfg.Auth.SessionTTLMinutes = 60
	}
	if cfg.Auth.SignInPath == "" {
		cfg.Auth.SignInPath = "/sign-in"
	}
	if len(cfg.Auth.PublicPaths) == 0 {
		cfg.Auth.PublicPaths = []string{"/sign-in", "/sign-up", "/admin/sign-in", "/admin/sign-up"}
	}
	if cfg.Admin.ActionTimeoutSeconds == 0 {
		cfg.Admin.ActionTimeoutSeconds = 10
	}
}

// resolveAuthMode folds the legacy environment flags into the enumerated
// mode. Bypass wins over mock, matching the order the gate historically
// checked the flags in. Neither flag should be reachable in a production
// deployment.
func resolveAuthMode(configured AuthMode) AuthMode {
	if os.Getenv("BYPASS_ADMIN_AUTH") == "true" {
		return AuthModeBypass
	}
	if os.Getenv("MOCK_ADMIN_AUTH") == "true" {
		return AuthModeMock
	}
	switch configured {
	case AuthModeBypass, AuthModeMock, AuthModeReal:
		return configured
	default:
		return AuthModeReal
	}
}

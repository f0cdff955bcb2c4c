package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 3311
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "visapath"
	defaultDBCharset  = "utf8mb4"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultBackupDir  = "./backups"
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment variable overrides for deployment.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	CronSecret     string         `yaml:"cron_secret"` // shared secret for the external publish trigger
	AllowedOrigins []string       `yaml:"allowed_origins"`
	AI             AIConfig       `yaml:"ai"`
	Backup         BackupConfig   `yaml:"backup"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// AIConfig configures the draft generation provider.
type AIConfig struct {
	Provider AIProvider `yaml:"provider"`
}

type AIProvider struct {
	Type     string `yaml:"type"` // openai | openai-compatible | anthropic
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	Enabled  bool   `yaml:"enabled"`
}

// BackupConfig controls the catalog backup job.
type BackupConfig struct {
	Dir string    `yaml:"dir"`
	S3  S3Options `yaml:"s3"`
}

type S3Options struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// Load reads the YAML config file, applies defaults and env overrides.
// A missing file is not an error; defaults + env are enough for dev.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = defaultEnv
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		c.RedisURL = defaultRedisURL
	}
	if strings.TrimSpace(c.Backup.Dir) == "" {
		c.Backup.Dir = defaultBackupDir
	}
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("VP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("VP_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("VP_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("VP_REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("VP_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("VP_CRON_SECRET"); v != "" {
		c.CronSecret = v
	}
	if v := os.Getenv("VP_AI_API_KEY"); v != "" {
		c.AI.Provider.APIKey = v
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.ToLower(strings.TrimSpace(c.Env)) != "production"
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"readTimeout"`
		WriteTimeout    time.Duration `yaml:"writeTimeout"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	LLM struct {
		Provider   string        `yaml:"provider"`
		APIKey     string        `yaml:"apiKey"`
		Model      string        `yaml:"model"`
		BaseURL    string        `yaml:"baseURL"`
		Attempts   uint          `yaml:"attempts"`
		RetryDelay time.Duration `yaml:"retryDelay"`
	} `yaml:"llm"`

	Limits struct {
		MaxChars     int   `yaml:"maxChars"`
		MaxContracts int   `yaml:"maxContracts"`
		MaxUploadMB  int64 `yaml:"maxUploadMB"`
		Workers      int   `yaml:"workers"`
	} `yaml:"limits"`

	Database struct {
		// Driver is memory, mysql or postgres.
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`

		MaxOpenConns    int           `yaml:"maxOpenConns"`
		MaxIdleConns    int           `yaml:"maxIdleConns"`
		ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
		// ConnectAttempts bounds the startup ping retries.
		ConnectAttempts uint `yaml:"connectAttempts"`
	} `yaml:"database"`

	Storage struct {
		// Driver is local or minio.
		Driver   string `yaml:"driver"`
		LocalDir string `yaml:"localDir"`
	} `yaml:"storage"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Auth struct {
		// APIKeys maps owner to key. Empty disables authentication.
		APIKeys map[string]string `yaml:"apiKeys"`
	} `yaml:"auth"`

	RateLimit struct {
		RequestsPerMinute int `yaml:"requestsPerMinute"`
		Burst             int `yaml:"burst"`
	} `yaml:"rateLimit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	Report struct {
		PDF struct {
			Enabled    bool          `yaml:"enabled"`
			ChromePath string        `yaml:"chromePath"`
			Timeout    time.Duration `yaml:"timeout"`
		} `yaml:"pdf"`
	} `yaml:"report"`
}

// Default config dipakai kalau file tidak ada
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8000
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 5 * time.Minute
	cfg.Server.ShutdownTimeout = 30 * time.Second
	cfg.Log.Level = "info"
	cfg.LLM.Provider = "gemini"
	cfg.LLM.Attempts = 3
	cfg.LLM.RetryDelay = time.Second
	cfg.Limits.MaxChars = 30000
	cfg.Limits.MaxContracts = 10
	cfg.Limits.MaxUploadMB = 50
	cfg.Limits.Workers = 4
	cfg.Database.Driver = "memory"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 10
	cfg.Database.ConnMaxLifetime = 30 * time.Minute
	cfg.Database.ConnectAttempts = 5
	cfg.Storage.Driver = "local"
	cfg.Storage.LocalDir = "./comparison_reports"
	cfg.RateLimit.RequestsPerMinute = 60
	cfg.RateLimit.Burst = 10
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.Report.PDF.Timeout = 30 * time.Second
	return &cfg
}

// Load baca file config.yaml. A missing file is not an error, defaults and
// environment overrides still apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = providerKey(c.LLM.Provider)
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	// API_KEYS=owner:key,owner2:key2
	if v := os.Getenv("API_KEYS"); v != "" {
		c.Auth.APIKeys = map[string]string{}
		for _, pair := range strings.Split(v, ",") {
			owner, key, ok := strings.Cut(strings.TrimSpace(pair), ":")
			if !ok || owner == "" || key == "" {
				return fmt.Errorf("API_KEYS: expected owner:key, got %q", pair)
			}
			c.Auth.APIKeys[owner] = key
		}
	}
	return nil
}

// UseProvider switches the LLM backend and picks its key from the environment.
func (c *Config) UseProvider(name string) {
	name = strings.ToLower(name)
	if name == c.LLM.Provider {
		return
	}
	c.LLM.Provider = name
	c.LLM.APIKey = providerKey(name)
}

func providerKey(provider string) string {
	if provider == "openai" {
		return os.Getenv("OPENAI_API_KEY")
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		ssl,
	)
}

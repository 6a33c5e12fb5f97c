package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

type Config struct {
	Server struct {
		Port           int               `yaml:"port"`
		APIKeys        map[string]string `yaml:"apiKeys"`
		AllowedOrigins []string          `yaml:"allowedOrigins"`
	} `yaml:"server"`

	HIBP struct {
		BaseURL   string `yaml:"baseURL"`
		APIKey    string `yaml:"apiKey"`
		UserAgent string `yaml:"userAgent"`
	} `yaml:"hibp"`

	AI struct {
		Enabled bool   `yaml:"enabled"`
		APIKey  string `yaml:"apiKey"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"ai"`

	Output struct {
		Dir   string `yaml:"dir"`
		Chart bool   `yaml:"chart"`
		PDF   bool   `yaml:"pdf"`
		DOCX  bool   `yaml:"docx"`
	} `yaml:"output"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Default returns the settings used when config.yaml is absent.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.HIBP.BaseURL = "https://haveibeenpwned.com/api/v3"
	cfg.HIBP.UserAgent = "pwncheck/1.0"
	cfg.Output.Dir = "."
	cfg.Output.Chart = true
	cfg.Output.PDF = true
	return &cfg
}

// Load baca .env, file config.yaml (opsional), lalu environment.
// A missing HIBP API key is a *breach.ConfigurationError.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.HIBP.APIKey, "HIBP_API_KEY")
	setString(&c.HIBP.BaseURL, "HIBP_BASE_URL")
	setString(&c.HIBP.UserAgent, "HIBP_USER_AGENT")
	setString(&c.AI.APIKey, "OPENAI_API_KEY")
	setString(&c.AI.Model, "OPENAI_MODEL")
	setString(&c.AI.BaseURL, "OPENAI_BASE_URL")
	setString(&c.Output.Dir, "OUTPUT_DIR")
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	// an API key alone turns the summary on
	if c.AI.APIKey != "" || c.AI.BaseURL != "" {
		c.AI.Enabled = true
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.HIBP.APIKey) == "" {
		return &breach.ConfigurationError{Field: "HIBP_API_KEY", Reason: "is not set"}
	}
	if c.Minio.Enabled && (c.Minio.Endpoint == "" || c.Minio.BucketName == "") {
		return &breach.ConfigurationError{Field: "minio", Reason: "requires endpoint and bucketName"}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

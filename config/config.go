package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Agent     AgentConfig     `yaml:"agent"`
	Storage   StorageConfig   `yaml:"storage"`
	Edgar     EdgarConfig     `yaml:"edgar"`
	Jobs      JobsConfig      `yaml:"jobs"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port                   int `yaml:"port"`
	RateLimitRequests      int `yaml:"rate_limit_requests"`
	RateLimitWindowSeconds int `yaml:"rate_limit_window_seconds"`
}

type AgentConfig struct {
	Region     string `yaml:"region"`
	RuntimeARN string `yaml:"runtime_arn"`
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type EdgarConfig struct {
	SubmissionsURL string `yaml:"submissions_url"`
	TickersURL     string `yaml:"tickers_url"`
	UserAgent      string `yaml:"user_agent"`
}

type JobsConfig struct {
	MaxAgeMinutes        int `yaml:"max_age_minutes"`
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
}

type ExtractorConfig struct {
	Script string `yaml:"script"`
	Python string `yaml:"python"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from a YAML file, then applies environment
// overrides and defaults. A missing file is not an error: the server can
// run entirely from environment variables and built-in defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REGION"); v != "" {
		cfg.Agent.Region = v
	}
	if v := os.Getenv("AGENTCORE_AGENT_ARN"); v != "" {
		cfg.Agent.RuntimeARN = v
	}
	if v := os.Getenv("UPLOADED_DOCS_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.RateLimitRequests == 0 {
		cfg.Server.RateLimitRequests = 100
	}
	if cfg.Server.RateLimitWindowSeconds == 0 {
		cfg.Server.RateLimitWindowSeconds = 60
	}
	if cfg.Agent.Region == "" {
		cfg.Agent.Region = "us-east-1"
	}
	if cfg.Agent.RuntimeARN == "" {
		cfg.Agent.RuntimeARN = "arn:aws:bedrock-agentcore:us-east-1:164543933824:runtime/bank_iq_agent_v1-f98stM8Sv9"
	}
	if cfg.Storage.Endpoint == "" {
		cfg.Storage.Endpoint = "s3.amazonaws.com"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "bankiq-uploaded-docs"
	}
	if cfg.Edgar.SubmissionsURL == "" {
		cfg.Edgar.SubmissionsURL = "https://data.sec.gov/submissions"
	}
	if cfg.Edgar.TickersURL == "" {
		cfg.Edgar.TickersURL = "https://www.sec.gov/files/company_tickers.json"
	}
	if cfg.Edgar.UserAgent == "" {
		cfg.Edgar.UserAgent = "BankIQ Analytics contact@bankiq.com"
	}
	if cfg.Jobs.MaxAgeMinutes == 0 {
		cfg.Jobs.MaxAgeMinutes = 30
	}
	if cfg.Jobs.SweepIntervalMinutes == 0 {
		cfg.Jobs.SweepIntervalMinutes = 10
	}
	if cfg.Extractor.Script == "" {
		cfg.Extractor.Script = "scripts/extract_pdf_metadata.py"
	}
	if cfg.Extractor.Python == "" {
		cfg.Extractor.Python = "python3"
	}
}

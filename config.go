package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string          `yaml:"git_commit" envconfig:"RBA_GIT_COMMIT"`
	GitTag             string          `yaml:"git_tag" envconfig:"RBA_GIT_TAG"`
	BuildTime          string          `yaml:"build_time" envconfig:"RBA_BUILD_TIME"`
	IsProduction       bool            `yaml:"is_production" envconfig:"RBA_IS_PRODUCTION"`
	LogLevel           zapcore.Level   `yaml:"log_level" envconfig:"RBA_LOG_LEVEL"`
	LogFolder          string          `yaml:"log_folder" envconfig:"RBA_LOG_FOLDER"`
	LogMaxSize         int             `yaml:"log_max_size" envconfig:"RBA_LOG_MAX_SIZE"`
	OpsEndpointsEnable bool            `yaml:"ops_endpoints_enable" envconfig:"RBA_OPS_ENDPOINTS_ENABLE"`
	ProfilerEnable     bool            `yaml:"profiler_enable" envconfig:"RBA_PROFILER_ENABLE"`
	Server             ServerConfig    `yaml:"server"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"RBA_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"RBA_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"RBA_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"RBA_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"RBA_SERVER_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"RBA_SERVER_SHUTDOWN_TIMEOUT"`
}

type RateLimitConfig struct {
	Enable bool    `yaml:"enable" envconfig:"RBA_RATE_LIMIT_ENABLE"`
	RPS    float64 `yaml:"rps" envconfig:"RBA_RATE_LIMIT_RPS"`
	Burst  int     `yaml:"burst" envconfig:"RBA_RATE_LIMIT_BURST"`
}

// LoadConfigFile provides an instance of the config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environment variables and merges them into the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig sets up defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if config.LogFolder == "" {
		config.LogFolder = "logs"
	}

	if config.LogMaxSize <= 0 {
		config.LogMaxSize = 10
	}

	if config.RateLimit.RPS <= 0 {
		config.RateLimit.RPS = 50
	}

	if config.RateLimit.Burst <= 0 {
		config.RateLimit.Burst = 100
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined
// sources then builds the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration when the env file is present.
	if _, err := os.Stat("./config.env"); err == nil {
		if err := godotenv.Load("./config.env"); err != nil {
			return config, fmt.Errorf("failed to set environment configurations: %s", err)
		}
	}

	// Use environment variables with prefix `RBA`.
	err = LoadConfigEnvs("RBA", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}

package config

import (
	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	PromptDailyLimit     int    `mapstructure:"PROMPT_DAILY_LIMIT"`
	QuotaTimezone        string `mapstructure:"QUOTA_TIMEZONE"`
	SportsAPIURL         string `mapstructure:"SPORTS_API_URL"`
	SportsAPITimeoutSecs int    `mapstructure:"SPORTS_API_TIMEOUT_SECONDS"`
	AIAPIURL             string `mapstructure:"AI_API_URL"`
	AIAPITimeoutSecs     int    `mapstructure:"AI_API_TIMEOUT_SECONDS"`
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
		"CORS_ALLOW_ORIGINS",
		"SCHEDULER_ENABLED", "PROMPT_DAILY_LIMIT", "QUOTA_TIMEZONE",
		"SPORTS_API_URL", "SPORTS_API_TIMEOUT_SECONDS",
		"AI_API_URL", "AI_API_TIMEOUT_SECONDS",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	applyDefaults(&config)

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info("Successfully initialized config", "environment", config.Environment)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func applyDefaults(config *Config) {
	if config.PromptDailyLimit <= 0 {
		config.PromptDailyLimit = 5
	}
	if config.QuotaTimezone == "" {
		config.QuotaTimezone = "UTC"
	}
	if config.SportsAPITimeoutSecs <= 0 {
		config.SportsAPITimeoutSecs = 10
	}
	if config.AIAPITimeoutSecs <= 0 {
		config.AIAPITimeoutSecs = 30
	}
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.SportsAPIURL == "" {
		return log.ErrMsg("Fatal error: SPORTS_API_URL is required")
	}

	ConfigInstance = config
	return nil
}

package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort string `mapstructure:"APP_PORT"`
	Env     string `mapstructure:"ENV"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	MongoDB     string `mapstructure:"MONGO_DB"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// External ML classifier.
	MLServiceURL string `mapstructure:"ML_SERVICE_URL"`
	MLTimeoutSec int    `mapstructure:"ML_TIMEOUT_SEC"`
	MLAPIKey     string `mapstructure:"ML_API_KEY"`

	SynonymCacheTTLSec int   `mapstructure:"SYNONYM_CACHE_TTL_SEC"`
	RetrainThreshold   int64 `mapstructure:"RETRAIN_THRESHOLD"`
	MaxRequestsPerMin  int   `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "keazy")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("ML_SERVICE_URL", "http://localhost:5000")
	viper.SetDefault("ML_TIMEOUT_SEC", 5)
	viper.SetDefault("ML_API_KEY", "")
	viper.SetDefault("SYNONYM_CACHE_TTL_SEC", 300)
	viper.SetDefault("RETRAIN_THRESHOLD", 500)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

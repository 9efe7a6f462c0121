// Package config loads service settings from environment variables, with an
// optional .env file for local development.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every tunable the service reads at startup. The JWT signing
// secrets are intentionally not here; the auth helpers read them from the
// environment directly.
type Config struct {
	ServerPort          string `mapstructure:"SERVER_PORT"`
	MongoDBURL          string `mapstructure:"MONGODB_URL"`
	MongoDBName         string `mapstructure:"MONGODB_NAME"`
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	PlacesAPIKey        string `mapstructure:"PLACES_API_KEY"`
	PlacesBaseURL       string `mapstructure:"PLACES_BASE_URL"`
	LoginMaxAttempts    int    `mapstructure:"LOGIN_MAX_ATTEMPTS"`
	LoginLockoutSeconds int    `mapstructure:"LOGIN_LOCKOUT_SECONDS"`
}

// Load reads configuration from the environment, falling back to a .env file
// in the given path when present.
func Load(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MONGODB_NAME", "fbar")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place")
	viper.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	viper.SetDefault("LOGIN_LOCKOUT_SECONDS", 900)

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("MONGODB_URL")
	_ = viper.BindEnv("MONGODB_NAME")
	_ = viper.BindEnv("REDIS_ADDR")
	_ = viper.BindEnv("PLACES_API_KEY")
	_ = viper.BindEnv("PLACES_BASE_URL")
	_ = viper.BindEnv("LOGIN_MAX_ATTEMPTS")
	_ = viper.BindEnv("LOGIN_LOCKOUT_SECONDS")

	if err = viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; the environment is authoritative.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	if config.LoginMaxAttempts <= 0 {
		config.LoginMaxAttempts = 5
	}
	if config.LoginLockoutSeconds <= 0 {
		config.LoginLockoutSeconds = 900
	}
	return config, nil
}

package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBDSN    string `mapstructure:"DB_DSN"`
	MediaDir string `mapstructure:"MEDIA_DIR"`
	LogFile  string `mapstructure:"LOG_FILE"`
	Seed     bool   `mapstructure:"SEED"`
}

// Load reads configuration from the environment (optionally backed by a
// .env file in the working directory) and applies defaults.
func Load() Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "floreria.db")
	v.SetDefault("MEDIA_DIR", "./media")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("SEED", true)

	// A missing .env is fine; env vars and defaults still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("[config] .env not loaded: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("[config] unmarshal: %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s SEED=%v", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.Seed)
	return cfg
}

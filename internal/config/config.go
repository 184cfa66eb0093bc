package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode             string        `mapstructure:"mode"`
	Port             int           `mapstructure:"port"`
	MongoURI         string        `mapstructure:"mongodb_uri"`
	Database         string        `mapstructure:"database"`
	CORSOrigins      string        `mapstructure:"cors_origins"`
	AllowAllOrigins  bool          `mapstructure:"allow_all_origins"`
	MaxUsersPerStore int           `mapstructure:"max_users_per_store"`
	ReadLimit        int64         `mapstructure:"read_limit"`
	PingPeriod       time.Duration `mapstructure:"ping_period"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8000)
	v.SetDefault("mongodb_uri", "mongodb://localhost:27017")
	v.SetDefault("database", "mersiv")
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:3001,http://localhost:3002")
	v.SetDefault("allow_all_origins", true)
	v.SetDefault("max_users_per_store", 2)
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("write_timeout", "5s")

	// MONGODB_URI etc. override the file.
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Max users per store: %d\n", cfg.Mode, cfg.Port, cfg.MaxUsersPerStore)
	return &cfg, nil
}

package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"truco-server/internal/util"
)

// Config provides configuration for the truco server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		Secret string `yaml:"secret" envconfig:"secret"`
		// TTL is how long a seat token is valid
		TTL time.Duration `yaml:"ttl" envconfig:"ttl"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game struct {
		MatchPoints   int           `yaml:"matchPoints" envconfig:"match_points"`
		BotDelay      time.Duration `yaml:"botDelay" envconfig:"bot_delay"`
		SecureShuffle bool          `yaml:"secureShuffle" envconfig:"secure_shuffle"`
		// Bot is the opponent used when a match is created without one
		Bot string `yaml:"bot" envconfig:"bot"`
	} `yaml:"game"`
}

var config Config

// DefaultConfig returns the configuration used for values missing from the file and environment
func DefaultConfig() Config {
	var cfg Config
	cfg.MigrationsPath = "./sql"
	cfg.JWT.TTL = time.Hour * 24
	cfg.Log.Level = "info"
	cfg.Game.MatchPoints = 12
	cfg.Game.BotDelay = time.Second
	cfg.Game.Bot = "machine"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing configuration file is not an error
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("TRUCO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("truco", &cfg); err != nil {
		return err
	}

	config = cfg
	config.loaded = true
	return nil
}

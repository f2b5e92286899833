package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server struct {
		Host string `yaml:"host" env-default:"localhost"`
		Port int    `yaml:"port" env-default:"8080"`
	} `yaml:"server"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path" env-default:"connect4.db"`
	} `yaml:"database"`

	Kafka struct {
		Enabled bool     `yaml:"enabled" env-default:"false"`
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic" env-default:"game-analytics"`
	} `yaml:"kafka"`

	Game struct {
		BotDifficulty             int `yaml:"bot_difficulty" env-default:"4"`
		MatchmakingTimeoutSeconds int `yaml:"matchmaking_timeout_seconds" env-default:"10"`
		ReconnectTimeoutSeconds   int `yaml:"reconnect_timeout_seconds" env-default:"30"`
	} `yaml:"game"`
}

// MustLoad reads the YAML config named by CONFIG_PATH or the -config
// flag, exiting on any failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configFlag := flag.String("config", "", "Path to configuration file")
		flag.Parse()
		configPath = *configFlag
		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
	return &cfg
}

package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env           string         `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath   string         `yaml:"storage_path" env:"STORAGE_PATH" env-default:"./storage/secureid.db"`
	StorageDriver string         `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	Slots         SlotsConfig    `yaml:"slots"`
	Latency       LatencyConfig  `yaml:"latency"`
	Token         TokenConfig    `yaml:"token"`
	Password      PasswordConfig `yaml:"password"`
}

// SlotsConfig names the key/value slots the accounts blob and the caller's token live in.
type SlotsConfig struct {
	Accounts string `yaml:"accounts" env-default:"mock_users_db"`
	Token    string `yaml:"token" env-default:"token"`
}

// LatencyConfig is the simulated round-trip delay applied before every operation.
type LatencyConfig struct {
	Register time.Duration `yaml:"register" env-default:"800ms"`
	Login    time.Duration `yaml:"login" env-default:"800ms"`
	Profile  time.Duration `yaml:"profile" env-default:"600ms"`
}

type TokenConfig struct {
	Scheme string        `yaml:"scheme" env:"TOKEN_SCHEME" env-default:"mock"`
	Prefix string        `yaml:"prefix" env-default:"mock-jwt-token-"`
	Secret string        `yaml:"secret" env:"TOKEN_SECRET" env-default:"secure-key-123"`
	TTL    time.Duration `yaml:"ttl" env-default:"1h"`
}

type PasswordConfig struct {
	Hasher     string `yaml:"hasher" env:"PASSWORD_HASHER" env-default:"plain"`
	BcryptCost int    `yaml:"bcrypt_cost" env-default:"10"`
}

// MustLoad loads the config from configPath, falling back to CONFIG_PATH.
// Priority: flag > env > defaults.
func MustLoad(configPath string) *Config {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		return MustLoadEnv()
	}

	return MustLoadPath(configPath)
}

// MustLoadPath reads the YAML file at configPath. Values missing from the file
// fall back to the environment and then to the defaults.
func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

// MustLoadEnv builds the config from environment variables and defaults only.
func MustLoadEnv() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from env: " + err.Error())
	}

	return &cfg
}

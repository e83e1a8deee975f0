package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix = "LABSCHED"
)

type Config struct {
	Env string

	Log    LogConfig
	Store  StoreConfig
	Search SearchConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// StoreConfig locates the SQLite database holding past runs
type StoreConfig struct {
	Path string
}

// SearchConfig bounds the backtracking search. Zero values mean unbounded
type SearchConfig struct {
	NodeLimit     uint64
	Timeout       time.Duration
	CapacityCheck bool
}

// Load reads settings from LABSCHED_* environment variables. The given dotenv files (".env" when none) are loaded first
// and never override variables already present in the environment. Malformed search bounds are reported as errors
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Store = StoreConfig{
		Path: v.GetString("DB_PATH"),
	}

	nodeLimit, err := cast.ToUint64E(v.Get("NODE_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("invalid %v_NODE_LIMIT: %w", envPrefix, err)
	}
	timeout, err := parseDuration(v.GetString("TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid %v_TIMEOUT: %w", envPrefix, err)
	}
	capacityCheck, err := cast.ToBoolE(v.Get("PRECHECK"))
	if err != nil {
		return nil, fmt.Errorf("invalid %v_PRECHECK: %w", envPrefix, err)
	}

	cfg.Search = SearchConfig{
		NodeLimit:     nodeLimit,
		Timeout:       timeout,
		CapacityCheck: capacityCheck,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("DB_PATH", "labsched.db")

	v.SetDefault("NODE_LIMIT", 0)
	v.SetDefault("TIMEOUT", "")
	v.SetDefault("PRECHECK", false)
}

// parseDuration reads a non-negative duration. An empty value means no duration
func parseDuration(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %v", raw)
	}

	return d, nil
}

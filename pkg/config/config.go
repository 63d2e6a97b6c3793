// Package config loads process configuration from the environment (and an
// optional .env file) the same way the rest of the ambient stack does:
// viper for layered env/.env reads, godotenv to populate the process
// environment before viper sees it.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the full process configuration for the scheduling core and its
// cmd entry points.
type Config struct {
	Env string

	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Cache     CacheConfig
}

// DatabaseConfig configures the postgres-backed SectionStore.
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig configures the cachestore's redis-backed implementations.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig configures the zap.Logger built by pkg/logger.
type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig holds the Orchestrator's request-level defaults and caps.
type SchedulerConfig struct {
	DefaultNumSchedules int
	DefaultSolver       string
	DefaultTimeLimit    time.Duration
	MaxCourseCodes      int
}

// CacheConfig holds cachestore TTLs.
type CacheConfig struct {
	LinkedCRNsTTL     time.Duration
	EnrollmentInfoTTL time.Duration
}

// Load reads configuration from the environment, falling back to the
// defaults set in setDefaults when a key is unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		DefaultNumSchedules: v.GetInt("SCHEDULER_DEFAULT_NUM_SCHEDULES"),
		DefaultSolver:       v.GetString("SCHEDULER_DEFAULT_SOLVER"),
		DefaultTimeLimit:    parseDuration(v.GetString("SCHEDULER_DEFAULT_TIME_LIMIT"), 10*time.Second),
		MaxCourseCodes:      v.GetInt("SCHEDULER_MAX_COURSE_CODES"),
	}

	cfg.Cache = CacheConfig{
		LinkedCRNsTTL:     parseDuration(v.GetString("CACHE_LINKED_CRNS_TTL"), 0),
		EnrollmentInfoTTL: parseDuration(v.GetString("CACHE_ENROLLMENT_INFO_TTL"), 24*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "oshawa_scheduler")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_DEFAULT_NUM_SCHEDULES", 3)
	v.SetDefault("SCHEDULER_DEFAULT_SOLVER", "cp")
	v.SetDefault("SCHEDULER_DEFAULT_TIME_LIMIT", "10s")
	v.SetDefault("SCHEDULER_MAX_COURSE_CODES", 10)

	v.SetDefault("CACHE_LINKED_CRNS_TTL", "0s")
	v.SetDefault("CACHE_ENROLLMENT_INFO_TTL", "24h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

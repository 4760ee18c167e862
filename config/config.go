package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Stats StatsConfig
}

type AppConfig struct {
	Port           string
	Env            string
	RequestTimeout time.Duration
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	TimeZone    string
	AutoMigrate bool
	// Location is TimeZone loaded; calendar days in query windows and series use it.
	Location *time.Location
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig only carries the verification secret; tokens are issued by the auth service.
type JWTConfig struct {
	Secret string
}

type StatsConfig struct {
	DefaultWindowDays int
	TopServicesLimit  int
}

// LoadConfig reads the given env file (if present) and the process environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("APP_REQUEST_TIMEOUT", "15s")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STATS_DEFAULT_WINDOW_DAYS", 30)
	v.SetDefault("STATS_TOP_SERVICES_LIMIT", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	requestTimeout, err := time.ParseDuration(v.GetString("APP_REQUEST_TIMEOUT"))
	if err != nil {
		requestTimeout = 15 * time.Second
	}

	windowDays := v.GetInt("STATS_DEFAULT_WINDOW_DAYS")
	if windowDays <= 0 {
		windowDays = 30
	}

	location, err := time.LoadLocation(v.GetString("DB_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_TIMEZONE: %w", err)
	}

	topLimit := v.GetInt("STATS_TOP_SERVICES_LIMIT")
	if topLimit <= 0 {
		topLimit = 5
	}

	config := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			RequestTimeout: requestTimeout,
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			TimeZone:    v.GetString("DB_TIMEZONE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
			Location:    location,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		Stats: StatsConfig{
			DefaultWindowDays: windowDays,
			TopServicesLimit:  topLimit,
		},
	}

	return config, nil
}

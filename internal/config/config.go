package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AnswerOrderStored = "stored"
	AnswerOrderRandom = "random"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env      string   `mapstructure:"env"`
	HTTP     HTTP     `mapstructure:"http"`
	Session  Session  `mapstructure:"session"`
	Quiz     Quiz     `mapstructure:"quiz"`
	Database Database `mapstructure:"database"`
}

type HTTP struct {
	Port            string        `mapstructure:"port"`
	BaseURL         string        `mapstructure:"base_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Session struct {
	Secret       string        `mapstructure:"secret"`
	TTL          time.Duration `mapstructure:"ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

type Quiz struct {
	// Size is the number of questions sampled per attempt; 0 or less means the whole bank.
	Size          int    `mapstructure:"size"`
	AnswerOrder   string `mapstructure:"answer_order"`
	PurgeSchedule string `mapstructure:"purge_schedule"`
}

type Database struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// SessionKey returns the cookie signing key. An empty secret yields a fresh
// random key, so sessions do not survive a restart.
func (s Session) SessionKey() []byte {
	if s.Secret == "" {
		return securecookie.GenerateRandomKey(32)
	}
	if key, err := base64.StdEncoding.DecodeString(s.Secret); err == nil && len(key) >= 32 {
		return key
	}
	return []byte(s.Secret)
}

// Load reads .env (if any), config/config.yaml (if any) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.base_url", "http://localhost:8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.secure_cookie", false)
	v.SetDefault("quiz.size", 5)
	v.SetDefault("quiz.answer_order", AnswerOrderStored)
	v.SetDefault("quiz.purge_schedule", "@every 1m")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "quiz_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", "5m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.port", "PORT")
	_ = v.BindEnv("http.base_url", "BASE_URL")
	_ = v.BindEnv("session.secret", "SECRET_KEY", "SESSION_SECRET")
	_ = v.BindEnv("quiz.size", "QUIZ_SIZE")
	_ = v.BindEnv("quiz.answer_order", "QUIZ_ANSWER_ORDER")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.sslmode", "DB_SSLMODE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Quiz.AnswerOrder {
	case AnswerOrderStored, AnswerOrderRandom:
	default:
		return fmt.Errorf("%w: quiz.answer_order must be %q or %q, got %q",
			ErrInvalidConfig, AnswerOrderStored, AnswerOrderRandom, c.Quiz.AnswerOrder)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%w: session.ttl must be positive", ErrInvalidConfig)
	}
	if c.HTTP.Port == "" {
		return fmt.Errorf("%w: http.port is empty", ErrInvalidConfig)
	}
	return nil
}

// Package config предоставляет структуры и функции для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// MinBcryptCost — нижняя граница стоимости bcrypt.
const MinBcryptCost = 10

// Config общая структура для хранения настроек
type Config struct {
	Env             string  `yaml:"env" env:"APP_ENV" env-default:"local"`
	Storage         Storage `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	SMTP            `yaml:"smtp"`
	HTTPServer      `yaml:"http_server"`
	JWTToken        `yaml:"jwttoken"`
	Security        `yaml:"security"`
	Catalog         `yaml:"catalog"`
	Admins          []AdminSeed `yaml:"admins"`
}

// Storage настройки хранилища учётных записей и видео
type Storage struct {
	Driver           string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	ConnectionString string `yaml:"connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath   string `yaml:"migrations_path" env-default:"migrations"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"5s"`
}

// RabbitMQ настройки брокера доменных событий
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"notifications"`
	Queue      string        `yaml:"queue" env-default:"edu-notifications"`
	MaxRetries int           `yaml:"max_retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP настройки отправки писем сервисом уведомлений
type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
	// Domain — домен, к которому дописываются имена пользователей при отправке писем.
	Domain string `yaml:"domain" env-default:"students.local"`
}

// JWTToken структура для работы с jwt-токенами
type JWTToken struct {
	JWTSecretKey   string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL       time.Duration `yaml:"token_ttl" env-default:"24h"`
	VideoSecretKey string        `yaml:"video_secret_key" env:"VIDEO_SECRET_KEY"`
	VideoTokenTTL  time.Duration `yaml:"video_token_ttl" env-default:"2h"`
}

// Security параметры хэширования и ограничения частоты запросов
type Security struct {
	BcryptCost int     `yaml:"bcrypt_cost" env-default:"10"`
	LoginRPS   float64 `yaml:"login_rps" env-default:"1"`
	LoginBurst int     `yaml:"login_burst" env-default:"3"`
}

// Catalog параметры in-memory кэша списков уроков
type Catalog struct {
	CacheSize int           `yaml:"cache_size" env-default:"128"`
	CacheTTL  time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

// AdminSeed учётная запись администратора, создаваемая при старте
type AdminSeed struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Load читает конфиг из файла и применяет переменные окружения.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH.
// Если рядом лежит .env, переменные из него подхватываются до чтения конфига.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.Security.BcryptCost < MinBcryptCost {
		c.Security.BcryptCost = MinBcryptCost
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.JWTSecretKey == "" || c.VideoSecretKey == "" {
		return errors.New("jwt secrets must be set")
	}
	if c.JWTSecretKey == c.VideoSecretKey {
		return errors.New("session and video secrets must differ")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage: %s\n"+
			"Redis: %s (db %d)\n"+
			"RabbitMQ exchange: %s\n"+
			"HTTPServer: %s (timeout %s, idle %s)\n"+
			"TokenTTL: %s, VideoTokenTTL: %s\n"+
			"BcryptCost: %d\n"+
			"Admins: %d\n",
		c.Env,
		c.Storage.Driver,
		c.AddressRedis,
		c.DB,
		c.Exchange,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
		c.VideoTokenTTL,
		c.BcryptCost,
		len(c.Admins),
	)
}

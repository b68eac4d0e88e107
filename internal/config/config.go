// Package config предоставляет структуры и функции для парсинга и загрузки конфига
// витрины и mock-сервиса каталога пользователей.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// EnvLocal локальное окружение, подробные логи.
	EnvLocal = "local"
	// EnvDev окружение для разработки.
	EnvDev = "dev"
	// EnvProd боевое окружение, JSON-логи.
	EnvProd = "prod"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      HTTPServer      `yaml:"http_server"`
	Directory       Directory       `yaml:"directory"`
	Cookie          Cookie          `yaml:"cookie"`
	Session         Session         `yaml:"session"`
	Guard           Guard           `yaml:"guard"`
	Auth            Auth            `yaml:"auth"`
	Orders          Orders          `yaml:"orders"`
	RedisConnection RedisConnection `yaml:"redis_connection"`
	RabbitMQ        RabbitMQ        `yaml:"rabbitmq"`
	DirectoryServer DirectoryServer `yaml:"directory_server"`
}

// HTTPServer структура для настройки сервера витрины
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":3000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	// TrustProxy включает разбор X-Real-IP и X-Forwarded-For.
	// Только для развёртывания за доверенным прокси.
	TrustProxy  bool          `yaml:"trust_proxy" env:"HTTP_TRUST_PROXY"`
}

// Directory структура для настройки клиента каталога пользователей и заказов
type Directory struct {
	BaseURL string        `yaml:"base_url" env:"DIRECTORY_BASE_URL" env-default:"http://localhost:3001"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

// Cookie структура для настройки кук
type Cookie struct {
	Prefix      string        `yaml:"prefix" env:"COOKIE_PREFIX"`
	Domain      string        `yaml:"domain" env:"COOKIE_DOMAIN"`
	Secure      bool          `yaml:"secure" env:"COOKIE_SECURE"`
	SameSite    string        `yaml:"same_site" env:"COOKIE_SAME_SITE" env-default:"lax"`
	DefaultPath string        `yaml:"default_path" env-default:"/"`
	FlagMaxAge  time.Duration `yaml:"flag_max_age" env:"COOKIE_FLAG_MAX_AGE"`
}

// Session структура для настройки сессий посетителей
type Session struct {
	CookieName string        `yaml:"cookie_name" env-default:"sid"`
	SecretKey  string        `yaml:"secret_key" env:"SESSION_SECRET_KEY" env-required:"true"`
	TTL        time.Duration `yaml:"ttl" env-default:"24h"`
}

// Guard структура для настройки защиты маршрутов
type Guard struct {
	ProtectedPrefixes []string `yaml:"protected_prefixes" env:"GUARD_PROTECTED_PREFIXES" env-default:"/orders"`
	LoginPath         string   `yaml:"login_path" env-default:"/auth/login"`
}

// Auth структура для настройки сценариев входа и регистрации
type Auth struct {
	PasswordScheme string        `yaml:"password_scheme" env:"AUTH_PASSWORD_SCHEME" env-default:"plaintext"`
	RateLimit      float64       `yaml:"rate_limit" env-default:"5"`
	RateBurst      int           `yaml:"rate_burst" env-default:"10"`
	RateIdle       time.Duration `yaml:"rate_idle" env-default:"10m"`
}

// Orders структура для настройки просмотра заказов
type Orders struct {
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"1m"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес означает работу без redis: сессии в памяти, без кеша заказов.
type RedisConnection struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
}

// RabbitMQ структура для настройки публикации событий авторизации.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string        `yaml:"exchange" env-default:"storefront.auth"`
	Retries  int           `yaml:"retries" env-default:"5"`
	Delay    time.Duration `yaml:"delay" env-default:"2s"`
}

// DirectoryServer структура для настройки mock-сервиса каталога.
// Пустая строка подключения означает хранилище в памяти.
type DirectoryServer struct {
	Address                 string `yaml:"address" env:"DIRECTORY_ADDRESS" env-default:":3001"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DIRECTORY_STORAGE"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
}

// Load читает конфиг из файла по пути path и переопределяет значения из окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if path == "" {
		return nil, fmt.Errorf("%s: config path is empty", op)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
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

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Directory:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"Guard:\n"+
			"  ProtectedPrefixes: %v\n"+
			"  LoginPath: %s\n"+
			"Auth:\n"+
			"  PasswordScheme: %s\n"+
			"RedisConnection:\n"+
			"  Address: %s\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n",
		c.Env,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.Directory.BaseURL,
		c.Directory.Timeout,
		c.Guard.ProtectedPrefixes,
		c.Guard.LoginPath,
		c.Auth.PasswordScheme,
		c.RedisConnection.Address,
		c.RabbitMQ.Exchange,
	)
}

// config реализует конфигурацию discussions-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Probes   ProbesConfig  `yaml:"probes"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	DAOS     DAOSConfig    `yaml:"daos"`
	Limits   LimitsConfig  `yaml:"limits"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"5s"`
}

// HTTPConfig — сетевые настройки основного HTTP API.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50055"`
}

// ProbesConfig — отдельный HTTP для health/metrics.
type ProbesConfig struct {
	Host string `yaml:"host" env:"PROBES_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"PROBES_PORT" env-default:"50085"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (p ProbesConfig) Addr() string {
	return net.JoinHostPort(p.Host, p.Port)
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — подключение к Redis для reply-индекса.
// Prefix задаёт пространство ключей ZSET-ов (по одному на корень ветки).
type RedisConfig struct {
	URL    string `yaml:"url"    env:"REDIS_URL" env-required:"true"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"discussions:replies:"`
}

// DAOSConfig — адрес внешнего daos-сервиса (проверка существования DAO).
type DAOSConfig struct {
	URL     string        `yaml:"url"     env:"DAOS_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"DAOS_TIMEOUT" env-default:"2s"`
}

// LimitsConfig — лимиты на выдачу, тело сообщения и обход предков.
type LimitsConfig struct {
	// Пагинация: page_size=0 -> берём Default; верхняя граница — Max.
	Default int32 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"20"`
	Max     int32 `yaml:"max"     env:"MAX_LIMIT"     env-default:"300"`
	// Число ответов в превью ветки на странице дискуссий.
	Preview int32 `yaml:"preview" env:"PREVIEW_LIMIT" env-default:"3"`
	// Максимальная длина тела сообщения в рунах. Минимум всегда 1.
	MaxBody int32 `yaml:"max_body" env:"MAX_BODY" env-default:"256"`
	// Потолок обхода цепочки reply-to при реконструкции ветки.
	MaxAncestors int32 `yaml:"max_ancestors" env:"MAX_ANCESTORS" env-default:"50"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required")
	}

	if c.DAOS.URL == "" {
		return fmt.Errorf("daos.url is required")
	}

	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}

	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}

	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}

	if c.Limits.Preview < 0 {
		return fmt.Errorf("limits.preview must be >= 0")
	}

	if c.Limits.MaxBody <= 0 {
		return fmt.Errorf("limits.max_body must be > 0")
	}

	if c.Limits.MaxAncestors <= 0 {
		return fmt.Errorf("limits.max_ancestors must be > 0")
	}

	if c.Limits.MaxAncestors > 512 {
		return fmt.Errorf("limits.max_ancestors is too large (<= 512)")
	}

	return nil
}

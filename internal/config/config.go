package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Storage  StorageConfig  `yaml:"storage"`
	Cache    CacheConfig    `yaml:"cache"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Server   ServerConfig   `yaml:"server"`
	Edit     EditConfig     `yaml:"edit"`
}

type WorldConfig struct {
	Seed            int64 `yaml:"seed"`
	GenerateMissing bool  `yaml:"generate_missing"`
	AutosaveSeconds int   `yaml:"autosave_seconds"`
}

// Бэкенды хранилища заготовок
const (
	PrefabBackendBadger = "badger"
	PrefabBackendMaria  = "maria"
	PrefabBackendMemory = "memory"
)

type StorageConfig struct {
	DataPath      string `yaml:"data_path"`
	PrefabBackend string `yaml:"prefab_backend"`
	MariaDSN      string `yaml:"maria_dsn"`
}

// CacheConfig описывает кеш заготовок. Пустой RedisURL включает кеш в памяти,
// пустой NATSURL отключает рассылку инвалидаций.
type CacheConfig struct {
	Enabled       bool   `yaml:"enabled"`
	RedisURL      string `yaml:"redis_url"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTLSeconds    int    `yaml:"ttl_seconds"`
	NATSURL       string `yaml:"nats_url"`
	Subject       string `yaml:"subject"`
}

// EventBusConfig: пустой URL означает шину в памяти процесса.
type EventBusConfig struct {
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Capacity  int    `yaml:"capacity"`
}

type ServerConfig struct {
	MetricsPort int    `yaml:"metrics_port"`
	LogLevel    string `yaml:"log_level"`
	Telemetry   bool   `yaml:"telemetry"`
	ServiceName string `yaml:"service_name"`
}

type EditConfig struct {
	UndoDepth int `yaml:"undo_depth"`
	MaxVolume int `yaml:"max_volume"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			GenerateMissing: true,
			AutosaveSeconds: 300,
		},
		Storage: StorageConfig{
			DataPath:      "data",
			PrefabBackend: PrefabBackendBadger,
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
			Subject:    "prefab.invalidation",
		},
		EventBus: EventBusConfig{
			Stream:    "EVENTS",
			Retention: 24,
			Capacity:  1024,
		},
		Server: ServerConfig{
			LogLevel:    "INFO",
			ServiceName: "blockarea-server",
		},
		Edit: EditConfig{
			UndoDepth: 16,
			MaxVolume: 4 * 1024 * 1024,
		},
	}
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "GAME_METRICS_PORT", 2112)
}

// AutosaveInterval возвращает интервал автосохранения мира
func (w *WorldConfig) AutosaveInterval() time.Duration {
	return time.Duration(w.AutosaveSeconds) * time.Second
}

// TTL возвращает время жизни записей кеша
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RetentionDuration возвращает срок хранения событий в JetStream
func (e *EventBusConfig) RetentionDuration() time.Duration {
	return time.Duration(e.Retention) * time.Hour
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.PrefabBackend {
	case PrefabBackendBadger, PrefabBackendMemory:
	case PrefabBackendMaria:
		if c.Storage.MariaDSN == "" {
			return fmt.Errorf("storage.maria_dsn обязателен для бэкенда %q", PrefabBackendMaria)
		}
	default:
		return fmt.Errorf("неизвестный storage.prefab_backend: %q", c.Storage.PrefabBackend)
	}
	if c.World.AutosaveSeconds < 0 {
		return fmt.Errorf("world.autosave_seconds не может быть отрицательным: %d", c.World.AutosaveSeconds)
	}
	if c.Edit.UndoDepth < 0 {
		return fmt.Errorf("edit.undo_depth не может быть отрицательным: %d", c.Edit.UndoDepth)
	}
	if c.Edit.MaxVolume <= 0 {
		return fmt.Errorf("edit.max_volume должен быть положительным: %d", c.Edit.MaxVolume)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV GAME_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

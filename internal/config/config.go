package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/lottery"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/solves"
)

const defaultConfigPath = "config/config.yaml"

// Config объединяет все аспекты настройки приложения.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GitHub   GitHubConfig   `yaml:"github"`
	Board    BoardConfig    `yaml:"board"`
	Database DatabaseConfig `yaml:"database"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
	Logging  LoggingConfig  `yaml:"logging"`
	Swagger  SwaggerConfig  `yaml:"swagger"`
}

// HTTPConfig описывает HTTP-сервер.
type HTTPConfig struct {
	Port         string        `yaml:"port" env:"HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`
}

// GitHubConfig описывает репозиторий с решениями и доступ к API.
type GitHubConfig struct {
	BaseURL     string `yaml:"base_url" env:"GITHUB_BASE_URL"`
	Token       string `yaml:"token" env:"GITHUB_TOKEN"`
	Owner       string `yaml:"owner" env:"GITHUB_OWNER"`
	Repo        string `yaml:"repo" env:"GITHUB_REPO"`
	PerPage     int    `yaml:"per_page" env:"GITHUB_PER_PAGE"`
	MaxRequests int    `yaml:"max_requests" env:"GITHUB_MAX_REQUESTS"`
}

// BoardConfig правила подсчёта решений и розыгрыша.
type BoardConfig struct {
	Timezone        string        `yaml:"timezone" env:"BOARD_TIMEZONE"`
	Blacklist       []string      `yaml:"blacklist" env:"BOARD_BLACKLIST" envSeparator:","`
	SeedFormat      string        `yaml:"seed_format" env:"BOARD_SEED_FORMAT"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env:"BOARD_CACHE_TTL"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"BOARD_REFRESH_INTERVAL"`
	RecentLimit     int           `yaml:"recent_limit" env:"BOARD_RECENT_LIMIT"`
}

// DatabaseConfig описывает подключение к PostgreSQL. Пустой URL отключает архив досок.
type DatabaseConfig struct {
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	MigrationsPath  string        `yaml:"migrations_path" env:"MIGRATIONS_PATH"`
	MaxConnections  int32         `yaml:"max_connections" env:"DB_MAX_CONNECTIONS"`
	MinConnections  int32         `yaml:"min_connections" env:"DB_MIN_CONNECTIONS"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME"`
}

// TimeoutConfig содержит таймауты разного уровня.
type TimeoutConfig struct {
	Operation     time.Duration `yaml:"operation" env:"OPERATION_TIMEOUT"`
	LongOperation time.Duration `yaml:"long_operation" env:"LONG_OPERATION_TIMEOUT"`
	Shutdown      time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig описывает формат и место логов.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Output string `yaml:"output" env:"LOG_OUTPUT"`
}

// SwaggerConfig задаёт путь до OpenAPI-спецификации.
type SwaggerConfig struct {
	SpecPath string `yaml:"spec_path" env:"SWAGGER_SPEC_PATH"`
}

// Location возвращает часовой пояс доски. Неизвестная зона заменяется на UTC+9.
func (b BoardConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// Repository возвращает owner/repo.
func (g GitHubConfig) Repository() string {
	return g.Owner + "/" + g.Repo
}

// MustLoad загружает конфигурацию из YAML + ENV и паникует при ошибке.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию, отдавая предпочтение пути из CONFIG_PATH.
// Переменные из .env (если файл есть) подхватываются до разбора окружения и не перекрывают уже заданные.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg := Config{}
	if err := readYAML(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env vars: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config yaml: %w", err)
	}
	return nil
}

// normalize устанавливает значения по умолчанию для незаданных полей.
func (c *Config) normalize() {
	if c.HTTP.Port == "" {
		c.HTTP.Port = "8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 5 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.HTTP.IdleTimeout <= 0 {
		c.HTTP.IdleTimeout = 5 * time.Minute
	}

	if c.GitHub.Owner == "" {
		c.GitHub.Owner = "ANA-CNU"
	}
	if c.GitHub.Repo == "" {
		c.GitHub.Repo = "ANA-Daily-Algorithm"
	}
	if c.GitHub.PerPage <= 0 || c.GitHub.PerPage > 100 {
		c.GitHub.PerPage = 100
	}
	if c.GitHub.MaxRequests <= 0 {
		c.GitHub.MaxRequests = 20
	}

	// Доска
	if c.Board.Timezone == "" {
		c.Board.Timezone = "Asia/Seoul"
	}
	if c.Board.Blacklist == nil {
		c.Board.Blacklist = append([]string(nil), solves.DefaultBlacklist...)
	}
	if c.Board.SeedFormat == "" {
		c.Board.SeedFormat = lottery.DefaultSeedFormat
	}
	if c.Board.CacheTTL <= 0 {
		c.Board.CacheTTL = time.Minute
	}

	if c.Database.MigrationsPath == "" {
		c.Database.MigrationsPath = "migrations"
	}
	if c.Timeouts.Operation <= 0 {
		c.Timeouts.Operation = 30 * time.Second
	}
	if c.Timeouts.LongOperation <= 0 {
		c.Timeouts.LongOperation = 60 * time.Second
	}
	if c.Timeouts.Shutdown <= 0 {
		c.Timeouts.Shutdown = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Swagger.SpecPath == "" {
		c.Swagger.SpecPath = "openapi.yml"
	}
}

func (c *Config) validate() error {
	if strings.Count(c.Board.SeedFormat, "%d") != 1 {
		return fmt.Errorf("board.seed_format must contain exactly one %%d, got %q", c.Board.SeedFormat)
	}
	return nil
}

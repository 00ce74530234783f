package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultAPIURL адрес backend по умолчанию для клиента
const DefaultAPIURL = "http://localhost:5000/api"

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Mongo     MongoConfig     `toml:"mongo"`
	Tracing   TracingConfig   `toml:"tracing"`
	Cors      CorsConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Workers   WorkersConfig   `toml:"workers"`
	Seed      SeedConfig      `toml:"seed"`
	Client    ClientConfig    `toml:"client"`
}

type ServerConfig struct {
	HTTPPort        int   `toml:"http_port"`
	ReadTimeout     int   `toml:"read_timeout"`
	WriteTimeout    int   `toml:"write_timeout"`
	IdleTimeout     int   `toml:"idle_timeout"`
	ShutdownTimeout int   `toml:"shutdown_timeout"`
	RequestTimeout  int   `toml:"request_timeout"`
	MaxBodyBytes    int64 `toml:"max_body_bytes"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret        string   `toml:"jwt_secret"`
	TokenTTLHours    int      `toml:"token_ttl_hours"`
	SuperAdminEmails []string `toml:"superadmin_emails"`
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

type KafkaConfig struct {
	Brokers     string `toml:"brokers"` // через запятую, пусто = события выключены
	TopicPrefix string `toml:"topic_prefix"`
}

type MongoConfig struct {
	URI        string `toml:"uri"` // пусто = архив выключен
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type TracingConfig struct {
	Endpoint    string  `toml:"endpoint"` // OTLP gRPC, пусто = трейсинг выключен
	SampleRatio float64 `toml:"sample_ratio"`
}

type CorsConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type RateLimitConfig struct {
	AuthRPS   float64 `toml:"auth_rps"`
	AuthBurst int     `toml:"auth_burst"`
}

type WorkersConfig struct {
	Enabled            bool `toml:"enabled"`
	ReviewPurgeMinutes int  `toml:"review_purge_minutes"`
	ArchiveHour        int  `toml:"archive_hour"`
}

type SeedConfig struct {
	TemplateFile string `toml:"template_file"`
}

type ClientConfig struct {
	APIURL      string `toml:"api_url"`
	SessionFile string `toml:"session_file"`
	Timeout     int    `toml:"timeout"`
}

// Load загружает .env (если есть), затем TOML файл, затем применяет переменные окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient загружает только клиентскую часть конфигурации; отсутствие файла не ошибка
func LoadClient(path string) (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg.Client, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.Tracing.Endpoint = v
	}
	if v := os.Getenv("REACT_APP_API_URL"); v != "" {
		c.Client.APIURL = NormalizeAPIURL(v)
	}
}

// NormalizeAPIURL добавляет "/api", если адрес указывает на корень сервера
func NormalizeAPIURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return DefaultAPIURL
	}
	if !strings.HasSuffix(u, "/api") {
		u += "/api"
	}
	return u
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 5000)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 30)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)
	setDefault(&c.Server.RequestTimeout, 20)
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = 2 << 20
	}

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "turnos-service"
	}

	setDefault(&c.Auth.TokenTTLHours, 24)
	setDefault(&c.Redis.TTLMinutes, 5)

	if c.Kafka.TopicPrefix == "" {
		c.Kafka.TopicPrefix = "turnos"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "maxturnos"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "reservas_historicas"
	}
	if c.Tracing.SampleRatio <= 0 {
		c.Tracing.SampleRatio = 1
	}
	if len(c.Cors.AllowedOrigins) == 0 {
		c.Cors.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.RateLimit.AuthRPS <= 0 {
		c.RateLimit.AuthRPS = 1
	}
	setDefault(&c.RateLimit.AuthBurst, 5)
	setDefault(&c.Workers.ReviewPurgeMinutes, 60)
	if c.Workers.ArchiveHour <= 0 || c.Workers.ArchiveHour > 23 {
		c.Workers.ArchiveHour = 2
	}

	if c.Client.APIURL == "" {
		c.Client.APIURL = DefaultAPIURL
	}
	if c.Client.SessionFile == "" {
		c.Client.SessionFile = ".turnos-session.json"
	}
	setDefault(&c.Client.Timeout, 15)
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// Validate проверяет обязательные параметры сервера
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("config: database host, user and dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret (or JWT_SECRET) is required")
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	return nil
}

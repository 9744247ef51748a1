package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// (например SMC_DATABASE_PASSWORD, SMC_ADMIN_TOKEN)
const EnvPrefix = "SMC"

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server       ServerConfig       `toml:"server" split_words:"true"`
	Database     DatabaseConfig     `toml:"database" split_words:"true"`
	Logs         LogsConfig         `toml:"logs" split_words:"true"`
	Metrics      MetricsConfig      `toml:"metrics" split_words:"true"`
	Redis        RedisConfig        `toml:"redis" split_words:"true"`
	Kafka        KafkaConfig        `toml:"kafka" split_words:"true"`
	Catalog      CatalogConfig      `toml:"catalog" split_words:"true"`
	Availability AvailabilityConfig `toml:"availability" split_words:"true"`
	Sweep        SweepConfig        `toml:"sweep" split_words:"true"`
	Admin        AdminConfig        `toml:"admin" split_words:"true"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`     // секунды
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`    // секунды
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"` // секунды
}

type DatabaseConfig struct {
	Driver          string `toml:"driver" split_words:"true"` // postgres | memory
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
	LockTTL  int    `toml:"lock_ttl" split_words:"true"` // секунды
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers" split_words:"true"` // пусто - события не публикуются
	Topic   string   `toml:"topic" split_words:"true"`
	Timeout int      `toml:"timeout" split_words:"true"` // секунды
}

type CatalogConfig struct {
	Slots    []string `toml:"slots" split_words:"true"`
	OffDay   string   `toml:"off_day" split_words:"true"`  // sunday, monday, ...
	Timezone string   `toml:"timezone" split_words:"true"` // IANA, пусто - Local
}

type AvailabilityConfig struct {
	InteractiveStatuses []string `toml:"interactive_statuses" split_words:"true"`
	CalendarStatuses    []string `toml:"calendar_statuses" split_words:"true"`
	MaxRangeDays        int      `toml:"max_range_days" split_words:"true"`
	MaxAdvanceDays      int      `toml:"max_advance_days" split_words:"true"` // 0 - без ограничения
}

type SweepConfig struct {
	OnRead          bool `toml:"on_read" split_words:"true"`
	IntervalSeconds int  `toml:"interval_seconds" split_words:"true"` // 0 - фоновый воркер выключен
}

type AdminConfig struct {
	Token string `toml:"token" split_words:"true"` // пусто - admin API без проверки
}

// Load читает config.toml, подгружает .env (если есть) и применяет переменные окружения SMC_*.
// Отсутствующий файл конфигурации не ошибка: используются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "slot_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "slot_booking",
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			LockTTL: 5,
		},
		Kafka: KafkaConfig{
			Topic:   "booking-events",
			Timeout: 5,
		},
		Catalog: CatalogConfig{
			Slots:  append([]string(nil), domain.DefaultSlotLabels...),
			OffDay: strings.ToLower(domain.DefaultOffDay.String()),
		},
		Availability: AvailabilityConfig{
			InteractiveStatuses: statusNames(domain.InteractiveOccupancy),
			CalendarStatuses:    statusNames(domain.CalendarOccupancy),
			MaxRangeDays:        domain.DefaultMaxRangeDays,
		},
		Sweep: SweepConfig{
			OnRead:          true,
			IntervalSeconds: 300,
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("%w: database.driver must be %q or %q, got %q",
			ErrInvalidConfig, DriverPostgres, DriverMemory, c.Database.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Availability.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: availability.max_range_days must be positive", ErrInvalidConfig)
	}
	if c.Availability.MaxAdvanceDays < 0 {
		return fmt.Errorf("%w: availability.max_advance_days must not be negative", ErrInvalidConfig)
	}
	if c.Sweep.IntervalSeconds < 0 {
		return fmt.Errorf("%w: sweep.interval_seconds must not be negative", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.LockTTL <= 0 {
		return fmt.Errorf("%w: redis.lock_ttl must be positive", ErrInvalidConfig)
	}

	if _, err := c.Catalog.Build(); err != nil {
		return err
	}
	if _, err := c.Availability.InteractivePolicy(); err != nil {
		return err
	}
	if _, err := c.Availability.CalendarPolicy(); err != nil {
		return err
	}

	return nil
}

// Build собирает каталог слотов
func (c CatalogConfig) Build() (*domain.SlotCatalog, error) {
	offDay, err := parseWeekday(c.OffDay)
	if err != nil {
		return nil, err
	}

	loc := time.Local
	if c.Timezone != "" {
		loc, err = time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: catalog.timezone: %v", ErrInvalidConfig, err)
		}
	}

	catalog, err := domain.NewSlotCatalog(c.Slots, offDay, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog.slots: %v", ErrInvalidConfig, err)
	}
	return catalog, nil
}

// InteractivePolicy статусы, занимающие слот для выбора даты
func (c AvailabilityConfig) InteractivePolicy() (domain.OccupancyPolicy, error) {
	return parsePolicy("availability.interactive_statuses", c.InteractiveStatuses)
}

// CalendarPolicy статусы, занимающие слот в экспорте календаря
func (c AvailabilityConfig) CalendarPolicy() (domain.OccupancyPolicy, error) {
	return parsePolicy("availability.calendar_statuses", c.CalendarStatuses)
}

func (c RedisConfig) LockTTLDuration() time.Duration {
	return time.Duration(c.LockTTL) * time.Second
}

func (c KafkaConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c SweepConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

func parsePolicy(name string, raw []string) (domain.OccupancyPolicy, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
	}

	policy := make(domain.OccupancyPolicy, 0, len(raw))
	for _, s := range raw {
		status, err := domain.ParseBookingStatus(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
		if status == domain.StatusDeleted {
			return nil, fmt.Errorf("%w: %s: deleted bookings never occupy a slot", ErrInvalidConfig, name)
		}
		policy = append(policy, status)
	}
	return policy, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: catalog.off_day: unknown weekday %q", ErrInvalidConfig, s)
}

func statusNames(policy domain.OccupancyPolicy) []string {
	names := make([]string, len(policy))
	for i, s := range policy {
		names[i] = string(s)
	}
	return names
}

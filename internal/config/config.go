package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("invalid config")

// Config корневая конфигурация сервиса и клиента
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Meeting   MeetingConfig   `toml:"meeting"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Gateway   GatewayConfig   `toml:"gateway"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
	// AdminToken значение X-Admin-Token для /api/v1/admin; пустое - маршруты закрыты
	AdminToken string `toml:"admin_token"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig значения по умолчанию для настроек бронирования.
// Используются, если в БД нет записи с настройками.
type BookingConfig struct {
	Enabled          bool   `toml:"enabled"`
	DurationMinutes  int    `toml:"duration_minutes"`
	MaxAdvanceDays   int    `toml:"max_advance_days"`
	MinNoticeMinutes int    `toml:"min_notice_minutes"`
	Timezone         string `toml:"timezone"`
}

// Location загружает часовой пояс бронирования
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// ScheduleConfig недельное расписание: для каждого дня список интервалов "HH:MM-HH:MM".
// Пустой список - выходной.
type ScheduleConfig struct {
	Monday    []string `toml:"monday"`
	Tuesday   []string `toml:"tuesday"`
	Wednesday []string `toml:"wednesday"`
	Thursday  []string `toml:"thursday"`
	Friday    []string `toml:"friday"`
	Saturday  []string `toml:"saturday"`
	Sunday    []string `toml:"sunday"`
}

// Interval рабочий интервал внутри дня
type Interval struct {
	Open  types.TimeOfDay
	Close types.TimeOfDay
}

// ForWeekday возвращает разобранные интервалы для дня недели
func (c ScheduleConfig) ForWeekday(day time.Weekday) ([]Interval, error) {
	var raw []string
	switch day {
	case time.Monday:
		raw = c.Monday
	case time.Tuesday:
		raw = c.Tuesday
	case time.Wednesday:
		raw = c.Wednesday
	case time.Thursday:
		raw = c.Thursday
	case time.Friday:
		raw = c.Friday
	case time.Saturday:
		raw = c.Saturday
	case time.Sunday:
		raw = c.Sunday
	}

	intervals := make([]Interval, 0, len(raw))
	for _, r := range raw {
		interval, err := ParseInterval(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", day, err)
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

// ParseInterval парсит "HH:MM-HH:MM"
func ParseInterval(s string) (Interval, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("%w: interval %q must be HH:MM-HH:MM", ErrInvalidConfig, s)
	}
	open, err := types.ParseTimeOfDay(parts[0])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: interval %q: %v", ErrInvalidConfig, s, err)
	}
	closeTime, err := types.ParseTimeOfDay(parts[1])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: interval %q: %v", ErrInvalidConfig, s, err)
	}
	if !open.IsBefore(closeTime) {
		return Interval{}, fmt.Errorf("%w: interval %q closes before it opens", ErrInvalidConfig, s)
	}
	return Interval{Open: open, Close: closeTime}, nil
}

type MeetingConfig struct {
	BaseURL string `toml:"base_url"`
}

type RateLimitConfig struct {
	BookingPerMinute int  `toml:"booking_per_minute"`
	FailOpen         bool `toml:"fail_open"`
}

// GatewayConfig адрес сервиса доступности для клиента
type GatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	weekday := func() []string { return []string{"09:00-12:00", "14:00-18:00"} }
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "consultation",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "consultation_gateway",
		},
		Booking: BookingConfig{
			Enabled:          true,
			DurationMinutes:  30,
			MaxAdvanceDays:   30,
			MinNoticeMinutes: 60,
			Timezone:         "Europe/Paris",
		},
		Schedule: ScheduleConfig{
			Monday:    weekday(),
			Tuesday:   weekday(),
			Wednesday: weekday(),
			Thursday:  weekday(),
			Friday:    weekday(),
		},
		Meeting: MeetingConfig{
			BaseURL: "https://meet.jit.si",
		},
		RateLimit: RateLimitConfig{
			BookingPerMinute: 10,
			FailOpen:         true,
		},
		Gateway: GatewayConfig{
			URL:     "http://localhost:8080/api/v1",
			Timeout: 10,
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault как Load, но отсутствующий файл не считается ошибкой
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Booking.DurationMinutes <= 0 {
		return fmt.Errorf("%w: booking.duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.MaxAdvanceDays < 0 {
		return fmt.Errorf("%w: booking.max_advance_days must not be negative", ErrInvalidConfig)
	}
	if c.Booking.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.min_notice_minutes must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if _, err := c.Schedule.ForWeekday(day); err != nil {
			return fmt.Errorf("%w: schedule: %v", ErrInvalidConfig, err)
		}
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be a valid TCP port", ErrInvalidConfig)
	}
	if c.RateLimit.BookingPerMinute <= 0 {
		return fmt.Errorf("%w: rate_limit.booking_per_minute must be positive", ErrInvalidConfig)
	}
	if c.Meeting.BaseURL == "" {
		return fmt.Errorf("%w: meeting.base_url is required", ErrInvalidConfig)
	}
	return nil
}

package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT, default=8080"`
	MySQLDSN   string `env:"MYSQL_DSN, default=user:password@tcp(localhost:3306)/officetrack?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr  string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB    int    `env:"REDIS_DB, default=0"`
	RedisPass  string `env:"REDIS_PASSWORD"`
	JWTSecret  string `env:"JWT_SECRET, default=change-me"`
	UploadDir  string `env:"UPLOAD_DIR, default=uploads"`
	LogLevel   string `env:"LOG_LEVEL, default=info"`
	LogPretty  bool   `env:"LOG_PRETTY, default=false"`

	Office   OfficeConfig
	WhatsApp WhatsAppConfig
}

// OfficeConfig describes the office geofence and the local wall-clock rules
// that govern attendance. All cutoffs are interpreted in Timezone.
type OfficeConfig struct {
	Lat          float64 `env:"OFFICE_LAT, default=20.010681"`
	Lng          float64 `env:"OFFICE_LNG, default=73.741994"`
	RadiusMeters float64 `env:"OFFICE_RADIUS_METERS, default=100"`
	Timezone     string  `env:"OFFICE_TZ, default=Asia/Kolkata"`
	// LateCutoff is the HH:MM local time after which a check-in is late.
	LateCutoff string `env:"LATE_CUTOFF, default=10:30"`
	// CheckoutOpen is the earliest HH:MM local time a check-out is accepted.
	CheckoutOpen string `env:"CHECKOUT_OPEN, default=14:45"`
}

// WhatsAppConfig carries the Graph API credentials for task-assignment
// notifications. Dispatch is skipped when either value is empty.
type WhatsAppConfig struct {
	Token   string `env:"WHATSAPP_TOKEN"`
	PhoneID string `env:"WHATSAPP_PHONE_ID"`
}

// Load builds Config from environment with sensible defaults.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

// Location resolves the configured office time zone.
func (o OfficeConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load office timezone %q: %w", o.Timezone, err)
	}
	return loc, nil
}

// ParseClock converts an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log       LogConfig
	Scheduler SchedulerConfig
	Export    ExportConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig carries the default weekly grid and solver tuning.
type SchedulerConfig struct {
	Days        []int
	Start       string
	End         string
	SlotMinutes int
	Algorithm   string
	TimeLimit   time.Duration
	ResultTTL   time.Duration
	Workers     int
	CBCPath     string
}

// ExportConfig controls where generated timetables are written.
type ExportConfig struct {
	OutputDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; defaults and the process environment
		// still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Days:        parseDays(v.GetString("SCHEDULER_DAYS"), []int{0, 1, 2, 3, 4}),
		Start:       v.GetString("SCHEDULER_START"),
		End:         v.GetString("SCHEDULER_END"),
		SlotMinutes: v.GetInt("SCHEDULER_SLOT_MINUTES"),
		Algorithm:   v.GetString("SCHEDULER_ALGORITHM"),
		TimeLimit:   parseDuration(v.GetString("SCHEDULER_TIME_LIMIT"), 30*time.Second),
		ResultTTL:   parseDuration(v.GetString("SCHEDULER_RESULT_TTL"), 30*time.Minute),
		Workers:     v.GetInt("SCHEDULER_WORKERS"),
		CBCPath:     v.GetString("SCHEDULER_CBC_PATH"),
	}

	cfg.Export = ExportConfig{
		OutputDir: v.GetString("EXPORT_OUTPUT_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_DAYS", "0,1,2,3,4")
	v.SetDefault("SCHEDULER_START", "07:30")
	v.SetDefault("SCHEDULER_END", "13:30")
	v.SetDefault("SCHEDULER_SLOT_MINUTES", 30)
	v.SetDefault("SCHEDULER_ALGORITHM", "heuristic")
	v.SetDefault("SCHEDULER_TIME_LIMIT", "30s")
	v.SetDefault("SCHEDULER_RESULT_TTL", "30m")
	v.SetDefault("SCHEDULER_WORKERS", 1)
	v.SetDefault("SCHEDULER_CBC_PATH", "")

	v.SetDefault("EXPORT_OUTPUT_DIR", "./exports")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func parseDays(raw string, fallback []int) []int {
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		day, err := strconv.Atoi(trimmed)
		if err != nil || day < 0 || day > 6 {
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return fallback
	}

	return days
}

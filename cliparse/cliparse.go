package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-spin/db"
)

const (
	DefaultPort          = 3318
	DefaultSpinDuration  = 3000 * time.Millisecond
	DefaultFrameInterval = 16 * time.Millisecond
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	SpinDuration   time.Duration
	FrameInterval  time.Duration
	AllowedOrigins []string
}

// LoadDotEnv loads variables from a .env file if one exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// ParseFlags reads flags, falling back to environment variables and defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var spinMS, frameMS int
	var origins string

	fs := flag.NewFlagSet("quickly-spin", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or pgx)")

	// Wheel tuning
	fs.IntVar(&spinMS, "spin-ms", 0, "Spin animation length in milliseconds")
	fs.IntVar(&frameMS, "frame-ms", 0, "Milliseconds between animation frames")

	fs.StringVar(&origins, "origins", "", "Comma-separated CORS origins")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		port, err := envInt("PORT", DefaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	if !db.ValidType(cfg.DatabaseType) {
		return Config{}, fmt.Errorf("%w: %q", db.ErrUnsupportedType, cfg.DatabaseType)
	}

	if spinMS == 0 {
		v, err := envInt("SPIN_DURATION_MS", int(DefaultSpinDuration/time.Millisecond))
		if err != nil {
			return Config{}, err
		}
		spinMS = v
	}
	if frameMS == 0 {
		v, err := envInt("SPIN_FRAME_MS", int(DefaultFrameInterval/time.Millisecond))
		if err != nil {
			return Config{}, err
		}
		frameMS = v
	}
	if spinMS <= 0 || frameMS <= 0 {
		return Config{}, errors.New("spin duration and frame interval must be positive")
	}
	if frameMS > spinMS {
		return Config{}, errors.New("frame interval cannot exceed spin duration")
	}
	cfg.SpinDuration = time.Duration(spinMS) * time.Millisecond
	cfg.FrameInterval = time.Duration(frameMS) * time.Millisecond

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	cfg.AllowedOrigins = splitOrigins(origins)

	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	VotePolicy     string
	SeedSample     bool
	ExpiryInterval time.Duration
	RecentWindow   time.Duration
}

// LoadEnvFile loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var expiry, recent string

	fs := flag.NewFlagSet("ballotchain", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (empty keeps state in memory only)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Election behaviour
	fs.StringVar(&cfg.VotePolicy, "vote-policy", "", "one-per-address or allow-repeat")
	fs.BoolVar(&cfg.SeedSample, "seed", false, "Load sample elections into an empty store")
	fs.StringVar(&expiry, "expiry", "", "Interval for ending expired elections (0 disables)")
	fs.StringVar(&recent, "recent-window", "", "How far back recently ended elections are reported")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.VotePolicy == "" {
		cfg.VotePolicy = os.Getenv("VOTE_POLICY")
		if cfg.VotePolicy == "" {
			cfg.VotePolicy = "one-per-address"
		}
	}

	if !cfg.SeedSample {
		if s := os.Getenv("SEED_SAMPLE"); s != "" {
			seed, err := strconv.ParseBool(s)
			if err != nil {
				return Config{}, errors.New("invalid SEED_SAMPLE env variable")
			}
			cfg.SeedSample = seed
		}
	}

	var err error
	if cfg.ExpiryInterval, err = durationSetting(expiry, "EXPIRY_INTERVAL", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RecentWindow, err = durationSetting(recent, "RECENT_WINDOW", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RecentWindow <= 0 {
		return Config{}, errors.New("recent window must be positive")
	}

	return cfg, nil
}

func durationSetting(flagValue, envName string, def time.Duration) (time.Duration, error) {
	s := flagValue
	if s == "" {
		s = os.Getenv(envName)
	}
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", envName, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", envName)
	}
	return d, nil
}

// Package config resolves server settings from flags, the environment and
// an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/erazemk/tacka/internal/auth"
)

// Config holds the server settings.
type Config struct {
	DBPath    string
	Addr      string
	AdminUser string
	LogPath   string
	Seed      bool
	TokenTTL  time.Duration
	EnvFile   string
}

const defaultEnvFile = ".env"

// Usage is the help text printed for -h.
const Usage = `Usage: tacka [flags]

Flags:
  -d, -db <path>          SQLite database path (default: tacka.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        admin username on first run (default: Admin)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -s, -seed               insert demo reports into an empty database
  -token-ttl <duration>   session token lifetime (default: 720h)
  -env <path>             dotenv file to read (default: .env, ignored if missing)
  -h, -help               show this help and exit

Every flag except -env and -help can also be set with a TACKA_* variable,
e.g. TACKA_DB, TACKA_ADDR, TACKA_SEED=true.
`

// Load builds a Config. Flags override environment variables, which
// override values from the .env file. It returns flag.ErrHelp when help
// was requested.
func Load(args []string, out io.Writer) (*Config, error) {
	envFile := envFileArg(args)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	defaults, err := fromEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Config{EnvFile: envFile}
	fs := flag.NewFlagSet("tacka", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, Usage) }

	fs.StringVar(&cfg.DBPath, "db", defaults.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", defaults.DBPath, "")
	fs.StringVar(&cfg.Addr, "addr", defaults.Addr, "")
	fs.StringVar(&cfg.Addr, "a", defaults.Addr, "")
	fs.StringVar(&cfg.AdminUser, "user", defaults.AdminUser, "")
	fs.StringVar(&cfg.AdminUser, "u", defaults.AdminUser, "")
	fs.StringVar(&cfg.LogPath, "log", defaults.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", defaults.LogPath, "")
	fs.BoolVar(&cfg.Seed, "seed", defaults.Seed, "")
	fs.BoolVar(&cfg.Seed, "s", defaults.Seed, "")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", defaults.TokenTTL, "")
	fs.StringVar(&cfg.EnvFile, "env", envFile, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

func fromEnv() (Config, error) {
	cfg := Config{
		DBPath:    getEnvOrDefault("TACKA_DB", "tacka.sqlite3"),
		Addr:      getEnvOrDefault("TACKA_ADDR", ":8080"),
		AdminUser: getEnvOrDefault("TACKA_USER", "Admin"),
		LogPath:   strings.TrimSpace(os.Getenv("TACKA_LOG")),
		TokenTTL:  auth.DefaultTokenTTL,
	}

	if v := strings.TrimSpace(os.Getenv("TACKA_SEED")); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TACKA_SEED value %q: %w", v, err)
		}
		cfg.Seed = seed
	}

	if v := strings.TrimSpace(os.Getenv("TACKA_TOKEN_TTL")); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TACKA_TOKEN_TTL value %q: %w", v, err)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}

// envFileArg finds the -env value ahead of the real parse, since the file
// has to be loaded before flag defaults are known.
func envFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "env" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultEnvFile
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

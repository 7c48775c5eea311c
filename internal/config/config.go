package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

// Config holds application level configuration loaded from arguments, flags and environment.
type Config struct {
	Accounts    []model.Account
	FailOnError bool

	AccountsFile   string
	PointsBaseURL  string
	CoinsBaseURL   string
	RequestTimeout time.Duration

	NoDelay         bool
	StepDelayMin    time.Duration
	StepDelayMax    time.Duration
	AccountDelayMin time.Duration
	AccountDelayMax time.Duration

	WeeklyBonusDay time.Weekday
	Location       *time.Location

	LogLevel  slog.Level
	LogFormat string

	Schedule        string
	StatusAddress   string
	StatusTokenHash string
	ShutdownTimeout time.Duration

	// Environment is the merged view of .env and process variables,
	// consumed by components that parse their own settings.
	Environment map[string]string
}

// Daemon reports whether the process runs on a schedule instead of once.
func (c *Config) Daemon() bool {
	return c.Schedule != ""
}

const (
	defaultPointsBaseURL   = "https://oshwhub.com"
	defaultCoinsBaseURL    = "https://m.jlc.com"
	defaultRequestTimeout  = 10 * time.Second
	defaultStepDelayMin    = 500 * time.Millisecond
	defaultStepDelayMax    = 1500 * time.Millisecond
	defaultAccountDelayMin = 2 * time.Second
	defaultAccountDelayMax = 5 * time.Second
	defaultWeeklyBonusDay  = time.Sunday
	defaultTimezone        = "Asia/Shanghai"
	defaultLogFormat       = "text"
	defaultShutdownTimeout = 10 * time.Second
	defaultEnvFile         = ".env"
)

// Usage is printed when positional arguments are missing.
const Usage = `usage: checkin [flags] "token1&token2..." "cookie1&cookie2..." [fail-exit]
tokens and cookies are '&'-separated and must have the same count
flags must come before the credential arguments`

// ErrUsage indicates the positional arguments are missing or malformed.
var ErrUsage = errors.New("invalid credential arguments")

// Load parses configuration from arguments, a .env file and environment variables.
func Load() (*Config, error) {
	env, err := environment(os.LookupEnv, os.Environ())
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], env)
}

// environment overlays process variables on top of the optional .env file.
func environment(lookup func(string) (string, bool), environ []string) (map[string]string, error) {
	path, _ := lookup("ENV_FILE")
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	merged := map[string]string{}
	fileEnv, err := godotenv.Read(path)
	switch {
	case err == nil:
		for k, v := range fileEnv {
			merged[k] = v
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	return merged, nil
}

type envLookup func(string) (string, bool)

func load(args []string, env map[string]string) (*Config, error) {
	lookup := envLookup(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	cfg := &Config{
		AccountsFile:    getString(lookup, "ACCOUNTS_FILE", ""),
		PointsBaseURL:   getString(lookup, "POINTS_BASE_URL", defaultPointsBaseURL),
		CoinsBaseURL:    getString(lookup, "COINS_BASE_URL", defaultCoinsBaseURL),
		RequestTimeout:  getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		NoDelay:         getBool(lookup, "NO_DELAY", false),
		StepDelayMin:    defaultStepDelayMin,
		StepDelayMax:    defaultStepDelayMax,
		AccountDelayMin: defaultAccountDelayMin,
		AccountDelayMax: defaultAccountDelayMax,
		LogFormat:       getString(lookup, "LOG_FORMAT", defaultLogFormat),
		Schedule:        getString(lookup, "CHECKIN_SCHEDULE", ""),
		StatusAddress:   getString(lookup, "STATUS_ADDRESS", ""),
		StatusTokenHash: getString(lookup, "STATUS_TOKEN_HASH", ""),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		Environment:     env,
	}

	fs := flag.NewFlagSet("checkin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		requestTimeoutStr  = cfg.RequestTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		weeklyDayStr       = getString(lookup, "WEEKLY_BONUS_DAY", defaultWeeklyBonusDay.String())
		timezone           = getString(lookup, "TIMEZONE", defaultTimezone)
		logLevelStr        = getString(lookup, "LOG_LEVEL", slog.LevelInfo.String())
	)

	fs.StringVar(&cfg.AccountsFile, "accounts-file", cfg.AccountsFile, "YAML file with token/cookie pairs")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Timeout of a single upstream request")
	fs.BoolVar(&cfg.NoDelay, "no-delay", cfg.NoDelay, "Disable pacing delays between requests and accounts")
	fs.StringVar(&weeklyDayStr, "weekly-day", weeklyDayStr, "Day of week the weekly gift is claimed")
	fs.StringVar(&cfg.Schedule, "schedule", cfg.Schedule, "Cron spec; run as a daemon instead of once")
	fs.StringVar(&cfg.StatusAddress, "status-addr", cfg.StatusAddress, "Status HTTP listen address in daemon mode")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.WeeklyBonusDay, err = parseWeekday(weeklyDayStr); err != nil {
		return nil, err
	}

	if cfg.Location, err = time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.LogFormat != "json" {
		cfg.LogFormat = defaultLogFormat
	}

	if err := cfg.loadAccounts(fs.Args()); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadAccounts resolves accounts from positional arguments, falling back to the accounts file.
func (c *Config) loadAccounts(positional []string) error {
	if len(positional) > 3 {
		return fmt.Errorf("unexpected argument %q: %w", positional[3], ErrUsage)
	}
	if len(positional) == 3 && strings.HasPrefix(positional[2], "-") {
		return fmt.Errorf("flag %q after credential arguments: %w", positional[2], ErrUsage)
	}
	if len(positional) >= 3 {
		c.FailOnError = strings.EqualFold(strings.TrimSpace(positional[2]), "true")
	}

	if len(positional) >= 2 {
		accounts, err := ParseAccounts(positional[0], positional[1])
		if err != nil {
			return err
		}
		c.Accounts = accounts
		return nil
	}

	if c.AccountsFile == "" {
		return ErrUsage
	}

	accounts, err := ReadAccountsFile(c.AccountsFile)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return domainErrors.ErrNoAccounts
	}
	c.Accounts = accounts
	return nil
}

// ParseAccounts splits the '&'-delimited credential lists into index-aligned accounts.
// Empty entries are kept so that indexes stay aligned.
func ParseAccounts(tokens, cookies string) ([]model.Account, error) {
	tokenList := splitCredentials(tokens)
	cookieList := splitCredentials(cookies)
	if len(tokenList) != len(cookieList) {
		return nil, fmt.Errorf("%w: %d tokens, %d cookies", domainErrors.ErrCredentialCountMismatch, len(tokenList), len(cookieList))
	}

	accounts := make([]model.Account, len(tokenList))
	for i := range tokenList {
		accounts[i] = model.Account{
			Index:        i + 1,
			CoinsToken:   model.Credential(tokenList[i]),
			PointsCookie: model.Credential(cookieList[i]),
		}
	}
	return accounts, nil
}

func splitCredentials(raw string) []string {
	parts := strings.Split(raw, "&")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseWeekday(v string) (time.Weekday, error) {
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), v) || strings.EqualFold(d.String()[:3], v) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekly bonus day %q", v)
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

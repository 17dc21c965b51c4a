// Package config resolves elasticstat settings from flags, ELASTICSTAT_*
// environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dm/elasticstat/internal/engine"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ELASTICSTAT"

const (
	DefaultInterval       = 5 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultLogLevel       = "info"
)

// settings mirrors the flag set; viper fills it from every source.
type settings struct {
	Config         string        `mapstructure:"config"`
	URI            string        `mapstructure:"uri"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Interval       time.Duration `mapstructure:"interval"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	Insecure       bool          `mapstructure:"insecure"`
	Plain          bool          `mapstructure:"plain"`
	LogFile        string        `mapstructure:"log-file"`
	LogLevel       string        `mapstructure:"log-level"`
	MetricsAddr    string        `mapstructure:"metrics-addr"`
	EvictAfter     int           `mapstructure:"evict-after"`
	OnRegression   string        `mapstructure:"on-regression"`
}

// Config is the validated runtime configuration.
type Config struct {
	BaseURL        string
	Username       string
	Password       string
	Interval       time.Duration
	RequestTimeout time.Duration
	Insecure       bool
	Plain          bool
	LogFile        string
	LogLevel       string
	MetricsAddr    string
	EvictAfter     int
	Regression     engine.RegressionPolicy
}

// RegisterFlags declares every setting on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, json, toml or env)")
	fs.String("username", "", "basic auth user; overrides credentials in the URI")
	fs.String("password", "", "basic auth password; overrides credentials in the URI")
	fs.Duration("interval", DefaultInterval, "polling interval (e.g. 5s, 30s)")
	fs.Duration("request-timeout", DefaultRequestTimeout, "timeout for each cluster request")
	fs.Bool("insecure", false, "skip TLS certificate verification")
	fs.Bool("plain", false, "print plain text rows to stdout instead of the dashboard")
	fs.String("log-file", "", "write JSON logs to this file (disabled when empty)")
	fs.String("log-level", DefaultLogLevel, "log level: debug, info, warn or error")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9108)")
	fs.Int("evict-after", 0, "forget nodes absent for this many cycles (0 keeps them)")
	fs.String("on-regression", engine.RegressionPassThrough.String(),
		"counter regression handling: passthrough, clamp or rebaseline")
}

// NewViper returns a viper instance bound to fs and the ELASTICSTAT_ environment.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("uri"); err != nil {
		return nil, fmt.Errorf("NewViper: %w", err)
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("NewViper: %w", err)
	}
	return v, nil
}

// Load resolves the configuration. args holds the positional arguments;
// the first one, if present, is the cluster URI and wins over ELASTICSTAT_URI
// and the config file.
func Load(v *viper.Viper, args []string) (Config, error) {
	if len(args) > 1 {
		return Config{}, fmt.Errorf("unexpected argument %q", args[1])
	}
	if len(args) == 1 {
		v.Set("uri", args[0])
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("Load: read config %q: %w", path, err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	return s.resolve()
}

func (s settings) resolve() (Config, error) {
	if s.URI == "" {
		return Config{}, errors.New("elasticsearch URI is required")
	}
	base, user, pass, err := ParseURI(s.URI)
	if err != nil {
		return Config{}, err
	}
	user, pass = resolveCredentials(user, pass, s.Username, s.Password)

	if s.Interval <= 0 {
		return Config{}, errors.New("--interval must be positive")
	}
	if s.RequestTimeout <= 0 {
		return Config{}, errors.New("--request-timeout must be positive")
	}
	if s.EvictAfter < 0 {
		return Config{}, errors.New("--evict-after must not be negative")
	}
	policy, err := engine.ParseRegressionPolicy(s.OnRegression)
	if err != nil {
		return Config{}, err
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return Config{}, err
	}

	return Config{
		BaseURL:        base,
		Username:       user,
		Password:       pass,
		Interval:       s.Interval,
		RequestTimeout: s.RequestTimeout,
		Insecure:       s.Insecure,
		Plain:          s.Plain,
		LogFile:        s.LogFile,
		LogLevel:       s.LogLevel,
		MetricsAddr:    s.MetricsAddr,
		EvictAfter:     s.EvictAfter,
		Regression:     policy,
	}, nil
}

// resolveCredentials applies explicit username and password settings over
// the ones embedded in the URI, each independently.
func resolveCredentials(uriUser, uriPass, user, pass string) (string, string) {
	if user == "" {
		user = uriUser
	}
	if pass == "" {
		pass = uriPass
	}
	return user, pass
}

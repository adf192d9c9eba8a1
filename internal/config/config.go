// Package config resolves dnaa settings from defaults, an optional
// config.toml, a .env file and DNAA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/dna-analyser-cli/internal/adapters/dnaapi"
	"github.com/bnema/dna-analyser-cli/internal/adapters/ncbi"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyServer         = "server"
	KeyHTTPTimeout    = "http.timeout"
	KeyPollInterval   = "poll.interval"
	KeyRetryAttempts  = "retry.attempts"
	KeyRetryDelay     = "retry.delay"
	KeyRetryMaxDelay  = "retry.max_delay"
	KeyParallel       = "parallel"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeySessionPath    = "session.path"
	KeySecretsDir     = "secrets.dir"
	KeyNCBIURL        = "ncbi.url"
	KeyNCBIAttempts   = "ncbi.attempts"
	KeyNCBIDelay      = "ncbi.delay"
	envPrefix         = "DNAA"
	configName        = "config"
	configType        = "toml"
	configDir         = ".config/dnaa"
	defaultDotEnvFile = ".env"
)

var serverAliases = map[string]string{
	"production":  dnaapi.ServerProduction,
	"development": dnaapi.ServerDevelopment,
	"localhost":   dnaapi.ServerLocalhost,
}

type Config struct {
	Server       string
	HTTPTimeout  time.Duration
	PollInterval time.Duration
	Retry        dnaapi.RetryPolicy
	Parallel     int
	LogLevel     string
	LogFormat    string
	SessionPath  string
	SecretsDir   string
	NCBI         NCBI
}

// NCBI configures feature table downloads from E-utilities.
type NCBI struct {
	URL      string
	Attempts uint
	Delay    time.Duration
}

// Load fills v with defaults, reads the optional config file and .env, and
// binds DNAA_* variables (DNAA_POLL_INTERVAL for poll.interval). Values
// already set on v, such as bound flags, win.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	if err := loadDotEnv(defaultDotEnvFile); err != nil {
		return Config{}, err
	}

	retry := dnaapi.DefaultRetryPolicy()
	v.SetDefault(KeyServer, "production")
	v.SetDefault(KeyHTTPTimeout, 30*time.Second)
	v.SetDefault(KeyPollInterval, 500*time.Millisecond)
	v.SetDefault(KeyRetryAttempts, retry.Attempts)
	v.SetDefault(KeyRetryDelay, retry.Delay)
	v.SetDefault(KeyRetryMaxDelay, retry.MaxDelay)
	v.SetDefault(KeyParallel, 4)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeySessionPath, filepath.Join(baseDir, "session.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(baseDir, "secrets"))
	v.SetDefault(KeyNCBIURL, ncbi.DefaultEFetchURL)
	v.SetDefault(KeyNCBIAttempts, ncbi.DefaultAttempts)
	v.SetDefault(KeyNCBIDelay, ncbi.DefaultDelay)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	server, err := ResolveServer(v.GetString(KeyServer))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Server:       server,
		HTTPTimeout:  v.GetDuration(KeyHTTPTimeout),
		PollInterval: v.GetDuration(KeyPollInterval),
		Retry: dnaapi.RetryPolicy{
			Attempts: v.GetUint(KeyRetryAttempts),
			Delay:    v.GetDuration(KeyRetryDelay),
			MaxDelay: v.GetDuration(KeyRetryMaxDelay),
		},
		Parallel:    v.GetInt(KeyParallel),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		SessionPath: v.GetString(KeySessionPath),
		SecretsDir:  v.GetString(KeySecretsDir),
		NCBI: NCBI{
			URL:      strings.TrimSpace(v.GetString(KeyNCBIURL)),
			Attempts: v.GetUint(KeyNCBIAttempts),
			Delay:    v.GetDuration(KeyNCBIDelay),
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveServer accepts a known server alias or an http(s) URL.
func ResolveServer(server string) (string, error) {
	server = strings.TrimSpace(server)
	if url, ok := serverAliases[strings.ToLower(server)]; ok {
		return url, nil
	}
	if strings.HasPrefix(server, "http://") || strings.HasPrefix(server, "https://") {
		return strings.TrimRight(server, "/"), nil
	}
	return "", fmt.Errorf("unknown server %q: use production, development, localhost or an http(s) URL", server)
}

func (c Config) validate() error {
	if c.Retry.Attempts == 0 {
		return errors.New("retry.attempts must be at least 1")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll.interval must be positive")
	}
	if c.Parallel <= 0 {
		return errors.New("parallel must be positive")
	}
	if !strings.HasPrefix(c.NCBI.URL, "http://") && !strings.HasPrefix(c.NCBI.URL, "https://") {
		return fmt.Errorf("ncbi.url %q is not an http(s) URL", c.NCBI.URL)
	}
	if c.NCBI.Attempts == 0 {
		return errors.New("ncbi.attempts must be at least 1")
	}
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

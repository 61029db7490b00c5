// Package config collects the service options from command-line flags, an
// optional JSON file and environment variables.
//
// Precedence, lowest first: defaults, JSON file, explicit flags, environment.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Options holds the configuration values for the application.
type Options struct {
	// ServerAddress is the listening address (ip:port).
	ServerAddress string `json:"server_address"`

	// BaseURL prefixes the redirect URL encoded in every QR image.
	BaseURL string `json:"base_url"`

	// DatabaseDSN selects SQL storage. Empty means in-memory storage.
	DatabaseDSN string `json:"database_dsn"`

	// LogLevel is a zap level name.
	LogLevel string `json:"log_level"`

	// EnablePprof starts the pprof listener on localhost:6060.
	EnablePprof bool `json:"enable_pprof"`

	// EnableHTTPS serves TLS with autocert certificates.
	EnableHTTPS bool `json:"enable_https"`

	// Config is the path of the JSON file the options were read from.
	Config string `json:"-"`
}

const (
	defaultServerAddress = "localhost:8080"
	defaultBaseURL       = "http://localhost:8080"
	defaultLogLevel      = "info"
)

// Parse reads the process arguments and environment.
func Parse() (*Options, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs is Parse over an explicit argument list.
func ParseArgs(args []string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("qrshortener", flag.ContinueOnError)
	fs.StringVar(&options.ServerAddress, "a", defaultServerAddress, "run on ip:port server")
	fs.StringVar(&options.BaseURL, "b", defaultBaseURL, "base url of redirect links")
	fs.StringVar(&options.DatabaseDSN, "d", "", "database dsn (postgres or sqlite)")
	fs.StringVar(&options.LogLevel, "l", defaultLogLevel, "log level")
	fs.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	fs.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
	fs.StringVar(&options.Config, "c", "", "path to json config file")
	fs.StringVar(&options.Config, "config", "", "path to json config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	if path := os.Getenv("CONFIG"); path != "" {
		options.Config = path
	}

	if options.Config != "" {
		if err := options.mergeFile(options.Config, explicit); err != nil {
			return nil, err
		}
	}

	if err := options.mergeEnv(); err != nil {
		return nil, err
	}

	return options, nil
}

// mergeFile applies the JSON file to every option not set by a flag.
func (o *Options) mergeFile(path string, explicit map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var file struct {
		ServerAddress *string `json:"server_address"`
		BaseURL       *string `json:"base_url"`
		DatabaseDSN   *string `json:"database_dsn"`
		LogLevel      *string `json:"log_level"`
		EnablePprof   *bool   `json:"enable_pprof"`
		EnableHTTPS   *bool   `json:"enable_https"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString := func(flagName string, dst *string, v *string) {
		if v != nil && !explicit[flagName] {
			*dst = *v
		}
	}
	setBool := func(flagName string, dst *bool, v *bool) {
		if v != nil && !explicit[flagName] {
			*dst = *v
		}
	}

	setString("a", &o.ServerAddress, file.ServerAddress)
	setString("b", &o.BaseURL, file.BaseURL)
	setString("d", &o.DatabaseDSN, file.DatabaseDSN)
	setString("l", &o.LogLevel, file.LogLevel)
	setBool("p", &o.EnablePprof, file.EnablePprof)
	setBool("s", &o.EnableHTTPS, file.EnableHTTPS)

	return nil
}

func (o *Options) mergeEnv() error {
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		o.ServerAddress = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		o.BaseURL = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		o.DatabaseDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		o.LogLevel = v
	}

	for name, dst := range map[string]*bool{
		"ENABLE_PPROF": &o.EnablePprof,
		"ENABLE_HTTPS": &o.EnableHTTPS,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"spamdomains/lib/log"
)

const (
	DefaultOutputPath     = "spamdomains.txt"
	DefaultSourcesFile    = "sources.txt"
	DefaultTimeoutSeconds = 30
	DefaultUserAgent      = "spam-domains-updater/1.0 (+https://github.com)"
	DefaultEntryTemplate  = "{{domain}}"
	DefaultBindAddress    = "127.0.0.1:8080"
)

type Config struct {
	General *GeneralConfig `toml:"general"`
	Sources []*Source      `toml:"source"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// OutputPath is the aggregated blocklist file.
	OutputPath string `toml:"output_path" validate:"required"`
	// SourcesFile is a newline-delimited file of source URLs. It is only
	// read if it exists.
	SourcesFile string `toml:"sources_file"`
	// DownloadTimeout is the per-source fetch timeout in seconds.
	DownloadTimeout int    `toml:"download_timeout" validate:"gte=1,lte=3600"`
	UserAgent       string `toml:"user_agent" validate:"required"`
	// EntryTemplate renders one output line per domain. "{{domain}}" emits
	// the plain list; "address=/{{domain}}/#" emits a dnsmasq config.
	EntryTemplate string `toml:"entry_template" validate:"required,contains={{domain}}"`
	// BindAddress is the listen address of the "serve" subcommand.
	BindAddress string `toml:"bind_address" validate:"required,hostname_port"`
}

type Source struct {
	Name string `toml:"name"`
	URL  string `toml:"url" validate:"required,url"`
}

// Default returns the built-in configuration used when no config file is
// given.
func Default() *Config {
	return &Config{
		General: &GeneralConfig{
			OutputPath:      DefaultOutputPath,
			SourcesFile:     DefaultSourcesFile,
			DownloadTimeout: DefaultTimeoutSeconds,
			UserAgent:       DefaultUserAgent,
			EntryTemplate:   DefaultEntryTemplate,
			BindAddress:     DefaultBindAddress,
		},
	}
}

// LoadConfig reads and parses the TOML configuration at configPath. Fields
// that the file leaves out keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	config := Default()
	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)

	return config, nil
}

// GetAbsOutputPath resolves the output path relative to the config file
// directory (or the working directory when no config file was used).
func (c *Config) GetAbsOutputPath() string {
	return c.makePathAbsolute(c.General.OutputPath)
}

// GetAbsSourcesFile resolves the sources file path the same way.
func (c *Config) GetAbsSourcesFile() string {
	if c.General.SourcesFile == "" {
		return ""
	}
	return c.makePathAbsolute(c.General.SourcesFile)
}

func (c *Config) makePathAbsolute(path string) string {
	if filepath.IsAbs(path) || c._absConfigFilePath == "" {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(c._absConfigFilePath), path))
}

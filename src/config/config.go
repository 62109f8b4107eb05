package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "POKE_LOOKUP"

type Config struct {
	Index  IndexConfig  `mapstructure:"index"`
	Api    ApiConfig    `mapstructure:"api"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Aws    AwsConfig    `mapstructure:"aws"`
}

type IndexConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

type ApiConfig struct {
	BaseUrl string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

func (c ApiConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Links  string `mapstructure:"links"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"`
	MaxSize  int    `mapstructure:"max_size"`
	MaxFiles int    `mapstructure:"max_files"`
}

type AwsConfig struct {
	Region string `mapstructure:"region"`
}

// New returns a viper instance with defaults and environment binding. Flags
// are bound by the caller before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("index.path", "pokemon_names_urls.txt")
	v.SetDefault("index.format", "auto")
	v.SetDefault("api.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("api.timeout", 30)
	v.SetDefault("output.format", "table")
	v.SetDefault("output.links", "auto")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_files", 5)
	v.SetDefault("aws.region", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional .env file and config file into v and decodes it.
// An explicit cfgFile must exist; the default location may be absent.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "poke-lookup"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("invalid output.format %q: want table or json", c.Output.Format)
	}
	switch c.Output.Links {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid output.links %q: want auto, always or never", c.Output.Links)
	}
	if c.Index.Path == "" {
		return errors.New("index.path must not be empty")
	}
	if c.Api.Timeout < 0 {
		return fmt.Errorf("invalid api.timeout %d", c.Api.Timeout)
	}
	return nil
}

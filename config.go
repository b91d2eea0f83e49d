package arhttp

import (
	"github.com/arloliu/arhttp/internal/config"
)

const (
	// DefaultServerURL is the lookup service queried when none is configured.
	DefaultServerURL = "http://localhost:8000"
	// DefaultPathFormat maps an asset path straight onto the URL path.
	DefaultPathFormat = "/%s"
	// EnvPrefix is the prefix of every environment variable Config reads.
	EnvPrefix = "AR_HTTP_"
)

// Config holds the settings of the remote lookup.
//
// Each field can come from a YAML file, from an AR_HTTP_* environment
// variable, or from its default:
//
//	AR_HTTP_SERVER_URL   base address of the lookup service
//	AR_HTTP_PATH_FORMAT  URL path template, one %s is replaced by the asset path
//	AR_HTTP_DEBUG        emit a trace line for every lookup request
//	AR_HTTP_SEARCH_PATH  search paths of the default filesystem strategy
type Config struct {
	ServerURL   string   `yaml:"server_url" env:"SERVER_URL" default:"http://localhost:8000" validate:"required,url"`
	PathFormat  string   `yaml:"path_format" env:"PATH_FORMAT" default:"/%s" validate:"required,pathformat"`
	Debug       bool     `yaml:"debug" env:"DEBUG"`
	SearchPaths []string `yaml:"search_paths" env:"SEARCH_PATH"`
}

// DefaultConfig returns a Config with every field at its default value.
func DefaultConfig() Config {
	return Config{
		ServerURL:  DefaultServerURL,
		PathFormat: DefaultPathFormat,
	}
}

// Validate checks that ServerURL is an absolute URL and that PathFormat holds
// exactly one %s placeholder.
func (c Config) Validate() error {
	return config.Validate(&c)
}

// ConfigSource supplies the configuration for a single resolution.
// Resolver calls Config once per lookup and never caches the result.
// Implementations MUST be safe for concurrent use by multiple goroutines.
type ConfigSource interface {
	Config() Config
}

// StaticConfig is a ConfigSource that always returns the same Config.
type StaticConfig Config

// Config returns c as a Config.
func (c StaticConfig) Config() Config {
	return Config(c)
}

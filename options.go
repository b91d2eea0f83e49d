package arhttp

import (
	"github.com/arloliu/arhttp/internal/config"
	"github.com/spf13/afero"
)

// loadConfig holds the settings for LoadConfig.
type loadConfig struct {
	fs        afero.Fs
	path      string
	source    []byte
	envPrefix string
	envFiles  []string
	envDirs   []string
	envName   string
	override  bool
	lookupEnv func(string) (string, bool)
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadConfig)

// FromFile reads YAML configuration from path. The file is read through the
// filesystem set with WithFs, or DefaultFs.
func FromFile(path string) LoadOption {
	return func(c *loadConfig) {
		c.path = path
	}
}

// FromBytes uses data as YAML configuration.
func FromBytes(data []byte) LoadOption {
	return func(c *loadConfig) {
		c.source = data
	}
}

// WithEnvPrefix replaces the AR_HTTP_ prefix used for environment lookups.
func WithEnvPrefix(prefix string) LoadOption {
	return func(c *loadConfig) {
		c.envPrefix = prefix
	}
}

// WithEnvFiles loads dotenv files before environment overrides are applied.
// Missing files are ignored. Values from the process environment win unless
// override is true.
//
// Example:
//
//	cfg, err := arhttp.LoadConfig(
//	    arhttp.FromFile("arhttp.yaml"),
//	    arhttp.WithEnvFiles(false, ".env", ".env.local"),
//	)
func WithEnvFiles(override bool, files ...string) LoadOption {
	return func(c *loadConfig) {
		c.envFiles = files
		c.override = override
	}
}

// WithEnvSearch loads the first file called name found in dirs, tried in
// order. Ignored when WithEnvFiles lists explicit files.
func WithEnvSearch(name string, dirs ...string) LoadOption {
	return func(c *loadConfig) {
		c.envName = name
		c.envDirs = dirs
	}
}

// WithFs sets the filesystem used to read configuration and dotenv files.
func WithFs(fs afero.Fs) LoadOption {
	return func(c *loadConfig) {
		c.fs = fs
	}
}

// WithLookupEnv replaces os.LookupEnv, mostly useful in tests.
func WithLookupEnv(fn func(string) (string, bool)) LoadOption {
	return func(c *loadConfig) {
		c.lookupEnv = fn
	}
}

// LoadConfig builds a validated Config. Sources are applied in order of
// increasing priority: defaults, YAML, dotenv files, environment variables.
func LoadConfig(opts ...LoadOption) (Config, error) {
	lc := loadConfig{
		fs:        DefaultFs,
		envPrefix: EnvPrefix,
	}
	for _, opt := range opts {
		opt(&lc)
	}

	engine := &config.Engine{
		Fs:         lc.fs,
		EnvPrefix:  lc.envPrefix,
		Source:     lc.source,
		SourceName: "bytes",
		LookupEnv:  lc.lookupEnv,
	}

	if lc.path != "" {
		data, err := afero.ReadFile(lc.fs, lc.path)
		if err != nil {
			return Config{}, &LoadError{Source: lc.path, Err: err}
		}
		engine.Source = data
		engine.SourceName = lc.path
	}

	if len(lc.envFiles) > 0 || (lc.envName != "" && len(lc.envDirs) > 0) {
		engine.Dotenv = &config.DotenvConfig{
			Files:       lc.envFiles,
			SearchPaths: lc.envDirs,
			SearchName:  lc.envName,
			Override:    lc.override,
		}
	}

	var cfg Config
	if err := engine.Load(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

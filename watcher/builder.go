package watcher

import (
	"path/filepath"
	"time"

	"github.com/arloliu/arhttp"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Builder provides a fluent API for constructing a Watcher.
type Builder struct {
	config watcherConfig
	path   string
	err    error
}

// FromFile sets the YAML configuration file to watch.
// The file is monitored for changes using fsnotify.
func (b *Builder) FromFile(path string) *Builder {
	if b.err != nil {
		return b
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		b.err = err
		return b
	}
	b.path = abs

	return b
}

// WithEnvPrefix replaces the AR_HTTP_ prefix for environment overrides.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.config.loadOpts = append(b.config.loadOpts, arhttp.WithEnvPrefix(prefix))
	return b
}

// WithEnvFiles loads dotenv files on every reload. Only the YAML file is
// watched; a dotenv change is picked up with the next file change.
func (b *Builder) WithEnvFiles(override bool, files ...string) *Builder {
	b.config.loadOpts = append(b.config.loadOpts, arhttp.WithEnvFiles(override, files...))
	return b
}

// WithDebounceInterval sets the debounce interval for file changes.
// Multiple rapid changes are coalesced into a single reload.
//
// Default is 100 milliseconds.
func (b *Builder) WithDebounceInterval(interval time.Duration) *Builder {
	b.config.debounceInterval = interval
	return b
}

// WithLogger sets the logger used to report rejected reloads.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.config.logger = logger
	return b
}

// Build loads the initial configuration and creates the Watcher.
// It fails if the file is missing or does not hold a valid configuration.
func (b *Builder) Build() (*Watcher, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.path == "" {
		return nil, &WatcherError{Message: "no configuration file set"}
	}

	wc := b.config
	if wc.logger == nil {
		wc.logger = zap.NewNop()
	}
	wc.logger = wc.logger.Named("watcher")

	opts := make([]arhttp.LoadOption, 0, len(b.config.loadOpts)+2)
	opts = append(opts, arhttp.WithFs(afero.NewOsFs()), arhttp.FromFile(b.path))
	wc.loadOpts = append(opts, b.config.loadOpts...)

	cfg, err := arhttp.LoadConfig(wc.loadOpts...)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:     wc,
		configPath: b.path,
	}
	w.current.Store(&cfg)

	return w, nil
}

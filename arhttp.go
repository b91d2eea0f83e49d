// Package arhttp resolves asset paths to local locations, falling back to an
// HTTP lookup service when a local strategy cannot find them.
//
// Resolution is a strict two-stage chain. The LocalResolver is asked first;
// only when it returns "" is the lookup service queried with a single GET of
// ServerURL + fmt.Sprintf(PathFormat, assetPath). A 200 response body is the
// resolved location, taken verbatim. Any other outcome resolves to "".
//
// Basic usage:
//
//	r, err := arhttp.New().
//	    WithConfig(arhttp.Config{ServerURL: "http://cache.local:9000", PathFormat: "/%s"}).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if loc := r.Resolve(ctx, "scene.usd"); loc != "" {
//	    // open loc
//	}
//
// Asset paths are inserted into the URL as-is. Callers must only pass
// identifiers that are already valid URL path text.
package arhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/arloliu/arhttp/internal/remote"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Resolver resolves asset paths. It keeps no state between calls and is safe
// for concurrent use when its collaborators are.
//
// The lookup service response is trusted as-is, but bodies larger than
// 16 MiB are treated as a transport failure and resolve to "".
type Resolver struct {
	local  LocalResolver // nil means a FSResolver built per lookup
	fs     afero.Fs
	source ConfigSource
	client *remote.Client
	tracer Tracer
}

// New creates a new Resolver Builder.
func New() *Builder {
	return &Builder{}
}

// Builder provides a fluent API for constructing a Resolver.
type Builder struct {
	local      LocalResolver
	source     ConfigSource
	httpClient *http.Client
	tracer     Tracer
	err        error
}

// WithLocal sets the strategy consulted before the lookup service.
// Defaults to a FSResolver over DefaultFs using the Config.SearchPaths read
// for each lookup, so reloaded search paths apply to the next resolution.
func (b *Builder) WithLocal(l LocalResolver) *Builder {
	b.local = l

	return b
}

// WithLocalFunc is WithLocal for a plain function.
func (b *Builder) WithLocalFunc(fn func(ctx context.Context, assetPath string) string) *Builder {
	return b.WithLocal(LocalResolverFunc(fn))
}

// WithConfig uses a fixed configuration. The config is validated here so a
// bad PathFormat is reported by Build rather than at lookup time.
func (b *Builder) WithConfig(cfg Config) *Builder {
	if b.err != nil {
		return b
	}

	if err := cfg.Validate(); err != nil {
		b.err = err

		return b
	}
	b.source = StaticConfig(cfg)

	return b
}

// WithConfigSource reads the configuration from src on every lookup,
// e.g. a watcher.Watcher that reloads a file.
func (b *Builder) WithConfigSource(src ConfigSource) *Builder {
	b.source = src

	return b
}

// WithHTTPClient sets the client used for lookups. Defaults to http.DefaultClient.
func (b *Builder) WithHTTPClient(c *http.Client) *Builder {
	b.httpClient = c

	return b
}

// WithTracer sets the sink for lookup events. Events are only produced when
// Config.Debug is true.
func (b *Builder) WithTracer(t Tracer) *Builder {
	b.tracer = t

	return b
}

// WithLogger is WithTracer(NewZapTracer(logger)).
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	return b.WithTracer(NewZapTracer(logger))
}

// Build creates the Resolver.
// Without WithConfig or WithConfigSource the configuration is loaded once
// from the AR_HTTP_* environment variables.
func (b *Builder) Build() (*Resolver, error) {
	if b.err != nil {
		return nil, b.err
	}

	source := b.source
	if source == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		source = StaticConfig(cfg)
	}

	initial := source.Config()
	if err := initial.Validate(); err != nil {
		return nil, err
	}

	tracer := b.tracer
	if tracer == nil {
		tracer = NopTracer{}
	}

	return &Resolver{
		local:  b.local,
		fs:     DefaultFs,
		source: source,
		client: remote.NewClient(b.httpClient),
		tracer: tracer,
	}, nil
}

// Resolve returns the location of assetPath, or "" when neither the local
// strategy nor the lookup service can resolve it. It never fails; use
// Lookup to see why a remote lookup came back empty.
func (r *Resolver) Resolve(ctx context.Context, assetPath string) string {
	loc, _ := r.Lookup(ctx, assetPath)

	return loc
}

// Lookup is Resolve with the remote failure reported as a *TransportError or
// *StatusError. A successful local resolution never touches the network.
func (r *Resolver) Lookup(ctx context.Context, assetPath string) (string, error) {
	cfg := r.source.Config()

	local := r.local
	if local == nil {
		local = NewFSResolver(r.fs, WithSearchPaths(cfg.SearchPaths...))
	}

	if loc := local.Resolve(ctx, assetPath); loc != "" {
		return loc, nil
	}

	return r.remoteResolve(ctx, cfg, assetPath)
}

func (r *Resolver) remoteResolve(ctx context.Context, cfg Config, assetPath string) (string, error) {
	tracer := r.tracer
	if !cfg.Debug {
		tracer = NopTracer{}
	}

	ev := Event{
		Stage:  StageRequest,
		Method: http.MethodGet,
		URL:    remote.BuildURL(cfg.ServerURL, cfg.PathFormat, assetPath),
	}
	tracer.Trace(ev)

	loc, err := r.client.Get(ctx, ev.URL)

	var (
		se *StatusError
		te *TransportError
	)
	switch {
	case errors.As(err, &se):
		ev.Stage = StageStatusError
		ev.StatusCode = se.StatusCode
		ev.Status = se.Reason
	case errors.As(err, &te):
		ev.Stage = StageTransportError
		ev.Err = te.Err
	case err != nil:
		ev.Stage = StageTransportError
		ev.Err = err
	default:
		ev.Stage = StageResolved
		ev.StatusCode = http.StatusOK
		ev.Status = http.StatusText(http.StatusOK)
		ev.Location = loc
	}
	tracer.Trace(ev)

	return loc, err
}

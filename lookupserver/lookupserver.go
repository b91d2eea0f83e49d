// Package lookupserver is a minimal lookup service for arhttp resolvers.
//
// It answers GET /{asset} with the mapped location as plain text, or 404 when
// the asset is unknown. HEAD gets the same headers without a body. It is meant for development and tests; production
// deployments usually put the lookup behind an asset database.
package lookupserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"
)

// Handler serves asset lookups from an in-memory map.
type Handler struct {
	mu     sync.RWMutex
	assets map[string]string
	prefix string
	logger *zap.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithPrefix strips prefix from the request path before the lookup, so a
// resolver using the path format prefix + "%s" can be served.
func WithPrefix(prefix string) Option {
	return func(h *Handler) {
		h.prefix = prefix
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a Handler serving a copy of assets.
func NewHandler(assets map[string]string, opts ...Option) *Handler {
	h := &Handler{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	h.Replace(assets)

	return h
}

// Replace swaps the served map for a copy of assets.
func (h *Handler) Replace(assets map[string]string) {
	m := make(map[string]string, len(assets))
	for k, v := range assets {
		m[k] = v
	}

	h.mu.Lock()
	h.assets = m
	h.mu.Unlock()
}

// Set maps a single asset.
func (h *Handler) Set(asset, location string) {
	h.mu.Lock()
	h.assets[asset] = location
	h.mu.Unlock()
}

// Lookup returns the location mapped to asset.
func (h *Handler) Lookup(asset string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	loc, ok := h.assets[asset]

	return loc, ok
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	asset, ok := strings.CutPrefix(r.URL.Path, h.prefix)
	if !ok {
		h.logger.Debug("lookup", zap.String("path", r.URL.Path), zap.Int("status", http.StatusNotFound))
		http.NotFound(w, r)
		return
	}
	asset = strings.TrimPrefix(asset, "/")

	loc, ok := h.Lookup(asset)
	if !ok {
		h.logger.Debug("lookup", zap.String("asset", asset), zap.Int("status", http.StatusNotFound))
		http.NotFound(w, r)
		return
	}

	h.logger.Debug("lookup", zap.String("asset", asset), zap.Int("status", http.StatusOK), zap.String("location", loc))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(loc)))
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	_, _ = w.Write([]byte(loc))
}

// LoadMap reads an asset map from a YAML or JSON file of
// "asset: location" pairs.
func LoadMap(fs afero.Fs, path string) (map[string]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var assets map[string]string
	if err := yaml.Unmarshal(data, &assets); err != nil {
		return nil, fmt.Errorf("failed to parse asset map %s: %w", path, err)
	}
	if assets == nil {
		assets = map[string]string{}
	}

	return assets, nil
}

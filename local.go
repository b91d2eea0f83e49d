package arhttp

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FSResolver resolves asset paths against a filesystem.
//
//   - Absolute paths resolve to themselves when the file exists.
//   - Paths starting with "./" or "../" are tried under the anchor
//     directory, or relative to the working directory without one.
//   - Any other relative path is tried under the anchor, then as given,
//     then under each search path in order.
//
// The first existing file wins. Directories never resolve.
type FSResolver struct {
	fs          afero.Fs
	anchor      string
	searchPaths []string
}

// FSOption configures a FSResolver.
type FSOption func(*FSResolver)

// WithAnchor sets the directory relative asset paths are tried against
// first, usually the directory of the asset that references them.
func WithAnchor(dir string) FSOption {
	return func(r *FSResolver) {
		r.anchor = dir
	}
}

// WithSearchPaths sets the directories tried, in order, for relative asset
// paths that are not "./" or "../" prefixed.
func WithSearchPaths(dirs ...string) FSOption {
	return func(r *FSResolver) {
		r.searchPaths = append([]string(nil), dirs...)
	}
}

// NewFSResolver creates a FSResolver over fs. If fs is nil, DefaultFs is used.
func NewFSResolver(fs afero.Fs, opts ...FSOption) *FSResolver {
	if fs == nil {
		fs = DefaultFs
	}

	r := &FSResolver{fs: fs}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Anchor returns the anchor directory, or "" when none is set.
func (r *FSResolver) Anchor() string {
	return r.anchor
}

// SearchPaths returns the configured search paths.
func (r *FSResolver) SearchPaths() []string {
	return append([]string(nil), r.searchPaths...)
}

// Resolve implements LocalResolver.
func (r *FSResolver) Resolve(ctx context.Context, assetPath string) string {
	if assetPath == "" || ctx.Err() != nil {
		return ""
	}

	if filepath.IsAbs(assetPath) {
		return r.existing(assetPath)
	}

	if r.anchor != "" {
		if p := r.existing(filepath.Join(r.anchor, assetPath)); p != "" {
			return p
		}
	}

	if isFileRelative(assetPath) {
		if r.anchor != "" {
			return ""
		}

		return r.existing(assetPath)
	}

	if p := r.existing(assetPath); p != "" {
		return p
	}

	for _, dir := range r.searchPaths {
		if ctx.Err() != nil {
			return ""
		}
		if p := r.existing(filepath.Join(dir, assetPath)); p != "" {
			return p
		}
	}

	return ""
}

func (r *FSResolver) existing(path string) string {
	path = filepath.Clean(path)

	info, err := r.fs.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}

	return path
}

func isFileRelative(p string) bool {
	p = filepath.ToSlash(p)
	return strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../")
}

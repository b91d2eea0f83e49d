package arhttp

import "context"

// LocalResolver is the strategy consulted before the lookup service.
// Resolve returns a usable location, or "" when it cannot resolve assetPath.
// Implementations MUST be safe for concurrent use by multiple goroutines.
type LocalResolver interface {
	Resolve(ctx context.Context, assetPath string) string
}

// LocalResolverFunc adapts a function to the LocalResolver interface.
type LocalResolverFunc func(ctx context.Context, assetPath string) string

// Resolve calls f(ctx, assetPath).
func (f LocalResolverFunc) Resolve(ctx context.Context, assetPath string) string {
	return f(ctx, assetPath)
}

// Unresolved is a LocalResolver that never resolves anything, so every
// lookup goes to the lookup service.
var Unresolved LocalResolver = LocalResolverFunc(func(context.Context, string) string { return "" })

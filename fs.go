package arhttp

import "github.com/spf13/afero"

// DefaultFs is the filesystem used by FSResolver and LoadConfig when none is
// given. It defaults to the OS filesystem but can be overridden for testing.
//
// Example usage for testing:
//
//	func TestMyResolver(t *testing.T) {
//	    memFs := afero.NewMemMapFs()
//	    afero.WriteFile(memFs, "/assets/scene.usd", []byte("#usda 1.0"), 0644)
//	    arhttp.SetDefaultFs(memFs)
//	    defer arhttp.ResetDefaultFs()
//	    // ... test code ...
//	}
var DefaultFs afero.Fs = afero.NewOsFs()

// SetDefaultFs sets the global default filesystem.
//
// WARNING: This modifies global state and is NOT thread-safe.
// Do not use with t.Parallel() tests. For concurrent tests,
// pass a filesystem to NewFSResolver or WithFs instead.
func SetDefaultFs(fs afero.Fs) {
	DefaultFs = fs
}

// ResetDefaultFs resets the global filesystem to the OS filesystem.
func ResetDefaultFs() {
	DefaultFs = afero.NewOsFs()
}

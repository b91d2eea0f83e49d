package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// DotenvConfig holds dotenv file loading configuration.
type DotenvConfig struct {
	Files       []string // Explicit file paths to load
	SearchPaths []string // Directories to search for env file
	SearchName  string   // Filename to search for (e.g., ".env")
	Override    bool     // If true, dotenv values win over the process environment
}

// loadDotenvFiles parses the configured dotenv files into a single map.
// Without Override the first file defining a key wins, mirroring godotenv.Load;
// with Override the last one wins, mirroring godotenv.Overload.
// The process environment is never modified.
func (e *Engine) loadDotenvFiles() (map[string]string, error) {
	if e.Dotenv == nil {
		return nil, nil
	}

	fs := e.fs()
	files := e.resolveEnvFiles(fs)
	merged := make(map[string]string)
	for _, f := range files {
		data, err := afero.ReadFile(fs, f)
		if err != nil {
			return nil, err
		}

		vals, err := godotenv.UnmarshalBytes(data)
		if err != nil {
			return nil, err
		}

		for k, v := range vals {
			if _, seen := merged[k]; seen && !e.Dotenv.Override {
				continue
			}
			merged[k] = v
		}
	}

	return merged, nil
}

// resolveEnvFiles returns the list of env files to load.
// Priority: explicit files > search paths
func (e *Engine) resolveEnvFiles(fs afero.Fs) []string {
	if len(e.Dotenv.Files) > 0 {
		return filterExistingFiles(fs, e.Dotenv.Files)
	}

	if len(e.Dotenv.SearchPaths) > 0 && e.Dotenv.SearchName != "" {
		for _, dir := range e.Dotenv.SearchPaths {
			path := filepath.Join(dir, e.Dotenv.SearchName)
			if ok, _ := afero.Exists(fs, path); ok {
				return []string{path}
			}
		}
	}

	return nil
}

// filterExistingFiles returns only files that exist.
// Missing files are silently ignored to support optional .env.local patterns.
func filterExistingFiles(fs afero.Fs, files []string) []string {
	var existing []string
	for _, f := range files {
		if ok, _ := afero.Exists(fs, f); ok {
			existing = append(existing, f)
		}
	}

	return existing
}

func (e *Engine) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}

	return e.Fs
}

// Package config provides centralized configuration management.
// All environment lookups live here instead of scattered os.Getenv calls.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// StudyEnv holds all ptstudy environment variables.
type StudyEnv struct {
	// APIURL is the tutor backend base URL (PTSTUDY_API_URL)
	APIURL string

	// APIToken is an optional bearer token passed through to the backend
	// (PTSTUDY_API_TOKEN)
	APIToken string

	// DataDir overrides the local cache directory (PTSTUDY_DATA_DIR)
	DataDir string

	// MaterialsDir is the root resolved against material glob patterns
	// (PTSTUDY_MATERIALS_DIR)
	MaterialsDir string

	// DefaultMode is the pedagogical mode used when --mode is omitted
	// (PTSTUDY_DEFAULT_MODE)
	DefaultMode string

	// Model is the backend model identifier for the content filter
	// (PTSTUDY_MODEL)
	Model string

	// Debug enables debug-level structured logging (PTSTUDY_DEBUG)
	Debug bool
}

var (
	env     *StudyEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *StudyEnv {
	envOnce.Do(func() {
		env = &StudyEnv{
			APIURL:       getEnvDefault("PTSTUDY_API_URL", "http://localhost:8750"),
			APIToken:     os.Getenv("PTSTUDY_API_TOKEN"),
			DataDir:      os.Getenv("PTSTUDY_DATA_DIR"),
			MaterialsDir: os.Getenv("PTSTUDY_MATERIALS_DIR"),
			DefaultMode:  getEnvDefault("PTSTUDY_DEFAULT_MODE", "Core"),
			Model:        os.Getenv("PTSTUDY_MODEL"),
			Debug:        os.Getenv("PTSTUDY_DEBUG") != "",
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Paths holds the standard ptstudy directory layout.
type Paths struct {
	// Home is the ptstudy home directory (~/.ptstudy)
	Home string

	// Data is the cache database directory (~/.ptstudy/data)
	Data string

	// Materials is the default materials directory (~/.ptstudy/materials)
	Materials string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration. PTSTUDY_DATA_DIR
// and PTSTUDY_MATERIALS_DIR override the respective entries.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		studyHome := filepath.Join(home, ".ptstudy")

		paths = &Paths{
			Home:      studyHome,
			Data:      filepath.Join(studyHome, "data"),
			Materials: filepath.Join(studyHome, "materials"),
		}

		if d := Env().DataDir; d != "" {
			paths.Data = d
		}
		if m := Env().MaterialsDir; m != "" {
			paths.Materials = m
		}
	})
	return paths
}

// ResetPaths resets the cached paths (for testing).
func ResetPaths() {
	pathsOnce = sync.Once{}
	paths = nil
}

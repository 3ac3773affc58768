// Package rtcfg loads the runtime profile: the heap budgets and table
// sizing a deployment tunes per board. Profiles live in an ember.toml
// found by walking up from the working directory.
package rtcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProfileFile is the file name searched for by Find.
const ProfileFile = "ember.toml"

// Profile is the decoded runtime profile.
type Profile struct {
	Heap  HeapProfile  `toml:"heap"`
	Trace TraceProfile `toml:"trace"`
}

// HeapProfile bounds the object heap. Zero values mean unlimited.
type HeapProfile struct {
	// MaxObjects caps the number of live objects.
	MaxObjects int `toml:"max_objects"`
	// MaxBytes caps header plus payload bytes, the microcontroller RAM
	// budget the heap models.
	MaxBytes int `toml:"max_bytes"`
	// TableCapacity is the initial entry capacity for dicts and sets
	// created without a size hint.
	TableCapacity int `toml:"table_capacity"`
}

// TraceProfile configures runtime tracing.
type TraceProfile struct {
	Level string `toml:"level"`
}

// Default returns the profile used when no ember.toml exists.
func Default() Profile {
	return Profile{
		Heap:  HeapProfile{TableCapacity: 8},
		Trace: TraceProfile{Level: "off"},
	}
}

// Load decodes a profile file. Unknown keys are an error, so a typo in
// a budget name cannot silently leave the heap unbounded.
func Load(path string) (Profile, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Profile{}, fmt.Errorf("unknown key %q in %q", undecoded[0].String(), path)
	}
	if cfg.Heap.MaxObjects < 0 || cfg.Heap.MaxBytes < 0 || cfg.Heap.TableCapacity < 0 {
		return Profile{}, fmt.Errorf("negative budget in %q", path)
	}
	return cfg, nil
}

// Find walks up from startDir looking for ProfileFile. The boolean
// reports whether one was found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ProfileFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

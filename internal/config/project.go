package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Project is the optional lolc.yaml found next to (or above) a source file.
// Command line flags override every field.
type Project struct {
	// Target selects the backend: "c" (native executable) or "asm" (listing).
	Target string `yaml:"target,omitempty"`

	// Output is the artifact path, relative to the config file.
	Output string `yaml:"output,omitempty"`

	// StackSize and HeapSize are the machine budgets in cells.
	StackSize int `yaml:"stack_size,omitempty"`
	HeapSize  int `yaml:"heap_size,omitempty"`

	// CC is the C compiler command; CFlags replace the default flags.
	CC     string   `yaml:"cc,omitempty"`
	CFlags []string `yaml:"cflags,omitempty"`

	// BuildTimeout bounds one compiler run, e.g. "30s".
	BuildTimeout string `yaml:"build_timeout,omitempty"`

	// Cache enables the artifact cache. Defaults to true.
	Cache *bool `yaml:"cache,omitempty"`

	// CacheDir is the cache location, relative to the config file.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// dir is the directory of the config file, used to resolve paths.
	dir string
}

// Targets lists the accepted target names.
var Targets = []string{"c", "asm"}

// LoadProject reads and parses a lolc.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseProject(data, path)
}

// ParseProject parses lolc.yaml content from bytes.
// The path argument is used for error messages and relative paths.
func ParseProject(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.dir = filepath.Dir(path)
	p.setDefaults()
	return &p, nil
}

// DefaultProject is used when no lolc.yaml exists.
func DefaultProject(dir string) *Project {
	p := &Project{dir: dir}
	p.setDefaults()
	return p
}

// FindProject searches for lolc.yaml starting from dir and walking up to
// parent directories. It returns "" and a nil error when none exists.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, "lolc.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (p *Project) validate(path string) error {
	if p.Target != "" && !isTarget(p.Target) {
		return fmt.Errorf("%s: unknown target %q (want one of %v)", path, p.Target, Targets)
	}
	if p.StackSize < 0 {
		return fmt.Errorf("%s: stack_size must be positive, got %d", path, p.StackSize)
	}
	if p.HeapSize < 0 {
		return fmt.Errorf("%s: heap_size must be positive, got %d", path, p.HeapSize)
	}
	if p.BuildTimeout != "" {
		d, err := time.ParseDuration(p.BuildTimeout)
		if err != nil {
			return fmt.Errorf("%s: build_timeout: %w", path, err)
		}
		if d < 0 {
			return fmt.Errorf("%s: build_timeout must not be negative", path)
		}
	}
	return nil
}

func (p *Project) setDefaults() {
	if p.Target == "" {
		p.Target = DefaultTarget
	}
	if p.Output == "" {
		p.Output = DefaultOutput
	}
	if p.StackSize == 0 {
		p.StackSize = DefaultStackSize
	}
	if p.HeapSize == 0 {
		p.HeapSize = DefaultHeapSize
	}
	if p.CC == "" {
		p.CC = DefaultCC
	}
	if p.CFlags == nil {
		p.CFlags = append([]string(nil), DefaultCFlags...)
	}
	if p.Cache == nil {
		enabled := true
		p.Cache = &enabled
	}
	if p.CacheDir == "" {
		p.CacheDir = DefaultCacheDir
	}
}

// Timeout returns the parsed build timeout, zero when unset.
func (p *Project) Timeout() time.Duration {
	d, _ := time.ParseDuration(p.BuildTimeout)
	return d
}

// CacheEnabled reports whether builds go through the artifact cache.
func (p *Project) CacheEnabled() bool {
	return p.Cache == nil || *p.Cache
}

// Resolve makes a config-relative path absolute.
func (p *Project) Resolve(path string) string {
	if filepath.IsAbs(path) || p.dir == "" {
		return path
	}
	return filepath.Join(p.dir, path)
}

func isTarget(name string) bool {
	for _, t := range Targets {
		if t == name {
			return true
		}
	}
	return false
}

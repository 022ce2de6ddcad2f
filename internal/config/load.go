package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name searched for in each location.
const FileName = "para.yaml"

// EnvConfigPath names an explicit configuration file, like --config.
const EnvConfigPath = "PARA_CONFIG"

// NotFoundError is returned when no configuration file exists at any of the
// attempted locations.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found (tried: %s)", strings.Join(e.Tried, ", "))
}

// Locator decides where to look for the configuration file.
type Locator struct {
	// Explicit, when set, is the only path tried.
	Explicit string
	// ExeDir is the directory of the running binary.
	ExeDir string
	// WorkDir is the current working directory.
	WorkDir string
	// ConfigHome is the XDG config home; "" skips that location.
	ConfigHome string
}

// DefaultLocator builds a Locator from the process environment.
func DefaultLocator(explicit string) Locator {
	if explicit == "" {
		explicit = os.Getenv(EnvConfigPath)
	}
	loc := Locator{Explicit: explicit, ConfigHome: xdg.ConfigHome}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		loc.ExeDir = filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		loc.WorkDir = wd
	}
	return loc
}

// Candidates returns the paths to try, in order.
func (l Locator) Candidates() []string {
	if l.Explicit != "" {
		return []string{l.Explicit}
	}
	var out []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if dir == "" {
			return
		}
		p := filepath.Join(dir, FileName)
		if seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	add(l.ExeDir)
	add(l.WorkDir)
	if l.ConfigHome != "" {
		add(filepath.Join(l.ConfigHome, "para"))
	}
	return out
}

// Locate returns the first candidate that exists.
func (l Locator) Locate() (string, error) {
	tried := l.Candidates()
	for _, p := range tried {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", &NotFoundError{Tried: tried}
}

// Load locates, parses and validates the configuration.
func Load(l Locator) (*Config, error) {
	path, err := l.Locate()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom parses and validates the configuration at path.
//
// A ".env" file next to the config is loaded first without overriding
// variables that are already set. Files ending in ".toml" are decoded as
// TOML, everything else as YAML.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Tried: []string{path}}
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
		slog.Debug("loaded env file", "path", envPath)
	}

	cfg, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	slog.Debug("loaded config", "path", path, "vault", cfg.VaultPath, "templates", len(cfg.Templates))
	return cfg, nil
}

// Parse decodes a configuration document and expands environment variables
// and a leading "~" in path settings. Template bodies are left untouched.
func Parse(data []byte, isTOML bool) (*Config, error) {
	var cfg Config
	if isTOML {
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.VaultPath = expandPath(cfg.VaultPath)
	for _, p := range []*string{
		&cfg.ProjectsRoot, &cfg.AreasRoot, &cfg.ResourcesRoot, &cfg.InboxRoot,
		&cfg.ArchiveProjectsRoot, &cfg.ArchiveAreasRoot, &cfg.ArchiveResourcesRoot,
		&cfg.JournalRoot, &cfg.AgentsFile,
	} {
		*p = strings.TrimSpace(os.ExpandEnv(*p))
	}
	return &cfg, nil
}

func expandPath(p string) string {
	p = strings.TrimSpace(os.ExpandEnv(p))
	if p == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}

// Package vault resolves the configured PARA layout on disk and finds
// entities by prefix.
package vault

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/paravault/para/internal/config"
	"github.com/paravault/para/internal/paths"
	"github.com/paravault/para/internal/prefix"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Kind identifies a top-level PARA bucket.
type Kind string

// Entity kinds that own a root directory.
const (
	KindProject  Kind = "project"
	KindArea     Kind = "area"
	KindResource Kind = "resource"
)

// Layout exposes the vault roots from a configuration.
type Layout struct {
	cfg *config.Config
}

// New returns the layout for cfg.
func New(cfg *config.Config) *Layout {
	return &Layout{cfg: cfg}
}

// Config returns the configuration the layout was built from.
func (l *Layout) Config() *config.Config {
	return l.cfg
}

// Path resolves a vault-relative path to an absolute one.
func (l *Layout) Path(rel string) (string, error) {
	return paths.Join(l.cfg.VaultPath, rel)
}

// ParseKind parses a project/area/resource kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindProject, KindArea, KindResource:
		return k, nil
	}
	return "", fmt.Errorf("unknown kind %q (expected project, area, or resource)", s)
}

// Root returns the vault-relative root for kind.
func (l *Layout) Root(k Kind) string {
	switch k {
	case KindProject:
		return paths.NormalizeRel(l.cfg.ProjectsRoot)
	case KindArea:
		return paths.NormalizeRel(l.cfg.AreasRoot)
	case KindResource:
		return paths.NormalizeRel(l.cfg.ResourcesRoot)
	}
	return ""
}

// ArchiveRoot returns the vault-relative archive root parallel to kind's root.
func (l *Layout) ArchiveRoot(k Kind) string {
	switch k {
	case KindProject:
		return paths.NormalizeRel(l.cfg.ArchiveProjectsRoot)
	case KindArea:
		return paths.NormalizeRel(l.cfg.ArchiveAreasRoot)
	case KindResource:
		return paths.NormalizeRel(l.cfg.ArchiveResourcesRoot)
	}
	return ""
}

// Entry is a named child of a vault directory.
type Entry struct {
	Name    string `json:"name"`
	RelPath string `json:"path"`
	IsDir   bool   `json:"is_dir"`
}

// List returns the visible children of a vault-relative directory, sorted by
// name. A missing directory yields no entries.
func (l *Layout) List(relDir string) ([]Entry, error) {
	dir, err := l.Path(relDir)
	if err != nil {
		return nil, err
	}
	des, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", relDir, err)
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		entries = append(entries, Entry{
			Name:    name,
			RelPath: joinRel(relDir, name),
			IsDir:   de.IsDir(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// DirNames returns the names of subdirectories of relDir.
func (l *Layout) DirNames(relDir string) ([]string, error) {
	return l.names(relDir, true)
}

// FileNames returns the names of regular files in relDir.
func (l *Layout) FileNames(relDir string) ([]string, error) {
	return l.names(relDir, false)
}

func (l *Layout) names(relDir string, dirs bool) ([]string, error) {
	entries, err := l.List(relDir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir == dirs {
			out = append(out, e.Name)
		}
	}
	return out, nil
}

// FindFolder returns the first folder directly under relRoot whose name
// starts with "<p>_".
func (l *Layout) FindFolder(relRoot, p string) (Entry, error) {
	entries, err := l.List(relRoot)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.IsDir && prefix.HasPrefix(e.Name, p) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: no folder with prefix %q in %s", ErrNotFound, p, relRoot)
}

// FindContainer searches kinds in order for a folder with prefix p.
func (l *Layout) FindContainer(p string, kinds ...Kind) (Entry, Kind, error) {
	var searched []string
	for _, k := range kinds {
		e, err := l.FindFolder(l.Root(k), p)
		if err == nil {
			return e, k, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Entry{}, "", err
		}
		searched = append(searched, l.Root(k))
	}
	return Entry{}, "", fmt.Errorf("%w: no folder with prefix %q in %s", ErrNotFound, p, strings.Join(searched, " or "))
}

// UsedEntityPrefixes returns the prefixes of every folder in the projects and
// areas roots. The two pools share one prefix space.
func (l *Layout) UsedEntityPrefixes() (map[string]struct{}, error) {
	projects, err := l.DirNames(l.Root(KindProject))
	if err != nil {
		return nil, err
	}
	areas, err := l.DirNames(l.Root(KindArea))
	if err != nil {
		return nil, err
	}
	return prefix.Collect(projects, areas), nil
}

func joinRel(dir, name string) string {
	dir = paths.NormalizeRel(dir)
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// Exists reports whether a path exists.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

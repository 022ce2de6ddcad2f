// Package testutil provides reusable test utilities for para tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/paravault/para/internal/config"
)

// TestVault represents a temporary vault for testing.
type TestVault struct {
	Path   string
	t      *testing.T
	config func(vaultPath string) string
	files  map[string]string
}

// NewTestVault creates a new test vault builder.
// Call Build() to create the actual vault directory.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{
		t:      t,
		config: DefaultConfigYAML,
		files:  make(map[string]string),
	}
}

// WithConfig replaces the para.yaml generator. The function receives the
// vault path once it is known.
func (v *TestVault) WithConfig(fn func(vaultPath string) string) *TestVault {
	v.config = fn
	return v
}

// WithFile adds a file to the vault.
// The path is relative to the vault root.
func (v *TestVault) WithFile(path, content string) *TestVault {
	v.files[path] = content
	return v
}

// WithDir adds an empty directory to the vault.
func (v *TestVault) WithDir(path string) *TestVault {
	v.files[path+"/"] = ""
	return v
}

// Build creates the vault directory, its para.yaml, and all configured files.
// Returns the TestVault for method chaining.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()

	v.Path = v.t.TempDir()

	if v.config != nil {
		v.writeFile(config.FileName, v.config(v.Path))
	}

	for path, content := range v.files {
		if len(path) > 0 && path[len(path)-1] == '/' {
			v.mkdir(path)
			continue
		}
		v.writeFile(path, content)
	}

	return v
}

// ConfigPath returns the path of the vault's para.yaml.
func (v *TestVault) ConfigPath() string {
	return filepath.Join(v.Path, config.FileName)
}

// Config loads the vault's para.yaml.
func (v *TestVault) Config() *config.Config {
	v.t.Helper()
	cfg, err := config.LoadFrom(v.ConfigPath())
	if err != nil {
		v.t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (v *TestVault) mkdir(relPath string) {
	v.t.Helper()
	dir := filepath.Join(v.Path, filepath.FromSlash(relPath))
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
}

// writeFile writes a file to the vault, creating directories as needed.
func (v *TestVault) writeFile(relPath, content string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, filepath.FromSlash(relPath))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		v.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// WriteFile writes a file into an already built vault.
func (v *TestVault) WriteFile(relPath, content string) {
	v.t.Helper()
	v.writeFile(relPath, content)
}

// ReadFile reads a file from the vault.
// Returns the content as a string.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, filepath.FromSlash(relPath))
	content, err := os.ReadFile(fullPath)
	if err != nil {
		v.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the vault.
func (v *TestVault) FileExists(relPath string) bool {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, filepath.FromSlash(relPath))
	_, err := os.Stat(fullPath)
	return err == nil
}

// ListDir returns the sorted entry names of a vault directory, or nil if it
// does not exist.
func (v *TestVault) ListDir(relPath string) []string {
	v.t.Helper()
	entries, err := os.ReadDir(filepath.Join(v.Path, filepath.FromSlash(relPath)))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// DefaultConfigYAML returns a para.yaml with numbered PARA roots and a
// template for every entity type.
func DefaultConfigYAML(vaultPath string) string {
	return fmt.Sprintf(`vaultPath: '%s'
projectsRoot: 1-projects
areasRoot: 2-areas
resourcesRoot: 3-resources
inboxRoot: 0-inbox
archiveProjectsRoot: 4-archive/projects
archiveAreasRoot: 4-archive/areas
archiveResourcesRoot: 4-archive/resources
templates:
%s`, vaultPath, DefaultTemplatesYAML)
}

// DefaultTemplatesYAML is the templates block used by DefaultConfigYAML.
const DefaultTemplatesYAML = `  project:
    folder: "{{projectsRoot}}/{{prefix}}_{{slug}}"
    files:
      - name: "{{prefix}}_{{slug}}.md"
        content: |
          ---
          created: {{date}}
          tags:
            - project
          ---
          # {{title}}

          {{cursor}}
      - name: notes/index.md
        content: |
          # {{title}} notes
  area:
    folder: "{{areasRoot}}/{{prefix}}_{{slug}}"
    files:
      - name: "{{prefix}}_{{slug}}.md"
        content: |
          ---
          created: {{date}}
          tags:
            - area
          ---
          # {{title}}
          {{cursor}}
  resource:
    path: "{{resourcesRoot}}/{{slug}}.md"
    content: |
      # {{title}}

      {{content|}}
  resource-folder:
    folder: "{{resourcesRoot}}/{{prefix}}_{{slug}}"
    files:
      - name: "{{slug}}.md"
        content: |
          # {{title}}
  post:
    path: "{{folder}}/posts/{{status}}/{{itemPrefix}}_{{slug}}.md"
    content: |
      ---
      area: "[[{{area}}]]"
      tags:
        - post
        - status/{{status}}
      ---
      # {{title}}
  work:
    path: "{{folder}}/work/{{status}}/{{itemPrefix}}_{{slug}}.md"
    content: |
      ---
      status: {{statusTitle}}
      parent: "[[{{parent}}]]"
      type: {{type|task}}
      tags:
        - work
        - status/{{status}}
      ---
      # {{title}}

      ## Depends on
      {{deps|none}}
  episode:
    path: "{{resourcesRoot}}/podcast/{{date}}-{{slug}}.md"
    content: |
      # Interview: {{title}}
  episode-solo:
    path: "{{resourcesRoot}}/podcast/{{date}}-{{slug}}-solo.md"
    content: |
      # Solo: {{title}}
  scratch:
    path: "{{inboxRoot}}/scratch/{{slug}}.md"
    content: |
      {{content|}}{{cursor}}
  scratch-root:
    path: "{{slug}}.md"
    content: |
      {{content|}}{{cursor}}
`

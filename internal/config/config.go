// Package config loads the vault configuration document.
package config

import "sort"

// Defaults for optional keys.
const (
	DefaultJournalRoot = "journal"
	DefaultAgentsFile  = "AGENTS.md"
)

// Config is the parsed configuration document. It is loaded once per
// invocation and treated as read-only afterwards.
type Config struct {
	// VaultPath is the absolute path of the vault root.
	VaultPath string `yaml:"vaultPath" toml:"vaultPath" json:"vaultPath"`

	// Roots, relative to VaultPath.
	ProjectsRoot         string `yaml:"projectsRoot" toml:"projectsRoot" json:"projectsRoot"`
	AreasRoot            string `yaml:"areasRoot" toml:"areasRoot" json:"areasRoot"`
	ResourcesRoot        string `yaml:"resourcesRoot" toml:"resourcesRoot" json:"resourcesRoot"`
	InboxRoot            string `yaml:"inboxRoot" toml:"inboxRoot" json:"inboxRoot"`
	ArchiveProjectsRoot  string `yaml:"archiveProjectsRoot" toml:"archiveProjectsRoot" json:"archiveProjectsRoot"`
	ArchiveAreasRoot     string `yaml:"archiveAreasRoot" toml:"archiveAreasRoot" json:"archiveAreasRoot"`
	ArchiveResourcesRoot string `yaml:"archiveResourcesRoot" toml:"archiveResourcesRoot" json:"archiveResourcesRoot"`

	// JournalRoot holds the daily/weekly/monthly/yearly journal folders.
	// Defaults to "journal".
	JournalRoot string `yaml:"journalRoot,omitempty" toml:"journalRoot,omitempty" json:"journalRoot,omitempty"`

	// AgentsFile is the agent-instructions document maintained by `init`,
	// relative to VaultPath. Defaults to "AGENTS.md".
	AgentsFile string `yaml:"agentsFile,omitempty" toml:"agentsFile,omitempty" json:"agentsFile,omitempty"`

	// Templates maps an entity type name to its template.
	Templates map[string]*Template `yaml:"templates" toml:"templates" json:"templates"`

	// path is the file the config was read from.
	path string
}

// Template describes how to materialize an entity.
//
// Exactly one shape is populated:
//   - single-file: Path and Content
//   - multi-file:  Folder and Files
type Template struct {
	Path    string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
	Content string `yaml:"content,omitempty" toml:"content,omitempty" json:"content,omitempty"`

	Folder string     `yaml:"folder,omitempty" toml:"folder,omitempty" json:"folder,omitempty"`
	Files  []FileSpec `yaml:"files,omitempty" toml:"files,omitempty" json:"files,omitempty"`
}

// FileSpec is one file of a multi-file template.
type FileSpec struct {
	// Name is relative to the template folder and may contain subdirectories.
	Name    string `yaml:"name" toml:"name" json:"name"`
	Content string `yaml:"content" toml:"content" json:"content"`
}

// IsSingleFile reports whether the template writes a single file.
func (t *Template) IsSingleFile() bool {
	return t.Path != ""
}

// IsMultiFile reports whether the template writes a folder of files.
func (t *Template) IsMultiFile() bool {
	return t.Folder != "" || len(t.Files) > 0
}

// Path returns the file the config was loaded from, or "" if it was built in
// memory.
func (c *Config) Path() string {
	return c.path
}

// Template returns the template registered for name.
func (c *Config) Template(name string) (*Template, bool) {
	t, ok := c.Templates[name]
	return t, ok && t != nil
}

// TemplateNames returns the configured template names in sorted order.
func (c *Config) TemplateNames() []string {
	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetJournalRoot returns the journal root with its default applied.
func (c *Config) GetJournalRoot() string {
	if c.JournalRoot == "" {
		return DefaultJournalRoot
	}
	return c.JournalRoot
}

// GetAgentsFile returns the agent-instructions file with its default applied.
func (c *Config) GetAgentsFile() string {
	if c.AgentsFile == "" {
		return DefaultAgentsFile
	}
	return c.AgentsFile
}

// Roots returns every configured root directory, vault-relative, keyed by
// its configuration name.
func (c *Config) Roots() map[string]string {
	return map[string]string{
		"projectsRoot":         c.ProjectsRoot,
		"areasRoot":            c.AreasRoot,
		"resourcesRoot":        c.ResourcesRoot,
		"inboxRoot":            c.InboxRoot,
		"archiveProjectsRoot":  c.ArchiveProjectsRoot,
		"archiveAreasRoot":     c.ArchiveAreasRoot,
		"archiveResourcesRoot": c.ArchiveResourcesRoot,
	}
}

package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/paravault/para/docs"
	"github.com/paravault/para/internal/atomicfile"
	"github.com/paravault/para/internal/paths"
	"github.com/paravault/para/internal/template"
	"github.com/paravault/para/internal/vault"
)

// Markers delimiting the managed section of the agents file.
const (
	AgentsBeginMarker = "<!-- para:begin -->"
	AgentsEndMarker   = "<!-- para:end -->"
)

// JournalDirs are created under the journal root.
var JournalDirs = []string{"daily", "weekly", "monthly", "yearly"}

// Agents file outcomes.
const (
	AgentsCreated   = "created"
	AgentsAppended  = "appended"
	AgentsUpdated   = "updated"
	AgentsUnchanged = "unchanged"
)

// InitResult describes what Init changed.
type InitResult struct {
	Created     []string `json:"created"`
	Existing    int      `json:"existing"`
	AgentsFile  string   `json:"agents_file"`
	AgentsState string   `json:"agents_state"`
}

// VaultDirs returns every directory Init ensures, vault-relative, in
// creation order.
func (s *Service) VaultDirs() []string {
	dirs := []string{
		s.cfg.ProjectsRoot,
		s.cfg.AreasRoot,
		s.cfg.ResourcesRoot,
		s.cfg.InboxRoot,
		s.cfg.ArchiveProjectsRoot,
		s.cfg.ArchiveAreasRoot,
		s.cfg.ArchiveResourcesRoot,
	}
	journal := paths.NormalizeRel(s.cfg.GetJournalRoot())
	for _, d := range JournalDirs {
		dirs = append(dirs, path.Join(journal, d))
	}

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		d = paths.NormalizeRel(d)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Init creates missing vault directories and writes the managed section of
// the agents file.
func (s *Service) Init() (*InitResult, error) {
	res := &InitResult{Created: []string{}}

	for _, rel := range s.VaultDirs() {
		abs, err := s.layout.Path(rel)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, rel, err)
		}
		if vault.Exists(abs) {
			res.Existing++
			continue
		}
		if err := vault.EnsureDir(abs); err != nil {
			return nil, err
		}
		slog.Debug("created directory", "path", rel)
		res.Created = append(res.Created, rel)
	}

	state, err := s.writeAgentsFile()
	if err != nil {
		return nil, err
	}
	res.AgentsFile = paths.NormalizeRel(s.cfg.GetAgentsFile())
	res.AgentsState = state
	return res, nil
}

// AgentsSection renders the managed section, markers included.
func (s *Service) AgentsSection() string {
	vars := template.Variables{"journalRoot": paths.NormalizeRel(s.cfg.GetJournalRoot())}
	for key, root := range s.cfg.Roots() {
		vars[key] = paths.NormalizeRel(root)
	}
	vars.Set("templates", strings.Join(s.cfg.TemplateNames(), ", "))

	body := strings.TrimSpace(template.Render(docs.AgentsSection, vars))
	return AgentsBeginMarker + "\n" + body + "\n" + AgentsEndMarker + "\n"
}

func (s *Service) writeAgentsFile() (string, error) {
	rel := paths.NormalizeRel(s.cfg.GetAgentsFile())
	abs, err := s.layout.Path(rel)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalid, rel, err)
	}

	section := s.AgentsSection()
	existing, err := os.ReadFile(abs)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to read %s: %w", rel, err)
		}
		if err := vault.EnsureDir(filepath.Dir(abs)); err != nil {
			return "", err
		}
		if err := atomicfile.WriteFile(abs, []byte(section), 0); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", rel, err)
		}
		return AgentsCreated, nil
	}

	updated, state := MergeAgentsSection(string(existing), section)
	if state == AgentsUnchanged {
		return state, nil
	}
	if err := atomicfile.WriteFile(abs, []byte(updated), 0); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}
	slog.Debug("wrote agents file", "path", rel, "state", state)
	return state, nil
}

// MergeAgentsSection places section into doc. An existing managed section is
// replaced in place, keeping the text around it; otherwise section is
// appended after a blank line.
func MergeAgentsSection(doc, section string) (string, string) {
	begin := strings.Index(doc, AgentsBeginMarker)
	if begin >= 0 {
		if rel := strings.Index(doc[begin:], AgentsEndMarker); rel >= 0 {
			end := begin + rel + len(AgentsEndMarker)
			if end < len(doc) && doc[end] == '\n' {
				end++
			}
			updated := doc[:begin] + section + doc[end:]
			if updated == doc {
				return doc, AgentsUnchanged
			}
			return updated, AgentsUpdated
		}
	}

	trimmed := strings.TrimRight(doc, "\n")
	if trimmed == "" {
		return section, AgentsAppended
	}
	return trimmed + "\n\n" + section, AgentsAppended
}

package notes

import (
	"fmt"
	"strings"

	"github.com/paravault/para/internal/prefix"
	"github.com/paravault/para/internal/vault"
)

// Listing kinds accepted by List.
const (
	ListProjects  = "projects"
	ListAreas     = "areas"
	ListResources = "resources"
	ListArchive   = "archive"
	ListWork      = "work"
	ListPosts     = "posts"
)

// ListKinds enumerates the accepted listing kinds.
var ListKinds = []string{ListProjects, ListAreas, ListResources, ListArchive, ListWork, ListPosts}

// Row is one listed entity.
type Row struct {
	Prefix   string `json:"prefix,omitempty"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Path     string `json:"path"`
}

// List returns the entities of kind. parent is the container prefix for
// work and posts and is ignored otherwise.
func (s *Service) List(kind, parent string) ([]Row, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ListProjects:
		return s.listRoot(vault.KindProject, s.layout.Root(vault.KindProject))
	case ListAreas:
		return s.listRoot(vault.KindArea, s.layout.Root(vault.KindArea))
	case ListResources:
		return s.listRoot(vault.KindResource, s.layout.Root(vault.KindResource))
	case ListArchive:
		var rows []Row
		for _, k := range []vault.Kind{vault.KindProject, vault.KindArea, vault.KindResource} {
			r, err := s.listRoot(k, s.layout.ArchiveRoot(k))
			if err != nil {
				return nil, err
			}
			rows = append(rows, r...)
		}
		return rows, nil
	case ListWork:
		return s.listItems(vault.SectionWork, parent, vault.KindProject, vault.KindArea)
	case ListPosts:
		return s.listItems(vault.SectionPosts, parent, vault.KindArea)
	}
	return nil, fmt.Errorf("%w: unknown list kind %q (expected one of: %s)", ErrInvalid, kind, strings.Join(ListKinds, ", "))
}

func (s *Service) listRoot(kind vault.Kind, root string) ([]Row, error) {
	entries, err := s.layout.List(root)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, entityRow(e.Name, string(kind), e.RelPath))
	}
	return rows, nil
}

func (s *Service) listItems(section vault.Section, parent string, kinds ...vault.Kind) ([]Row, error) {
	if !prefix.Valid(parent, prefix.EntityLength) {
		return nil, fmt.Errorf("%w: listing %s needs a two-letter parent prefix, got %q", ErrInvalid, section, parent)
	}
	container, _, err := s.layout.FindContainer(parent, kinds...)
	if err != nil {
		return nil, err
	}
	items, err := s.layout.Items(container.RelPath, section)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, entityRow(it.Name, string(it.Status), it.RelPath))
	}
	return rows, nil
}

func entityRow(name, location, rel string) Row {
	if n, err := prefix.ParseName(name); err == nil {
		return Row{Prefix: n.Prefix, Name: n.Rest, Location: location, Path: rel}
	}
	return Row{Name: name, Location: location, Path: rel}
}

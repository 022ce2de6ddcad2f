package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/paravault/para/internal/paths"
	"github.com/paravault/para/internal/prefix"
	"github.com/paravault/para/internal/vault"
)

// ArchiveResult describes a completed archive move.
type ArchiveResult struct {
	Kind vault.Kind `json:"kind"`
	Name string     `json:"name"`
	From string     `json:"from"`
	To   string     `json:"to"`
}

// Archive moves a project, area or resource into its archive root, keeping
// its full name.
//
// name is the folder or file name under the kind's root. A bare two-letter
// prefix that matches no entry by name is resolved to the folder carrying
// that prefix. Archiving never overwrites: an existing destination is an
// error.
func (s *Service) Archive(kind vault.Kind, name string) (*ArchiveResult, error) {
	name = strings.TrimSpace(name)
	if !paths.IsPlainName(name) {
		return nil, fmt.Errorf("%w: %q is not a folder or file name", ErrInvalid, name)
	}

	root := s.layout.Root(kind)
	archiveRoot := s.layout.ArchiveRoot(kind)
	if root == "" || archiveRoot == "" {
		return nil, fmt.Errorf("%w: cannot archive %q", ErrInvalid, kind)
	}

	srcRel := root + "/" + name
	src, err := s.layout.Path(srcRel)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, srcRel, err)
	}
	if !vault.Exists(src) {
		if !prefix.Valid(name, prefix.EntityLength) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, srcRel)
		}
		entry, err := s.layout.FindFolder(root, name)
		if err != nil {
			return nil, err
		}
		name, srcRel = entry.Name, entry.RelPath
		if src, err = s.layout.Path(srcRel); err != nil {
			return nil, err
		}
	}

	dstRel := archiveRoot + "/" + name
	dst, err := s.layout.Path(dstRel)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, dstRel, err)
	}
	if vault.Exists(dst) {
		return nil, fmt.Errorf("%w: %s", ErrExists, dstRel)
	}
	if err := vault.EnsureDir(filepath.Dir(dst)); err != nil {
		return nil, err
	}
	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, srcRel)
		}
		return nil, fmt.Errorf("failed to move %s to %s: %w", srcRel, dstRel, err)
	}

	slog.Debug("archived", "kind", kind, "from", srcRel, "to", dstRel)
	return &ArchiveResult{Kind: kind, Name: name, From: srcRel, To: dstRel}, nil
}

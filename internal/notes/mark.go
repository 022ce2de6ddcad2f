package notes

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/paravault/para/internal/atomicfile"
	"github.com/paravault/para/internal/prefix"
	"github.com/paravault/para/internal/vault"
)

var (
	statusTagRe     = regexp.MustCompile(`(?m)^([ \t]*(?:- )?#?)status/[a-z]+[ \t]*(\r?)$`)
	statusTagLineRe = regexp.MustCompile(`(?m)^[ \t]*(?:- )?#?status/[a-z]+[ \t]*(?:\r?\n|$)`)
	statusFieldRe   = regexp.MustCompile(`(?m)^(status:[ \t]*)[A-Za-z]+[ \t]*(\r?)$`)
)

// MarkResult describes a completed status move.
type MarkResult struct {
	Section vault.Section `json:"section"`
	Parent  string        `json:"parent"`
	Status  vault.Status  `json:"status"`
	From    string        `json:"from"`
	To      string        `json:"to"`
}

// Mark moves the work item or post identified by code inside the container
// with parentPrefix to the status folder for status, rewriting its status
// markers.
//
// Work items are looked up under projects, then areas; posts under areas
// only. Moving to done strips the item code from the file name and removes
// the status tag line. The new content is written before the source is
// removed, so a failure in between leaves both copies.
func (s *Service) Mark(section vault.Section, parentPrefix, code string, status vault.Status) (*MarkResult, error) {
	if _, err := vault.ParseStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !prefix.Valid(parentPrefix, prefix.EntityLength) {
		return nil, fmt.Errorf("%w: parent prefix must be %d lowercase letters, got %q", ErrInvalid, prefix.EntityLength, parentPrefix)
	}
	if !prefix.Valid(code, section.CodeLength()) {
		return nil, fmt.Errorf("%w: %s item code must be %d lowercase letters, got %q", ErrInvalid, section, section.CodeLength(), code)
	}

	kinds := []vault.Kind{vault.KindProject, vault.KindArea}
	if section == vault.SectionPosts {
		kinds = []vault.Kind{vault.KindArea}
	}
	container, _, err := s.layout.FindContainer(parentPrefix, kinds...)
	if err != nil {
		return nil, err
	}

	item, err := s.layout.FindItem(container.RelPath, section, code)
	if err != nil {
		return nil, err
	}
	name, err := prefix.ParseName(item.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	dstName := name.String()
	if status == vault.StatusDone {
		dstName = name.Rest
	}
	dstRel := vault.StatusDir(container.RelPath, section, status) + "/" + dstName

	src, err := s.layout.Path(item.RelPath)
	if err != nil {
		return nil, err
	}
	dst, err := s.layout.Path(dstRel)
	if err != nil {
		return nil, err
	}
	inPlace := src == dst
	if !inPlace && vault.Exists(dst) {
		return nil, fmt.Errorf("%w: %s", ErrExists, dstRel)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", item.RelPath, err)
	}
	content := RewriteStatus(string(data), section, status)

	if err := vault.EnsureDir(filepath.Dir(dst)); err != nil {
		return nil, err
	}
	if err := atomicfile.WriteFile(dst, []byte(content), 0); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", dstRel, err)
	}
	if !inPlace {
		if err := os.Remove(src); err != nil {
			return nil, fmt.Errorf("wrote %s but failed to remove %s: %w", dstRel, item.RelPath, err)
		}
	}

	slog.Debug("marked", "section", section, "from", item.RelPath, "to", dstRel, "status", status)
	return &MarkResult{
		Section: section,
		Parent:  container.Name,
		Status:  status,
		From:    item.RelPath,
		To:      dstRel,
	}, nil
}

// RewriteStatus updates the status markers in content.
//
// Tag lines such as "- status/active" or "#status/active" are rewritten to
// the new status, or removed when status is done. Work items also carry a
// "status: Active" field, which is set to the capitalized status.
func RewriteStatus(content string, section vault.Section, status vault.Status) string {
	if status == vault.StatusDone {
		content = statusTagLineRe.ReplaceAllString(content, "")
	} else {
		content = statusTagRe.ReplaceAllString(content, "${1}status/"+string(status)+"${2}")
	}
	if section == vault.SectionWork {
		content = statusFieldRe.ReplaceAllString(content, "${1}"+status.Title()+"${2}")
	}
	return content
}

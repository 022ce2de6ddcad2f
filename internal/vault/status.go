package vault

import (
	"fmt"
	"strings"

	"github.com/paravault/para/internal/prefix"
)

// Status is a workflow stage of a work item or post.
type Status string

// Workflow stages, in order.
const (
	StatusBacklog Status = "backlog"
	StatusActive  Status = "active"
	StatusReview  Status = "review"
	StatusDone    Status = "done"
)

// Statuses lists every stage in workflow order.
var Statuses = []Status{StatusBacklog, StatusActive, StatusReview, StatusDone}

// ParseStatus validates a status name.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (expected one of: backlog, active, review, done)", s)
}

// Title returns the capitalized status ("Active").
func (s Status) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Section is the sub-folder of a container that holds status folders.
type Section string

// Sections holding status folders.
const (
	SectionWork  Section = "work"
	SectionPosts Section = "posts"
)

// CodeLength returns the item code length used in section.
func (s Section) CodeLength() int {
	if s == SectionPosts {
		return prefix.PostLength
	}
	return prefix.EntityLength
}

// StatusDir returns the vault-relative status folder inside a container.
func StatusDir(containerRel string, section Section, status Status) string {
	return joinRel(joinRel(containerRel, string(section)), string(status))
}

// Item is a work item or post file.
type Item struct {
	Name    string `json:"name"`
	RelPath string `json:"path"`
	Status  Status `json:"status"`
}

// Items returns every file in the container's status folders, in workflow
// order.
func (l *Layout) Items(containerRel string, section Section) ([]Item, error) {
	var items []Item
	for _, st := range Statuses {
		dir := StatusDir(containerRel, section, st)
		names, err := l.FileNames(dir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			items = append(items, Item{Name: name, RelPath: joinRel(dir, name), Status: st})
		}
	}
	return items, nil
}

// UsedItemCodes returns the codes of items across all status folders of a
// container. Items in done have no code and do not contribute.
func (l *Layout) UsedItemCodes(containerRel string, section Section) (map[string]struct{}, error) {
	items, err := l.Items(containerRel, section)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return prefix.Collect(names), nil
}

// FindItem finds the item whose file name starts with "<code>_" in any status
// folder of the container.
func (l *Layout) FindItem(containerRel string, section Section, code string) (Item, error) {
	items, err := l.Items(containerRel, section)
	if err != nil {
		return Item{}, err
	}
	for _, it := range items {
		if prefix.HasPrefix(it.Name, code) {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: no %s item with code %q in %s", ErrNotFound, section, code, joinRel(containerRel, string(section)))
}

// Package prefix handles the short alphabetic codes that identify vault
// entities.
//
// Entity names follow the convention "<prefix>_<rest>", for example
// "ab_my-project" (a folder) or "xyz_launch-post.md" (a file). The prefix is
// what commands use to refer to an entity; the rest is free-form.
package prefix

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins a prefix to the rest of an entity name.
const Separator = "_"

// Common prefix lengths.
const (
	EntityLength = 2 // projects, areas, resources, work items
	PostLength   = 3 // posts
)

// ErrMalformed is returned when a string does not follow the naming convention.
var ErrMalformed = errors.New("malformed entity name")

// Name is a parsed "<prefix>_<rest>" entity name.
type Name struct {
	Prefix string
	Rest   string
}

// ParseName splits an entity name into prefix and rest.
//
// The prefix must be two or three lowercase ASCII letters and the rest must be
// non-empty. Names like "notes.md" or "AB_x" are rejected with ErrMalformed.
func ParseName(s string) (Name, error) {
	p, rest, ok := strings.Cut(s, Separator)
	if !ok || rest == "" {
		return Name{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if !Valid(p, EntityLength) && !Valid(p, PostLength) {
		return Name{}, fmt.Errorf("%w: %q has an invalid prefix", ErrMalformed, s)
	}
	return Name{Prefix: p, Rest: rest}, nil
}

// String returns the on-disk form of the name.
func (n Name) String() string {
	return n.Prefix + Separator + n.Rest
}

// Valid reports whether p is exactly length lowercase ASCII letters.
func Valid(p string, length int) bool {
	if len(p) != length {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < 'a' || p[i] > 'z' {
			return false
		}
	}
	return true
}

// Of returns the substring before the first separator, or "" if the name has
// no separator.
func Of(name string) string {
	p, _, ok := strings.Cut(name, Separator)
	if !ok {
		return ""
	}
	return p
}

// HasPrefix reports whether name belongs to the entity identified by p.
func HasPrefix(name, p string) bool {
	return strings.HasPrefix(name, p+Separator)
}

// Collect returns the set of prefixes used by the given sibling names.
func Collect(names ...[]string) map[string]struct{} {
	used := make(map[string]struct{})
	for _, group := range names {
		for _, name := range group {
			if p := Of(name); p != "" {
				used[p] = struct{}{}
			}
		}
	}
	return used
}

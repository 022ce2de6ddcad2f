// Package wikilink reads and writes the [[target]] links used for work item
// dependencies.
//
// Grammar:
//
//	[[target]]
//	[[target|display text]]
//
// Target and display text are trimmed of surrounding whitespace.
package wikilink

import (
	"regexp"
	"strings"
)

// Link is a parsed wikilink.
type Link struct {
	Target  string
	Display string
}

// String renders the link in [[target]] or [[target|display]] form.
func (l Link) String() string {
	if l.Display == "" {
		return "[[" + l.Target + "]]"
	}
	return "[[" + l.Target + "|" + l.Display + "]]"
}

// re matches [[target]] or [[target|display]]. The target cannot contain
// brackets.
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// ParseExact parses a string that is exactly one wikilink literal.
func ParseExact(s string) (Link, bool) {
	s = strings.TrimSpace(s)
	m := re.FindStringSubmatch(s)
	if m == nil || m[0] != s {
		return Link{}, false
	}
	target := strings.TrimSpace(m[1])
	if target == "" {
		return Link{}, false
	}
	return Link{Target: target, Display: strings.TrimSpace(m[2])}, true
}

// FindAll returns every wikilink in s, in order.
func FindAll(s string) []Link {
	var out []Link
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		target := strings.TrimSpace(m[1])
		if target == "" {
			continue
		}
		out = append(out, Link{Target: target, Display: strings.TrimSpace(m[2])})
	}
	return out
}

// ParseList reads a comma-separated list of dependencies. Each entry is
// either a bare target ("ab_site") or a wikilink ("[[ab_site|Site]]").
// Blank entries and repeated targets are dropped.
func ParseList(s string) []Link {
	var out []Link
	seen := make(map[string]bool)
	for _, part := range splitOutsideLinks(s) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		link, ok := ParseExact(part)
		if !ok {
			link = Link{Target: strings.Trim(part, "[] ")}
		}
		if link.Target == "" || seen[link.Target] {
			continue
		}
		seen[link.Target] = true
		out = append(out, link)
	}
	return out
}

// splitOutsideLinks splits s on commas that are not inside [[...]].
func splitOutsideLinks(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "[["):
			depth++
			i++
		case strings.HasPrefix(s[i:], "]]") && depth > 0:
			depth--
			i++
		case s[i] == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

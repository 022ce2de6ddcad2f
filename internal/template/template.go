// Package template renders note templates against per-invocation variables.
package template

import (
	"regexp"
	"strings"
	"time"
)

// Date layouts used for template variables.
const (
	DateLayout     = "2006-01-02"
	DatetimeLayout = "2006-01-02T15:04"
)

// CursorMarker marks where an editor should place the cursor. It carries no
// data and is removed from rendered output.
const CursorMarker = "{{cursor}}"

var placeholderRe = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Variables maps placeholder names to values.
//
// A key that is present wins over a template default even when its value is
// empty. Use Set to record only non-empty values.
type Variables map[string]string

// NewVariables returns the baseline variables for a note created at now.
func NewVariables(title, slug string, now time.Time) Variables {
	return Variables{
		"title":    title,
		"slug":     slug,
		"date":     now.Format(DateLayout),
		"datetime": now.Format(DatetimeLayout),
		"year":     now.Format("2006"),
		"month":    now.Format("01"),
		"day":      now.Format("02"),
		"weekday":  now.Weekday().String(),
	}
}

// Set stores value under key unless value is empty.
func (v Variables) Set(key, value string) {
	if value == "" {
		return
	}
	v[key] = value
}

// Render substitutes {{key}} and {{key|default}} placeholders in body.
//
// A placeholder resolves to vars[key] when key is present, otherwise to its
// default, otherwise to "". Braces do not nest. {{cursor}} markers are
// removed after substitution.
func Render(body string, vars Variables) string {
	if body == "" {
		return body
	}

	out := placeholderRe.ReplaceAllStringFunc(body, func(match string) string {
		if match == CursorMarker {
			return match
		}
		inner := match[2 : len(match)-2]
		key, def, _ := strings.Cut(inner, "|")
		key = strings.TrimSpace(key)
		if value, ok := vars[key]; ok {
			return value
		}
		return strings.TrimSpace(def)
	})

	return strings.ReplaceAll(out, CursorMarker, "")
}

// Package dateutils provides the date layouts and parsing helpers shared by
// the bank statement parsers.
package dateutils

import (
	"regexp"
	"strings"
	"time"
)

// Layouts encountered across bank exports.
const (
	LayoutRu          = "02.01.2006"
	LayoutRuTime      = "02.01.2006 15:04:05"
	LayoutRuShortTime = "02.01.2006 15:04"
	LayoutISO         = "2006-01-02"
	LayoutISOTime     = "2006-01-02 15:04:05"
	LayoutISOT        = "2006-01-02T15:04:05"
)

// CommonLayouts is the default ordered list tried when a bank has no layout
// list of its own. Order matters: the first successful parse wins.
var CommonLayouts = []string{
	LayoutRuTime,
	LayoutRuShortTime,
	LayoutRu,
	LayoutISOTime,
	LayoutISOT,
	LayoutISO,
	"02/01/2006",
	"02-01-2006",
}

var dateShapeRe = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4}|\d{4}-\d{2}-\d{2})(\s+\d{2}:\d{2}(:\d{2})?)?$`)

// Parse tries each layout in order and returns the first successful parse.
// ok is false when every layout fails.
func Parse(dateStr string, layouts []string) (time.Time, bool) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, false
	}
	if len(layouts) == 0 {
		layouts = CommonLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseOrNow parses with the given layouts and falls back to time.Now() when
// nothing matches. The boolean reports whether the fallback fired, so callers
// can count silent date fabrications instead of losing them.
func ParseOrNow(dateStr string, layouts []string) (time.Time, bool) {
	if t, ok := Parse(dateStr, layouts); ok {
		return t, false
	}
	return time.Now(), true
}

// LooksLikeDate reports whether a whole field is date-shaped: DD.MM.YYYY or
// YYYY-MM-DD, optionally with a trailing time.
func LooksLikeDate(field string) bool {
	return dateShapeRe.MatchString(strings.TrimSpace(field))
}

// ExtractLeadingDate returns the date (with optional time) at the start of a
// line, or "" when the line does not begin with one. Used by the PDF block
// segmentation to anchor transaction blocks.
func ExtractLeadingDate(line string) string {
	m := leadingDateRe.FindString(strings.TrimSpace(line))
	return m
}

var leadingDateRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}(\s+\d{2}:\d{2}(:\d{2})?)?`)

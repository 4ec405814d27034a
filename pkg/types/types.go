package types

import (
	"strings"
	"unicode/utf8"
)

// DefaultSummaryWidth is the number of runes shown for a template in lists.
const DefaultSummaryWidth = 50

type StorageBackend string

const (
	StorageBackendJSON   = StorageBackend("json")
	StorageBackendSQLite = StorageBackend("sqlite")
)

type StorageConfig struct {
	Backend       StorageBackend `yaml:"backend"`
	Path          string         `yaml:"path"`
	SkipMalformed bool           `yaml:"skipMalformed"`
}

// Template is a reusable snippet of text.
type Template struct {
	Description string
}

func New(description string) (Template, bool) {
	description = Normalize(description)
	if description == "" {
		return Template{}, false
	}

	return Template{Description: description}, true
}

// Normalize trims the surrounding whitespace of a description. An empty
// result means the description must be rejected.
func Normalize(description string) string {
	return strings.TrimSpace(description)
}

func (t Template) Matches(query string) bool {
	if query == "" {
		return true
	}

	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(query))
}

// Summary flattens the description onto one line and cuts it to width runes.
func (t Template) Summary(width int) string {
	if width <= 0 {
		width = DefaultSummaryWidth
	}

	line := strings.Join(strings.Fields(t.Description), " ")
	if utf8.RuneCountInString(line) <= width {
		return line
	}

	runes := []rune(line)
	return string(runes[:width]) + "..."
}

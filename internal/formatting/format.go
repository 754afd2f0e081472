// Package formatting renders bootkit command output as rich tables, plain
// kubectl-style columns, JSON or YAML.
package formatting

import (
	"fmt"
	"strings"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatPlain OutputFormat = "plain" // Column aligned output for scripts
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// Formats lists the supported output formats.
func Formats() []OutputFormat {
	return []OutputFormat{FormatTable, FormatPlain, FormatJSON, FormatYAML}
}

// ParseFormat maps a flag value to an OutputFormat. An empty value selects
// FormatTable.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatPlain, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (valid: table, plain, json, yaml)", s)
	}
}

// Options configures the printer behavior
type Options struct {
	Format    OutputFormat
	NoHeaders bool // Suppress the header row in plain output
	Color     bool // Enable colored status cells in table output
}

// Table is the tabular view of a value, used by the table and plain formats.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// StatusColumn is the index of a column whose cells are colored by
	// status, or -1.
	StatusColumn int
	Footer       string
}

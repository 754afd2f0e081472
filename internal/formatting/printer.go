package formatting

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"sigs.k8s.io/yaml"
)

// Printer writes values in the configured OutputFormat.
type Printer struct {
	options Options
	out     io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, options Options) *Printer {
	if options.Format == "" {
		options.Format = FormatTable
	}
	return &Printer{options: options, out: out}
}

// Options returns the printer options.
func (p *Printer) Options() Options {
	return p.options
}

// Print writes data as JSON or YAML, or tbl for the table and plain
// formats.
func (p *Printer) Print(data any, tbl Table) error {
	switch p.options.Format {
	case FormatJSON:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output as JSON: %w", err)
		}
		_, err = fmt.Fprintln(p.out, string(b))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode output as YAML: %w", err)
		}
		_, err = p.out.Write(b)
		return err
	case FormatPlain:
		w := NewPlainTableWriter(p.out)
		w.SetHeaders(tbl.Headers)
		w.SetNoHeaders(p.options.NoHeaders)
		for _, row := range tbl.Rows {
			w.AppendRow(row)
		}
		w.Render()
		return nil
	case FormatTable:
		p.renderTable(tbl)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", p.options.Format)
	}
}

func (p *Printer) renderTable(tbl Table) {
	if len(tbl.Rows) == 0 {
		fmt.Fprintf(p.out, "%s %s\n", p.colorize(text.FgYellow, "📋"), p.colorize(text.FgYellow, "No items found"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	if tbl.Title != "" {
		t.SetTitle(tbl.Title)
	}

	header := make(table.Row, len(tbl.Headers))
	for i, h := range tbl.Headers {
		header[i] = p.colorize(text.FgHiCyan, h)
	}
	t.AppendHeader(header)

	for _, row := range tbl.Rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			if i == tbl.StatusColumn && tbl.StatusColumn >= 0 {
				r[i] = p.status(cell)
				continue
			}
			r[i] = cell
		}
		t.AppendRow(r)
	}
	if tbl.Footer != "" {
		t.AppendFooter(table.Row{tbl.Footer})
	}
	t.Render()
}

func (p *Printer) status(s string) string {
	switch s {
	case "ok", "Initialized":
		return p.colorize(text.FgGreen, s)
	case "error", "Failed":
		return p.colorize(text.FgRed, s)
	case "skipped", "in-progress", "NotStarted", "Initializing":
		return p.colorize(text.FgYellow, s)
	default:
		return s
	}
}

func (p *Printer) colorize(c text.Color, s string) string {
	if !p.options.Color {
		return s
	}
	return c.Sprint(s)
}

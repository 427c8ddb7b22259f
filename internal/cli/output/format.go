// Package output renders chirpctl command results as tables, JSON or
// YAML, and prints colored status lines.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format selects how command results are rendered.
type Format string

const (
	// FormatTable renders results as an aligned text table.
	FormatTable Format = "table"
	// FormatJSON renders results as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders results as YAML.
	FormatYAML Format = "yaml"
)

func (f Format) String() string {
	return string(f)
}

// ParseFormat maps a --output flag value onto a Format. The empty string
// means table, and "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
}

// ANSI SGR codes for status lines.
const (
	ansiGreen  = "32"
	ansiRed    = "31"
	ansiYellow = "33"
)

// Printer writes rendered results and status lines to a single writer.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
}

// NewPrinter returns a Printer for the given writer. Colors apply only to
// the Success, Error and Warning status lines.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{out: out, format: format, color: color}
}

// DefaultPrinter writes tables to stdout with colors on.
func DefaultPrinter() *Printer {
	return NewPrinter(os.Stdout, FormatTable, true)
}

// Format returns the format this printer renders with.
func (p *Printer) Format() Format {
	return p.format
}

// Print renders data in the printer's format. Table output requires data
// to implement TableRenderer; anything else falls back to JSON.
func (p *Printer) Print(data any) error {
	switch p.format {
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	case FormatTable:
		if r, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, r)
		}
		return PrintJSON(p.out, data)
	}
	return fmt.Errorf("unknown format: %s", p.format)
}

// Println writes a plain line.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// Printf writes formatted plain text.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Success prints a green status line.
func (p *Printer) Success(msg string) {
	p.status(ansiGreen, msg)
}

// Error prints a red status line.
func (p *Printer) Error(msg string) {
	p.status(ansiRed, msg)
}

// Warning prints a yellow status line.
func (p *Printer) Warning(msg string) {
	p.status(ansiYellow, msg)
}

func (p *Printer) status(code, msg string) {
	if !p.color {
		_, _ = fmt.Fprintln(p.out, msg)
		return
	}
	_, _ = fmt.Fprintf(p.out, "\033[%sm%s\033[0m\n", code, msg)
}

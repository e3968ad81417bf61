// Package export renders tabular report data as delimited text. Columns are
// typed: scalar cells are written verbatim, list cells are flattened with a
// fixed separator before escaping, so callers never rely on runtime type
// inspection of row values.
package export

import (
	"io"
	"strings"
)

const (
	delimiter     = ","
	listSeparator = ", "
)

// Value is a single cell in an exported row.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// Scalar creates a plain text cell.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List creates a cell holding multiple items, flattened on output.
func List(items ...string) Value {
	return Value{list: items, isList: true}
}

// String returns the flattened, unescaped cell content.
func (v Value) String() string {
	if v.isList {
		return strings.Join(v.list, listSeparator)
	}
	return v.scalar
}

// escape wraps the value in quotes when it contains the delimiter, a quote
// character or a line break, doubling any embedded quotes.
func escape(s string) string {
	if !strings.ContainsAny(s, delimiter+`"`+"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Document is a complete tabular export: an optional title line, a header
// row, then data rows. Every row must have exactly len(Headers) cells.
type Document struct {
	Title   string
	Headers []string
	Rows    [][]Value
}

// Encode writes the document as delimited text to w.
func (d Document) Encode(w io.Writer) error {
	var b strings.Builder

	if d.Title != "" {
		b.WriteString(escape(d.Title))
		b.WriteString("\n")
	}

	for i, h := range d.Headers {
		if i > 0 {
			b.WriteString(delimiter)
		}
		b.WriteString(escape(h))
	}
	b.WriteString("\n")

	for _, row := range d.Rows {
		for i, v := range row {
			if i > 0 {
				b.WriteString(delimiter)
			}
			b.WriteString(escape(v.String()))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

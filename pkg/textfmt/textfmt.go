// Package textfmt renders the primitive values and nested blocks shared by
// the Gameplay3D scene and animation text formats.
package textfmt

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cogentcore.org/core/glop/indent"
)

// ErrWrite is returned when an output file cannot be written.
var ErrWrite = errors.New("write failed")

// Deci formats v with exactly two decimals, rounding half away from zero.
// Negative zero is printed without a sign.
func Deci(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}

// Int formats an integer in decimal.
func Int(v int) string {
	return strconv.Itoa(v)
}

// Triple formats three values as "a, b, c".
func Triple(a, b, c float64) string {
	return Deci(a) + ", " + Deci(b) + ", " + Deci(c)
}

// Bool formats a boolean as a lower-case literal.
func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// Tabs returns the indentation for the given nesting depth.
func Tabs(depth int) string {
	return indent.Tabs(depth)
}

// Builder accumulates tab-indented lines.
type Builder struct {
	sb strings.Builder
}

// Line writes one indented line.
func (b *Builder) Line(depth int, format string, args ...any) {
	b.sb.WriteString(Tabs(depth))
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteByte('\n')
}

// Attr writes "name = value".
func (b *Builder) Attr(depth int, name, value string) {
	b.Line(depth, "%s = %s", name, value)
}

// Open writes a block header: "<header> {".
func (b *Builder) Open(depth int, header string) {
	b.Line(depth, "%s {", header)
}

// Close writes a closing brace.
func (b *Builder) Close(depth int) {
	b.Line(depth, "}")
}

// Append copies raw text verbatim.
func (b *Builder) Append(s string) {
	b.sb.WriteString(s)
}

// String returns the accumulated text.
func (b *Builder) String() string {
	return b.sb.String()
}

// Bytes returns the accumulated text as bytes.
func (b *Builder) Bytes() []byte {
	return []byte(b.sb.String())
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.sb.Len()
}

// WriteFile writes data to path, creating parent directories and replacing
// any previous content.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %v", ErrWrite, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

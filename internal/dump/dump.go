// Package dump provides debug rendering of funk's runtime state: the
// operand stack, globals, and arbitrary object-graph values. It's
// grounded on gothird's vmDumper (dumper.go) — a small struct wrapping
// the thing being inspected plus an io.Writer, with one dump method per
// section — but renders values with github.com/davecgh/go-spew instead
// of hand-rolled formatting, since nothing here has gothird's fixed
// word-addressed memory layout to special-case.
package dump

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// config mirrors the pack's typical spew usage: no pointer addresses
// (noisy and non-reproducible across runs), method calls disabled (funk
// values' String()-like helpers live in pkg/object as free functions,
// not methods spew would find anyway).
var config = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableMethods:          true,
}

// Dumper renders funk runtime values to out for debugging — wired into
// cmd/funk's -debug flag.
type Dumper struct {
	out io.Writer
}

// New returns a Dumper writing to out.
func New(out io.Writer) *Dumper {
	return &Dumper{out: out}
}

// Value deep-prints a single value (an object.Value, a *object.String,
// a compiled BasicFunction's constant pool — anything) under label.
func (d *Dumper) Value(label string, v interface{}) {
	fmt.Fprintf(d.out, "# %s\n", label)
	config.Fdump(d.out, v)
}

// Section writes a bare header line, for grouping several Value calls.
func (d *Dumper) Section(title string) {
	fmt.Fprintf(d.out, "## %s\n", title)
}

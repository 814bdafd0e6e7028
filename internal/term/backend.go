// Package term supplies a concrete implementation of tbl.TermHooks for
// a real ANSI terminal. It is not part of the table engine's contract
// (§6.3 names only the interface) — it exists so internal/tbl has a
// working backend to render through in cmd/mdoctbl and in tests.
package term

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rivo/uniseg"
	"github.com/valyala/bytebufferpool"

	"github.com/mdocgo/mdocgo/internal/tbl"
)

// Backend is a tbl.TermHooks implementation writing to a wrapped,
// tty-detected output stream, with per-line buffering via a pooled
// bytebufferpool.Buffer.
type Backend struct {
	w       io.Writer
	tty     bool
	buf     *bytebufferpool.Buffer
	col     int
	curFont tbl.FontKind
}

// NewStdout returns a Backend writing to os.Stdout, wrapped with
// go-colorable so ANSI escapes degrade correctly on Windows consoles,
// and gated by go-isatty so escapes are only emitted to a real
// terminal.
func NewStdout() *Backend {
	return New(colorable.NewColorable(os.Stdout), isatty.IsTerminal(os.Stdout.Fd()))
}

// New returns a Backend writing to w; tty controls whether font
// escapes are emitted at all.
func New(w io.Writer, tty bool) *Backend {
	return &Backend{w: w, tty: tty, buf: bytebufferpool.Get()}
}

// Close returns the pooled buffer.
func (b *Backend) Close() {
	bytebufferpool.Put(b.buf)
}

func (b *Backend) Advance(col int) {
	for b.col < col {
		b.buf.WriteByte(' ')
		b.col++
	}
}

func (b *Backend) Letter(ch rune) {
	b.buf.WriteRune(ch)
	b.col++
}

func (b *Backend) Word(s string) {
	b.buf.WriteString(s)
	b.col += uniseg.StringWidth(s)
}

func (b *Backend) EndLine() {
	b.buf.WriteByte('\n')
}

func (b *Backend) SetCol(n int) {
	b.col = n
}

func (b *Backend) FontPush(kind tbl.FontKind) tbl.FontKind {
	prev := b.curFont
	if b.tty {
		b.buf.WriteString(sgrFor(kind))
	}
	b.curFont = kind
	return prev
}

func (b *Backend) FontPopq(prev tbl.FontKind) {
	if b.tty {
		b.buf.WriteString(sgrFor(prev))
	}
	b.curFont = prev
}

func (b *Backend) FlushLn() {
	bw := bufio.NewWriter(b.w)
	bw.Write(b.buf.Bytes())
	bw.Flush()
	b.buf.Reset()
	b.col = 0
}

func (b *Backend) Len(n float64) float64 {
	return n
}

func (b *Backend) SLen(s string) float64 {
	return float64(uniseg.StringWidth(s))
}

func (b *Backend) SULen(su tbl.ScaledUnit) float64 {
	return su.ToEN(6)
}

func sgrFor(kind tbl.FontKind) string {
	switch kind {
	case tbl.FontBold:
		return "\x1b[1m"
	case tbl.FontItalic:
		return "\x1b[3m"
	default:
		return "\x1b[0m"
	}
}

package tbl

import (
	"strings"
	"testing"
)

// recHooks is a TermHooks that records each emitted line as plain
// text, with font pushes/pops rendered as bracket tags so tests can
// assert on them without a real terminal backend.
type recHooks struct {
	lines []string
	cur   strings.Builder
	font  FontKind
}

func (h *recHooks) Advance(int)  {}
func (h *recHooks) Letter(ch rune) { h.cur.WriteRune(ch) }
func (h *recHooks) Word(s string)  { h.cur.WriteString(s) }
func (h *recHooks) EndLine() {
	h.lines = append(h.lines, h.cur.String())
	h.cur.Reset()
}
func (h *recHooks) SetCol(int) {}
func (h *recHooks) FontPush(k FontKind) FontKind {
	prev := h.font
	h.font = k
	h.cur.WriteString(fontTag(k))
	return prev
}
func (h *recHooks) FontPopq(prev FontKind) {
	h.font = prev
	h.cur.WriteString(fontTag(prev))
}
func (h *recHooks) FlushLn()                    {}
func (h *recHooks) Len(n float64) float64       { return n }
func (h *recHooks) SLen(s string) float64       { return float64(len(s)) }
func (h *recHooks) SULen(su ScaledUnit) float64 { return su.Value }

func fontTag(k FontKind) string {
	switch k {
	case FontBold:
		return "<B>"
	case FontItalic:
		return "<I>"
	default:
		return ""
	}
}

func TestRenderBoxFramesAndHrules(t *testing.T) {
	opts := &Options{Cols: 2, Flags: OptBox}
	layout := []LayoutCell{
		{Col: 0, Position: CellLeft},
		{Col: 1, Position: CellLeft},
	}
	d1 := &DataCell{Position: DataData, String: "ab", Layout: &layout[0]}
	d2 := &DataCell{Position: DataData, String: "cd", Layout: &layout[1]}
	d1.Next = d2
	span := &Span{Position: PosData, Layout: layout, Data: d1, Opts: opts}

	hooks := &recHooks{}
	Render([]*Span{span}, opts, hooks, 0, 0)

	if len(hooks.lines) != 3 {
		t.Fatalf("expected 3 lines (hrule, data, hrule), got %d: %v", len(hooks.lines), hooks.lines)
	}

	top, data, bottom := hooks.lines[0], hooks.lines[1], hooks.lines[2]
	for _, r := range top {
		if r != '-' {
			t.Fatalf("expected top hrule to be all dashes, got %q", top)
		}
	}
	if top != bottom {
		t.Fatalf("expected top and bottom hrules to match: %q vs %q", top, bottom)
	}
	if !strings.HasPrefix(data, "|") || !strings.HasSuffix(data, "|") {
		t.Fatalf("expected BOX data row to be framed on both sides, got %q", data)
	}
	if strings.Count(data, "|") != 3 {
		t.Fatalf("expected left frame, one interior rule, and right frame (3 bars), got %q", data)
	}
}

func TestRenderDataSpanWrapsMultiLine(t *testing.T) {
	opts := &Options{Cols: 1}
	layout := []LayoutCell{{Col: 0, Position: CellLeft}}
	dc := &DataCell{Position: DataData, String: "aaaa bbbb cccc", Block: true, Layout: &layout[0]}
	span := &Span{Position: PosData, Layout: layout, Data: dc, Opts: opts}

	hooks := &recHooks{}
	Render([]*Span{span}, opts, hooks, 0, 10)

	want := []string{"aaaa", "bbbb", "cccc"}
	if len(hooks.lines) != len(want) {
		t.Fatalf("expected %d wrapped lines, got %d: %v", len(want), len(hooks.lines), hooks.lines)
	}
	for i, line := range want {
		if hooks.lines[i] != line {
			t.Fatalf("line %d: expected %q, got %q", i, line, hooks.lines[i])
		}
	}
}

func TestRenderCellFontPushPop(t *testing.T) {
	opts := &Options{Cols: 2}
	layout := []LayoutCell{
		{Col: 0, Position: CellLeft, Flags: FlagBold},
		{Col: 1, Position: CellLeft, Flags: FlagItalic},
	}
	d1 := &DataCell{Position: DataData, String: "ab", Layout: &layout[0]}
	d2 := &DataCell{Position: DataData, String: "cd", Layout: &layout[1]}
	d1.Next = d2
	span := &Span{Position: PosData, Layout: layout, Data: d1, Opts: opts}

	hooks := &recHooks{}
	Render([]*Span{span}, opts, hooks, 0, 0)

	if len(hooks.lines) != 1 {
		t.Fatalf("expected a single data line, got %d: %v", len(hooks.lines), hooks.lines)
	}
	want := "<B>ab <I>cd"
	if hooks.lines[0] != want {
		t.Fatalf("expected %q, got %q", want, hooks.lines[0])
	}
}

func TestRenderDataSpanHSpanMergesColumns(t *testing.T) {
	opts := &Options{Cols: 3}
	layout := []LayoutCell{
		{Col: 0, Position: CellLeft},
		{Col: 1, Position: CellLeft},
		{Col: 2, Position: CellLeft},
	}
	d1 := &DataCell{Position: DataData, String: "hi", HSpan: 1, Layout: &layout[0]}
	placeholder := &DataCell{Position: DataData, String: "", Layout: &layout[1]}
	d3 := &DataCell{Position: DataData, String: "z", Layout: &layout[2]}
	d1.Next = placeholder
	placeholder.Next = d3
	span := &Span{Position: PosData, Layout: layout, Data: d1, Opts: opts}

	hooks := &recHooks{}
	Render([]*Span{span}, opts, hooks, 0, 0)

	if len(hooks.lines) != 1 {
		t.Fatalf("expected a single data line, got %d: %v", len(hooks.lines), hooks.lines)
	}
	want := "hi z"
	if hooks.lines[0] != want {
		t.Fatalf("expected the spanned cell to merge columns 0-1 and skip the placeholder: got %q, want %q", hooks.lines[0], want)
	}
}

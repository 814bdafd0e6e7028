package tbl

// Render drives per-span terminal rendering over a fully-built table,
// grounded on term_tbl/tbl_hrule in tbl_term.c: it solves column
// geometry once using every span, centers the table if requested, then
// renders each span in order, finally freeing the column array and
// emitting the closing frame.
func Render(spans []*Span, opts *Options, hooks TermHooks, offset, rmargin float64) {
	if len(spans) == 0 {
		return
	}
	cols := Solve(spans, opts, hooks, offset, rmargin)

	if opts.Flags&OptCentre != 0 && rmargin > 0 {
		total := tableWidth(cols, opts)
		if pad := (rmargin - offset - total) / 2; pad > 0 {
			offset += pad
		}
	}

	if opts.Flags&OptDBox != 0 {
		hrule(cols, opts, hooks, offset, true)
	}
	if opts.Flags&(OptBox|OptDBox) != 0 {
		hrule(cols, opts, hooks, offset, true)
	}

	var prevVert []int
	for _, sp := range spans {
		switch sp.Position {
		case PosHoriz, PosDHoriz:
			renderRuleSpan(sp, cols, opts, hooks, offset, prevVert)
		default:
			renderDataSpan(sp, cols, opts, hooks, offset)
		}
		prevVert = vertCounts(sp, len(cols))
	}

	if opts.Flags&(OptBox|OptDBox) != 0 {
		hrule(cols, opts, hooks, offset, true)
	}
	if opts.Flags&OptDBox != 0 {
		hrule(cols, opts, hooks, offset, true)
	}
}

func tableWidth(cols []*Column, opts *Options) float64 {
	w := 0.0
	for _, c := range cols {
		w += c.Width + float64(c.Spacing)
	}
	if opts.Flags&(OptBox|OptDBox) != 0 {
		w += 2
	} else {
		w += float64(opts.LVert + opts.RVert)
	}
	return w
}

// vertCounts returns the row's vertical-rule counts per column
// boundary: index c+1 holds the rules to the right of column c.
func vertCounts(sp *Span, ncols int) []int {
	counts := make([]int, ncols+1)
	for _, lc := range sp.Layout {
		if lc.Col >= 0 && lc.Col < ncols {
			counts[lc.Col+1] = lc.VertRule
		}
	}
	return counts
}

// hrule emits one frame rule line drawn entirely in '-'; there is no
// '=' variant. At interior column boundaries it prints '-' when outer
// is set and '+' otherwise; every caller in Render passes outer=true.
func hrule(cols []*Column, opts *Options, hooks TermHooks, offset float64, outer bool) {
	hooks.SetCol(int(offset))
	ch := '-'
	for i, col := range cols {
		for n := 0; n < int(col.Width)+col.Spacing; n++ {
			hooks.Letter(ch)
		}
		if i != len(cols)-1 {
			if outer {
				hooks.Letter('-')
			} else {
				hooks.Letter('+')
			}
		}
	}
	hooks.EndLine()
	hooks.FlushLn()
}

func renderRuleSpan(sp *Span, cols []*Column, opts *Options, hooks TermHooks, offset float64, prevVert []int) {
	hooks.SetCol(int(offset))
	ch := byte('-')
	if sp.Position == PosDHoriz {
		ch = '='
	}
	curVert := vertCounts(sp, len(cols))
	for i, col := range cols {
		for n := 0; n < int(col.Width)+col.Spacing; n++ {
			hooks.Letter(rune(ch))
		}
		if i != len(cols)-1 {
			v := curVert[i+1]
			if i+1 < len(prevVert) && prevVert[i+1] > v {
				v = prevVert[i+1]
			}
			if v > 0 {
				hooks.Letter('+')
			} else {
				hooks.Letter(rune(ch))
			}
		}
	}
	hooks.EndLine()
	hooks.FlushLn()
}

// dataSpan is one rendered cell that may cover more than one output
// column, per HSpan.
type dataSpan struct {
	lines []string
	width float64
	end   int
}

// renderDataSpan lays out one data row. A cell with HSpan > 0 spans
// that many additional columns: its continuation columns (marked in
// covered) are skipped both when walking the row's linked list and
// when printing, and its content is rendered across the combined
// width of every column it covers. Vertical-rule glyphs are drawn at
// column boundaries carrying a VertRule count, or unconditionally
// inside a BOX/DBOX frame, with Options.LVert/RVert framing the row on
// either side (§4.2's "N+2 output columns").
func renderDataSpan(sp *Span, cols []*Column, opts *Options, hooks TermHooks, offset float64) {
	spanAt := make([]*dataSpan, len(cols))
	covered := make([]bool, len(cols))

	skip := 0
	for dp := sp.Data; dp != nil; dp = dp.Next {
		if skip > 0 {
			skip--
			continue
		}
		if dp.Layout == nil || dp.Layout.Col < 0 || dp.Layout.Col >= len(cols) {
			continue
		}
		start := dp.Layout.Col
		end := start + dp.HSpan
		if end >= len(cols) {
			end = len(cols) - 1
		}
		width := cols[start].Width
		for c := start + 1; c <= end; c++ {
			width += float64(cols[c-1].Spacing) + cols[c].Width
			covered[c] = true
		}
		synth := &Column{Width: width, Decimal: cols[start].Decimal, NWidth: cols[start].NWidth}
		spanAt[start] = &dataSpan{lines: renderCell(dp, synth, hooks), width: width, end: end}
		skip = dp.HSpan
	}

	height := 1
	for _, s := range spanAt {
		if s != nil && len(s.lines) > height {
			height = len(s.lines)
		}
	}

	curVert := vertCounts(sp, len(cols))
	framed := opts.Flags&(OptBox|OptDBox) != 0

	for line := 0; line < height; line++ {
		hooks.SetCol(int(offset))
		if framed || opts.LVert > 0 {
			hooks.Letter('|')
		}
		for i := 0; i < len(cols); {
			if covered[i] {
				i++
				continue
			}
			s := spanAt[i]
			width := cols[i].Width
			end := i
			var text string
			switch {
			case s != nil && line < len(s.lines):
				text = s.lines[line]
				width = s.width
				end = s.end
			case s != nil:
				text = blank(s.width, hooks)
				width = s.width
				end = s.end
			default:
				text = blank(width, hooks)
			}
			hooks.Word(text)
			if end != len(cols)-1 {
				if framed || (end+1 < len(curVert) && curVert[end+1] > 0) {
					hooks.Letter('|')
				} else {
					hooks.Letter(' ')
				}
			}
			i = end + 1
		}
		if framed || opts.RVert > 0 {
			hooks.Letter('|')
		}
		hooks.EndLine()
	}
	hooks.FlushLn()
}

func blank(width float64, hooks TermHooks) string {
	n := int(width)
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

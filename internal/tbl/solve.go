package tbl

import (
	"math"
	"strings"
)

// Solve runs the two-pass column-geometry solve over spans (§4.2),
// grounded on tblcalc/tblcalc_data/tblcalc_literal/tblcalc_number in
// out.c, including the nxcol==5 legacy-quirk adjustment (§9).
//
// rmargin and offset are the right margin and left offset of the
// enclosing output device, in the same unit hooks.Len returns; a
// rmargin of 0 means "unknown" (maximize gives up, per §4.2).
func Solve(spans []*Span, opts *Options, hooks TermHooks, offset, rmargin float64) []*Column {
	cols := make([]*Column, opts.Cols)
	for i := range cols {
		cols[i] = &Column{Spacing: SizeMaxSentinel}
	}

	pass1(spans, opts, hooks, cols, rmargin)
	pass2(cols, opts, offset, rmargin)
	return cols
}

// pass1 walks every data cell once, accumulating per-column width and
// spacing. A cell with HSpan > 0 consumes that many additional cells
// from the row's linked list (mirroring tbl_data's horizontal-span
// placeholders): those continuation cells carry no width of their own,
// so they are skipped rather than measured, and the spanning cell's
// own content width is attributed to the rightmost column it covers
// (tblcalc_data widens the last spanned column, not the first).
func pass1(spans []*Span, opts *Options, hooks TermHooks, cols []*Column, rmargin float64) {
	for _, sp := range spans {
		if sp.Position != PosData {
			continue
		}
		skip := 0
		for dp := sp.Data; dp != nil; dp = dp.Next {
			if skip > 0 {
				skip--
				continue
			}
			lc := dp.Layout
			if lc == nil || lc.Flags&FlagWIgn != 0 {
				continue
			}
			if lc.Col < 0 || lc.Col >= len(cols) {
				continue
			}
			skip = dp.HSpan

			col := cols[lc.Col]
			col.Flags |= lc.Flags

			if lc.WidthSpec != "" && lc.Width == 0 {
				if su, _, ok := ParseScaledUnit(lc.WidthSpec, UnitEn); ok {
					lc.Width = hooks.SULen(su)
				}
			}
			if lc.Width > col.Width {
				col.Width = lc.Width
			}
			if col.Spacing == SizeMaxSentinel || lc.Spacing < col.Spacing {
				col.Spacing = lc.Spacing
			}

			widthCol := col
			if dp.HSpan > 0 {
				end := lc.Col + dp.HSpan
				if end >= len(cols) {
					end = len(cols) - 1
				}
				widthCol = cols[end]
			}

			switch lc.Position {
			case CellHoriz, CellDHoriz:
				if w := hooks.Len(1); w > widthCol.Width {
					widthCol.Width = w
				}
			case CellLong, CellCentre, CellLeft, CellRight:
				measureLiteral(dp, lc, hooks, widthCol, opts.Cols, rmargin)
			case CellNumber:
				measureNumber(dp, opts.Decimal, hooks, widthCol)
			case CellDown:
				// inherits the cell above; nothing to accumulate.
			}
		}
	}
}

// measureLiteral implements tblcalc_literal: word-wrap dp.String into
// lines no wider than mw (block mode) or one line (non-block), and
// widen col.Width to the longest line.
func measureLiteral(dp *DataCell, lc *LayoutCell, hooks TermHooks, col *Column, ncols int, rmargin float64) {
	mw := 0.0
	if dp.Block {
		switch {
		case lc.WidthSpec != "":
			mw = lc.Width
		case rmargin > 0:
			mw = rmargin / float64(ncols+1)
		}
	}

	var lines []string
	if !dp.Block || mw <= 0 {
		lines = []string{dp.String}
	} else {
		lines = wrapGreedy(dp.String, mw, hooks)
	}
	for _, ln := range lines {
		if w := hooks.SLen(ln); w > col.Width {
			col.Width = w
		}
	}
}

func wrapGreedy(s string, mw float64, hooks TermHooks) []string {
	words := strings.Split(s, " ")
	var lines []string
	var cur strings.Builder
	for _, w := range words {
		cand := w
		if cur.Len() > 0 {
			cand = cur.String() + " " + w
		}
		if cur.Len() > 0 && hooks.SLen(cand) > mw {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
			continue
		}
		cur.Reset()
		cur.WriteString(cand)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// measureNumber implements tblcalc_number: decimal-alignment
// measurement with the \& override and decimal-character adjacency
// rule (§4.2).
func measureNumber(dp *DataCell, decimal byte, hooks TermHooks, col *Column) {
	s := dp.String
	if decimal == 0 {
		decimal = '.'
	}

	scanEnd := len(s)
	if idx := strings.Index(s, `\&`); idx >= 0 {
		scanEnd = idx
	}
	scan := s[:scanEnd]

	lastDigit := -1
	for i := 0; i < len(scan); i++ {
		if scan[i] >= '0' && scan[i] <= '9' {
			lastDigit = i
		}
	}
	if lastDigit < 0 {
		// No digit: treat as literal.
		if w := hooks.SLen(s); w > col.Width {
			col.Width = w
		}
		return
	}

	lastPoint := -1
	for i := 1; i < len(scan)-1; i++ {
		if scan[i] == decimal {
			prevDigit := scan[i-1] >= '0' && scan[i-1] <= '9'
			nextDigit := scan[i+1] >= '0' && scan[i+1] <= '9'
			if prevDigit || nextDigit {
				lastPoint = i
			}
		}
	}

	var intPart string
	if lastPoint >= 0 {
		intPart = s[:lastPoint]
	} else {
		intPart = s[:lastDigit+1]
	}
	intsz := hooks.SLen(intPart)
	totsz := hooks.SLen(s)

	if intsz > col.Decimal {
		col.NWidth += intsz - col.Decimal
		col.Decimal = intsz
	} else {
		totsz += col.Decimal - intsz
	}
	if totsz > col.NWidth {
		col.NWidth = totsz
	}
}

func pass2(cols []*Column, opts *Options, offset, rmargin float64) {
	for i, col := range cols {
		if col.Width > col.NWidth {
			col.Decimal += (col.Width - col.NWidth) / 2
		} else {
			col.Width = col.NWidth
		}
		if col.Spacing == SizeMaxSentinel || i == len(cols)-1 {
			col.Spacing = 3
		}
	}

	necol, ewidth := 0, 0.0
	for _, col := range cols {
		if col.Flags&FlagEqual != 0 {
			necol++
			if col.Width > ewidth {
				ewidth = col.Width
			}
		}
	}

	nxcol := 0
	xwidth := 0.0
	preEqualWidth := make([]float64, len(cols))
	for i, col := range cols {
		preEqualWidth[i] = col.Width
		if col.Flags&FlagWMax == 0 {
			xwidth += col.Width
		} else {
			nxcol++
		}
	}

	// Equalize.
	if necol > 0 {
		for i, col := range cols {
			if col.Flags&FlagEqual == 0 {
				continue
			}
			delta := ewidth - preEqualWidth[i]
			col.Width = ewidth
			if col.Flags&FlagWMax == 0 && rmargin > 0 {
				xwidth += delta
			}
		}
	}

	// Maximize.
	if nxcol > 0 && rmargin > 0 {
		maxcol := len(cols) - 1
		if maxcol < 0 {
			maxcol = 0
		}
		frame := opts.LVert + opts.RVert
		if opts.Flags&(OptBox|OptDBox) != 0 {
			frame = 2
		}
		xwidth += 3*float64(maxcol) + float64(frame)

		if rmargin <= offset+xwidth {
			return // give up, no resize
		}
		avail := rmargin - offset - xwidth

		quirkcol := -1
		if nxcol == 5 {
			q := int(avail) % nxcol + 2
			if q == 3 || q == 4 {
				quirkcol = q
			}
		}

		boundary := func(k int) float64 {
			return math.Floor(avail*float64(k)/float64(nxcol) + 0.4995)
		}

		k := 0
		prevBoundary := boundary(0)
		for _, col := range cols {
			if col.Flags&FlagWMax == 0 {
				continue
			}
			k++
			b := boundary(k)
			w := b - prevBoundary
			prevBoundary = b
			if k == quirkcol {
				w--
			}
			col.Width = w
		}
	}
}

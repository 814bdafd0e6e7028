package tbl

import "strings"

const nbsp = ' '

// renderCell implements cell content rendering (§4.2): dispatch on the
// cell's layout position, padding, decimal alignment, and BOLD/ITALIC
// font push/pop. Returns one or more output lines, already padded to
// col.Width.
func renderCell(dp *DataCell, col *Column, hooks TermHooks) []string {
	lc := dp.Layout
	var prevFont FontKind
	pushed := false
	if lc.Flags&FlagBold != 0 {
		prevFont = hooks.FontPush(FontBold)
		pushed = true
	} else if lc.Flags&FlagItalic != 0 {
		prevFont = hooks.FontPush(FontItalic)
		pushed = true
	}
	defer func() {
		if pushed {
			hooks.FontPopq(prevFont)
		}
	}()

	width := int(col.Width)

	switch lc.Position {
	case CellHoriz, CellDHoriz:
		ch := byte('-')
		if lc.Position == CellDHoriz {
			ch = '='
		}
		return []string{strings.Repeat(string(ch), width)}

	case CellDown, CellNumber:
		if lc.Position == CellDown {
			return []string{strings.Repeat(string(nbsp), width)}
		}
		return []string{renderNumber(dp.String, col, hooks, width)}

	default:
		return padLines(wrapLines(dp, col, hooks), width, lc.Position, hooks)
	}
}

// wrapLines re-wraps a block-mode literal cell's content against the
// column's solved width, mirroring tblcalc_literal's own greedy wrap so
// the rendered line count matches what Pass 1 measured; non-block
// cells (or a column still reporting zero width) render as one line.
func wrapLines(dp *DataCell, col *Column, hooks TermHooks) []string {
	if !dp.Block || col.Width <= 0 {
		return []string{dp.String}
	}
	return wrapGreedy(dp.String, col.Width, hooks)
}

// padLines pads every wrapped line per the cell's alignment (CellLeft,
// CellRight, CellCentre, CellLong); everything else defaults to
// left-aligned.
func padLines(lines []string, width int, pos CellPosition, hooks TermHooks) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = padOne(ln, width, pos, hooks)
	}
	return out
}

func padOne(s string, width int, pos CellPosition, hooks TermHooks) string {
	switch pos {
	case CellCentre:
		pad := width - int(hooks.SLen(s))
		if pad < 0 {
			pad = 0
		}
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)

	case CellRight:
		pad := width - int(hooks.SLen(s))
		if pad < 0 {
			pad = 0
		}
		return strings.Repeat(" ", pad) + s

	case CellLong:
		pad := width - int(hooks.SLen(s)) - 1
		if pad < 0 {
			pad = 0
		}
		return " " + s + strings.Repeat(" ", pad)

	default: // CellLeft and anything else: all padding on the right.
		pad := width - int(hooks.SLen(s))
		if pad < 0 {
			pad = 0
		}
		return s + strings.Repeat(" ", pad)
	}
}

// renderNumber implements the NUMBER cell's decimal-aligned rendering:
// left-pad by col.Decimal - this cell's own decimal position, emit,
// then right-pad to col.Width.
func renderNumber(s string, col *Column, hooks TermHooks, width int) string {
	intsz, _, numeric := splitNumeric(s, '.')
	if !numeric {
		pad := width - int(hooks.SLen(s))
		if pad < 0 {
			pad = 0
		}
		return s + strings.Repeat(" ", pad)
	}
	leftPad := int(col.Decimal - intsz)
	if leftPad < 0 {
		leftPad = 0
	}
	out := strings.Repeat(" ", leftPad) + s
	rightPad := width - int(hooks.SLen(out))
	if rightPad < 0 {
		rightPad = 0
	}
	return out + strings.Repeat(" ", rightPad)
}

// splitNumeric returns the string width of the integer-part prefix
// (up to the last eligible decimal point, or the last digit if none),
// mirroring measureNumber's own prefix computation.
func splitNumeric(s string, decimal byte) (float64, float64, bool) {
	scan := s
	if idx := strings.Index(s, `\&`); idx >= 0 {
		scan = s[:idx]
	}
	lastDigit := -1
	for i := 0; i < len(scan); i++ {
		if scan[i] >= '0' && scan[i] <= '9' {
			lastDigit = i
		}
	}
	if lastDigit < 0 {
		return 0, 0, false
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
	return float64(len(intPart)), float64(len(s)), true
}

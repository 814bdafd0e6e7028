package tbl

// FontKind names a pushable terminal font, per the Bf/BOLD/ITALIC
// cell-flag contract.
type FontKind int

const (
	FontRegular FontKind = iota
	FontBold
	FontItalic
)

// TermHooks is the capability record T consumes to drive a terminal
// back-end (§6.3). T never inspects terminal internals beyond these
// calls.
type TermHooks interface {
	Advance(col int)
	Letter(ch rune)
	Word(s string)
	EndLine()
	SetCol(n int)
	FontPush(kind FontKind) FontKind // returns the previous font, for FontPopq
	FontPopq(prev FontKind)
	FlushLn()

	// Measurement.
	Len(n float64) float64      // width of n "basic units" in the current font
	SLen(s string) float64      // visual width of s in the current font
	SULen(su ScaledUnit) float64 // width of a parsed scaled unit
}

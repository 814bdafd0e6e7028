// Package tbl implements the two-pass table layout engine: column
// width/decimal-alignment solving and per-span terminal rendering,
// grounded on mandoc's out.c and tbl_term.c.
package tbl

import "math"

// Position is a span or cell's row/column discriminator.
type Position int

const (
	PosData Position = iota
	PosHoriz
	PosDHoriz
)

// CellPosition is a LayoutCell's column format.
type CellPosition int

const (
	CellHoriz CellPosition = iota
	CellDHoriz
	CellLong
	CellCentre
	CellLeft
	CellRight
	CellNumber
	CellDown
)

// DataPosition is a DataCell's own position, a superset mirroring the
// source's tbl_datp.
type DataPosition int

const (
	DataNone DataPosition = iota
	DataHoriz
	DataNHoriz
	DataDHoriz
	DataNDHoriz
	DataData
)

// Cell flag bits.
type CellFlag uint8

const (
	FlagEqual CellFlag = 1 << iota
	FlagWMax
	FlagWIgn
	FlagBold
	FlagItalic
)

// Option flag bits, carried on Options.
type OptFlag uint8

const (
	OptBox OptFlag = 1 << iota
	OptDBox
	OptCentre
)

// LayoutCell is the format spec for one column in one layout row.
type LayoutCell struct {
	Col      int
	Position CellPosition
	WidthSpec string // raw scaled-unit text, e.g. "2i"
	Width    float64 // cached pixel width; 0 until parsed
	Spacing  int
	VertRule int // vertical-rule count to the right
	Flags    CellFlag
}

// DataCell is the content of one column in one data row.
type DataCell struct {
	Position  DataPosition
	String    string
	Block     bool // true if this cell renders in fill/word-wrap mode
	HSpan     int  // number of additional columns this cell spans
	VSpan     int
	Layout    *LayoutCell
	Next      *DataCell
}

// Options is the table-wide configuration shared by every span.
type Options struct {
	Cols    int
	Decimal byte // decimal point character, default '.'
	Flags   OptFlag
	LVert   int
	RVert   int
}

// Span is one logical row: a data row or a horizontal rule.
type Span struct {
	Position Position
	Layout   []LayoutCell
	Data     *DataCell // head of the singly linked data-cell list
	Prev     *Span
	Next     *Span
	Opts     *Options
}

// SizeMaxSentinel marks a Column's Spacing as "not yet set", mirroring
// the source's SIZE_MAX sentinel.
const SizeMaxSentinel = math.MaxInt32

// Column is the per-column computed state accumulated across Pass 1
// and reconciled in Pass 2.
type Column struct {
	Width   float64
	NWidth  float64 // max numeric total width seen
	Decimal float64 // max integer-digit width seen
	Spacing int
	Flags   CellFlag
}

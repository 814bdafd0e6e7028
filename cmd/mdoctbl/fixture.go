package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mdocgo/mdocgo/internal/tbl"
)

// fixture is mdoctbl's stand-in for a real tbl request parser: a JSON
// literal describing the layout rows and data rows of one table.
type fixture struct {
	Offset  float64         `json:"offset"`
	RMargin float64         `json:"rmargin"`
	Cols    int             `json:"cols"`
	Decimal string          `json:"decimal"`
	Box     bool            `json:"box"`
	DBox    bool            `json:"dbox"`
	Centre  bool            `json:"centre"`
	LVert   int             `json:"lvert"`
	RVert   int             `json:"rvert"`
	Spans   []fixtureSpan   `json:"spans"`
}

type fixtureSpan struct {
	Position string            `json:"position"` // "data", "horiz", "dhoriz"
	Layout   []fixtureLayout   `json:"layout"`
	Data     []fixtureDataCell `json:"data"`
}

type fixtureLayout struct {
	Col       int    `json:"col"`
	Position  string `json:"position"` // "horiz","dhoriz","long","centre","left","right","number","down"
	WidthSpec string `json:"width_spec"`
	Spacing   int    `json:"spacing"`
	VertRule  int    `json:"vert_rule"`
	Equal     bool   `json:"equal"`
	WMax      bool   `json:"wmax"`
	Bold      bool   `json:"bold"`
	Italic    bool   `json:"italic"`
}

type fixtureDataCell struct {
	Col    int    `json:"col"`
	String string `json:"string"`
	Block  bool   `json:"block"`
	HSpan  int    `json:"hspan"`
	VSpan  int    `json:"vspan"`
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mdoctbl: read %s: %w", path, err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("mdoctbl: parse %s: %w", path, err)
	}
	return &fx, nil
}

var cellPositions = map[string]tbl.CellPosition{
	"horiz": tbl.CellHoriz, "dhoriz": tbl.CellDHoriz, "long": tbl.CellLong,
	"centre": tbl.CellCentre, "left": tbl.CellLeft, "right": tbl.CellRight,
	"number": tbl.CellNumber, "down": tbl.CellDown,
}

func buildOptions(fx *fixture) *tbl.Options {
	decimal := byte('.')
	if fx.Decimal != "" {
		decimal = fx.Decimal[0]
	}
	var flags tbl.OptFlag
	if fx.Box {
		flags |= tbl.OptBox
	}
	if fx.DBox {
		flags |= tbl.OptDBox
	}
	if fx.Centre {
		flags |= tbl.OptCentre
	}
	return &tbl.Options{Cols: fx.Cols, Decimal: decimal, Flags: flags, LVert: fx.LVert, RVert: fx.RVert}
}

func buildSpans(fx *fixture, opts *tbl.Options) ([]*tbl.Span, error) {
	spans := make([]*tbl.Span, len(fx.Spans))
	var prev *tbl.Span
	for i, fs := range fx.Spans {
		sp, err := buildSpan(fs, opts)
		if err != nil {
			return nil, err
		}
		sp.Prev = prev
		if prev != nil {
			prev.Next = sp
		}
		spans[i] = sp
		prev = sp
	}
	return spans, nil
}

func buildSpan(fs fixtureSpan, opts *tbl.Options) (*tbl.Span, error) {
	sp := &tbl.Span{Opts: opts}
	switch fs.Position {
	case "", "data":
		sp.Position = tbl.PosData
	case "horiz":
		sp.Position = tbl.PosHoriz
	case "dhoriz":
		sp.Position = tbl.PosDHoriz
	default:
		return nil, fmt.Errorf("mdoctbl: unknown span position %q", fs.Position)
	}

	layout := make([]tbl.LayoutCell, len(fs.Layout))
	for i, fl := range fs.Layout {
		pos, ok := cellPositions[fl.Position]
		if !ok {
			return nil, fmt.Errorf("mdoctbl: unknown layout cell position %q", fl.Position)
		}
		var flags tbl.CellFlag
		if fl.Equal {
			flags |= tbl.FlagEqual
		}
		if fl.WMax {
			flags |= tbl.FlagWMax
		}
		if fl.Bold {
			flags |= tbl.FlagBold
		}
		if fl.Italic {
			flags |= tbl.FlagItalic
		}
		layout[i] = tbl.LayoutCell{
			Col: fl.Col, Position: pos, WidthSpec: fl.WidthSpec,
			Spacing: fl.Spacing, VertRule: fl.VertRule, Flags: flags,
		}
	}
	sp.Layout = layout

	var head, tail *tbl.DataCell
	for _, fd := range fs.Data {
		dc := &tbl.DataCell{String: fd.String, Block: fd.Block, HSpan: fd.HSpan, VSpan: fd.VSpan}
		if fd.Col >= 0 && fd.Col < len(layout) {
			dc.Layout = &layout[fd.Col]
		}
		if head == nil {
			head = dc
		} else {
			tail.Next = dc
		}
		tail = dc
	}
	sp.Data = head
	return sp, nil
}

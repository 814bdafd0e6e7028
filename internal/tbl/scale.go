package tbl

import (
	"math"
	"strconv"
)

// Unit is a scaled-unit suffix, per §6.2.
type Unit byte

const (
	UnitNone Unit = 0
	UnitCM   Unit = 'c'
	UnitIn   Unit = 'i'
	UnitFrac Unit = 'f'
	UnitMM   Unit = 'M'
	UnitEm   Unit = 'm'
	UnitEn   Unit = 'n'
	UnitPica Unit = 'P'
	UnitPt   Unit = 'p'
	UnitBase Unit = 'u'
	UnitVert Unit = 'v'
)

// ScaleMax is the sentinel default unit: if passed as defaultUnit and
// the input carries no unit suffix, the parse fails.
const ScaleMax Unit = 0xff

// ScaledUnit is a parsed "number unit?" value (§6.2), grounded on
// a2roffsu in out.c.
type ScaledUnit struct {
	Value float64
	Unit  Unit
}

// ParseScaledUnit parses the scaled-unit grammar from the prefix of s:
// a floating point number followed by an optional one-byte unit
// suffix. If no unit suffix is present, defaultUnit is used; if
// defaultUnit is ScaleMax, the parse fails. It returns the parsed
// value, the number of bytes of s consumed, and whether parsing
// succeeded (false means no digits were consumed, matching the
// source's NONE sentinel).
func ParseScaledUnit(s string, defaultUnit Unit) (ScaledUnit, int, bool) {
	i := 0
	for i < len(s) && isNumberByte(s[i], i == 0) {
		i++
	}
	if i == 0 {
		return ScaledUnit{}, 0, false
	}
	val, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return ScaledUnit{}, 0, false
	}
	unit := defaultUnit
	consumed := i
	if i < len(s) && isUnitByte(s[i]) {
		unit = Unit(s[i])
		consumed++
	} else if defaultUnit == ScaleMax {
		return ScaledUnit{}, 0, false
	}
	return ScaledUnit{Value: val, Unit: unit}, consumed, true
}

func isNumberByte(b byte, first bool) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	if b == '.' {
		return true
	}
	if first && (b == '+' || b == '-') {
		return true
	}
	return false
}

func isUnitByte(b byte) bool {
	switch Unit(b) {
	case UnitCM, UnitIn, UnitFrac, UnitMM, UnitEm, UnitEn, UnitPica, UnitPt, UnitBase, UnitVert:
		return true
	}
	return false
}

// basePointsPerInch is the conventional 72 points/inch used to convert
// between physical and typographic units.
const basePointsPerInch = 72.0

// ToEN converts a ScaledUnit to a count of "en" units (SCALE_EN), the
// default unit used by T's column solver, at the given points-per-en
// font metric.
func (s ScaledUnit) ToEN(pointsPerEn float64) float64 {
	if pointsPerEn <= 0 {
		pointsPerEn = 6
	}
	var points float64
	switch s.Unit {
	case UnitIn:
		points = s.Value * basePointsPerInch
	case UnitCM:
		points = s.Value * basePointsPerInch / 2.54
	case UnitMM:
		points = s.Value * basePointsPerInch / 25.4
	case UnitPica:
		points = s.Value * basePointsPerInch / 6
	case UnitPt:
		points = s.Value
	case UnitEm:
		points = s.Value * pointsPerEn * 2
	case UnitEn, UnitBase, UnitVert, UnitFrac:
		return s.Value
	default:
		return s.Value
	}
	return math.Round(points / pointsPerEn)
}

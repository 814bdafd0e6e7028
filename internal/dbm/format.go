// Package dbm implements the read-only, memory-mapped search index
// reader (I), grounded on mandoc's dbm.c. The format is big-endian
// throughout; every multi-byte integer is explicitly byte-swapped on
// read regardless of host layout (§9 "Endianness").
package dbm

import (
	"encoding/binary"
	"errors"
)

// MacroMax is the number of indexed macro classes the macros table
// declares (§3.3's "the macro table's declared length equals
// MACRO_MAX"). Chosen to match the conventional count of indexed
// symbol classes (function names, types, defines, ...) in the source
// format this reader consumes.
const MacroMax = 36

// Header slot byte offsets (§3.3): the header is a sequence of 32-bit
// big-endian words; slot n lives at byte offset n*4.
const (
	slotMacros = 2 // holds the byte offset of the macros table
	slotPages  = 4 // holds npages directly, as a value (not an offset)
	slotPageBase = 5 // *this slot's own file position* is where the packed page records begin
)

const wordSize = 4
const pageRecordSize = 5 * wordSize // name, sect, arch, desc, file offsets

// ErrInvalidFile is returned by Open when any header invariant is
// violated (§4.3, §7 "INVALID_FILE").
var ErrInvalidFile = errors.New("dbm: invalid file")

func be32(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b))
}

// readWord reads the big-endian int32 at byte offset off, bounds
// checking against data's length first.
func readWord(data []byte, off int) (int32, bool) {
	if off < 0 || off+wordSize > len(data) {
		return 0, false
	}
	return be32(data[off : off+wordSize]), true
}

// cstring returns the NUL-terminated string starting at byte offset
// off, and the offset of the byte just past its terminator. Bounds
// checked against data's length.
func cstring(data []byte, off int) (string, int, bool) {
	if off < 0 || off > len(data) {
		return "", 0, false
	}
	end := off
	for end < len(data) && data[end] != 0 {
		end++
	}
	if end >= len(data) {
		return "", 0, false
	}
	return string(data[off:end]), end + 1, true
}

// macroTableEntry is one resolved row of the macros table: nvals and
// the byte offset of its first {value, pages} pair.
type macroTableEntry struct {
	nvals      int32
	entriesOff int
}

// byteAt returns the byte at off, or 0 if off is out of range — the
// traversal helpers below rely on this to fail closed (treat
// malformed data as end-of-block) rather than panicking, since only
// the header is validated at Open.
func byteAt(data []byte, off int) byte {
	if off < 0 || off >= len(data) {
		return 0
	}
	return data[off]
}

// strEnd returns the offset of the NUL terminating the string at off,
// or len(data) if none is found.
func strEnd(data []byte, off int) int {
	if off < 0 {
		return len(data)
	}
	i := off
	for i < len(data) && data[i] != 0 {
		i++
	}
	return i
}

// cstr returns the string at off without a found/ok flag, for the
// traversal code paths that already trust the offset came from a
// bounds-checked source.
func cstr(data []byte, off int) string {
	s, _, _ := cstring(data, off)
	return s
}

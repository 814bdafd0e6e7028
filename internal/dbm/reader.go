package dbm

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sys/unix"
)

// Page is a view onto one page record, with string pointers resolved
// into the mapping (§4.3 "page_get"). Arch is empty when the page
// declares no architecture.
type Page struct {
	Name string
	Sect string
	Arch string
	Desc string
	File string
}

// Reader is one open, memory-mapped (or buffer-loaded) index. It is
// immutable after Open except for its single implicit iteration
// cursor (§5); concurrent readers require separate Reader instances.
type Reader struct {
	data   []byte
	mapped bool // true if data is an mmap'd region requiring Munmap
	npages int32
	pages  int // byte offset of the packed page records
	macros [MacroMax]macroTableEntry

	iter      pageIter
	macroIter macroIterState

	id   uuid.UUID
	path string
}

// Open memory-maps path read-only and validates its header once,
// per §4.3's failure semantics: after Open succeeds, every other
// Reader method is infallible. On platforms where mmap is unavailable,
// Open falls back to loading the whole file into an owned buffer; the
// exported API is identical either way (§9 "Memory mapping").
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dbm: open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("dbm: stat %s: %w", path, err)
	}
	size := int(st.Size())

	data, mapped, err := mapOrLoad(f, size)
	if err != nil {
		return nil, fmt.Errorf("dbm: map %s: %w", path, err)
	}

	r := &Reader{data: data, mapped: mapped, id: uuid.New(), path: path}
	if err := r.validate(); err != nil {
		r.unmap()
		return nil, err
	}

	log.Printf("dbm: opened %s (instance %s): %d pages, %s mapped",
		path, r.id, r.npages, humanize.Bytes(uint64(size)))
	return r, nil
}

func mapOrLoad(f *os.File, size int) ([]byte, bool, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return data, true, nil
	}
	buf, rerr := os.ReadFile(f.Name())
	if rerr != nil {
		return nil, false, rerr
	}
	return buf, false, nil
}

// validate implements dbm_open's header checks: npages >= 0, the
// macros table's declared length equals MacroMax, and every offset
// touched during validation resolves into the mapping.
func (r *Reader) validate() error {
	npagesWord, ok := readWord(r.data, slotPages*wordSize)
	if !ok || npagesWord < 0 {
		return ErrInvalidFile
	}
	r.npages = npagesWord
	r.pages = slotPageBase * wordSize

	if need := r.pages + int(r.npages)*pageRecordSize; need > len(r.data) {
		return ErrInvalidFile
	}

	macrosOffWord, ok := readWord(r.data, slotMacros*wordSize)
	if !ok {
		return ErrInvalidFile
	}
	declared, ok := readWord(r.data, int(macrosOffWord))
	if !ok || declared != MacroMax {
		return ErrInvalidFile
	}

	cursor := int(macrosOffWord) + wordSize
	for im := 0; im < MacroMax; im++ {
		entryOffWord, ok := readWord(r.data, cursor)
		if !ok {
			return ErrInvalidFile
		}
		cursor += wordSize

		nvals, ok := readWord(r.data, int(entryOffWord))
		if !ok || nvals < 0 {
			return ErrInvalidFile
		}
		entriesOff := int(entryOffWord) + wordSize
		if need := entriesOff + int(nvals)*2*wordSize; need > len(r.data) {
			return ErrInvalidFile
		}
		r.macros[im] = macroTableEntry{nvals: nvals, entriesOff: entriesOff}
	}
	return nil
}

// Close unmaps (or releases) the reader's backing storage.
func (r *Reader) Close() error {
	log.Printf("dbm: closing %s (instance %s)", r.path, r.id)
	return r.unmap()
}

func (r *Reader) unmap() error {
	if r.mapped && r.data != nil {
		err := unix.Munmap(r.data)
		r.data = nil
		return err
	}
	r.data = nil
	return nil
}

// PageCount returns npages.
func (r *Reader) PageCount() int32 { return r.npages }

func (r *Reader) pageRecordOffset(ip int32) int {
	return r.pages + int(ip)*pageRecordSize
}

// PageGet returns the resolved view of page ip. ip must satisfy
// 0 <= ip < PageCount(); violating this is a programming error.
func (r *Reader) PageGet(ip int32) Page {
	if ip < 0 || ip >= r.npages {
		panic("dbm: page index out of range")
	}
	off := r.pageRecordOffset(ip)
	nameOff, _ := readWord(r.data, off)
	sectOff, _ := readWord(r.data, off+wordSize)
	archOff, _ := readWord(r.data, off+2*wordSize)
	descOff, _ := readWord(r.data, off+3*wordSize)
	fileOff, _ := readWord(r.data, off+4*wordSize)

	p := Page{}
	p.Name, _, _ = cstring(r.data, int(nameOff)+1) // +1: skip the leading quality byte
	p.Sect, _, _ = cstring(r.data, int(sectOff))
	if archOff != 0 {
		p.Arch, _, _ = cstring(r.data, int(archOff))
	}
	p.Desc, _, _ = cstring(r.data, int(descOff))
	p.File, _, _ = cstring(r.data, int(fileOff))
	return p
}

// Fingerprint hashes the mapped bytes with blake2b, for callers that
// want to checksum the index before trusting it across process
// restarts (supplementary to the I contract, which never mandates
// integrity checking).
func (r *Reader) Fingerprint() ([]byte, error) {
	sum := blake2b.Sum256(r.data)
	return sum[:], nil
}

// InstanceID returns the uuid tagged to this Reader at Open, used to
// distinguish concurrent readers in logs (§5).
func (r *Reader) InstanceID() uuid.UUID { return r.id }

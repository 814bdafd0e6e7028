package main

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdocgo/mdocgo/internal/search"
)

// buildIndex writes a single-page index (name "foo", section "1", no
// arch, description "frobnicate a widget") for exercising Search's
// field-precedence dispatch against a real pool entry.
func buildIndex(t *testing.T) string {
	t.Helper()
	const (
		wordSize       = 4
		slotMacros     = 2
		slotPages      = 4
		slotPageBase   = 5
		macroMax       = 36
		pageRecordSize = 5 * wordSize
	)
	headerSize := slotPageBase * wordSize
	macrosStart := headerSize + pageRecordSize

	buf := make([]byte, macrosStart)
	put := func(off int, v int32) { binary.BigEndian.PutUint32(buf[off:off+4], uint32(v)) }
	put(slotPages*wordSize, 1)
	put(slotMacros*wordSize, int32(macrosStart))

	buf = append(buf, make([]byte, wordSize)...)
	binary.BigEndian.PutUint32(buf[macrosStart:macrosStart+4], uint32(macroMax))
	entryListStart := macrosStart + wordSize
	buf = append(buf, make([]byte, macroMax*wordSize)...)
	sharedNvalsOff := int32(entryListStart + macroMax*wordSize)
	for i := 0; i < macroMax; i++ {
		off := entryListStart + i*wordSize
		binary.BigEndian.PutUint32(buf[off:off+4], uint32(sharedNvalsOff))
	}
	buf = append(buf, make([]byte, wordSize)...)

	nameOff := int32(len(buf))
	buf = append(buf, 1, 'f', 'o', 'o', 0, 0)
	sectOff := int32(len(buf))
	buf = append(buf, '1', 0)
	descOff := int32(len(buf))
	buf = append(buf, []byte("frobnicate a widget")...)
	buf = append(buf, 0)
	fileOff := int32(len(buf))
	buf = append(buf, []byte("foo.1")...)
	buf = append(buf, 0)

	recOff := headerSize
	putWord := func(off int, v int32) { binary.BigEndian.PutUint32(buf[off:off+4], uint32(v)) }
	putWord(recOff, nameOff)
	putWord(recOff+wordSize, sectOff)
	putWord(recOff+2*wordSize, 0)
	putWord(recOff+3*wordSize, descOff)
	putWord(recOff+4*wordSize, fileOff)

	path := filepath.Join(t.TempDir(), "idx.db")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestServer(t *testing.T) *server {
	t.Helper()
	pool, err := search.NewReaderPool("@every 1h")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)
	if err := pool.Add("default", buildIndex(t)); err != nil {
		t.Fatal(err)
	}
	return &server{pool: pool}
}

func TestSearchUnknownDB(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.Search(context.Background(), &searchRequest{DB: "nope", Name: "foo"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == "" {
		t.Fatal("expected an error message for an unknown db")
	}
}

func TestSearchNoFieldGiven(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.Search(context.Background(), &searchRequest{DB: "default"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == "" {
		t.Fatal("expected an error message when no field is set")
	}
}

func TestSearchByName(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.Search(context.Background(), &searchRequest{DB: "default", Name: "foo"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Pages) != 1 || resp.Pages[0].Name != "foo" {
		t.Fatalf("Search(Name=foo) = %+v", resp)
	}
}

func TestSearchByDesc(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.Search(context.Background(), &searchRequest{DB: "default", Desc: "frobnicate a widget"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Pages) != 1 || resp.Pages[0].Desc != "frobnicate a widget" {
		t.Fatalf("Search(Desc=...) = %+v", resp)
	}
}

func TestSearchFieldPrecedenceNameBeforeDesc(t *testing.T) {
	s := newTestServer(t)
	// Name is set to a non-matching value but takes precedence over Desc.
	resp, err := s.Search(context.Background(), &searchRequest{DB: "default", Name: "bar", Desc: "frobnicate a widget"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Pages) != 0 {
		t.Fatalf("Search should have dispatched on Name (no match), got %+v", resp)
	}
}

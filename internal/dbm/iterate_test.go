package dbm

import "testing"

// buildArchFixture builds a three-page index where pages 0 and 2 each
// carry their own independent architecture list (both "amd64") and
// page 1 carries none, exercising page_byarch's archOff==0 skip and
// its self-contained per-page list (no cross-page contiguity, unlike
// NAME/SECT/DESC).
func buildArchFixture(t *testing.T) []byte {
	t.Helper()
	const (
		headerSize  = slotPageBase * wordSize
		nrecords    = 3
		recordsSize = nrecords * pageRecordSize
	)
	recordsStart := headerSize
	macrosStart := recordsStart + recordsSize

	buf := make([]byte, macrosStart)
	putWord(buf, slotPages*wordSize, int32(nrecords))
	putWord(buf, slotMacros*wordSize, int32(macrosStart))

	buf = append(buf, make([]byte, wordSize)...)
	putWord(buf, macrosStart, MacroMax)
	entryArrayStart := macrosStart + wordSize
	buf = append(buf, make([]byte, MacroMax*wordSize)...)
	sharedNvalsOff := int32(len(buf))
	buf = append(buf, make([]byte, wordSize)...)
	for im := 0; im < MacroMax; im++ {
		putWord(buf, entryArrayStart+im*wordSize, sharedNvalsOff)
	}

	archAOff := int32(len(buf))
	buf = append(buf, 'a', 'm', 'd', '6', '4', 0, 0)
	archCOff := int32(len(buf))
	buf = append(buf, 'a', 'm', 'd', '6', '4', 0, 0)

	nameOff := int32(len(buf))
	buf = append(buf, 1, 'x', 0, 0)
	sectOff := int32(len(buf))
	buf = append(buf, '1', 0, 0)
	descOff := int32(len(buf))
	buf = append(buf, 'd', 0)
	fileOff := int32(len(buf))
	buf = append(buf, 'f', 0)

	putPageRecord(buf, recordsStart+0*pageRecordSize, nameOff, sectOff, archAOff, descOff, fileOff)
	putPageRecord(buf, recordsStart+1*pageRecordSize, nameOff, sectOff, 0, descOff, fileOff)
	putPageRecord(buf, recordsStart+2*pageRecordSize, nameOff, sectOff, archCOff, descOff, fileOff)

	return buf
}

func TestPageByArchSkipsPagesWithoutArch(t *testing.T) {
	r := openTestIndex(t, buildArchFixture(t))
	r.PageByArch(MatchFunc(func(c string) bool { return c == "amd64" }))

	hit := r.PageNext()
	if hit.Page != 0 {
		t.Fatalf("first hit = %+v, want page 0", hit)
	}
	hit = r.PageNext()
	if hit.Page != 2 {
		t.Fatalf("second hit = %+v, want page 2 (page 1 has no arch)", hit)
	}
	if hit := r.PageNext(); hit.Page != -1 {
		t.Fatalf("third hit = %+v, want sentinel", hit)
	}
}

// buildSectFixture lays out a contiguous SECT blob across three pages
// ("1", "3", "1"), each terminated by the same double-NUL page marker
// NAME iteration uses — page_bytitle's SECT branch shares that decoder.
func buildSectFixture(t *testing.T) []byte {
	t.Helper()
	const (
		headerSize  = slotPageBase * wordSize
		nrecords    = 3
		recordsSize = nrecords * pageRecordSize
	)
	recordsStart := headerSize
	macrosStart := recordsStart + recordsSize

	buf := make([]byte, macrosStart)
	putWord(buf, slotPages*wordSize, int32(nrecords))
	putWord(buf, slotMacros*wordSize, int32(macrosStart))

	buf = append(buf, make([]byte, wordSize)...)
	putWord(buf, macrosStart, MacroMax)
	entryArrayStart := macrosStart + wordSize
	buf = append(buf, make([]byte, MacroMax*wordSize)...)
	sharedNvalsOff := int32(len(buf))
	buf = append(buf, make([]byte, wordSize)...)
	for im := 0; im < MacroMax; im++ {
		putWord(buf, entryArrayStart+im*wordSize, sharedNvalsOff)
	}

	page0SectOff := int32(len(buf))
	buf = append(buf, '1', 0, 0)
	page1SectOff := int32(len(buf))
	buf = append(buf, '3', 0, 0)
	page2SectOff := int32(len(buf))
	buf = append(buf, '1', 0, 0)

	nameOff := int32(len(buf))
	buf = append(buf, 1, 'x', 0, 0)
	descOff := int32(len(buf))
	buf = append(buf, 'd', 0)
	fileOff := int32(len(buf))
	buf = append(buf, 'f', 0)

	putPageRecord(buf, recordsStart+0*pageRecordSize, nameOff, page0SectOff, 0, descOff, fileOff)
	putPageRecord(buf, recordsStart+1*pageRecordSize, nameOff, page1SectOff, 0, descOff, fileOff)
	putPageRecord(buf, recordsStart+2*pageRecordSize, nameOff, page2SectOff, 0, descOff, fileOff)

	return buf
}

func TestPageBySectSkipsNonMatchingPages(t *testing.T) {
	r := openTestIndex(t, buildSectFixture(t))
	r.PageBySect(MatchFunc(func(c string) bool { return c == "1" }))

	hit := r.PageNext()
	if hit.Page != 0 {
		t.Fatalf("first hit = %+v, want page 0", hit)
	}
	hit = r.PageNext()
	if hit.Page != 2 {
		t.Fatalf("second hit = %+v, want page 2 (page 1 is section 3)", hit)
	}
	if hit := r.PageNext(); hit.Page != -1 {
		t.Fatalf("third hit = %+v, want sentinel", hit)
	}
}

// buildDescFixture lays out a contiguous DESC blob across three pages
// ("alpha", "beta", "alpha"): page_bytitle's DESC branch never
// re-reads the next page's own offset word, so descriptions must be
// packed back-to-back in record order for iteration to track pages
// correctly.
func buildDescFixture(t *testing.T) []byte {
	t.Helper()
	const (
		headerSize  = slotPageBase * wordSize
		nrecords    = 3
		recordsSize = nrecords * pageRecordSize
	)
	recordsStart := headerSize
	macrosStart := recordsStart + recordsSize

	buf := make([]byte, macrosStart)
	putWord(buf, slotPages*wordSize, int32(nrecords))
	putWord(buf, slotMacros*wordSize, int32(macrosStart))

	buf = append(buf, make([]byte, wordSize)...)
	putWord(buf, macrosStart, MacroMax)
	entryArrayStart := macrosStart + wordSize
	buf = append(buf, make([]byte, MacroMax*wordSize)...)
	sharedNvalsOff := int32(len(buf))
	buf = append(buf, make([]byte, wordSize)...)
	for im := 0; im < MacroMax; im++ {
		putWord(buf, entryArrayStart+im*wordSize, sharedNvalsOff)
	}

	page0DescOff := int32(len(buf))
	buf = append(buf, []byte("alpha\x00")...)
	page1DescOff := int32(len(buf))
	buf = append(buf, []byte("beta\x00")...)
	page2DescOff := int32(len(buf))
	buf = append(buf, []byte("alpha\x00")...)

	nameOff := int32(len(buf))
	buf = append(buf, 1, 'x', 0, 0)
	sectOff := int32(len(buf))
	buf = append(buf, '1', 0, 0)
	fileOff := int32(len(buf))
	buf = append(buf, 'f', 0)

	putPageRecord(buf, recordsStart+0*pageRecordSize, nameOff, sectOff, 0, page0DescOff, fileOff)
	putPageRecord(buf, recordsStart+1*pageRecordSize, nameOff, sectOff, 0, page1DescOff, fileOff)
	putPageRecord(buf, recordsStart+2*pageRecordSize, nameOff, sectOff, 0, page2DescOff, fileOff)

	return buf
}

func TestPageByDescSkipsNonMatchingPages(t *testing.T) {
	r := openTestIndex(t, buildDescFixture(t))
	r.PageByDesc(MatchFunc(func(c string) bool { return c == "alpha" }))

	hit := r.PageNext()
	if hit.Page != 0 {
		t.Fatalf("first hit = %+v, want page 0", hit)
	}
	hit = r.PageNext()
	if hit.Page != 2 {
		t.Fatalf(`second hit = %+v, want page 2 (page 1 describes "beta")`, hit)
	}
	if hit := r.PageNext(); hit.Page != -1 {
		t.Fatalf("third hit = %+v, want sentinel", hit)
	}
}

// buildMacroFixture builds a two-page index with one populated macro
// class (index 0): value "foo" references page A only, value "bar"
// references both A and B. PageByMacro's value scan and
// MacroByPage/MacroNext's pages-list scan both assume their respective
// areas are packed contiguously in value-index order, matching
// page_bymacro/macro_bypage in the source.
func buildMacroFixture(t *testing.T) (data []byte, pageA, pageB int32) {
	t.Helper()
	const (
		headerSize  = slotPageBase * wordSize
		nrecords    = 2
		recordsSize = nrecords * pageRecordSize
	)
	recordsStart := headerSize
	macrosStart := recordsStart + recordsSize

	buf := make([]byte, macrosStart)
	putWord(buf, slotPages*wordSize, int32(nrecords))
	putWord(buf, slotMacros*wordSize, int32(macrosStart))

	buf = append(buf, make([]byte, wordSize)...)
	putWord(buf, macrosStart, MacroMax)
	entryArrayStart := macrosStart + wordSize
	buf = append(buf, make([]byte, MacroMax*wordSize)...)

	macro0HeaderOff := int32(len(buf))
	buf = append(buf, make([]byte, wordSize+2*2*wordSize)...)
	putWord(buf, int(macro0HeaderOff), 2) // nvals=2
	macro0EntriesOff := macro0HeaderOff + wordSize

	sharedNvalsOff := int32(len(buf))
	buf = append(buf, make([]byte, wordSize)...) // nvals=0, shared by every unused class

	for im := 0; im < MacroMax; im++ {
		off := sharedNvalsOff
		if im == 0 {
			off = macro0HeaderOff
		}
		putWord(buf, entryArrayStart+im*wordSize, off)
	}

	valueAreaOff := int32(len(buf))
	buf = append(buf, []byte("foo\x00bar\x00")...)
	fooOff := valueAreaOff
	barOff := valueAreaOff + int32(len("foo\x00"))

	pageARecOff := int32(recordsStart + 0*pageRecordSize)
	pageBRecOff := int32(recordsStart + 1*pageRecordSize)

	fooPagesOff := int32(len(buf))
	buf = append(buf, make([]byte, 2*wordSize)...)
	putWord(buf, int(fooPagesOff), pageARecOff)
	putWord(buf, int(fooPagesOff)+wordSize, 0)

	barPagesOff := int32(len(buf))
	buf = append(buf, make([]byte, 3*wordSize)...)
	putWord(buf, int(barPagesOff), pageARecOff)
	putWord(buf, int(barPagesOff)+wordSize, pageBRecOff)
	putWord(buf, int(barPagesOff)+2*wordSize, 0)

	putWord(buf, int(macro0EntriesOff), fooOff)
	putWord(buf, int(macro0EntriesOff)+wordSize, fooPagesOff)
	putWord(buf, int(macro0EntriesOff)+2*wordSize, barOff)
	putWord(buf, int(macro0EntriesOff)+3*wordSize, barPagesOff)

	nameOff := int32(len(buf))
	buf = append(buf, 1, 'x', 0, 0)
	sectOff := int32(len(buf))
	buf = append(buf, '1', 0, 0)
	descOff := int32(len(buf))
	buf = append(buf, 'd', 0)
	fileOff := int32(len(buf))
	buf = append(buf, 'f', 0)

	putPageRecord(buf, recordsStart+0*pageRecordSize, nameOff, sectOff, 0, descOff, fileOff)
	putPageRecord(buf, recordsStart+1*pageRecordSize, nameOff, sectOff, 0, descOff, fileOff)

	return buf, 0, 1
}

func TestPageByMacroWalksPagesList(t *testing.T) {
	data, pageA, pageB := buildMacroFixture(t)
	r := openTestIndex(t, data)

	r.PageByMacro(0, MatchFunc(func(c string) bool { return c == "bar" }))
	hit := r.PageNext()
	if hit.Page != pageA {
		t.Fatalf("first hit = %+v, want page %d", hit, pageA)
	}
	hit = r.PageNext()
	if hit.Page != pageB {
		t.Fatalf("second hit = %+v, want page %d", hit, pageB)
	}
	if hit := r.PageNext(); hit.Page != -1 {
		t.Fatalf("third hit = %+v, want sentinel", hit)
	}
}

func TestMacroByPageEnumeratesValuesOnPage(t *testing.T) {
	data, pageA, _ := buildMacroFixture(t)
	r := openTestIndex(t, data)

	r.MacroByPage(0, pageA)

	v, ok := r.MacroNext()
	if !ok || v != "foo" {
		t.Fatalf(`first value = (%q,%v), want ("foo",true)`, v, ok)
	}
	v, ok = r.MacroNext()
	if !ok || v != "bar" {
		t.Fatalf(`second value = (%q,%v), want ("bar",true)`, v, ok)
	}
	if v, ok := r.MacroNext(); ok {
		t.Fatalf("third call = (%q,%v), want exhausted", v, ok)
	}
}

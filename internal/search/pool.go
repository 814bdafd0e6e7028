// Package search provides a small ReaderPool wrapping internal/dbm
// with cron-scheduled staleness checks, giving the index reader a
// realistic deployment shape (multiple named databases, periodic
// reopen) without touching its single-threaded-per-instance contract.
package search

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"

	"github.com/mdocgo/mdocgo/internal/dbm"
)

// ReaderPool keeps a set of named *dbm.Reader instances, reopening
// one whenever its backing file's mtime changes. It never mutates a
// live *dbm.Reader in place — always close-then-replace — preserving
// dbm's "immutable after open" invariant.
type ReaderPool struct {
	mu      sync.RWMutex
	entries map[string]*poolEntry
	cron    *cron.Cron
}

type poolEntry struct {
	path   string
	reader *dbm.Reader
	mtime  time.Time
	reopen func(func())
}

// NewReaderPool returns an empty pool with a cron scheduler running a
// staleness check on the given spec (e.g. "@every 30s").
func NewReaderPool(pollSpec string) (*ReaderPool, error) {
	p := &ReaderPool{
		entries: make(map[string]*poolEntry),
		cron:    cron.New(),
	}
	if pollSpec == "" {
		pollSpec = "@every 30s"
	}
	if _, err := p.cron.AddFunc(pollSpec, p.checkAll); err != nil {
		return nil, fmt.Errorf("search: schedule poll: %w", err)
	}
	p.cron.Start()
	return p, nil
}

// Add opens path and adds it to the pool under name.
func (p *ReaderPool) Add(name, path string) error {
	r, err := dbm.Open(path)
	if err != nil {
		return fmt.Errorf("search: add %s: %w", name, err)
	}
	st, _ := os.Stat(path)

	p.mu.Lock()
	defer p.mu.Unlock()
	e := &poolEntry{path: path, reader: r}
	if st != nil {
		e.mtime = st.ModTime()
	}
	e.reopen = debounce.New(2 * time.Second)
	p.entries[name] = e
	return nil
}

// Get returns the currently open reader for name, or nil if absent.
func (p *ReaderPool) Get(name string) *dbm.Reader {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[name]
	if !ok {
		return nil
	}
	return e.reader
}

// Names lists every database name currently in the pool.
func (p *ReaderPool) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.entries))
	for n := range p.entries {
		names = append(names, n)
	}
	return names
}

// checkAll runs on the cron schedule: for every entry whose file mtime
// advanced, debounce a reopen so a burst of writes (e.g. makewhatis
// re-running) does not thrash the mapping.
func (p *ReaderPool) checkAll() {
	p.mu.RLock()
	names := make([]string, 0, len(p.entries))
	for n := range p.entries {
		names = append(names, n)
	}
	p.mu.RUnlock()

	for _, name := range names {
		p.checkOne(name)
	}
}

func (p *ReaderPool) checkOne(name string) {
	p.mu.RLock()
	e, ok := p.entries[name]
	p.mu.RUnlock()
	if !ok {
		return
	}
	st, err := os.Stat(e.path)
	if err != nil {
		log.Printf("search: stat %s: %v", e.path, err)
		return
	}
	if !st.ModTime().After(e.mtime) {
		return
	}
	e.reopen(func() { p.reopen(name) })
}

func (p *ReaderPool) reopen(name string) {
	p.mu.Lock()
	e, ok := p.entries[name]
	if !ok {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	st, err := os.Stat(e.path)
	if err != nil {
		log.Printf("search: reopen %s: stat: %v", name, err)
		return
	}
	next, err := dbm.Open(e.path)
	if err != nil {
		log.Printf("search: reopen %s: %v", name, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	old := e.reader
	e.reader = next
	e.mtime = st.ModTime()
	if old != nil {
		old.Close()
	}
	log.Printf("search: reopened %s (%s)", name, humanize.Time(st.ModTime()))
}

// Close stops the scheduler and closes every reader in the pool.
func (p *ReaderPool) Close() {
	p.cron.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, e := range p.entries {
		if e.reader != nil {
			e.reader.Close()
		}
		delete(p.entries, name)
	}
}

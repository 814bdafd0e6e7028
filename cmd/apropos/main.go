// Command apropos (and, via its argv[0], whatis) searches one or more
// search-index files for pages matching keyword terms, grounded on
// apropos.c's main/list/cmp structure. The real boolean-expression
// grammar (AND/OR/NOT over field:term clauses) is out of scope (§1
// Non-goals "the actual parser"); every positional term is matched
// literally, case-sensitively, against the description field in
// apropos mode or the name field in whatis mode.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdocgo/mdocgo/internal/dbm"
)

type result struct {
	title, section, arch, desc string
}

func main() {
	whatis := strings.HasPrefix(filepath.Base(os.Args[0]), "whatis")

	fs := flag.NewFlagSet(progname(), flag.ExitOnError)
	fs.Usage = usage(fs)
	defPaths := fs.String("M", "", "default search-index paths, colon-separated")
	auxPaths := fs.String("m", "", "auxiliary search-index paths, prepended")
	arch := fs.String("S", "", "restrict results to this architecture")
	section := fs.String("s", "", "restrict results to this section")
	fs.Parse(os.Args[1:])

	terms := fs.Args()
	if len(terms) == 0 {
		os.Exit(0)
	}

	paths := manpaths(*defPaths, *auxPaths)
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "%s: no search index paths configured\n", progname())
		os.Exit(1)
	}

	results, err := search(paths, terms, *arch, *section, whatis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname(), err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "%s: nothing appropriate\n", progname())
		return
	}
	list(results)
}

func progname() string {
	return filepath.Base(os.Args[0])
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), "usage: %s [-M defpaths] [-m auxpaths] [-S arch] [-s section] terms...\n", progname())
	}
}

// manpaths implements manpath_parse's precedence (auxiliary paths take
// priority, then the default list), without the environment/config
// discovery manpath(1) performs — callers supply paths explicitly.
func manpaths(defPaths, auxPaths string) []string {
	var out []string
	if auxPaths != "" {
		out = append(out, strings.Split(auxPaths, ":")...)
	}
	if defPaths != "" {
		out = append(out, strings.Split(defPaths, ":")...)
	}
	return out
}

// search opens each index path and scans it for description (apropos
// mode) or name (whatis mode) matches among terms, applying the -S/-s
// restrictions as a post-filter, matching apropos_search's result
// shape.
func search(paths, terms []string, arch, section string, whatis bool) ([]result, error) {
	var out []result
	for _, path := range paths {
		r, err := dbm.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		out = append(out, searchOne(r, terms, arch, section, whatis)...)
		r.Close()
	}
	return out, nil
}

func searchOne(r *dbm.Reader, terms []string, arch, section string, whatis bool) []result {
	seen := make(map[int32]bool)
	var out []result
	for _, term := range terms {
		match := dbm.MatchFunc(func(candidate string) bool { return candidate == term })
		if whatis {
			r.PageByName(match)
		} else {
			r.PageByDesc(match)
		}
		for {
			hit := r.PageNext()
			if hit.Page < 0 {
				break
			}
			if seen[hit.Page] {
				continue
			}
			p := r.PageGet(hit.Page)
			if arch != "" && p.Arch != arch {
				continue
			}
			if section != "" && p.Sect != section {
				continue
			}
			seen[hit.Page] = true
			out = append(out, result{title: p.Name, section: p.Sect, arch: p.Arch, desc: p.Desc})
		}
	}
	return out
}

// list prints results sorted by title, matching list()/cmp() in the
// source (sort.Slice standing in for qsort).
func list(results []result) {
	sort.Slice(results, func(i, j int) bool { return results[i].title < results[j].title })
	for _, r := range results {
		if r.arch != "" {
			fmt.Printf("%s(%s/%s) - %s\n", r.title, r.section, r.arch, r.desc)
		} else {
			fmt.Printf("%s(%s) - %s\n", r.title, r.section, r.desc)
		}
	}
}

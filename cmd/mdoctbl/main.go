// Command mdoctbl renders a JSON table-span fixture to the terminal
// using internal/tbl's column solver and internal/term's ANSI backend.
// Parsing real tbl request syntax is out of scope; the fixture format
// is mdoctbl's stand-in for that parser's output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mdocgo/mdocgo/internal/tbl"
	"github.com/mdocgo/mdocgo/internal/term"
)

func main() {
	fs := flag.NewFlagSet("mdoctbl", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: mdoctbl TABLE.json\n")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	if err := run(fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "mdoctbl: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	fx, err := loadFixture(path)
	if err != nil {
		return err
	}
	opts := buildOptions(fx)
	spans, err := buildSpans(fx, opts)
	if err != nil {
		return err
	}

	backend := term.NewStdout()
	defer backend.Close()

	tbl.Render(spans, opts, backend, fx.Offset, fx.RMargin)
	return nil
}

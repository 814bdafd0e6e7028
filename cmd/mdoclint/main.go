// Command mdoclint validates a JSON macro-tree fixture against the
// semantic rules in internal/mdoc, printing one line per diagnostic.
// Building the real macro tree from manual-page source is out of
// scope; the fixture format is mdoclint's stand-in for that parser's
// output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mdocgo/mdocgo/internal/diagconfig"
	"github.com/mdocgo/mdocgo/internal/mdoc"
	"github.com/mdocgo/mdocgo/internal/mdocfixture"
)

func main() {
	fs := flag.NewFlagSet("mdoclint", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: mdoclint [-policy FILE] TREE.json\n")
		fs.PrintDefaults()
	}
	policyPath := fs.String("policy", "", "YAML file promoting WARN diagnostics to ERR")
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	clean, err := run(fs.Arg(0), *policyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdoclint: %v\n", err)
		os.Exit(1)
	}
	if !clean {
		os.Exit(1)
	}
}

// run loads and validates the fixture at fixturePath, printing every
// diagnostic, and reports whether the document is clean (no ERR
// diagnostic and no validator abort).
func run(fixturePath, policyPath string) (bool, error) {
	fx, err := mdocfixture.Load(fixturePath)
	if err != nil {
		return false, err
	}
	tree, err := fx.Build()
	if err != nil {
		return false, err
	}

	sink := defaultSink(policyPath)
	v := mdoc.NewValidator(tree, sink)
	v.ManSection = fx.ManSection
	walked := v.Walk(tree.Root)

	for _, d := range sink.Diagnostics {
		printDiagnostic(d)
	}
	return walked && !hasErr(sink.Diagnostics), nil
}

func defaultSink(policyPath string) *mdoc.DefaultSink {
	if policyPath == "" {
		return &mdoc.DefaultSink{}
	}
	pol, err := diagconfig.Load(policyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdoclint: %v\n", err)
		return &mdoc.DefaultSink{}
	}
	return pol.NewSink()
}

func hasErr(diags []mdoc.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == mdoc.SevErr {
			return true
		}
	}
	return false
}

func printDiagnostic(d mdoc.Diagnostic) {
	level := "WARN"
	if d.Severity == mdoc.SevErr {
		level = "ERR"
	}
	switch {
	case d.Line != 0 || d.Col != 0:
		fmt.Printf("%s: %d:%d: %s\n", level, d.Line, d.Col, d.Message)
	case d.Node != 0:
		fmt.Printf("%s: node %d: %s\n", level, d.Node, d.Message)
	default:
		fmt.Printf("%s: %s\n", level, d.Message)
	}
}

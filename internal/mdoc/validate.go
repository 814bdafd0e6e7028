package mdoc

import "strings"

// Validator drives the pre/post rule tables over a Tree, matching
// mdoc_valid_pre/mdoc_valid_post in validate.c. It is re-entrant across
// documents (one Validator per Tree) but not across threads on the
// same document (§5).
type Validator struct {
	Tree *Tree
	Sink Sink

	// ManSection is the manual page's section number (1-9), used by
	// the section-membership rules (Er/Cd/Rv/Ex). The external parser
	// is expected to set this from the Dt macro's second argument
	// before validating the body.
	ManSection int

	last NodeID // most recently post-validated node, per §3.1's "last"
}

// NewValidator returns a Validator for tree reporting through sink.
func NewValidator(tree *Tree, sink Sink) *Validator {
	return &Validator{Tree: tree, Sink: sink}
}

// Pre runs id's pre-rule list, short-circuiting on the first failure.
// Called after arguments are parsed but before children are visited.
func (v *Validator) Pre(id NodeID) bool {
	node := v.Tree.Node(id)
	rs, ok := rulesByToken[node.Token]
	if !ok {
		return true
	}
	for _, r := range rs.pre {
		if !r(v, id) {
			return false
		}
	}
	return true
}

// Post runs id's post-rule list. Idempotent: a second call on an
// already-VALID node is a no-op that returns true.
func (v *Validator) Post(id NodeID) bool {
	node := v.Tree.Node(id)
	if node.Valid() {
		return true
	}
	ok := true
	if rs, found := rulesByToken[node.Token]; found {
		for _, r := range rs.post {
			if !r(v, id) {
				ok = false
				break
			}
		}
	}
	node.SetValid()
	v.last = id
	return ok
}

// Walk performs a full pre/post traversal of tree starting at root,
// for callers (tests, cmd/mdoclint) that already hold a complete tree
// rather than validating incrementally as a parser builds one. It
// returns false as soon as an ERR-severity rule aborts the walk.
func (v *Validator) Walk(id NodeID) bool {
	if !v.Pre(id) {
		return false
	}
	for c := v.Tree.Node(id).Child; c != 0; c = v.Tree.Node(c).Next {
		if !v.Walk(c) {
			return false
		}
	}
	return v.Post(id)
}

// sectionName maps a section heading's literal text to its enumerated
// SecKind; unrecognized text is SecCustom.
var sectionName = map[string]SecKind{
	"NAME":             SecName,
	"LIBRARY":          SecLibrary,
	"SYNOPSIS":         SecSynopsis,
	"DESCRIPTION":      SecDescription,
	"CONTEXT":          SecContext,
	"RETURN VALUES":    SecReturnValues,
	"ENVIRONMENT":      SecEnvironment,
	"FILES":            SecFiles,
	"EXIT STATUS":      SecExitStatus,
	"EXAMPLES":         SecExamples,
	"DIAGNOSTICS":      SecDiagnostics,
	"COMPATIBILITY":    SecCompatibility,
	"ERRORS":           SecErrors,
	"SEE ALSO":         SecSeeAlso,
	"STANDARDS":        SecStandards,
	"HISTORY":          SecHistory,
	"AUTHORS":          SecAuthors,
	"CAVEATS":          SecCaveats,
	"BUGS":             SecBugs,
}

// sectionOf returns the SecKind of an Sh BLOCK node, derived from its
// head's text content.
func (v *Validator) sectionOf(sh *Node) SecKind {
	if sh.Kind != KindBlock || sh.Token != Sh {
		return SecNone
	}
	var b strings.Builder
	for c := v.Tree.Node(sh.Head).Child; c != 0; c = v.Tree.Node(c).Next {
		n := v.Tree.Node(c)
		if n.Kind == KindText {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(n.Text)
		}
	}
	if sec, ok := sectionName[b.String()]; ok {
		return sec
	}
	return SecCustom
}

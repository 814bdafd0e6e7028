package mdoc

import "github.com/samber/lo"

// CmpOp is a counting-rule comparison operator.
type CmpOp int

const (
	OpLT CmpOp = iota
	OpLE
	OpEQ
	OpGE
	OpGT
)

func (op CmpOp) String() string {
	switch op {
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpEQ:
		return "="
	case OpGE:
		return ">="
	default:
		return ">"
	}
}

func (op CmpOp) eval(k, n int) bool {
	switch op {
	case OpLT:
		return k < n
	case OpLE:
		return k <= n
	case OpEQ:
		return k == n
	case OpGE:
		return k >= n
	default:
		return k > n
	}
}

// Scope selects which node the count is taken from, relative to the
// node currently being validated: HEAD and BODY count a BLOCK's head
// or body child count; ELEM counts the current ELEM node's own
// argument-bearing children.
type Scope int

const (
	ScopeHead Scope = iota
	ScopeBody
	ScopeElem
)

// Rule is one entry in a macro's pre- or post-rule list. It returns
// whether the walk should continue.
type Rule func(v *Validator, id NodeID) bool

// countRule is the single generic replacement for the source's
// textually macro-generated h_<op>_<n> / b_<op>_<n> / e_<op>_<n>
// families (§9 "Macro-generated count checks").
func countRule(sev Severity, scope Scope, op CmpOp, n int) Rule {
	return func(v *Validator, id NodeID) bool {
		node := v.Tree.Node(id)
		var target NodeID
		switch scope {
		case ScopeHead:
			if node.Kind != KindBlock {
				panic("mdoc: countRule HEAD scope on non-BLOCK node")
			}
			target = node.Head
		case ScopeBody:
			if node.Kind != KindBlock {
				panic("mdoc: countRule BODY scope on non-BLOCK node")
			}
			target = node.Body
		default:
			if node.Kind != KindElem {
				panic("mdoc: countRule ELEM scope on non-ELEM node")
			}
			target = id
		}
		k := v.Tree.ChildCount(target)
		if op.eval(k, n) {
			return true
		}
		verb := "requires"
		if sev == SevWarn {
			verb = "suggests"
		}
		msg := verb + " " + scopeName(scope) + " %d " + op.String() + " (has %d)"
		if sev == SevErr {
			return v.Sink.NErr(id, msg, n, k)
		}
		return v.Sink.NWarn(id, KindGeneral, msg, n, k)
	}
}

func scopeName(s Scope) string {
	switch s {
	case ScopeHead:
		return "head children"
	case ScopeBody:
		return "body children"
	default:
		return "arguments"
	}
}

// countBinding is one row of the compile-time table binding a macro
// token to a generic counting rule, replacing the source's per-token
// CHECK_*_DEFN macro expansions.
type countBinding struct {
	Token Token
	When  string // "pre" or "post"
	Sev   Severity
	Scope Scope
	Op    CmpOp
	N     int
}

// countBindings is the full compile-time binding table. Each row
// mirrors one CHECK_CHILD_DEFN/CHECK_HEAD_DEFN/CHECK_BODY_DEFN/
// CHECK_ELEM_DEFN invocation in validate.c's rule table.
var countBindings = []countBinding{
	{An, "post", SevErr, ScopeElem, OpGE, 1},
	{Ar, "post", SevWarn, ScopeElem, OpLE, 2},
	{Fd, "post", SevErr, ScopeElem, OpGE, 1},
	{Fl, "post", SevWarn, ScopeElem, OpLE, 1},
	{Ft, "post", SevErr, ScopeElem, OpGE, 1},
	{In, "post", SevErr, ScopeElem, OpGE, 1},
	{Li, "post", SevErr, ScopeElem, OpGE, 1},
	{Nm, "post", SevWarn, ScopeElem, OpLE, 1},
	{Pa, "post", SevWarn, ScopeElem, OpLE, 1},
	{Bd, "post", SevErr, ScopeHead, OpEQ, 0},
	{Bl, "post", SevErr, ScopeHead, OpEQ, 0},
	{Dl, "post", SevErr, ScopeHead, OpEQ, 0},
	{D1, "post", SevErr, ScopeHead, OpEQ, 0},
	{Nd, "post", SevErr, ScopeElem, OpGE, 1},
}

// rulesByToken is built once at package init from countBindings (via
// samber/lo to group the flat table by token) plus the hand-written
// specific rules registered in rules_specific.go's init.
var rulesByToken = map[Token]*ruleSet{}

type ruleSet struct {
	pre  []Rule
	post []Rule
}

func setFor(tok Token) *ruleSet {
	rs, ok := rulesByToken[tok]
	if !ok {
		rs = &ruleSet{}
		rulesByToken[tok] = rs
	}
	return rs
}

func init() {
	grouped := lo.GroupBy(countBindings, func(b countBinding) Token { return b.Token })
	for tok, bindings := range grouped {
		rs := setFor(tok)
		for _, b := range bindings {
			r := countRule(b.Sev, b.Scope, b.Op, b.N)
			if b.When == "pre" {
				rs.pre = append(rs.pre, r)
			} else {
				rs.post = append(rs.post, r)
			}
		}
	}
}

// addPre/addPost register a hand-written rule for a token, used by
// rules_specific.go's init for the rules that don't fit the generic
// counting family.
func addPre(tok Token, r Rule)  { rs := setFor(tok); rs.pre = append(rs.pre, r) }
func addPost(tok Token, r Rule) { rs := setFor(tok); rs.post = append(rs.post, r) }

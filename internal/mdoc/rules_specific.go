package mdoc

// This file holds the hand-written rules that don't reduce to the
// generic counting family: prologue ordering, display nesting, the
// exclusive-argument-group checks, parent constraints, section
// membership, the Std-argument check, boolean elements, the Bf
// contract, -column/It arity, the NAME section shape, section
// ordering, and the root shape. Each mirrors one pre_*/post_* function
// in validate.c.

func init() {
	addPre(Dd, prePrologue(Dd))
	addPre(Dt, prePrologue(Dt))
	addPre(Os, prePrologue(Os))

	addPre(Bd, preDisplayNesting)
	addPre(D1, preDisplayNesting)
	addPre(Dl, preDisplayNesting)
	addPre(Bd, preDisplayType)

	addPre(Bl, preListType)

	addPre(Ss, preParentSh)
	addPre(Sh, preParentRoot)
	addPre(It, preParentBl)

	addPre(Er, preMsec(2))
	addPre(Cd, preMsec(4))
	addPre(Rv, preMsec(2, 3))
	addPre(Ex, preMsec(1, 6, 8))

	addPost(Rv, postStdArg)
	addPost(Ex, postStdArg)

	addPost(Db, postBoolean)
	addPost(Sm, postBoolean)

	addPost(Bf, postBf)

	addPost(It, postItColumn)

	addPost(Sh, postSh)
	addPost(Sh, postSection)

	addPost(TokNone, postRoot) // registered against the ROOT sentinel token
}

// prePrologue implements pre_prologue: Dd/Dt/Os must appear only while
// lastnamed == SEC_PROLOGUE, in order Dd -> Dt -> Os, and must not repeat.
func prePrologue(tok Token) Rule {
	return func(v *Validator, id NodeID) bool {
		m := &v.Tree.Meta
		if m.LastNamed != SecPrologue {
			return v.Sink.NErr(id, "prologue macro after content")
		}
		switch tok {
		case Dd:
			if m.Date != 0 {
				return v.Sink.NErr(id, "prologue repeated: Dd")
			}
		case Dt:
			if m.Date == 0 {
				return v.Sink.NErr(id, "prologue out-of-order")
			}
			if m.Title != "" {
				return v.Sink.NErr(id, "prologue repeated: Dt")
			}
		case Os:
			if m.Date == 0 || m.Title == "" {
				return v.Sink.NErr(id, "prologue out-of-order")
			}
			if m.OS != "" {
				return v.Sink.NErr(id, "prologue repeated: Os")
			}
		}
		return true
	}
}

// preDisplayNesting implements pre_display: a display BLOCK (Bd, D1,
// Dl) may not be nested inside an ancestor Bd block.
func preDisplayNesting(v *Validator, id NodeID) bool {
	for p := v.Tree.Node(id).Parent; p != 0; p = v.Tree.Node(p).Parent {
		n := v.Tree.Node(p)
		if n.Kind == KindBlock && n.Token == Bd {
			return v.Sink.NErr(id, "displays may not be nested")
		}
	}
	return true
}

// preDisplayType implements the Bd -ragged/-unfilled/... exclusivity
// check.
func preDisplayType(v *Validator, id NodeID) bool {
	_, count := displayType(v.Tree.Node(id).Args)
	if count != 1 {
		return v.Sink.NErr(id, "Bd requires exactly one display type argument (has %d)", count)
	}
	return true
}

// preListType implements the Bl -bullet/-dash/... exclusivity check.
func preListType(v *Validator, id NodeID) bool {
	_, count := listType(v.Tree.Node(id).Args)
	if count != 1 {
		return v.Sink.NErr(id, "Bl requires exactly one list type argument (has %d)", count)
	}
	return true
}

// preParentSh implements the Ss-must-sit-in-Sh-BODY parent constraint.
func preParentSh(v *Validator, id NodeID) bool {
	p := v.Tree.Node(id).Parent
	if p == 0 || v.Tree.Node(p).Kind != KindBody {
		return v.Sink.NErr(id, "Ss outside Sh body")
	}
	gp := v.Tree.Node(p).Parent
	if gp == 0 || v.Tree.Node(gp).Token != Sh {
		return v.Sink.NErr(id, "Ss outside Sh body")
	}
	return true
}

// preParentRoot implements the Sh-must-be-direct-child-of-ROOT constraint.
func preParentRoot(v *Validator, id NodeID) bool {
	p := v.Tree.Node(id).Parent
	if p != v.Tree.Root {
		return v.Sink.NErr(id, "Sh must be a top-level section")
	}
	return true
}

// preParentBl implements the It-must-sit-in-Bl-BODY constraint.
func preParentBl(v *Validator, id NodeID) bool {
	p := v.Tree.Node(id).Parent
	if p == 0 || v.Tree.Node(p).Kind != KindBody {
		return v.Sink.NErr(id, "It outside list")
	}
	gp := v.Tree.Node(p).Parent
	if gp == 0 || v.Tree.Node(gp).Token != Bl {
		return v.Sink.NErr(id, "It outside list")
	}
	return true
}

// preMsec implements check_msec: the document's current manual section
// must be one of allowed, else WARN.
func preMsec(allowed ...int) Rule {
	set := make(map[int]bool, len(allowed))
	for _, s := range allowed {
		set[s] = true
	}
	return func(v *Validator, id NodeID) bool {
		if v.ManSection == 0 || set[v.ManSection] {
			return true
		}
		return v.Sink.NWarn(id, KindGeneral, "macro not permitted in this manual section")
	}
}

// postStdArg implements check_stdarg: exactly one argument, and it
// must be the Std marker.
func postStdArg(v *Validator, id NodeID) bool {
	args := v.Tree.Node(id).Args
	if len(args) != 1 {
		return v.Sink.NWarn(id, KindCompat, "one argument suggested")
	}
	if _, ok := hasArg(args, ArgStd); !ok {
		return v.Sink.NErr(id, "argument must be Std")
	}
	return true
}

// postBoolean implements ebool: every text child must be "on" or "off".
func postBoolean(v *Validator, id NodeID) bool {
	for c := v.Tree.Node(id).Child; c != 0; c = v.Tree.Node(c).Next {
		n := v.Tree.Node(c)
		if n.Kind != KindText || (n.Text != "on" && n.Text != "off") {
			return v.Sink.NErr(id, "expected boolean \"on\" or \"off\"")
		}
	}
	return true
}

// postBf implements the intended Bf contract from §4.1/§9 (not the
// source's duplicated-ERR bug): argc==0 requires exactly one head
// child whose token is one of Em, Li, Sm; argc==1 requires zero head
// children.
func postBf(v *Validator, id NodeID) bool {
	node := v.Tree.Node(id)
	argc := len(node.Args)
	headCount := v.Tree.ChildCount(node.Head)
	switch argc {
	case 0:
		if headCount != 1 {
			return v.Sink.NErr(id, "Bf requires a head child naming the font")
		}
		first := v.Tree.Node(v.Tree.Node(node.Head).Child)
		if first.Token != Em && first.Token != Li && first.Token != Sm {
			return v.Sink.NErr(id, "Bf head child must be Em, Li, or Sm")
		}
		return true
	case 1:
		if headCount != 0 {
			return v.Sink.NErr(id, "Bf with an argument takes no head child")
		}
		return true
	default:
		return v.Sink.NErr(id, "Bf takes zero or one argument (has %d)", argc)
	}
}

// postItColumn implements the -column It arity check: an It inside a
// Bl -column list must have a head child count equal to the column
// count declared on Bl.
func postItColumn(v *Validator, id NodeID) bool {
	node := v.Tree.Node(id)
	bl := v.Tree.Node(v.Tree.Node(node.Parent).Parent)
	lt, _ := listType(bl.Args)
	if lt != ListColumn {
		return true
	}
	col, ok := hasArg(bl.Args, ArgColumn)
	if !ok {
		return true
	}
	want := len(col.Values)
	got := v.Tree.ChildCount(node.Head)
	if got != want {
		return v.Sink.NWarn(id, KindGeneral, "column mismatch: requires %d columns (has %d)", want, got)
	}
	return true
}

// postSh implements the NAME-section shape check: every BODY child
// must be Nm, Nd, or TEXT, and the last should be Nd.
func postSh(v *Validator, id NodeID) bool {
	node := v.Tree.Node(id)
	if v.sectionOf(node) != SecName {
		return true
	}
	body := node.Body
	var lastTok Token
	var sawAny bool
	for c := v.Tree.Node(body).Child; c != 0; c = v.Tree.Node(c).Next {
		n := v.Tree.Node(c)
		sawAny = true
		if n.Kind == KindText {
			lastTok = TokNone
			continue
		}
		if n.Kind == KindElem && (n.Token == Nm || n.Token == Nd) {
			lastTok = n.Token
			continue
		}
		return v.Sink.NWarn(c, KindCompat, "NAME section body may contain only Nm, Nd, or text")
	}
	if sawAny && lastTok != Nd {
		return v.Sink.NWarn(id, KindGeneral, "NAME section should end in Nd")
	}
	return true
}

// postSection implements the section-ordering check: sections appear
// in the conventional order; the first BODY section must be NAME;
// CUSTOM sections are exempt.
func postSection(v *Validator, id NodeID) bool {
	node := v.Tree.Node(id)
	sec := v.sectionOf(node)
	m := &v.Tree.Meta
	if sec == SecCustom || sec == SecNone {
		return true
	}
	if m.LastNamed == SecPrologue && sec != SecName {
		ok := v.Sink.NWarn(id, KindGeneral, "first section must be NAME")
		m.LastNamed = sec
		return ok
	}
	ok := true
	if sec <= m.LastNamed {
		ok = v.Sink.NWarn(id, KindGeneral, "sections out of order")
	}
	if sec > m.LastNamed {
		m.LastNamed = sec
	}
	return ok
}

// postRoot implements the document-level shape check: at least one
// child, the first must be an Sh BLOCK, and LastNamed must have
// advanced past PROLOGUE.
func postRoot(v *Validator, id NodeID) bool {
	node := v.Tree.Node(id)
	if node.Kind != KindRoot {
		return true // TEXT/HEAD/BODY nodes share the token-less rule slot
	}
	if node.Child == 0 {
		return v.Sink.NErr(id, "document has no content")
	}
	first := v.Tree.Node(node.Child)
	if first.Kind != KindBlock || first.Token != Sh {
		return v.Sink.NErr(id, "document must begin with a section")
	}
	if v.Tree.Meta.LastNamed == SecPrologue {
		return v.Sink.NErr(id, "document never leaves the prologue")
	}
	return true
}

package aig

// chase follows substMap, which records "Ref{idx,false} is now represented
// by this signal", through however many dead nodes are stacked up, composing
// polarity at each hop. It implements protocol step 3: "if n's node is dead,
// chase the substitution map to its live image".
func chase(n Ref, substMap map[int]Ref, isDead func(int) bool) Ref {
	for isDead(n.Index()) {
		repl, ok := substMap[n.Index()]
		if !ok {
			break
		}
		n = Ref{index: repl.index, comp: repl.comp != n.comp}
	}
	return n
}

// redirect rewrites an edge that pointed at old (with old's own polarity)
// so that it points at new instead, preserving the logical value the edge
// carried.
func redirect(edge, old, new Ref) Ref {
	comp := edge.comp
	comp = comp != old.comp
	comp = comp != new.comp
	return Ref{index: new.index, comp: comp}
}

type substPair struct {
	o, n Ref
}

// Substitute replaces every reference to old with new (complemented if
// new's polarity differs from old's), then takes out old if it becomes
// dangling. It implements the full protocol of spec §4.7.
func (net *Network) Substitute(old, new Ref) {
	oldNode := &net.nodes[old.Index()]
	if oldNode.dontTouch || oldNode.dead {
		return
	}

	substMap := make(map[int]Ref)
	worklist := []substPair{{old, new}}
	substMap[old.Index()] = new

	isDead := func(idx int) bool { return net.nodes[idx].dead }

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		o := cur.o
		n := chase(cur.n, substMap, isDead)

		// Step 5 (applied per worklist entry, not just the original root):
		// replace o in the PO list, keeping polarity, with real fanout
		// accounting — o loses a reference, n's live image gains one.
		for i, po := range net.pos {
			if po.Index() == o.Index() {
				net.pos[i] = redirect(po, o, n)
				net.incFanout(n.Index())
				if net.decFanout(o.Index()) == 0 {
					net.takeOutNode(o.Index())
				}
			}
		}

		for _, p := range net.ParentsOf(o.Index()) {
			nd := &net.nodes[p]
			if nd.dead {
				continue
			}

			numFanins := nd.kind.numFanins()
			var newChildren [3]Ref
			copy(newChildren[:], nd.children[:])
			touched := false
			for i := 0; i < numFanins; i++ {
				if newChildren[i].Index() == o.Index() {
					newChildren[i] = redirect(newChildren[i], o, n)
					touched = true
				}
			}
			if !touched {
				continue
			}

			if nd.dontTouch {
				// Don't-touch nodes bypass strashing entirely; reroute
				// their fanin in place rather than through the worklist
				// substitution machinery (spec §9, "Don't-touch + strash").
				oldChildren := nd.children
				net.rewireChildren(p, newChildren, oldChildren)
				continue
			}

			replacement, reduced := net.tryReduce(nd.kind, newChildren)
			if reduced {
				worklist = append(worklist, substPair{o: newRef(p, false), n: replacement})
				substMap[p] = replacement
				continue
			}

			if existing, ok := net.strash[strashKey{kind: nd.kind, c0: newChildren[0], c1: newChildren[1], c2: newChildren[2]}]; ok && existing != p && !net.nodes[existing].dead {
				replacement := newRef(existing, false)
				worklist = append(worklist, substPair{o: newRef(p, false), n: replacement})
				substMap[p] = replacement
				continue
			}

			oldChildren := nd.children
			net.rewireChildren(p, newChildren, oldChildren)
			net.fireModified(p, oldChildren)
		}
	}

	net.assertAcyclic()
}

// rewireChildren updates the strash table and parent index for node p's
// transition from oldChildren to newChildren, then mutates p in place.
func (net *Network) rewireChildren(p int, newChildren, oldChildren [3]Ref) {
	nd := &net.nodes[p]
	numFanins := nd.kind.numFanins()

	if !nd.dontTouch {
		delete(net.strash, strashKey{kind: nd.kind, c0: oldChildren[0], c1: oldChildren[1], c2: oldChildren[2]})
	}
	for i := 0; i < numFanins; i++ {
		if oldChildren[i].Index() != newChildren[i].Index() {
			net.removeParent(oldChildren[i].Index(), p)
			net.addParent(newChildren[i].Index(), p)
			if net.decFanout(oldChildren[i].Index()) == 0 {
				net.takeOutNode(oldChildren[i].Index())
			}
			net.incFanout(newChildren[i].Index())
		}
	}
	nd.children = newChildren
	if !nd.dontTouch {
		net.strash[strashKey{kind: nd.kind, c0: newChildren[0], c1: newChildren[1], c2: newChildren[2]}] = p
	}
}

// tryReduce applies the same trivial-case rules CreateAnd/CreateXor/CreateMaj
// use, to a fanin set that arose from rerouting rather than fresh creation.
// It reports whether a reduction fired and, if so, the resulting signal.
func (net *Network) tryReduce(kind GateKind, c [3]Ref) (Ref, bool) {
	switch kind {
	case GateKindAnd:
		a, b := c[0], c[1]
		if a == b {
			return a, true
		}
		if a == b.Not() {
			return net.GetConstant(false), true
		}
		if net.IsConstant(a) {
			if a.IsComplemented() {
				return b, true
			}
			return net.GetConstant(false), true
		}
		if net.IsConstant(b) {
			if b.IsComplemented() {
				return a, true
			}
			return net.GetConstant(false), true
		}
	case GateKindXor:
		a, b := c[0], c[1]
		if a == b {
			return net.GetConstant(false), true
		}
		if a == b.Not() {
			return net.GetConstant(true), true
		}
		if net.IsConstant(a) {
			if a.IsComplemented() {
				return b.Not(), true
			}
			return b, true
		}
		if net.IsConstant(b) {
			if b.IsComplemented() {
				return a.Not(), true
			}
			return a, true
		}
	case GateKindMaj:
		a, b, cc := c[0], c[1], c[2]
		if a == b || a == cc {
			return a, true
		}
		if b == cc {
			return b, true
		}
		if a == b.Not() {
			return cc, true
		}
		if a == cc.Not() {
			return b, true
		}
		if b == cc.Not() {
			return a, true
		}
	}
	return Ref{}, false
}

// TakeOutNode marks node n dead, decrementing its children's fanout
// (cascading to further take-outs), and notifies on_delete subscribers. It
// is exported for callers (e.g. package resub) that delete a node outside
// of substitution, such as cleaning up a root whose MFFC collapsed.
func (net *Network) TakeOutNode(n int) { net.takeOutNode(n) }

func (net *Network) takeOutNode(n int) {
	nd := &net.nodes[n]
	if nd.dead || nd.kind == GateKindPI || n == 0 {
		return
	}
	if nd.fanout != 0 {
		return
	}

	nd.dead = true
	if !nd.dontTouch {
		delete(net.strash, strashKey{kind: nd.kind, c0: nd.children[0], c1: nd.children[1], c2: nd.children[2]})
	}
	delete(net.parents, n)
	nd.level = 0

	numFanins := nd.kind.numFanins()
	children := nd.children
	for i := 0; i < numFanins; i++ {
		child := children[i].Index()
		net.removeParent(child, n)
		if net.decFanout(child) == 0 {
			net.takeOutNode(child)
		}
	}

	net.fireDelete(n)
}

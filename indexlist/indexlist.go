package indexlist

import (
	"fmt"

	"github.com/logisynth/aig"
)

// Variant tags which Boolean basis a list's gates were drawn from; it rides
// along in the header purely for quick dispatch/validation, since every gate
// also carries its own kind tag.
type Variant uint8

const (
	VariantAIG Variant = iota
	VariantXAG
	VariantMIG
)

func (v Variant) String() string {
	switch v {
	case VariantAIG:
		return "aig"
	case VariantXAG:
		return "xag"
	case VariantMIG:
		return "mig"
	default:
		return "?"
	}
}

// GateEntry is one gate in the list: its kind and fanin literals, each
// indexing into the list's position space (0 = constant-false, 1..NumPIs =
// leaves in order, thereafter gates in list order).
type GateEntry struct {
	Kind   aig.GateKind
	Fanins []Literal
}

// IndexList is the decoded, in-memory form of a replacement circuit's wire
// format (spec §3 "Index list").
type IndexList struct {
	Variant Variant
	NumPIs  int
	Gates   []GateEntry
	Outputs []Literal
}

func kindTag(k aig.GateKind) (uint32, error) {
	switch k {
	case aig.GateKindAnd:
		return 0, nil
	case aig.GateKindXor:
		return 1, nil
	case aig.GateKindMaj:
		return 2, nil
	case aig.GateKindXor3:
		return 3, nil
	}
	return 0, fmt.Errorf("indexlist: gate kind %v cannot appear in an index list", k)
}

func tagKind(tag uint32) (aig.GateKind, error) {
	switch tag {
	case 0:
		return aig.GateKindAnd, nil
	case 1:
		return aig.GateKindXor, nil
	case 2:
		return aig.GateKindMaj, nil
	case 3:
		return aig.GateKindXor3, nil
	}
	return 0, fmt.Errorf("indexlist: unknown gate tag %d", tag)
}

// Encode serializes list into the flat word format: one header word
// ((num_pis<<11)|(num_gates<<3)|variant), then for each gate a tag word
// followed by its fanin literals, then one word per output literal.
func (list IndexList) Encode() ([]uint32, error) {
	if len(list.Gates) > 0xFF {
		return nil, fmt.Errorf("indexlist: %d gates exceeds the 8-bit gate-count field", len(list.Gates))
	}
	header := (uint32(list.NumPIs) << 11) | (uint32(len(list.Gates)) << 3) | uint32(list.Variant)
	out := []uint32{header}

	for _, g := range list.Gates {
		tag, err := kindTag(g.Kind)
		if err != nil {
			return nil, err
		}
		if len(g.Fanins) != g.Kind.NumFanins() {
			return nil, fmt.Errorf("indexlist: gate kind %v needs %d fanins, got %d", g.Kind, g.Kind.NumFanins(), len(g.Fanins))
		}
		out = append(out, tag)
		for _, f := range g.Fanins {
			out = append(out, uint32(f))
		}
	}
	for _, o := range list.Outputs {
		out = append(out, uint32(o))
	}
	return out, nil
}

// Decode parses the flat word format back into an IndexList. The header
// does not carry the output count, so callers supply numOutputs themselves
// (spec §6: the list is always decoded alongside the resubstitution site
// that already knows how many outputs it asked for).
func Decode(words []uint32, numOutputs int) (IndexList, error) {
	if len(words) == 0 {
		return IndexList{}, fmt.Errorf("indexlist: empty word stream")
	}
	header := words[0]
	list := IndexList{
		NumPIs:  int(header >> 11),
		Variant: Variant(header & 0x7),
	}
	numGates := int((header >> 3) & 0xFF)

	pos := 1
	for i := 0; i < numGates; i++ {
		if pos >= len(words) {
			return IndexList{}, fmt.Errorf("indexlist: truncated stream at gate %d", i)
		}
		kind, err := tagKind(words[pos])
		if err != nil {
			return IndexList{}, err
		}
		pos++
		n := kind.NumFanins()
		if pos+n > len(words) {
			return IndexList{}, fmt.Errorf("indexlist: truncated fanins for gate %d", i)
		}
		fanins := make([]Literal, n)
		for j := 0; j < n; j++ {
			fanins[j] = Literal(words[pos+j])
		}
		pos += n
		list.Gates = append(list.Gates, GateEntry{Kind: kind, Fanins: fanins})
	}

	if pos+numOutputs > len(words) {
		return IndexList{}, fmt.Errorf("indexlist: truncated outputs")
	}
	for i := 0; i < numOutputs; i++ {
		list.Outputs = append(list.Outputs, Literal(words[pos+i]))
	}

	return list, nil
}

// FromNetwork captures the sub-circuit reachable from outputs, bottomed out
// at leaves, as an IndexList. nodes must list every gate in that cone in
// topologically increasing order (the order package window's Build uses);
// FromNetwork does not re-derive it.
func FromNetwork(leaves []aig.Ref, nodes []int, outputs []aig.Ref, net *aig.Network, variant Variant) (IndexList, error) {
	pos := make(map[int]int, len(leaves)+len(nodes)+1)
	pos[0] = 0
	for i, l := range leaves {
		pos[l.Index()] = i + 1
	}

	lit := func(r aig.Ref) (Literal, error) {
		p, ok := pos[r.Index()]
		if !ok {
			return 0, fmt.Errorf("indexlist: reference to node %d outside leaves/gates", r.Index())
		}
		return EncodeLiteral(p, r.IsComplemented()), nil
	}

	list := IndexList{Variant: variant, NumPIs: len(leaves)}
	next := len(leaves) + 1
	for _, n := range nodes {
		fanins := net.Fanins(n)
		entryFanins := make([]Literal, len(fanins))
		for i, f := range fanins {
			l, err := lit(f)
			if err != nil {
				return IndexList{}, err
			}
			entryFanins[i] = l
		}
		list.Gates = append(list.Gates, GateEntry{Kind: net.Kind(n), Fanins: entryFanins})
		pos[n] = next
		next++
	}

	for _, o := range outputs {
		l, err := lit(o)
		if err != nil {
			return IndexList{}, err
		}
		list.Outputs = append(list.Outputs, l)
	}

	return list, nil
}

// ToNetwork rebuilds list into a fresh Network of the given flavor, applying
// the same trivial-case reduction and strashing every Create* call does;
// the returned network may therefore have fewer gates than list.Gates.
func ToNetwork(list IndexList, flavor aig.Flavor) (*aig.Network, []aig.Ref, []aig.Ref) {
	net := aig.New(flavor)
	bypos := make([]aig.Ref, 1, 1+list.NumPIs+len(list.Gates))
	bypos[0] = net.GetConstant(false)

	leaves := make([]aig.Ref, list.NumPIs)
	for i := 0; i < list.NumPIs; i++ {
		r := net.CreatePI()
		bypos = append(bypos, r)
		leaves[i] = r
	}

	resolve := func(l Literal) aig.Ref {
		base := bypos[l.Index()]
		return base.WithPolarity(base.IsComplemented() != l.Complement())
	}

	for _, g := range list.Gates {
		fanins := make([]aig.Ref, len(g.Fanins))
		for i, f := range g.Fanins {
			fanins[i] = resolve(f)
		}
		var out aig.Ref
		switch g.Kind {
		case aig.GateKindAnd:
			out = net.CreateAnd(fanins[0], fanins[1])
		case aig.GateKindXor:
			out = net.CreateXor(fanins[0], fanins[1])
		case aig.GateKindMaj:
			out = net.CreateMaj(fanins[0], fanins[1], fanins[2])
		case aig.GateKindXor3:
			out = net.CreateXor3(fanins[0], fanins[1], fanins[2])
		}
		bypos = append(bypos, out)
	}

	outputs := make([]aig.Ref, len(list.Outputs))
	for i, o := range list.Outputs {
		ref := resolve(o)
		net.CreatePO(ref)
		outputs[i] = ref
	}

	return net, leaves, outputs
}

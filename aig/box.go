package aig

// BoxKind distinguishes a black-box region (terminal to windowing) from a
// white-box region (recorded only).
type BoxKind uint8

const (
	// BlackBox makes its boundary nodes (inputs and outputs) terminal to
	// window.GrowCut, which never expands through them. The simulator, the
	// SAT validator and the optimization passes evaluate those nodes like
	// any other.
	BlackBox BoxKind = iota
	// WhiteBox is recorded on its boundary nodes but changes no behavior:
	// windowing, strashing and substitution treat its nodes like any other.
	WhiteBox
)

// Box groups a set of don't-touch boundary signals under one tag. The core
// treats box inputs as terminal references and box outputs as opaque
// sources when windowing (spec §4.1, "Don't touch" extension).
type Box struct {
	Kind    BoxKind
	Name    string
	Inputs  []Ref
	Outputs []Ref
}

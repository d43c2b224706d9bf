package resyn

import "github.com/logisynth/aig"

// Materialize builds expr into net, resolving ExprDivisor leaves through
// divisorRefs (aligned with the divisor index space Resynthesize searched
// over), and expanding ExprMux into AND/XOR/NOT since no Flavor allocates a
// MUX primitive directly: ITE(c,t,e) = e XOR (c AND (t XOR e)).
func Materialize(net *aig.Network, expr *Expr, divisorRefs []aig.Ref) aig.Ref {
	var out aig.Ref
	switch expr.Kind {
	case ExprDivisor:
		out = divisorRefs[expr.Divisor]
	case ExprConst:
		out = net.GetConstant(false)
	case ExprAnd:
		out = net.CreateAnd(
			Materialize(net, expr.Children[0], divisorRefs),
			Materialize(net, expr.Children[1], divisorRefs),
		)
	case ExprXor:
		out = net.CreateXor(
			Materialize(net, expr.Children[0], divisorRefs),
			Materialize(net, expr.Children[1], divisorRefs),
		)
	case ExprMaj:
		out = net.CreateMaj(
			Materialize(net, expr.Children[0], divisorRefs),
			Materialize(net, expr.Children[1], divisorRefs),
			Materialize(net, expr.Children[2], divisorRefs),
		)
	case ExprMux:
		c := Materialize(net, expr.Children[0], divisorRefs)
		t := Materialize(net, expr.Children[1], divisorRefs)
		e := Materialize(net, expr.Children[2], divisorRefs)
		out = net.CreateXor(e, net.CreateAnd(c, net.CreateXor(t, e)))
	}
	if expr.Comp {
		out = out.Not()
	}
	return out
}

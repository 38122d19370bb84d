package smsig

// SignedPoly is a degree-N polynomial with signed integer coefficients
// and no implicit modular reduction: the carrier for intermediate
// results (decompositions, randomized and aggregated values) where the
// magnitude itself is meaningful. Addition is checked for overflow
// only after debug checks have been switched on at run time with
// EnableDebugChecks(true).
type SignedPoly struct {
	pp     *ParamSet
	Coeffs []int64
}

// SmallPoly is a degree-N polynomial with coefficients in [0, Qs): an
// element of R_qs.
type SmallPoly struct {
	pp     *ParamSet
	Coeffs []uint16
}

// LargePoly is a degree-N polynomial with coefficients in [0, Ql): an
// element of R_ql.
type LargePoly struct {
	pp     *ParamSet
	Coeffs []uint32
}

// SmallNTTPoly is the NTT-domain representation of a SmallPoly:
// coefficient-wise multiplication here is multiplication in R_qs.
type SmallNTTPoly struct {
	pp     *ParamSet
	Values []uint64
}

// LargeNTTPoly is the NTT-domain representation of a LargePoly.
type LargeNTTPoly struct {
	pp     *ParamSet
	Values []uint64
}

// TernaryCoeffEncoding is a weight-w ternary polynomial encoded as two
// disjoint index lists: Pos holds the coefficients fixed at +1, Neg
// the coefficients fixed at -1; every index in Pos∪Neg is distinct and
// in [0, N).
type TernaryCoeffEncoding struct {
	Pos []int
	Neg []int
}

// Weight returns the total number of nonzero coefficients.
func (t TernaryCoeffEncoding) Weight() int { return len(t.Pos) + len(t.Neg) }

// ToSignedPoly materializes the ternary encoding as a dense SignedPoly
// with coefficients in {-1, 0, +1}.
func (t TernaryCoeffEncoding) ToSignedPoly(pp *ParamSet) *SignedPoly {
	sp := newSignedPoly(pp)
	for _, idx := range t.Pos {
		sp.Coeffs[idx] = 1
	}
	for _, idx := range t.Neg {
		sp.Coeffs[idx] = -1
	}
	return sp
}

func newSignedPoly(pp *ParamSet) *SignedPoly {
	return &SignedPoly{pp: pp, Coeffs: make([]int64, pp.N)}
}

func newSmallPoly(pp *ParamSet) *SmallPoly {
	return &SmallPoly{pp: pp, Coeffs: make([]uint16, pp.N)}
}

func newLargePoly(pp *ParamSet) *LargePoly {
	return &LargePoly{pp: pp, Coeffs: make([]uint32, pp.N)}
}

// debugChecks gates the debug-only overflow assertions spec.md §7
// class 3 describes; off by default so production builds pay nothing.
var debugChecks = false

// EnableDebugChecks turns on the debug-only numeric invariant checks
// (SignedPoly addition overflow). Intended for tests, not production.
func EnableDebugChecks(enabled bool) { debugChecks = enabled }

package smsig

import "github.com/smsig/smsig/internal/ckernel"

// Add adds other into p in place and returns p. No modular reduction
// is performed; when debug checks are enabled (EnableDebugChecks) the
// sum is checked against int64 overflow (spec.md §7 class 3).
func (p *SignedPoly) Add(other *SignedPoly) *SignedPoly {
	for i := range p.Coeffs {
		sum := p.Coeffs[i] + other.Coeffs[i]
		if debugChecks {
			if (other.Coeffs[i] > 0 && sum < p.Coeffs[i]) ||
				(other.Coeffs[i] < 0 && sum > p.Coeffs[i]) {
				panic(invariantf("smsig: SignedPoly.Add: int64 overflow at coefficient %d", i))
			}
		}
		p.Coeffs[i] = sum
	}
	return p
}

// Clone returns a deep copy.
func (p *SignedPoly) Clone() *SignedPoly {
	out := newSignedPoly(p.pp)
	copy(out.Coeffs, p.Coeffs)
	return out
}

// MulTernary multiplies p, treated as a binary {0,1} polynomial, by
// the ternary encoding t, using the sparse shift-accumulate kernel
// (spec.md §4.1), and returns the signed product.
func (p *SignedPoly) MulTernary(t TernaryCoeffEncoding) *SignedPoly {
	bin := make([]int8, p.pp.N)
	for i, c := range p.Coeffs {
		bin[i] = int8(c)
	}
	prod := ckernel.TernaryMulBinary(t.Pos, t.Neg, bin, p.pp.N)
	out := newSignedPoly(p.pp)
	for i, c := range prod {
		out.Coeffs[i] = int64(c)
	}
	return out
}

// ToSmall reduces p coefficient-wise modulo Qs.
func (p *SignedPoly) ToSmall() *SmallPoly {
	out := newSmallPoly(p.pp)
	q := int64(p.pp.Qs)
	for i, c := range p.Coeffs {
		out.Coeffs[i] = uint16(((c % q) + q) % q)
	}
	return out
}

// ToLarge reduces p coefficient-wise modulo Ql.
func (p *SignedPoly) ToLarge() *LargePoly {
	out := newLargePoly(p.pp)
	q := int64(p.pp.Ql)
	for i, c := range p.Coeffs {
		out.Coeffs[i] = uint32(((c % q) + q) % q)
	}
	return out
}

package smsig

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/bwesterb/byteswriter"
)

// Add returns the coefficient-wise sum of p and other modulo Ql.
func (p *LargePoly) Add(other *LargePoly) *LargePoly {
	out := newLargePoly(p.pp)
	q := uint64(p.pp.Ql)
	for i := range p.Coeffs {
		out.Coeffs[i] = uint32((uint64(p.Coeffs[i]) + uint64(other.Coeffs[i])) % q)
	}
	return out
}

// Equal reports whether p and other have identical coefficients.
func (p *LargePoly) Equal(other *LargePoly) bool {
	if len(p.Coeffs) != len(other.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i] != other.Coeffs[i] {
			return false
		}
	}
	return true
}

// ToNTT converts p into its NTT-domain representation.
func (p *LargePoly) ToNTT() *LargeNTTPoly {
	values := make([]uint64, p.pp.N)
	for i, c := range p.Coeffs {
		values[i] = uint64(c)
	}
	p.pp.largeNTT.Forward(values)
	return &LargeNTTPoly{pp: p.pp, Values: values}
}

// FromNTT converts an NTT-domain vector back to a LargePoly.
func (n *LargeNTTPoly) FromNTT() *LargePoly {
	values := append([]uint64(nil), n.Values...)
	n.pp.largeNTT.Inverse(values)
	out := newLargePoly(n.pp)
	for i, v := range values {
		out.Coeffs[i] = uint32(v)
	}
	return out
}

// Mul multiplies two NTT-domain large polynomials coefficient-wise.
func (n *LargeNTTPoly) Mul(other *LargeNTTPoly) *LargeNTTPoly {
	return &LargeNTTPoly{pp: n.pp, Values: n.pp.largeNTT.PointwiseMul(n.Values, other.Values)}
}

// AddNTT adds two NTT-domain large polynomials coefficient-wise.
func (n *LargeNTTPoly) AddNTT(other *LargeNTTPoly) *LargeNTTPoly {
	q := uint64(n.pp.Ql)
	out := make([]uint64, len(n.Values))
	for i := range out {
		out[i] = (n.Values[i] + other.Values[i]) % q
	}
	return &LargeNTTPoly{pp: n.pp, Values: out}
}

// Decompose yields the Bl-long array of signed binary polynomials
// {p_0,...,p_{Bl-1}} such that coefficient j of p_k is the k-th bit
// (least-significant first) of coefficient j of p.
func (p *LargePoly) Decompose() []*SignedPoly {
	out := make([]*SignedPoly, p.pp.Bl)
	for k := 0; k < p.pp.Bl; k++ {
		bit := newSignedPoly(p.pp)
		for j, c := range p.Coeffs {
			bit.Coeffs[j] = int64((c >> uint(k)) & 1)
		}
		out[k] = bit
	}
	return out
}

// ProjectLarge is the inverse of Decompose for the large ring.
func ProjectLarge(pp *ParamSet, bits []*SignedPoly) *LargePoly {
	if len(bits) != pp.Bl {
		panic(invariantf("smsig: ProjectLarge: expected %d decomposed levels, got %d", pp.Bl, len(bits)))
	}
	out := newLargePoly(pp)
	q := int64(pp.Ql)
	for j := 0; j < pp.N; j++ {
		var acc int64
		for k := 0; k < pp.Bl; k++ {
			acc += bits[k].Coeffs[j] << uint(k)
		}
		out.Coeffs[j] = uint32(((acc % q) + q) % q)
	}
	return out
}

// Digest returns SHA-256 of p's coefficients serialized little-endian,
// 4 bytes per coefficient, in index order (spec.md §6).
func (p *LargePoly) Digest() [32]byte {
	buf := make([]byte, 4*p.pp.N)
	w := byteswriter.NewWriter(buf)
	if err := binary.Write(w, binary.LittleEndian, p.Coeffs); err != nil {
		panic(wrapErrorf(err, "smsig: LargePoly.Digest: failed to serialize"))
	}
	return sha256.Sum256(buf)
}

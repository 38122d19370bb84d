package smsig

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/bwesterb/byteswriter"
)

// Add returns the coefficient-wise sum of p and other modulo Qs.
func (p *SmallPoly) Add(other *SmallPoly) *SmallPoly {
	out := newSmallPoly(p.pp)
	q := uint32(p.pp.Qs)
	for i := range p.Coeffs {
		out.Coeffs[i] = uint16((uint32(p.Coeffs[i]) + uint32(other.Coeffs[i])) % q)
	}
	return out
}

// Equal reports whether p and other have identical coefficients.
func (p *SmallPoly) Equal(other *SmallPoly) bool {
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
func (p *SmallPoly) ToNTT() *SmallNTTPoly {
	values := make([]uint64, p.pp.N)
	for i, c := range p.Coeffs {
		values[i] = uint64(c)
	}
	p.pp.smallNTT.Forward(values)
	return &SmallNTTPoly{pp: p.pp, Values: values}
}

// FromNTT converts an NTT-domain vector back to a SmallPoly.
func (n *SmallNTTPoly) FromNTT() *SmallPoly {
	values := append([]uint64(nil), n.Values...)
	n.pp.smallNTT.Inverse(values)
	out := newSmallPoly(n.pp)
	for i, v := range values {
		out.Coeffs[i] = uint16(v)
	}
	return out
}

// Mul multiplies two NTT-domain small polynomials coefficient-wise
// (i.e. multiplies the underlying ring elements).
func (n *SmallNTTPoly) Mul(other *SmallNTTPoly) *SmallNTTPoly {
	return &SmallNTTPoly{pp: n.pp, Values: n.pp.smallNTT.PointwiseMul(n.Values, other.Values)}
}

// AddNTT adds two NTT-domain small polynomials coefficient-wise.
func (n *SmallNTTPoly) AddNTT(other *SmallNTTPoly) *SmallNTTPoly {
	q := uint64(n.pp.Qs)
	out := make([]uint64, len(n.Values))
	for i := range out {
		out[i] = (n.Values[i] + other.Values[i]) % q
	}
	return &SmallNTTPoly{pp: n.pp, Values: out}
}

// Decompose yields the Bs-long array of signed binary polynomials
// {p_0,...,p_{Bs-1}} such that coefficient j of p_k is the k-th bit
// (least-significant first) of coefficient j of p (spec.md §4.1).
func (p *SmallPoly) Decompose() []*SignedPoly {
	out := make([]*SignedPoly, p.pp.Bs)
	for k := 0; k < p.pp.Bs; k++ {
		bit := newSignedPoly(p.pp)
		for j, c := range p.Coeffs {
			bit.Coeffs[j] = int64((c >> uint(k)) & 1)
		}
		out[k] = bit
	}
	return out
}

// ProjectSmall is the inverse of Decompose: treats bits as a base-2
// expansion and sums back modulo Qs. Invariant: ProjectSmall(p.Decompose()) == p.
func ProjectSmall(pp *ParamSet, bits []*SignedPoly) *SmallPoly {
	if len(bits) != pp.Bs {
		panic(invariantf("smsig: ProjectSmall: expected %d decomposed levels, got %d", pp.Bs, len(bits)))
	}
	out := newSmallPoly(pp)
	q := int64(pp.Qs)
	for j := 0; j < pp.N; j++ {
		var acc int64
		for k := 0; k < pp.Bs; k++ {
			acc += bits[k].Coeffs[j] << uint(k)
		}
		out.Coeffs[j] = uint16(((acc % q) + q) % q)
	}
	return out
}

// Digest returns SHA-256 of p's coefficients serialized little-endian,
// 2 bytes per coefficient, in index order (spec.md §6).
func (p *SmallPoly) Digest() [32]byte {
	buf := make([]byte, 2*p.pp.N)
	w := byteswriter.NewWriter(buf)
	if err := binary.Write(w, binary.LittleEndian, p.Coeffs); err != nil {
		panic(wrapErrorf(err, "smsig: SmallPoly.Digest: failed to serialize"))
	}
	return sha256.Sum256(buf)
}

package smsig

import "golang.org/x/crypto/chacha20"

// HOTSHasher digests a HotsPK's decomposed (v0, v1) into the small
// polynomial used as an HVC tree leaf (spec.md §4.6): shaped exactly
// like HVCHasher but over a 2*Bl-wide hash parameter vector, since
// v0/v1 decompose into Bl levels each rather than Bs.
type HOTSHasher struct {
	pp   *ParamSet
	hNTT []*SmallNTTPoly
}

// NewHOTSHasher samples a fresh hash parameter vector from stream.
func NewHOTSHasher(pp *ParamSet, stream *chacha20.Cipher) *HOTSHasher {
	h := &HOTSHasher{pp: pp, hNTT: make([]*SmallNTTPoly, 2*pp.Bl)}
	for i := range h.hNTT {
		h.hNTT[i] = SampleUniformSmallPoly(pp, stream).ToNTT()
	}
	return h
}

// HashSeparateInputs computes Σ h_i·lift(x_i) in R_qs over already
// decomposed signed arrays. xs must have exactly 2*Bl entries.
func (h *HOTSHasher) HashSeparateInputs(xs []*SignedPoly) *SmallPoly {
	return hashSeparateInputsWithTable(h.pp, h.hNTT, xs)
}

// DigestPK decomposes v0 and v1 and hashes the concatenated 2*Bl
// array: the HVC-tree-leaf digest of a HOTS public key (spec.md §4.6
// KeyGen: "leaf_i = pk_i.digest(hots_hasher)").
func (h *HOTSHasher) DigestPK(v0, v1 *LargePoly) *SmallPoly {
	xs := make([]*SignedPoly, 0, 2*h.pp.Bl)
	xs = append(xs, v0.Decompose()...)
	xs = append(xs, v1.Decompose()...)
	return h.HashSeparateInputs(xs)
}

// DigestRandomizedPK hashes an already-decomposed (and possibly
// randomized) pk representation directly, without re-decomposing:
// used by aggregation/batch-verify to recover the aggregated leaf
// digest without projecting back to a HotsPK first (spec.md §8,
// "Homomorphic HOTS pk hash").
func (h *HOTSHasher) DigestRandomizedPK(rpk *RandomizedHOTSPK) *SmallPoly {
	xs := make([]*SignedPoly, 0, 2*h.pp.Bl)
	xs = append(xs, rpk.V0...)
	xs = append(xs, rpk.V1...)
	return h.HashSeparateInputs(xs)
}

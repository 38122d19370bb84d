package smsig

import "golang.org/x/crypto/chacha20"

// HVCHasher is the Homomorphic Vector Commitment's hash function: a
// fixed vector of 2*Bs small-ring elements h_1...h_{2*Bs} sampled once
// at setup and held in NTT form thereafter (spec.md §4.2).
type HVCHasher struct {
	pp   *ParamSet
	hNTT []*SmallNTTPoly
}

// NewHVCHasher samples a fresh hash parameter vector from stream.
func NewHVCHasher(pp *ParamSet, stream *chacha20.Cipher) *HVCHasher {
	h := &HVCHasher{pp: pp, hNTT: make([]*SmallNTTPoly, 2*pp.Bs)}
	for i := range h.hNTT {
		h.hNTT[i] = SampleUniformSmallPoly(pp, stream).ToNTT()
	}
	return h
}

// HashSeparateInputs computes Σ h_i·x_i in R_qs given the already
// decomposed signed arrays directly, without re-decomposing
// (spec.md §4.3's "hash_separate_inputs"). xs must have exactly 2*Bs
// entries.
func (h *HVCHasher) HashSeparateInputs(xs []*SignedPoly) *SmallPoly {
	return hashSeparateInputsWithTable(h.pp, h.hNTT, xs)
}

// hashSeparateInputsWithTable computes Σ hNTT_i·lift(xs_i) in R_qs,
// one NTT multiply per input (independent, summed at the end: one of
// spec.md §5's three named fork-join regions), then a single inverse
// NTT. Shared by HVCHasher and HOTSHasher, which differ only in the
// dimension of their hash parameter vector (2*Bs vs 2*Bl).
func hashSeparateInputsWithTable(pp *ParamSet, hNTT []*SmallNTTPoly, xs []*SignedPoly) *SmallPoly {
	if len(xs) != len(hNTT) {
		panic(invariantf("smsig: hash: expected %d inputs, got %d", len(hNTT), len(xs)))
	}
	products := make([]*SmallNTTPoly, len(xs))
	forkJoin(len(xs), func(i int) {
		lifted := xs[i].ToSmall()
		products[i] = hNTT[i].Mul(lifted.ToNTT())
	})
	acc := products[0]
	for i := 1; i < len(products); i++ {
		acc = acc.AddNTT(products[i])
	}
	return acc.FromNTT()
}

// DecomThenHash decomposes each of a, b into Bs signed binary
// polynomials and hashes the concatenated 2*Bs array: the combiner
// used to build Merkle internal nodes (spec.md §4.2).
func (h *HVCHasher) DecomThenHash(a, b *SmallPoly) *SmallPoly {
	xs := make([]*SignedPoly, 0, 2*h.pp.Bs)
	xs = append(xs, a.Decompose()...)
	xs = append(xs, b.Decompose()...)
	return h.HashSeparateInputs(xs)
}

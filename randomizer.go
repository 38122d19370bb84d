package smsig

import "crypto/sha256"

// DeriveRandomizers implements spec.md §4.4: given an ordered list of
// roots (small-ring polynomials), concatenate their digests, hash to a
// single 32-byte seed, and sample one weight-Alpha ternary randomizer
// per root from the resulting stream. Deterministic: the same root
// list always yields the same randomizers, and no signer identity,
// message, or protocol tag is mixed in (spec.md §9, "Open question —
// randomizer domain separation": this spec mirrors the reference).
func DeriveRandomizers(pp *ParamSet, roots []*SmallPoly) []TernaryCoeffEncoding {
	h := sha256.New()
	for _, r := range roots {
		digest := r.Digest()
		h.Write(digest[:])
	}
	var seed [32]byte
	copy(seed[:], h.Sum(nil))

	c := newStream(seed)
	out := make([]TernaryCoeffEncoding, len(roots))
	for i := range roots {
		out[i] = SampleRandomizerTernary(pp, c, pp.Alpha/2)
	}
	return out
}

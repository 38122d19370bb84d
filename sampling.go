package smsig

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// newStream seeds a ChaCha20 stream cipher with the given 32-byte key
// and an all-zero nonce: every sampler in this package derives its
// randomness from a distinct, freshly-seeded stream, so a shared fixed
// nonce introduces no reuse (spec.md §4.4/§4.5/§6).
func newStream(seed [32]byte) *chacha20.Cipher {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		// Only fails on bad key/nonce lengths, which are fixed above.
		panic(wrapErrorf(err, "smsig: failed to seed ChaCha20 stream"))
	}
	return c
}

func nextUint32(c *chacha20.Cipher) uint32 {
	var buf [4]byte
	c.XORKeyStream(buf[:], buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// sampleUniformMod draws a value uniform in [0, q) from stream by
// rejection sampling against the largest multiple of q below 2^32
// (spec.md §6).
func sampleUniformMod(c *chacha20.Cipher, threshold, q uint32) uint32 {
	for {
		w := nextUint32(c)
		if w < threshold {
			return w % q
		}
	}
}

// SampleUniformSmallPoly draws a SmallPoly with coefficients uniform
// in [0, Qs).
func SampleUniformSmallPoly(pp *ParamSet, c *chacha20.Cipher) *SmallPoly {
	out := newSmallPoly(pp)
	for i := range out.Coeffs {
		out.Coeffs[i] = uint16(sampleUniformMod(c, pp.thresholdQs, pp.Qs))
	}
	return out
}

// SampleUniformLargePoly draws a LargePoly with coefficients uniform
// in [0, Ql).
func SampleUniformLargePoly(pp *ParamSet, c *chacha20.Cipher) *LargePoly {
	out := newLargePoly(pp)
	for i := range out.Coeffs {
		out.Coeffs[i] = sampleUniformMod(c, pp.thresholdQl, pp.Ql)
	}
	return out
}

// SampleBinaryPoly draws N independent uniform bits.
func SampleBinaryPoly(pp *ParamSet, c *chacha20.Cipher) *SignedPoly {
	out := newSignedPoly(pp)
	nb := (pp.N + 7) / 8
	buf := make([]byte, nb)
	c.XORKeyStream(buf, buf)
	for j := 0; j < pp.N; j++ {
		out.Coeffs[j] = int64((buf[j/8] >> uint(j%8)) & 1)
	}
	return out
}

// sampleDistinctIndices draws count distinct indices in [0, N) from
// stream by extracting indexBits-wide chunks from successive 32-bit
// keystream words and rejecting out-of-range or repeated values. This
// generalizes the original implementation's per-config extraction
// width (a byte for N=256, 9 bits for N=512) to any power-of-two N.
func sampleDistinctIndices(pp *ParamSet, c *chacha20.Cipher, count int) []int {
	if count > pp.N {
		panic(invariantf("smsig: sampleDistinctIndices: count %d exceeds N %d", count, pp.N))
	}
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	mask := uint32(1)<<uint(pp.indexBits) - 1
	chunksPerWord := 32 / pp.indexBits
	for len(out) < count {
		w := nextUint32(c)
		for chunk := 0; chunk < chunksPerWord && len(out) < count; chunk++ {
			idx := int((w >> uint(chunk*pp.indexBits)) & mask)
			if idx >= pp.N || seen[idx] {
				continue
			}
			seen[idx] = true
			out = append(out, idx)
		}
	}
	return out
}

// SampleRandomizerTernary draws a TernaryCoeffEncoding with exactly
// halfWeight +1 positions followed by halfWeight -1 positions (the
// reference's rand_ternary): used wherever spec.md's TernaryCoeffEncoding
// split representation is required, i.e. randomizer derivation
// (spec.md §4.4, halfWeight = Alpha/2).
func SampleRandomizerTernary(pp *ParamSet, c *chacha20.Cipher, halfWeight int) TernaryCoeffEncoding {
	idx := sampleDistinctIndices(pp, c, 2*halfWeight)
	return TernaryCoeffEncoding{
		Pos: append([]int(nil), idx[:halfWeight]...),
		Neg: append([]int(nil), idx[halfWeight:]...),
	}
}

// SampleWeightedTernary draws a SignedPoly with exactly weight nonzero
// coefficients, each independently +1 or -1 with a fresh sign bit (the
// reference's rand_fixed_weight_ternary): used for the HOTS secret s1
// component and for hash_to_msg_poly, both of which spec.md §4.1/§4.5
// describe as "fixed-weight ternary of weight w" without the
// split-halves structure of a randomizer.
func SampleWeightedTernary(pp *ParamSet, c *chacha20.Cipher, weight int) *SignedPoly {
	out := newSignedPoly(pp)
	idx := sampleDistinctIndices(pp, c, weight)
	for _, i := range idx {
		sign := nextUint32(c)
		if sign&1 == 0 {
			out.Coeffs[i] = 1
		} else {
			out.Coeffs[i] = -1
		}
	}
	return out
}

// SampleTernaryBoundedByBetaS draws a SignedPoly with every
// coefficient independently uniform in [-BetaS, BetaS], by rejection
// sampling over [0, 2*BetaS+1) and shifting (spec.md §4.1).
func SampleTernaryBoundedByBetaS(pp *ParamSet, c *chacha20.Cipher) *SignedPoly {
	out := newSignedPoly(pp)
	span := uint32(2*pp.BetaS + 1)
	for i := range out.Coeffs {
		v := sampleUniformMod(c, pp.thresholdBeta, span)
		out.Coeffs[i] = int64(v) - int64(pp.BetaS)
	}
	return out
}

// HashToMsgPoly derives SHA256(m), seeds a stream cipher with it, and
// samples a signed ternary polynomial of exact weight BetaS by the
// same distinct-index procedure as SampleWeightedTernary (spec.md
// §4.1, "hash_to_msg_poly").
func HashToMsgPoly(pp *ParamSet, m []byte) *SignedPoly {
	seed := sha256.Sum256(m)
	c := newStream(seed)
	return SampleWeightedTernary(pp, c, pp.BetaS)
}

package smsig

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// HotsParam is the HOTS public parameter: γ uniformly random large-ring
// polynomials a_1...a_γ, held in NTT form (spec.md §4.5).
type HotsParam struct {
	pp   *ParamSet
	ANTT []*LargeNTTPoly
}

// NewHotsParam samples a fresh HOTS parameter from stream.
func NewHotsParam(pp *ParamSet, stream *chacha20.Cipher) *HotsParam {
	a := &HotsParam{pp: pp, ANTT: make([]*LargeNTTPoly, pp.Gamma)}
	for i := range a.ANTT {
		a.ANTT[i] = SampleUniformLargePoly(pp, stream).ToNTT()
	}
	return a
}

// HotsSK is a HOTS secret key: s0_1..s0_γ and s1_1..s1_γ, held in NTT
// form (spec.md §4.5).
type HotsSK struct {
	pp       *ParamSet
	S0NTT    []*LargeNTTPoly
	S1NTT    []*LargeNTTPoly
}

// encodeCounter renders a counter as 8 big-endian bytes, the same
// fixed-width encoding the teacher's misc.go uses for tree addresses.
func encodeCounter(counter uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, counter)
	return buf
}

// HotsKeyGen derives the counter-th HOTS key pair from seed: it seeds
// a stream cipher with SHA256(seed‖counter_be_bytes), samples s0 as
// BetaS-bounded ternary and s1 as weight-BetaS ternary, and forms the
// public key v0 = Σaᵢ·s0ᵢ, v1 = Σaᵢ·s1ᵢ (spec.md §4.5).
func HotsKeyGen(pp *ParamSet, param *HotsParam, seed [32]byte, counter uint64) (*HotsPK, *HotsSK) {
	h := sha256.New()
	h.Write(seed[:])
	h.Write(encodeCounter(counter))
	var skSeed [32]byte
	copy(skSeed[:], h.Sum(nil))
	stream := newStream(skSeed)

	sk := &HotsSK{pp: pp, S0NTT: make([]*LargeNTTPoly, pp.Gamma), S1NTT: make([]*LargeNTTPoly, pp.Gamma)}
	for i := 0; i < pp.Gamma; i++ {
		sk.S0NTT[i] = SampleTernaryBoundedByBetaS(pp, stream).ToLarge().ToNTT()
		sk.S1NTT[i] = SampleWeightedTernary(pp, stream, pp.BetaS).ToLarge().ToNTT()
	}

	v0Products := make([]*LargeNTTPoly, pp.Gamma)
	v1Products := make([]*LargeNTTPoly, pp.Gamma)
	forkJoin(pp.Gamma, func(i int) {
		v0Products[i] = param.ANTT[i].Mul(sk.S0NTT[i])
		v1Products[i] = param.ANTT[i].Mul(sk.S1NTT[i])
	})
	v0NTT, v1NTT := v0Products[0], v1Products[0]
	for i := 1; i < pp.Gamma; i++ {
		v0NTT = v0NTT.AddNTT(v0Products[i])
		v1NTT = v1NTT.AddNTT(v1Products[i])
	}

	pk := &HotsPK{pp: pp, V0: v0NTT.FromNTT(), V1: v1NTT.FromNTT()}
	return pk, sk
}

// HotsSign computes σᵢ = s0ᵢ·h + s1ᵢ for the message digest h =
// hash_to_msg_poly(m), entirely in NTT form (spec.md §4.5).
func HotsSign(pp *ParamSet, sk *HotsSK, m []byte) *HotsSig {
	hNTT := HashToMsgPoly(pp, m).ToLarge().ToNTT()
	sigma := make([]*LargePoly, pp.Gamma)
	forkJoin(pp.Gamma, func(i int) {
		sigmaNTT := sk.S0NTT[i].Mul(hNTT).AddNTT(sk.S1NTT[i])
		sigma[i] = sigmaNTT.FromNTT()
	})
	return &HotsSig{pp: pp, Sigma: sigma}
}

// HotsVerify checks Σ aᵢ·σᵢ = h·v0 + v1 in the large ring (spec.md §4.5).
func HotsVerify(pp *ParamSet, param *HotsParam, pk *HotsPK, m []byte, sig *HotsSig) bool {
	if len(sig.Sigma) != pp.Gamma {
		return false
	}
	hNTT := HashToMsgPoly(pp, m).ToLarge().ToNTT()

	products := make([]*LargeNTTPoly, pp.Gamma)
	forkJoin(pp.Gamma, func(i int) {
		products[i] = param.ANTT[i].Mul(sig.Sigma[i].ToNTT())
	})
	lhsNTT := products[0]
	for i := 1; i < pp.Gamma; i++ {
		lhsNTT = lhsNTT.AddNTT(products[i])
	}

	rhsNTT := hNTT.Mul(pk.V0.ToNTT()).AddNTT(pk.V1.ToNTT())

	return lhsNTT.FromNTT().Equal(rhsNTT.FromNTT())
}

// SigningState is an in-memory, best-effort guard against reusing a
// one-time HOTS key at the same synchronization index twice. Each
// SigningState tracks its own indices only: every SMSigSK made by
// KeyGen holds a fresh one, so two keys built from the same seed do not
// see each other's signing history. It adapts the teacher's crash-safe, on-disk,
// mmap/lockfile-guarded private key container (container.go) to an
// in-memory value, since SMSig's Non-goals explicitly disclaim hard
// key-reuse protection ("nor protection against key reuse across sync
// indices") — this is a courtesy check, not a security guarantee.
type SigningState struct {
	mu   sync.Mutex
	used map[uint64]bool
}

// NewSigningState returns an empty guard.
func NewSigningState() *SigningState {
	return &SigningState{used: make(map[uint64]bool)}
}

// MarkUsed records that index has been signed at, returning a Locked
// Error if it was already marked (spec.md §7 class 2: a programming
// fault, fatal).
func (s *SigningState) MarkUsed(index uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.used[index] {
		return invariantf("smsig: signing index %d reused: one-time keys must never sign twice", index)
	}
	s.used[index] = true
	return nil
}

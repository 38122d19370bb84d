package smsig

import "testing"

func TestHotsSignVerifyRoundTrip(t *testing.T) {
	pp := testParamSet(t)
	var paramSeed [32]byte
	paramSeed[0] = 1
	param := NewHotsParam(pp, newStream(paramSeed))

	var keySeed [32]byte
	keySeed[0] = 2
	pk, sk := HotsKeyGen(pp, param, keySeed, 0)

	m := []byte("this is the message to sign")
	sig := HotsSign(pp, sk, m)

	if !HotsVerify(pp, param, pk, m, sig) {
		t.Fatalf("HotsVerify rejected a genuine signature")
	}
}

func TestHotsVerifyRejectsTamperedMessage(t *testing.T) {
	pp := testParamSet(t)
	var paramSeed [32]byte
	paramSeed[0] = 3
	param := NewHotsParam(pp, newStream(paramSeed))

	var keySeed [32]byte
	keySeed[0] = 4
	pk, sk := HotsKeyGen(pp, param, keySeed, 1)

	sig := HotsSign(pp, sk, []byte("original message"))
	if HotsVerify(pp, param, pk, []byte("tampered message"), sig) {
		t.Fatalf("HotsVerify accepted a signature for the wrong message")
	}
}

func TestHotsVerifyRejectsWrongPK(t *testing.T) {
	pp := testParamSet(t)
	var paramSeed [32]byte
	paramSeed[0] = 5
	param := NewHotsParam(pp, newStream(paramSeed))

	var seedA [32]byte
	seedA[0] = 6
	pkA, skA := HotsKeyGen(pp, param, seedA, 0)

	var seedB [32]byte
	seedB[0] = 7
	pkB, _ := HotsKeyGen(pp, param, seedB, 0)
	_ = pkA

	m := []byte("this is the message to sign")
	sig := HotsSign(pp, skA, m)
	if HotsVerify(pp, param, pkB, m, sig) {
		t.Fatalf("HotsVerify accepted a signature against the wrong public key")
	}
}

func TestHotsKeyGenDifferentCountersDifferentKeys(t *testing.T) {
	pp := testParamSet(t)
	var paramSeed [32]byte
	paramSeed[0] = 8
	param := NewHotsParam(pp, newStream(paramSeed))

	var seed [32]byte
	seed[0] = 9
	pk0, _ := HotsKeyGen(pp, param, seed, 0)
	pk1, _ := HotsKeyGen(pp, param, seed, 1)

	if pk0.V0.Equal(pk1.V0) && pk0.V1.Equal(pk1.V1) {
		t.Fatalf("HotsKeyGen produced identical keys for different counters")
	}
}

func TestAggregateHotsSigsAndVerify(t *testing.T) {
	pp := testParamSet(t)
	var paramSeed [32]byte
	paramSeed[0] = 10
	param := NewHotsParam(pp, newStream(paramSeed))

	const k = 5
	m := []byte("this is the message to sign")
	roots := make([]*SmallPoly, k)
	rpks := make([]*RandomizedHOTSPK, k)
	sigs := make([]*HotsSig, k)

	for i := 0; i < k; i++ {
		var seed [32]byte
		seed[0] = byte(20 + i)
		pk, sk := HotsKeyGen(pp, param, seed, 0)
		sig := HotsSign(pp, sk, m)

		// Use the HOTS public key's digest as a stand-in root: this test
		// exercises component aggregation directly, independent of the
		// HVC tree (see smsig_test.go for the full composed flow).
		var hasherSeed [32]byte
		hasherSeed[0] = 1
		hh := NewHOTSHasher(pp, newStream(hasherSeed))
		roots[i] = hh.DigestPK(pk.V0, pk.V1)

		rpks[i] = pk.Decompose()
		sigs[i] = sig
	}

	aggPK, err := AggregateRandomizedHOTSPKs(pp, rpks, roots)
	if err != nil {
		t.Fatalf("AggregateRandomizedHOTSPKs: %s", err)
	}
	aggSig, err := AggregateHotsSigs(pp, sigs, roots)
	if err != nil {
		t.Fatalf("AggregateHotsSigs: %s", err)
	}

	pk := aggPK.Project()
	if !HotsVerify(pp, param, pk, m, aggSig) {
		t.Fatalf("HotsVerify rejected the aggregated signature against the aggregated public key")
	}
}

func TestHotsPKDecomposeProjectRoundTrip(t *testing.T) {
	pp := testParamSet(t)
	var paramSeed [32]byte
	paramSeed[0] = 30
	param := NewHotsParam(pp, newStream(paramSeed))
	var seed [32]byte
	seed[0] = 31
	pk, _ := HotsKeyGen(pp, param, seed, 0)

	got := pk.Decompose().Project()
	if !got.V0.Equal(pk.V0) || !got.V1.Equal(pk.V1) {
		t.Fatalf("HotsPK Decompose/Project round trip failed")
	}
}

func TestHotsSigRandomizeWithTwicePanics(t *testing.T) {
	pp := testParamSet(t)
	var paramSeed [32]byte
	paramSeed[0] = 40
	param := NewHotsParam(pp, newStream(paramSeed))
	var seed [32]byte
	seed[0] = 41
	_, sk := HotsKeyGen(pp, param, seed, 0)
	sig := HotsSign(pp, sk, []byte("m"))

	r := TernaryCoeffEncoding{Pos: []int{0}, Neg: []int{1}}
	sig.RandomizeWith(r)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on double RandomizeWith")
		}
	}()
	sig.RandomizeWith(r)
}

func TestSigningStateRejectsReuse(t *testing.T) {
	s := NewSigningState()
	if err := s.MarkUsed(5); err != nil {
		t.Fatalf("MarkUsed: unexpected error on first use: %s", err)
	}
	err := s.MarkUsed(5)
	if err == nil {
		t.Fatalf("expected error on reused index")
	}
	smerr, ok := err.(Error)
	if !ok || !smerr.Locked() {
		t.Fatalf("expected a Locked Error on reused index, got %v", err)
	}
}

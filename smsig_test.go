package smsig

import "testing"

// testSetup mirrors spec.md §8's deterministic scenario: a 32-zero-byte
// seed, the "small" parameter set, and a fixed message.
func testSetup(t *testing.T) (*ParamSet, *SMSigParam) {
	t.Helper()
	pp := testParamSet(t)
	var seed [32]byte
	return pp, Setup(pp, seed)
}

const testMessage = "this is the message to sign"

func TestSignVerifySingleSigner(t *testing.T) {
	_, param := testSetup(t)
	var keySeed [32]byte
	keySeed[0] = 1
	pk, sk, err := KeyGen(param, keySeed)
	if err != nil {
		t.Fatalf("KeyGen: %s", err)
	}

	sig, err := Sign(sk, 0, []byte(testMessage))
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	if !Verify(param, pk, []byte(testMessage), sig) {
		t.Fatalf("Verify rejected a genuine single-signer signature")
	}
}

func TestSignVerifyAcrossIndices(t *testing.T) {
	_, param := testSetup(t)
	var keySeed [32]byte
	keySeed[0] = 2
	pk, sk, err := KeyGen(param, keySeed)
	if err != nil {
		t.Fatalf("KeyGen: %s", err)
	}

	numLeaves := 1 << uint(param.pp.H-1)
	for _, idx := range []int{0, 1, 5, 42, numLeaves - 1} {
		sig, err := Sign(sk, idx, []byte(testMessage))
		if err != nil {
			t.Fatalf("Sign(%d): %s", idx, err)
		}
		if !Verify(param, pk, []byte(testMessage), sig) {
			t.Fatalf("Verify rejected signature at index %d", idx)
		}
	}
}

func TestSignRejectsIndexReuse(t *testing.T) {
	_, param := testSetup(t)
	var keySeed [32]byte
	keySeed[0] = 3
	_, sk, err := KeyGen(param, keySeed)
	if err != nil {
		t.Fatalf("KeyGen: %s", err)
	}

	if _, err := Sign(sk, 7, []byte(testMessage)); err != nil {
		t.Fatalf("Sign: unexpected error on first use of index 7: %s", err)
	}
	_, err = Sign(sk, 7, []byte(testMessage))
	if err == nil {
		t.Fatalf("expected error re-signing at index 7")
	}
	smerr, ok := err.(Error)
	if !ok || !smerr.Locked() {
		t.Fatalf("expected a Locked Error re-signing at index 7, got %v", err)
	}
}

func TestVerifyRejectsBitFlippedMessage(t *testing.T) {
	_, param := testSetup(t)
	var keySeed [32]byte
	keySeed[0] = 4
	pk, sk, err := KeyGen(param, keySeed)
	if err != nil {
		t.Fatalf("KeyGen: %s", err)
	}
	sig, err := Sign(sk, 0, []byte(testMessage))
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	tampered := []byte(testMessage)
	tampered[0] ^= 1
	if Verify(param, pk, tampered, sig) {
		t.Fatalf("Verify accepted a signature for a bit-flipped message")
	}
}

func TestVerifyRejectsWrongSignerPK(t *testing.T) {
	_, param := testSetup(t)
	var seedA [32]byte
	seedA[0] = 5
	pkA, skA, err := KeyGen(param, seedA)
	if err != nil {
		t.Fatalf("KeyGen: %s", err)
	}
	var seedB [32]byte
	seedB[0] = 6
	pkB, _, err := KeyGen(param, seedB)
	if err != nil {
		t.Fatalf("KeyGen: %s", err)
	}
	_ = pkA

	sig, err := Sign(skA, 0, []byte(testMessage))
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	if Verify(param, pkB, []byte(testMessage), sig) {
		t.Fatalf("Verify accepted a signature attributed to the wrong signer")
	}
}

func TestAggregateBatchVerifyManySigners(t *testing.T) {
	_, param := testSetup(t)
	const k = 100
	m := []byte(testMessage)

	pks := make([]*SMSigPK, k)
	sigs := make([]*SMSignature, k)
	roots := make([]*SmallPoly, k)
	for i := 0; i < k; i++ {
		var seed [32]byte
		seed[0] = byte(i + 1)
		seed[1] = byte((i + 1) >> 8)
		pk, sk, err := KeyGen(param, seed)
		if err != nil {
			t.Fatalf("KeyGen(%d): %s", i, err)
		}
		sig, err := Sign(sk, 0, m)
		if err != nil {
			t.Fatalf("Sign(%d): %s", i, err)
		}
		pks[i], sigs[i], roots[i] = pk, sig, pk.Root
	}

	aggSig, err := Aggregate(param.pp, sigs, roots)
	if err != nil {
		t.Fatalf("Aggregate: %s", err)
	}
	if !BatchVerify(param, pks, m, aggSig) {
		t.Fatalf("BatchVerify rejected a genuine aggregated signature from %d signers", k)
	}
	if err := DiagnoseBatchVerify(param, pks, m, aggSig); err != nil {
		t.Fatalf("DiagnoseBatchVerify reported failure on a genuine aggregate: %s", err)
	}
}

func TestBatchVerifyRejectsTamperedMessage(t *testing.T) {
	_, param := testSetup(t)
	const k = 6
	m := []byte(testMessage)

	pks := make([]*SMSigPK, k)
	sigs := make([]*SMSignature, k)
	roots := make([]*SmallPoly, k)
	for i := 0; i < k; i++ {
		var seed [32]byte
		seed[0] = byte(100 + i)
		pk, sk, err := KeyGen(param, seed)
		if err != nil {
			t.Fatalf("KeyGen(%d): %s", i, err)
		}
		sig, err := Sign(sk, 0, m)
		if err != nil {
			t.Fatalf("Sign(%d): %s", i, err)
		}
		pks[i], sigs[i], roots[i] = pk, sig, pk.Root
	}

	aggSig, err := Aggregate(param.pp, sigs, roots)
	if err != nil {
		t.Fatalf("Aggregate: %s", err)
	}

	tampered := []byte(testMessage)
	tampered[0] ^= 1
	if BatchVerify(param, pks, tampered, aggSig) {
		t.Fatalf("BatchVerify accepted an aggregate against a tampered message")
	}
	if err := DiagnoseBatchVerify(param, pks, tampered, aggSig); err == nil {
		t.Fatalf("DiagnoseBatchVerify reported success against a tampered message")
	}
}

func TestAggregateRejectsMismatchedLengths(t *testing.T) {
	_, param := testSetup(t)
	var seed [32]byte
	seed[0] = 1
	_, sk, err := KeyGen(param, seed)
	if err != nil {
		t.Fatalf("KeyGen: %s", err)
	}
	sig, err := Sign(sk, 0, []byte(testMessage))
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}

	_, err = Aggregate(param.pp, []*SMSignature{sig}, nil)
	if err == nil {
		t.Fatalf("expected error aggregating with mismatched signature/root counts")
	}
}

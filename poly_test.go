package smsig

import "testing"

func testParamSet(t *testing.T) *ParamSet {
	t.Helper()
	pp, err := ParamSetFromName("small")
	if err != nil {
		t.Fatalf("ParamSetFromName: %s", err)
	}
	return pp
}

func TestSmallPolyDecomposeProjectRoundTrip(t *testing.T) {
	pp := testParamSet(t)
	var seed [32]byte
	seed[0] = 1
	stream := newStream(seed)
	p := SampleUniformSmallPoly(pp, stream)

	bits := p.Decompose()
	if len(bits) != pp.Bs {
		t.Fatalf("Decompose: got %d levels, want %d", len(bits), pp.Bs)
	}
	got := ProjectSmall(pp, bits)
	if !got.Equal(p) {
		t.Fatalf("ProjectSmall(Decompose(p)) != p")
	}
}

func TestLargePolyDecomposeProjectRoundTrip(t *testing.T) {
	pp := testParamSet(t)
	var seed [32]byte
	seed[0] = 2
	stream := newStream(seed)
	p := SampleUniformLargePoly(pp, stream)

	bits := p.Decompose()
	if len(bits) != pp.Bl {
		t.Fatalf("Decompose: got %d levels, want %d", len(bits), pp.Bl)
	}
	got := ProjectLarge(pp, bits)
	if !got.Equal(p) {
		t.Fatalf("ProjectLarge(Decompose(p)) != p")
	}
}

func TestTernaryCoeffEncodingWeight(t *testing.T) {
	pp := testParamSet(t)
	var seed [32]byte
	seed[0] = 3
	stream := newStream(seed)
	r := SampleRandomizerTernary(pp, stream, pp.Alpha/2)
	if r.Weight() != pp.Alpha {
		t.Fatalf("Weight() = %d, want %d", r.Weight(), pp.Alpha)
	}
	sp := r.ToSignedPoly(pp)
	var nonzero int
	for _, c := range sp.Coeffs {
		if c != 0 {
			nonzero++
		}
	}
	if nonzero != pp.Alpha {
		t.Fatalf("ToSignedPoly: got %d nonzero coefficients, want %d", nonzero, pp.Alpha)
	}
}

func TestSampleWeightedTernaryWeight(t *testing.T) {
	pp := testParamSet(t)
	var seed [32]byte
	seed[0] = 4
	stream := newStream(seed)
	sp := SampleWeightedTernary(pp, stream, pp.BetaS)
	var nonzero int
	for _, c := range sp.Coeffs {
		if c != 0 && c != 1 && c != -1 {
			t.Fatalf("coefficient out of {-1,0,1}: %d", c)
		}
		if c != 0 {
			nonzero++
		}
	}
	if nonzero != pp.BetaS {
		t.Fatalf("got weight %d, want %d", nonzero, pp.BetaS)
	}
}

func TestSignedPolyMulTernaryMatchesDenseMultiplication(t *testing.T) {
	pp := testParamSet(t)
	var seed [32]byte
	seed[0] = 5
	stream := newStream(seed)

	bin := SampleBinaryPoly(pp, stream)
	t1 := SampleRandomizerTernary(pp, stream, 3)

	got := bin.MulTernary(t1)

	tDense := t1.ToSignedPoly(pp)
	// Dense reference via NTT in the small ring (exact since coefficients are tiny).
	want := tDense.ToSmall().ToNTT().Mul(bin.ToSmall().ToNTT()).FromNTT()
	gotSmall := got.ToSmall()
	if !gotSmall.Equal(want) {
		t.Fatalf("MulTernary result does not match NTT-based reference")
	}
}

func TestHashToMsgPolyDeterministic(t *testing.T) {
	pp := testParamSet(t)
	m := []byte("this is the message to sign")
	a := HashToMsgPoly(pp, m)
	b := HashToMsgPoly(pp, m)
	if !a.ToSmall().Equal(b.ToSmall()) {
		t.Fatalf("HashToMsgPoly is not deterministic for the same message")
	}
	other := HashToMsgPoly(pp, []byte("a different message"))
	if a.ToSmall().Equal(other.ToSmall()) {
		t.Fatalf("HashToMsgPoly collided across distinct messages")
	}
}

func TestSmallPolyDigestDeterministic(t *testing.T) {
	pp := testParamSet(t)
	var seed [32]byte
	stream := newStream(seed)
	p := SampleUniformSmallPoly(pp, stream)
	if p.Digest() != p.Digest() {
		t.Fatalf("Digest is not stable across calls")
	}
}

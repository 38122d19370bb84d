package ckernel

import (
	"math/rand"
	"testing"
)

func randPoly(n int, q uint64, rng *rand.Rand) []uint64 {
	p := make([]uint64, n)
	for i := range p {
		p[i] = uint64(rng.Int63n(int64(q)))
	}
	return p
}

func TestNTTRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tc := range []struct {
		n int
		q uint64
	}{
		{256, 12289},
		{512, 61441},
	} {
		table := NewNTTTable(tc.n, tc.q)
		p := randPoly(tc.n, tc.q, rng)
		orig := append([]uint64(nil), p...)
		table.Forward(p)
		table.Inverse(p)
		for i := range p {
			if p[i] != orig[i] {
				t.Fatalf("n=%d q=%d: round trip mismatch at %d: got %d want %d", tc.n, tc.q, i, p[i], orig[i])
			}
		}
	}
}

func TestNTTMatchesSchoolbook(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, tc := range []struct {
		n int
		q uint64
	}{
		{256, 12289},
		{512, 61441},
	} {
		table := NewNTTTable(tc.n, tc.q)
		a := randPoly(tc.n, tc.q, rng)
		b := randPoly(tc.n, tc.q, rng)

		want := Schoolbook(a, b, tc.q)

		A := append([]uint64(nil), a...)
		B := append([]uint64(nil), b...)
		table.Forward(A)
		table.Forward(B)
		C := table.PointwiseMul(A, B)
		table.Inverse(C)

		for i := range C {
			if C[i] != want[i] {
				t.Fatalf("n=%d q=%d: NTT product mismatch at %d: got %d want %d", tc.n, tc.q, i, C[i], want[i])
			}
		}
	}
}

func TestTernaryMulBinaryMatchesSchoolbook(t *testing.T) {
	const n = 64
	const q = 12289
	rng := rand.New(rand.NewSource(3))

	bin := make([]int8, n)
	binU := make([]uint64, n)
	for i := range bin {
		if rng.Intn(2) == 1 {
			bin[i] = 1
			binU[i] = 1
		}
	}

	weight := 6
	used := map[int]bool{}
	var pos, neg []int
	for len(pos) < weight {
		idx := rng.Intn(n)
		if !used[idx] {
			used[idx] = true
			pos = append(pos, idx)
		}
	}
	for len(neg) < weight {
		idx := rng.Intn(n)
		if !used[idx] {
			used[idx] = true
			neg = append(neg, idx)
		}
	}

	ternU := make([]uint64, n)
	for _, idx := range pos {
		ternU[idx] = 1
	}
	for _, idx := range neg {
		ternU[idx] = q - 1
	}

	want := Schoolbook(ternU, binU, q)
	got := TernaryMulBinary(pos, neg, bin, n)
	for i := 0; i < n; i++ {
		gi := int64(got[i]) % int64(q)
		if gi < 0 {
			gi += int64(q)
		}
		if uint64(gi) != want[i] {
			t.Fatalf("ternary*binary mismatch at %d: got %d want %d", i, gi, want[i])
		}
	}
}

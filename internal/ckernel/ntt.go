// Package ckernel implements the number-theoretic-transform and sparse
// ternary convolution kernels the outer smsig package treats as
// specified black boxes, the direct analog of the teacher's
// internal/f1600x4 AVX2 Keccak permutation: a fast kernel isolated
// behind a small surface, verified against a portable schoolbook
// oracle rather than hand-vectorized.
//
// The NTT here is the standard "twisted cyclic NTT" construction for
// negacyclic rings R_q = Z_q[X]/(X^N+1) with q ≡ 1 (mod 2N): twisting
// coefficients by powers of a primitive 2N-th root of unity ψ reduces
// the negacyclic transform to an ordinary length-N cyclic NTT using
// ω = ψ² as the N-th root of unity.
package ckernel

// NTTTable holds the precomputed twiddle factors for one (N, q) pair.
// Tables are read-only after construction and safe for concurrent use.
type NTTTable struct {
	N        int
	Q        uint64
	psiPow   []uint64 // ψ^i mod Q, i in [0, N)
	psiInv   []uint64 // ψ^{-i} mod Q, i in [0, N)
	omega    uint64   // ψ², the N-th root of unity used by the cyclic NTT
	omegaInv uint64
	nInv     uint64 // N^{-1} mod Q
}

// NewNTTTable builds the twiddle tables for a negacyclic ring of
// degree n modulo the NTT-friendly prime q (q ≡ 1 mod 2n). It searches
// for a generator of (Z/qZ)* by trial, which is only ever done once
// per parameter set at setup time.
func NewNTTTable(n int, q uint64) *NTTTable {
	if n <= 0 || n&(n-1) != 0 {
		panic("ckernel: n must be a power of two")
	}
	if (q-1)%uint64(2*n) != 0 {
		panic("ckernel: q is not NTT-friendly for this n")
	}
	g := findGenerator(q)
	psi := modExp(g, (q-1)/uint64(2*n), q)
	psiInvBase := modInverse(psi, q)

	t := &NTTTable{
		N:      n,
		Q:      q,
		psiPow: make([]uint64, n),
		psiInv: make([]uint64, n),
	}
	acc, accInv := uint64(1), uint64(1)
	for i := 0; i < n; i++ {
		t.psiPow[i] = acc
		t.psiInv[i] = accInv
		acc = mulmod(acc, psi, q)
		accInv = mulmod(accInv, psiInvBase, q)
	}
	t.omega = mulmod(psi, psi, q)
	t.omegaInv = modInverse(t.omega, q)
	t.nInv = modInverse(uint64(n), q)
	return t
}

// Forward transforms coefficient-order p into the NTT (evaluation)
// domain, in place, and returns it.
func (t *NTTTable) Forward(p []uint64) []uint64 {
	if len(p) != t.N {
		panic("ckernel: Forward: length mismatch")
	}
	twisted := make([]uint64, t.N)
	for i := range p {
		twisted[i] = mulmod(p[i]%t.Q, t.psiPow[i], t.Q)
	}
	cyclicNTT(twisted, t.Q, t.omega)
	copy(p, twisted)
	return p
}

// Inverse transforms NTT-domain A back to coefficient order, in place,
// and returns it.
func (t *NTTTable) Inverse(a []uint64) []uint64 {
	if len(a) != t.N {
		panic("ckernel: Inverse: length mismatch")
	}
	untwisted := make([]uint64, t.N)
	copy(untwisted, a)
	cyclicNTT(untwisted, t.Q, t.omegaInv)
	for i := range untwisted {
		untwisted[i] = mulmod(mulmod(untwisted[i], t.nInv, t.Q), t.psiInv[i], t.Q)
	}
	copy(a, untwisted)
	return a
}

// PointwiseMul multiplies two NTT-domain vectors coefficient-wise mod
// Q, returning a freshly allocated result.
func (t *NTTTable) PointwiseMul(a, b []uint64) []uint64 {
	if len(a) != t.N || len(b) != t.N {
		panic("ckernel: PointwiseMul: length mismatch")
	}
	out := make([]uint64, t.N)
	for i := range out {
		out[i] = mulmod(a[i], b[i], t.Q)
	}
	return out
}

// cyclicNTT computes the length-n DFT of a over Z_q at powers of omega
// (an n-th root of unity), in place, using the standard iterative
// Cooley-Tukey decimation-in-time butterfly (bit-reversal permutation
// first, then combine stages of increasing length).
func cyclicNTT(a []uint64, q, omega uint64) {
	n := len(a)
	bitReverse(a)
	for length := 2; length <= n; length <<= 1 {
		wLen := modExp(omega, uint64(n/length), q)
		for i := 0; i < n; i += length {
			w := uint64(1)
			half := length / 2
			for j := 0; j < half; j++ {
				u := a[i+j]
				v := mulmod(a[i+j+half], w, q)
				a[i+j] = addmod(u, v, q)
				a[i+j+half] = submod(u, v, q)
				w = mulmod(w, wLen, q)
			}
		}
	}
}

func bitReverse(a []uint64) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

func addmod(a, b, q uint64) uint64 {
	s := a + b
	if s >= q {
		s -= q
	}
	return s
}

func submod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + q - b
}

func mulmod(a, b, q uint64) uint64 {
	return (a % q) * (b % q) % q
}

func modExp(base, exp, q uint64) uint64 {
	base %= q
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result = mulmod(result, base, q)
		}
		base = mulmod(base, base, q)
		exp >>= 1
	}
	return result
}

func modInverse(a, q uint64) uint64 {
	return modExp(a, q-2, q)
}

// primeFactors returns the distinct prime factors of x by trial
// division. Run once per parameter set, at table construction.
func primeFactors(x uint64) []uint64 {
	var factors []uint64
	n := x
	for p := uint64(2); p*p <= n; p++ {
		if n%p == 0 {
			factors = append(factors, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// findGenerator finds a generator of the multiplicative group
// (Z/qZ)*, q prime, by trial: g generates iff g^((q-1)/p) != 1 for
// every prime factor p of q-1.
func findGenerator(q uint64) uint64 {
	order := q - 1
	factors := primeFactors(order)
	for g := uint64(2); g < q; g++ {
		isGenerator := true
		for _, f := range factors {
			if modExp(g, order/f, q) == 1 {
				isGenerator = false
				break
			}
		}
		if isGenerator {
			return g
		}
	}
	panic("ckernel: no generator found: q is not prime")
}

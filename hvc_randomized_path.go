package smsig

// RandomizedSiblingPair stores the Bs-long base-2 decomposition of
// each side of a sibling pair, so it can be linearly combined.
type RandomizedSiblingPair struct {
	Left, Right []*SignedPoly
}

// RandomizedPath stores the already-decomposed signed-poly
// representation of every node in a Path, plus the signing index and
// a one-shot randomization flag (spec.md §3, §4.3).
type RandomizedPath struct {
	pp         *ParamSet
	Index      int
	Pairs      []RandomizedSiblingPair
	randomized bool
}

// Decompose converts a Path into its RandomizedPath (pre-randomization)
// representation by decomposing every node.
func (p *Path) Decompose() *RandomizedPath {
	pairs := make([]RandomizedSiblingPair, len(p.Pairs))
	for i, pair := range p.Pairs {
		pairs[i] = RandomizedSiblingPair{
			Left:  pair.Left.Decompose(),
			Right: pair.Right.Decompose(),
		}
	}
	return &RandomizedPath{pp: p.pp, Index: p.Index, Pairs: pairs}
}

// Project converts a RandomizedPath back to a Path by projecting
// every node. Path → RandomizedPath → Path is the identity
// (spec.md §8, "Path round-trip").
func (rp *RandomizedPath) Project() *Path {
	pairs := make([]SiblingPair, len(rp.Pairs))
	for i, pair := range rp.Pairs {
		pairs[i] = SiblingPair{
			Left:  ProjectSmall(rp.pp, pair.Left),
			Right: ProjectSmall(rp.pp, pair.Right),
		}
	}
	return &Path{pp: rp.pp, Index: rp.Index, Pairs: pairs}
}

// RandomizeWith multiplies every signed binary poly in every pair by
// the ternary r, using the sparse multiplier (spec.md §4.1/§4.3). A
// second call on an already-randomized path is a fatal invariant
// violation.
func (rp *RandomizedPath) RandomizeWith(r TernaryCoeffEncoding) {
	if rp.randomized {
		panic(invariantf("smsig: RandomizedPath.RandomizeWith: path at index %d already randomized", rp.Index))
	}
	forkJoin(len(rp.Pairs), func(level int) {
		pair := rp.Pairs[level]
		for b := range pair.Left {
			pair.Left[b] = pair.Left[b].MulTernary(r)
			pair.Right[b] = pair.Right[b].MulTernary(r)
		}
	})
	rp.randomized = true
}

// AggregateRandomizedPaths combines k paths (all at the same index)
// with the randomizers derived from k aggregation roots, randomizing
// each path with its own randomizer and summing the results
// coordinate-wise (spec.md §4.3). Paths must not already be
// randomized; they are consumed (mutated) by this call, matching the
// Data Model's "signatures own their components outright".
func AggregateRandomizedPaths(pp *ParamSet, paths []*RandomizedPath, roots []*SmallPoly) (*RandomizedPath, error) {
	if len(paths) != len(roots) {
		return nil, invariantf("smsig: AggregateRandomizedPaths: %d paths but %d roots", len(paths), len(roots))
	}
	randomizers := DeriveRandomizers(pp, roots)
	return aggregateRandomizedPaths(pp, paths, randomizers)
}

// aggregateRandomizedPaths is the core of AggregateRandomizedPaths,
// taking already-derived randomizers so SMSig.Aggregate can derive
// them once and share them across all three components (spec.md
// §4.6's "derive randomizers once; apply componentwise aggregation").
func aggregateRandomizedPaths(pp *ParamSet, paths []*RandomizedPath, randomizers []TernaryCoeffEncoding) (*RandomizedPath, error) {
	if len(paths) == 0 {
		return nil, errorf("smsig: AggregateRandomizedPaths: no paths given")
	}
	for _, p := range paths[1:] {
		if p.Index != paths[0].Index {
			return nil, invariantf("smsig: AggregateRandomizedPaths: mismatched indices %d and %d", paths[0].Index, p.Index)
		}
	}

	forkJoin(len(paths), func(j int) {
		paths[j].RandomizeWith(randomizers[j])
	})

	out := &RandomizedPath{
		pp:         pp,
		Index:      paths[0].Index,
		Pairs:      make([]RandomizedSiblingPair, pp.H-1),
		randomized: true,
	}
	for level := range out.Pairs {
		left := make([]*SignedPoly, pp.Bs)
		right := make([]*SignedPoly, pp.Bs)
		for b := 0; b < pp.Bs; b++ {
			left[b] = newSignedPoly(pp)
			right[b] = newSignedPoly(pp)
			for _, p := range paths {
				left[b].Add(p.Pairs[level].Left[b])
				right[b].Add(p.Pairs[level].Right[b])
			}
		}
		out.Pairs[level] = RandomizedSiblingPair{Left: left, Right: right}
	}
	return out, nil
}

// mulTernarySmall multiplies a general (non-binary) small-ring element
// x by the ternary encoding t, materialized densely and multiplied in
// NTT form: the "lifting the signed ternary to small-ring form" step
// of spec.md §4.3's aggregated root recomputation, distinct from the
// sparse ternary×binary kernel (t's other operand here is not binary).
func mulTernarySmall(pp *ParamSet, t TernaryCoeffEncoding, x *SmallPoly) *SmallPoly {
	tSmall := t.ToSignedPoly(pp).ToSmall()
	return tSmall.ToNTT().Mul(x.ToNTT()).FromNTT()
}

// VerifyAggregatedPath checks an aggregated RandomizedPath against the
// list of signer roots (spec.md §4.3's "aggregated verification").
func VerifyAggregatedPath(pp *ParamSet, agg *RandomizedPath, roots []*SmallPoly, hasher *HVCHasher) bool {
	randomizers := DeriveRandomizers(pp, roots)

	rootPrime := mulTernarySmall(pp, randomizers[0], roots[0])
	for j := 1; j < len(roots); j++ {
		rootPrime = rootPrime.Add(mulTernarySmall(pp, randomizers[j], roots[j]))
	}

	top := hasher.HashSeparateInputs(concatPairs(agg.Pairs[0]))
	if !top.Equal(rootPrime) {
		return false
	}

	H := pp.H
	j := agg.Index >> 1
	for k := 1; k <= H-2; k++ {
		hashK := hasher.HashSeparateInputs(concatPairs(agg.Pairs[k]))
		bit := (j >> uint(H-2-k)) & 1
		var expectBits []*SignedPoly
		if bit == 0 {
			expectBits = agg.Pairs[k-1].Left
		} else {
			expectBits = agg.Pairs[k-1].Right
		}
		expect := ProjectSmall(pp, expectBits)
		if !hashK.Equal(expect) {
			return false
		}
	}
	return true
}

func concatPairs(pair RandomizedSiblingPair) []*SignedPoly {
	out := make([]*SignedPoly, 0, len(pair.Left)+len(pair.Right))
	out = append(out, pair.Left...)
	out = append(out, pair.Right...)
	return out
}

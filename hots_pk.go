package smsig

// HotsPK is a HOTS public key: v0 = Σ aᵢ·s0ᵢ, v1 = Σ aᵢ·s1ᵢ in the
// large ring (spec.md §3).
type HotsPK struct {
	pp     *ParamSet
	V0, V1 *LargePoly
}

// RandomizedHOTSPK stores the Bl-long base-2 decompositions of v0 and
// v1, plus a one-shot randomization flag (spec.md §3).
type RandomizedHOTSPK struct {
	pp         *ParamSet
	V0, V1     []*SignedPoly
	randomized bool
}

// Decompose converts a HotsPK into its RandomizedHOTSPK representation.
func (pk *HotsPK) Decompose() *RandomizedHOTSPK {
	return &RandomizedHOTSPK{pp: pk.pp, V0: pk.V0.Decompose(), V1: pk.V1.Decompose()}
}

// Project converts a RandomizedHOTSPK back to a HotsPK; reprojection
// recovers the original (spec.md §3).
func (rpk *RandomizedHOTSPK) Project() *HotsPK {
	return &HotsPK{pp: rpk.pp, V0: ProjectLarge(rpk.pp, rpk.V0), V1: ProjectLarge(rpk.pp, rpk.V1)}
}

// RandomizeWith multiplies every signed-binary decomposition slice of
// v0 and v1 by t (spec.md §4.5). A second call is a fatal invariant
// violation.
func (rpk *RandomizedHOTSPK) RandomizeWith(t TernaryCoeffEncoding) {
	if rpk.randomized {
		panic(invariantf("smsig: RandomizedHOTSPK.RandomizeWith: already randomized"))
	}
	forkJoin(len(rpk.V0), func(i int) {
		rpk.V0[i] = rpk.V0[i].MulTernary(t)
		rpk.V1[i] = rpk.V1[i].MulTernary(t)
	})
	rpk.randomized = true
}

// AggregateRandomizedHOTSPKs combines k randomized-pk representations
// with the randomizers derived from k roots, randomizing each with
// its own randomizer and summing coordinate-wise (spec.md §4.5).
// Inputs are consumed (mutated) by this call.
func AggregateRandomizedHOTSPKs(pp *ParamSet, rpks []*RandomizedHOTSPK, roots []*SmallPoly) (*RandomizedHOTSPK, error) {
	if len(rpks) != len(roots) {
		return nil, invariantf("smsig: AggregateRandomizedHOTSPKs: %d pks but %d roots", len(rpks), len(roots))
	}
	randomizers := DeriveRandomizers(pp, roots)
	return aggregateRandomizedHOTSPKs(pp, rpks, randomizers)
}

// aggregateRandomizedHOTSPKs is the core of AggregateRandomizedHOTSPKs,
// taking already-derived randomizers; see aggregateRandomizedPaths.
func aggregateRandomizedHOTSPKs(pp *ParamSet, rpks []*RandomizedHOTSPK, randomizers []TernaryCoeffEncoding) (*RandomizedHOTSPK, error) {
	if len(rpks) == 0 {
		return nil, errorf("smsig: AggregateRandomizedHOTSPKs: no pks given")
	}

	forkJoin(len(rpks), func(j int) {
		rpks[j].RandomizeWith(randomizers[j])
	})

	out := &RandomizedHOTSPK{
		pp:         pp,
		V0:         make([]*SignedPoly, pp.Bl),
		V1:         make([]*SignedPoly, pp.Bl),
		randomized: true,
	}
	for b := 0; b < pp.Bl; b++ {
		out.V0[b] = newSignedPoly(pp)
		out.V1[b] = newSignedPoly(pp)
		for _, rpk := range rpks {
			out.V0[b].Add(rpk.V0[b])
			out.V1[b].Add(rpk.V1[b])
		}
	}
	return out, nil
}

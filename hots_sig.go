package smsig

// HotsSig is a HOTS signature: γ LargePolys σ, with Σ aᵢ·σᵢ = H(m)·v0 +
// v1 in the large ring when not randomized (spec.md §3).
type HotsSig struct {
	pp         *ParamSet
	Sigma      []*LargePoly
	randomized bool
}

// mulTernaryLarge multiplies a general large-ring element x by the
// ternary encoding t via NTT (x is not binary, so the sparse kernel
// does not apply here; see mulTernarySmall for the small-ring analog).
func mulTernaryLarge(pp *ParamSet, t TernaryCoeffEncoding, x *LargePoly) *LargePoly {
	tLarge := t.ToSignedPoly(pp).ToLarge()
	return tLarge.ToNTT().Mul(x.ToNTT()).FromNTT()
}

// RandomizeWith multiplies every σᵢ by t in the large ring (spec.md
// §4.5: "Signatures are randomized in the large ring"). A second call
// is a fatal invariant violation.
func (sig *HotsSig) RandomizeWith(t TernaryCoeffEncoding) {
	if sig.randomized {
		panic(invariantf("smsig: HotsSig.RandomizeWith: already randomized"))
	}
	out := make([]*LargePoly, len(sig.Sigma))
	forkJoin(len(sig.Sigma), func(i int) {
		out[i] = mulTernaryLarge(sig.pp, t, sig.Sigma[i])
	})
	sig.Sigma = out
	sig.randomized = true
}

// AggregateHotsSigs combines k signatures with the randomizers derived
// from k roots, randomizing each with its own randomizer and summing
// in the large ring (spec.md §4.5). Inputs are consumed (mutated).
func AggregateHotsSigs(pp *ParamSet, sigs []*HotsSig, roots []*SmallPoly) (*HotsSig, error) {
	if len(sigs) != len(roots) {
		return nil, invariantf("smsig: AggregateHotsSigs: %d sigs but %d roots", len(sigs), len(roots))
	}
	randomizers := DeriveRandomizers(pp, roots)
	return aggregateHotsSigs(pp, sigs, randomizers)
}

// aggregateHotsSigs is the core of AggregateHotsSigs, taking
// already-derived randomizers; see aggregateRandomizedPaths.
func aggregateHotsSigs(pp *ParamSet, sigs []*HotsSig, randomizers []TernaryCoeffEncoding) (*HotsSig, error) {
	if len(sigs) == 0 {
		return nil, errorf("smsig: AggregateHotsSigs: no signatures given")
	}

	forkJoin(len(sigs), func(j int) {
		sigs[j].RandomizeWith(randomizers[j])
	})

	out := &HotsSig{pp: pp, Sigma: make([]*LargePoly, pp.Gamma), randomized: true}
	for i := 0; i < pp.Gamma; i++ {
		acc := newLargePoly(pp)
		for _, sig := range sigs {
			acc = acc.Add(sig.Sigma[i])
		}
		out.Sigma[i] = acc
	}
	return out, nil
}

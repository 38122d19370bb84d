package smsig

import "github.com/hashicorp/go-multierror"

// SMSigParam (Π's companion in spec.md §3) bundles the HVC hasher, the
// HOTS hasher, and the HOTS public parameter drawn together at setup.
// Immutable after Setup; shared by reference across every subsequent
// call, including concurrent fork-join regions.
type SMSigParam struct {
	pp       *ParamSet
	HVC      *HVCHasher
	HOTSHash *HOTSHasher
	Hots     *HotsParam
}

// Setup draws an HVC hasher, an HOTS hasher, and HOTS parameters from
// a single stream seeded by seed (spec.md §4.6).
func Setup(pp *ParamSet, seed [32]byte) *SMSigParam {
	stream := newStream(seed)
	return &SMSigParam{
		pp:       pp,
		HVC:      NewHVCHasher(pp, stream),
		HOTSHash: NewHOTSHasher(pp, stream),
		Hots:     NewHotsParam(pp, stream),
	}
}

// SMSigSK is a signer's secret key: the 32-byte seed from which every
// one-time HOTS key is derived on the fly, the HVC tree committing to
// all 2^(H-1) of them, and a best-effort signing-index reuse guard
// (spec.md §3).
type SMSigSK struct {
	param   *SMSigParam
	Seed    [32]byte
	Tree    *Tree
	signing *SigningState
}

// SMSigPK is a signer's long-term public key: the root of their HVC
// tree (spec.md §3).
type SMSigPK struct {
	pp   *ParamSet
	Root *SmallPoly
}

// SMSignature is a (possibly aggregated) SMSig signature: a
// RandomizedPath, a RandomizedHOTSPK, and a HotsSig, all sharing a
// signing index (spec.md §3).
type SMSignature struct {
	pp      *ParamSet
	Index   int
	Path    *RandomizedPath
	HotsPK  *RandomizedHOTSPK
	HotsSig *HotsSig
}

// KeyGen builds a signer's key pair: for every index i in
// [0, 2^(H-1)) it derives (pk_i, _) = HOTS.KeyGen(seed, i), computes
// leaf_i = pk_i.digest(hots_hasher), and commits to the leaves via the
// HVC tree (spec.md §4.6). This is one of spec.md §5's three named
// fork-join regions: KeyGen's inner sweep over 2^(H-1) derivations.
func KeyGen(param *SMSigParam, seed [32]byte) (*SMSigPK, *SMSigSK, error) {
	pp := param.pp
	numLeaves := 1 << uint(pp.H-1)
	leaves := make([]*SmallPoly, numLeaves)
	forkJoin(numLeaves, func(i int) {
		pk, _ := HotsKeyGen(pp, param.Hots, seed, uint64(i))
		leaves[i] = param.HOTSHash.DigestPK(pk.V0, pk.V1)
	})

	tree, err := BuildTree(pp, param.HVC, leaves)
	if err != nil {
		return nil, nil, err
	}

	sk := &SMSigSK{param: param, Seed: seed, Tree: tree, signing: NewSigningState()}
	pk := &SMSigPK{pp: pp, Root: tree.Root()}
	return pk, sk, nil
}

// Sign derives the i-th HOTS key pair on the fly, produces the HVC
// opening for index i, signs m with the fresh HOTS key, and emits the
// path and pk in decomposed form even for a single signature, so that
// verification and later aggregation use the same representation
// (spec.md §4.6, §9 "decomposed-in-transit representation").
func Sign(sk *SMSigSK, index int, m []byte) (*SMSignature, error) {
	if err := sk.signing.MarkUsed(uint64(index)); err != nil {
		return nil, err
	}
	pp := sk.param.pp

	hotsPK, hotsSK := HotsKeyGen(pp, sk.param.Hots, sk.Seed, uint64(index))
	path, err := sk.Tree.GenProof(index)
	if err != nil {
		return nil, err
	}
	sig := HotsSign(pp, hotsSK, m)

	return &SMSignature{
		pp:      pp,
		Index:   index,
		Path:    path.Decompose(),
		HotsPK:  hotsPK.Decompose(),
		HotsSig: sig,
	}, nil
}

// Verify checks a single signer's signature against that signer's
// public key; an aggregated signature is checked with BatchVerify
// instead. It short-circuits on the first failing sub-check
// (spec.md §9's Open Question decision: "implementers should prefer
// short-circuiting... for security hygiene").
func Verify(param *SMSigParam, pk *SMSigPK, m []byte, sig *SMSignature) bool {
	hotsPK := sig.HotsPK.Project()
	if !HotsVerify(param.pp, param.Hots, hotsPK, m, sig.HotsSig) {
		return false
	}

	path := sig.Path.Project()
	if !path.Verify(pk.Root, param.HVC) {
		return false
	}

	leafDigest := param.HOTSHash.DigestPK(hotsPK.V0, hotsPK.V1)
	if !leafDigest.Equal(path.BottomLeaf()) {
		return false
	}
	return true
}

// Aggregate combines k signatures (all at the same index) using the
// randomizers derived once from the k signer roots, sharing that
// single randomizer vector across all three components (spec.md
// §4.6's Aggregate).
func Aggregate(pp *ParamSet, sigs []*SMSignature, roots []*SmallPoly) (*SMSignature, error) {
	if len(sigs) != len(roots) {
		return nil, invariantf("smsig: Aggregate: %d signatures but %d roots", len(sigs), len(roots))
	}
	if len(sigs) == 0 {
		return nil, errorf("smsig: Aggregate: no signatures given")
	}
	for _, s := range sigs[1:] {
		if s.Index != sigs[0].Index {
			return nil, invariantf("smsig: Aggregate: mismatched indices %d and %d", sigs[0].Index, s.Index)
		}
	}

	randomizers := DeriveRandomizers(pp, roots)

	paths := make([]*RandomizedPath, len(sigs))
	rpks := make([]*RandomizedHOTSPK, len(sigs))
	hsigs := make([]*HotsSig, len(sigs))
	for i, s := range sigs {
		paths[i], rpks[i], hsigs[i] = s.Path, s.HotsPK, s.HotsSig
	}

	aggPath, err := aggregateRandomizedPaths(pp, paths, randomizers)
	if err != nil {
		return nil, err
	}
	aggPK, err := aggregateRandomizedHOTSPKs(pp, rpks, randomizers)
	if err != nil {
		return nil, err
	}
	aggSig, err := aggregateHotsSigs(pp, hsigs, randomizers)
	if err != nil {
		return nil, err
	}

	return &SMSignature{pp: pp, Index: sigs[0].Index, Path: aggPath, HotsPK: aggPK, HotsSig: aggSig}, nil
}

// BatchVerify checks an aggregated signature against the vector of
// signer public keys (spec.md §4.6's BatchVerify). Like Verify, it
// short-circuits on the first failing sub-check.
func BatchVerify(param *SMSigParam, pks []*SMSigPK, m []byte, aggSig *SMSignature) bool {
	pp := param.pp
	roots := make([]*SmallPoly, len(pks))
	for i, pk := range pks {
		roots[i] = pk.Root
	}

	aggHotsPK := aggSig.HotsPK.Project()
	if !HotsVerify(pp, param.Hots, aggHotsPK, m, aggSig.HotsSig) {
		return false
	}

	if !VerifyAggregatedPath(pp, aggSig.Path, roots, param.HVC) {
		return false
	}

	leafDigest := param.HOTSHash.DigestRandomizedPK(aggSig.HotsPK)
	aggPath := aggSig.Path.Project()
	if !leafDigest.Equal(aggPath.BottomLeaf()) {
		return false
	}
	return true
}

// DiagnoseBatchVerify runs every BatchVerify sub-check unconditionally
// and returns a multierror describing every failure (nil if all
// pass). This preserves the reference implementation's
// non-short-circuiting, diagnostic-printing batch_verify as an
// explicit opt-in diagnostic mode (spec.md §7, §9's Open Question
// decision) — never used by the accept/reject path itself.
func DiagnoseBatchVerify(param *SMSigParam, pks []*SMSigPK, m []byte, aggSig *SMSignature) error {
	pp := param.pp
	roots := make([]*SmallPoly, len(pks))
	for i, pk := range pks {
		roots[i] = pk.Root
	}

	var result *multierror.Error

	aggHotsPK := aggSig.HotsPK.Project()
	if !HotsVerify(pp, param.Hots, aggHotsPK, m, aggSig.HotsSig) {
		result = multierror.Append(result, errorf("smsig: BatchVerify: aggregated HOTS signature does not verify"))
		log.Logf("smsig: batch verify: HOTS sub-check failed")
	}

	if !VerifyAggregatedPath(pp, aggSig.Path, roots, param.HVC) {
		result = multierror.Append(result, errorf("smsig: BatchVerify: aggregated HVC path does not verify"))
		log.Logf("smsig: batch verify: HVC path sub-check failed")
	}

	leafDigest := param.HOTSHash.DigestRandomizedPK(aggSig.HotsPK)
	aggPath := aggSig.Path.Project()
	if !leafDigest.Equal(aggPath.BottomLeaf()) {
		result = multierror.Append(result, errorf("smsig: BatchVerify: HOTS pk digest does not match path leaf"))
		log.Logf("smsig: batch verify: leaf digest sub-check failed")
	}

	return result.ErrorOrNil()
}

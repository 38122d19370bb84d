package smsig

// Tree is the HVC Merkle tree (spec.md §4.2): a level-ordered array of
// internal nodes (root at index 0, children of k at 2k+1 and 2k+2)
// over 2^(H-1) leaf SmallPolys. The tree exclusively owns its node
// arrays; paths copied out of it are independent values.
type Tree struct {
	pp     *ParamSet
	hasher *HVCHasher
	leaves []*SmallPoly
	nodes  []*SmallPoly // level-ordered internal nodes, len 2^(H-1)-1
}

// BuildTree builds a tree bottom-up over the given leaves, computing
// the lowest internal level from the leaves and each higher level
// from its children (spec.md §4.2). len(leaves) must equal 2^(H-1).
func BuildTree(pp *ParamSet, hasher *HVCHasher, leaves []*SmallPoly) (*Tree, error) {
	numLeaves := 1 << uint(pp.H-1)
	if len(leaves) != numLeaves {
		return nil, errorf("smsig: BuildTree: expected %d leaves, got %d", numLeaves, len(leaves))
	}
	t := &Tree{
		pp:     pp,
		hasher: hasher,
		leaves: leaves,
		nodes:  make([]*SmallPoly, numLeaves-1),
	}

	// Lowest internal level: one node per leaf pair.
	lowestStart := numLeaves/2 - 1
	forkJoin(numLeaves/2, func(i int) {
		t.nodes[lowestStart+i] = hasher.DecomThenHash(leaves[2*i], leaves[2*i+1])
	})

	// Each higher level from its children, root last.
	for level := pp.H - 3; level >= 0; level-- {
		start := 1<<uint(level) - 1
		count := 1 << uint(level)
		forkJoin(count, func(i int) {
			k := start + i
			t.nodes[k] = hasher.DecomThenHash(t.nodes[2*k+1], t.nodes[2*k+2])
		})
	}
	return t, nil
}

// Root returns the tree's root SmallPoly, the signer's SMSig public key.
func (t *Tree) Root() *SmallPoly { return t.nodes[0] }

// GenProof returns the ordered H-1 sibling pairs for leaf index i,
// top-to-bottom (spec.md §4.2).
func (t *Tree) GenProof(i int) (*Path, error) {
	numLeaves := 1 << uint(t.pp.H-1)
	if i < 0 || i >= numLeaves {
		return nil, errorf("smsig: GenProof: index %d out of range [0, %d)", i, numLeaves)
	}
	pairs := make([]SiblingPair, t.pp.H-1)

	base := i &^ 1
	pairs[t.pp.H-2] = SiblingPair{Left: t.leaves[base], Right: t.leaves[base+1]}

	lowestStart := numLeaves/2 - 1
	idx := lowestStart + i/2
	for level := t.pp.H - 3; level >= 0; level-- {
		parent := (idx - 1) / 2
		pairs[level] = SiblingPair{Left: t.nodes[2*parent+1], Right: t.nodes[2*parent+2]}
		idx = parent
	}

	return &Path{pp: t.pp, Index: i, Pairs: pairs}, nil
}

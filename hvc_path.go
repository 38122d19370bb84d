package smsig

// SiblingPair is one level of an HVC opening: the on-path node and its
// sibling, ordered (left, right).
type SiblingPair struct {
	Left, Right *SmallPoly
}

// Path is a plain (non-randomized) HVC opening: H-1 sibling pairs,
// top-to-bottom, for leaf index Index (spec.md §3, §4.2).
type Path struct {
	pp    *ParamSet
	Index int
	Pairs []SiblingPair
}

// Verify recomputes the root from the top pair and checks every lower
// pair's hash against the index-selected element of the pair above
// (spec.md §4.2's "plain verification").
func (p *Path) Verify(root *SmallPoly, hasher *HVCHasher) bool {
	H := p.pp.H
	top := hasher.DecomThenHash(p.Pairs[0].Left, p.Pairs[0].Right)
	if !top.Equal(root) {
		return false
	}
	j := p.Index >> 1
	for k := 1; k <= H-2; k++ {
		hashK := hasher.DecomThenHash(p.Pairs[k].Left, p.Pairs[k].Right)
		bit := (j >> uint(H-2-k)) & 1
		var expect *SmallPoly
		if bit == 0 {
			expect = p.Pairs[k-1].Left
		} else {
			expect = p.Pairs[k-1].Right
		}
		if !hashK.Equal(expect) {
			return false
		}
	}
	return true
}

// BottomLeaf returns the path's on-path leaf: Pairs[H-2].Left if Index
// is even, Pairs[H-2].Right if odd (spec.md §4.2/§4.6).
func (p *Path) BottomLeaf() *SmallPoly {
	bottom := p.Pairs[len(p.Pairs)-1]
	if p.Index%2 == 0 {
		return bottom.Left
	}
	return bottom.Right
}

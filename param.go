package smsig

import (
	"fmt"
	"math/bits"

	"github.com/smsig/smsig/internal/ckernel"
)

// ParamSetName identifies one of the two shipped configurations.
//
//go:generate enumer -type ParamSetName
type ParamSetName uint8

const (
	// Small is the compact configuration: N=256, q_s=12289, q_l=10,571,777.
	Small ParamSetName = iota
	// Large is the higher-security configuration: N=512, q_s=61441, q_l=28,930,049.
	Large
)

// ParamSet (Π in spec.md) bundles the process-wide constants of one
// SMSig configuration plus their NTT precomputation tables. Built once
// by ParamSetFromName and shared read-only across every subsequent call,
// including from concurrent fork-join regions (spec.md §5).
type ParamSet struct {
	Name ParamSetName

	N     int    // polynomial degree
	H     int    // tree height; 2^(H-1) signing indices
	Qs    uint32 // small modulus
	Bs    int    // ceil(log2(Qs))
	Ql    uint32 // large modulus
	Bl    int    // ceil(log2(Ql))
	Gamma int    // HOTS dimension
	Alpha int    // randomizer weight (even)
	BetaS int    // HOTS secret second-component weight bound

	// Derived.
	indexBits     int    // bits needed to sample a distinct index in [0, N)
	thresholdQs   uint32 // largest multiple of Qs below 2^32
	thresholdQl   uint32 // largest multiple of Ql below 2^32
	thresholdBeta uint32 // largest multiple of (2*BetaS+1) below 2^32

	smallNTT *ckernel.NTTTable
	largeNTT *ckernel.NTTTable
}

type regEntry struct {
	name ParamSetName
	p    ParamSet
}

// registry of named SMSig parameter sets (spec.md §6).
var registry = []regEntry{
	{Small, ParamSet{
		Name: Small, N: 256, H: 21,
		Qs: 12289, Bs: 14,
		Ql: 10571777, Bl: 24,
		Gamma: 43, BetaS: 59, Alpha: 22,
	}},
	{Large, ParamSet{
		Name: Large, N: 512, H: 21,
		Qs: 61441, Bs: 16,
		Ql: 28930049, Bl: 25,
		Gamma: 44, BetaS: 44, Alpha: 20,
	}},
}

func (n ParamSetName) String() string {
	switch n {
	case Small:
		return "small"
	case Large:
		return "large"
	default:
		return fmt.Sprintf("ParamSetName(%d)", uint8(n))
	}
}

// ListParamSetNames returns the names of every shipped configuration.
func ListParamSetNames() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name.String()
	}
	return names
}

// ParamSetFromName resolves a shipped configuration by name ("small"
// or "large") and finishes its NTT precomputation. This is the one
// place in the package allowed to do nontrivial setup work outside of
// Setup itself, since the tables depend only on (N, q) and not on any
// randomness.
func ParamSetFromName(name string) (*ParamSet, error) {
	for _, e := range registry {
		if e.name.String() == name {
			pp := e.p
			pp.precompute()
			return &pp, nil
		}
	}
	return nil, errorf("smsig: unknown parameter set %q (have: %v)", name, ListParamSetNames())
}

func (pp *ParamSet) precompute() {
	pp.indexBits = bits.Len(uint(pp.N - 1))
	pp.thresholdQs = largestMultipleBelow2_32(uint64(pp.Qs))
	pp.thresholdQl = largestMultipleBelow2_32(uint64(pp.Ql))
	pp.thresholdBeta = largestMultipleBelow2_32(uint64(2*pp.BetaS + 1))
	pp.smallNTT = ckernel.NewNTTTable(pp.N, uint64(pp.Qs))
	pp.largeNTT = ckernel.NewNTTTable(pp.N, uint64(pp.Ql))
}

// largestMultipleBelow2_32 returns floor(2^32/m)*m, the largest
// multiple of m strictly below 2^32, used as a rejection-sampling
// threshold (spec.md §6).
func largestMultipleBelow2_32(m uint64) uint32 {
	const span = uint64(1) << 32
	return uint32((span / m) * m)
}

func (pp *ParamSet) String() string {
	return fmt.Sprintf("SMSig-%s(N=%d,H=%d,qs=%d,ql=%d)", pp.Name, pp.N, pp.H, pp.Qs, pp.Ql)
}

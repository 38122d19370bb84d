package smsig

import "testing"

func TestParamSetFromNameKnown(t *testing.T) {
	for _, name := range []string{"small", "large"} {
		pp, err := ParamSetFromName(name)
		if err != nil {
			t.Fatalf("ParamSetFromName(%q): %s", name, err)
		}
		if pp.N <= 0 || pp.N&(pp.N-1) != 0 {
			t.Fatalf("%s: N=%d is not a power of two", name, pp.N)
		}
		if pp.smallNTT == nil || pp.largeNTT == nil {
			t.Fatalf("%s: NTT tables not precomputed", name)
		}
	}
}

func TestParamSetFromNameUnknown(t *testing.T) {
	if _, err := ParamSetFromName("bogus"); err == nil {
		t.Fatalf("expected error for unknown parameter set")
	}
}

func TestListParamSetNames(t *testing.T) {
	names := ListParamSetNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 parameter sets, got %d: %v", len(names), names)
	}
}

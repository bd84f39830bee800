package model

import "testing"

func TestMax_Empty(t *testing.T) {
	if got := Max(); got.Found() {
		t.Errorf("Max() = %v, want None", got)
	}

	if got := Max(None(), None(), None()); got.Found() {
		t.Errorf("Max of empties = %v, want None", got)
	}
}

func TestMax_NoneIsIdentity(t *testing.T) {
	v := Found(MustVersion("5.008"))

	if got := Max(None(), v, None()); !got.Found() || !got.Version().Equal(v.Version()) {
		t.Errorf("Max(None, 5.008, None) = %v, want 5.008", got)
	}
}

func TestMax_PicksHighest(t *testing.T) {
	low := Found(MustVersion("5.005"))
	mid := Found(MustVersion("5.006"))
	high := Found(MustVersion("5.010"))

	got := Max(mid, high, low)
	if !got.Version().Equal(high.Version()) {
		t.Errorf("Max = %v, want 5.010", got)
	}

	// Order must not matter.
	if again := Max(low, mid, high); !again.Version().Equal(got.Version()) {
		t.Errorf("Max is order sensitive: %v vs %v", again, got)
	}
}

func TestFinding_String(t *testing.T) {
	if got := None().String(); got != "" {
		t.Errorf("None().String() = %q, want empty", got)
	}

	if got := Found(MustVersion("5.006")).String(); got != "5.006" {
		t.Errorf("Found(5.006).String() = %q", got)
	}
}

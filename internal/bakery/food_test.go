package bakery

import (
	"math/rand"
	"testing"
	"time"
)

func TestKindSpecs(t *testing.T) {
	tests := []struct {
		kind  Kind
		name  string
		bake  time.Duration
		score int
	}{
		{KindClassic, "Classic Croissant", 5 * time.Second, 100},
		{KindSalad, "Salad Croissant", 6 * time.Second, 120},
		{KindRainbow, "Rainbow Croissant", 8 * time.Second, 250},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.kind.Name() != tc.name {
				t.Errorf("Name() = %q, expected %q", tc.kind.Name(), tc.name)
			}
			if tc.kind.BakeTime() != tc.bake {
				t.Errorf("BakeTime() = %v, expected %v", tc.kind.BakeTime(), tc.bake)
			}
			if tc.kind.BaseScore() != tc.score {
				t.Errorf("BaseScore() = %d, expected %d", tc.kind.BaseScore(), tc.score)
			}
		})
	}
}

func TestUnknownKindIsClamped(t *testing.T) {
	k := Kind(42)
	if k.BakeTime() != time.Second {
		t.Errorf("BakeTime() = %v, expected the 1s floor", k.BakeTime())
	}
	if k.BaseScore() != 0 {
		t.Errorf("BaseScore() = %d, expected 0", k.BaseScore())
	}
}

func TestRandomKindCoversAllVariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := make(map[Kind]int)
	for i := 0; i < 300; i++ {
		seen[RandomKind(rng)]++
	}
	for _, k := range Kinds {
		if seen[k] == 0 {
			t.Errorf("%v never picked in 300 draws", k)
		}
	}
}

func TestFoodAdvanceOnlyForward(t *testing.T) {
	tests := []struct {
		name     string
		from, to State
		ok       bool
	}{
		{"raw to perfect", StateRaw, StatePerfect, true},
		{"raw to burn", StateRaw, StateBurn, true},
		{"perfect to burn", StatePerfect, StateBurn, true},
		{"perfect to raw", StatePerfect, StateRaw, false},
		{"burn to raw", StateBurn, StateRaw, false},
		{"burn to perfect", StateBurn, StatePerfect, false},
		{"burn to burn", StateBurn, StateBurn, false},
		{"raw to raw", StateRaw, StateRaw, false},
		{"past burn", StateRaw, StateBurn + 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFood(1, KindClassic, 0, 0)
			f.state = tc.from
			if got := f.advance(tc.to); got != tc.ok {
				t.Errorf("advance(%v) from %v = %v, expected %v", tc.to, tc.from, got, tc.ok)
			}
			expected := tc.from
			if tc.ok {
				expected = tc.to
			}
			if f.State() != expected {
				t.Errorf("State() = %v, expected %v", f.State(), expected)
			}
		})
	}
}

func TestIsPerfectlyBaked(t *testing.T) {
	f := newFood(1, KindClassic, 0, 0)

	tests := []struct {
		actual   time.Duration
		expected bool
	}{
		{5 * time.Second, true},
		{4 * time.Second, true},
		{6 * time.Second, true},
		{3999 * time.Millisecond, false},
		{6001 * time.Millisecond, false},
		{0, false},
	}

	for _, tc := range tests {
		if got := f.IsPerfectlyBaked(tc.actual); got != tc.expected {
			t.Errorf("IsPerfectlyBaked(%v) = %v, expected %v", tc.actual, got, tc.expected)
		}
	}
}

func TestFoodViewIsACopy(t *testing.T) {
	f := newFood(3, KindRainbow, 10, 20)
	v := f.View()
	f.x = 99

	if v.X != 10 || v.Y != 20 || v.ID != 3 || v.Kind != KindRainbow || v.State != StateRaw {
		t.Errorf("View() = %+v", v)
	}
}

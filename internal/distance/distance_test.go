package distance

import (
	"math"
	"testing"
	"time"
)

func TestSumWeightedAverage(t *testing.T) {
	ds := []Distance{
		New(0.1).WithWeight(2),
		New(0.9).WithWeight(1),
		New(0.5).WithWeight(3),
	}
	got := Sum(ds).Base()
	want := (0.1*2 + 0.9*1 + 0.5*3) / 6
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Sum() = %v, want %v", got, want)
	}
}

func TestSumEmpty(t *testing.T) {
	if got := Sum(nil); got != MinDistance {
		t.Fatalf("Sum(nil) = %v, want MinDistance", got)
	}
}

func TestStringDistanceSymmetric(t *testing.T) {
	a, b := "Foo Bar", "Bar Foo Baz"
	if BetweenStrings(a, b).Base() != BetweenStrings(b, a).Base() {
		t.Fatal("string distance is not symmetric")
	}
}

func TestStringDistanceNormalization(t *testing.T) {
	d := BetweenStrings("Foo & Bar, The", "The Foo and Bar")
	if d.Base() != 0 {
		t.Fatalf("normalized distance = %v, want 0", d.Base())
	}
}

func TestStringDistanceEmptyBoth(t *testing.T) {
	if d := BetweenStrings("", ""); d != MinDistance {
		t.Fatalf("empty-vs-empty = %v, want MinDistance", d)
	}
}

func TestEqualIdentifier(t *testing.T) {
	if d := EqualIdentifier(" abc ", "abc"); d != MinDistance {
		t.Fatalf("trimmed equal identifiers = %v, want MinDistance", d)
	}
	if d := EqualIdentifier("abc", "def"); d != MaxDistance {
		t.Fatalf("distinct identifiers = %v, want MaxDistance", d)
	}
	if d := EqualIdentifier("", ""); d != MaxDistance {
		t.Fatalf("both-empty identifiers = %v, want MaxDistance (never equal)", d)
	}
}

func TestBetweenDurationsGraceAndClamp(t *testing.T) {
	cases := []struct {
		lhs, rhs time.Duration
		want     float64
	}{
		{30 * time.Second, 30*time.Second + 5*time.Second, 0},             // within grace
		{30 * time.Second, 40*time.Second + time.Millisecond, 0.001 / 30}, // just over grace
		{30 * time.Second, 80 * time.Second, 1},                           // well past cap
	}
	for _, c := range cases {
		got := BetweenDurations(c.lhs, c.rhs).Base()
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("BetweenDurations(%v,%v) = %v, want %v", c.lhs, c.rhs, got, c.want)
		}
	}
}

func TestBetweenOptionsOrMinMax(t *testing.T) {
	foo, bar := "foo", "bar"
	if d := BetweenOptionsOrMinMax(nil, nil, BetweenStrings); d != MinDistance {
		t.Fatalf("both nil = %v, want MinDistance", d)
	}
	if d := BetweenOptionsOrMinMax(&foo, nil, BetweenStrings); d != MaxDistance {
		t.Fatalf("one nil = %v, want MaxDistance", d)
	}
	if d := BetweenOptionsOrMinMax(&foo, &bar, BetweenStrings).Base(); d != BetweenStrings(foo, bar).Base() {
		t.Fatalf("both present should delegate to f")
	}
}

func TestDifferenceToDistance(t *testing.T) {
	if NewBothMissing().ToDistance() != MinDistance {
		t.Fatal("BothMissing.ToDistance() should be MIN")
	}
	if NewAdded().ToDistance() != MaxDistance {
		t.Fatal("Added.ToDistance() should be MAX")
	}
	if NewRemoved().ToDistance() != MaxDistance {
		t.Fatal("Removed.ToDistance() should be MAX")
	}
	bp := NewBothPresent(New(0.5))
	if bp.ToDistance().Base() != 0.5 {
		t.Fatal("BothPresent.ToDistance() should return inner distance")
	}
}

func TestDifferenceToDistanceIfBothPresent(t *testing.T) {
	if NewAdded().ToDistanceIfBothPresent() != nil {
		t.Fatal("Added should have no both-present distance")
	}
	bp := NewBothPresent(New(0.25))
	got := bp.ToDistanceIfBothPresent()
	if got == nil || got.Base() != 0.25 {
		t.Fatal("BothPresent should expose its inner distance")
	}
}

func TestBetweenOptionStrings(t *testing.T) {
	foo, foobar := "foo", "foobar"
	d := BetweenOptionStrings(&foo, &foobar)
	if d.Kind() != BothPresent {
		t.Fatal("expected BothPresent")
	}
	if got := d.ToDistance().Base(); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("ToDistance() = %v, want 0.5", got)
	}
}

func TestBetweenRatio(t *testing.T) {
	if d := BetweenRatio(5, 5); d != MinDistance {
		t.Fatalf("equal ratio = %v, want MIN", d)
	}
	if d := BetweenRatio(0, 5); d != MaxDistance {
		t.Fatalf("zero-vs-nonzero ratio = %v, want MAX", d)
	}
	if got := BetweenRatio(3, 6).Base(); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("BetweenRatio(3,6) = %v, want 0.5", got)
	}
}

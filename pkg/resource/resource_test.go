package resource

import "testing"

func TestAddSub(t *testing.T) {
	a := New(10)
	b := New(3)
	if got := a.Add(b); got.Memory != 13 {
		t.Fatalf("Add: got %d, want 13", got.Memory)
	}
	if got := a.Sub(b); got.Memory != 7 {
		t.Fatalf("Sub: got %d, want 7", got.Memory)
	}
}

func TestGreaterThan(t *testing.T) {
	if !New(5).GreaterThan(New(4)) {
		t.Fatal("expected 5 > 4")
	}
	if New(4).GreaterThan(New(4)) {
		t.Fatal("expected 4 not > 4")
	}
	if New(4).GreaterThan(New(5)) {
		t.Fatal("expected 4 not > 5")
	}
}

func TestDivideAndCeilByZero(t *testing.T) {
	if got := DivideAndCeil(10, 0); got != 0 {
		t.Fatalf("DivideAndCeil by zero: got %d, want 0", got)
	}
}

func TestDivideAndCeilRounds(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{10, 5, 2},
		{11, 5, 3},
		{1, 5, 1},
		{0, 5, 0},
	}
	for _, c := range cases {
		if got := DivideAndCeil(c.a, c.b); got != c.want {
			t.Fatalf("DivideAndCeil(%d,%d): got %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestIsNone(t *testing.T) {
	if !NONE.IsNone() {
		t.Fatal("NONE should be IsNone")
	}
	if New(1).IsNone() {
		t.Fatal("New(1) should not be IsNone")
	}
}

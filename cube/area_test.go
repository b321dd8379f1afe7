package cube

import "testing"

func TestAreaContains(t *testing.T) {
	a := NewArea(Pos{0, 0}, Pos{4, 4})
	if !a.Contains(Pos{0, 0}) {
		t.Fatal("expected area to contain its min corner")
	}
	if a.Contains(Pos{4, 0}) {
		t.Fatal("area must be half-open: max corner is excluded")
	}
	if a.Contains(Pos{-1, 0}) {
		t.Fatal("did not expect area to contain a position west of its min")
	}
}

func TestAreaGrowShrink(t *testing.T) {
	a := NewArea(Pos{10, 10}, Pos{4, 4})
	grown := a.Grow(2)
	if grown.Min != (Pos{8, 8}) || grown.Size != (Pos{8, 8}) {
		t.Fatalf("unexpected grown area: %+v", grown)
	}
	shrunk := grown.Grow(-2)
	if shrunk != a {
		t.Fatalf("grow(-n) did not invert grow(n): got %+v want %+v", shrunk, a)
	}
}

func TestAreaContainsArea(t *testing.T) {
	outer := NewArea(Pos{0, 0}, Pos{10, 10})
	inner := NewArea(Pos{2, 2}, Pos{4, 4})
	if !outer.ContainsArea(inner) {
		t.Fatal("expected outer to contain inner")
	}
	if outer.ContainsArea(NewArea(Pos{8, 8}, Pos{4, 4})) {
		t.Fatal("area extending past outer's max should not be contained")
	}
}

func TestAreaBetween(t *testing.T) {
	a := Between(Pos{5, 5}, Pos{2, 8})
	if a.Min != (Pos{2, 5}) || a.Max() != (Pos{6, 9}) {
		t.Fatalf("unexpected area from Between: %+v", a)
	}
}

func TestPosChebyshevManhattan(t *testing.T) {
	p, o := Pos{0, 0}, Pos{3, -4}
	if got := p.Chebyshev(o); got != 4 {
		t.Fatalf("chebyshev: got %d want 4", got)
	}
	if got := p.Manhattan(o); got != 7 {
		t.Fatalf("manhattan: got %d want 7", got)
	}
}

func TestPosDivModFloored(t *testing.T) {
	q, r := Pos{-1, -17}.DivMod(16)
	if q != (Pos{-1, -2}) || r != (Pos{15, 15}) {
		t.Fatalf("unexpected floored divmod: q=%+v r=%+v", q, r)
	}
}

func TestDirectionsTo(t *testing.T) {
	dirs := Pos{0, 0}.DirectionsTo(Pos{1, -1})
	if len(dirs) != 2 || dirs[0] != North || dirs[1] != East {
		t.Fatalf("unexpected directions: %v", dirs)
	}
	if dirs := (Pos{0, 0}).DirectionsTo(Pos{0, 0}); len(dirs) != 0 {
		t.Fatalf("expected no directions to self, got %v", dirs)
	}
}

package cube

// Area is a half-open axis-aligned rectangle of positions, identified by its
// minimum corner and its size. Area{Min: (0,0), Size: (2,2)} encloses exactly
// the four positions (0,0), (1,0), (0,1), (1,1).
type Area struct {
	Min, Size Pos
}

// NewArea constructs an Area from a minimum corner and a size. A Size with a
// non-positive component describes an empty Area.
func NewArea(min, size Pos) Area {
	return Area{Min: min, Size: size}
}

// Centered returns an Area of the given size centred as closely as possible
// on center. When size is odd along an axis the centre position is exact;
// when even, the extra cell is placed toward negative x/y (size 4 around 0
// covers -2..1).
func Centered(center, size Pos) Area {
	return Area{Min: Pos{center.X - size.X/2, center.Y - size.Y/2}, Size: size}
}

// Between returns the smallest Area enclosing both a and b (inclusive).
func Between(a, b Pos) Area {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Area{Min: Pos{minX, minY}, Size: Pos{maxX - minX + 1, maxY - minY + 1}}
}

// Max returns the exclusive maximum corner of the Area (Min + Size).
func (a Area) Max() Pos {
	return Pos{a.Min.X + a.Size.X, a.Min.Y + a.Size.Y}
}

// Empty reports whether the Area encloses no positions.
func (a Area) Empty() bool {
	return a.Size.X <= 0 || a.Size.Y <= 0
}

// Contains reports whether p lies within the Area.
func (a Area) Contains(p Pos) bool {
	max := a.Max()
	return p.X >= a.Min.X && p.X < max.X && p.Y >= a.Min.Y && p.Y < max.Y
}

// ContainsArea reports whether every position in o also lies in a.
func (a Area) ContainsArea(o Area) bool {
	if o.Empty() {
		return true
	}
	oMax, aMax := o.Max(), a.Max()
	return o.Min.X >= a.Min.X && o.Min.Y >= a.Min.Y && oMax.X <= aMax.X && oMax.Y <= aMax.Y
}

// Overlaps reports whether a and o share at least one position.
func (a Area) Overlaps(o Area) bool {
	if a.Empty() || o.Empty() {
		return false
	}
	aMax, oMax := a.Max(), o.Max()
	return a.Min.X < oMax.X && aMax.X > o.Min.X && a.Min.Y < oMax.Y && aMax.Y > o.Min.Y
}

// Grow inflates the Area by n cells on every side. A negative n shrinks it;
// shrinking past zero size yields an empty Area.
func (a Area) Grow(n int) Area {
	return Area{
		Min:  Pos{a.Min.X - n, a.Min.Y - n},
		Size: Pos{a.Size.X + 2*n, a.Size.Y + 2*n},
	}
}

// Iter calls f for every position enclosed by the Area, in row-major order
// (y outer, x inner), stopping early if f returns false.
func (a Area) Iter(f func(Pos) bool) {
	if a.Empty() {
		return
	}
	max := a.Max()
	for y := a.Min.Y; y < max.Y; y++ {
		for x := a.Min.X; x < max.X; x++ {
			if !f(Pos{x, y}) {
				return
			}
		}
	}
}

// Positions materializes every position enclosed by the Area. Prefer Iter in
// hot paths to avoid the allocation.
func (a Area) Positions() []Pos {
	if a.Empty() {
		return nil
	}
	out := make([]Pos, 0, a.Size.X*a.Size.Y)
	a.Iter(func(p Pos) bool {
		out = append(out, p)
		return true
	})
	return out
}

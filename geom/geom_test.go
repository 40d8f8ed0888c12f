package geom

import (
	"math"
	"testing"
)

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Vec2
		wantHit        bool
		want           Vec2
	}{
		{"cross at origin", Vec2{-1, 0}, Vec2{1, 0}, Vec2{0, -1}, Vec2{0, 1}, true, Vec2{0, 0}},
		{"touching endpoint", Vec2{0, 0}, Vec2{10, 0}, Vec2{10, -5}, Vec2{10, 5}, true, Vec2{10, 0}},
		{"miss short", Vec2{0, 0}, Vec2{5, 0}, Vec2{10, -5}, Vec2{10, 5}, false, Vec2{}},
		{"parallel", Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 1}, Vec2{10, 1}, false, Vec2{}},
		{"collinear", Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 0}, Vec2{15, 0}, false, Vec2{}},
		{"degenerate point", Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 0}, Vec2{5, 0}, false, Vec2{}},
		{"diagonal", Vec2{0, 0}, Vec2{10, 10}, Vec2{0, 10}, Vec2{10, 0}, true, Vec2{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := SegmentIntersection(tt.p1, tt.p2, tt.p3, tt.p4)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && got.Dist(tt.want) > 1e-9 {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentIntersectionSymmetric(t *testing.T) {
	segs := []Segment{
		{Vec2{0, 0}, Vec2{100, 0}},
		{Vec2{50, -50}, Vec2{50, 50}},
		{Vec2{0, 0}, Vec2{100, 100}},
		{Vec2{0, 100}, Vec2{100, 0}},
		{Vec2{0, 10}, Vec2{100, 10}},
		{Vec2{200, 200}, Vec2{300, 250}},
		{Vec2{120, -3}, Vec2{-20, 77}},
	}

	for i, a := range segs {
		for j, b := range segs {
			if i == j {
				continue
			}
			p, hitAB := SegmentIntersection(a.A, a.B, b.A, b.B)
			q, hitBA := SegmentIntersection(b.A, b.B, a.A, a.B)
			if hitAB != hitBA {
				t.Errorf("segments %d,%d: hit asymmetric (%v vs %v)", i, j, hitAB, hitBA)
				continue
			}
			if hitAB && p.Dist(q) > 1e-6 {
				t.Errorf("segments %d,%d: points differ %v vs %v", i, j, p, q)
			}
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	edges := r.Edges()

	// Consecutive edges share endpoints and the loop closes.
	for i := range edges {
		next := edges[(i+1)%4]
		if edges[i].B != next.A {
			t.Errorf("edge %d end %v != edge %d start %v", i, edges[i].B, (i+1)%4, next.A)
		}
	}
	if edges[0].A != (Vec2{10, 20}) || edges[1].B != (Vec2{40, 60}) {
		t.Errorf("unexpected corners: %v", edges)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !a.Intersects(Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(Rect{X: 10, Y: 0, W: 10, H: 10}) {
		t.Error("edge-adjacent rects should not intersect")
	}
	if a.Intersects(Rect{X: 20, Y: 20, W: 1, H: 1}) {
		t.Error("distant rects should not intersect")
	}
}

func TestRectIntersectsCircle(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		c    Circle
		want bool
	}{
		{"centre inside", Circle{Vec2{5, 5}, 1}, true},
		{"touching side", Circle{Vec2{15, 5}, 5}, true},
		{"near corner miss", Circle{Vec2{14, 14}, 5}, false},
		{"near corner hit", Circle{Vec2{13, 13}, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IntersectsCircle(tt.c); got != tt.want {
				t.Errorf("IntersectsCircle(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

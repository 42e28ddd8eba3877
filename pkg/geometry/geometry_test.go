package geometry

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

const eps = 1e-9

func TestAxisAngle_StartsAtTop(t *testing.T) {
	for _, n := range []int{1, 3, 6, 18} {
		if got := AxisAngle(0, n); got != -90 {
			t.Errorf("AxisAngle(0, %d) = %v, want -90", n, got)
		}
	}
}

func TestAxisAngle_KnownValues(t *testing.T) {
	cases := []struct {
		i, n int
		want float64
	}{
		{1, 4, 0},
		{2, 4, 90},
		{3, 4, 180},
		{1, 3, 30},
		{2, 3, 150},
		{0, 0, -90},
		{5, -1, -90},
	}
	for _, tc := range cases {
		if got := AxisAngle(tc.i, tc.n); math.Abs(got-tc.want) > eps {
			t.Errorf("AxisAngle(%d, %d) = %v, want %v", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestAxisAngles_Degenerate(t *testing.T) {
	if got := AxisAngles(0); got != nil {
		t.Errorf("AxisAngles(0) = %v, want nil", got)
	}
	if got := Positions(-3, Point{}, 10); len(got) != 0 {
		t.Errorf("Positions(-3) = %v, want empty", got)
	}
}

func TestAxisAngles_EvenlySpaced(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(t, "n")
		angles := AxisAngles(n)
		if len(angles) != n {
			t.Fatalf("got %d angles, want %d", len(angles), n)
		}
		if angles[0] != -90 {
			t.Fatalf("angle(0) = %v, want -90", angles[0])
		}
		step := 360.0 / float64(n)
		for i := 1; i < n; i++ {
			if d := angles[i] - angles[i-1]; math.Abs(d-step) > 1e-9 {
				t.Fatalf("angle(%d)-angle(%d) = %v, want %v", i, i-1, d, step)
			}
		}
	})
}

func TestPointAt_DistanceFromCenter(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		center := Point{
			X: rapid.Float64Range(-1e4, 1e4).Draw(t, "cx"),
			Y: rapid.Float64Range(-1e4, 1e4).Draw(t, "cy"),
		}
		radius := rapid.Float64Range(0, 1e4).Draw(t, "radius")
		angle := rapid.Float64Range(-720, 720).Draw(t, "angle")

		p := PointAt(center, angle, radius)
		if d := p.Distance(center); math.Abs(d-radius) > 1e-6*math.Max(1, radius) {
			t.Fatalf("distance = %v, want %v", d, radius)
		}
	})
}

func TestPointAt_CardinalDirections(t *testing.T) {
	c := Point{X: 100, Y: 100}
	cases := []struct {
		angle float64
		want  Point
	}{
		{-90, Point{100, 50}},
		{0, Point{150, 100}},
		{90, Point{100, 150}},
		{180, Point{50, 100}},
	}
	for _, tc := range cases {
		got := PointAt(c, tc.angle, 50)
		if got.Distance(tc.want) > 1e-9 {
			t.Errorf("PointAt(%v) = %+v, want %+v", tc.angle, got, tc.want)
		}
	}
}

func TestClockAngle(t *testing.T) {
	if got := ClockAngle(0, 6); got != 0 {
		t.Errorf("ClockAngle(0,6) = %v, want 0", got)
	}
	if got := ClockAngle(3, 6); math.Abs(got-180) > eps {
		t.Errorf("ClockAngle(3,6) = %v, want 180", got)
	}
	if got := NormalizeDegrees(-30); math.Abs(got-330) > eps {
		t.Errorf("NormalizeDegrees(-30) = %v, want 330", got)
	}
}

func TestBounds(t *testing.T) {
	pts := Positions(4, Point{X: 10, Y: 10}, 5)
	lo, hi := Bounds(pts)
	if math.Abs(lo.X-5) > eps || math.Abs(lo.Y-5) > eps || math.Abs(hi.X-15) > eps || math.Abs(hi.Y-15) > eps {
		t.Errorf("Bounds = %+v %+v", lo, hi)
	}
	lo, hi = Bounds(nil)
	if lo != (Point{}) || hi != (Point{}) {
		t.Errorf("Bounds(nil) = %+v %+v, want zero", lo, hi)
	}
}

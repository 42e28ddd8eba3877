// Package geometry places N labelled axes evenly around a circle.
//
// Axis 0 sits at 12 o'clock and axes advance clockwise (screen coordinates,
// y grows downward), matching a clock-face layout.
package geometry

import "math"

// StartAngle is the screen angle, in degrees, of axis 0.
const StartAngle = -90.0

// Point is a position in screen coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// AxisAngle returns the screen angle in degrees of axis i out of n.
// n <= 0 yields StartAngle so a singleton fallback still points up.
func AxisAngle(i, n int) float64 {
	if n <= 0 {
		return StartAngle
	}
	return (360.0/float64(n))*float64(i) + StartAngle
}

// AxisAngles returns the angle of every axis; nil when n <= 0.
func AxisAngles(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = AxisAngle(i, n)
	}
	return out
}

// ClockAngle returns the angle of axis i measured clockwise from 12 o'clock,
// normalized to [0, 360).
func ClockAngle(i, n int) float64 {
	return NormalizeDegrees(AxisAngle(i, n) - StartAngle)
}

// NormalizeDegrees wraps deg into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// PointAt converts (angle, distance) around center into a screen point.
func PointAt(center Point, angleDeg, distance float64) Point {
	rad := Radians(angleDeg)
	return Point{
		X: center.X + distance*math.Cos(rad),
		Y: center.Y + distance*math.Sin(rad),
	}
}

// Positions returns the n axis end points at radius. Empty for n <= 0.
func Positions(n int, center Point, radius float64) []Point {
	angles := AxisAngles(n)
	out := make([]Point, len(angles))
	for i, a := range angles {
		out[i] = PointAt(center, a, radius)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of pts.
// The zero rectangle is returned for an empty slice.
func Bounds(pts []Point) (minPt, maxPt Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	minPt, maxPt = pts[0], pts[0]
	for _, p := range pts[1:] {
		minPt.X = math.Min(minPt.X, p.X)
		minPt.Y = math.Min(minPt.Y, p.Y)
		maxPt.X = math.Max(maxPt.X, p.X)
		maxPt.Y = math.Max(maxPt.Y, p.Y)
	}
	return minPt, maxPt
}

// Package geom provides the small fixed-width vector, barycentric
// coordinate, and bounding-box types shared by every layer of the
// psurface module.
package geom

import "math"

// Vec3 is a point or direction in 3-space.
type Vec3 struct {
	X, Y, Z float64
}

// XYZ creates a Vec3 from its three coordinates.
func XYZ(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(v1 Vec3) Vec3 {
	return Vec3{v.X + v1.X, v.Y + v1.Y, v.Z + v1.Z}
}

func (v Vec3) Sub(v1 Vec3) Vec3 {
	return Vec3{v.X - v1.X, v.Y - v1.Y, v.Z - v1.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(v1 Vec3) float64 {
	return v.X*v1.X + v.Y*v1.Y + v.Z*v1.Z
}

func (v Vec3) Cross(v1 Vec3) Vec3 {
	return Vec3{
		v.Y*v1.Z - v.Z*v1.Y,
		v.Z*v1.X - v.X*v1.Z,
		v.X*v1.Y - v.Y*v1.X,
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Dist(v1 Vec3) float64 {
	return v.Sub(v1).Norm()
}

// Normalize returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

func (v Vec3) Min(v1 Vec3) Vec3 {
	return Vec3{math.Min(v.X, v1.X), math.Min(v.Y, v1.Y), math.Min(v.Z, v1.Z)}
}

func (v Vec3) Max(v1 Vec3) Vec3 {
	return Vec3{math.Max(v.X, v1.X), math.Max(v.Y, v1.Y), math.Max(v.Z, v1.Z)}
}

func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Vec2 is a 2D point, used for barycentric-frame intermediate math
// (the local (u, v) coordinates of a domain or target triangle).
type Vec2 struct {
	X, Y float64
}

func XY(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(v1 Vec2) Vec2 {
	return Vec2{v.X + v1.X, v.Y + v1.Y}
}

func (v Vec2) Sub(v1 Vec2) Vec2 {
	return Vec2{v.X - v1.X, v.Y - v1.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(v1 Vec2) float64 {
	return v.X*v1.X + v.Y*v1.Y
}

func (v Vec2) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Cross2D returns the scalar (z-component) cross product of two 2D
// vectors; its sign gives the orientation of the angle from v to v1.
func (v Vec2) Cross2D(v1 Vec2) float64 {
	return v.X*v1.Y - v.Y*v1.X
}

package farm

import "math"

// Point addresses a tile by grid coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec is a position or displacement in world pixels.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v translated by w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Dist returns the euclidean distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	return math.Hypot(v.X-w.X, v.Y-w.Y)
}

// Rect is an axis-aligned pixel rectangle, min-inclusive and max-exclusive.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAround builds a rectangle of the given size centered on c.
func RectAround(c Vec, w, h float64) Rect {
	return Rect{
		MinX: c.X - w/2, MinY: c.Y - h/2,
		MaxX: c.X + w/2, MaxY: c.Y + h/2,
	}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Contains reports whether the point p lies inside r.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// TileOf maps a pixel position to the tile containing it.
func TileOf(v Vec, tileSize int) Point {
	ts := float64(tileSize)
	return Point{X: int(math.Floor(v.X / ts)), Y: int(math.Floor(v.Y / ts))}
}

// TileRect returns the pixel bounds of a tile.
func TileRect(p Point, tileSize int) Rect {
	ts := float64(tileSize)
	return Rect{
		MinX: float64(p.X) * ts, MinY: float64(p.Y) * ts,
		MaxX: float64(p.X+1) * ts, MaxY: float64(p.Y+1) * ts,
	}
}

// TileCenter returns the pixel center of a tile.
func TileCenter(p Point, tileSize int) Vec {
	ts := float64(tileSize)
	return Vec{X: (float64(p.X) + 0.5) * ts, Y: (float64(p.Y) + 0.5) * ts}
}

package game

import "math"

// Point is a world coordinate. Y grows upwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry holds the drawing dimensions of a board.
type Geometry struct {
	FieldSize        float64 // width/height of a single field
	BorderWidth      float64 // width of the border between two fields
	OuterBorderWidth float64 // width of the frame around the fields
	Center           Point   // world position of the board's centre
}

func DefaultGeometry() Geometry {
	return Geometry{FieldSize: 50, BorderWidth: 4, OuterBorderWidth: 12}
}

// Layout converts between world coordinates and squares for one board size.
type Layout struct {
	rows             int
	cols             int
	fieldSize        float64
	outerBorderWidth float64
	// distance of 2 neighbouring fields, field size + border width
	pitch float64
	// upper-left corner of the field area, outer border excluded
	upperLeftCorner Point
	// centre of the field in the upper-left corner
	upperLeftField Point
	width          float64
	height         float64
}

func NewLayout(rows, cols int, g Geometry) Layout {
	if g.FieldSize <= 0 {
		panic("field size should be positive")
	}
	pitch := g.FieldSize + g.BorderWidth
	width := float64(cols)*pitch - g.BorderWidth
	height := float64(rows)*pitch - g.BorderWidth
	corner := Point{X: g.Center.X - width/2, Y: g.Center.Y + height/2}
	return Layout{
		rows:             rows,
		cols:             cols,
		fieldSize:        g.FieldSize,
		outerBorderWidth: g.OuterBorderWidth,
		pitch:            pitch,
		upperLeftCorner:  corner,
		upperLeftField:   Point{X: corner.X + g.FieldSize/2, Y: corner.Y - g.FieldSize/2},
		width:            width,
		height:           height,
	}
}

// Layout returns the world layout of this board for the given geometry.
func (b *Board) Layout(g Geometry) Layout {
	return NewLayout(b.rows, b.cols, g)
}

// WorldToSquare converts a world position to the square it falls on. Points on the
// outer border or outside the board map to no square.
func (l Layout) WorldToSquare(pt Point) (Position, bool) {
	dx := pt.X - l.upperLeftCorner.X
	dy := l.upperLeftCorner.Y - pt.Y
	if dx < 0 || l.width <= dx || dy < 0 || l.height <= dy {
		return Position{}, false
	}
	x := int(math.Floor(dx / l.pitch))
	y := int(math.Floor(dy / l.pitch))
	return Position{X: min(x, l.cols-1), Y: min(y, l.rows-1)}, true
}

// SquareToWorld returns the world position of the centre of a square.
func (l Layout) SquareToWorld(p Position) Point {
	return Point{
		X: l.upperLeftField.X + float64(p.X)*l.pitch,
		Y: l.upperLeftField.Y - float64(p.Y)*l.pitch,
	}
}

// Size returns the full width and height of the board including the outer border.
func (l Layout) Size() (float64, float64) {
	return l.width + 2*l.outerBorderWidth, l.height + 2*l.outerBorderWidth
}

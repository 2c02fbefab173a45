package game

import "fmt"

// Position addresses a square by column (X) and row (Y). Row 0 is the top edge.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a unit step along a rank or a file.
type Direction struct {
	DX int
	DY int
}

var (
	Left  = Direction{DX: -1}
	Right = Direction{DX: 1}
	Up    = Direction{DY: -1}
	Down  = Direction{DY: 1}
)

// Directions is the neighbour enumeration order used by every scan on the board.
var Directions = [4]Direction{Left, Right, Up, Down}

func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// directionTo returns the unit step from one square to an orthogonally adjacent one.
func directionTo(from, to Position) Direction {
	return Direction{DX: sign(to.X - from.X), DY: sign(to.Y - from.Y)}
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

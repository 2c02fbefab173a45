package scenario

import (
	"strconv"
	"strings"

	"hnefatafl/game"
)

type FieldCategory uint8

const (
	Plain FieldCategory = iota
	ThroneField
	DefenderHome
	AttackerHome
	EscapeField
)

// Structure is the field layout of a board. Categories above EscapeField are
// decorative and carry no rules.
type Structure struct {
	Rows   int
	Cols   int
	Fields []FieldCategory
}

func (s Structure) At(p game.Position) FieldCategory {
	return s.Fields[p.Y*s.Cols+p.X]
}

// Find returns the positions of all fields of one category in row-major order.
func (s Structure) Find(category FieldCategory) []game.Position {
	var result []game.Position
	for i, c := range s.Fields {
		if c == category {
			result = append(result, game.Position{X: i % s.Cols, Y: i / s.Cols})
		}
	}
	return result
}

// ParseStructure reads a grid of digits, one board row per line. A leading newline
// and trailing newlines are ignored.
func ParseStructure(data string) (Structure, error) {
	data = strings.TrimPrefix(data, "\n")
	data = strings.TrimRight(data, "\n")
	if data == "" {
		return Structure{}, ErrEmpty
	}

	var s Structure
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 {
			s.Cols = len(line)
		} else if len(line) != s.Cols {
			return Structure{}, &ParseError{Line: i + 1, Err: ErrInconsistentRowLength}
		}
		for j, c := range line {
			if c < '0' || '9' < c {
				return Structure{}, &ParseError{Line: i + 1, Column: j + 1, Err: ErrInvalidCharacter}
			}
			s.Fields = append(s.Fields, FieldCategory(c-'0'))
		}
		s.Rows++
	}
	return s, nil
}

type Placement struct {
	Side     game.Side
	Kind     game.Kind
	Position game.Position
}

// ParsePlacements reads one piece per line in the form "<a|d> <k|s> <col> <row>".
// Blank lines are skipped and tokens after the fourth are ignored.
func ParsePlacements(data string, rows, cols int) ([]Placement, error) {
	var result []Placement
	for i, line := range strings.Split(data, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		fail := func(err error) ([]Placement, error) {
			return nil, &ParseError{Line: i + 1, Err: err}
		}
		if len(tokens) < 4 {
			return fail(ErrNotEnoughTokens)
		}

		var p Placement
		switch tokens[0] {
		case "a":
			p.Side = game.Attacker
		case "d":
			p.Side = game.Defender
		default:
			return fail(ErrInvalidSide)
		}
		switch tokens[1] {
		case "s":
			p.Kind = game.Soldier
		case "k":
			p.Kind = game.King
		default:
			return fail(ErrInvalidKind)
		}
		x, err := strconv.Atoi(tokens[2])
		if err != nil || x < 0 {
			return fail(ErrInvalidCoordinate)
		}
		y, err := strconv.Atoi(tokens[3])
		if err != nil || y < 0 {
			return fail(ErrInvalidCoordinate)
		}
		if x >= cols || y >= rows {
			return fail(ErrOutOfBounds)
		}
		p.Position = game.Position{X: x, Y: y}
		result = append(result, p)
	}
	return result, nil
}

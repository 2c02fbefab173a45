package scenario

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty                 = errors.New("structure should contain at least one row")
	ErrInconsistentRowLength = errors.New("data should have consistent row length")
	ErrInvalidCharacter      = errors.New("data should only consist of digits and newlines")
	ErrNotEnoughTokens       = errors.New("a piece should be described by 4 space-separated values")
	ErrInvalidSide           = errors.New("side should be either a or d")
	ErrInvalidKind           = errors.New("kind should be either k or s")
	ErrInvalidCoordinate     = errors.New("coordinate should be a non-negative integer")
	ErrOutOfBounds           = errors.New("piece should be placed on the board")
	ErrKingCount             = errors.New("scenario should have exactly one defender king")
)

// ParseError locates a parse failure in a structure or placement text. Lines and
// columns start at 1; a zero column means the whole line.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

package game

import (
	"fmt"
	"strings"
)

// SurroundRule selects how the King has to be enclosed for the Attacker to win.
type SurroundRule uint8

const (
	// Strict requires all four neighbours of the King to hold Attacker pieces.
	Strict SurroundRule = iota
	// Extended also accepts an empty neighbour if it is the throne or an escape
	// square, and ignores neighbours beyond the edge of the board.
	Extended
)

func (r SurroundRule) String() string {
	if r == Extended {
		return "extended"
	}
	return "strict"
}

func ParseSurroundRule(s string) (SurroundRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "extended":
		return Extended, nil
	}
	return Strict, fmt.Errorf("unknown surround rule %q", s)
}

type Rules interface {
	KingEscaped(b *Board) bool
	KingSurrounded(b *Board) bool
}

type StandardRules struct {
	Surround SurroundRule
}

func NewStandardRules() *StandardRules {
	return &StandardRules{Surround: Strict}
}

func (r *StandardRules) String() string {
	return r.Surround.String() + " surround"
}

func (r *StandardRules) KingEscaped(b *Board) bool {
	king, ok := b.King()
	return ok && b.IsEscape(king.Position)
}

func (r *StandardRules) KingSurrounded(b *Board) bool {
	king, ok := b.King()
	if !ok {
		return false
	}
	for _, d := range Directions {
		p := king.Position.Add(d)
		if !b.IsOnBoard(p) {
			if r.Surround == Strict {
				return false
			}
			continue
		}
		if pc, occupied := b.PieceAt(p); occupied {
			if pc.Side != Attacker {
				return false
			}
			continue
		}
		if r.Surround == Strict || !(b.IsThrone(p) || b.IsEscape(p)) {
			return false
		}
	}
	return true
}

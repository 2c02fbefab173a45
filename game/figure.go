package game

import (
	"fmt"
	"strings"
)

type Side uint8

const (
	Attacker Side = iota
	Defender
)

func (s Side) Opponent() Side {
	if s == Attacker {
		return Defender
	}
	return Attacker
}

// Index maps the side to 0 (Attacker) or 1 (Defender) for per-side arrays.
func (s Side) Index() int { return int(s) }

func (s Side) String() string {
	if s == Attacker {
		return "attacker"
	}
	return "defender"
}

type Kind uint8

const (
	Soldier Kind = iota
	King
)

func (k Kind) String() string {
	if k == King {
		return "king"
	}
	return "soldier"
}

// PieceID is the slot of a piece in the board's arena. IDs stay valid after capture.
type PieceID int

const NoPiece PieceID = -1

type Piece struct {
	ID       PieceID  `json:"id"`
	Side     Side     `json:"side"`
	Kind     Kind     `json:"kind"`
	Position Position `json:"position"`
	Captured bool     `json:"captured"`
}

func (p Piece) IsKing() bool { return p.Kind == King }

func (p Piece) String() string {
	return fmt.Sprintf("%s %s #%d at %s", p.Side, p.Kind, p.ID, p.Position)
}

// ParseSide reads "attacker" or "defender", case-insensitive.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attacker", "a":
		return Attacker, nil
	case "defender", "d":
		return Defender, nil
	}
	return Attacker, fmt.Errorf("unknown side %q", s)
}

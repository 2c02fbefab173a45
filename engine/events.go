package engine

import "hnefatafl/game"

type EventKind uint8

const (
	MoveCommitted EventKind = iota
	PieceCaptured
	TurnChanged
	GameEnded
)

func (k EventKind) String() string {
	switch k {
	case MoveCommitted:
		return "move committed"
	case PieceCaptured:
		return "piece captured"
	case TurnChanged:
		return "turn changed"
	case GameEnded:
		return "game ended"
	}
	return "unknown"
}

// Event is emitted for presentation code in the order the engine resolved it.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind    `json:"kind"`
	Version uint64       `json:"version"`
	Move    game.Move    `json:"move"`
	Piece   game.Piece   `json:"piece"`
	Side    game.Side    `json:"side"`
	Outcome game.Outcome `json:"outcome"`
}

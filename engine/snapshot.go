package engine

import (
	"time"

	"hnefatafl/game"
)

// Snapshot is an immutable view of a game at one version. It is safe to read
// from any goroutine.
type Snapshot struct {
	GameID    string
	Version   uint64
	Turn      game.Side
	Outcome   game.Outcome
	MoveCount int
	LastMove  *game.Move
	Remaining [2]time.Duration
	state     *game.GameState
}

func newSnapshot(id string, version uint64, gs *game.GameState, remaining [2]time.Duration) *Snapshot {
	state := gs.Copy()
	return &Snapshot{
		GameID:    id,
		Version:   version,
		Turn:      state.Turn,
		Outcome:   state.Outcome,
		MoveCount: state.MoveCount,
		LastMove:  state.LastMove,
		Remaining: remaining,
		state:     state,
	}
}

func (s *Snapshot) Ended() bool { return s.Outcome.Ended() }

// Board returns a copy of the board that callers may change freely.
func (s *Snapshot) Board() *game.Board { return s.state.Board.Copy() }

// State returns the snapshot as a game.State for search and analysis code.
func (s *Snapshot) State() game.State { return s.state.Copy() }

func (s *Snapshot) PieceAt(p game.Position) (game.Piece, bool) {
	return s.state.Board.PieceAt(p)
}

func (s *Snapshot) Pieces() []game.Piece { return s.state.Board.Pieces() }

func (s *Snapshot) LegalMoves() []game.Move { return s.state.LegalMoves() }

func (s *Snapshot) Hash() game.StateHash { return s.state.Hash() }

func (s *Snapshot) String() string { return s.state.Board.String() }

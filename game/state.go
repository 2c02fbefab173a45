package game

import (
	"encoding/binary"
	"hash/fnv"
)

// GameState is a complete game in progress: board, side to move and outcome.
// Apply mutates it in place, Play works on a copy.
type GameState struct {
	Board     *Board
	Rules     Rules
	Turn      Side
	Outcome   Outcome
	MoveCount int
	LastMove  *Move
}

var _ State = (*GameState)(nil)

// MoveResult describes everything a committed move changed.
type MoveResult struct {
	Move     Move    `json:"move"`
	Piece    Piece   `json:"piece"`
	Captured []Piece `json:"captured,omitempty"`
	Outcome  Outcome `json:"outcome"`
}

func (r MoveResult) HasCaptured() bool { return len(r.Captured) > 0 }

func NewGameState(board *Board, rules Rules, starting Side) *GameState {
	if rules == nil {
		rules = NewStandardRules()
	}
	gs := &GameState{Board: board, Rules: rules, Turn: starting}
	// a scenario may already be decided
	gs.Evaluate()
	return gs
}

func (gs *GameState) Copy() *GameState {
	cp := *gs
	cp.Board = gs.Board.Copy()
	if gs.LastMove != nil {
		m := *gs.LastMove
		cp.LastMove = &m
	}
	return &cp
}

// Validate checks a move against the current state without changing it.
func (gs *GameState) Validate(m Move) error {
	if gs.Outcome.Ended() {
		return ErrGameAlreadyEnded
	}
	id, ok := gs.Board.At(m.From)
	if !ok {
		return ErrNoPieceAtSource
	}
	if gs.Board.Piece(id).Side != gs.Turn {
		return ErrWrongSideToMove
	}
	if !gs.Board.isLegalDestination(id, m.To) {
		return ErrIllegalDestination
	}
	return nil
}

// Apply commits a move: the piece is moved, captures are resolved, the win
// conditions are checked and, if the game goes on, the turn passes. A rejected
// move leaves the state untouched.
func (gs *GameState) Apply(m Move) (MoveResult, error) {
	if err := gs.Validate(m); err != nil {
		return MoveResult{}, err
	}

	id, _ := gs.Board.At(m.From)
	gs.Board.move(id, m.To)
	captured := gs.Board.resolveCaptures(id)

	gs.MoveCount++
	gs.LastMove = &m
	gs.Evaluate()
	if !gs.Outcome.Ended() {
		gs.Turn = gs.Turn.Opponent()
	}

	return MoveResult{
		Move:     m,
		Piece:    gs.Board.Piece(id),
		Captured: captured,
		Outcome:  gs.Outcome,
	}, nil
}

// Evaluate runs the board win conditions. It does nothing once the game has ended.
func (gs *GameState) Evaluate() Outcome {
	if gs.Outcome.Ended() {
		return gs.Outcome
	}
	gs.Outcome = evaluate(gs.Board, gs.Rules)
	return gs.Outcome
}

// Expire ends the game because side ran out of time. Only the side to move can
// lose on time; for any other side or a finished game it reports false.
func (gs *GameState) Expire(side Side) bool {
	if gs.Outcome.Ended() || side != gs.Turn {
		return false
	}
	gs.Outcome = win(side.Opponent(), OpponentClockExpired)
	return true
}

func (gs *GameState) Player() string {
	return gs.Turn.String()
}

func (gs *GameState) LegalMoves() []Move {
	if gs.Outcome.Ended() {
		return nil
	}
	return gs.Board.LegalMoves(gs.Turn)
}

func (gs *GameState) Play(m Move) State {
	next := gs.Copy()
	if _, err := next.Apply(m); err != nil {
		panic("invalid move " + m.String() + ": " + err.Error())
	}
	return next
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Turn))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Outcome.Status))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Outcome.Winner))

	// Hash square contents row by row
	for y := 0; y < gs.Board.rows; y++ {
		for x := 0; x < gs.Board.cols; x++ {
			code := int64(0)
			if pc, ok := gs.Board.PieceAt(Position{X: x, Y: y}); ok {
				code = 1 + int64(pc.Side)*2 + int64(pc.Kind)
			}
			binary.Write(hasher, binary.LittleEndian, code)
		}
	}

	return StateHash(hasher.Sum64())
}

func (gs *GameState) Winner() string {
	if !gs.Outcome.Ended() {
		return ""
	}
	return gs.Outcome.Winner.String()
}

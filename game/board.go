package game

import (
	"fmt"
	"strings"

	"hnefatafl/utils"
)

// BoardOptions describes the static layout of a board.
type BoardOptions struct {
	Rows    int
	Cols    int
	Throne  Position
	Escapes []Position
}

// Board owns the pieces of a game. Pieces live in an arena indexed by PieceID and
// squares hold the ID of their occupant, or NoPiece.
type Board struct {
	rows    int
	cols    int
	throne  Position
	escapes []Position
	pieces  []Piece
	squares []PieceID
}

// NewBoard creates an empty board after checking the layout invariants.
func NewBoard(opts BoardOptions) (*Board, error) {
	if opts.Rows < 2 || opts.Cols < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBoardTooSmall, opts.Cols, opts.Rows)
	}
	b := &Board{
		rows:    opts.Rows,
		cols:    opts.Cols,
		throne:  opts.Throne,
		squares: make([]PieceID, opts.Rows*opts.Cols),
	}
	for i := range b.squares {
		b.squares[i] = NoPiece
	}
	if !b.IsOnBoard(opts.Throne) {
		return nil, fmt.Errorf("%w: throne %s", ErrOffBoard, opts.Throne)
	}
	for _, pos := range opts.Escapes {
		if !b.IsOnBoard(pos) {
			return nil, fmt.Errorf("%w: escape square %s", ErrOffBoard, pos)
		}
		if pos == opts.Throne {
			return nil, fmt.Errorf("%w: %s", ErrThroneIsEscape, pos)
		}
		if utils.FindIndex(b.escapes, pos) < 0 {
			b.escapes = append(b.escapes, pos)
		}
	}
	return b, nil
}

func (b *Board) Rows() int        { return b.rows }
func (b *Board) Cols() int        { return b.cols }
func (b *Board) Throne() Position { return b.throne }

func (b *Board) Escapes() []Position {
	escapes := make([]Position, len(b.escapes))
	copy(escapes, b.escapes)
	return escapes
}

// IsOnBoard determines whether the provided position is on the board or not.
func (b *Board) IsOnBoard(p Position) bool {
	return 0 <= p.X && p.X < b.cols && 0 <= p.Y && p.Y < b.rows
}

func (b *Board) IsThrone(p Position) bool { return p == b.throne }

func (b *Board) IsEscape(p Position) bool {
	return utils.FindIndex(b.escapes, p) >= 0
}

func (b *Board) index(p Position) int { return p.Y*b.cols + p.X }

// Place puts a new piece on the board. It is only used while setting up a game.
func (b *Board) Place(side Side, kind Kind, pos Position) (PieceID, error) {
	if !b.IsOnBoard(pos) {
		return NoPiece, fmt.Errorf("%w: %s", ErrOffBoard, pos)
	}
	if b.squares[b.index(pos)] != NoPiece {
		return NoPiece, fmt.Errorf("%w: %s", ErrOccupied, pos)
	}
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, Piece{ID: id, Side: side, Kind: kind, Position: pos})
	b.squares[b.index(pos)] = id
	return id, nil
}

// At returns the ID of the piece standing on p.
func (b *Board) At(p Position) (PieceID, bool) {
	if !b.IsOnBoard(p) {
		return NoPiece, false
	}
	id := b.squares[b.index(p)]
	return id, id != NoPiece
}

func (b *Board) PieceAt(p Position) (Piece, bool) {
	id, ok := b.At(p)
	if !ok {
		return Piece{}, false
	}
	return b.pieces[id], true
}

// Piece looks up a piece by ID, captured or not.
func (b *Board) Piece(id PieceID) Piece {
	if id < 0 || int(id) >= len(b.pieces) {
		panic(fmt.Sprintf("unknown piece id %d", id))
	}
	return b.pieces[id]
}

// Neighbors returns the pieces orthogonally adjacent to p, in the order left, right, up, down.
func (b *Board) Neighbors(p Position) []PieceID {
	var result []PieceID
	for _, d := range Directions {
		if id, ok := b.At(p.Add(d)); ok {
			result = append(result, id)
		}
	}
	return result
}

// Pieces returns the pieces still on the board in arena order.
func (b *Board) Pieces() []Piece {
	result := make([]Piece, 0, len(b.pieces))
	for _, pc := range b.pieces {
		if !pc.Captured {
			result = append(result, pc)
		}
	}
	return result
}

func (b *Board) Count(side Side) int {
	return utils.Count(b.pieces, func(pc Piece) bool {
		return !pc.Captured && pc.Side == side
	})
}

func (b *Board) King() (Piece, bool) {
	for _, pc := range b.pieces {
		if !pc.Captured && pc.Kind == King {
			return pc, true
		}
	}
	return Piece{}, false
}

// move relocates a piece. Callers validate legality first, so a bad target is a defect.
func (b *Board) move(id PieceID, to Position) {
	pc := b.Piece(id)
	if pc.Captured {
		panic(fmt.Sprintf("moving captured piece %s", pc))
	}
	if !b.IsOnBoard(to) {
		panic(fmt.Sprintf("moving %s off the board to %s", pc, to))
	}
	if occupant := b.squares[b.index(to)]; occupant != NoPiece {
		panic(fmt.Sprintf("moving %s onto occupied square %s", pc, to))
	}
	b.squares[b.index(pc.Position)] = NoPiece
	b.squares[b.index(to)] = id
	b.pieces[id].Position = to
}

// remove takes a piece off the board and marks it captured.
func (b *Board) remove(id PieceID) Piece {
	pc := b.Piece(id)
	if pc.Captured {
		panic(fmt.Sprintf("piece %s captured twice", pc))
	}
	if b.squares[b.index(pc.Position)] != id {
		panic(fmt.Sprintf("board does not hold %s at its position", pc))
	}
	b.squares[b.index(pc.Position)] = NoPiece
	b.pieces[id].Captured = true
	return b.pieces[id]
}

func (b *Board) Copy() *Board {
	pieces := make([]Piece, len(b.pieces))
	copy(pieces, b.pieces)
	squares := make([]PieceID, len(b.squares))
	copy(squares, b.squares)
	return &Board{
		rows:    b.rows,
		cols:    b.cols,
		throne:  b.throne,
		escapes: b.Escapes(),
		pieces:  pieces,
		squares: squares,
	}
}

// String draws the board one row per line: A attacker, D defender, K king,
// T empty throne, E empty escape square, . empty square.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			pos := Position{X: x, Y: y}
			pc, ok := b.PieceAt(pos)
			switch {
			case ok && pc.Kind == King:
				sb.WriteByte('K')
			case ok && pc.Side == Attacker:
				sb.WriteByte('A')
			case ok:
				sb.WriteByte('D')
			case b.IsThrone(pos):
				sb.WriteByte('T')
			case b.IsEscape(pos):
				sb.WriteByte('E')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

package game

import "golang.org/x/exp/slices"

// canBePlacedOn validates whether a piece may end its move on a square.
// Only the King may stand on the throne or an escape square.
func (b *Board) canBePlacedOn(pc Piece, to Position) bool {
	if _, occupied := b.At(to); occupied {
		return false
	}
	special := b.IsEscape(to) || b.IsThrone(to)
	return !special || pc.Kind == King
}

// LegalDestinations returns every square the piece can move to: any number of
// empty squares along its rank or file, stopping before the first square it
// cannot be placed on. Squares are listed walking left, right, up, then down.
func (b *Board) LegalDestinations(id PieceID) []Position {
	pc := b.Piece(id)
	if pc.Captured {
		return nil
	}
	var result []Position
	for _, d := range Directions {
		for to := pc.Position.Add(d); b.IsOnBoard(to); to = to.Add(d) {
			if !b.canBePlacedOn(pc, to) {
				break
			}
			result = append(result, to)
		}
	}
	return result
}

func (b *Board) isLegalDestination(id PieceID, to Position) bool {
	return slices.Contains(b.LegalDestinations(id), to)
}

// LegalMoves lists every legal move of one side, pieces in arena order.
func (b *Board) LegalMoves(side Side) []Move {
	var moves []Move
	for _, pc := range b.pieces {
		if pc.Captured || pc.Side != side {
			continue
		}
		for _, to := range b.LegalDestinations(pc.ID) {
			moves = append(moves, Move{From: pc.Position, To: to})
		}
	}
	return moves
}

package game

// Note: surrounding the King is a win condition, not a capture.

// isBlocking reports whether the square behind a flanked piece closes a custodian
// capture: it holds a piece of the other side, is an escape square, or is the empty throne.
func (b *Board) isBlocking(p Position, victim Side) bool {
	if !b.IsOnBoard(p) {
		return false
	}
	if pc, ok := b.PieceAt(p); ok {
		return pc.Side != victim
	}
	return b.IsEscape(p) || b.IsThrone(p)
}

// resolveCaptures runs the capture checks for a piece that has just moved and
// removes every captured piece. Neighbours are examined left, right, up, down and
// all captures they trigger happen in this single pass.
func (b *Board) resolveCaptures(moved PieceID) []Piece {
	mover := b.Piece(moved)
	var captured []Piece

	for _, id := range b.Neighbors(mover.Position) {
		target := b.pieces[id]
		// an earlier shieldwall in this pass may already have taken it
		if target.Captured || target.Side == mover.Side {
			continue
		}

		if target.Kind != King {
			behind := target.Position.Add(directionTo(mover.Position, target.Position))
			if b.isBlocking(behind, target.Side) {
				captured = append(captured, b.remove(id))
				continue
			}
		}

		for _, wallID := range b.shieldwall(id) {
			if b.pieces[wallID].Kind == King {
				continue
			}
			captured = append(captured, b.remove(wallID))
		}
	}
	return captured
}

package game

type edgeSide uint8

const (
	noEdge edgeSide = iota
	leftEdge
	rightEdge
	topEdge
	bottomEdge
)

// edgeOf determines which edge of the board a position is on. Pieces never stand
// on a corner, so at most one edge applies.
func (b *Board) edgeOf(p Position) edgeSide {
	switch {
	case p.X == 0:
		return leftEdge
	case p.X == b.cols-1:
		return rightEdge
	case p.Y == 0:
		return topEdge
	case p.Y == b.rows-1:
		return bottomEdge
	}
	return noEdge
}

// axes returns the two along-edge directions and the direction pointing into the board.
func (e edgeSide) axes() ([2]Direction, Direction) {
	switch e {
	case leftEdge:
		return [2]Direction{Up, Down}, Right
	case rightEdge:
		return [2]Direction{Up, Down}, Left
	case topEdge:
		return [2]Direction{Left, Right}, Down
	case bottomEdge:
		return [2]Direction{Left, Right}, Up
	}
	panic("no axes for a square off the edge")
}

// shieldwall determines the pieces caught in a shieldwall capture starting from
// start. Every piece of the wall must be pinned by an enemy on the inner side and
// both ends of the wall must be closed by an enemy or an escape square. The result
// includes a King standing in the wall; the caller decides what is removed.
func (b *Board) shieldwall(start PieceID) []PieceID {
	first := b.Piece(start)
	edge := b.edgeOf(first.Position)
	if edge == noEdge {
		return nil
	}
	along, across := edge.axes()

	queue := []PieceID{start}
	visited := map[PieceID]bool{start: true}
	var wall []PieceID

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		pc := b.pieces[id]

		inner := pc.Position.Add(across)
		if !b.IsOnBoard(inner) {
			panic("board should be at least 2x2")
		}
		pinner, ok := b.PieceAt(inner)
		if !ok || pinner.Side == pc.Side {
			return nil
		}

		for _, d := range along {
			next := pc.Position.Add(d)
			if !b.IsOnBoard(next) {
				continue
			}
			if nid, ok := b.At(next); ok {
				// the wall extends along the edge
				if b.pieces[nid].Side == pc.Side && !visited[nid] {
					visited[nid] = true
					queue = append(queue, nid)
				}
				continue
			}
			if b.IsEscape(next) {
				continue
			}
			// an open square at the end of the row
			return nil
		}

		wall = append(wall, id)
	}
	return wall
}

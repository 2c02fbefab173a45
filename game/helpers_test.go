package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildBoard creates a board from a diagram: A attacker, D defender, K king,
// anything else an empty square. The throne is the centre and the corners escape.
func buildBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	height, width := len(rows), len(rows[0])
	throne := Position{X: width / 2, Y: height / 2}
	var escapes []Position
	for _, corner := range []Position{
		{X: 0, Y: 0}, {X: width - 1, Y: 0},
		{X: 0, Y: height - 1}, {X: width - 1, Y: height - 1},
	} {
		if corner != throne {
			escapes = append(escapes, corner)
		}
	}
	b, err := NewBoard(BoardOptions{Rows: height, Cols: width, Throne: throne, Escapes: escapes})
	require.NoError(t, err)

	for y, row := range rows {
		require.Len(t, row, width, "Diagram rows should have the same length")
		for x, c := range row {
			pos := Position{X: x, Y: y}
			switch c {
			case 'A':
				_, err = b.Place(Attacker, Soldier, pos)
			case 'D':
				_, err = b.Place(Defender, Soldier, pos)
			case 'K':
				_, err = b.Place(Defender, King, pos)
			default:
				continue
			}
			require.NoError(t, err)
		}
	}
	return b
}

func diagram(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

func pos(x, y int) Position { return Position{X: x, Y: y} }

func mv(fx, fy, tx, ty int) Move { return Move{From: pos(fx, fy), To: pos(tx, ty)} }

package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func play(t *testing.T, gs *GameState, m Move) MoveResult {
	t.Helper()
	result, err := gs.Apply(m)
	require.NoError(t, err)
	return result
}

func capturedAt(result MoveResult) []Position {
	var positions []Position
	for _, pc := range result.Captured {
		positions = append(positions, pc.Position)
	}
	return positions
}

func TestCustodianCapture(t *testing.T) {
	t.Run("flanking a soldier against an enemy captures it", func(t *testing.T) {
		b := buildBoard(t,
			"E.....E",
			"..DA...",
			".......",
			"...T...",
			".A.....",
			".......",
			"E.....E",
		)
		gs := NewGameState(b, nil, Attacker)

		result := play(t, gs, mv(1, 4, 1, 1))

		require.Equal(t, []Position{pos(2, 1)}, capturedAt(result))
		_, ok := b.At(pos(2, 1))
		require.False(t, ok, "Captured piece should leave the board")
		_, ok = b.At(pos(3, 1))
		require.True(t, ok, "Blocking piece should stay")
	})

	t.Run("an escape square acts as the anvil", func(t *testing.T) {
		b := buildBoard(t,
			"ED....E",
			".......",
			"..A....",
			"...T...",
			".......",
			".......",
			"E.....E",
		)
		gs := NewGameState(b, nil, Attacker)

		result := play(t, gs, mv(2, 2, 2, 0))

		require.Equal(t, []Position{pos(1, 0)}, capturedAt(result))
	})

	t.Run("the empty throne acts as the anvil", func(t *testing.T) {
		b := buildBoard(t,
			"E.....E",
			".......",
			".......",
			"..DT...",
			".......",
			".A.....",
			"E.....E",
		)
		gs := NewGameState(b, nil, Attacker)

		result := play(t, gs, mv(1, 5, 1, 3))

		require.Equal(t, []Position{pos(2, 3)}, capturedAt(result))
	})

	t.Run("a throne occupied by the king protects defenders", func(t *testing.T) {
		b := buildBoard(t,
			"E.....E",
			".......",
			".......",
			"..DK...",
			".......",
			".A.....",
			"E.....E",
		)
		gs := NewGameState(b, nil, Attacker)

		result := play(t, gs, mv(1, 5, 1, 3))

		require.Empty(t, result.Captured)
	})

	t.Run("the king captures together with a defender", func(t *testing.T) {
		b := buildBoard(t,
			"E.....E",
			"..AD...",
			".......",
			"...T...",
			".K.....",
			".......",
			"E.....E",
		)
		gs := NewGameState(b, nil, Defender)

		result := play(t, gs, mv(1, 4, 1, 1))

		require.Equal(t, []Position{pos(2, 1)}, capturedAt(result))
	})

	t.Run("the king is never captured by flanking", func(t *testing.T) {
		b := buildBoard(t,
			"E.....E",
			"..KA...",
			".......",
			"...T...",
			".A.....",
			".......",
			"E.....E",
		)
		gs := NewGameState(b, nil, Attacker)

		result := play(t, gs, mv(1, 4, 1, 1))

		require.Empty(t, result.Captured)
		_, ok := b.King()
		require.True(t, ok)
		require.False(t, result.Outcome.Ended(), "Two attackers do not surround the king")
	})

	t.Run("all flanked neighbours are captured in one pass", func(t *testing.T) {
		b := buildBoard(t,
			"E..A..E",
			".AD.DA.",
			".......",
			"...T...",
			".......",
			".......",
			"E.....E",
		)
		gs := NewGameState(b, nil, Attacker)

		result := play(t, gs, mv(3, 0, 3, 1))

		require.Equal(t, []Position{pos(2, 1), pos(4, 1)}, capturedAt(result))
		require.Equal(t, 0, b.Count(Defender))
	})

	t.Run("moving between two enemies is safe", func(t *testing.T) {
		b := buildBoard(t,
			"E.....E",
			".A.A...",
			".......",
			"..DT...",
			".......",
			".......",
			"E.....E",
		)
		gs := NewGameState(b, nil, Defender)

		result := play(t, gs, mv(2, 3, 2, 1))

		require.Empty(t, result.Captured)
		require.Equal(t, 2, b.Count(Attacker))
		require.Equal(t, 1, b.Count(Defender))
	})
}

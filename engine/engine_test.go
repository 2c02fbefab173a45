package engine

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"hnefatafl/game"
	"hnefatafl/scenario"
)

type fakeTime struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeTime) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func standardBoard(t *testing.T) *game.Board {
	t.Helper()
	board, err := scenario.Standard().Build()
	require.NoError(t, err)
	return board
}

// smallBoard: 7x7, throne in the centre, escapes in the corners.
func smallBoard(t *testing.T, pieces map[game.Position]string) *game.Board {
	t.Helper()
	board, err := game.NewBoard(game.BoardOptions{
		Rows:    7,
		Cols:    7,
		Throne:  game.Position{X: 3, Y: 3},
		Escapes: []game.Position{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 0, Y: 6}, {X: 6, Y: 6}},
	})
	require.NoError(t, err)
	for pos, code := range pieces {
		side, kind := game.Attacker, game.Soldier
		switch code {
		case "d":
			side = game.Defender
		case "k":
			side, kind = game.Defender, game.King
		}
		_, err := board.Place(side, kind, pos)
		require.NoError(t, err)
	}
	return board
}

func p(x, y int) game.Position { return game.Position{X: x, Y: y} }

func TestNew(t *testing.T) {
	e := New(standardBoard(t))

	snap := e.CurrentState()
	_, err := uuid.Parse(e.ID())
	require.NoError(t, err, "Game id should be a uuid")
	require.Equal(t, game.Attacker, snap.Turn, "Attacker moves first")
	require.False(t, snap.Ended())
	require.Equal(t, uint64(0), snap.Version)
	require.Equal(t, 10*time.Minute, snap.Remaining[game.Defender.Index()])
	require.Len(t, snap.Pieces(), 37)
	require.Empty(t, e.Events())
}

func TestSubmitMove(t *testing.T) {
	t.Run("accepted move passes the turn and emits events", func(t *testing.T) {
		e := New(standardBoard(t))
		before := e.CurrentState()

		outcome, err := e.SubmitMove(p(3, 0), p(3, 2))

		require.NoError(t, err)
		require.False(t, outcome.Captures())
		require.False(t, outcome.Ended())

		after := e.CurrentState()
		require.Equal(t, game.Defender, after.Turn)
		require.Equal(t, uint64(1), after.Version)
		require.Equal(t, 1, after.MoveCount)
		_, moved := after.PieceAt(p(3, 2))
		require.True(t, moved)
		_, stale := before.PieceAt(p(3, 2))
		require.False(t, stale, "Older snapshots should not change")

		events := e.Events()
		require.Len(t, events, 2)
		require.Equal(t, MoveCommitted, events[0].Kind)
		require.Equal(t, game.Attacker, events[0].Side)
		require.Equal(t, TurnChanged, events[1].Kind)
		require.Equal(t, game.Defender, events[1].Side)
		require.Empty(t, e.Events(), "Events should be drained")
	})

	t.Run("rejected move changes nothing", func(t *testing.T) {
		e := New(standardBoard(t))
		before := e.CurrentState()

		_, err := e.SubmitMove(p(5, 3), p(2, 3))
		require.ErrorIs(t, err, game.ErrWrongSideToMove)
		_, err = e.SubmitMove(p(1, 1), p(1, 2))
		require.ErrorIs(t, err, game.ErrNoPieceAtSource)
		_, err = e.SubmitMove(p(3, 0), p(3, 6))
		require.ErrorIs(t, err, game.ErrIllegalDestination)

		require.Same(t, before, e.CurrentState(), "Rejected moves should not publish a snapshot")
		require.Empty(t, e.Events())
	})

	t.Run("captures and the end of the game are reported in order", func(t *testing.T) {
		e := New(smallBoard(t, map[game.Position]string{
			p(2, 1): "d",
			p(3, 1): "a",
			p(1, 4): "a",
			p(0, 1): "k",
			p(5, 5): "a",
		}), WithStartingSide(game.Attacker))

		outcome, err := e.SubmitMove(p(1, 4), p(1, 2))
		require.NoError(t, err)
		require.False(t, outcome.Captures())

		outcome, err = e.SubmitMove(p(0, 1), p(0, 0))
		require.NoError(t, err)
		require.True(t, outcome.Ended())
		require.Equal(t, game.Outcome{Status: game.Won, Winner: game.Defender, Reason: game.KingEscaped}, outcome.Outcome)

		var kinds []EventKind
		for _, ev := range e.Events() {
			kinds = append(kinds, ev.Kind)
		}
		require.Equal(t, []EventKind{MoveCommitted, TurnChanged, MoveCommitted, GameEnded}, kinds)

		_, err = e.SubmitMove(p(5, 5), p(5, 4))
		require.ErrorIs(t, err, game.ErrGameAlreadyEnded)
	})

	t.Run("captured pieces are announced", func(t *testing.T) {
		e := New(smallBoard(t, map[game.Position]string{
			p(2, 1): "d",
			p(3, 1): "a",
			p(1, 4): "a",
			p(3, 5): "k",
		}))

		outcome, err := e.SubmitMove(p(1, 4), p(1, 1))

		require.NoError(t, err)
		require.True(t, outcome.Captures())
		require.Equal(t, p(2, 1), outcome.Captured[0].Position)
		events := e.Events()
		require.Equal(t, PieceCaptured, events[1].Kind)
		require.Equal(t, p(2, 1), events[1].Piece.Position)
	})
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = previous }()

	e := New(smallBoard(t, map[game.Position]string{
		p(2, 1): "d",
		p(3, 1): "a",
		p(1, 4): "a",
		p(3, 5): "k",
	}), WithRules(&game.StandardRules{Surround: game.Extended}))
	_, err := e.SubmitMove(p(1, 4), p(1, 1))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"rules":"extended surround"`, "Game start should name the rule variant")
	require.Contains(t, out, `"game":"`+e.ID()+`"`)
	require.Contains(t, out, `{"level":"info","game":"`+e.ID()+`","move":"(1,4)->(1,1)"`, "Captures should be logged at info level")
	require.Contains(t, out, "captured")
}

func TestLegalDestinations(t *testing.T) {
	e := New(standardBoard(t))

	_, ok := e.LegalDestinations(p(1, 1))
	require.False(t, ok, "Empty square has no destinations")

	dest, ok := e.LegalDestinations(p(3, 0))
	require.True(t, ok)
	require.Equal(t, []game.Position{p(2, 0), p(1, 0), p(3, 1), p(3, 2), p(3, 3), p(3, 4)}, dest)

	dest, ok = e.LegalDestinations(p(5, 5))
	require.True(t, ok)
	require.Empty(t, dest, "King is boxed in at the start")
}

func TestClockExpiry(t *testing.T) {
	t.Run("checking the clock ends the game", func(t *testing.T) {
		clock := newFakeTime()
		e := New(standardBoard(t), WithClock(time.Minute, 0), WithTimeSource(clock.Now))

		clock.Advance(30 * time.Second)
		require.False(t, e.CheckClock().Ended())
		require.Equal(t, 30*time.Second, e.CurrentState().Remaining[game.Attacker.Index()])

		clock.Advance(30 * time.Second)
		outcome := e.CheckClock()

		require.Equal(t, game.Outcome{Status: game.Won, Winner: game.Defender, Reason: game.OpponentClockExpired}, outcome)
		require.True(t, e.CurrentState().Ended())
		events := e.Events()
		require.Len(t, events, 1)
		require.Equal(t, GameEnded, events[0].Kind)
		require.Equal(t, game.Attacker, events[0].Side)

		require.Equal(t, outcome, e.CheckClock(), "Checking again should not change the outcome")
		require.Empty(t, e.Events())
	})

	t.Run("a move after the time ran out is not committed", func(t *testing.T) {
		clock := newFakeTime()
		e := New(standardBoard(t), WithClock(time.Minute, 0), WithTimeSource(clock.Now))

		clock.Advance(10 * time.Second)
		_, err := e.SubmitMove(p(3, 0), p(3, 2))
		require.NoError(t, err)
		require.Equal(t, 50*time.Second, e.Remaining(game.Attacker))

		clock.Advance(2 * time.Minute)
		outcome, err := e.SubmitMove(p(3, 5), p(3, 3))

		require.ErrorIs(t, err, game.ErrGameAlreadyEnded)
		require.Equal(t, game.Attacker, outcome.Outcome.Winner)
		require.Equal(t, game.OpponentClockExpired, outcome.Outcome.Reason)
		_, moved := e.CurrentState().PieceAt(p(3, 3))
		require.False(t, moved)
	})

	t.Run("turn limit", func(t *testing.T) {
		clock := newFakeTime()
		e := New(standardBoard(t), WithClock(0, 5*time.Second), WithTimeSource(clock.Now))

		clock.Advance(4 * time.Second)
		require.False(t, e.CheckClock().Ended())
		_, err := e.SubmitMove(p(3, 0), p(3, 2))
		require.NoError(t, err)

		clock.Advance(4 * time.Second)
		require.False(t, e.CheckClock().Ended(), "Turn limit restarts every turn")
		clock.Advance(time.Second)
		require.Equal(t, game.Attacker, e.CheckClock().Winner)
	})

	t.Run("no clock", func(t *testing.T) {
		clock := newFakeTime()
		e := New(standardBoard(t), WithClock(0, 0), WithTimeSource(clock.Now))

		clock.Advance(24 * time.Hour)

		require.False(t, e.CheckClock().Ended())
		require.Equal(t, Unlimited, e.Remaining(game.Attacker))
	})
}

func TestReset(t *testing.T) {
	e := New(standardBoard(t))
	id := e.ID()
	initial := e.CurrentState().Hash()
	_, err := e.SubmitMove(p(3, 0), p(3, 2))
	require.NoError(t, err)

	e.Reset()

	require.NotEqual(t, id, e.ID())
	require.Equal(t, uint64(0), e.CurrentState().Version)
	require.Equal(t, initial, e.CurrentState().Hash())
	require.Empty(t, e.Events())
}

func TestConcurrentReaders(t *testing.T) {
	e := New(standardBoard(t), WithClock(0, 0))
	moves := []game.Move{
		{From: p(3, 0), To: p(3, 2)},
		{From: p(3, 5), To: p(3, 3)},
		{From: p(7, 0), To: p(7, 2)},
		{From: p(7, 5), To: p(7, 3)},
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := uint64(0)
			for j := 0; j < 200; j++ {
				snap := e.CurrentState()
				require.GreaterOrEqual(t, snap.Version, last, "Versions should never go back")
				require.Equal(t, 37, len(snap.Pieces()))
				last = snap.Version
			}
		}()
	}
	for _, m := range moves {
		_, err := e.SubmitMove(m.From, m.To)
		require.NoError(t, err)
	}
	wg.Wait()

	require.Equal(t, uint64(len(moves)), e.CurrentState().Version)
}

func TestForfeit(t *testing.T) {
	e := New(standardBoard(t))

	require.False(t, e.Forfeit(game.Defender), "Only the side to move can forfeit")
	require.True(t, e.Forfeit(game.Attacker))
	require.Equal(t, game.Outcome{Status: game.Won, Winner: game.Defender, Reason: game.OpponentClockExpired}, e.CurrentState().Outcome)
	require.False(t, e.Forfeit(game.Attacker), "Game is already over")
}

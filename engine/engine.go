package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hnefatafl/game"
	"hnefatafl/meta"
)

// MoveOutcome is the answer to an accepted move.
type MoveOutcome struct {
	Move     game.Move    `json:"move"`
	Captured []game.Piece `json:"captured,omitempty"`
	Outcome  game.Outcome `json:"outcome"`
}

func (o MoveOutcome) Captures() bool { return len(o.Captured) > 0 }

func (o MoveOutcome) Ended() bool { return o.Outcome.Ended() }

// Engine serializes every change to one game behind a mutex and publishes an
// immutable snapshot after each of them, so readers never take the lock.
type Engine struct {
	mu       sync.Mutex
	id       string
	initial  *game.Board
	rules    game.Rules
	starting game.Side
	total    time.Duration
	perTurn  time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	state   *game.GameState
	clock   *Clock
	version uint64
	events  []Event

	snapshot atomic.Pointer[Snapshot]
}

type Option func(*Engine)

func WithRules(rules game.Rules) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

func WithStartingSide(side game.Side) Option {
	return func(e *Engine) {
		e.starting = side
	}
}

// WithClock sets the game time of each side and the time limit per turn. Zero
// disables the respective limit.
func WithClock(total, perTurn time.Duration) Option {
	return func(e *Engine) {
		e.total = total
		e.perTurn = perTurn
	}
}

func WithTimeSource(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New starts a game on a copy of board.
func New(board *game.Board, opts ...Option) *Engine {
	e := &Engine{
		initial:  board.Copy(),
		rules:    game.NewStandardRules(),
		starting: game.Attacker,
		total:    meta.DefaultGameClock,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Reset starts a new game with a new id from the initial board.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.id = uuid.NewString()
	e.logger = log.With().Str("game", e.id).Logger()
	e.state = game.NewGameState(e.initial.Copy(), e.rules, e.starting)
	e.clock = NewClock(e.total, e.perTurn)
	e.events = nil
	e.version = 0

	if e.state.Outcome.Ended() {
		e.emit(Event{Kind: GameEnded, Outcome: e.state.Outcome})
	} else {
		e.clock.Start(e.state.Turn, e.now())
	}
	e.publish()
	e.logger.Info().
		Str("rules", fmt.Sprint(e.rules)).
		Msgf("%s starts, %d pieces on a %dx%d board",
			e.starting, len(e.initial.Pieces()), e.initial.Cols(), e.initial.Rows())
}

func (e *Engine) ID() string {
	return e.CurrentState().GameID
}

// CurrentState returns the latest snapshot without locking.
func (e *Engine) CurrentState() *Snapshot {
	return e.snapshot.Load()
}

// SubmitMove validates and commits a move of the side to move. A rejected move
// leaves the game unchanged and returns one of the game's move errors.
func (e *Engine) SubmitMove(from, to game.Position) (MoveOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m := game.Move{From: from, To: to}
	now := e.now()
	if e.expire(now) {
		return MoveOutcome{Move: m, Outcome: e.state.Outcome},
			fmt.Errorf("%w: %s ran out of time", game.ErrGameAlreadyEnded, e.state.Turn)
	}

	mover := e.state.Turn
	result, err := e.state.Apply(m)
	if err != nil {
		e.logger.Debug().Err(err).Str("move", m.String()).Msg("Rejected move")
		return MoveOutcome{}, err
	}

	e.version++
	e.emit(Event{Kind: MoveCommitted, Move: m, Piece: result.Piece, Side: mover})
	for _, pc := range result.Captured {
		e.emit(Event{Kind: PieceCaptured, Move: m, Piece: pc, Side: mover})
		e.logger.Info().Str("move", m.String()).Msgf("%s captured %s", mover, pc)
	}
	if result.Outcome.Ended() {
		e.clock.Stop(now)
		e.emit(Event{Kind: GameEnded, Move: m, Outcome: result.Outcome})
		e.logger.Info().Int("moves", e.state.MoveCount).Msgf("Game over: %s", result.Outcome)
	} else {
		e.clock.Switch(now)
		e.emit(Event{Kind: TurnChanged, Side: e.state.Turn})
	}
	e.publish()

	e.logger.Debug().
		Str("side", mover.String()).
		Str("move", m.String()).
		Int("captured", len(result.Captured)).
		Msg("Committed move")

	return MoveOutcome{Move: m, Captured: result.Captured, Outcome: result.Outcome}, nil
}

// LegalDestinations returns where the piece on p may move, or false if there is
// no piece. A finished game has no destinations.
func (e *Engine) LegalDestinations(p game.Position) ([]game.Position, bool) {
	snap := e.CurrentState()
	board := snap.state.Board
	id, ok := board.At(p)
	if !ok {
		return nil, false
	}
	if snap.Ended() {
		return []game.Position{}, true
	}
	return board.LegalDestinations(id), true
}

// CheckClock ends the game if the side to move ran out of time and returns the
// current outcome.
func (e *Engine) CheckClock() game.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if e.expire(now) {
		return e.state.Outcome
	}
	// refresh the remaining times readers see
	e.publishAt(now)
	return e.state.Outcome
}

// Forfeit ends the game against side as if its clock had run out. It only
// applies to the side to move of a running game.
func (e *Engine) Forfeit(side game.Side) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if !e.state.Expire(side) {
		return false
	}
	e.clock.Stop(now)
	e.version++
	e.emit(Event{Kind: GameEnded, Side: side, Outcome: e.state.Outcome})
	e.publishAt(now)
	e.logger.Info().Msgf("%s forfeits: %s", side, e.state.Outcome)
	return true
}

// Remaining returns the time the side has left, Unlimited without a clock.
func (e *Engine) Remaining(side game.Side) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Remaining(side, e.now())
}

// Events drains the queued events in the order they happened.
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	events := e.events
	e.events = nil
	return events
}

// expire ends the game when the side to move is out of time. Callers hold the lock.
func (e *Engine) expire(now time.Time) bool {
	side := e.state.Turn
	if !e.clock.Expired(side, now) || !e.state.Expire(side) {
		return false
	}
	e.clock.Stop(now)
	e.version++
	e.emit(Event{Kind: GameEnded, Side: side, Outcome: e.state.Outcome})
	e.publishAt(now)
	e.logger.Info().Msgf("Game over: %s", e.state.Outcome)
	return true
}

func (e *Engine) emit(ev Event) {
	ev.Version = e.version
	e.events = append(e.events, ev)
}

func (e *Engine) publish() {
	e.publishAt(e.now())
}

func (e *Engine) publishAt(now time.Time) {
	remaining := [2]time.Duration{
		e.clock.Remaining(game.Attacker, now),
		e.clock.Remaining(game.Defender, now),
	}
	e.snapshot.Store(newSnapshot(e.id, e.version, e.state, remaining))
}

package gamemaster

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hnefatafl/engine"
	"hnefatafl/game"
	"hnefatafl/meta"
	"hnefatafl/player"
)

var (
	ErrMoveLimit = errors.New("move limit reached")
	ErrStalled   = errors.New("side to move has no legal moves")
)

// Update is published after every committed move.
type Update struct {
	Side     game.Side
	Move     game.Move
	Captured []game.Piece
	Outcome  game.Outcome
	Snapshot *engine.Snapshot
}

// Match drives one game between two players.
type Match struct {
	engine        *engine.Engine
	players       [2]player.Player
	maxMoves      int
	maxRejections int
	updateCh      chan<- Update
}

type MatchOption func(*Match)

// WithMaxMoves stops the match without a winner after n moves. Zero means no limit.
func WithMaxMoves(n int) MatchOption {
	return func(m *Match) {
		m.maxMoves = n
	}
}

// WithMaxRejections sets how many illegal moves in a row a player may submit
// before forfeiting.
func WithMaxRejections(n int) MatchOption {
	return func(m *Match) {
		m.maxRejections = n
	}
}

// WithUpdates publishes every committed move on ch. The match closes ch when Run returns.
func WithUpdates(ch chan<- Update) MatchOption {
	return func(m *Match) {
		m.updateCh = ch
	}
}

func NewMatch(e *engine.Engine, attacker, defender player.Player, opts ...MatchOption) *Match {
	m := &Match{
		engine:        e,
		maxRejections: meta.MAX_REJECTIONS,
	}
	m.players[game.Attacker.Index()] = attacker
	m.players[game.Defender.Index()] = defender
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run plays until the game ends and returns the final snapshot. A player gets
// the remaining time of its side as deadline for each move.
func (m *Match) Run(ctx context.Context) (*engine.Snapshot, error) {
	if m.updateCh != nil {
		defer close(m.updateCh)
	}

	rejections := 0
	log.Info().Str("game", m.engine.ID()).Msgf("%s is starting", m.engine.CurrentState().Turn)

	for {
		snap := m.engine.CurrentState()
		if snap.Ended() {
			log.Info().Str("game", snap.GameID).Int("moves", snap.MoveCount).Msgf("match over: %s", snap.Outcome)
			return snap, nil
		}
		if m.maxMoves > 0 && snap.MoveCount >= m.maxMoves {
			return snap, ErrMoveLimit
		}
		if err := ctx.Err(); err != nil {
			return snap, err
		}

		side := snap.Turn
		move, err := m.nextMove(ctx, side, snap)
		switch {
		case err == nil:
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			// the side's clock deadline passed while thinking
			if !m.engine.CheckClock().Ended() {
				// the engine's time source lags behind the wall clock
				m.engine.Forfeit(side)
			}
			continue
		case errors.Is(err, player.ErrNoMoves):
			return snap, ErrStalled
		default:
			return snap, fmt.Errorf("%s player: %w", side, err)
		}

		outcome, err := m.engine.SubmitMove(move.From, move.To)
		if errors.Is(err, game.ErrGameAlreadyEnded) {
			continue
		}
		if err != nil {
			rejections++
			if r, ok := m.players[side.Index()].(player.Rejecter); ok {
				r.Rejected(move, err)
			}
			log.Debug().Err(err).Str("game", snap.GameID).Msgf("%s move %s rejected (%d/%d)", side, move, rejections, m.maxRejections)
			if m.maxRejections > 0 && rejections >= m.maxRejections {
				m.engine.Forfeit(side)
			}
			continue
		}
		rejections = 0

		if err := m.publish(ctx, Update{
			Side:     side,
			Move:     outcome.Move,
			Captured: outcome.Captured,
			Outcome:  outcome.Outcome,
			Snapshot: m.engine.CurrentState(),
		}); err != nil {
			return m.engine.CurrentState(), err
		}
	}
}

func (m *Match) nextMove(ctx context.Context, side game.Side, snap *engine.Snapshot) (game.Move, error) {
	if remaining := m.engine.Remaining(side); remaining != engine.Unlimited {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, remaining)
		defer cancel()
	}
	return m.players[side.Index()].NextMove(ctx, snap)
}

func (m *Match) publish(ctx context.Context, u Update) error {
	if m.updateCh == nil {
		return nil
	}
	select {
	case m.updateCh <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

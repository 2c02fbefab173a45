package player

import (
	"context"
	"errors"

	"golang.org/x/exp/rand"

	"hnefatafl/engine"
	"hnefatafl/game"
)

var (
	ErrNoMoves         = errors.New("no legal moves")
	ErrScriptExhausted = errors.New("script has no moves left")
)

// Player chooses the next move for the side to move in a snapshot.
type Player interface {
	NextMove(ctx context.Context, snap *engine.Snapshot) (game.Move, error)
}

// Rejecter is implemented by players that want to hear about their rejected moves.
type Rejecter interface {
	Rejected(m game.Move, err error)
}

// Random picks uniformly among all legal moves.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) NextMove(ctx context.Context, snap *engine.Snapshot) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}
	moves := snap.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	return moves[r.rng.Intn(len(moves))], nil
}

// Scripted plays a fixed list of moves.
type Scripted struct {
	moves   []game.Move
	next    int
	Rejects []error
}

func NewScripted(moves ...game.Move) *Scripted {
	return &Scripted{moves: moves}
}

func (s *Scripted) NextMove(ctx context.Context, _ *engine.Snapshot) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}
	if s.next >= len(s.moves) {
		return game.Move{}, ErrScriptExhausted
	}
	m := s.moves[s.next]
	s.next++
	return m, nil
}

func (s *Scripted) Rejected(_ game.Move, err error) {
	s.Rejects = append(s.Rejects, err)
}

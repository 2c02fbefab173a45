package experiments

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"hnefatafl/engine"
	"hnefatafl/experiments/metrics"
	"hnefatafl/game"
	"hnefatafl/gamemaster"
	"hnefatafl/meta"
	"hnefatafl/player"
	"hnefatafl/utils"
)

var ErrInvariant = errors.New("engine invariant violated")

type SelfPlayConfig struct {
	Games       int
	Seed        uint64
	MaxMoves    int
	Parallelism int
	OutDir      string // no CSV output when empty
	Engine      []engine.Option
}

type Summary struct {
	Games      int
	Wins       [2]int // indexed by game.Side
	Unfinished int
	Records    []metrics.GameRecord
	Moves      []metrics.MoveRecord
}

// RunSelfPlay plays games between two random players on copies of board and
// checks the engine's invariants after every move.
func RunSelfPlay(ctx context.Context, board *game.Board, cfg SelfPlayConfig) (Summary, error) {
	if cfg.Games <= 0 {
		cfg.Games = meta.SELF_PLAY_GAMES
	}
	if cfg.MaxMoves <= 0 {
		cfg.MaxMoves = meta.MAX_MOVES
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}

	log.Info().Msgf("starting self-play with %d games...", cfg.Games)

	type result struct {
		record metrics.GameRecord
		moves  []metrics.MoveMetric
	}
	results := make([]result, cfg.Games)

	p := pool.New().WithMaxGoroutines(cfg.Parallelism).WithContext(ctx).WithCancelOnError()
	for i := 0; i < cfg.Games; i++ {
		i := i
		seed := cfg.Seed + uint64(i)
		p.Go(func(ctx context.Context) error {
			gameMetric, moveMetrics, err := runGame(ctx, board, seed, cfg)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result{
				record: metrics.GameRecord{Game: i + 1, Seed: seed, GameMetric: gameMetric},
				moves:  moveMetrics,
			}
			log.Info().Msgf("completed game %d of %d with winner: %q", i+1, cfg.Games, gameMetric.Winner)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Games: cfg.Games}
	for _, r := range results {
		summary.Records = append(summary.Records, r.record)
		for _, mm := range r.moves {
			summary.Moves = append(summary.Moves, metrics.MoveRecord{Game: r.record.Game, MoveMetric: mm})
		}
		switch r.record.Winner {
		case game.Attacker.String():
			summary.Wins[game.Attacker.Index()]++
		case game.Defender.String():
			summary.Wins[game.Defender.Index()]++
		default:
			summary.Unfinished++
		}
	}

	log.Info().Msgf("completed self-play: attacker %d, defender %d, unfinished %d",
		summary.Wins[game.Attacker.Index()], summary.Wins[game.Defender.Index()], summary.Unfinished)

	if cfg.OutDir != "" {
		if err := store(cfg.OutDir, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func store(dir string, summary Summary) error {
	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteGameRecords(summary.Records); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(summary.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}

// runGame plays a single game between two random players.
func runGame(ctx context.Context, board *game.Board, seed uint64, cfg SelfPlayConfig) (metrics.GameMetric, []metrics.MoveMetric, error) {
	opts := append([]engine.Option{engine.WithClock(0, 0)}, cfg.Engine...)
	e := engine.New(board, opts...)
	collector := metrics.NewCollector()
	collector.Start(e.ID())

	initial := e.CurrentState()
	updates := make(chan gamemaster.Update)
	match := gamemaster.NewMatch(e,
		player.NewRandom(seed*2),
		player.NewRandom(seed*2+1),
		gamemaster.WithMaxMoves(cfg.MaxMoves),
		gamemaster.WithUpdates(updates),
	)

	checked := make(chan error, 1)
	go func() {
		checked <- checkUpdates(initial, updates, collector)
	}()

	final, err := match.Run(ctx)
	if checkErr := <-checked; checkErr != nil {
		return metrics.GameMetric{}, nil, checkErr
	}
	if err != nil && !errors.Is(err, gamemaster.ErrMoveLimit) && !errors.Is(err, gamemaster.ErrStalled) {
		return metrics.GameMetric{}, nil, err
	}

	winner, reason := "", "unfinished"
	if final.Ended() {
		winner, reason = final.Outcome.Winner.String(), final.Outcome.Reason.String()
	}
	gameMetric, moveMetrics := collector.Complete(winner, reason)
	return gameMetric, moveMetrics, nil
}

// checkUpdates verifies each update against the previous snapshot. It drains the
// channel even after a violation so the match is never blocked.
func checkUpdates(prev *engine.Snapshot, updates <-chan gamemaster.Update, collector metrics.Collector) error {
	var violation error
	for u := range updates {
		collector.AddMove(u.Side.String(), u.Move.String(), len(u.Captured))
		if violation == nil {
			violation = checkInvariants(prev, u)
		}
		prev = u.Snapshot
	}
	return violation
}

func checkInvariants(prev *engine.Snapshot, u gamemaster.Update) error {
	next := u.Snapshot
	kings := utils.Count(next.Pieces(), game.Piece.IsKing)
	switch {
	case kings != 1:
		return fmt.Errorf("%w: %d kings after %s", ErrInvariant, kings, u.Move)
	case len(next.Pieces()) != len(prev.Pieces())-len(u.Captured):
		return fmt.Errorf("%w: %d pieces before %s, %d after with %d captured",
			ErrInvariant, len(prev.Pieces()), u.Move, len(next.Pieces()), len(u.Captured))
	case next.Version <= prev.Version:
		return fmt.Errorf("%w: version went from %d to %d", ErrInvariant, prev.Version, next.Version)
	case !next.Ended() && next.Turn == prev.Turn:
		return fmt.Errorf("%w: turn did not pass after %s", ErrInvariant, u.Move)
	case next.Ended() && next.Turn != prev.Turn:
		return fmt.Errorf("%w: turn passed after the winning move %s", ErrInvariant, u.Move)
	}
	for _, pc := range u.Captured {
		if pc.Side == u.Side || pc.IsKing() {
			return fmt.Errorf("%w: %s captured by %s", ErrInvariant, pc, u.Side)
		}
	}
	return nil
}

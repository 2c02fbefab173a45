package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"hnefatafl/config"
	"hnefatafl/engine"
	"hnefatafl/experiments"
	"hnefatafl/game"
	"hnefatafl/gamemaster"
	"hnefatafl/logs"
	"hnefatafl/player"
	"hnefatafl/scenario"
)

func main() {
	configPath := flag.String("config", "", "Path to the configuration file")
	mode := flag.String("mode", "play", "play: two players at the terminal, selfplay: random soak games")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logs.Init("hnefatafl", conf.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *mode, conf); err != nil {
		log.Error().Err(err).Msg("hnefatafl failed")
		logs.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, mode string, conf *config.Config) error {
	s := scenario.Standard()
	if conf.Scenario.Path != "" {
		var err error
		if s, err = scenario.LoadFile(conf.Scenario.Path); err != nil {
			return err
		}
	}
	board, err := s.Build()
	if err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	rules, starting, err := conf.Rules.Build()
	if err != nil {
		return err
	}

	switch mode {
	case "play":
		return play(ctx, board, rules, starting, conf.Clock)
	case "selfplay":
		_, err := experiments.RunSelfPlay(ctx, board, experiments.SelfPlayConfig{
			Games:       conf.SelfPlay.Games,
			Seed:        conf.SelfPlay.Seed,
			MaxMoves:    conf.SelfPlay.MaxMoves,
			Parallelism: conf.SelfPlay.Parallelism,
			OutDir:      conf.SelfPlay.OutDir,
			Engine:      []engine.Option{engine.WithRules(rules), engine.WithStartingSide(starting)},
		})
		return err
	}
	return fmt.Errorf("unknown mode %q", mode)
}

// play runs a game between two people sharing the terminal.
func play(ctx context.Context, board *game.Board, rules game.Rules, starting game.Side, clock config.ClockConfig) error {
	e := engine.New(board,
		engine.WithRules(rules),
		engine.WithStartingSide(starting),
		engine.WithClock(clock.Total, clock.PerTurn),
	)
	terminal := player.NewTerminal("player", os.Stdin, os.Stdout)
	defer terminal.Close()
	match := gamemaster.NewMatch(e, terminal, terminal)

	final, err := match.Run(ctx)
	fmt.Printf("\n%s", final)
	if errors.Is(err, context.Canceled) {
		fmt.Println("game aborted")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(final.Outcome)
	return nil
}

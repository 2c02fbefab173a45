package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"hnefatafl/engine"
	"hnefatafl/game"
)

// Terminal asks a human for moves: it draws the board to out and reads
// "x1 y1 x2 y2" lines from in.
type Terminal struct {
	name  string
	in    io.Reader
	out   io.Writer
	once  sync.Once
	stop  sync.Once
	lines chan string
	done  chan struct{}
	err   error
}

func NewTerminal(name string, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{name: name, in: in, out: out, lines: make(chan string), done: make(chan struct{})}
}

// Close stops handing input lines to NextMove. A read already waiting on in
// returns when in does.
func (t *Terminal) Close() error {
	t.stop.Do(func() { close(t.done) })
	return nil
}

// scan feeds input lines to NextMove so a pending read never blocks a deadline.
func (t *Terminal) scan() {
	defer close(t.lines)
	scanner := bufio.NewScanner(t.in)
	for scanner.Scan() {
		select {
		case t.lines <- scanner.Text():
		case <-t.done:
			t.err = io.ErrClosedPipe
			return
		}
	}
	t.err = scanner.Err()
	if t.err == nil {
		t.err = io.EOF
	}
}

func (t *Terminal) NextMove(ctx context.Context, snap *engine.Snapshot) (game.Move, error) {
	t.once.Do(func() { go t.scan() })

	fmt.Fprintf(t.out, "\n%s", snap)
	for {
		fmt.Fprintf(t.out, "%s (%s) to move: ", t.name, snap.Turn)
		select {
		case <-ctx.Done():
			fmt.Fprintln(t.out)
			return game.Move{}, ctx.Err()
		case <-t.done:
			return game.Move{}, io.ErrClosedPipe
		case line, ok := <-t.lines:
			if !ok {
				return game.Move{}, t.err
			}
			m, err := ParseMove(line)
			if err != nil {
				fmt.Fprintln(t.out, err)
				continue
			}
			return m, nil
		}
	}
}

func (t *Terminal) Rejected(m game.Move, err error) {
	fmt.Fprintf(t.out, "move %s rejected: %v\n", m, err)
}

// ParseMove reads a move written as four integers "x1 y1 x2 y2".
func ParseMove(s string) (game.Move, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return game.Move{}, fmt.Errorf("expected 4 numbers \"x1 y1 x2 y2\", got %q", s)
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return game.Move{}, fmt.Errorf("invalid number %q", f)
		}
		v[i] = n
	}
	return game.Move{
		From: game.Position{X: v[0], Y: v[1]},
		To:   game.Position{X: v[2], Y: v[3]},
	}, nil
}

package engine

import (
	"math"
	"time"

	"hnefatafl/game"
)

// Unlimited is reported as the remaining time of a side without a time limit.
const Unlimited = time.Duration(math.MaxInt64)

// Clock is a chess clock: only the side to move is charged. A zero total gives
// each side unlimited game time, a zero per-turn limit disables the turn limit.
type Clock struct {
	total     time.Duration
	perTurn   time.Duration
	remaining [2]time.Duration
	running   bool
	side      game.Side
	turnStart time.Time
}

func NewClock(total, perTurn time.Duration) *Clock {
	c := &Clock{total: total, perTurn: perTurn}
	c.Reset()
	return c
}

func (c *Clock) Limited() bool { return c.total > 0 || c.perTurn > 0 }

func (c *Clock) Reset() {
	c.remaining = [2]time.Duration{c.total, c.total}
	c.running = false
}

// Start runs the clock of side from now on.
func (c *Clock) Start(side game.Side, now time.Time) {
	c.side = side
	c.turnStart = now
	c.running = true
}

// Stop charges the running side and halts the clock.
func (c *Clock) Stop(now time.Time) {
	if !c.running {
		return
	}
	if c.total > 0 {
		c.remaining[c.side.Index()] -= now.Sub(c.turnStart)
	}
	c.running = false
}

// Switch charges the side that just moved and starts the opponent's clock.
func (c *Clock) Switch(now time.Time) {
	side := c.side
	c.Stop(now)
	c.Start(side.Opponent(), now)
}

// Remaining returns how long side may still think before its time runs out,
// taking the per-turn limit into account for the running side.
func (c *Clock) Remaining(side game.Side, now time.Time) time.Duration {
	remaining := Unlimited
	if c.total > 0 {
		remaining = c.remaining[side.Index()]
	}
	if !c.running || side != c.side {
		return remaining
	}
	elapsed := now.Sub(c.turnStart)
	if c.total > 0 {
		remaining -= elapsed
	}
	if c.perTurn > 0 {
		remaining = min(remaining, c.perTurn-elapsed)
	}
	return max(remaining, 0)
}

// Expired reports whether side ran out of time. Only the running side can expire.
func (c *Clock) Expired(side game.Side, now time.Time) bool {
	return c.running && side == c.side && c.Limited() && c.Remaining(side, now) <= 0
}

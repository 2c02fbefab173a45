package metrics

import (
	"sync"
	"time"
)

type MoveMetric struct {
	Step     int
	Side     string
	Move     string
	Captures int
	Duration time.Duration // time since the previous move
}

type GameMetric struct {
	ID         string
	Winner     string // empty without a winner
	Reason     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Captures   int
}

type Collector interface {
	Start(gameID string)
	AddMove(side, move string, captures int)
	Complete(winner, reason string) (GameMetric, []MoveMetric)
}

type collector struct {
	mu       sync.Mutex
	gameID   string
	start    time.Time
	last     time.Time
	moves    []MoveMetric
	captures int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameID = gameID
	m.start = time.Now()
	m.last = m.start
	m.moves = nil
	m.captures = 0
}

func (m *collector) AddMove(side, move string, captures int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	m.moves = append(m.moves, MoveMetric{
		Step:     len(m.moves) + 1,
		Side:     side,
		Move:     move,
		Captures: captures,
		Duration: now.Sub(m.last),
	})
	m.last = now
	m.captures += captures
}

func (m *collector) Complete(winner, reason string) (GameMetric, []MoveMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := time.Now()
	return GameMetric{
		ID:         m.gameID,
		Winner:     winner,
		Reason:     reason,
		StartTime:  m.start,
		EndTime:    end,
		Duration:   end.Sub(m.start),
		TotalMoves: len(m.moves),
		Captures:   m.captures,
	}, m.moves
}

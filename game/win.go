package game

import "fmt"

type Status uint8

const (
	InProgress Status = iota
	Won
)

type Reason uint8

const (
	NoReason Reason = iota
	KingEscaped
	KingSurrounded
	OpponentClockExpired
)

func (r Reason) String() string {
	switch r {
	case KingEscaped:
		return "king escaped"
	case KingSurrounded:
		return "king surrounded"
	case OpponentClockExpired:
		return "opponent clock expired"
	}
	return "none"
}

// Outcome is terminal once Status is Won.
type Outcome struct {
	Status Status `json:"status"`
	Winner Side   `json:"winner"`
	Reason Reason `json:"reason"`
}

func win(side Side, reason Reason) Outcome {
	return Outcome{Status: Won, Winner: side, Reason: reason}
}

func (o Outcome) Ended() bool { return o.Status == Won }

func (o Outcome) String() string {
	if !o.Ended() {
		return "in progress"
	}
	return fmt.Sprintf("%s won (%s)", o.Winner, o.Reason)
}

// evaluate checks the win conditions that depend on the board alone.
func evaluate(b *Board, rules Rules) Outcome {
	if rules.KingEscaped(b) {
		return win(Defender, KingEscaped)
	}
	if rules.KingSurrounded(b) {
		return win(Attacker, KingSurrounded)
	}
	return Outcome{}
}

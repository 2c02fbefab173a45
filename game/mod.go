package game

// Move moves the piece standing on From to To along a rank or file.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
}

func (m Move) String() string {
	return m.From.String() + "->" + m.To.String()
}

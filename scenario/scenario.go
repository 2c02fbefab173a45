package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"hnefatafl/game"
)

// Scenario is the initial setup of a game.
type Scenario struct {
	Name       string
	Structure  Structure
	Throne     *game.Position // nil: the throne field, else the centre
	Escapes    []game.Position
	Placements []Placement
}

type point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type document struct {
	Name      string  `yaml:"name"`
	Structure string  `yaml:"structure"`
	Pieces    string  `yaml:"pieces"`
	Throne    *point  `yaml:"throne"`
	Escapes   []point `yaml:"escapes"`
}

//go:embed standard.yml
var standardDocument []byte

// Standard returns the 11x11 Hnefatafl setup with 24 attackers, 12 defenders and
// the King on the throne.
func Standard() *Scenario {
	s, err := Parse(standardDocument)
	if err != nil {
		panic(fmt.Sprintf("standard scenario: %v", err))
	}
	return s
}

// Parse reads a scenario from a YAML document.
func Parse(data []byte) (*Scenario, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}

	structure, err := ParseStructure(doc.Structure)
	if err != nil {
		return nil, fmt.Errorf("parsing structure: %w", err)
	}
	placements, err := ParsePlacements(doc.Pieces, structure.Rows, structure.Cols)
	if err != nil {
		return nil, fmt.Errorf("parsing pieces: %w", err)
	}

	s := &Scenario{Name: doc.Name, Structure: structure, Placements: placements}
	if doc.Throne != nil {
		s.Throne = &game.Position{X: doc.Throne.X, Y: doc.Throne.Y}
	}
	for _, e := range doc.Escapes {
		s.Escapes = append(s.Escapes, game.Position{X: e.X, Y: e.Y})
	}
	return s, nil
}

func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Str("scenario", s.Name).Int("pieces", len(s.Placements)).Msg("Loaded scenario")
	return s, nil
}

// ThronePosition resolves the throne: explicit, else the first throne field,
// else the centre square.
func (s *Scenario) ThronePosition() game.Position {
	if s.Throne != nil {
		return *s.Throne
	}
	if fields := s.Structure.Find(ThroneField); len(fields) > 0 {
		return fields[0]
	}
	return game.Position{X: s.Structure.Cols / 2, Y: s.Structure.Rows / 2}
}

// EscapePositions resolves the escape squares: explicit, else the escape fields,
// else the four corners.
func (s *Scenario) EscapePositions() []game.Position {
	if len(s.Escapes) > 0 {
		return s.Escapes
	}
	if fields := s.Structure.Find(EscapeField); len(fields) > 0 {
		return fields
	}
	rows, cols := s.Structure.Rows, s.Structure.Cols
	return []game.Position{{X: 0, Y: 0}, {X: cols - 1, Y: 0}, {X: 0, Y: rows - 1}, {X: cols - 1, Y: rows - 1}}
}

// Build creates a fresh board holding the scenario's pieces.
func (s *Scenario) Build() (*game.Board, error) {
	kings := 0
	for _, p := range s.Placements {
		if p.Kind != game.King {
			continue
		}
		if p.Side != game.Defender {
			return nil, fmt.Errorf("%w: attacker king at %s", ErrKingCount, p.Position)
		}
		kings++
	}
	if kings != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrKingCount, kings)
	}

	board, err := game.NewBoard(game.BoardOptions{
		Rows:    s.Structure.Rows,
		Cols:    s.Structure.Cols,
		Throne:  s.ThronePosition(),
		Escapes: s.EscapePositions(),
	})
	if err != nil {
		return nil, err
	}
	for _, p := range s.Placements {
		if _, err := board.Place(p.Side, p.Kind, p.Position); err != nil {
			return nil, err
		}
	}
	return board, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Question kinds
const (
	KindNumeric = "numeric"
	KindChoice  = "choice"
)

// Question is one trivia question. Numeric questions carry inclusive
// Min/Max bounds; choice questions carry an ordered option list (order
// matters for display only).
type Question struct {
	ID      int      `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Kind    string   `yaml:"kind" json:"kind"`
	Cost    int      `yaml:"cost" json:"cost"`
	Min     int      `yaml:"min" json:"min,omitempty"`
	Max     int      `yaml:"max" json:"max,omitempty"`
	Suffix  string   `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
}

// SquaresConfig sets the price and per-submission cap for the 10x10 grid.
type SquaresConfig struct {
	CostPerCell      int `yaml:"costPerCell" json:"costPerCell"`
	MaxPerSubmission int `yaml:"maxPerSubmission" json:"maxPerSubmission"`
}

// Event is the full catalog for one pool: the questions, the squares grid
// pricing, and the two team names. Loaded once at startup and immutable
// afterwards.
type Event struct {
	Name      string        `yaml:"name" json:"name"`
	HomeTeam  string        `yaml:"homeTeam" json:"homeTeam"`
	AwayTeam  string        `yaml:"awayTeam" json:"awayTeam"`
	Squares   SquaresConfig `yaml:"squares" json:"squares"`
	Questions []Question    `yaml:"questions" json:"questions"`

	byID map[int]Question
}

//go:embed event.yaml
var defaultEvent []byte

// Load reads an event catalog from a YAML file. An empty path loads the
// embedded default event.
func Load(path string) (*Event, error) {
	data := defaultEvent
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read event file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse validates and indexes a raw event catalog. YAML is a superset
// of JSON, so either serialization is accepted.
func Parse(data []byte) (*Event, error) {
	var ev Event
	if err := yaml.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse event file: %w", err)
	}

	if err := ev.check(); err != nil {
		return nil, err
	}

	ev.byID = make(map[int]Question, len(ev.Questions))
	for _, q := range ev.Questions {
		ev.byID[q.ID] = q
	}

	return &ev, nil
}

// Question looks up a question by ID.
func (e *Event) Question(id int) (Question, bool) {
	q, ok := e.byID[id]
	return q, ok
}

// check validates the catalog at load time so bad configs fail at startup
// rather than at settlement time.
func (e *Event) check() error {
	if e.HomeTeam == "" || e.AwayTeam == "" {
		return fmt.Errorf("event must name both teams")
	}
	if e.Squares.CostPerCell <= 0 {
		return fmt.Errorf("squares costPerCell must be positive")
	}
	if e.Squares.MaxPerSubmission <= 0 || e.Squares.MaxPerSubmission > 100 {
		return fmt.Errorf("squares maxPerSubmission must be in 1..100")
	}

	seen := make(map[int]bool)
	for _, q := range e.Questions {
		if q.ID <= 0 {
			return fmt.Errorf("question %q has no id", q.Text)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true

		if q.Cost <= 0 {
			return fmt.Errorf("question %d: cost must be positive", q.ID)
		}

		switch q.Kind {
		case KindNumeric:
			if q.Min > q.Max {
				return fmt.Errorf("question %d: min %d exceeds max %d", q.ID, q.Min, q.Max)
			}
		case KindChoice:
			if len(q.Options) < 2 {
				return fmt.Errorf("question %d: choice question needs at least 2 options", q.ID)
			}
			opts := make(map[string]bool)
			for _, opt := range q.Options {
				if opt == "" {
					return fmt.Errorf("question %d: empty option", q.ID)
				}
				if opts[opt] {
					return fmt.Errorf("question %d: duplicate option %q", q.ID, opt)
				}
				opts[opt] = true
			}
		default:
			return fmt.Errorf("question %d: unknown kind %q", q.ID, q.Kind)
		}
	}

	return nil
}

package creature

import (
	"errors"
	"fmt"

	"wildbound/internal/domain/suggest"
)

type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Legendary Rarity = "legendary"
)

type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

type Template struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            ElementType `json:"type"`
	BaseStats       Stats       `json:"base_stats"`
	EvolutionLevel  int         `json:"evolution_level,omitempty"`
	EvolutionTarget string      `json:"evolution_target,omitempty"`
	Rarity          Rarity      `json:"rarity"`
	Habitat         []string    `json:"habitat"`
}

func (t Template) LivesIn(biomeType string) bool {
	for _, h := range t.Habitat {
		if h == biomeType {
			return true
		}
	}
	return false
}

var ErrUnknownTemplate = errors.New("unknown creature template")

type UnknownTemplateError struct {
	ID         string
	Suggestion string
}

func (e *UnknownTemplateError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown creature template %q (did you mean %q?)", e.ID, e.Suggestion)
	}
	return fmt.Sprintf("unknown creature template %q", e.ID)
}

func (e *UnknownTemplateError) Is(target error) bool {
	return target == ErrUnknownTemplate
}

// Registry is an immutable template catalogue built once and shared.
type Registry struct {
	byID     map[string]Template
	ids      []string
	fallback []string
}

func NewRegistry(templates []Template, fallback []string) Registry {
	r := Registry{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if _, dup := r.byID[t.ID]; !dup {
			r.ids = append(r.ids, t.ID)
		}
		r.byID[t.ID] = t
	}
	for _, id := range fallback {
		if _, ok := r.byID[id]; ok {
			r.fallback = append(r.fallback, id)
		}
	}
	return r
}

func (r Registry) Template(id string) (Template, error) {
	t, ok := r.byID[id]
	if !ok {
		err := &UnknownTemplateError{ID: id}
		if s, found := suggest.Closest(id, r.ids); found {
			err.Suggestion = s
		}
		return Template{}, err
	}
	return t, nil
}

func (r Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs returns template ids in registration order.
func (r Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Habitat lists template ids whose habitat includes biomeType, in
// registration order.
func (r Registry) Habitat(biomeType string) []string {
	out := []string{}
	for _, id := range r.ids {
		if r.byID[id].LivesIn(biomeType) {
			out = append(out, id)
		}
	}
	return out
}

func (r Registry) Fallback() []string {
	out := make([]string, len(r.fallback))
	copy(out, r.fallback)
	return out
}

// ByElement lists template ids of one element type in registration order.
func (r Registry) ByElement(et ElementType) []string {
	out := []string{}
	for _, id := range r.ids {
		if r.byID[id].Type == et {
			out = append(out, id)
		}
	}
	return out
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wildbound/internal/domain/creature"
)

var ErrUnknownElement = errors.New("unknown element type")

type CreaturesRequest struct {
	Element string
	Biome   string
}

type CreaturesResponse struct {
	Creatures []creature.Template `json:"creatures"`
}

type ElementsResponse struct {
	Elements []creature.Element `json:"elements"`
	// Chart holds attack -> defense multipliers that differ from 1.
	Chart map[creature.ElementType]map[creature.ElementType]float64 `json:"chart"`
}

type BossesResponse struct {
	Bosses []creature.Boss `json:"bosses"`
	Final  creature.Boss   `json:"final"`
}

// UseCase serves the static creature reference data.
type UseCase struct {
	Factory creature.Factory
}

func (u UseCase) Creatures(_ context.Context, req CreaturesRequest) (CreaturesResponse, error) {
	reg := u.Factory.Registry
	ids := reg.IDs()
	if biome := strings.TrimSpace(req.Biome); biome != "" {
		ids = reg.Habitat(biome)
	}
	element := creature.ElementType(strings.ToLower(strings.TrimSpace(req.Element)))
	if element != "" {
		if _, ok := u.Factory.Elements.Get(element); !ok {
			return CreaturesResponse{}, fmt.Errorf("%w: %s", ErrUnknownElement, req.Element)
		}
	}

	out := CreaturesResponse{Creatures: make([]creature.Template, 0, len(ids))}
	for _, id := range ids {
		t, err := reg.Template(id)
		if err != nil {
			return CreaturesResponse{}, err
		}
		if element != "" && t.Type != element {
			continue
		}
		out.Creatures = append(out.Creatures, t)
	}
	return out, nil
}

func (u UseCase) Creature(_ context.Context, id string) (creature.Template, error) {
	return u.Factory.Registry.Template(strings.TrimSpace(id))
}

func (u UseCase) Elements(_ context.Context) ElementsResponse {
	table := u.Factory.Elements
	types := table.Types()
	out := ElementsResponse{
		Elements: make([]creature.Element, 0, len(types)),
		Chart:    map[creature.ElementType]map[creature.ElementType]float64{},
	}
	for _, attack := range types {
		if e, ok := table.Get(attack); ok {
			out.Elements = append(out.Elements, e)
		}
		for _, defense := range types {
			if m := table.Effectiveness(attack, defense); m != 1 {
				if out.Chart[attack] == nil {
					out.Chart[attack] = map[creature.ElementType]float64{}
				}
				out.Chart[attack][defense] = m
			}
		}
	}
	return out
}

func (u UseCase) Bosses(_ context.Context) BossesResponse {
	return BossesResponse{Bosses: creature.Bosses(), Final: creature.FinalBoss()}
}

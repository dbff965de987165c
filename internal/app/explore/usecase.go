package explore

import (
	"context"
	"errors"
	"fmt"

	"wildbound/internal/app/combat"
	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/player"
	"wildbound/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid explore request")

// MoveUseCase walks the player one cell and rolls for a wild encounter on
// the destination.
type MoveUseCase struct {
	Loop    ports.EventLoop
	Battles combat.Battles
	Rand    world.Rand
}

func (u MoveUseCase) Execute(ctx context.Context, req MoveRequest) (MoveResponse, error) {
	dir, err := player.ParseDirection(req.Direction)
	if err != nil {
		return MoveResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	var out MoveResponse
	err = session.Do(ctx, u.Loop, func() error {
		g, err := u.Battles.Sessions.Get(ctx, req.Slot)
		if err != nil {
			return err
		}
		if g.Battle != nil {
			return combat.ErrBattleInProgress
		}
		w := g.State.World
		p := g.State.Player

		moved := p.Move(dir, w)
		out = MoveResponse{Slot: g.Slot, Moved: moved}
		if moved {
			wild, err := p.CheckForEncounter(w, u.Battles.Sessions.Factory(), u.rng())
			if err != nil {
				return err
			}
			if wild != nil && p.Collection.HasUsableCreatures() {
				ab, err := u.Battles.Start(g, wild, 0, false)
				if err != nil {
					return err
				}
				snap := ab.Engine.Snapshot()
				out.Encounter = &snap
			}
			if err := persist(ctx, u.Battles, g); err != nil {
				return err
			}
		}
		out.Position = p.Position
		out.StepsTaken = p.Stats.StepsTaken
		if b := p.CurrentBiome(w); b != nil {
			out.Biome = b.Name
		}
		out.POI = p.CurrentPOI(w)
		return nil
	})
	if err != nil {
		return MoveResponse{}, err
	}
	return out, nil
}

func (u MoveUseCase) rng() world.Rand {
	if u.Rand == nil {
		return globalRand{}
	}
	return u.Rand
}

// InteractUseCase explores the player's current cell.
type InteractUseCase struct {
	Loop    ports.EventLoop
	Battles combat.Battles
}

func (u InteractUseCase) Execute(ctx context.Context, req InteractRequest) (InteractResponse, error) {
	var out InteractResponse
	err := session.Do(ctx, u.Loop, func() error {
		g, err := u.Battles.Sessions.Get(ctx, req.Slot)
		if err != nil {
			return err
		}
		if g.Battle != nil {
			return combat.ErrBattleInProgress
		}
		in, err := g.State.Player.Interact(g.State.World, u.Battles.Sessions.Factory())
		if err != nil {
			return err
		}
		out = InteractResponse{Slot: g.Slot, Interaction: in}
		if in.Kind == player.InteractionEncounter && in.Encounter != nil {
			ab, err := u.Battles.Start(g, in.Encounter, 0, false)
			if err != nil {
				return err
			}
			snap := ab.Engine.Snapshot()
			out.Encounter = &snap
		}
		return persist(ctx, u.Battles, g)
	})
	if err != nil {
		return InteractResponse{}, err
	}
	return out, nil
}

func persist(ctx context.Context, b combat.Battles, g *session.Game) error {
	err := b.Sessions.Persist(ctx, g, nil)
	if err != nil && b.Metrics != nil {
		if errors.Is(err, ports.ErrConflict) {
			b.Metrics.RecordConflict()
		} else {
			b.Metrics.RecordFailure()
		}
	}
	return err
}

package roster

import (
	"context"
	"errors"
	"fmt"

	"wildbound/internal/app/combat"
	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/world"
)

var (
	ErrInvalidRequest  = errors.New("invalid roster request")
	ErrUnknownCreature = errors.New("creature not in collection")
	ErrTeamFull        = errors.New("team is full")
	ErrLastTeamMember  = errors.New("team needs at least one creature")
	ErrCannotEvolve    = errors.New("creature cannot evolve yet")
	ErrNoHealer        = errors.New("no healing here")
)

type UseCase struct {
	Loop     ports.EventLoop
	Sessions *session.Manager
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	switch req.Op {
	case OpTeamAdd, OpTeamRemove, OpEvolve:
		if req.CreatureID == "" {
			return Response{}, ErrInvalidRequest
		}
	case OpHeal:
	default:
		return Response{}, fmt.Errorf("%w: unknown op %q", ErrInvalidRequest, req.Op)
	}

	var out Response
	err := session.Do(ctx, u.Loop, func() error {
		g, err := u.Sessions.Get(ctx, req.Slot)
		if err != nil {
			return err
		}
		if g.Battle != nil {
			return combat.ErrBattleInProgress
		}
		col := g.State.Player.Collection
		out = Response{Slot: g.Slot, Op: req.Op}

		switch req.Op {
		case OpTeamAdd:
			c, ok := col.Get(req.CreatureID)
			if !ok {
				return ErrUnknownCreature
			}
			if col.InTeam(c.ID) {
				out.Message = fmt.Sprintf("%s is already in the team.", c.Name)
				break
			}
			if !col.AddToTeam(c.ID) {
				return ErrTeamFull
			}
			out.Creature = c
			out.Message = fmt.Sprintf("%s joined the team.", c.Name)
		case OpTeamRemove:
			c, ok := col.Get(req.CreatureID)
			if !ok || !col.InTeam(c.ID) {
				return ErrUnknownCreature
			}
			if len(col.Team()) == 1 {
				return ErrLastTeamMember
			}
			col.RemoveFromTeam(c.ID)
			out.Creature = c
			out.Message = fmt.Sprintf("%s left the team.", c.Name)
		case OpEvolve:
			c, ok := col.Get(req.CreatureID)
			if !ok {
				return ErrUnknownCreature
			}
			evolved, ok := u.Sessions.Factory().Evolve(c)
			if !ok {
				return fmt.Errorf("%w: %s", ErrCannotEvolve, c.Name)
			}
			col.Replace(evolved)
			out.Creature = evolved
			out.Message = fmt.Sprintf("%s evolved into %s!", c.Name, evolved.Name)
		case OpHeal:
			poi := g.State.Player.CurrentPOI(g.State.World)
			if poi == nil || !(poi.HasHealing || poi.Type == world.POITown) {
				return ErrNoHealer
			}
			col.HealAll()
			out.Message = fmt.Sprintf("Welcome to %s! Your creatures have been healed.", poi.Name)
		}

		if err := u.Sessions.Persist(ctx, g, nil); err != nil {
			return err
		}
		out.Team = col.Team()
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

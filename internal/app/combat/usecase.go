package combat

import (
	"context"
	"errors"
	"fmt"

	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/battle"
	"wildbound/internal/domain/creature"
)

var (
	ErrUnknownBoss   = errors.New("unknown boss")
	ErrBossDefeated  = errors.New("boss already defeated")
	ErrFinalBossLock = errors.New("defeat every gym boss before the final challenge")
)

// UseCase resolves the player's battle actions.
type UseCase struct {
	Loop    ports.EventLoop
	Battles Battles
}

func (u UseCase) Execute(ctx context.Context, req ActionRequest) (ActionResponse, error) {
	action, err := battle.ParseAction(req.Action)
	if err != nil {
		return ActionResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	var out ActionResponse
	err = session.Do(ctx, u.Loop, func() error {
		g, err := u.Battles.Sessions.Get(ctx, req.Slot)
		if err != nil {
			return err
		}
		if g.Battle == nil {
			return ErrNoBattle
		}
		engine := g.Battle.Engine

		br := battle.Request{Action: action, MoveIndex: req.MoveIndex}
		if action == battle.ActionSwitch {
			next, ok := g.State.Player.Collection.Get(req.SwitchTo)
			if !ok || !g.State.Player.Collection.InTeam(req.SwitchTo) {
				return fmt.Errorf("%w: %q is not in the team", battle.ErrInvalidSwitch, req.SwitchTo)
			}
			br.Switch = next
		}

		res, err := engine.PerformAction(br)
		if err != nil {
			return err
		}
		if !engine.Ended() {
			u.Battles.publish(g.Slot, ports.BattleAction, engine, nil)
		}
		out = ActionResponse{Slot: g.Slot, Action: res, Battle: engine.Snapshot()}
		if result, ok := engine.Result(); ok {
			out.Result = &result
		}
		return nil
	})
	if err != nil {
		return ActionResponse{}, err
	}
	return out, nil
}

// BossUseCase starts a boss battle.
type BossUseCase struct {
	Loop    ports.EventLoop
	Battles Battles
}

func (u BossUseCase) Execute(ctx context.Context, req BossRequest) (BossResponse, error) {
	boss, ok := creature.BossByID(req.BossID)
	if !ok {
		return BossResponse{}, fmt.Errorf("%w: %d", ErrUnknownBoss, req.BossID)
	}
	var out BossResponse
	err := session.Do(ctx, u.Loop, func() error {
		g, err := u.Battles.Sessions.Get(ctx, req.Slot)
		if err != nil {
			return err
		}
		p := g.State.Player
		if p.HasDefeatedBoss(boss.ID) {
			return ErrBossDefeated
		}
		if boss.ID == creature.FinalBossID && !p.CanChallengeFinalBoss() {
			return ErrFinalBossLock
		}
		opponent, err := u.Battles.Sessions.Factory().Boss(boss)
		if err != nil {
			return err
		}
		ab, err := u.Battles.Start(g, opponent, boss.ID, true)
		if err != nil {
			return err
		}
		out = BossResponse{Slot: g.Slot, BossID: boss.ID, Battle: ab.Engine.Snapshot()}
		return nil
	})
	if err != nil {
		return BossResponse{}, err
	}
	return out, nil
}

type StateUseCase struct {
	Loop     ports.EventLoop
	Sessions *session.Manager
}

func (u StateUseCase) Execute(ctx context.Context, req StateRequest) (StateResponse, error) {
	var out StateResponse
	err := session.Do(ctx, u.Loop, func() error {
		g, err := u.Sessions.Get(ctx, req.Slot)
		if err != nil {
			return err
		}
		out = StateResponse{Slot: g.Slot}
		if g.Battle != nil {
			snap := g.Battle.Engine.Snapshot()
			out.Active = true
			out.Battle = &snap
		}
		return nil
	})
	if err != nil {
		return StateResponse{}, err
	}
	return out, nil
}

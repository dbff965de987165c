package status

import (
	"context"

	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/creature"
)

type UseCase struct {
	Loop     ports.EventLoop
	Sessions *session.Manager
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	var out Response
	err := session.Do(ctx, u.Loop, func() error {
		g, err := u.Sessions.Get(ctx, req.Slot)
		if err != nil {
			return err
		}
		p := g.State.Player
		p.Stats.UpdatePlayTime(u.Sessions.Now())
		col := p.Collection

		out = Response{
			Slot:             g.Slot,
			Version:          g.Version,
			Name:             p.Name,
			Level:            p.Level,
			Experience:       p.Experience,
			ExperienceToNext: p.ExperienceToNextLevel(),
			Position:         p.Position,
			POI:              p.CurrentPOI(g.State.World),
			Team:             col.Team(),
			CapturedCount:    len(col.Captured()),
			UniqueSpecies:    col.UniqueSpeciesCount(),
			CollectorLevel:   col.CollectorLevelName(),
			Inventory:        p.Inventory.Items(),
			Stats:            p.Stats,
			PlayTime:         p.Stats.PlayTimeFormatted(),
			FinalBossUnlock:  p.CanChallengeFinalBoss(),
			InBattle:         g.Battle != nil,
		}
		if b := p.CurrentBiome(g.State.World); b != nil {
			out.Biome = b.Name
		}
		for _, b := range append(creature.Bosses(), creature.FinalBoss()) {
			out.Bosses = append(out.Bosses, BossProgress{
				ID:       b.ID,
				Name:     b.Name,
				Location: b.Location,
				Level:    b.Level,
				Defeated: p.HasDefeatedBoss(b.ID),
			})
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

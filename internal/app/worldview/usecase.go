package worldview

import (
	"context"

	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/world"
)

type Request struct {
	Slot   string
	Radius int
}

type Response struct {
	Slot     string         `json:"slot"`
	Position world.Point    `json:"position"`
	View     world.Snapshot `json:"view"`
	// Visited lists the discovered cells inside the view.
	Visited []world.Point `json:"visited"`
}

type UseCase struct {
	Loop     ports.EventLoop
	Sessions *session.Manager
	World    ports.WorldViewProvider
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	var out Response
	err := session.Do(ctx, u.Loop, func() error {
		g, err := u.Sessions.Get(ctx, req.Slot)
		if err != nil {
			return err
		}
		p := g.State.Player
		view, err := u.World.View(ctx, g.State.World, p.Position, req.Radius)
		if err != nil {
			return err
		}
		out = Response{Slot: g.Slot, Position: p.Position, View: view, Visited: []world.Point{}}
		for _, t := range view.VisibleTiles {
			pt := world.Point{X: t.X, Y: t.Y}
			if p.Visited(pt) {
				out.Visited = append(out.Visited, pt)
			}
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

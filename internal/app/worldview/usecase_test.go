package worldview

import (
	"context"
	"errors"
	"testing"
	"time"

	"wildbound/internal/adapter/repo/memory"
	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/player"
	"wildbound/internal/domain/world"
)

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	store := memory.NewStore()
	m := session.NewManager(session.Config{
		Saves:   memory.NewSaveRepo(store),
		Tx:      memory.NewTxManager(store),
		Factory: creature.DefaultFactory(),
		Now:     func() time.Time { return time.Unix(10, 0) },
	})
	if _, err := m.Create(context.Background(), session.NewGameParams{Slot: "s", Width: 30, Height: 24, Seed: 0.5}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return m
}

func TestUseCase_CentersOnPlayerAndMarksVisited(t *testing.T) {
	sessions := newSessions(t)
	provider := &viewProvider{}
	uc := UseCase{Sessions: sessions, World: provider}
	g, _ := sessions.Get(context.Background(), "s")
	moved := false
	for _, d := range []player.Direction{player.Up, player.Down, player.Left, player.Right} {
		if moved = g.State.Player.Move(d, g.State.World); moved {
			break
		}
	}
	if !moved {
		t.Fatalf("spawn is enclosed")
	}

	out, err := uc.Execute(context.Background(), Request{Slot: "s", Radius: 4})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if provider.center != g.State.Player.Position || provider.radius != 4 {
		t.Fatalf("expected view centred on player with radius 4, got %+v r=%d", provider.center, provider.radius)
	}
	if len(out.Visited) != 1 || out.Visited[0] != g.State.Player.Position {
		t.Fatalf("expected only the current cell visited, got %+v", out.Visited)
	}
}

func TestUseCase_PropagatesWorldError(t *testing.T) {
	wantErr := errors.New("world down")
	uc := UseCase{Sessions: newSessions(t), World: &viewProvider{err: wantErr}}
	if _, err := uc.Execute(context.Background(), Request{Slot: "s"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected world error %v, got %v", wantErr, err)
	}
}

type viewProvider struct {
	center world.Point
	radius int
	err    error
}

func (p *viewProvider) View(_ context.Context, _ *world.World, center world.Point, radius int) (world.Snapshot, error) {
	p.center = center
	p.radius = radius
	if p.err != nil {
		return world.Snapshot{}, p.err
	}
	return world.Snapshot{
		Center: center,
		VisibleTiles: []world.Tile{
			{X: center.X, Y: center.Y},
			{X: center.X + 1, Y: center.Y},
		},
	}, nil
}

var _ ports.WorldViewProvider = (*viewProvider)(nil)

package newgame

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/world"
)

const (
	MinWorldSize = 16
	MaxWorldSize = 512
	MaxNameLen   = 32
)

var ErrInvalidRequest = errors.New("invalid new game request")

type UseCase struct {
	Loop     ports.EventLoop
	Sessions *session.Manager
	// Seed draws a seed for requests that omit one.
	Seed     func() float64
	Defaults Defaults
}

// Defaults fill in world parameters a request leaves empty. Zero values fall
// through to the world package defaults.
type Defaults struct {
	Width  int
	Height int
	Noise  world.NoiseKind
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) > MaxNameLen {
		return Response{}, fmt.Errorf("%w: name longer than %d", ErrInvalidRequest, MaxNameLen)
	}
	for _, size := range []int{req.Width, req.Height} {
		if size != 0 && (size < MinWorldSize || size > MaxWorldSize) {
			return Response{}, fmt.Errorf("%w: world size must be within [%d,%d]", ErrInvalidRequest, MinWorldSize, MaxWorldSize)
		}
	}
	width, height := req.Width, req.Height
	if width == 0 {
		width = u.Defaults.Width
	}
	if height == 0 {
		height = u.Defaults.Height
	}
	noise := u.Defaults.Noise
	if req.Noise != "" {
		kind, err := world.ParseNoiseKind(req.Noise)
		if err != nil {
			return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		noise = kind
	}
	seed := u.seed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	var out Response
	err := session.Do(ctx, u.Loop, func() error {
		g, err := u.Sessions.Create(ctx, session.NewGameParams{
			Slot:      req.Slot,
			Name:      name,
			Starter:   req.Starter,
			Width:     width,
			Height:    height,
			Seed:      seed,
			Noise:     noise,
			Overwrite: req.Overwrite,
		})
		if err != nil {
			return err
		}
		w := g.State.World
		out = Response{
			Slot:    g.Slot,
			Version: g.Version,
			Seed:    w.Seed(),
			Width:   w.Width(),
			Height:  w.Height(),
			Noise:   w.Noise(),
			Spawn:   g.State.Player.Position,
			Starter: g.State.Player.Collection.ActiveCreature(),
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) seed() float64 {
	if u.Seed != nil {
		return u.Seed()
	}
	return rand.Float64()
}

type ListUseCase struct {
	Saves ports.SaveRepository
}

func (u ListUseCase) Execute(ctx context.Context) (ListResponse, error) {
	slots, err := u.Saves.List(ctx)
	if err != nil {
		return ListResponse{}, err
	}
	out := ListResponse{Slots: make([]SlotSummary, 0, len(slots))}
	for _, s := range slots {
		out.Slots = append(out.Slots, SlotSummary{
			Slot:        s.Slot,
			Version:     s.Version,
			PlayerName:  s.PlayerName,
			PlayerLevel: s.PlayerLevel,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return out, nil
}

type DeleteUseCase struct {
	Loop     ports.EventLoop
	Sessions *session.Manager
}

func (u DeleteUseCase) Execute(ctx context.Context, req DeleteRequest) error {
	return session.Do(ctx, u.Loop, func() error {
		return u.Sessions.Delete(ctx, req.Slot)
	})
}

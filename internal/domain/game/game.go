package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/player"
	"wildbound/internal/domain/world"
)

const SaveVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported save version")
	ErrCorruptSave        = errors.New("corrupt save data")
)

type WorldParams struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Seed        float64         `json:"seed"`
	Noise       world.NoiseKind `json:"noise"`
	Fingerprint uint64          `json:"fingerprint"`
}

func ParamsOf(w *world.World) WorldParams {
	return WorldParams{
		Width:       w.Width(),
		Height:      w.Height(),
		Seed:        w.Seed(),
		Noise:       w.Noise(),
		Fingerprint: w.Fingerprint(),
	}
}

// Build regenerates the world and checks it against the saved fingerprint.
func (p WorldParams) Build() (*world.World, error) {
	return world.NewGenerator(world.GeneratorConfig{Noise: p.Noise}).Restore(p.Width, p.Height, p.Seed, p.Fingerprint)
}

// Matches reports whether w is the world these parameters describe.
func (p WorldParams) Matches(w *world.World) bool {
	return w != nil && w.Width() == p.Width && w.Height() == p.Height &&
		w.Seed() == p.Seed && w.Fingerprint() == p.Fingerprint
}

// SaveData is the persisted blob. Grids are not stored; they are
// regenerated from the world parameters.
type SaveData struct {
	Version    int                       `json:"version"`
	World      WorldParams               `json:"world"`
	Player     player.Record             `json:"player"`
	Collection creature.CollectionRecord `json:"collection"`
	SavedAt    time.Time                 `json:"savedAt"`
}

// State is a live game.
type State struct {
	World  *world.World
	Player *player.Player
}

// NewGame spawns a player at the starter town with a starter creature.
func NewGame(w *world.World, name, starterID string, f creature.Factory, now time.Time) (*State, error) {
	starter, err := f.Starter(starterID)
	if err != nil {
		return nil, err
	}
	col := creature.NewCollection(creature.DefaultMaxTeamSize)
	col.Add(starter)
	return &State{World: w, Player: player.New(name, w.Spawn(), col, now)}, nil
}

func Snapshot(s *State, now time.Time) SaveData {
	return SaveData{
		Version:    SaveVersion,
		World:      ParamsOf(s.World),
		Player:     s.Player.Record(now),
		Collection: s.Player.Collection.Record(),
		SavedAt:    now,
	}
}

// Restore rebuilds a game. A nil world is regenerated from the save; a
// supplied world must match it. A player standing outside the world is
// moved back to the spawn.
func Restore(data SaveData, w *world.World, f creature.Factory) (*State, error) {
	if data.Version != SaveVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data.Version)
	}
	if w == nil {
		built, err := data.World.Build()
		if err != nil {
			return nil, err
		}
		w = built
	} else if !data.World.Matches(w) {
		return nil, world.ErrWorldMismatch
	}

	col, err := creature.RestoreCollection(data.Collection, f, creature.DefaultMaxTeamSize)
	if err != nil {
		return nil, fmt.Errorf("restore collection: %w", err)
	}
	p := player.Restore(data.Player, col)
	if w.BiomeAt(p.Position.X, p.Position.Y) == nil {
		p.Position = w.Spawn()
	}
	return &State{World: w, Player: p}, nil
}

func Encode(data SaveData) ([]byte, error) {
	return json.Marshal(data)
}

func Decode(raw []byte) (SaveData, error) {
	var data SaveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SaveData{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if data.Version != SaveVersion {
		return SaveData{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data.Version)
	}
	return data, nil
}

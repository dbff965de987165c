package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"wildbound/internal/app/ports"
	"wildbound/internal/domain/battle"
	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/game"
	"wildbound/internal/domain/world"
	"wildbound/pkg/logger"
)

const DefaultSlot = "default"

var (
	ErrInvalidSlot = errors.New("invalid save slot")
	ErrSlotExists  = errors.New("save slot already exists")
)

// Game is a live save slot. Battle is set while a battle is in progress.
type Game struct {
	Slot    string
	Version int64
	State   *game.State
	Battle  *ActiveBattle
}

type ActiveBattle struct {
	ID        string
	Engine    *battle.Engine
	BossID    int
	IsBoss    bool
	StartedAt time.Time
}

type Config struct {
	Saves   ports.SaveRepository
	Tx      ports.TxManager
	Factory creature.Factory
	Now     func() time.Time
}

// Manager owns live games. It is confined to the event loop and does no
// locking of its own.
type Manager struct {
	saves   ports.SaveRepository
	tx      ports.TxManager
	factory creature.Factory
	now     func() time.Time
	games   map[string]*Game
	worlds  map[game.WorldParams]*world.World
}

func NewManager(cfg Config) *Manager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{
		saves:   cfg.Saves,
		tx:      cfg.Tx,
		factory: cfg.Factory,
		now:     cfg.Now,
		games:   map[string]*Game{},
		worlds:  map[game.WorldParams]*world.World{},
	}
}

func (m *Manager) Factory() creature.Factory { return m.factory }
func (m *Manager) Now() time.Time            { return m.now() }

func NormalizeSlot(slot string) (string, error) {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return DefaultSlot, nil
	}
	if len(slot) > 64 || strings.ContainsAny(slot, "/\\ \t\n") {
		return "", ErrInvalidSlot
	}
	return slot, nil
}

type NewGameParams struct {
	Slot      string
	Name      string
	Starter   string
	Width     int
	Height    int
	Seed      float64
	Noise     world.NoiseKind
	Overwrite bool
}

// Create generates (or reuses) the world, grants the starter and persists
// the new slot. A live game being overwritten loses its battle.
func (m *Manager) Create(ctx context.Context, p NewGameParams) (*Game, error) {
	slot, err := NormalizeSlot(p.Slot)
	if err != nil {
		return nil, err
	}

	expected := int64(0)
	existing, err := m.saves.Get(ctx, slot)
	switch {
	case err == nil && !p.Overwrite:
		return nil, ErrSlotExists
	case err == nil:
		expected = existing.Version
	case !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}

	w, err := m.World(p.Width, p.Height, p.Seed, p.Noise)
	if err != nil {
		return nil, err
	}
	state, err := game.NewGame(w, p.Name, p.Starter, m.factory, m.now())
	if err != nil {
		m.pruneWorlds()
		return nil, err
	}

	g := &Game{Slot: slot, Version: expected, State: state}
	if err := m.persist(ctx, g, nil); err != nil {
		m.pruneWorlds()
		return nil, err
	}
	m.drop(slot)
	m.games[slot] = g
	m.pruneWorlds()
	logger.L().WithFields(logrus.Fields{
		"component": "session",
		"slot":      slot,
		"width":     w.Width(),
		"height":    w.Height(),
		"seed":      w.Seed(),
		"noise":     w.Noise(),
	}).Info("New game created")
	return g, nil
}

// Get returns the live game for slot, loading it from storage on a miss.
func (m *Manager) Get(ctx context.Context, slot string) (*Game, error) {
	slot, err := NormalizeSlot(slot)
	if err != nil {
		return nil, err
	}
	if g, ok := m.games[slot]; ok {
		return g, nil
	}
	saved, err := m.saves.Get(ctx, slot)
	if err != nil {
		return nil, err
	}
	w, err := m.worldFor(saved.Data.World)
	if err != nil {
		m.pruneWorlds()
		return nil, err
	}
	state, err := game.Restore(saved.Data, w, m.factory)
	if err != nil {
		m.pruneWorlds()
		return nil, fmt.Errorf("restore slot %q: %w", slot, err)
	}
	g := &Game{Slot: slot, Version: saved.Version, State: state}
	m.games[slot] = g
	return g, nil
}

// Persist saves g with optimistic versioning. extra runs in the same
// transaction.
func (m *Manager) Persist(ctx context.Context, g *Game, extra func(ctx context.Context) error) error {
	return m.persist(ctx, g, extra)
}

func (m *Manager) persist(ctx context.Context, g *Game, extra func(ctx context.Context) error) error {
	now := m.now()
	next := ports.SaveSlot{
		Slot:      g.Slot,
		Version:   g.Version + 1,
		Data:      game.Snapshot(g.State, now),
		UpdatedAt: now,
	}
	err := m.runInTx(ctx, func(txCtx context.Context) error {
		if err := m.saves.SaveWithVersion(txCtx, next, g.Version); err != nil {
			return err
		}
		if extra != nil {
			return extra(txCtx)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			// Another writer won; the cached copy is stale.
			m.drop(g.Slot)
			m.pruneWorlds()
		}
		return err
	}
	g.Version = next.Version
	return nil
}

func (m *Manager) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.tx == nil {
		return fn(ctx)
	}
	return m.tx.RunInTx(ctx, fn)
}

func (m *Manager) Delete(ctx context.Context, slot string) error {
	slot, err := NormalizeSlot(slot)
	if err != nil {
		return err
	}
	if err := m.saves.Delete(ctx, slot); err != nil {
		return err
	}
	m.drop(slot)
	m.pruneWorlds()
	return nil
}

// Evict forgets the live copy so the next Get reloads from storage.
func (m *Manager) Evict(slot string) {
	m.drop(slot)
	m.pruneWorlds()
}

// drop forgets the live game for slot. Its battle is abandoned so a pending
// opponent turn cannot write the dropped state back.
func (m *Manager) drop(slot string) {
	g, ok := m.games[slot]
	if !ok {
		return
	}
	delete(m.games, slot)
	if ab := g.Battle; ab != nil {
		g.Battle = nil
		if ab.Engine != nil {
			ab.Engine.Abandon()
		}
		logger.L().WithFields(logrus.Fields{
			"component": "battle",
			"slot":      slot,
			"battle_id": ab.ID,
		}).Debug("Battle abandoned")
	}
}

// pruneWorlds drops cached worlds that no live game uses.
func (m *Manager) pruneWorlds() {
	used := mapset.New[*world.World]()
	for _, g := range m.games {
		used.Put(g.State.World)
	}
	for key, w := range m.worlds {
		if !used.Has(w) {
			delete(m.worlds, key)
		}
	}
}

// World returns a cached world or generates it. Worlds stay cached while a
// live game uses them.
func (m *Manager) World(width, height int, seed float64, noise world.NoiseKind) (*world.World, error) {
	if width == 0 {
		width = world.DefaultWidth
	}
	if height == 0 {
		height = world.DefaultHeight
	}
	if noise == "" {
		noise = world.NoiseValue
	}
	key := game.WorldParams{Width: width, Height: height, Seed: seed, Noise: noise}
	if w, ok := m.worlds[key]; ok {
		return w, nil
	}
	start := m.now()
	w, err := world.NewGenerator(world.GeneratorConfig{Noise: noise}).Generate(width, height, seed)
	if err != nil {
		return nil, err
	}
	m.worlds[key] = w
	logBiomeDistribution(w, m.now().Sub(start))
	return w, nil
}

func (m *Manager) worldFor(p game.WorldParams) (*world.World, error) {
	w, err := m.World(p.Width, p.Height, p.Seed, p.Noise)
	if err != nil {
		return nil, err
	}
	if !p.Matches(w) {
		return nil, world.ErrWorldMismatch
	}
	return w, nil
}

func logBiomeDistribution(w *world.World, took time.Duration) {
	counts := w.BiomeCounts()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	fields := logrus.Fields{
		"component": "worldgen",
		"width":     w.Width(),
		"height":    w.Height(),
		"pois":      len(w.POIs()),
		"took_ms":   took.Milliseconds(),
	}
	for _, t := range types {
		fields["biome_"+t] = counts[world.BiomeType(t)]
	}
	logger.L().WithFields(fields).Debug("World generated")
}

// Do runs fn on l, or inline when no loop is configured.
func Do(ctx context.Context, l ports.EventLoop, fn func() error) error {
	if l == nil {
		return fn()
	}
	return l.Do(ctx, fn)
}

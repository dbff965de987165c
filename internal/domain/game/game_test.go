package game

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/player"
	"wildbound/internal/domain/world"
)

func testFactory() creature.Factory {
	f := creature.DefaultFactory()
	n := 0
	f.NewID = func() string {
		n++
		return "c" + strconv.Itoa(n)
	}
	return f
}

func mustWorld(t *testing.T, w, h int, seed float64) *world.World {
	t.Helper()
	out, err := world.NewGenerator(world.GeneratorConfig{}).Generate(w, h, seed)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return out
}

func TestNewGame_SpawnsAtTownWithStarter(t *testing.T) {
	w := mustWorld(t, 40, 30, 0.77)
	s, err := NewGame(w, "Ash", "", testFactory(), time.Unix(0, 0))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if s.Player.Position != w.Spawn() || s.Player.Name != "Ash" {
		t.Fatalf("unexpected player %+v", s.Player)
	}
	lead := s.Player.Collection.ActiveCreature()
	if lead == nil || lead.TemplateID != creature.StarterTemplate || lead.Level != creature.StarterLevel || lead.IsWild {
		t.Fatalf("unexpected starter %+v", lead)
	}
	if _, err := NewGame(w, "Ash", "missingno", testFactory(), time.Unix(0, 0)); !errors.Is(err, creature.ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestSaveLoad_RoundTripReproducesWorldAndCreatures(t *testing.T) {
	f := testFactory()
	w := mustWorld(t, 40, 30, 0.77)
	s, _ := NewGame(w, "Ash", "", f, time.Unix(0, 0))
	wild, _ := f.New("aquafin", 4, true)
	s.Player.Collection.Capture(wild)
	wild.TakeDamage(7)
	s.Player.Move(player.Left, w)

	raw, err := Encode(Snapshot(s, time.Unix(60, 0)))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	back, err := Restore(data, nil, f)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if back.World.Fingerprint() != w.Fingerprint() {
		t.Fatalf("expected identical world")
	}
	if back.Player.Position != s.Player.Position {
		t.Fatalf("expected position %+v, got %+v", s.Player.Position, back.Player.Position)
	}
	orig := s.Player.Collection.Captured()
	got := back.Player.Collection.Captured()
	if len(got) != len(orig) {
		t.Fatalf("expected %d creatures, got %d", len(orig), len(got))
	}
	for i := range orig {
		if got[i].ID != orig[i].ID || got[i].Stats != orig[i].Stats || got[i].Level != orig[i].Level || got[i].CurrentHP != orig[i].CurrentHP {
			t.Fatalf("creature %d differs: %+v vs %+v", i, got[i], orig[i])
		}
	}
}

func TestRestore_RejectsMismatchedWorld(t *testing.T) {
	f := testFactory()
	w := mustWorld(t, 30, 30, 0.5)
	s, _ := NewGame(w, "", "", f, time.Unix(0, 0))
	data := Snapshot(s, time.Unix(0, 0))

	other := mustWorld(t, 30, 30, 0.6)
	if _, err := Restore(data, other, f); !errors.Is(err, world.ErrWorldMismatch) {
		t.Fatalf("expected ErrWorldMismatch, got %v", err)
	}

	data.World.Fingerprint++
	if _, err := Restore(data, nil, f); !errors.Is(err, world.ErrWorldMismatch) {
		t.Fatalf("expected ErrWorldMismatch on tampered fingerprint, got %v", err)
	}
}

func TestRestore_ClampsOffMapPlayerToSpawn(t *testing.T) {
	f := testFactory()
	w := mustWorld(t, 30, 30, 0.5)
	s, _ := NewGame(w, "", "", f, time.Unix(0, 0))
	data := Snapshot(s, time.Unix(0, 0))
	data.Player.X = 500

	back, err := Restore(data, w, f)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if back.Player.Position != w.Spawn() {
		t.Fatalf("expected spawn, got %+v", back.Player.Position)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte("{")); !errors.Is(err, ErrCorruptSave) {
		t.Fatalf("expected ErrCorruptSave, got %v", err)
	}
	if _, err := Decode([]byte(`{"version":99}`)); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

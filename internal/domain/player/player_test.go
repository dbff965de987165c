package player

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"wildbound/internal/domain/battle"
	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/world"
)

var (
	plains = world.Climate{Height: 0.5, Moisture: 0.5, Temperature: 0.5}
	ocean  = world.Climate{Height: 0.1, Moisture: 0.5, Temperature: 0.5}
)

// fixtureWorld is a 5x5 plain with water at (4,2) and a POI on several cells.
func fixtureWorld(t *testing.T) *world.World {
	t.Helper()
	cells := world.Fill(5, 5, plains)
	cells[2*5+4] = ocean
	pois := []world.POI{
		{X: 2, Y: 2, Type: world.POITown, Name: world.StarterTownName},
		{X: 1, Y: 1, Type: world.POIShrine, Name: "Moon Shrine"},
		{X: 3, Y: 3, Type: world.POICave, Name: "Echo Cave"},
		{X: 0, Y: 0, Type: world.POIShop, Name: "Corner Shop", Description: "A cozy shop."},
		{X: 3, Y: 1, Type: world.POITemple, Name: "Sun Temple"},
	}
	w, err := world.Assemble(5, 5, 1, cells, pois)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return w
}

func testFactory(r world.Rand) creature.Factory {
	f := creature.DefaultFactory()
	f.Rand = r
	n := 0
	f.NewID = func() string {
		n++
		return "c" + strconv.Itoa(n)
	}
	return f
}

func newPlayer(t *testing.T, w *world.World, f creature.Factory) *Player {
	t.Helper()
	col := creature.NewCollection(creature.DefaultMaxTeamSize)
	starter, err := f.Starter("")
	if err != nil {
		t.Fatalf("Starter: %v", err)
	}
	col.Add(starter)
	return New("", w.Spawn(), col, time.Unix(1000, 0))
}

func TestNew_Defaults(t *testing.T) {
	w := fixtureWorld(t)
	p := newPlayer(t, w, testFactory(&seqRand{}))
	if p.Name != DefaultName || p.Level != 1 || p.Position != (world.Point{X: 2, Y: 2}) {
		t.Fatalf("unexpected player %+v", p)
	}
	if p.Collection.ActiveCreature() == nil {
		t.Fatalf("expected starter in team")
	}
	if p.ExperienceToNextLevel() != 150 {
		t.Fatalf("expected 150, got %d", p.ExperienceToNextLevel())
	}
}

func TestMove_BoundsWaterAndVisits(t *testing.T) {
	w := fixtureWorld(t)
	p := newPlayer(t, w, testFactory(&seqRand{}))

	if !p.Move(Right, w) || p.Position != (world.Point{X: 3, Y: 2}) {
		t.Fatalf("expected move right, at %+v", p.Position)
	}
	if p.Move(Right, w) {
		t.Fatalf("expected water to block movement")
	}
	if p.Position != (world.Point{X: 3, Y: 2}) {
		t.Fatalf("expected position unchanged after blocked move")
	}
	p.Move(Left, w)
	p.Move(Right, w)
	if p.Stats.StepsTaken != 3 || p.Stats.LocationsDiscovered != 2 || p.VisitedCount() != 2 {
		t.Fatalf("unexpected stats %+v visited=%d", p.Stats, p.VisitedCount())
	}

	p.Position = world.Point{X: 0, Y: 0}
	if p.Move(Up, w) || p.Move(Left, w) {
		t.Fatalf("expected edge to block movement")
	}
	if p.Move(Direction("north"), w) {
		t.Fatalf("expected unknown direction to be refused")
	}
	got := p.VisitedLocations()
	if len(got) != 2 || got[0] != (world.Point{X: 2, Y: 2}) || got[1] != (world.Point{X: 3, Y: 2}) {
		t.Fatalf("unexpected visited order %v", got)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection(" UP "); err != nil || d != Up {
		t.Fatalf("expected up, got %q %v", d, err)
	}
	_, err := ParseDirection("dwn")
	if !errors.Is(err, ErrUnknownDirection) || !strings.Contains(err.Error(), `"down"`) {
		t.Fatalf("expected suggestion for down, got %v", err)
	}
}

func TestGainExperience_LevelUpHealsTeam(t *testing.T) {
	w := fixtureWorld(t)
	p := newPlayer(t, w, testFactory(&seqRand{}))
	lead := p.Collection.ActiveCreature()
	lead.TakeDamage(10)

	if !p.GainExperience(150 + 600 + 5) {
		t.Fatalf("expected level up")
	}
	if p.Level != 3 || p.Experience != 5 || p.Stats.TotalExperienceGained != 755 {
		t.Fatalf("unexpected progression level=%d exp=%d", p.Level, p.Experience)
	}
	if lead.CurrentHP != lead.MaxHP {
		t.Fatalf("expected team healed on level up")
	}
}

func TestCheckForEncounter_RollsBiomeRate(t *testing.T) {
	w := fixtureWorld(t)
	p := newPlayer(t, w, testFactory(&seqRand{}))
	p.Level = 10

	c, err := p.CheckForEncounter(w, testFactory(&seqRand{}), &seqRand{floats: []float64{0.5}})
	if err != nil || c != nil {
		t.Fatalf("expected no encounter, got %+v %v", c, err)
	}

	c, err = p.CheckForEncounter(w, testFactory(&seqRand{ints: []int{0, 99}}), &seqRand{floats: []float64{0}})
	if err != nil || c == nil {
		t.Fatalf("expected encounter, got %v", err)
	}
	if c.Level != 12 || !c.IsWild {
		t.Fatalf("expected wild level 12, got %+v", c)
	}
	tpl, _ := creature.DefaultRegistry().Template(c.TemplateID)
	if !tpl.LivesIn("grassland") {
		t.Fatalf("expected grassland species, got %s", c.TemplateID)
	}

	c, _ = p.CheckForEncounter(w, testFactory(&seqRand{}), &seqRand{floats: []float64{0}})
	if c.Level != 7 {
		t.Fatalf("expected min level 7, got %d", c.Level)
	}
}

func TestApplyBattleResult(t *testing.T) {
	w := fixtureWorld(t)
	f := testFactory(&seqRand{})
	p := newPlayer(t, w, f)

	p.ApplyBattleResult(battle.Result{Outcome: battle.OutcomeWon, ExperienceGained: 151})
	if p.Stats.BattlesWon != 1 || p.Experience != 75 {
		t.Fatalf("expected half experience, got %d", p.Experience)
	}

	wild, _ := f.New("aquafin", 3, true)
	p.ApplyBattleResult(battle.Result{Outcome: battle.OutcomeCaptured, Captured: wild})
	if p.Stats.BattlesWon != 2 || p.Stats.CreaturesCaptured != 1 {
		t.Fatalf("unexpected stats %+v", p.Stats)
	}
	if _, ok := p.Collection.Get(wild.ID); !ok || wild.IsWild {
		t.Fatalf("expected capture into collection")
	}

	p.ApplyBattleResult(battle.Result{Outcome: battle.OutcomeLost})
	p.ApplyBattleResult(battle.Result{Outcome: battle.OutcomeRan})
	if p.Stats.BattlesLost != 1 || p.Stats.BattlesWon != 2 {
		t.Fatalf("unexpected stats %+v", p.Stats)
	}
}

func TestInteract(t *testing.T) {
	w := fixtureWorld(t)
	f := testFactory(&seqRand{ints: []int{0, 99}})
	p := newPlayer(t, w, f)
	p.Level = 4
	lead := p.Collection.ActiveCreature()

	lead.TakeDamage(20)
	in, err := p.Interact(w, f)
	if err != nil || in.Kind != InteractionHeal || lead.CurrentHP != lead.MaxHP {
		t.Fatalf("expected town heal, got %+v %v", in, err)
	}
	if in.Message != "Welcome to Starter Town! Your creatures have been healed." {
		t.Fatalf("unexpected message %q", in.Message)
	}

	p.Position = world.Point{X: 1, Y: 1}
	in, _ = p.Interact(w, f)
	if in.Kind != InteractionExperience || in.Experience != 100 || p.Experience != 100 {
		t.Fatalf("expected shrine experience, got %+v", in)
	}

	p.Position = world.Point{X: 3, Y: 3}
	in, _ = p.Interact(w, f)
	if in.Kind != InteractionEncounter || in.Encounter == nil || in.Encounter.Level != 9 {
		t.Fatalf("expected cave encounter at level 9, got %+v", in)
	}

	lead.TakeDamage(5)
	p.Position = world.Point{X: 3, Y: 1}
	in, _ = p.Interact(w, f)
	if in.Kind != InteractionHeal || lead.CurrentHP != lead.MaxHP {
		t.Fatalf("expected temple heal, got %+v", in)
	}

	p.Position = world.Point{X: 0, Y: 0}
	in, _ = p.Interact(w, f)
	if in.Kind != InteractionNone || in.Message != "A cozy shop." {
		t.Fatalf("expected no-op shop, got %+v", in)
	}

	p.Position = world.Point{X: 0, Y: 4}
	in, _ = p.Interact(w, f)
	if in.Kind != InteractionEncounter || in.POI != nil || in.Encounter.Level != 7 {
		t.Fatalf("expected open ground encounter at level 7, got %+v", in)
	}
}

func TestBosses(t *testing.T) {
	w := fixtureWorld(t)
	p := newPlayer(t, w, testFactory(&seqRand{}))
	if !p.DefeatBoss(1) || p.DefeatBoss(1) {
		t.Fatalf("expected boss defeat to dedupe")
	}
	if p.CanChallengeFinalBoss() {
		t.Fatalf("expected final boss locked")
	}
	for _, b := range creature.Bosses() {
		p.DefeatBoss(b.ID)
	}
	if !p.HasDefeatedAllBosses() || !p.CanChallengeFinalBoss() || p.Stats.BossesDefeated != 9 {
		t.Fatalf("expected all bosses defeated, stats=%+v", p.Stats)
	}
}

func TestRecordRestore(t *testing.T) {
	w := fixtureWorld(t)
	p := newPlayer(t, w, testFactory(&seqRand{}))
	p.Move(Down, w)
	p.Inventory.Add("potion", 3)
	p.DefeatBoss(2)
	p.GainExperience(40)

	rec := p.Record(time.Unix(1000, 0).Add(90 * time.Minute))
	if rec.Stats.TimePlayedMs != (90 * time.Minute).Milliseconds() {
		t.Fatalf("expected play time recorded, got %d", rec.Stats.TimePlayedMs)
	}
	back := Restore(rec, p.Collection)
	if back.Position != p.Position || back.Experience != 40 || !back.Visited(world.Point{X: 2, Y: 3}) {
		t.Fatalf("unexpected restored player %+v", back)
	}
	if back.Inventory.Count("potion") != 3 || !back.HasDefeatedBoss(2) {
		t.Fatalf("expected inventory and bosses restored")
	}
	if back.Stats.StepsTaken != 1 || back.Stats.PlayTimeFormatted() != "1h 30m" {
		t.Fatalf("unexpected stats %+v", back.Stats)
	}
}

type seqRand struct {
	ints   []int
	floats []float64
}

func (r *seqRand) IntN(n int) int {
	v := 0
	if len(r.ints) > 0 {
		v = r.ints[0]
		if len(r.ints) > 1 {
			r.ints = r.ints[1:]
		}
	}
	return min(v, n-1)
}

func (r *seqRand) Float64() float64 {
	v := 0.0
	if len(r.floats) > 0 {
		v = r.floats[0]
		if len(r.floats) > 1 {
			r.floats = r.floats[1:]
		}
	}
	return v
}

var _ world.Rand = (*seqRand)(nil)

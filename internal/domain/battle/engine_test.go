package battle

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/world"
)

func newFactory() creature.Factory {
	f := creature.DefaultFactory()
	n := 0
	f.NewID = func() string {
		n++
		return "c" + strconv.Itoa(n)
	}
	return f
}

func mustCreature(t *testing.T, f creature.Factory, id string, level int, wild bool) *creature.Creature {
	t.Helper()
	c, err := f.New(id, level, wild)
	if err != nil {
		t.Fatalf("New(%q): %v", id, err)
	}
	return c
}

// pair returns a level 5 flamewyrm against a slower level 3 wild furball.
func pair(t *testing.T) (*creature.Creature, *creature.Creature) {
	t.Helper()
	f := newFactory()
	p := mustCreature(t, f, "flamewyrm", 5, false)
	o := mustCreature(t, f, "furball", 3, true)
	o.Stats.Speed = 10
	return p, o
}

func mustStart(t *testing.T, p, o *creature.Creature, cfg Config) *Engine {
	t.Helper()
	e, err := Start(p, o, cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e
}

func TestStart_TurnOrderAndIntro(t *testing.T) {
	p, o := pair(t)
	e := mustStart(t, p, o, Config{Rand: &seqRand{}})
	if !e.IsPlayerTurn() || e.Turn() != 1 {
		t.Fatalf("expected player to open on turn 1")
	}
	msgs := e.Messages()
	if len(msgs) != 2 || msgs[0] != "A wild Furball appeared!" || msgs[1] != "Go Flamewyrm!" {
		t.Fatalf("unexpected intro %v", msgs)
	}

	o.Stats.Speed = p.Stats.Speed
	if e := mustStart(t, p, o, Config{}); !e.IsPlayerTurn() {
		t.Fatalf("expected speed tie to favor the player")
	}
	o.Stats.Speed = p.Stats.Speed + 1
	if e := mustStart(t, p, o, Config{}); e.IsPlayerTurn() || !e.OpponentPending() {
		t.Fatalf("expected faster opponent to open")
	}

	if _, err := Start(nil, o, Config{}); !errors.Is(err, ErrMissingCreature) {
		t.Fatalf("expected ErrMissingCreature, got %v", err)
	}
}

func TestAttack_FlamewyrmScenarioFollowsFormula(t *testing.T) {
	p, o := pair(t)
	o.Stats.Defense = 20
	elements := creature.DefaultElementTable()
	rng := &seqRand{floats: []float64{0.3}}
	e := mustStart(t, p, o, Config{Elements: elements, Rand: rng})

	startHP := o.CurrentHP
	out, err := e.PerformAction(Request{Action: ActionAttack, MoveIndex: 0})
	if err != nil {
		t.Fatalf("PerformAction: %v", err)
	}

	if p.Stats.Attack != 35+4*3 {
		t.Fatalf("expected level 5 attack 47, got %d", p.Stats.Attack)
	}
	raw := p.Stats.Attack * 40 / (20 * 2)
	eff := elements.Effectiveness(creature.Fire, creature.Normal)
	want := int(math.Floor(math.Floor(float64(raw)*eff) * RandomFactor(0.3)))
	if want < 1 {
		want = 1
	}
	lo := int(math.Floor(float64(raw) * eff * 0.85))
	hi := int(math.Floor(float64(raw) * eff))

	got := out.Attack
	if got == nil || got.Damage != want {
		t.Fatalf("expected damage %d, got %+v", want, got)
	}
	if got.Damage < lo || got.Damage > hi {
		t.Fatalf("expected damage in [%d,%d], got %d", lo, hi, got.Damage)
	}
	if got.Move != "Fire Strike" || got.Attacker != "Flamewyrm" || got.Defender != "Furball" || got.Effectiveness != 1.0 {
		t.Fatalf("unexpected attack result %+v", got)
	}
	if o.CurrentHP != startHP-want {
		t.Fatalf("expected opponent hp %d, got %d", startHP-want, o.CurrentHP)
	}
	if e.Turn() != 2 || e.IsPlayerTurn() || !e.OpponentPending() {
		t.Fatalf("expected turn to pass to opponent")
	}
	msgs := e.Messages()
	if msgs[2] != "Flamewyrm used Fire Strike!" || msgs[3] != "Furball took "+strconv.Itoa(want)+" damage!" {
		t.Fatalf("unexpected log %v", msgs)
	}
}

func TestAttack_IgnoresMoveAccuracy(t *testing.T) {
	p, o := pair(t)
	p.Moves[0].Accuracy = 0
	e := mustStart(t, p, o, Config{Rand: &seqRand{floats: []float64{0.99}}})
	startHP := o.CurrentHP
	out, err := e.PerformAction(Request{Action: ActionAttack, MoveIndex: 0})
	if err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	if out.Attack == nil || out.Attack.Damage < 1 || o.CurrentHP >= startHP {
		t.Fatalf("expected zero-accuracy move to land, got %+v", out.Attack)
	}
}

func TestAttack_EffectivenessCommentary(t *testing.T) {
	f := newFactory()
	p := mustCreature(t, f, "flamewyrm", 5, false)
	grass := mustCreature(t, f, "leafling", 3, true)
	grass.Stats.Speed = 1
	e := mustStart(t, p, grass, Config{Rand: &seqRand{}})
	e.PerformAction(Request{Action: ActionAttack})
	if !containsMsg(e.Messages(), "It's super effective!") {
		t.Fatalf("expected super effective line, got %v", e.Messages())
	}

	water := mustCreature(t, f, "aquafin", 3, true)
	water.Stats.Speed = 1
	e = mustStart(t, p, water, Config{Rand: &seqRand{}})
	e.PerformAction(Request{Action: ActionAttack})
	if !containsMsg(e.Messages(), "It's not very effective...") {
		t.Fatalf("expected not very effective line, got %v", e.Messages())
	}
}

func TestAttack_OutOfRangeMoveFallsBackToFirst(t *testing.T) {
	for _, idx := range []int{-1, 2, 99} {
		p, o := pair(t)
		e := mustStart(t, p, o, Config{Rand: &seqRand{}})
		out, err := e.PerformAction(Request{Action: ActionAttack, MoveIndex: idx})
		if err != nil {
			t.Fatalf("PerformAction: %v", err)
		}
		if out.Attack.Move != "Fire Strike" {
			t.Fatalf("index %d: expected first move, got %s", idx, out.Attack.Move)
		}
	}
}

func TestCapture_RandomPartition(t *testing.T) {
	p, o := pair(t)
	var results []Result
	e := mustStart(t, p, o, Config{
		Rand:  &seqRand{floats: []float64{0.0}},
		OnEnd: func(r Result) { results = append(results, r) },
	})
	out, err := e.PerformAction(Request{Action: ActionCapture})
	if err != nil || !out.Success {
		t.Fatalf("expected capture with draw 0.0, got %+v %v", out, err)
	}
	if len(results) != 1 || results[0].Outcome != OutcomeCaptured || results[0].Captured != o {
		t.Fatalf("unexpected end results %+v", results)
	}
	if !containsMsg(results[0].Log, "Furball was captured!") {
		t.Fatalf("expected capture line in log")
	}

	p, o = pair(t)
	e = mustStart(t, p, o, Config{Rand: &seqRand{floats: []float64{0.999999}}})
	out, err = e.PerformAction(Request{Action: ActionCapture})
	if err != nil || out.Success {
		t.Fatalf("expected capture failure with draw 0.999999, got %+v %v", out, err)
	}
	if e.Ended() || e.IsPlayerTurn() {
		t.Fatalf("expected battle to continue with the opponent to move")
	}
	if !containsMsg(e.Messages(), "Furball broke free!") {
		t.Fatalf("expected broke free line")
	}
	if _, err := e.PerformAction(Request{Action: ActionAttack}); !errors.Is(err, ErrOpponentTurn) {
		t.Fatalf("expected ErrOpponentTurn, got %v", err)
	}
}

func TestCapture_NonWildOpponentRefuses(t *testing.T) {
	f := newFactory()
	p := mustCreature(t, f, "flamewyrm", 5, false)
	boss, _ := creature.BossByID(1)
	o, err := f.Boss(boss)
	if err != nil {
		t.Fatalf("Boss: %v", err)
	}
	o.Stats.Speed = 1
	e := mustStart(t, p, o, Config{Rand: &seqRand{}})
	if msgs := e.Messages(); msgs[0] != "Flame Emperor wants to battle!" {
		t.Fatalf("unexpected intro %v", msgs)
	}
	out, _ := e.PerformAction(Request{Action: ActionCapture})
	if out.Success || e.Ended() || !containsMsg(e.Messages(), "Flame Emperor can't be captured!") {
		t.Fatalf("expected boss capture refusal, got %v", e.Messages())
	}
}

func TestRun_SuccessAndFailure(t *testing.T) {
	p, o := pair(t)
	e := mustStart(t, p, o, Config{Rand: &seqRand{floats: []float64{0.0}}})
	out, _ := e.PerformAction(Request{Action: ActionRun})
	if !out.Success || !e.Ended() {
		t.Fatalf("expected escape")
	}
	if r, ok := e.Result(); !ok || r.Outcome != OutcomeRan {
		t.Fatalf("expected ran outcome, got %+v", r)
	}

	p, o = pair(t)
	e = mustStart(t, p, o, Config{Rand: &seqRand{floats: []float64{0.95}}})
	out, _ = e.PerformAction(Request{Action: ActionRun})
	if out.Success || e.Ended() || e.IsPlayerTurn() {
		t.Fatalf("expected failed escape to hand the turn over")
	}
	if !containsMsg(e.Messages(), "Couldn't get away!") {
		t.Fatalf("expected failure line")
	}
}

func TestSwitch_CostsTurn(t *testing.T) {
	f := newFactory()
	p, o := pair(t)
	next := mustCreature(t, f, "aquafin", 4, false)
	next.ID = "bench"
	e := mustStart(t, p, o, Config{Rand: &seqRand{}})

	if _, err := e.PerformAction(Request{Action: ActionSwitch}); !errors.Is(err, ErrInvalidSwitch) {
		t.Fatalf("expected ErrInvalidSwitch for nil, got %v", err)
	}
	if _, err := e.PerformAction(Request{Action: ActionSwitch, Switch: p}); !errors.Is(err, ErrInvalidSwitch) {
		t.Fatalf("expected ErrInvalidSwitch for active creature, got %v", err)
	}
	fainted := mustCreature(t, f, "pebble", 2, false)
	fainted.ID = "down"
	fainted.TakeDamage(fainted.MaxHP)
	if _, err := e.PerformAction(Request{Action: ActionSwitch, Switch: fainted}); !errors.Is(err, ErrInvalidSwitch) {
		t.Fatalf("expected ErrInvalidSwitch for fainted, got %v", err)
	}
	if !e.IsPlayerTurn() {
		t.Fatalf("rejected switches must not cost the turn")
	}

	if _, err := e.PerformAction(Request{Action: ActionSwitch, Switch: next}); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if e.Player() != next || e.IsPlayerTurn() {
		t.Fatalf("expected switch to swap creature and pass the turn")
	}
	if !containsMsg(e.Messages(), "Come back Flamewyrm! Go Aquafin!") {
		t.Fatalf("expected switch line, got %v", e.Messages())
	}
	res, ok := e.OpponentTurn()
	if !ok || res.Defender != "Aquafin" {
		t.Fatalf("expected opponent to hit the new creature, got %+v", res)
	}
}

func TestWin_AwardsExperienceAndEndsOnce(t *testing.T) {
	p, o := pair(t)
	o.CurrentHP = 1
	ends := 0
	e := mustStart(t, p, o, Config{Rand: &seqRand{}, OnEnd: func(Result) { ends++ }})
	if _, err := e.PerformAction(Request{Action: ActionAttack}); err != nil {
		t.Fatalf("attack: %v", err)
	}
	r, ok := e.Result()
	if !ok || r.Outcome != OutcomeWon || r.ExperienceGained != 150 || r.Turns != 2 {
		t.Fatalf("unexpected result %+v", r)
	}
	if p.Experience != 150 {
		t.Fatalf("expected 150 exp on player creature, got %d", p.Experience)
	}
	if countMsg(e.Messages(), "Furball fainted!") != 1 {
		t.Fatalf("expected a single faint line, got %v", e.Messages())
	}
	if !containsMsg(e.Messages(), "Flamewyrm gained 150 experience!") {
		t.Fatalf("expected exp line")
	}

	if _, err := e.PerformAction(Request{Action: ActionAttack}); !errors.Is(err, ErrBattleOver) {
		t.Fatalf("expected ErrBattleOver, got %v", err)
	}
	if _, ok := e.OpponentTurn(); ok {
		t.Fatalf("expected no opponent turn after the end")
	}
	if ends != 1 {
		t.Fatalf("expected OnEnd once, got %d", ends)
	}
}

func TestWin_LevelUpAnnouncesEvolution(t *testing.T) {
	f := newFactory()
	p := mustCreature(t, f, "flamewyrm", 15, false)
	p.Experience = p.ExperienceToNextLevel() - 10
	o := mustCreature(t, f, "furball", 3, true)
	o.Stats.Speed = 1
	o.CurrentHP = 1
	e := mustStart(t, p, o, Config{Rand: &seqRand{}})
	e.PerformAction(Request{Action: ActionAttack})

	if p.Level != 16 {
		t.Fatalf("expected level 16, got %d", p.Level)
	}
	msgs := e.Messages()
	if !containsMsg(msgs, "Flamewyrm grew to level 16!") || !containsMsg(msgs, "Flamewyrm can evolve!") {
		t.Fatalf("expected level and evolution lines, got %v", msgs)
	}
}

func TestLoss_WhenPlayerCreatureFaints(t *testing.T) {
	p, o := pair(t)
	p.CurrentHP = 1
	o.Stats.Speed = 999
	var got Result
	e := mustStart(t, p, o, Config{Rand: &seqRand{}, OnEnd: func(r Result) { got = r }})
	if _, ok := e.OpponentTurn(); !ok {
		t.Fatalf("expected opponent to move first")
	}
	if !e.Ended() || got.Outcome != OutcomeLost {
		t.Fatalf("expected loss, got %+v", got)
	}
}

func TestBattle_TerminatesWhenBothSidesAttack(t *testing.T) {
	f := newFactory()
	rng := &seqRand{floats: []float64{0.5}}
	for _, pairIDs := range [][2]string{{"flamewyrm", "furball"}, {"pebble", "crystalite"}, {"aquafin", "sparkle"}} {
		p := mustCreature(t, f, pairIDs[0], 30, false)
		o := mustCreature(t, f, pairIDs[1], 30, true)
		e := mustStart(t, p, o, Config{Rand: rng})
		limit := p.MaxHP + o.MaxHP + 2
		for i := 0; i < limit && !e.Ended(); i++ {
			if e.IsPlayerTurn() {
				if _, err := e.PerformAction(Request{Action: ActionAttack}); err != nil {
					t.Fatalf("attack: %v", err)
				}
			} else {
				e.OpponentTurn()
			}
		}
		if !e.Ended() {
			t.Fatalf("%v: battle did not end within %d actions", pairIDs, limit)
		}
	}
}

func TestAbandon_CancelsScheduledTurnWithoutEnding(t *testing.T) {
	p, o := pair(t)
	o.Stats.Speed = 999
	p.CurrentHP = 1
	sched := &manualScheduler{}
	ends := 0
	moves := 0
	e := mustStart(t, p, o, Config{
		Rand:           &seqRand{},
		Scheduler:      sched,
		OnEnd:          func(Result) { ends++ },
		OnOpponentTurn: func(AttackResult) { moves++ },
	})
	if len(sched.pending) != 1 {
		t.Fatalf("expected opponent turn scheduled at start")
	}
	e.Abandon()
	sched.runAll()
	if moves != 0 || ends != 0 || p.CurrentHP != 1 {
		t.Fatalf("expected abandoned battle to stay idle, moves=%d ends=%d hp=%d", moves, ends, p.CurrentHP)
	}
	if _, ok := e.Result(); ok {
		t.Fatalf("expected no result for an abandoned battle")
	}
	if _, err := e.PerformAction(Request{Action: ActionAttack}); !errors.Is(err, ErrBattleOver) {
		t.Fatalf("expected ErrBattleOver, got %v", err)
	}
}

func TestLog_CappedAtFifty(t *testing.T) {
	p, o := pair(t)
	for _, c := range []*creature.Creature{p, o} {
		c.MaxHP = 1_000_000
		c.CurrentHP = c.MaxHP
	}
	e := mustStart(t, p, o, Config{Rand: &seqRand{}})
	for i := 0; i < 40; i++ {
		e.PerformAction(Request{Action: ActionAttack})
		e.OpponentTurn()
	}
	msgs := e.Messages()
	if len(msgs) != MaxLogEntries {
		t.Fatalf("expected %d entries, got %d", MaxLogEntries, len(msgs))
	}
	if msgs[0] == "A wild Furball appeared!" {
		t.Fatalf("expected oldest entries to be evicted")
	}
	if !strings.HasPrefix(msgs[len(msgs)-1], "Flamewyrm took ") {
		t.Fatalf("expected newest entry last, got %q", msgs[len(msgs)-1])
	}
}

func TestScheduler_PostsOpponentTurnAfterDelay(t *testing.T) {
	p, o := pair(t)
	sched := &manualScheduler{}
	var opponentMoves []AttackResult
	e := mustStart(t, p, o, Config{
		Rand:           &seqRand{floats: []float64{0.999}},
		Scheduler:      sched,
		OpponentDelay:  250 * time.Millisecond,
		OnOpponentTurn: func(r AttackResult) { opponentMoves = append(opponentMoves, r) },
	})
	if len(sched.pending) != 0 {
		t.Fatalf("expected nothing scheduled while the player moves")
	}
	e.PerformAction(Request{Action: ActionRun})
	if len(sched.pending) != 1 || sched.delays[0] != 250*time.Millisecond {
		t.Fatalf("expected one opponent turn at 250ms, got %v", sched.delays)
	}
	if e.Turn() != 1 {
		t.Fatalf("expected opponent move to wait for the scheduler")
	}
	sched.runAll()
	if len(opponentMoves) != 1 || !e.IsPlayerTurn() {
		t.Fatalf("expected opponent move to resolve, got %d", len(opponentMoves))
	}

	o.Stats.Speed = 999
	sched = &manualScheduler{}
	e = mustStart(t, p, o, Config{Rand: &seqRand{}, Scheduler: sched})
	if len(sched.pending) != 1 || sched.delays[0] != DefaultOpponentDelay {
		t.Fatalf("expected faster opponent to be scheduled at start")
	}
	e.OpponentTurn()
	sched.runAll()
	if e.Turn() != 2 {
		t.Fatalf("expected stale scheduled turn to be a no-op, turn=%d", e.Turn())
	}
}

func TestSnapshot_DisplayView(t *testing.T) {
	p, o := pair(t)
	o.CurrentHP = o.MaxHP / 2
	e := mustStart(t, p, o, Config{Rand: &seqRand{}})
	s := e.Snapshot()
	if s.Player.Emoji != "🔥" || s.Player.Color != "#FF6B35" || s.Player.HPFraction != 1 {
		t.Fatalf("unexpected player view %+v", s.Player)
	}
	if s.Opponent.HPFraction <= 0.4 || s.Opponent.HPFraction > 0.5 || !s.Opponent.Wild {
		t.Fatalf("unexpected opponent view %+v", s.Opponent)
	}
	if s.Turn != 1 || !s.PlayerTurn || s.Ended || len(s.Log) != 2 {
		t.Fatalf("unexpected snapshot %+v", s)
	}
}

func TestParseAction(t *testing.T) {
	for _, raw := range []string{"attack", " Capture ", "RUN", "switch"} {
		if _, err := ParseAction(raw); err != nil {
			t.Fatalf("ParseAction(%q): %v", raw, err)
		}
	}
	_, err := ParseAction("atack")
	if !errors.Is(err, ErrUnknownAction) || !strings.Contains(err.Error(), `did you mean "attack"`) {
		t.Fatalf("expected suggestion, got %v", err)
	}
	if _, err := ParseAction("dance"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func containsMsg(msgs []string, want string) bool {
	return countMsg(msgs, want) > 0
}

func countMsg(msgs []string, want string) int {
	n := 0
	for _, m := range msgs {
		if m == want {
			n++
		}
	}
	return n
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

type manualScheduler struct {
	pending []func()
	delays  []time.Duration
}

func (s *manualScheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, fn)
	s.delays = append(s.delays, d)
}

func (s *manualScheduler) runAll() {
	for len(s.pending) > 0 {
		fn := s.pending[0]
		s.pending = s.pending[1:]
		fn()
	}
}

var (
	_ world.Rand = (*seqRand)(nil)
	_ Scheduler  = (*manualScheduler)(nil)
)

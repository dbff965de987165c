package battle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/world"
)

const (
	MaxLogEntries        = 50
	DefaultOpponentDelay = time.Second
)

var (
	ErrMissingCreature = errors.New("battle needs two creatures")
	ErrBattleOver      = errors.New("battle has ended")
	ErrOpponentTurn    = errors.New("waiting for opponent turn")
	ErrInvalidSwitch   = errors.New("invalid switch target")
)

// Scheduler runs fn after d on the caller's event loop.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type Config struct {
	Elements      creature.ElementTable
	Rand          world.Rand
	Now           func() time.Time
	Scheduler     Scheduler
	OpponentDelay time.Duration
	// OnEnd fires exactly once when the battle ends.
	OnEnd          func(Result)
	OnOpponentTurn func(AttackResult)
}

type Request struct {
	Action    Action
	MoveIndex int
	// Switch is the team member to send out for ActionSwitch.
	Switch *creature.Creature
}

type AttackResult struct {
	Attacker      string  `json:"attacker"`
	Defender      string  `json:"defender"`
	Move          string  `json:"move"`
	Damage        int     `json:"damage"`
	WasDefeated   bool    `json:"was_defeated"`
	Effectiveness float64 `json:"effectiveness"`
}

type ActionResult struct {
	Action  Action        `json:"action"`
	Attack  *AttackResult `json:"attack,omitempty"`
	Success bool          `json:"success"`
}

type Result struct {
	Outcome          Outcome            `json:"outcome"`
	Captured         *creature.Creature `json:"captured,omitempty"`
	ExperienceGained int                `json:"experience_gained"`
	Turns            int                `json:"turns"`
	Log              []string           `json:"log"`
}

type LogEntry struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Engine is one battle session. It is not safe for concurrent use; callers
// serialize access through a single event loop.
type Engine struct {
	cfg        Config
	player     *creature.Creature
	opponent   *creature.Creature
	turn       int
	playerTurn bool
	ended      bool
	scheduled  bool
	result     *Result
	log        []LogEntry
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Start opens a session. The faster creature moves first and ties go to the
// player.
func Start(player, opponent *creature.Creature, cfg Config) (*Engine, error) {
	if player == nil || opponent == nil {
		return nil, ErrMissingCreature
	}
	if cfg.Rand == nil {
		cfg.Rand = globalRand{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.OpponentDelay <= 0 {
		cfg.OpponentDelay = DefaultOpponentDelay
	}
	if len(cfg.Elements.Types()) == 0 {
		cfg.Elements = creature.DefaultElementTable()
	}
	e := &Engine{
		cfg:        cfg,
		player:     player,
		opponent:   opponent,
		turn:       1,
		playerTurn: player.Stats.Speed >= opponent.Stats.Speed,
	}
	if opponent.IsWild {
		e.addLog(fmt.Sprintf("A wild %s appeared!", opponent.Name))
	} else {
		e.addLog(fmt.Sprintf("%s wants to battle!", opponent.Name))
	}
	e.addLog(fmt.Sprintf("Go %s!", player.Name))
	e.scheduleOpponent()
	return e, nil
}

func (e *Engine) Player() *creature.Creature   { return e.player }
func (e *Engine) Opponent() *creature.Creature { return e.opponent }
func (e *Engine) Turn() int                    { return e.turn }
func (e *Engine) IsPlayerTurn() bool           { return e.playerTurn }
func (e *Engine) Ended() bool                  { return e.ended }

// Result is set once the battle has ended.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}

// OpponentPending reports that the opponent owes a move.
func (e *Engine) OpponentPending() bool {
	return !e.ended && !e.playerTurn
}

func (e *Engine) PerformAction(req Request) (ActionResult, error) {
	if e.ended {
		return ActionResult{}, ErrBattleOver
	}
	if !e.playerTurn {
		return ActionResult{}, ErrOpponentTurn
	}

	out := ActionResult{Action: req.Action}
	switch req.Action {
	case ActionAttack:
		res := e.attack(e.player, e.opponent, req.MoveIndex)
		out.Attack = &res
		out.Success = true
	case ActionCapture:
		out.Success = e.capture()
	case ActionRun:
		out.Success = e.run()
	case ActionSwitch:
		if err := e.switchTo(req.Switch); err != nil {
			return ActionResult{}, err
		}
		out.Success = true
	default:
		return ActionResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}

	e.checkEnd()
	e.scheduleOpponent()
	return out, nil
}

// OpponentTurn resolves the opponent's move with a uniformly random move
// index. It reports false when no opponent move is owed.
func (e *Engine) OpponentTurn() (AttackResult, bool) {
	e.scheduled = false
	if !e.OpponentPending() {
		return AttackResult{}, false
	}
	idx := 0
	if n := len(e.opponent.Moves); n > 0 {
		idx = e.cfg.Rand.IntN(n)
	}
	res := e.attack(e.opponent, e.player, idx)
	if e.cfg.OnOpponentTurn != nil {
		e.cfg.OnOpponentTurn(res)
	}
	e.checkEnd()
	e.scheduleOpponent()
	return res, true
}

// Abandon ends the session without a result. OnEnd does not fire and any
// opponent turn already scheduled becomes a no-op.
func (e *Engine) Abandon() {
	e.ended = true
}

func (e *Engine) scheduleOpponent() {
	if e.cfg.Scheduler == nil || e.scheduled || !e.OpponentPending() {
		return
	}
	e.scheduled = true
	e.cfg.Scheduler.After(e.cfg.OpponentDelay, func() {
		e.OpponentTurn()
	})
}

func (e *Engine) attack(attacker, defender *creature.Creature, moveIndex int) AttackResult {
	move := pickMove(attacker, moveIndex)
	eff := e.cfg.Elements.Effectiveness(move.Type, defender.Type)
	dmg := Damage(attacker.Stats.Attack, defender.Stats.Defense, move.Power, eff, RandomFactor(e.cfg.Rand.Float64()))
	defeated := defender.TakeDamage(dmg)

	e.addLog(fmt.Sprintf("%s used %s!", attacker.Name, move.Name))
	if eff > 1 {
		e.addLog("It's super effective!")
	} else if eff < 1 {
		e.addLog("It's not very effective...")
	}
	e.addLog(fmt.Sprintf("%s took %d damage!", defender.Name, dmg))
	if defeated {
		e.addLog(fmt.Sprintf("%s fainted!", defender.Name))
	}

	e.playerTurn = !e.playerTurn
	e.turn++
	return AttackResult{
		Attacker:      attacker.Name,
		Defender:      defender.Name,
		Move:          move.Name,
		Damage:        dmg,
		WasDefeated:   defeated,
		Effectiveness: eff,
	}
}

// pickMove falls back to the first move for out of range indexes.
func pickMove(c *creature.Creature, idx int) creature.Move {
	if len(c.Moves) == 0 {
		return creature.Move{Name: "Struggle", Type: creature.Normal, Power: 10, Accuracy: 100}
	}
	if idx < 0 || idx >= len(c.Moves) {
		idx = 0
	}
	return c.Moves[idx]
}

func (e *Engine) capture() bool {
	opp := e.opponent
	if !opp.IsWild {
		e.addLog(fmt.Sprintf("%s can't be captured!", opp.Name))
		e.playerTurn = false
		return false
	}
	rate := CaptureRate(opp.HealthPercentage(), opp.Rarity)
	if e.cfg.Rand.Float64() < rate {
		e.addLog(fmt.Sprintf("%s was captured!", opp.Name))
		e.end(OutcomeCaptured, opp, 0)
		return true
	}
	e.addLog(fmt.Sprintf("%s broke free!", opp.Name))
	e.playerTurn = false
	return false
}

func (e *Engine) run() bool {
	chance := RunChance(e.player.Stats.Speed, e.opponent.Stats.Speed)
	if e.cfg.Rand.Float64() < chance {
		e.addLog("Got away safely!")
		e.end(OutcomeRan, nil, 0)
		return true
	}
	e.addLog("Couldn't get away!")
	e.playerTurn = false
	return false
}

func (e *Engine) switchTo(next *creature.Creature) error {
	if next == nil || next.ID == e.player.ID {
		return fmt.Errorf("%w: choose a different creature", ErrInvalidSwitch)
	}
	if next.IsDefeated() {
		return fmt.Errorf("%w: %s has fainted", ErrInvalidSwitch, next.Name)
	}
	e.addLog(fmt.Sprintf("Come back %s! Go %s!", e.player.Name, next.Name))
	e.player = next
	e.playerTurn = false
	return nil
}

func (e *Engine) checkEnd() {
	if e.ended {
		return
	}
	if e.player.IsDefeated() {
		e.end(OutcomeLost, nil, 0)
		return
	}
	if !e.opponent.IsDefeated() {
		return
	}
	exp := ExperienceGain(e.opponent.Level, e.opponent.Rarity)
	leveled := e.player.GainExperience(exp)
	e.addLog(fmt.Sprintf("%s gained %d experience!", e.player.Name, exp))
	if leveled {
		e.addLog(fmt.Sprintf("%s grew to level %d!", e.player.Name, e.player.Level))
		if e.player.CanEvolve() {
			e.addLog(fmt.Sprintf("%s can evolve!", e.player.Name))
		}
	}
	e.end(OutcomeWon, nil, exp)
}

func (e *Engine) end(outcome Outcome, captured *creature.Creature, exp int) {
	if e.ended {
		return
	}
	e.ended = true
	res := Result{
		Outcome:          outcome,
		Captured:         captured,
		ExperienceGained: exp,
		Turns:            e.turn,
		Log:              e.Messages(),
	}
	e.result = &res
	if e.cfg.OnEnd != nil {
		e.cfg.OnEnd(res)
	}
}

func (e *Engine) addLog(msg string) {
	e.log = append(e.log, LogEntry{Message: msg, At: e.cfg.Now()})
	if over := len(e.log) - MaxLogEntries; over > 0 {
		e.log = append(e.log[:0:0], e.log[over:]...)
	}
}

func (e *Engine) Log() []LogEntry {
	return append([]LogEntry(nil), e.log...)
}

func (e *Engine) Messages() []string {
	out := make([]string, len(e.log))
	for i, entry := range e.log {
		out[i] = entry.Message
	}
	return out
}

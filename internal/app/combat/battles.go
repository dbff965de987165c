package combat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/internal/domain/battle"
	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/world"
	"wildbound/pkg/logger"
)

const DefaultPersistTimeout = 5 * time.Second

var (
	ErrInvalidRequest   = errors.New("invalid combat request")
	ErrNoBattle         = errors.New("no battle in progress")
	ErrBattleInProgress = errors.New("battle already in progress")
	ErrNoUsableCreature = errors.New("no creature in the team can fight")
)

// Battles starts battle sessions and books their results. It must be used
// from the event loop that owns the session manager.
type Battles struct {
	Sessions       *session.Manager
	Scheduler      battle.Scheduler
	Records        ports.BattleRecordRepository
	Metrics        ports.GameMetrics
	Publisher      ports.BattleEventPublisher
	Elements       creature.ElementTable
	Rand           world.Rand
	OpponentDelay  time.Duration
	PersistTimeout time.Duration
}

// Start sends the first usable team member against opponent. bossID is only
// meaningful when isBoss is set.
func (b Battles) Start(g *session.Game, opponent *creature.Creature, bossID int, isBoss bool) (*session.ActiveBattle, error) {
	if g.Battle != nil {
		return nil, ErrBattleInProgress
	}
	lead := g.State.Player.Collection.ActiveCreature()
	if lead == nil {
		return nil, ErrNoUsableCreature
	}

	ab := &session.ActiveBattle{
		ID:        uuid.NewString(),
		BossID:    bossID,
		IsBoss:    isBoss,
		StartedAt: b.Sessions.Now(),
	}
	engine, err := battle.Start(lead, opponent, battle.Config{
		Elements:      b.Elements,
		Rand:          b.Rand,
		Now:           b.Sessions.Now,
		Scheduler:     b.Scheduler,
		OpponentDelay: b.OpponentDelay,
		OnEnd: func(res battle.Result) {
			b.finish(g, ab, res)
		},
		OnOpponentTurn: func(battle.AttackResult) {
			b.publish(g.Slot, ports.BattleOpponentTurn, ab.Engine, nil)
		},
	})
	if err != nil {
		return nil, err
	}
	ab.Engine = engine
	g.Battle = ab

	if b.Metrics != nil && !isBoss {
		b.Metrics.RecordEncounter()
	}
	b.publish(g.Slot, ports.BattleStarted, engine, nil)
	logger.L().WithFields(logrus.Fields{
		"component": "battle",
		"slot":      g.Slot,
		"battle_id": ab.ID,
		"player":    lead.Name,
		"opponent":  opponent.Name,
		"level":     opponent.Level,
		"boss":      isBoss,
	}).Debug("Battle started")
	return ab, nil
}

// finish runs from inside the engine, either on a player action or on a
// timer-driven opponent turn, so it persists with its own deadline.
func (b Battles) finish(g *session.Game, ab *session.ActiveBattle, res battle.Result) {
	p := g.State.Player
	p.ApplyBattleResult(res)
	if ab.IsBoss && res.Outcome == battle.OutcomeWon {
		p.DefeatBoss(ab.BossID)
	}
	if g.Battle == ab {
		g.Battle = nil
	}

	rec := b.record(g.Slot, ab, res)
	timeout := b.PersistTimeout
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := b.Sessions.Persist(ctx, g, func(txCtx context.Context) error {
		if b.Records == nil {
			return nil
		}
		return b.Records.Append(txCtx, rec)
	})
	fields := logrus.Fields{
		"component":  "battle",
		"slot":       g.Slot,
		"battle_id":  ab.ID,
		"outcome":    res.Outcome,
		"turns":      res.Turns,
		"experience": res.ExperienceGained,
	}
	if err != nil {
		if b.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				b.Metrics.RecordConflict()
			} else {
				b.Metrics.RecordFailure()
			}
		}
		logger.L().WithFields(fields).WithError(err).Error("Failed to persist battle result")
	}
	if b.Metrics != nil {
		b.Metrics.RecordBattle(res.Outcome)
	}
	b.publish(g.Slot, ports.BattleEnded, ab.Engine, &res)
	logger.L().WithFields(fields).Info("Battle ended")
}

func (b Battles) record(slot string, ab *session.ActiveBattle, res battle.Result) ports.BattleRecord {
	rec := ports.BattleRecord{
		ID:               ab.ID,
		Slot:             slot,
		Outcome:          string(res.Outcome),
		ExperienceGained: res.ExperienceGained,
		Turns:            res.Turns,
		Log:              append([]string(nil), res.Log...),
		StartedAt:        ab.StartedAt,
		EndedAt:          b.Sessions.Now(),
	}
	if ab.IsBoss {
		rec.IsBoss = true
		rec.BossID = ab.BossID
	}
	if ab.Engine != nil {
		rec.PlayerCreature = ab.Engine.Player().Name
		rec.Opponent = ab.Engine.Opponent().Name
		rec.OpponentLevel = ab.Engine.Opponent().Level
	}
	return rec
}

func (b Battles) publish(slot string, kind ports.BattleEventKind, engine *battle.Engine, res *battle.Result) {
	if b.Publisher == nil || engine == nil {
		return
	}
	b.Publisher.Publish(ports.BattleEvent{
		Slot:     slot,
		Kind:     kind,
		Snapshot: engine.Snapshot(),
		Result:   res,
		At:       b.Sessions.Now(),
	})
}

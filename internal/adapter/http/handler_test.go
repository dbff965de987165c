package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"wildbound/internal/adapter/repo/memory"
	"wildbound/internal/app/catalog"
	"wildbound/internal/app/combat"
	"wildbound/internal/app/explore"
	"wildbound/internal/app/history"
	"wildbound/internal/app/newgame"
	"wildbound/internal/app/ports"
	"wildbound/internal/app/roster"
	"wildbound/internal/app/session"
	"wildbound/internal/app/status"
	"wildbound/internal/domain/battle"
	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"
)

func newTestHandler() Handler {
	store := memory.NewStore()
	sessions := session.NewManager(session.Config{
		Saves:   memory.NewSaveRepo(store),
		Tx:      memory.NewTxManager(store),
		Factory: creature.DefaultFactory(),
		Now:     func() time.Time { return time.Unix(1700000000, 0) },
	})
	battles := combat.Battles{Sessions: sessions, Records: memory.NewBattleRecordRepo(store)}
	return Handler{
		NewGameUC:     newgame.UseCase{Sessions: sessions, Seed: func() float64 { return 0.5 }},
		ListSlotsUC:   newgame.ListUseCase{Saves: memory.NewSaveRepo(store)},
		DeleteSlotUC:  newgame.DeleteUseCase{Sessions: sessions},
		MoveUC:        explore.MoveUseCase{Battles: battles},
		InteractUC:    explore.InteractUseCase{Battles: battles},
		StatusUC:      status.UseCase{Sessions: sessions},
		BattleStateUC: combat.StateUseCase{Sessions: sessions},
		BattleUC:      combat.UseCase{Battles: battles},
		BossUC:        combat.BossUseCase{Battles: battles},
		RosterUC:      roster.UseCase{Sessions: sessions},
		HistoryUC:     history.UseCase{Records: memory.NewBattleRecordRepo(store)},
		CatalogUC:     catalog.UseCase{Factory: creature.DefaultFactory()},
	}
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	code, _ := body["error"]["code"].(string)
	return code
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: north", explore.ErrInvalidRequest), consts.StatusBadRequest, "bad_request"},
		{&creature.UnknownTemplateError{ID: "flamewyrn", Suggestion: "flamewyrm"}, consts.StatusBadRequest, "unknown_template"},
		{battle.ErrInvalidSwitch, consts.StatusBadRequest, "invalid_switch"},
		{session.ErrSlotExists, consts.StatusConflict, "slot_exists"},
		{combat.ErrNoBattle, consts.StatusConflict, "no_battle"},
		{combat.ErrBattleInProgress, consts.StatusConflict, "battle_in_progress"},
		{battle.ErrOpponentTurn, consts.StatusConflict, "opponent_turn"},
		{combat.ErrFinalBossLock, consts.StatusForbidden, "final_boss_locked"},
		{roster.ErrUnknownCreature, consts.StatusNotFound, "unknown_creature"},
		{world.ErrWorldMismatch, consts.StatusConflict, "world_mismatch"},
		{fmt.Errorf("load: %w", ports.ErrNotFound), consts.StatusNotFound, "not_found"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		if got := ctx.Response.StatusCode(); got != tc.status {
			t.Fatalf("%v: status mismatch: got=%d want=%d", tc.err, got, tc.status)
		}
		if got := errorCode(t, ctx); got != tc.code {
			t.Fatalf("%v: error code mismatch: got=%q want=%q", tc.err, got, tc.code)
		}
	}
}

func TestNewGameThenStatus(t *testing.T) {
	h := newTestHandler()

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"slot":"alpha","name":"Ash","width":24,"height":24}`))
	h.newGame(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusCreated; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var created map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &created); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := created["seed"], 0.5; got != want {
		t.Fatalf("seed mismatch: got=%v want=%v", got, want)
	}

	ctx = &app.RequestContext{}
	ctx.Request.Header.Set(slotHeader, "alpha")
	h.status(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["name"], "Ash"; got != want {
		t.Fatalf("name mismatch: got=%v want=%v", got, want)
	}

	ctx = &app.RequestContext{}
	h.newGame(context.Background(), withBody(ctx, `{"slot":"alpha"}`))
	if got := errorCode(t, ctx); got != "slot_exists" {
		t.Fatalf("expected slot_exists, got %q", got)
	}
}

func TestMove_InvalidJSON(t *testing.T) {
	h := newTestHandler()
	ctx := withBody(&app.RequestContext{}, `{"direction":`)
	h.move(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got := errorCode(t, ctx); got != "invalid_json" {
		t.Fatalf("expected invalid_json, got %q", got)
	}
}

func TestBattleAction_WithoutBattle(t *testing.T) {
	h := newTestHandler()
	h.newGame(context.Background(), withBody(&app.RequestContext{}, `{"width":24,"height":24}`))

	ctx := withBody(&app.RequestContext{}, `{"action":"attack"}`)
	h.battleAction(context.Background(), ctx)
	if got := errorCode(t, ctx); got != "no_battle" {
		t.Fatalf("expected no_battle, got %q", got)
	}
}

func TestStatus_UnknownSlot(t *testing.T) {
	h := newTestHandler()
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/game/status?slot=nobody")
	h.status(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestCatalog_CreatureLookup(t *testing.T) {
	h := newTestHandler()

	ctx := &app.RequestContext{}
	ctx.Params = append(ctx.Params, param.Param{Key: "id", Value: "aquafin"})
	h.catalogCreature(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	ctx = &app.RequestContext{}
	ctx.Params = append(ctx.Params, param.Param{Key: "id", Value: "aquafim"})
	h.catalogCreature(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got := errorCode(t, ctx); got != "unknown_template" {
		t.Fatalf("expected unknown_template, got %q", got)
	}
}

func TestCatalog_CreaturesByElement(t *testing.T) {
	h := newTestHandler()
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/catalog/creatures?element=water")
	h.catalogCreatures(context.Background(), ctx)
	var body catalog.CreaturesResponse
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Creatures) == 0 {
		t.Fatalf("expected water species")
	}
	for _, c := range body.Creatures {
		if c.Type != creature.Water {
			t.Fatalf("unexpected species %s of type %s", c.ID, c.Type)
		}
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/catalog/creatures?element=plasma")
	h.catalogCreatures(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.kpi(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestKPI_Snapshot(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{KPI: fakeKPI{}}.kpi(context.Background(), ctx)
	if got, want := string(ctx.Response.Body()), `{"battle_total":2}`; got != want {
		t.Fatalf("body mismatch: got=%q want=%q", got, want)
	}
}

func withBody(ctx *app.RequestContext, body string) *app.RequestContext {
	ctx.Request.SetBody([]byte(body))
	return ctx
}

type fakeKPI struct{}

func (fakeKPI) SnapshotAny() any { return map[string]int{"battle_total": 2} }

var _ kpiSnapshotProvider = fakeKPI{}

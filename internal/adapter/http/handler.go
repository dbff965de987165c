package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"wildbound/internal/app/catalog"
	"wildbound/internal/app/combat"
	"wildbound/internal/app/explore"
	"wildbound/internal/app/history"
	"wildbound/internal/app/loop"
	"wildbound/internal/app/newgame"
	"wildbound/internal/app/ports"
	"wildbound/internal/app/roster"
	"wildbound/internal/app/session"
	"wildbound/internal/app/status"
	"wildbound/internal/app/worldview"
	"wildbound/internal/domain/battle"
	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/game"
	"wildbound/internal/domain/player"
	"wildbound/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const slotHeader = "X-Save-Slot"

type Handler struct {
	NewGameUC     newgame.UseCase
	ListSlotsUC   newgame.ListUseCase
	DeleteSlotUC  newgame.DeleteUseCase
	MoveUC        explore.MoveUseCase
	InteractUC    explore.InteractUseCase
	StatusUC      status.UseCase
	WorldUC       worldview.UseCase
	BattleStateUC combat.StateUseCase
	BattleUC      combat.UseCase
	BossUC        combat.BossUseCase
	RosterUC      roster.UseCase
	HistoryUC     history.UseCase
	CatalogUC     catalog.UseCase
	KPI           kpiSnapshotProvider
	// AllowOrigins limits CORS; empty allows any origin.
	AllowOrigins []string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigins))

	games := s.Group("/api/games")
	games.GET("", h.listSlots)
	games.POST("", h.newGame)
	games.DELETE("/:slot", h.deleteSlot)

	g := s.Group("/api/game")
	g.POST("/move", h.move)
	g.POST("/interact", h.interact)
	g.GET("/status", h.status)
	g.GET("/world", h.world)
	g.POST("/roster", h.roster)
	g.GET("/history", h.history)
	g.GET("/battle", h.battleState)
	g.POST("/battle/action", h.battleAction)
	g.POST("/battle/boss", h.challengeBoss)

	cat := s.Group("/api/catalog")
	cat.GET("/creatures", h.catalogCreatures)
	cat.GET("/creatures/:id", h.catalogCreature)
	cat.GET("/elements", h.catalogElements)
	cat.GET("/bosses", h.catalogBosses)

	s.GET("/ops/kpi", h.kpi)
}

type newGameRequest struct {
	Slot      string   `json:"slot"`
	Name      string   `json:"name"`
	Starter   string   `json:"starter"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Seed      *float64 `json:"seed,omitempty"`
	Noise     string   `json:"noise"`
	Overwrite bool     `json:"overwrite"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}

type battleActionRequest struct {
	Action    string `json:"action"`
	MoveIndex int    `json:"move_index"`
	SwitchTo  string `json:"switch_to,omitempty"`
}

type bossRequest struct {
	BossID int `json:"boss_id"`
}

type rosterRequest struct {
	Op         string `json:"op"`
	CreatureID string `json:"creature_id"`
}

func (h Handler) newGame(c context.Context, ctx *app.RequestContext) {
	var body newGameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.Slot == "" {
		body.Slot = slotOf(ctx)
	}
	resp, err := h.NewGameUC.Execute(c, newgame.Request{
		Slot:      body.Slot,
		Name:      body.Name,
		Starter:   body.Starter,
		Width:     body.Width,
		Height:    body.Height,
		Seed:      body.Seed,
		Noise:     body.Noise,
		Overwrite: body.Overwrite,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) listSlots(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ListSlotsUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) deleteSlot(c context.Context, ctx *app.RequestContext) {
	if err := h.DeleteSlotUC.Execute(c, newgame.DeleteRequest{Slot: ctx.Param("slot")}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (h Handler) move(c context.Context, ctx *app.RequestContext) {
	var body moveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.MoveUC.Execute(c, explore.MoveRequest{Slot: slotOf(ctx), Direction: body.Direction})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) interact(c context.Context, ctx *app.RequestContext) {
	resp, err := h.InteractUC.Execute(c, explore.InteractRequest{Slot: slotOf(ctx)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{Slot: slotOf(ctx)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) world(c context.Context, ctx *app.RequestContext) {
	radius, _ := strconv.Atoi(string(ctx.Query("radius")))
	resp, err := h.WorldUC.Execute(c, worldview.Request{Slot: slotOf(ctx), Radius: radius})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) roster(c context.Context, ctx *app.RequestContext) {
	var body rosterRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RosterUC.Execute(c, roster.Request{Slot: slotOf(ctx), Op: roster.Op(body.Op), CreatureID: body.CreatureID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	endedFrom, _ := strconv.ParseInt(string(ctx.Query("ended_from")), 10, 64)
	endedTo, _ := strconv.ParseInt(string(ctx.Query("ended_to")), 10, 64)
	resp, err := h.HistoryUC.Execute(c, history.Request{
		Slot:      slotOf(ctx),
		Limit:     limit,
		EndedFrom: endedFrom,
		EndedTo:   endedTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) battleState(c context.Context, ctx *app.RequestContext) {
	resp, err := h.BattleStateUC.Execute(c, combat.StateRequest{Slot: slotOf(ctx)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) battleAction(c context.Context, ctx *app.RequestContext) {
	var body battleActionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.BattleUC.Execute(c, combat.ActionRequest{
		Slot:      slotOf(ctx),
		Action:    body.Action,
		MoveIndex: body.MoveIndex,
		SwitchTo:  body.SwitchTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) challengeBoss(c context.Context, ctx *app.RequestContext) {
	var body bossRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.BossUC.Execute(c, combat.BossRequest{Slot: slotOf(ctx), BossID: body.BossID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalogCreatures(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CatalogUC.Creatures(c, catalog.CreaturesRequest{
		Element: string(ctx.Query("element")),
		Biome:   string(ctx.Query("biome")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalogCreature(c context.Context, ctx *app.RequestContext) {
	t, err := h.CatalogUC.Creature(c, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, creature.ErrUnknownTemplate) {
			writeErrorBody(ctx, consts.StatusNotFound, "unknown_template", err.Error())
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, t)
}

func (h Handler) catalogElements(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.CatalogUC.Elements(c))
}

func (h Handler) catalogBosses(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.CatalogUC.Bosses(c))
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

// slotOf reads the save slot from the header, then the query string. An
// empty slot selects the default one.
func slotOf(ctx *app.RequestContext) string {
	if slot := strings.TrimSpace(string(ctx.GetHeader(slotHeader))); slot != "" {
		return slot
	}
	return strings.TrimSpace(string(ctx.Query("slot")))
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	var unknown *creature.UnknownTemplateError
	switch {
	case errors.As(err, &unknown):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_template", err.Error())
	case errors.Is(err, newgame.ErrInvalidRequest),
		errors.Is(err, explore.ErrInvalidRequest),
		errors.Is(err, combat.ErrInvalidRequest),
		errors.Is(err, roster.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, catalog.ErrUnknownElement),
		errors.Is(err, session.ErrInvalidSlot),
		errors.Is(err, player.ErrUnknownDirection),
		errors.Is(err, battle.ErrUnknownAction):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, battle.ErrInvalidSwitch):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_switch", err.Error())
	case errors.Is(err, session.ErrSlotExists):
		writeErrorBody(ctx, consts.StatusConflict, "slot_exists", err.Error())
	case errors.Is(err, combat.ErrNoBattle):
		writeErrorBody(ctx, consts.StatusConflict, "no_battle", err.Error())
	case errors.Is(err, combat.ErrBattleInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "battle_in_progress", err.Error())
	case errors.Is(err, combat.ErrNoUsableCreature):
		writeErrorBody(ctx, consts.StatusConflict, "no_usable_creature", err.Error())
	case errors.Is(err, battle.ErrOpponentTurn):
		writeErrorBody(ctx, consts.StatusConflict, "opponent_turn", err.Error())
	case errors.Is(err, battle.ErrBattleOver):
		writeErrorBody(ctx, consts.StatusConflict, "battle_over", err.Error())
	case errors.Is(err, combat.ErrUnknownBoss):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_boss", err.Error())
	case errors.Is(err, combat.ErrBossDefeated):
		writeErrorBody(ctx, consts.StatusConflict, "boss_defeated", err.Error())
	case errors.Is(err, combat.ErrFinalBossLock):
		writeErrorBody(ctx, consts.StatusForbidden, "final_boss_locked", err.Error())
	case errors.Is(err, roster.ErrUnknownCreature):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_creature", err.Error())
	case errors.Is(err, roster.ErrTeamFull):
		writeErrorBody(ctx, consts.StatusConflict, "team_full", err.Error())
	case errors.Is(err, roster.ErrLastTeamMember):
		writeErrorBody(ctx, consts.StatusConflict, "last_team_member", err.Error())
	case errors.Is(err, roster.ErrCannotEvolve):
		writeErrorBody(ctx, consts.StatusConflict, "cannot_evolve", err.Error())
	case errors.Is(err, roster.ErrNoHealer):
		writeErrorBody(ctx, consts.StatusConflict, "no_healer", err.Error())
	case errors.Is(err, world.ErrWorldMismatch):
		writeErrorBody(ctx, consts.StatusConflict, "world_mismatch", err.Error())
	case errors.Is(err, game.ErrUnsupportedVersion),
		errors.Is(err, game.ErrCorruptSave):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "corrupt_save", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, loop.ErrStopped),
		errors.Is(err, context.DeadlineExceeded):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "unavailable", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

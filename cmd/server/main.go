package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/sirupsen/logrus"

	migrations "wildbound/db"
	httpadapter "wildbound/internal/adapter/http"
	metricsinmem "wildbound/internal/adapter/metrics/inmemory"
	boltrepo "wildbound/internal/adapter/repo/bolt"
	gormrepo "wildbound/internal/adapter/repo/gorm"
	"wildbound/internal/adapter/repo/memory"
	"wildbound/internal/adapter/world/viewport"
	"wildbound/internal/adapter/ws"
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
	"wildbound/internal/domain/world"
	"wildbound/pkg/logger"
)

func main() {
	logger.Init()
	log := logger.L().WithField("component", "server")

	repos, err := buildRepos(context.Background())
	if err != nil {
		log.WithError(err).Fatal("Failed to build repositories")
	}
	defer repos.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventLoop := loop.New(intEnv("EVENT_LOOP_QUEUE", loop.DefaultQueueSize))
	go eventLoop.Run(ctx)
	defer eventLoop.Stop()

	allowOrigins := listEnv("CORS_ALLOW_ORIGINS")
	hub := ws.NewHub(allowOrigins)
	kpiRecorder := metricsinmem.NewRecorder()
	factory := creature.DefaultFactory()
	sessions := session.NewManager(session.Config{
		Saves:   repos.Saves,
		Tx:      repos.Tx,
		Factory: factory,
	})
	battles := combat.Battles{
		Sessions:      sessions,
		Scheduler:     eventLoop,
		Records:       repos.Records,
		Metrics:       kpiRecorder,
		Publisher:     hub,
		Elements:      creature.DefaultElementTable(),
		OpponentDelay: durationMSEnv("BATTLE_AI_DELAY_MS", battle.DefaultOpponentDelay),
	}
	views := viewport.NewProvider(viewport.Config{
		ViewRadius: intEnv("VIEW_RADIUS", viewport.DefaultViewRadius),
		Chunks:     repos.Chunks,
	})

	h := httpadapter.Handler{
		NewGameUC: newgame.UseCase{
			Loop:     eventLoop,
			Sessions: sessions,
			Defaults: worldDefaultsFromEnv(),
		},
		ListSlotsUC:   newgame.ListUseCase{Saves: repos.Saves},
		DeleteSlotUC:  newgame.DeleteUseCase{Loop: eventLoop, Sessions: sessions},
		MoveUC:        explore.MoveUseCase{Loop: eventLoop, Battles: battles},
		InteractUC:    explore.InteractUseCase{Loop: eventLoop, Battles: battles},
		StatusUC:      status.UseCase{Loop: eventLoop, Sessions: sessions},
		WorldUC:       worldview.UseCase{Loop: eventLoop, Sessions: sessions, World: views},
		BattleStateUC: combat.StateUseCase{Loop: eventLoop, Sessions: sessions},
		BattleUC:      combat.UseCase{Loop: eventLoop, Battles: battles},
		BossUC:        combat.BossUseCase{Loop: eventLoop, Battles: battles},
		RosterUC:      roster.UseCase{Loop: eventLoop, Sessions: sessions},
		HistoryUC:     history.UseCase{Records: repos.Records},
		CatalogUC:     catalog.UseCase{Factory: factory},
		KPI:           kpiRecorder,
		AllowOrigins:  allowOrigins,
	}

	wsAddr := envOr("WS_ADDR", ":8081")
	wsServer := &http.Server{Addr: wsAddr, Handler: hub, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.WithField("addr", wsAddr).Info("Battle feed listening")
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Battle feed server stopped")
		}
	}()

	httpAddr := envOr("HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(httpAddr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		if err := wsServer.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Battle feed shutdown failed")
		}
	})

	log.WithFields(logrus.Fields{"addr": httpAddr, "backend": repos.Backend}).Info("wildbound server listening")
	s.Spin()
}

type repoSet struct {
	Backend string
	Saves   ports.SaveRepository
	Records ports.BattleRecordRepository
	Tx      ports.TxManager
	Chunks  ports.ChunkStore
	close   func() error
}

func (r repoSet) Close() {
	if r.close == nil {
		return
	}
	if err := r.close(); err != nil {
		logger.L().WithError(err).WithField("backend", r.Backend).Warn("Failed to close repositories")
	}
}

// buildRepos prefers postgres, then a bolt file, then process memory.
func buildRepos(ctx context.Context) (repoSet, error) {
	if dsn := strings.TrimSpace(os.Getenv("WILDBOUND_DB_DSN")); dsn != "" {
		db, err := gormrepo.OpenPostgres(dsn)
		if err != nil {
			return repoSet{}, err
		}
		fsys := migrations.Migrations()
		if dir := strings.TrimSpace(os.Getenv("WILDBOUND_MIGRATIONS_DIR")); dir != "" {
			fsys = os.DirFS(dir)
		}
		if _, err := gormrepo.ApplyMigrations(ctx, db, fsys); err != nil {
			return repoSet{}, err
		}
		return repoSet{
			Backend: "postgres",
			Saves:   gormrepo.NewSaveRepo(db),
			Records: gormrepo.NewBattleRecordRepo(db),
			Tx:      gormrepo.NewTxManager(db),
			Chunks:  gormrepo.NewWorldChunkRepo(db),
			close: func() error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	}
	if path := strings.TrimSpace(os.Getenv("WILDBOUND_BOLT_PATH")); path != "" {
		db, err := boltrepo.Open(path)
		if err != nil {
			return repoSet{}, err
		}
		return repoSet{
			Backend: "bolt",
			Saves:   boltrepo.NewSaveRepo(db),
			Records: boltrepo.NewBattleRecordRepo(db),
			Tx:      boltrepo.NewTxManager(db),
			Chunks:  boltrepo.NewChunkRepo(db),
			close:   db.Close,
		}, nil
	}
	store := memory.NewStore()
	return repoSet{
		Backend: "memory",
		Saves:   memory.NewSaveRepo(store),
		Records: memory.NewBattleRecordRepo(store),
		Tx:      memory.NewTxManager(store),
		Chunks:  memory.NewChunkRepo(store),
	}, nil
}

func worldDefaultsFromEnv() newgame.Defaults {
	d := newgame.Defaults{
		Width:  intEnv("WORLD_WIDTH", world.DefaultWidth),
		Height: intEnv("WORLD_HEIGHT", world.DefaultHeight),
	}
	if raw := strings.TrimSpace(os.Getenv("WORLD_NOISE")); raw != "" {
		kind, err := world.ParseNoiseKind(raw)
		if err != nil {
			logger.L().WithError(err).WithField("value", raw).Warn("Ignoring WORLD_NOISE")
		} else {
			d.Noise = kind
		}
	}
	return d
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func listEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func durationMSEnv(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return time.Duration(n) * time.Millisecond
}

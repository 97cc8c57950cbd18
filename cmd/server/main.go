package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	staticalmanac "farmverse/internal/adapter/almanac/static"
	staticcatalog "farmverse/internal/adapter/catalog/static"
	httpadapter "farmverse/internal/adapter/http"
	metricsinmem "farmverse/internal/adapter/metrics/inmemory"
	filestore "farmverse/internal/adapter/repo/file"
	gormrepo "farmverse/internal/adapter/repo/gorm"
	memrepo "farmverse/internal/adapter/repo/memory"
	worldruntime "farmverse/internal/adapter/world/runtime"
	"farmverse/internal/app/action"
	"farmverse/internal/app/almanac"
	"farmverse/internal/app/auth"
	"farmverse/internal/app/observe"
	"farmverse/internal/app/ports"
	"farmverse/internal/app/replay"
	"farmverse/internal/app/session"
	"farmverse/internal/app/status"
	"farmverse/internal/domain/farm"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	repos := mustBuildRepos(logger)

	agentID := envOr("FARMVERSE_AGENT_ID", "demo-farmer")
	agentKey := envOr("FARMVERSE_AGENT_KEY", "demo-key")
	seedUC := auth.SeedUseCase{Credentials: repos.credentials, Sessions: repos.sessions, TxManager: repos.tx}
	sessionID, err := seedUC.Execute(context.Background(), auth.SeedRequest{AgentID: agentID, AgentKey: agentKey})
	if err != nil {
		logger.Error("seed boot agent", "err", err)
		os.Exit(1)
	}

	layout, err := buildLayoutProviderFromEnv().GenerateLayout(context.Background())
	if err != nil {
		logger.Error("generate farm layout", "err", err)
		os.Exit(1)
	}

	dataDir := envOr("FARMVERSE_DATA_DIR", "./data")
	saves, err := filestore.NewStore(filepath.Join(dataDir, "saves"))
	if err != nil {
		logger.Error("open save store", "dir", dataDir, "err", err)
		os.Exit(1)
	}

	recorder := metricsinmem.NewRecorder()

	sess := session.New(session.Config{
		SessionID:  sessionID,
		AgentID:    agentID,
		Layout:     layout,
		Catalog:    resolveCatalog(logger),
		Saves:      saves,
		Journal:    repos.events,
		Sessions:   repos.sessions,
		Metrics:    recorder,
		DaySeconds: float64(intEnv("FARMVERSE_DAY_SECONDS", 600)),
	})
	if err := sess.LoadFrom(context.Background(), 0); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			logger.Info("no save on disk, starting a fresh farm", "slot", sess.CurrentSlot())
		} else {
			logger.Error("boot save unreadable, starting a fresh farm", "err", err)
		}
	} else {
		logger.Info("resumed farm from save", "slot", sess.CurrentSlot(), "day", sess.Day())
	}

	tick := time.Duration(intEnv("FARMVERSE_TICK_MS", 50)) * time.Millisecond
	runner := session.NewRunner(sess, tick, func(err error) {
		logger.Error("frame loop", "err", err)
	})

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{Credentials: repos.credentials, Sessions: repos.sessions, TxManager: repos.tx},
		AuthUC:     auth.VerifyUseCase{Credentials: repos.credentials},
		ObserveUC:  observe.UseCase{Runner: runner},
		ActionUC: action.UseCase{
			Runner:     runner,
			TxManager:  repos.tx,
			ActionRepo: repos.actions,
			Metrics:    recorder,
			Now:        time.Now,
		},
		StatusUC:  status.UseCase{Runner: runner, Saves: saves},
		ReplayUC:  replay.UseCase{Events: repos.events},
		AlmanacUC: almanac.UseCase{Provider: staticalmanac.Provider{Root: resolveAlmanacRoot()}},
		KPI:       recorder,
		Exporter:  filestore.Archiver{Store: saves, Now: time.Now},
	}

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	runner.Start(loopCtx)

	addr := envOr("FARMVERSE_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	logger.Info("farmverse server listening", "addr", addr, "agent", agentID, "session", sessionID)
	s.Spin()

	// Spin returns after graceful shutdown; park the loop and save once more.
	runner.Stop()
	runner.Do(func(sess *session.Session) {
		if _, err := sess.SaveTo(context.Background(), 0); err != nil {
			logger.Error("final save", "err", err)
		}
	})
	logger.Info("farmverse server stopped")
}

type repoSet struct {
	events      ports.EventRepository
	actions     ports.ActionExecutionRepository
	credentials ports.AgentCredentialRepository
	sessions    ports.SessionRepository
	tx          ports.TxManager
}

func mustBuildRepos(logger *slog.Logger) repoSet {
	dsn := strings.TrimSpace(os.Getenv("FARMVERSE_DB_DSN"))
	if dsn == "" {
		logger.Info("FARMVERSE_DB_DSN not set, journal and credentials are in-memory")
		store := memrepo.NewStore()
		return repoSet{
			events:      memrepo.NewEventRepo(store),
			actions:     memrepo.NewActionExecutionRepo(store),
			credentials: memrepo.NewAgentCredentialRepo(store),
			sessions:    memrepo.NewFarmSessionRepo(store),
			tx:          memrepo.NewTxManager(store),
		}
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		logger.Error("open postgres", "err", err)
		os.Exit(1)
	}
	migrations := envOr("FARMVERSE_MIGRATIONS_DIR", "./migrations")
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrations); err != nil {
		logger.Error("apply migrations", "dir", migrations, "err", err)
		os.Exit(1)
	}
	return repoSet{
		events:      gormrepo.NewEventRepo(db),
		actions:     gormrepo.NewActionExecutionRepo(db),
		credentials: gormrepo.NewAgentCredentialRepo(db),
		sessions:    gormrepo.NewFarmSessionRepo(db),
		tx:          gormrepo.NewTxManager(db),
	}
}

func buildLayoutProviderFromEnv() ports.LayoutProvider {
	cfg := worldruntime.DefaultConfig()
	cfg.Width = intEnv("FARMVERSE_FARM_WIDTH", cfg.Width)
	cfg.Height = intEnv("FARMVERSE_FARM_HEIGHT", cfg.Height)
	cfg.Seed = int64(intEnv("FARMVERSE_SEED", int(cfg.Seed)))
	return worldruntime.NewProvider(cfg)
}

func resolveCatalog(logger *slog.Logger) farm.Catalog {
	path := strings.TrimSpace(os.Getenv("FARMVERSE_CATALOG_PATH"))
	if path == "" {
		path = "./configs/farmdata.yaml"
	}
	catalog, err := staticcatalog.Load(path)
	if err != nil {
		logger.Warn("catalog file unavailable, using built-in defaults", "path", path, "err", err)
		return staticcatalog.Default()
	}
	return catalog
}

func resolveAlmanacRoot() string {
	if root := strings.TrimSpace(os.Getenv("FARMVERSE_ALMANAC_DIR")); root != "" {
		return root
	}
	return "./almanac"
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
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

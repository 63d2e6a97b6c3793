// Command scheduler-demo wires the scheduling core end-to-end and prints a
// generated schedule set. By default it reads from the committed in-memory
// fixture catalog; -live switches to the Postgres/Redis-backed production
// path.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/oshawa-scheduler/core/internal/cachestore"
	"github.com/oshawa-scheduler/core/internal/dto"
	"github.com/oshawa-scheduler/core/internal/orchestrator"
	"github.com/oshawa-scheduler/core/internal/solver"
	"github.com/oshawa-scheduler/core/internal/store"
	"github.com/oshawa-scheduler/core/internal/store/memory"
	"github.com/oshawa-scheduler/core/internal/store/postgres"
	"github.com/oshawa-scheduler/core/pkg/cache"
	"github.com/oshawa-scheduler/core/pkg/config"
	"github.com/oshawa-scheduler/core/pkg/database"
	"github.com/oshawa-scheduler/core/pkg/export"
	"github.com/oshawa-scheduler/core/pkg/logger"
)

func main() {
	term := flag.String("term", "202309", "term to generate schedules for")
	courses := flag.String("courses", "BIOL1000U,CRMN1000U", "comma-separated course codes")
	solverKind := flag.String("solver", "cp", "solver kind: cp or random")
	numSchedules := flag.Int("num-schedules", 3, "number of schedules to return")
	csvOut := flag.String("csv", "", "optional path to also write a CSV rendering")
	live := flag.Bool("live", false, "read sections from Postgres/Redis (pkg/database, pkg/cache) instead of the in-memory fixture catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	sectionStore, closeStore, err := buildSectionStore(cfg, logr, *live)
	if err != nil {
		logr.Fatal("failed to build section store", zap.Error(err))
	}
	defer closeStore()

	orch := orchestrator.New(sectionStore, orchestrator.Defaults{
		NumSchedules:   cfg.Scheduler.DefaultNumSchedules,
		Solver:         solver.Kind(cfg.Scheduler.DefaultSolver),
		TimeLimit:      cfg.Scheduler.DefaultTimeLimit,
		MaxCourseCodes: cfg.Scheduler.MaxCourseCodes,
	}, nil, logr)

	courseCodes := strings.Split(*courses, ",")
	req := dto.GenerateScheduleRequest{
		Term:         *term,
		CourseCodes:  courseCodes,
		NumSchedules: *numSchedules,
		Solver:       *solverKind,
	}

	resp, err := orch.Generate(context.Background(), req)
	if err != nil {
		logr.Fatal("schedule generation failed", zap.Error(err))
	}

	encoded, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		logr.Fatal("failed to encode response", zap.Error(err))
	}
	fmt.Println(string(encoded))

	if *csvOut != "" {
		data := export.ScheduleDataset(courseCodes, resp.Schedules)
		csvBytes, err := export.NewCSVExporter().Render(data)
		if err != nil {
			logr.Fatal("failed to render csv", zap.Error(err))
		}
		if err := os.WriteFile(*csvOut, csvBytes, 0o644); err != nil {
			logr.Fatal("failed to write csv", zap.Error(err))
		}
	}
}

// buildSectionStore wires the production catalog path when live is set:
// postgres.Store reads sections from the catalog tables, wrapped in a
// cachestore.Store so LinkedCRNs/EnrollmentInfo go through Redis per the
// TTLs in cfg.Cache. With live unset it falls back to the committed
// in-memory fixture catalog used throughout the test suite.
func buildSectionStore(cfg *config.Config, logr *zap.Logger, live bool) (store.SectionStore, func(), error) {
	if !live {
		return memory.New(memory.Catalog202309()), func() {}, nil
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	pgStore := postgres.New(db)
	repo := cachestore.NewRedisRepository(redisClient, logr)
	cached := cachestore.New(pgStore, repo, cachestore.Config{
		LinkedCRNsTTL:     cfg.Cache.LinkedCRNsTTL,
		EnrollmentInfoTTL: cfg.Cache.EnrollmentInfoTTL,
	}, logr)

	closeFn := func() {
		if err := redisClient.Close(); err != nil {
			logr.Warn("failed to close redis client", zap.Error(err))
		}
		if err := db.Close(); err != nil {
			logr.Warn("failed to close postgres pool", zap.Error(err))
		}
	}
	return cached, closeFn, nil
}

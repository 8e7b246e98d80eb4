package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuxprep/trainer/internal/cli"
	"github.com/tuxprep/trainer/internal/content"
	"github.com/tuxprep/trainer/internal/domain/question"
	"github.com/tuxprep/trainer/internal/infrastructure/config"
	"github.com/tuxprep/trainer/internal/selector"
	"github.com/tuxprep/trainer/internal/service"
	"github.com/tuxprep/trainer/internal/store"
)

func main() {
	cfg := config.Load()
	// stdout belongs to the quiz UI; logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// ── Question bank ───────────────────────────────────────────────
	records := content.Builtin()
	if cfg.PackDir != "" {
		extra, err := content.LoadDir(cfg.PackDir)
		if err != nil {
			logger.Error("failed to load question packs", "dir", cfg.PackDir, "error", err)
			os.Exit(1)
		}
		records = append(records, extra...)
	}

	bank, err := question.NewBank(records)
	if err != nil {
		logger.Error("invalid question bank", "error", err)
		os.Exit(1)
	}

	// ── History ─────────────────────────────────────────────────────
	repo, err := openRepository(cfg, logger)
	if err != nil {
		logger.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	hist, err := repo.Load()
	if err != nil {
		logger.Error("failed to load history", "error", err)
		os.Exit(1)
	}
	hist.SeedCategories(bank.Categories())

	// ── Core components ─────────────────────────────────────────────
	policy := selector.PolicyEnd
	if cfg.ExhaustPolicy == "reset" {
		policy = selector.PolicyReset
	}
	sel := selector.NewWithConfig(bank, selector.DefaultWeights(), policy, nil)
	svc := service.NewSessionService(bank, hist, repo, sel, logger)
	app := cli.New(bank, hist, repo, svc, logger, os.Stdin, os.Stdout)

	// Best-effort save on interrupt; not transactional.
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		if err := repo.Save(hist); err != nil {
			logger.Error("failed to save history on interrupt", "error", err)
		}
		repo.Close()
		os.Exit(0)
	}()

	if err := app.Run(); err != nil {
		logger.Error("session loop failed", "error", err)
	}

	if err := repo.Save(hist); err != nil {
		logger.Error("failed to save history on exit", "error", err)
	}
}

func openRepository(cfg *config.Config, logger *slog.Logger) (store.Repository, error) {
	if cfg.Backend == "sqlite" {
		return store.NewSQLite(cfg.SQLitePath, logger)
	}
	return store.NewJSONFile(cfg.HistoryPath, logger), nil
}

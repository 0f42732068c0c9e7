package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/fetch"
	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/llm"
	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/research"
	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jobpilot",
		Short: "Job search assistant",
		Long: `jobpilot keeps your CVs and job applications, and uses Gemini to optimize CVs,
write cover letters, find leads, restyle CV layouts and retouch profile photos.

Settings come from jobpilot.yaml, JOBPILOT_* environment variables and flags.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "Path to jobpilot.yaml (optional)")
	root.PersistentFlags().String("backend", "sqlite", "Storage backend: memory, sqlite, redis or postgres")
	root.PersistentFlags().String("db", "jobpilot.db", "SQLite database file")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().String("log-format", "console", "Log format: console or json")

	root.AddCommand(
		newServeCmd(),
		newCVCmd(),
		newAppsCmd(),
		newToolCmd(screens.ToolOptimize, "optimize", "Optimize a CV for a job description"),
		newToolCmd(screens.ToolCoverLetter, "cover-letter", "Write a cover letter for a job description"),
		newLeadsCmd(),
		newTemplatesCmd(),
		newChatCmd(),
		newLayoutsCmd(),
		newPhotoCmd(),
		newHistoryCmd(),
		newSettingsCmd(),
	)
	return root
}

// newGenerator builds the model-backed generator. Tests replace it.
var newGenerator = func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (generation.Generator, func() error, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, nil, err
	}

	client, err := llm.NewClient(ctx, cfg.ModelConfig(), cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	opts := []generation.Option{generation.WithLogger(logger)}
	if cfg.SearchEnabled() {
		searcher, err := research.NewGoogleSearcher(ctx, cfg.Search.APIKey, cfg.Search.CX)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create search client: %w", err)
		}
		opts = append(opts, generation.WithSearcher(searcher))
	}

	svc, err := generation.NewService(client, opts...)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return svc, client.Close, nil
}

// runtime is everything a command needs once configuration is loaded.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	app     *screens.App
	printer *observability.Printer

	closeModel func() error
}

// setup loads configuration and opens the store. The model client is only
// created when withModel is set, so offline commands work without an API key.
func setup(cmd *cobra.Command, withModel bool) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(cfgPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.StoreOptions(), logger)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		printer: observability.NewPrinter(cmd.OutOrStdout()),
	}

	var gen generation.Generator
	if withModel {
		gen, rt.closeModel, err = newGenerator(ctx, cfg, logger)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	rt.app = screens.NewApp(screens.Env{
		Store:     st,
		Generator: gen,
		Logger:    logger,
	}, screens.Options{
		EmailPolicy:   cfg.EmailPolicy(),
		PhotoMaxBytes: cfg.Photo.MaxBytes,
		URL:           ingestion.URLOptions{UseBrowser: cfg.Fetch.UseBrowser, Logger: logger},
		Printer:       screens.ChromePDFPrinter(logger),
	})
	return rt, nil
}

// Close releases the store and the model client.
func (rt *runtime) Close() {
	if rt.closeModel != nil {
		if err := rt.closeModel(); err != nil {
			rt.logger.Warn("failed to close LLM client", zap.Error(err))
		}
	}
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("failed to close store", zap.Error(err))
	}
	_ = rt.logger.Sync()
}

// userError replaces errors the screens know how to explain with their
// message. Anything else is returned unchanged.
func userError(err error) error {
	var (
		validationErr *screens.ValidationError
		entityErr     *types.InvalidEntityError
		generationErr *generation.Error
		parseErr      *ingestion.FileParseError
		fetchErr      *fetch.Error
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &fetchErr):
		return fmt.Errorf("não foi possível obter a vaga: %s", fetchErr.Message)
	case errors.As(err, &validationErr), errors.As(err, &entityErr), errors.As(err, &generationErr),
		errors.As(err, &parseErr), errors.Is(err, screens.ErrBusy), errors.Is(err, screens.ErrNotFound):
		return errors.New(screens.UserMessage(err))
	default:
		return err
	}
}

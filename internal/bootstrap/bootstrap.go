package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"echominds-server-go/internal/domain/capture"
	"echominds-server-go/internal/domain/eventbus"
	"echominds-server-go/internal/domain/pipeline"
	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/domain/task"
	"echominds-server-go/internal/domain/translate"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
	"echominds-server-go/internal/platform/storage"
	"echominds-server-go/internal/transport/http/webapi"
	"echominds-server-go/internal/transport/ws"

	// Provider adapters register themselves on import.
	_ "echominds-server-go/internal/core/providers/clone/elevenlabs"
	_ "echominds-server-go/internal/core/providers/stt/elevenlabs"
	_ "echominds-server-go/internal/core/providers/stt/openai"
	_ "echominds-server-go/internal/core/providers/translate/googlefree"
	_ "echominds-server-go/internal/core/providers/tts/edge"
	_ "echominds-server-go/internal/core/providers/tts/elevenlabs"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID      string
	Kind    errors.Kind
	Execute stepFn
}

type appState struct {
	config      *config.Config
	logger      *logging.Logger
	db          *gorm.DB
	runs        *storage.RunRepository
	voices      *storage.VoiceRepository
	transcriber providers.Transcriber
	cloner      providers.Cloner
	translator  *translate.Service
	synthesizer providers.Synthesizer
	cleanup     *task.CleanupTask
}

// Run drives the whole service lifecycle: configuration, dependencies,
// HTTP serving and graceful shutdown.
func Run(ctx context.Context) error {
	state := &appState{}

	if err := executeInitSteps(ctx, initGraph(), state); err != nil {
		return err
	}

	logger := state.logger
	defer logger.Close()
	defer eventbus.Shutdown()

	state.cleanup.Start()
	defer state.cleanup.Stop()

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	server, err := buildServer(groupCtx, state)
	if err != nil {
		return err
	}

	group.Go(func() error {
		logger.InfoTag("Bootstrap", "listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.KindTransport, "serve", "http server failed", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	<-signalCtx.Done()
	logger.InfoTag("Bootstrap", "shutdown signal received")
	cancel()

	if err := group.Wait(); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}

	logger.InfoTag("Bootstrap", "server stopped cleanly")
	return nil
}

func buildServer(ctx context.Context, state *appState) (*http.Server, error) {
	cfg := state.config
	captures := capture.NewManager()

	orchestrator := pipeline.NewOrchestrator(pipeline.Deps{
		Transcriber: state.transcriber,
		Translator:  state.translator,
		Synthesizer: state.synthesizer,
		Runs:        state.runs,
		Logger:      state.logger,
		OutputDir:   cfg.Paths.OutputDir,
	})

	engine, err := webapi.NewEngine(ctx, cfg, state.logger,
		webapi.NewRunService(cfg, state.logger, orchestrator, state.runs, captures),
		webapi.NewVoiceService(cfg, state.logger, state.cloner, state.voices),
		webapi.NewSystemService(cfg, state.logger, captures),
		ws.NewIngestService(cfg, state.logger, captures),
	)
	if err != nil {
		return nil, errors.Wrap(errors.KindBootstrap, "build server", "failed to build routes", err)
	}

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.IP, cfg.Server.Port),
		Handler: engine,
	}, nil
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	for _, step := range steps {
		if err := step.Execute(ctx, state); err != nil {
			var typed *errors.Error
			if stderrors.As(err, &typed) {
				return err
			}
			kind := step.Kind
			if kind == "" {
				kind = errors.KindBootstrap
			}
			return errors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
	}
	return nil
}

func initGraph() []initStep {
	return []initStep{
		{ID: "config:load", Kind: errors.KindConfig, Execute: loadConfigStep},
		{ID: "logging:init", Kind: errors.KindBootstrap, Execute: initLoggingStep},
		{ID: "storage:init", Kind: errors.KindStorage, Execute: initStorageStep},
		{ID: "providers:init", Kind: errors.KindProvider, Execute: initProvidersStep},
		{ID: "tasks:init", Kind: errors.KindBootstrap, Execute: initTasksStep},
	}
}

func loadConfigStep(ctx context.Context, state *appState) error {
	result, err := config.NewLoader().Load()
	if err != nil {
		return err
	}
	state.config = result.Config
	return nil
}

func initLoggingStep(ctx context.Context, state *appState) error {
	logger, err := logging.New(logging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return err
	}
	state.logger = logger
	logger.InfoTag("Bootstrap", "configuration loaded")
	return nil
}

func initStorageStep(ctx context.Context, state *appState) error {
	db, err := storage.Open(state.config.Paths.DataDir)
	if err != nil {
		return err
	}
	state.db = db
	state.runs = storage.NewRunRepository(db)
	state.voices = storage.NewVoiceRepository(db)
	state.logger.InfoTag("Bootstrap", "database ready")
	return nil
}

func initProvidersStep(ctx context.Context, state *appState) error {
	cfg := state.config
	logger := state.logger

	transcriber, err := providers.CreateTranscriber(cfg.Selected.STT, cfg, logger)
	if err != nil {
		return err
	}
	cloner, err := providers.CreateCloner(cfg.Selected.Clone, cfg, logger)
	if err != nil {
		return err
	}
	translatorProvider, err := providers.CreateTranslator(cfg.Selected.Translate, cfg, logger)
	if err != nil {
		return err
	}
	synthesizer, err := providers.CreateSynthesizer(cfg.Selected.TTS, cfg, logger)
	if err != nil {
		return err
	}

	var cache *translate.Cache
	if cfg.Translate.Cache.Enabled {
		cache = translate.NewCache(cfg.Translate.Cache.Addr, cfg.Translate.Cache.DB, cfg.Translate.Cache.TTL)
		logger.InfoTag("Bootstrap", "translation cache enabled at %s", cfg.Translate.Cache.Addr)
	}

	state.transcriber = transcriber
	state.cloner = cloner
	state.translator = translate.NewService(translatorProvider, translate.Options{
		MaxChunkSize: cfg.Translate.MaxChunkSize,
		Cache:        cache,
		Logger:       logger,
	})
	state.synthesizer = synthesizer

	logger.InfoTag("Bootstrap", "providers ready: stt=%s clone=%s translate=%s tts=%s",
		cfg.Selected.STT, cfg.Selected.Clone, cfg.Selected.Translate, cfg.Selected.TTS)
	return nil
}

func initTasksStep(ctx context.Context, state *appState) error {
	cfg := state.config
	if !cfg.Cleanup.Enabled {
		state.cleanup = task.NewCleanupTask(nil, cfg.Cleanup.MaxAge, cfg.Cleanup.Interval, state.logger)
		return nil
	}
	state.cleanup = task.NewCleanupTask(
		[]string{cfg.Paths.TempDir, cfg.Paths.OutputDir},
		cfg.Cleanup.MaxAge,
		cfg.Cleanup.Interval,
		state.logger,
	)
	return nil
}

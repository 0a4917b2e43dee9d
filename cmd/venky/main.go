// Command venky runs the assistant daemon: it wires the session
// orchestrator to the local capture devices, the generation providers,
// the SQLite session store, and the overlay bridge.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/vnrtumu/VenkyAI/bridge"
	"github.com/vnrtumu/VenkyAI/config"
	orchestration "github.com/vnrtumu/VenkyAI/core"
	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/backend/ollama"
	"github.com/vnrtumu/VenkyAI/core/backend/openai"
	"github.com/vnrtumu/VenkyAI/core/capture"
	"github.com/vnrtumu/VenkyAI/core/capture/miniaudio"
	"github.com/vnrtumu/VenkyAI/core/capture/portaudio"
	"github.com/vnrtumu/VenkyAI/core/detector"
	"github.com/vnrtumu/VenkyAI/core/sessions"
	"github.com/vnrtumu/VenkyAI/core/speechtotext/deepgram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dataDir          = pflag.String("data-dir", "", "directory for config and session database (defaults to the user config dir)")
		listenAddr       = pflag.String("listen", "127.0.0.1:4931", "address the overlay bridge listens on")
		usePortaudio     = pflag.Bool("use-portaudio", false, "capture microphone audio through portaudio instead of miniaudio")
		noDetector       = pflag.Bool("no-detector", false, "disable meeting window auto-detection")
		screenCaptureCmd = pflag.String("screen-capture-cmd", "", "shell command run on each screen capture trigger")
	)
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dataDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		*dataDir = filepath.Join(configDir, "venky")
	}
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	cfg := config.Load(*dataDir)
	if cfg.DeepgramAPIKey != "" {
		os.Setenv("DEEPGRAM_API_KEY", cfg.DeepgramAPIKey)
	}

	store, err := sessions.OpenStore(sessions.StoreConfig{
		Path:   filepath.Join(*dataDir, "venky.db"),
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer store.Close()

	openaiClient := openai.NewClient(cfg.OpenAIAPIKey, openai.WithModel(cfg.OpenAIModel))

	var generator backend.Generator = openaiClient
	if cfg.LLMProvider == config.ProviderOllama {
		generator = ollama.NewClient(
			ollama.WithBaseURL(cfg.OllamaURL),
			ollama.WithModel(cfg.OllamaModel),
		)
	}

	var closers []func()
	defer func() {
		for _, close := range closers {
			close()
		}
	}()

	var microphone capture.Client
	if *usePortaudio {
		client, err := portaudio.NewClient(512)
		if err != nil {
			logger.Warn("portaudio unavailable, continuing without microphone", "error", err)
		} else {
			microphone = client
			closers = append(closers, client.Close)
		}
	} else {
		client, err := miniaudio.NewClient()
		if err != nil {
			logger.Warn("miniaudio unavailable, continuing without microphone", "error", err)
		} else {
			microphone = client
			closers = append(closers, client.Close)
		}
	}

	var systemAudio capture.Client
	if loopback, err := miniaudio.NewLoopbackClient(); err != nil {
		logger.Warn("system audio loopback unavailable", "error", err)
	} else {
		systemAudio = loopback
		closers = append(closers, loopback.Close)
	}

	var liveTranscriber *deepgram.TranscriptionClient
	if cfg.DeepgramAPIKey != "" || os.Getenv("DEEPGRAM_API_KEY") != "" {
		liveTranscriber = deepgram.NewTranscriptionClient(logger)
	}

	local, err := newLocalBackend(localBackendConfig{
		Store:            store,
		Chat:             openaiClient,
		Microphone:       microphone,
		SystemAudio:      systemAudio,
		LiveTranscriber:  liveTranscriber,
		ScreenCaptureCmd: *screenCaptureCmd,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("failed to assemble backend: %w", err)
	}

	orchestrator := orchestration.NewOrchestrator(
		orchestration.WithBackendClient(local),
		orchestration.WithGenerator(generator),
	)
	defer orchestrator.Close()

	openaiClient.SetEventEmitter(orchestrator.Dispatch)
	local.SetEventEmitter(orchestrator.Dispatch)

	overlayBridge, err := bridge.New(bridge.Config{
		Addr:       *listenAddr,
		Controller: orchestrator,
		Sessions:   store,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create overlay bridge: %w", err)
	}

	orchestrator.Orchestrate(ctx,
		orchestration.WithEventCallback(overlayBridge.Broadcast),
	)

	if !*noDetector {
		meetingDetector := detector.New(
			detector.WMCtrlLister{},
			local,
			local.HasActiveSession,
			orchestrator.Dispatch,
			detector.WithLogger(logger),
		)
		go meetingDetector.Run(ctx)
	}

	watcher, err := config.NewWatcher(*dataDir, func(reloaded config.AppConfig) {
		logger.Info("configuration reloaded",
			"provider", string(reloaded.LLMProvider),
			"model", reloaded.OpenAIModel)
	}, logger)
	if err != nil {
		logger.Warn("config hot-reload unavailable", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	logger.Info("venky daemon listening", "addr", *listenAddr, "data_dir", *dataDir)
	return overlayBridge.Run(ctx)
}

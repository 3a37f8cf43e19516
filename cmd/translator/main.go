package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/adapters/auth/token"
	"github.com/longduongbao29/Translator-app/internal/adapters/cache/rediskv"
	"github.com/longduongbao29/Translator-app/internal/adapters/cache/sqlitekv"
	"github.com/longduongbao29/Translator-app/internal/adapters/db/sqlite"
	"github.com/longduongbao29/Translator-app/internal/adapters/provider/custom"
	"github.com/longduongbao29/Translator-app/internal/adapters/provider/elevenlabs"
	"github.com/longduongbao29/Translator-app/internal/adapters/provider/googletrans"
	"github.com/longduongbao29/Translator-app/internal/adapters/provider/groqstt"
	"github.com/longduongbao29/Translator-app/internal/adapters/provider/langdetect"
	"github.com/longduongbao29/Translator-app/internal/adapters/provider/openaitrans"
	"github.com/longduongbao29/Translator-app/internal/adapters/provider/registry"
	"github.com/longduongbao29/Translator-app/internal/adapters/webhook/discordhook"
	"github.com/longduongbao29/Translator-app/internal/api"
	"github.com/longduongbao29/Translator-app/internal/config"
	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
	"github.com/longduongbao29/Translator-app/internal/usecase/developer"
	"github.com/longduongbao29/Translator-app/internal/usecase/settings"
	"github.com/longduongbao29/Translator-app/internal/usecase/speech"
	"github.com/longduongbao29/Translator-app/internal/usecase/synthesis"
	"github.com/longduongbao29/Translator-app/internal/usecase/translation"
	"github.com/longduongbao29/Translator-app/internal/usecase/users"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "translator",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", "path", cfg.DBPath, "err", err)
	}
	defer db.Close()

	// Redis when configured, sqlite TTL table otherwise.
	var cache ports.KV
	health := map[string]api.HealthChecker{
		"db": db.Ping,
	}
	if cfg.RedisURL != "" {
		rc, err := rediskv.NewFromURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("invalid redis url", "err", err)
		}
		defer rc.Close()
		cache = rc
		health["cache"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return rc.Ping(ctx)
		}
		logger.Info("using redis cache")
	} else {
		cache = sqlitekv.New(db)
		logger.Info("using sqlite cache")
	}

	userRepo := sqlite.NewUserRepo(db)
	settingsRepo := sqlite.NewSettingsRepo(db)
	endpointRepo := sqlite.NewEndpointRepo(db)
	webhookRepo := sqlite.NewWebhookRepo(db)
	translationRepo := sqlite.NewTranslationRepo(db)
	elevenRepo := sqlite.NewElevenLabsRepo(db)

	tokens := token.New(cfg.JWTSecret, cfg.TokenTTL)

	engines := registry.New()
	engines.Register(domain.EngineGoogle, googletrans.New())
	if cfg.OpenAIKey != "" {
		engines.Register(domain.EngineOpenAI, openaitrans.New(cfg.OpenAIKey))
	}

	settingsSvc := settings.New(settings.Deps{
		Settings:   settingsRepo,
		Endpoints:  endpointRepo,
		ElevenLabs: elevenRepo,
		Log:        logger,
	})
	usersSvc := users.New(users.Deps{
		Users:    userRepo,
		Settings: settingsRepo,
		Tokens:   tokens,
		Log:      logger,
	})
	translationSvc := translation.New(translation.Deps{
		Engines:  engines,
		Detector: langdetect.New(),
		Cache:    cache,
		Resolver: settingsSvc,
		History:  translationRepo,
		Webhooks: webhookRepo,
		Sender:   discordhook.New(),
		CustomTranslator: func(ep *domain.CustomEndpoint) ports.Translator {
			return custom.NewTranslator(ep)
		},
		Log: logger,
	})
	speechSvc := speech.New(speech.Deps{
		Builtin:  groqstt.NewWithBaseURL(cfg.GroqKey, cfg.GroqBaseURL),
		Resolver: settingsSvc,
		CustomTranscriber: func(ep *domain.CustomEndpoint) ports.Transcriber {
			return custom.NewTranscriber(ep)
		},
		Log: logger,
	})
	synthesisSvc := synthesis.New(synthesis.Deps{
		Builtin:    elevenlabs.New(cfg.ElevenLabsKey, ""),
		Resolver:   settingsSvc,
		ElevenLabs: elevenRepo,
		CustomSynthesizer: func(ep *domain.CustomEndpoint) ports.Synthesizer {
			return custom.NewSynthesizer(ep)
		},
		Log: logger,
	})
	developerSvc := developer.New(developer.Deps{
		Endpoints: endpointRepo,
		Webhooks:  webhookRepo,
		Log:       logger,
	})

	server := api.New(api.Deps{
		Users:       usersSvc,
		Settings:    settingsSvc,
		Translation: translationSvc,
		Speech:      speechSvc,
		Synthesis:   synthesisSvc,
		Developer:   developerSvc,
		AvatarDir:   cfg.AvatarDir,
		Health:      health,
		Log:         logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Shrezz2001/dr-tara-core-api/internal/ai"
	"github.com/Shrezz2001/dr-tara-core-api/internal/bot"
	"github.com/Shrezz2001/dr-tara-core-api/internal/catalog"
	"github.com/Shrezz2001/dr-tara-core-api/internal/config"
	"github.com/Shrezz2001/dr-tara-core-api/internal/speech"
	"github.com/Shrezz2001/dr-tara-core-api/internal/store"
	"github.com/Shrezz2001/dr-tara-core-api/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	snapshots, err := store.NewBoltStore(cfg.DataDir + "/drtara.db")
	if err != nil {
		logger.Fatal("store", zap.Error(err))
	}
	defer snapshots.Close()

	cache := catalog.NewCache(catalog.NewClient(cfg.WordPressBaseURL), snapshots, logger)
	cache.WarmStart()

	// One-shot refresh; the server accepts webhook traffic before it finishes
	// and matching degrades to the warm-start (or empty) snapshot meanwhile.
	go cache.Refresh(context.Background())

	tgClient := telegram.NewClient(cfg.TelegramToken)
	replier := ai.NewGenerator(cfg.GroqAPIKey)

	var synth bot.Synthesizer
	if cfg.VoiceReplies {
		synth = speech.NewSynthesizer(cfg.TTSBaseURL)
	}

	botHandler := bot.NewHandler(tgClient, replier, synth, cache, cfg.VoiceLanguage, cfg.VoiceKind, logger)
	webhookHandler := telegram.NewWebhookHandler(botHandler.HandleMessage, logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Dr Tara Core API is running."))
	})

	r.Post("/webhook", webhookHandler.HandleIncoming)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("drtara: listening", zap.String("port", cfg.Port), zap.Bool("voice_replies", cfg.VoiceReplies))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("drtara: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown", zap.Error(err))
	}
	logger.Info("drtara: stopped")
}

// newLogger builds the zap logger: debug level gets a colorized console
// encoder, everything else compact production JSON.
func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return logger
}

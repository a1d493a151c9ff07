package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohamedfarez/ai-twin/backend/internal/config"
	"github.com/mohamedfarez/ai-twin/backend/internal/engine"
	"github.com/mohamedfarez/ai-twin/backend/internal/handler"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
	"github.com/mohamedfarez/ai-twin/backend/internal/service/llm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	activePersona, ok := personaStore.FindByID(cfg.Engine.PersonaID)
	if !ok {
		log.Printf("warning: unknown persona %q, falling back to personal", cfg.Engine.PersonaID)
		activePersona, _ = personaStore.FindByID("personal")
	}
	log.Printf("chat engine running as persona %q", activePersona.ID)

	orchestrator := llm.NewOrchestrator(cfg.Providers.Build(), llm.NewHealth(llm.DefaultCooldown))

	sessions := engine.NewStore(cfg.Engine.SessionTTL, func(sessionID string) *engine.Session {
		return engine.NewSession(sessionID, activePersona, orchestrator)
	})
	defer sessions.Close()

	router := handler.NewRouter(personaStore, sessions, orchestrator)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("AI twin backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

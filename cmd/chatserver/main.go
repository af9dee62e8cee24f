package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"chatboard/internal"
	"chatboard/moderation"
	"chatboard/repositories"
	"chatboard/server"
	"chatboard/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer (badger close, redis close)
// executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Broadcast channel (Redis)
	rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	defer func() { _ = rdb.Close() }()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis unreachable at %s: %w", config.RedisAddr, err)
	}

	// 4. Moderation (optional)
	moderator, err := buildModerator(config)
	if err != nil {
		return err
	}
	if moderator != nil {
		log.Info("Moderation enabled")
	}

	// 5. Wiring
	messageRepository := repositories.NewMessageRepository(db, log)
	messageService := services.NewMessageService(messageRepository, moderator, log)
	router := server.NewRouter(messageService, config.APIToken, log)

	// 6. HTTP server with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	srv := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}

// buildModerator returns nil when no censored words are configured.
func buildModerator(config Config) (*moderation.Moderator, error) {
	words := lo.Filter(
		lo.Map(strings.Split(config.CensoredWords, ","), func(word string, _ int) string {
			return strings.TrimSpace(word)
		}),
		func(word string, _ int) bool { return word != "" },
	)
	if len(words) == 0 {
		return nil, nil
	}

	replacement, err := internal.CharacterRune(config.CensoredChar)
	if err != nil {
		return nil, err
	}
	moderator, err := moderation.NewModerator(words, replacement)
	if err != nil {
		return nil, fmt.Errorf("building moderator: %w", err)
	}
	return moderator, nil
}

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"reclamation/internal/config"
	"reclamation/internal/database"
	"reclamation/internal/pkg/logger"
	"reclamation/internal/repository"
)

// token_cleanup clears expired password reset and email verification tokens.
// Run it once (default) or keep it running with -every.
func main() {
	every := flag.Duration("every", 0, "repeat at this interval instead of running once")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zlog := logger.Must(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zlog.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	users := repository.NewUserRepository(db)

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		resets, verifications, err := users.ClearExpiredTokens(ctx, time.Now())
		if err != nil {
			zlog.Error("token cleanup failed", zap.Error(err))
			return
		}
		zlog.Info("expired tokens cleared",
			zap.Int64("reset_tokens", resets),
			zap.Int64("verification_tokens", verifications),
		)
	}

	run()
	if *every <= 0 {
		return
	}

	ticker := time.NewTicker(*every)
	defer ticker.Stop()
	for range ticker.C {
		run()
	}
}

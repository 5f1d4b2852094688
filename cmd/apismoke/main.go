package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/rentals-backend/internal/platform/logger"
	"github.com/yungbote/rentals-backend/internal/platform/shutdown"
	"github.com/yungbote/rentals-backend/internal/smoke"
)

func main() {
	var cfg smoke.Config
	flag.StringVar(&cfg.BaseURL, "base-url", "http://localhost:8080/api", "API base URL")
	flag.StringVar(&cfg.HostUser, "host-user", "host", "username that creates and confirms the listing")
	flag.StringVar(&cfg.HostPassword, "host-password", "password123", "host password")
	flag.StringVar(&cfg.GuestUser, "guest-user", "guest", "username that books and reviews")
	flag.StringVar(&cfg.GuestPassword, "guest-password", "password123", "guest password")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	if _, err := smoke.NewRunner(log, cfg, nil, os.Stdout).Run(ctx); err != nil {
		stop()
		log.Sync()
		os.Exit(1)
	}
}

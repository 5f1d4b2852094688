package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/yungbote/rentals-backend/internal/app"
	"github.com/yungbote/rentals-backend/internal/data/db"
	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
	"github.com/yungbote/rentals-backend/internal/platform/shutdown"
	"github.com/yungbote/rentals-backend/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	listings := flag.Int("listings", 20, "number of listings to create")
	clearData := flag.Bool("clear", false, "clear existing data before seeding")
	rngSeed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, seed.Options{Users: *users, Listings: *listings, Clear: *clearData}, *rngSeed); err != nil {
		log.Error("Seeding failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *logger.Logger, opts seed.Options, rngSeed int64) error {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	cfg, err := app.LoadConfig(log)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dbs, err := db.Open(cfg.Database(), log)
	if err != nil {
		return err
	}
	defer dbs.Close()
	if err := dbs.AutoMigrateAll(); err != nil {
		return err
	}

	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	log.Info("Seeding database", "seed", rngSeed, "users", opts.Users, "listings", opts.Listings, "clear", opts.Clear)

	conn := dbs.DB()
	g := seed.NewGenerator(log, store.NewGormTxRunner(conn), seed.Repos{
		Users:    repos.NewUserRepo(conn, log),
		Listings: repos.NewListingRepo(conn, log),
		Bookings: repos.NewBookingRepo(conn, log),
		Reviews:  repos.NewReviewRepo(conn, log),
	}, rand.New(rand.NewSource(rngSeed)), os.Stdout)

	_, err = g.Run(ctx, opts)
	return err
}

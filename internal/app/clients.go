package app

import (
	"fmt"

	redisbus "github.com/yungbote/rentals-backend/internal/clients/redis"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type Clients struct {
	BookingEvents redisbus.BookingEventBus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	bus, err := redisbus.NewBookingEventBus(log, cfg.redisConfig())
	if err != nil {
		return Clients{}, fmt.Errorf("init redis booking bus: %w", err)
	}
	return Clients{BookingEvents: bus}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.BookingEvents != nil {
		_ = c.BookingEvents.Close()
	}
}

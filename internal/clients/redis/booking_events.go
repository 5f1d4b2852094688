package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

// BookingEventBus fans booking changes out to other processes.
type BookingEventBus interface {
	Publish(ctx context.Context, ev rental.BookingEvent) error
	Subscribe(ctx context.Context, onEvent func(ev rental.BookingEvent)) error
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type bookingEventBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewBookingEventBus connects to Redis. An empty Addr yields a bus that drops
// every event.
func NewBookingEventBus(log *logger.Logger, cfg Config) (BookingEventBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		log.Info("REDIS_ADDR not set; booking events are not published")
		return NopBus{}, nil
	}
	ch := strings.TrimSpace(cfg.Channel)
	if ch == "" {
		ch = "rentals.bookings"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &bookingEventBus{
		log:     log.With("service", "BookingEventBus", "channel", ch),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *bookingEventBus) Publish(ctx context.Context, ev rental.BookingEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// Subscribe blocks, delivering events until ctx is cancelled.
func (b *bookingEventBus) Subscribe(ctx context.Context, onEvent func(ev rental.BookingEvent)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}
	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if !ok {
				return nil
			}
			var ev rental.BookingEvent
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
				b.log.Warn("dropping malformed booking event", "error", err)
				continue
			}
			onEvent(ev)
		}
	}
}

func (b *bookingEventBus) Close() error {
	return b.rdb.Close()
}

// NopBus discards events.
type NopBus struct{}

func (NopBus) Publish(context.Context, rental.BookingEvent) error { return nil }

func (NopBus) Subscribe(ctx context.Context, _ func(rental.BookingEvent)) error {
	<-ctx.Done()
	return nil
}

func (NopBus) Close() error { return nil }

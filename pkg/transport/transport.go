// Package transport picks the message relay named in the configuration.
package transport

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/whiteboard/pkg/config"
	"tableflip.dev/whiteboard/pkg/protocol"
	"tableflip.dev/whiteboard/pkg/transport/journal"
	"tableflip.dev/whiteboard/pkg/transport/redis"
)

// CloseFunc releases whatever Open acquired. It is never nil.
type CloseFunc func() error

func noop() error { return nil }

// Open builds the transport selected by cfg.Transport. For "none" the
// returned transport is nil, which the emitter treats as a sink.
func Open(ctx context.Context, cfg *config.Config) (protocol.Transport, CloseFunc, error) {
	if cfg == nil {
		return nil, noop, nil
	}
	switch cfg.Transport {
	case "", config.TransportNone:
		return nil, noop, nil

	case config.TransportJournal:
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, noop, err
		}
		log.WithFields(log.Fields{"path": cfg.Journal.Path, "origin": j.Origin()}).Info("transport: journal")
		return j, noop, nil

	case config.TransportRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("transport: redis %s: %w", cfg.Redis.Addr, err)
		}
		r := redis.New(client, cfg.Redis.Channel)
		log.WithFields(log.Fields{"addr": cfg.Redis.Addr, "channel": cfg.Redis.Channel, "origin": r.Origin()}).Info("transport: redis")
		return r, func() error {
			_ = r.Close()
			return client.Close()
		}, nil

	default:
		return nil, noop, fmt.Errorf("transport: unknown transport %q", cfg.Transport)
	}
}

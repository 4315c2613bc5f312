// Package redis relays whiteboard messages over a Redis pub/sub channel.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/whiteboard/pkg/idgen"
	"tableflip.dev/whiteboard/pkg/protocol"
)

var (
	// ErrBufferFull is returned by Emit when the publisher cannot keep up.
	ErrBufferFull = errors.New("redis: outbound buffer full")
	// ErrClosed is returned by Emit after Close.
	ErrClosed = errors.New("redis: transport closed")
)

const (
	defaultBuffer         = 64
	defaultPublishTimeout = 5 * time.Second
)

// Option customises New.
type Option func(*Transport)

// WithOrigin overrides the generated origin id.
func WithOrigin(origin string) Option {
	return func(t *Transport) {
		if origin = strings.TrimSpace(origin); origin != "" {
			t.origin = origin
		}
	}
}

// WithBuffer sets how many messages may wait for the publisher.
func WithBuffer(n int) Option {
	return func(t *Transport) {
		if n >= 0 {
			t.buffer = n
		}
	}
}

// Transport is a protocol.Transport publishing to one Redis channel. A single
// publisher goroutine drains Emit calls in order.
type Transport struct {
	client  *goredis.Client
	channel string
	origin  string
	buffer  int

	out       chan []byte
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New starts the publisher for channel on client.
func New(client *goredis.Client, channel string, opts ...Option) *Transport {
	t := &Transport{
		client:  client,
		channel: channel,
		origin:  idgen.UUID{}.NewID(),
		buffer:  defaultBuffer,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.out = make(chan []byte, t.buffer)
	t.wg.Add(1)
	go t.publish()
	return t
}

// Origin returns the id stamped on outgoing envelopes.
func (t *Transport) Origin() string {
	return t.origin
}

// Emit implements protocol.Transport. It never waits for Redis.
func (t *Transport) Emit(event string, msg protocol.Message) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}
	data, err := protocol.Encode(protocol.Envelope{Event: event, Origin: t.origin, Message: msg})
	if err != nil {
		return err
	}
	select {
	case t.out <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

func (t *Transport) publish() {
	defer t.wg.Done()
	for {
		select {
		case <-t.done:
			return
		case data := <-t.out:
			ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
			if err := t.client.Publish(ctx, t.channel, data).Err(); err != nil {
				log.WithError(err).WithField("channel", t.channel).Warn("redis: publish")
			}
			cancel()
		}
	}
}

// On implements protocol.Transport. It returns once the subscription is
// confirmed; messages are delivered on a separate goroutine until ctx is done
// or the transport is closed. Messages carrying this transport's origin are
// skipped.
func (t *Transport) On(ctx context.Context, handle protocol.Handler) error {
	sub := t.client.Subscribe(ctx, t.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis: subscribe %s: %w", t.channel, err)
	}
	ch := sub.Channel()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.done:
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				env, err := protocol.Decode([]byte(m.Payload))
				if err != nil {
					log.WithError(err).WithField("channel", t.channel).Warn("redis: dropping message")
					continue
				}
				if env.Origin == t.origin {
					continue
				}
				handle(env.Message)
			}
		}
	}()
	return nil
}

// Close stops the publisher and any subscription. Queued messages that were
// not yet published are dropped.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
	})
	t.wg.Wait()
	return nil
}

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ActivityStore persists consumed entries.
type ActivityStore interface {
	Create(ctx context.Context, l *model.ActivityLog) error
}

const (
	minBackoff   = time.Second
	maxBackoff   = 30 * time.Second
	prefetch     = 50
	storeTimeout = 5 * time.Second
)

// Consumer moves activity events from the queue into an ActivityStore.
type Consumer struct {
	url   string
	queue string
	store ActivityStore
	log   *zap.Logger
}

func NewConsumer(url, queue string, store ActivityStore, log *zap.Logger) *Consumer {
	if queue == "" {
		queue = DefaultActivityQueue
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{url: url, queue: queue, store: store, log: log}
}

// Run dials the broker and consumes until ctx is cancelled, reconnecting
// with exponential backoff.  It only returns ctx.Err().
func (c *Consumer) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("activity consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = nextBackoff(backoff)
			continue
		}
		backoff = minBackoff // reset after successful connect

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("activity consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		c.log.Warn("activity consumer: set QoS failed", zap.Error(err))
	}
	if _, err := declareActivityQueue(ch, c.queue); err != nil {
		return err
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.log.Info("activity consumer started", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.dispatch(ctx, d)
		}
	}
}

// ackOutcome is what to do with a delivery once handled.
type ackOutcome int

const (
	outcomeAck ackOutcome = iota
	outcomeReject
	outcomeRequeue
)

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	switch c.handle(ctx, d.Body) {
	case outcomeAck:
		_ = d.Ack(false)
	case outcomeReject:
		_ = d.Nack(false, false) // do not requeue to avoid tight loops
	case outcomeRequeue:
		_ = d.Nack(false, !d.Redelivered)
	}
}

// handle stores one message body.  Undecodable payloads are rejected and a
// redelivered entry that already exists is acknowledged.  Store failures are
// requeued once.
func (c *Consumer) handle(ctx context.Context, body []byte) ackOutcome {
	var ev ActivityRecordedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		c.log.Warn("activity consumer: bad payload", zap.Error(err))
		return outcomeReject
	}
	l, err := ev.Log()
	if err != nil {
		c.log.Warn("activity consumer: bad payload", zap.String("log_id", ev.LogID), zap.Error(err))
		return outcomeReject
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	switch err := c.store.Create(sctx, l); {
	case err == nil, errors.Is(err, repository.ErrDuplicate):
		return outcomeAck
	default:
		c.log.Error("activity consumer: store failed", zap.String("log_id", l.ID), zap.Error(err))
		return outcomeRequeue
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d *= 2; d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

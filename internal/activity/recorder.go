// Package activity records audited HTTP exchanges in the background.  The
// request path only enqueues; a fixed pool of workers hands entries to a
// Sink.  Recording is best effort: entries are dropped when the queue is
// full and delivery failures are logged, never retried.
package activity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// Sink delivers one entry to its destination.
type Sink interface {
	Deliver(ctx context.Context, l *model.ActivityLog) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, l *model.ActivityLog) error

func (f SinkFunc) Deliver(ctx context.Context, l *model.ActivityLog) error { return f(ctx, l) }

// Store is anything that can persist an entry, e.g. *repository.ActivityLogRepo.
type Store interface {
	Create(ctx context.Context, l *model.ActivityLog) error
}

// StoreSink writes entries straight to s.
func StoreSink(s Store) Sink { return SinkFunc(s.Create) }

// Options tunes the recorder.  Zero values fall back to the defaults.
type Options struct {
	Workers      int
	Buffer       int
	WriteTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.Buffer <= 0 {
		o.Buffer = 1024
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	return o
}

// Recorder queues entries for asynchronous delivery.
type Recorder struct {
	sink    Sink
	log     *zap.Logger
	timeout time.Duration

	queue chan *model.ActivityLog
	wg    sync.WaitGroup

	mu     sync.RWMutex // guards closed and sends on queue
	closed bool

	dropped atomic.Int64
}

// NewRecorder starts the worker pool.
func NewRecorder(sink Sink, opts Options, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()
	r := &Recorder{
		sink:    sink,
		log:     log,
		timeout: opts.WriteTimeout,
		queue:   make(chan *model.ActivityLog, opts.Buffer),
	}
	for i := 0; i < opts.Workers; i++ {
		r.wg.Add(1)
		go r.work()
	}
	return r
}

// Record enqueues l without blocking.  After Close, or when the queue is
// full, the entry is dropped.
func (r *Recorder) Record(l *model.ActivityLog) {
	if l == nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.dropped.Add(1)
		return
	}
	select {
	case r.queue <- l:
	default:
		r.dropped.Add(1)
		r.log.Warn("activity queue full, entry dropped",
			zap.String("method", l.Method), zap.String("url", l.URL))
	}
}

// Dropped is the number of entries discarded so far.
func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

// Close stops intake and waits for queued entries to be delivered, or for
// ctx to end.  It is safe to call more than once.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) work() {
	defer r.wg.Done()
	for l := range r.queue {
		r.deliver(l)
	}
}

func (r *Recorder) deliver(l *model.ActivityLog) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("activity sink panicked", zap.Any("panic", p))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.sink.Deliver(ctx, l); err != nil {
		r.log.Debug("activity delivery failed", zap.String("log_id", l.ID), zap.Error(err))
	}
}

package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"turnero/internal/platform/metrics"
	id "turnero/pkg/domain"
	"turnero/pkg/requestcontext"
)

const (
	defaultWorkers     = 4
	defaultMaxAttempts = 3
)

// LogStore persists the durable notification log.
type LogStore interface {
	Create(ctx context.Context, log *Log) error
	Update(ctx context.Context, log *Log) error
	FindByID(ctx context.Context, logID id.NotificationID) (*Log, error)
	Exists(ctx context.Context, eventType EventType, userID id.UserID, sessionID id.SessionID) (bool, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*Log, error)
}

// Task is one queued delivery: the event plus the pending log row that
// tracks its outcome.
type Task struct {
	LogID id.NotificationID `json:"log_id"`
	Event Event             `json:"event"`
}

// Queue moves tasks from Dispatch to the delivery workers. Enqueue must
// not block; Run feeds queued tasks to handle until the context ends.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	Run(ctx context.Context, handle func(ctx context.Context, task Task)) error
}

// Dispatcher accepts events, records them in the log, and delivers them to
// the sink with retries. Each log row leaves the pending state exactly
// once, to sent or failed.
type Dispatcher struct {
	logs        LogStore
	sink        Sink
	queue       Queue
	backoff     Strategy
	workers     int
	maxAttempts int
	enabled     bool
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type DispatcherOption func(d *Dispatcher)

func WithQueue(q Queue) DispatcherOption {
	return func(d *Dispatcher) {
		d.queue = q
	}
}

func WithBackoff(s Strategy) DispatcherOption {
	return func(d *Dispatcher) {
		d.backoff = s
	}
}

func WithWorkers(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

func WithMaxAttempts(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithEnabled toggles delivery. When disabled, accepted events go straight
// to the failed state so the log still shows what would have been sent.
func WithEnabled(enabled bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.enabled = enabled
	}
}

func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithDispatcherMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

func NewDispatcher(logs LogStore, sink Sink, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		logs:        logs,
		sink:        sink,
		workers:     defaultWorkers,
		maxAttempts: defaultMaxAttempts,
		enabled:     true,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.queue == nil {
		d.queue = NewChanQueue(0)
	}
	if d.backoff == nil {
		d.backoff = defaultStrategy()
	}
	return d
}

// Dispatch accepts an event for delivery. The pending log row is written
// synchronously so the event is on record the moment the caller returns;
// delivery itself happens on the workers. Dispatch never blocks on a slow
// sink and never fails the calling operation.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	if !event.Type.Valid() {
		d.logger.ErrorContext(ctx, "dropping event with unknown type", "event_type", event.Type)
		return
	}

	log := NewLog(id.NotificationID(uuid.New()), event, requestcontext.Now(ctx))
	if err := d.logs.Create(ctx, log); err != nil {
		d.logger.ErrorContext(ctx, "open notification log",
			"event_type", event.Type, "user_id", event.UserID, "error", err)
		return
	}
	d.countDispatched(event.Type)

	if err := d.queue.Enqueue(ctx, Task{LogID: log.ID, Event: event}); err != nil {
		d.logger.ErrorContext(ctx, "enqueue notification",
			"log_id", log.ID, "event_type", event.Type, "error", err)
		d.finishFailed(ctx, log.ID, 0, "delivery queue rejected event")
	}
}

// Run consumes the queue until ctx ends. Deliveries run concurrently up to
// the worker limit.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	err := d.queue.Run(gctx, func(tctx context.Context, task Task) {
		g.Go(func() error {
			d.deliver(tctx, task)
			return nil
		})
	})
	_ = g.Wait()
	return err
}

// deliver attempts the delivery with bounded retries and settles the log
// row exactly once.
func (d *Dispatcher) deliver(ctx context.Context, task Task) {
	if !d.enabled {
		d.finishFailed(ctx, task.LogID, 0, "webhook disabled")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				d.finishFailed(ctx, task.LogID, attempt-1, "delivery aborted: "+ctx.Err().Error())
				return
			case <-time.After(d.backoff.Delay(attempt - 1)):
			}
		}

		if lastErr = d.sink.Send(ctx, task.Event); lastErr == nil {
			d.finishSent(ctx, task.LogID, attempt)
			return
		}
		d.logger.WarnContext(ctx, "notification delivery attempt failed",
			"log_id", task.LogID, "event_type", task.Event.Type,
			"attempt", attempt, "error", lastErr)
	}

	d.finishFailed(ctx, task.LogID, d.maxAttempts, lastErr.Error())
}

func (d *Dispatcher) finishSent(ctx context.Context, logID id.NotificationID, attempts int) {
	d.settle(ctx, logID, func(log *Log, now time.Time) {
		log.MarkSent(attempts, now)
	})
	if d.metrics != nil {
		d.metrics.NotificationsSent.Inc()
		d.metrics.NotificationAttempts.Observe(float64(attempts))
	}
}

func (d *Dispatcher) finishFailed(ctx context.Context, logID id.NotificationID, attempts int, detail string) {
	d.settle(ctx, logID, func(log *Log, now time.Time) {
		log.MarkFailed(attempts, detail, now)
	})
	if d.metrics != nil {
		d.metrics.NotificationsFailed.Inc()
	}
}

func (d *Dispatcher) settle(ctx context.Context, logID id.NotificationID, mutate func(log *Log, now time.Time)) {
	log, err := d.logs.FindByID(ctx, logID)
	if err != nil {
		d.logger.ErrorContext(ctx, "load notification log", "log_id", logID, "error", err)
		return
	}
	if log.Status != StatusPending {
		// Already settled; a second transition would violate the log contract.
		return
	}
	mutate(log, requestcontext.Now(ctx))
	if err := d.logs.Update(ctx, log); err != nil {
		d.logger.ErrorContext(ctx, "update notification log", "log_id", logID, "error", err)
	}
}

func (d *Dispatcher) countDispatched(eventType EventType) {
	if d.metrics != nil {
		d.metrics.NotificationsDispatched.WithLabelValues(string(eventType)).Inc()
	}
}

package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "turnero/pkg/domain"
	"turnero/pkg/platform/sentinel"
	"turnero/pkg/requestcontext"
)

// fakeLogStore is a map-backed LogStore local to this package; the real
// stores live downstream of notification and cannot be imported here.
type fakeLogStore struct {
	mu   sync.RWMutex
	logs map[id.NotificationID]*Log
}

func newFakeLogStore() *fakeLogStore {
	return &fakeLogStore{logs: make(map[id.NotificationID]*Log)}
}

func (s *fakeLogStore) Create(_ context.Context, log *Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[log.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *log
	s.logs[log.ID] = &cp
	return nil
}

func (s *fakeLogStore) Update(_ context.Context, log *Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[log.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *log
	s.logs[log.ID] = &cp
	return nil
}

func (s *fakeLogStore) FindByID(_ context.Context, logID id.NotificationID) (*Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log, ok := s.logs[logID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *log
	return &cp, nil
}

func (s *fakeLogStore) Exists(_ context.Context, eventType EventType, userID id.UserID, sessionID id.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, log := range s.logs {
		if log.EventType == eventType && log.UserID == userID && log.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeLogStore) ListByUser(_ context.Context, userID id.UserID) ([]*Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Log
	for _, log := range s.logs {
		if log.UserID == userID {
			cp := *log
			out = append(out, &cp)
		}
	}
	return out, nil
}

// scriptedSink fails the first failures calls, then succeeds.
type scriptedSink struct {
	mu       sync.Mutex
	failures int
	calls    int
	events   []Event
}

func (s *scriptedSink) Send(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return fmt.Errorf("webhook responded 503 Service Unavailable")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *scriptedSink) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// capturingQueue records enqueued tasks without delivering them.
type capturingQueue struct {
	mu    sync.Mutex
	tasks []Task
	err   error
}

func (q *capturingQueue) Enqueue(_ context.Context, task Task) error {
	if q.err != nil {
		return q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *capturingQueue) Run(ctx context.Context, _ func(ctx context.Context, task Task)) error {
	<-ctx.Done()
	return ctx.Err()
}

type DispatcherSuite struct {
	suite.Suite
	logs *fakeLogStore
	now  time.Time
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.logs = newFakeLogStore()
	s.now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
}

func (s *DispatcherSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *DispatcherSuite) event() Event {
	return Event{
		Type:      EventBookingConfirmed,
		UserID:    id.UserID(uuid.New()),
		SessionID: id.SessionID(uuid.New()),
		User:      &UserInfo{Email: "ana@club.test", Name: "Ana Torres"},
		Training:  &TrainingInfo{Name: "Functional", Date: "2026-03-11", Time: "10:00", Location: "Main hall"},
	}
}

func (s *DispatcherSuite) newDispatcher(sink Sink, opts ...DispatcherOption) *Dispatcher {
	base := []DispatcherOption{
		WithBackoff(ConstantBackoff{}),
		WithDispatcherLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return NewDispatcher(s.logs, sink, append(base, opts...)...)
}

func (s *DispatcherSuite) TestDispatch() {
	s.Run("opens a pending log row and enqueues the task", func() {
		queue := &capturingQueue{}
		d := s.newDispatcher(&scriptedSink{}, WithQueue(queue))

		event := s.event()
		d.Dispatch(s.ctx(), event)

		s.Require().Len(queue.tasks, 1)
		task := queue.tasks[0]
		s.Equal(event.Type, task.Event.Type)

		log, err := s.logs.FindByID(s.ctx(), task.LogID)
		s.Require().NoError(err)
		s.Equal(StatusPending, log.Status)
		s.Equal(event.UserID, log.UserID)
		s.Equal(event.SessionID, log.SessionID)
		s.True(log.CreatedAt.Equal(s.now))
	})

	s.Run("drops events with an unknown type", func() {
		queue := &capturingQueue{}
		d := s.newDispatcher(&scriptedSink{}, WithQueue(queue))

		d.Dispatch(s.ctx(), Event{Type: "UNKNOWN_EVENT"})
		s.Empty(queue.tasks)
	})

	s.Run("fails the log row when the queue rejects", func() {
		queue := &capturingQueue{err: errors.New("queue full (256 tasks)")}
		d := s.newDispatcher(&scriptedSink{}, WithQueue(queue))

		event := s.event()
		d.Dispatch(s.ctx(), event)

		logs, err := s.logs.ListByUser(s.ctx(), event.UserID)
		s.Require().NoError(err)
		s.Require().Len(logs, 1)
		s.Equal(StatusFailed, logs[0].Status)
		s.Equal("delivery queue rejected event", logs[0].Detail)
	})
}

func (s *DispatcherSuite) TestDeliver() {
	s.Run("first attempt success settles the log as sent", func() {
		sink := &scriptedSink{}
		d := s.newDispatcher(sink)

		task := s.pendingTask()
		d.deliver(s.ctx(), task)

		log := s.mustLog(task.LogID)
		s.Equal(StatusSent, log.Status)
		s.Equal(1, log.Attempts)
		s.Empty(log.Detail)
	})

	s.Run("retries transient failures", func() {
		sink := &scriptedSink{failures: 1}
		d := s.newDispatcher(sink)

		task := s.pendingTask()
		d.deliver(s.ctx(), task)

		s.Equal(2, sink.callCount())
		log := s.mustLog(task.LogID)
		s.Equal(StatusSent, log.Status)
		s.Equal(2, log.Attempts)
	})

	s.Run("gives up after the attempt budget", func() {
		sink := &scriptedSink{failures: 10}
		d := s.newDispatcher(sink)

		task := s.pendingTask()
		d.deliver(s.ctx(), task)

		s.Equal(3, sink.callCount())
		log := s.mustLog(task.LogID)
		s.Equal(StatusFailed, log.Status)
		s.Equal(3, log.Attempts)
		s.Contains(log.Detail, "503")
	})

	s.Run("honours a custom attempt budget", func() {
		sink := &scriptedSink{failures: 10}
		d := s.newDispatcher(sink, WithMaxAttempts(5))

		d.deliver(s.ctx(), s.pendingTask())
		s.Equal(5, sink.callCount())
	})

	s.Run("disabled delivery fails the log without calling the sink", func() {
		sink := &scriptedSink{}
		d := s.newDispatcher(sink, WithEnabled(false))

		task := s.pendingTask()
		d.deliver(s.ctx(), task)

		s.Equal(0, sink.callCount())
		log := s.mustLog(task.LogID)
		s.Equal(StatusFailed, log.Status)
		s.Equal("webhook disabled", log.Detail)
	})

	s.Run("never settles a log row twice", func() {
		sink := &scriptedSink{}
		d := s.newDispatcher(sink)

		task := s.pendingTask()
		settled := s.mustLog(task.LogID)
		settled.MarkFailed(3, "gave up earlier", s.now)
		s.Require().NoError(s.logs.Update(s.ctx(), settled))

		d.deliver(s.ctx(), task)

		log := s.mustLog(task.LogID)
		s.Equal(StatusFailed, log.Status)
		s.Equal("gave up earlier", log.Detail)
		s.Equal(3, log.Attempts)
	})
}

func (s *DispatcherSuite) TestRun() {
	s.Run("delivers dispatched events end to end", func() {
		sink := &scriptedSink{}
		d := s.newDispatcher(sink, WithQueue(NewChanQueue(8)))

		ctx, cancel := context.WithCancel(s.ctx())
		defer cancel()
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = d.Run(ctx)
		}()

		event := s.event()
		d.Dispatch(ctx, event)

		s.Eventually(func() bool {
			logs, err := s.logs.ListByUser(context.Background(), event.UserID)
			return err == nil && len(logs) == 1 && logs[0].Status == StatusSent
		}, 2*time.Second, 10*time.Millisecond)

		cancel()
		<-done
	})
}

// pendingTask opens a pending log row the way Dispatch does.
func (s *DispatcherSuite) pendingTask() Task {
	event := s.event()
	log := NewLog(id.NotificationID(uuid.New()), event, s.now)
	s.Require().NoError(s.logs.Create(s.ctx(), log))
	return Task{LogID: log.ID, Event: event}
}

func (s *DispatcherSuite) mustLog(logID id.NotificationID) *Log {
	log, err := s.logs.FindByID(s.ctx(), logID)
	s.Require().NoError(err)
	return log
}

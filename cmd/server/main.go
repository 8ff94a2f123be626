package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	bookingcache "turnero/internal/booking/cache"
	bookingservice "turnero/internal/booking/service"
	bookingstore "turnero/internal/booking/store"
	"turnero/internal/notification"
	notifkafka "turnero/internal/notification/kafka"
	"turnero/internal/notification/reminder"
	notifstore "turnero/internal/notification/store"
	"turnero/internal/platform/config"
	"turnero/internal/platform/httpserver"
	"turnero/internal/platform/logger"
	"turnero/internal/platform/metrics"
	"turnero/internal/platform/migrate"
	platformredis "turnero/internal/platform/redis"
	"turnero/internal/platform/token"
	schedservice "turnero/internal/scheduling/service"
	sessionstore "turnero/internal/scheduling/store/session"
	slotconfigstore "turnero/internal/scheduling/store/slotconfig"
	httptransport "turnero/internal/transport/http"
	userstore "turnero/internal/user/store"
	"turnero/pkg/platform/tx"
)

// sessionStores is the union of what the scheduling service, the booking
// service, and the reminder sweep need from a session store. Both store
// implementations satisfy it.
type sessionStores interface {
	schedservice.SessionStore
	bookingservice.SessionSource
}

type bookingStores interface {
	bookingservice.BookingStore
	schedservice.ParticipantSource
	reminder.BookingSource
}

// main wires the dependencies and keeps the process lifecycle small.
// Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)
	m := metrics.New()

	var (
		sessions  sessionStores
		configs   schedservice.SlotConfigStore
		bookings  bookingStores
		users     bookingservice.UserStore
		logs      notification.LogStore
		bookingTx bookingservice.StoreTx
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		if err := db.PingContext(context.Background()); err != nil {
			log.Error("ping database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := migrate.Apply(context.Background(), db, log); err != nil {
			log.Error("apply migrations", "error", err)
			os.Exit(1)
		}

		sessions = sessionstore.NewPostgres(db)
		configs = slotconfigstore.NewPostgres(db)
		bookings = bookingstore.NewPostgres(db)
		users = userstore.NewPostgres(db)
		logs = notifstore.NewPostgres(db)
		bookingTx = tx.NewRunner(db)
	} else {
		log.Warn("no database configured, using in-memory stores")
		sessions = sessionstore.NewInMemory()
		configs = slotconfigstore.NewInMemory()
		bookings = bookingstore.NewInMemory()
		users = userstore.NewInMemory()
		logs = notifstore.NewInMemory()
	}

	var queue notification.Queue
	if len(cfg.Kafka.Brokers) > 0 {
		kq, err := notifkafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Group, notifkafka.WithLogger(log))
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kq.Close()
		queue = kq
	}

	dispatcher := notification.NewDispatcher(
		logs,
		notification.NewWebhookSink(cfg.Webhook.URL),
		notification.WithQueue(queue),
		notification.WithEnabled(cfg.Webhook.Enabled && cfg.Webhook.URL != ""),
		notification.WithWorkers(cfg.Webhook.Workers),
		notification.WithMaxAttempts(cfg.Webhook.MaxAttempts),
		notification.WithBackoff(notification.ExponentialBackoff{
			Initial: cfg.Webhook.InitialBackoff,
			Max:     cfg.Webhook.MaxBackoff,
		}),
		notification.WithDispatcherLogger(log),
		notification.WithDispatcherMetrics(m),
	)

	bookingOpts := []bookingservice.Option{
		bookingservice.WithLogger(log),
		bookingservice.WithNotifier(dispatcher),
		bookingservice.WithMetrics(m),
	}
	if bookingTx != nil {
		bookingOpts = append(bookingOpts, bookingservice.WithTx(bookingTx))
	}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		counts := bookingcache.New(redisClient.Client,
			bookingcache.WithTTL(cfg.Redis.CountTTL),
			bookingcache.WithLogger(log),
		)
		bookingOpts = append(bookingOpts, bookingservice.WithCountCache(counts))
	}
	bookingSvc := bookingservice.New(bookings, sessions, users, bookingOpts...)

	schedSvc := schedservice.New(sessions, configs, users,
		schedservice.WithLogger(log),
		schedservice.WithNotifier(dispatcher),
		schedservice.WithParticipantSource(bookings),
		schedservice.WithMetrics(m),
	)

	reminderSched := reminder.New(sessions, bookings, users, logs, dispatcher,
		reminder.WithLead(cfg.Reminder.Lead),
		reminder.WithWindow(cfg.Reminder.Window),
		reminder.WithPeriod(cfg.Reminder.Period),
		reminder.WithLogger(log),
		reminder.WithMetrics(m),
	)

	router := httptransport.NewRouter(httptransport.Handlers{
		Bookings:      httptransport.NewBookingHandler(bookingSvc, log),
		Sessions:      httptransport.NewSessionHandler(schedSvc, log),
		SlotConfigs:   httptransport.NewSlotConfigHandler(schedSvc, log),
		Notifications: httptransport.NewNotificationHandler(logs, log),
	}, token.NewService(cfg.JWTSigningKey), log)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting turnero", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := dispatcher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := reminderSched.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

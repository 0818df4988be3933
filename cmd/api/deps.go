package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"walletadmin/internal/domain/activity"
	"walletadmin/internal/domain/notification"
	"walletadmin/internal/domain/overview"
	"walletadmin/internal/domain/transaction"
	"walletadmin/internal/infrastructure/backend"
	"walletadmin/internal/infrastructure/firebase"
	"walletadmin/internal/infrastructure/postgres"
	"walletadmin/internal/infrastructure/rabbitmq"
	"walletadmin/internal/infrastructure/redis"
	"walletadmin/internal/interfaces/scheduler"
	"walletadmin/internal/shared/config"
	"walletadmin/internal/shared/messages"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	Overview    *overview.Service
	Transitions *transaction.TransitionService

	// Optional edges; nil when disabled in config
	Pool      *scheduler.WorkerPool
	Cron      *scheduler.Cron
	Publisher *rabbitmq.Publisher

	closers []func() error
	log     zerolog.Logger
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Dependencies, error) {
	db, err := postgres.New(ctx, cfg.Database.ConnectionString(), postgres.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxOpenConns / 2,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("connected to database")

	d := &Dependencies{DB: db, log: log}
	d.closers = append(d.closers, db.Close)

	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	recordRepo := postgres.NewRecordRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	d.Overview = overview.NewService(userRepo, accountRepo, recordRepo, notificationRepo, overview.Options{
		Grouper:   activity.Grouper{Now: time.Now, Location: cfg.Display.Location},
		Patterns:  notification.DefaultPatterns,
		ListLimit: cfg.Display.ListLimit,
	})

	submitter, err := d.newSubmitter(cfg)
	if err != nil {
		d.Close()
		return nil, err
	}

	var deduper transaction.Deduper
	if cfg.Redis.URL != "" {
		client, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, client.Close)
		deduper = redis.NewDeduper(client, cfg.Redis.Prefix)
		log.Info().Dur("window", cfg.Redis.DedupeWindow).Msg("redis transition guard enabled")
	}

	var notifier transaction.Notifier
	if cfg.Scheduler.Enabled {
		notifier, err = d.newNotifier(ctx, cfg, notificationRepo)
		if err != nil {
			d.Close()
			return nil, err
		}

		d.Cron, err = scheduler.NewCron(cfg.Scheduler.BacklogCron, d.Overview, log)
		if err != nil {
			d.Close()
			return nil, err
		}
	}

	d.Transitions = transaction.NewTransitionService(recordRepo, submitter, deduper, notifier, cfg.Redis.DedupeWindow, log)
	return d, nil
}

// newSubmitter picks where transitions are handed off: the backend's admin
// API or a RabbitMQ exchange the backend consumes.
func (d *Dependencies) newSubmitter(cfg *config.Config) (transaction.Submitter, error) {
	switch cfg.Submitter.Mode {
	case config.SubmitterRabbitMQ:
		pub, err := rabbitmq.NewPublisher(cfg.Submitter.RabbitMQURL, cfg.Submitter.Exchange, d.log)
		if err != nil {
			return nil, err
		}
		d.Publisher = pub
		d.closers = append(d.closers, func() error { pub.Close(); return nil })
		d.log.Info().Str("exchange", cfg.Submitter.Exchange).Msg("transitions published to rabbitmq")
		return pub, nil
	case config.SubmitterHTTP:
		d.log.Info().Str("backend", cfg.Backend.BaseURL).Msg("transitions sent to backend api")
		return backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIToken, cfg.Backend.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown transition submitter %q", cfg.Submitter.Mode)
	}
}

// newNotifier builds the push path. Without Firebase credentials jobs still
// run but sends are no-ops.
func (d *Dependencies) newNotifier(ctx context.Context, cfg *config.Config, repo *postgres.NotificationRepository) (transaction.Notifier, error) {
	msgs := messages.Default()
	if cfg.Firebase.MessagesFile != "" {
		loaded, err := messages.Load(cfg.Firebase.MessagesFile)
		if err != nil {
			return nil, err
		}
		msgs = loaded
	}

	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		client, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, repo.DeactivateToken, d.log)
		if err != nil {
			return nil, err
		}
		messenger = client
		d.log.Info().Msg("firebase push notifications enabled")
	} else {
		d.log.Warn().Msg("FIREBASE_CREDENTIALS_FILE not set, push notifications disabled")
	}

	pushService := notification.NewService(repo, messenger, d.log)
	d.Pool = scheduler.NewWorkerPool(cfg.Scheduler.WorkerCount, cfg.Scheduler.JobDelay, cfg.Scheduler.QueueSize, d.log)
	return scheduler.NewNotifier(d.Pool, pushService, msgs), nil
}

// Start launches the background workers.
func (d *Dependencies) Start() {
	if d.Pool != nil {
		d.Pool.Start()
	}
	if d.Cron != nil {
		d.Cron.Start()
	}
}

// Shutdown stops background work, then releases connections.
func (d *Dependencies) Shutdown(timeout time.Duration) {
	if d.Cron != nil {
		d.Cron.Stop()
	}
	if d.Pool != nil {
		d.Pool.Shutdown(timeout)
	}
	d.Close()
}

func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.log.Warn().Err(err).Msg("error closing dependency")
		}
	}
	d.closers = nil
}

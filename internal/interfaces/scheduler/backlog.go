package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"walletadmin/internal/domain/overview"
)

var backlogGauge, _ = jobMeter.Int64Gauge("walletadmin.backlog.pending",
	metric.WithDescription("Records waiting for an admin decision"),
)

// BacklogSource reports how many records are still pending
type BacklogSource interface {
	PendingBacklog(ctx context.Context) (overview.Backlog, error)
}

// Cron runs the periodic backlog report
type Cron struct {
	cron     *cron.Cron
	schedule string
	source   BacklogSource
	log      zerolog.Logger
}

// NewCron validates schedule (standard five-field cron syntax) and prepares
// the report. Nothing runs until Start.
func NewCron(schedule string, source BacklogSource, log zerolog.Logger) (*Cron, error) {
	log = log.With().Str("component", "cron").Logger()
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{log: log})))

	s := &Cron{cron: c, schedule: schedule, source: source, log: log}
	if _, err := c.AddFunc(schedule, s.reportBacklog); err != nil {
		return nil, fmt.Errorf("invalid backlog schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Cron) Start() {
	s.log.Info().Str("schedule", s.schedule).Msg("scheduled backlog report")
	s.cron.Start()
}

// Stop waits for a running report to finish.
func (s *Cron) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Cron) reportBacklog() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.ReportBacklog(ctx); err != nil {
		s.log.Error().Err(err).Msg("backlog report failed")
	}
}

// ReportBacklog records the pending counts as a gauge and logs them.
func (s *Cron) ReportBacklog(ctx context.Context) (overview.Backlog, error) {
	b, err := s.source.PendingBacklog(ctx)
	if err != nil {
		return overview.Backlog{}, fmt.Errorf("count pending records: %w", err)
	}

	backlogGauge.Record(ctx, int64(b.PendingRequests), metric.WithAttributes(attribute.String("kind", "request")))
	backlogGauge.Record(ctx, int64(b.PendingHistory), metric.WithAttributes(attribute.String("kind", "history")))

	event := s.log.Info()
	if b.Total() > 0 {
		event = s.log.Warn()
	}
	event.
		Int("pending_requests", b.PendingRequests).
		Int("pending_history", b.PendingHistory).
		Msg("pending backlog")
	return b, nil
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

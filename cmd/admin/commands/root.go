package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"walletadmin/internal/domain/activity"
	"walletadmin/internal/domain/notification"
	"walletadmin/internal/domain/overview"
	"walletadmin/internal/infrastructure/postgres"
	"walletadmin/internal/shared/config"
	"walletadmin/internal/shared/logger"
)

// Reader is the part of overview.Service the commands read from
type Reader interface {
	ListRequests(ctx context.Context, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error)
	ListTransactions(ctx context.Context, userID int64, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error)
	ListUsers(ctx context.Context, c activity.Criteria) ([]overview.UserRow, error)
	Activity(ctx context.Context, userID int64) ([]activity.DateGroup[overview.ActivityItem], error)
	PendingBacklog(ctx context.Context) (overview.Backlog, error)
}

// Opener connects to the wallet database. The returned func releases it.
type Opener func(ctx context.Context) (Reader, func(), error)

type options struct {
	jsonOutput bool
	logLevel   string
	open       Opener
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the CLI. A nil open uses the configured database.
func NewRootCmd(open Opener) *cobra.Command {
	opts := &options{open: open}

	rootCmd := &cobra.Command{
		Use:   "walletadmin",
		Short: "Wallet admin - inspect requests, transactions, users and activity",
		Long: `Wallet admin reads the wallet backend's database and prints the same
views the admin dashboard serves: bank requests and transaction history
grouped by day, users with their primary account and balance, and each
user's notification activity with the bank fields recovered from it.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	if opts.open == nil {
		opts.open = opts.openDatabase
	}

	rootCmd.AddCommand(
		newRequestsCmd(opts),
		newTransactionsCmd(opts),
		newUsersCmd(opts),
		newActivityCmd(opts),
		newBacklogCmd(opts),
		newExtractCmd(opts),
	)
	return rootCmd
}

func (o *options) logger() zerolog.Logger {
	return logger.New(logger.Options{Level: o.logLevel, Format: logger.FormatConsole, Writer: os.Stderr})
}

func (o *options) openDatabase(ctx context.Context) (Reader, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := o.logger()

	db, err := postgres.New(ctx, cfg.Database.ConnectionString(), postgres.PoolOptions{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("host", cfg.Database.Host).Msg("connected to database")

	svc := overview.NewService(
		postgres.NewUserRepository(db),
		postgres.NewAccountRepository(db),
		postgres.NewRecordRepository(db),
		postgres.NewNotificationRepository(db),
		overview.Options{
			Grouper:   activity.Grouper{Now: time.Now, Location: cfg.Display.Location},
			Patterns:  notification.DefaultPatterns,
			ListLimit: cfg.Display.ListLimit,
		},
	)

	return svc, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing database")
		}
	}, nil
}

// withReader opens the database for the duration of fn
func (o *options) withReader(cmd *cobra.Command, fn func(ctx context.Context, r Reader) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	r, closeFn, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(ctx, r)
}

func addCriteriaFlags(cmd *cobra.Command, c *activity.Criteria, withType bool) {
	if withType {
		cmd.Flags().StringVar(&c.Type, "type", "", "Filter by type (deposit, withdrawal, ...)")
	}
	cmd.Flags().StringVar(&c.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&c.Search, "search", "", "Search by user name, email or bank")
}

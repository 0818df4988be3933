package commands

import (
	"context"

	"github.com/spf13/cobra"

	"walletadmin/cmd/admin/output"
	"walletadmin/internal/domain/activity"
)

func newRequestsCmd(opts *options) *cobra.Command {
	var c activity.Criteria

	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List bank requests grouped by day",
		Example: `  walletadmin requests --status pending
  walletadmin requests --type withdrawal --search ada --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withReader(cmd, func(ctx context.Context, r Reader) error {
				groups, err := r.ListRequests(ctx, c)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return output.JSON(cmd.OutOrStdout(), groups)
				}
				output.Records(cmd.OutOrStdout(), groups)
				return nil
			})
		},
	}

	addCriteriaFlags(cmd, &c, true)
	return cmd
}

func newTransactionsCmd(opts *options) *cobra.Command {
	var (
		c      activity.Criteria
		userID int64
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transaction history grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withReader(cmd, func(ctx context.Context, r Reader) error {
				groups, err := r.ListTransactions(ctx, userID, c)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return output.JSON(cmd.OutOrStdout(), groups)
				}
				output.Records(cmd.OutOrStdout(), groups)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "Only this user's transactions")
	addCriteriaFlags(cmd, &c, true)
	return cmd
}

func newBacklogCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backlog",
		Short: "Count records waiting for an admin decision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withReader(cmd, func(ctx context.Context, r Reader) error {
				b, err := r.PendingBacklog(ctx)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return output.JSON(cmd.OutOrStdout(), b)
				}
				output.Backlog(cmd.OutOrStdout(), b)
				return nil
			})
		},
	}
}

package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"walletadmin/cmd/admin/output"
	"walletadmin/internal/domain/activity"
)

func newUsersCmd(opts *options) *cobra.Command {
	var c activity.Criteria

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users with their primary account and total balance",
		Example: `  walletadmin users --status Onboarding
  walletadmin users --search @example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withReader(cmd, func(ctx context.Context, r Reader) error {
				rows, err := r.ListUsers(ctx, c)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return output.JSON(cmd.OutOrStdout(), rows)
				}
				output.Users(cmd.OutOrStdout(), rows)
				return nil
			})
		},
	}

	addCriteriaFlags(cmd, &c, false)
	return cmd
}

func newActivityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "activity <user-id>",
		Short: "Show a user's notifications with recovered bank details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || userID <= 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			return opts.withReader(cmd, func(ctx context.Context, r Reader) error {
				groups, err := r.Activity(ctx, userID)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return output.JSON(cmd.OutOrStdout(), groups)
				}
				output.Activity(cmd.OutOrStdout(), groups)
				return nil
			})
		},
	}
}

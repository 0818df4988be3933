package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"walletadmin/cmd/admin/output"
	"walletadmin/internal/domain/notification"
)

func newExtractCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [message]",
		Short: "Recover bank name, account number and currency from a notification",
		Long: `Runs the notification field extractor over a message given as an
argument, or read from stdin when no argument is passed.`,
		Example: `  walletadmin extract "Bank: First Union
Account: ...4521
Currency: EUR"
  cat message.txt | walletadmin extract --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			if len(args) == 1 {
				message = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				message = string(data)
			}
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("empty message")
			}

			fields := notification.Extract(message, notification.DefaultPatterns)
			if opts.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), fields)
			}

			keys := make([]string, len(notification.DefaultPatterns))
			for i, p := range notification.DefaultPatterns {
				keys[i] = p.Key
			}
			output.Fields(cmd.OutOrStdout(), fields, keys)
			return nil
		},
	}
}

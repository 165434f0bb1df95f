package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the commits of the notes file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(false)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		revisions, err := service.History(context.Background(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range revisions {
			hash := r.Hash
			if len(hash) > 7 {
				hash = hash[:7]
			}
			fmt.Fprintf(out, "%s  %s  %s\n", hash, r.Date.Local().Format(time.DateTime), r.Subject)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of entries")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	notessource "github.com/aretw0/notes/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes made to the notes file",
	Long:  `Watch the notes file and print session events as other programs change it. Stop with Ctrl+C.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(false)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := service.Watch(ctx); err != nil {
			return err
		}

		source := notessource.NewSource(service.Stream(ctx))
		if err := source.Start(ctx); err != nil {
			return err
		}

		slog.Info("watching notes", "file", resolveFile())
		out := cmd.OutOrStdout()
		for e := range source.Events() {
			fmt.Fprintln(out, e.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

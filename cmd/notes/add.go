package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an empty section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(true)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		separator, err := service.AddSection(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", separator)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

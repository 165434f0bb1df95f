package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a section, keeping its content and position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(true)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		separator, err := service.RenameSection(context.Background(), sectionArg(args[0]), args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", sectionArg(args[0]), separator)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a section and its content",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(true)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		separator := sectionArg(args[0])
		if err := service.DeleteSection(context.Background(), separator); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", separator)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

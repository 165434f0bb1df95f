package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the content of a section",
	Long:  `Print the content of a section. Without a name, the default section is shown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(false)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		separator := service.Active()
		if len(args) == 1 {
			separator = sectionArg(args[0])
		}

		section, err := service.Document().Section(separator)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if showJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(section)
		}
		fmt.Fprintln(out, section.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
)

var (
	sectionsJSON  bool
	sectionsMatch string
)

type sectionEntry struct {
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the sections of the notes file",
	Long:  `List section names in display order. The default section (selected on open) is marked with '*'.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(false)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		doc := service.Document()
		separators := doc.Sections()
		if sectionsMatch != "" {
			if separators, err = doc.Match(sectionsMatch); err != nil {
				return err
			}
		}

		entries := make([]sectionEntry, 0, len(separators))
		for _, s := range separators {
			name, _ := core.NameFromSeparator(s)
			entries = append(entries, sectionEntry{Name: name, Default: s == doc.Default()})
		}

		out := cmd.OutOrStdout()
		if sectionsJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}
		for _, e := range entries {
			marker := " "
			if e.Default {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s\n", marker, e.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.Flags().BoolVar(&sectionsJSON, "json", false, "Output in JSON format")
	sectionsCmd.Flags().StringVar(&sectionsMatch, "match", "", "Only list sections whose name matches a glob (e.g. 'work*')")
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
)

var (
	searchCaseSensitive bool
	searchAll           bool
	searchSection       string
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find occurrences of a text",
	Long: `Search the default section (or --section) for a text. With --all every section
is searched in display order. Matches are case-insensitive unless --case-sensitive is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(false)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		opts := core.SearchOptions{
			CaseSensitive: searchCaseSensitive,
			AllSections:   searchAll,
		}
		if searchSection != "" {
			opts.Section = sectionArg(searchSection)
		}

		matches, err := service.Search(args[0], opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if searchJSON {
			results := []core.SearchMatch{}
			for m := range matches {
				results = append(results, m)
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(results)
		}

		found := 0
		for m := range matches {
			found++
			fmt.Fprintf(out, "%s\t%s\n", m.Location(), core.Mark(m.Snippet, m.SnippetOffset, m.Length, "[", "]"))
		}
		if found == 0 {
			fmt.Fprintln(out, "No matches.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVarP(&searchCaseSensitive, "case-sensitive", "c", false, "Match case")
	searchCmd.Flags().BoolVarP(&searchAll, "all", "a", false, "Search every section")
	searchCmd.Flags().StringVar(&searchSection, "section", "", "Section to search (default: the default section)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}

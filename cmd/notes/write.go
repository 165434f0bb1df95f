package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/pkg/core"
)

var (
	writeContent string
	writeMessage string
	writeType    string
	writeScope   string
)

var writeCmd = &cobra.Command{
	Use:   "write <name>",
	Short: "Replace the content of a section",
	Long: `Replace the content of a section with --content or, when it is not given, with stdin.

The commit message defaults to "update section <name>". Use -m for a custom message,
or -t (and -s) to build a Conventional Commit message.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := writeContent
		if !cmd.Flags().Changed("content") {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			content = strings.TrimSuffix(string(data), "\n")
		}

		service, err := openService(true)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		ctx := context.Background()
		if reason := changeReason(args[0]); reason != "" {
			ctx = context.WithValue(ctx, core.ChangeReasonKey, reason)
		}

		separator := sectionArg(args[0])
		if err := service.Select(ctx, separator); err != nil {
			return err
		}
		if err := service.SetContent(content); err != nil {
			return err
		}
		if err := service.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", separator)
		return nil
	},
}

// changeReason builds the commit message from -m, -t and -s. Empty means the service default.
func changeReason(name string) string {
	switch {
	case writeType != "":
		subject := writeMessage
		if subject == "" {
			subject = "update " + strings.TrimSpace(name)
		}
		return notes.FormatChangeReason(writeType, writeScope, subject, "")
	case writeMessage != "":
		return notes.AppendFooter(writeMessage)
	}
	return ""
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeContent, "content", "", "New content (default: read from stdin)")
	writeCmd.Flags().StringVarP(&writeMessage, "message", "m", "", "Commit message")
	writeCmd.Flags().StringVarP(&writeType, "type", "t", "", "Conventional Commit type (feat, fix, docs, refactor, chore)")
	writeCmd.Flags().StringVarP(&writeScope, "scope", "s", "", "Conventional Commit scope")
}

package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/pkg/core"
)

var (
	notesFile    string
	settingsFile string
	verbose      bool
	nover        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Sectioned notes kept in a single text file",
	Long: `notes keeps all your notes in one plain text file, split into named sections.
Each section starts with a <section=NAME> line. Every change is written atomically
and, when the file lives in a git repository, committed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("Error", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&notesFile, "file", "f", os.Getenv("NOTES_FILE"), "Notes file (default: $NOTES_FILE, else the nearest notes.txt)")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Settings file, .yaml or .toml (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&nover, "nover", false, "Disable versioning (do not commit to git)")
}

// resolveFile picks the notes file: --file, then the nearest notes.txt upwards, then ./notes.txt.
func resolveFile() string {
	if notesFile != "" {
		return notesFile
	}
	if wd, err := os.Getwd(); err == nil {
		if found, err := notes.FindFile(wd, notes.DefaultFileName); err == nil {
			return found
		}
	}
	return notes.DefaultFileName
}

// openService loads the notes file. Read-only sessions never create or commit anything.
func openService(write bool) (*core.Service, error) {
	opts := []notes.Option{notes.WithLogger(slog.Default())}
	if nover {
		opts = append(opts, notes.WithVersioning(false))
	}
	if write {
		opts = append(opts, notes.WithAutoInit(true))
	} else {
		opts = append(opts, notes.WithReadOnly(true))
	}
	return notes.New(resolveFile(), opts...)
}

// sectionArg turns a section name given on the command line into its separator.
func sectionArg(name string) string {
	return core.SeparatorFromName(strings.TrimSpace(name))
}

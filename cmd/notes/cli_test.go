package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands can run more than once per process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI in-process against file and returns stdout.
func run(t *testing.T, file, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--file", file, "--nover"}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, file, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, file, stdin, args...)
	require.NoError(t, err, out)
	return out
}

func newNotesFile(t *testing.T, text string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte(text), 0644))
	return file
}

func TestCLI_SectionsLifecycle(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.txt")

	mustRun(t, file, "", "add", "Work")
	mustRun(t, file, "", "add", "Personal")
	mustRun(t, file, "", "write", "Work", "--content", "meeting at 10")
	mustRun(t, file, "", "rename", "Personal", "Home")

	out := mustRun(t, file, "", "sections")
	assert.Equal(t, "* first\n  Work\n  Home\n", out)

	out = mustRun(t, file, "", "show", "Work")
	assert.Equal(t, "meeting at 10\n", out)

	mustRun(t, file, "", "delete", "Home")
	out = mustRun(t, file, "", "sections", "--json")

	var entries []sectionEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []sectionEntry{{Name: "first", Default: true}, {Name: "Work"}}, entries)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "<section=first>\n\n<section=Work>\nmeeting at 10", string(data))
}

func TestCLI_WriteFromStdin(t *testing.T) {
	file := newNotesFile(t, "<section=Work>\nold")

	mustRun(t, file, "line one\nline two\n", "write", "Work")

	out := mustRun(t, file, "", "show")
	assert.Equal(t, "line one\nline two\n", out)
}

func TestCLI_Errors(t *testing.T) {
	file := newNotesFile(t, "<section=Work>\ntext\n<section=Personal>\n")

	t.Run("Reads never create the file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "none.txt")
		out := mustRun(t, missing, "", "sections")
		assert.Equal(t, "* first\n", out)
		assert.NoFileExists(t, missing)
	})

	t.Run("Unknown section", func(t *testing.T) {
		_, err := run(t, file, "", "show", "Nope")
		assert.Error(t, err)
	})

	t.Run("Duplicate name", func(t *testing.T) {
		_, err := run(t, file, "", "add", "Work")
		assert.Error(t, err)
	})

	t.Run("Name too short", func(t *testing.T) {
		_, err := run(t, file, "", "add", "x")
		assert.Error(t, err)
	})
}

func TestCLI_Search(t *testing.T) {
	file := newNotesFile(t, "<section=Work>\nCall Bob about the call\n<section=Personal>\ncall mom")

	t.Run("Default section", func(t *testing.T) {
		out := mustRun(t, file, "", "search", "call")
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "section: Work, position: 0\t[Call] Bob about the call", lines[0])
		assert.Equal(t, "section: Work, position: 19\tCall Bob about the [call]", lines[1])
	})

	t.Run("All sections, case sensitive", func(t *testing.T) {
		out := mustRun(t, file, "", "search", "call", "--all", "--case-sensitive")
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "section: Work, position: 19"))
		assert.True(t, strings.HasPrefix(lines[1], "section: Personal, position: 0"))
	})

	t.Run("No matches", func(t *testing.T) {
		out := mustRun(t, file, "", "search", "zebra", "--section", "Personal")
		assert.Equal(t, "No matches.\n", out)
	})

	t.Run("Short query", func(t *testing.T) {
		_, err := run(t, file, "", "search", "c")
		assert.Error(t, err)
	})
}

func TestCLI_Info(t *testing.T) {
	file := newNotesFile(t, "<section=Work>\ntext")

	out := mustRun(t, file, "", "info")
	assert.Contains(t, out, "sections: 1")
	assert.Contains(t, out, "active: Work")
	assert.Contains(t, out, "repository_type: fs-repository")
}

func TestCLI_Settings(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.toml")
	file := filepath.Join(t.TempDir(), "notes.txt")

	out := mustRun(t, file, "", "--settings", settings, "settings", "font-size", "up")
	assert.Contains(t, out, "font_size: 18")

	out = mustRun(t, file, "", "--settings", settings, "settings", "next-color", "bg")
	assert.Contains(t, out, "background_color: white")
	assert.Contains(t, out, "font_size: 18")

	_, err := run(t, file, "", "--settings", settings, "settings", "next-color", "middle")
	assert.Error(t, err)

	data, err := os.ReadFile(settings)
	require.NoError(t, err)
	assert.Contains(t, string(data), "font_size = 18")
}

func TestCLI_Version(t *testing.T) {
	out := mustRun(t, "unused.txt", "", "version")
	assert.Equal(t, "notes version dev\n", out)
}

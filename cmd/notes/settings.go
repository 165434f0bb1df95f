package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notes/pkg/settings"
)

func settingsPath() (string, error) {
	if settingsFile != "" {
		return settingsFile, nil
	}
	return settings.DefaultPath()
}

// updateSettings loads, transforms and saves the settings, then prints them.
func updateSettings(cmd *cobra.Command, fn func(settings.Settings) settings.Settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	s, err := settings.Load(path)
	if err != nil {
		return err
	}
	s = fn(s)
	if err := settings.Save(path, s); err != nil {
		return err
	}
	return printSettings(cmd, s)
}

func printSettings(cmd *cobra.Command, s settings.Settings) error {
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(s)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change display settings (font, colors)",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}
		s, err := settings.Load(path)
		if err != nil {
			return err
		}
		return printSettings(cmd, s)
	},
}

var settingsNextFontCmd = &cobra.Command{
	Use:   "next-font",
	Short: "Switch to the next available font",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, settings.Settings.WithNextFont)
	},
}

var settingsNextColorCmd = &cobra.Command{
	Use:       "next-color <bg|fg>",
	Short:     "Switch the background or foreground to the next color",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bg", "fg"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "bg" {
			return updateSettings(cmd, settings.Settings.WithNextBackground)
		}
		return updateSettings(cmd, settings.Settings.WithNextForeground)
	},
}

var settingsFontSizeCmd = &cobra.Command{
	Use:       "font-size <up|down>",
	Short:     fmt.Sprintf("Change the font size by %d points", settings.FontSizeStep),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "up" {
			return updateSettings(cmd, settings.Settings.IncreaseFontSize)
		}
		return updateSettings(cmd, settings.Settings.DecreaseFontSize)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsNextFontCmd, settingsNextColorCmd, settingsFontSizeCmd)
}

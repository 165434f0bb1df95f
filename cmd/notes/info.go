package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notes/pkg/core"
)

type infoReport struct {
	core.Info `yaml:",inline"`
	Service   any `yaml:"service"`
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the notes file and the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(false)
		if err != nil {
			return fmt.Errorf("failed to open notes: %w", err)
		}

		info, err := service.Info(context.Background())
		if err != nil {
			return err
		}

		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(infoReport{Info: info, Service: service.State()})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/askcmd/internal/app"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect askcmd configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the saved configuration with the API key masked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfigPath(cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check that the saved configuration is usable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return validateConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
			},
		},
	)

	return configCmd
}

// showConfiguration prints the config as YAML
func showConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.ConfigStore == nil {
		return errors.New(ErrConfigStoreUnavailable)
	}
	cfg, err := container.ConfigStore.Load(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Masked())
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func showConfigPath(out io.Writer, container *app.Container) error {
	if container.ConfigStore == nil {
		return errors.New(ErrConfigStoreUnavailable)
	}
	path, err := container.ConfigStore.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}

func validateConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.ConfigStore == nil {
		return errors.New(ErrConfigStoreUnavailable)
	}
	if _, err := container.ConfigStore.Load(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, MsgConfigurationValid)
	return nil
}

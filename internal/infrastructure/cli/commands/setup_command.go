package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/askcmd/internal/app"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/cli/helpers"
	"github.com/doeshing/askcmd/internal/ports"
)

// NewSetupCommand creates the setup command. Values missing from flags are
// collected through the prompter.
func NewSetupCommand(container *app.Container, prompter ports.SetupPrompter) *cobra.Command {
	var apiKey, model string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Save the API key and model used by 'askcmd query'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := domain.Config{APIKey: apiKey, Model: model}.Normalized()
			return runSetup(cmd.OutOrStdout(), container, prompter, cfg)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "OpenAI API key")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default "+domain.DefaultModel+")")
	return cmd
}

func runSetup(out io.Writer, container *app.Container, prompter ports.SetupPrompter, cfg domain.Config) error {
	if container.ConfigStore == nil {
		return errors.New(ErrConfigStoreUnavailable)
	}

	if cfg.APIKey == "" || cfg.Model == "" {
		if prompter == nil {
			return errors.New(ErrPrompterUnavailable)
		}
		answered, err := prompter.AskConfig(cfg)
		if err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
		cfg = answered
	}

	path, err := helpers.SaveConfigWithValidation(out, container.ConfigStore, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, helpers.SuccessStyle.Render("Config file created at: "+path))
	return nil
}

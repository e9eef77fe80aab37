package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/askcmd/internal/app"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/cli/commands"
	"github.com/doeshing/askcmd/internal/ports"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	// App overrides container options; used by tests.
	App app.Options
	// Prompter overrides the interactive setup prompts.
	Prompter ports.SetupPrompter
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	appOpts := opts.App
	appOpts.Verbose = appOpts.Verbose || opts.Verbose
	container, err := app.BuildContainer(ctx, appOpts)
	if err != nil {
		return nil, err
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = NewSurveyPrompter()
	}

	var timeout time.Duration

	root := &cobra.Command{
		Use:   domain.AppName + " [query]",
		Short: "askcmd - turn natural language into shell commands",
		Long: `askcmd asks a chat completion model for the shell command matching a request.

Run "askcmd setup" once and use "askcmd query <text>", or export OPENAI_API_KEY
(optionally OPENAI_MODEL) and call "askcmd <text>" directly.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runQuery(cmd, container.DirectQueryService, strings.Join(args, " "), timeout, false)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", domain.DefaultHTTPClientTimeout, "Request timeout")

	root.AddCommand(newQueryCommand(container, &timeout))
	root.AddCommand(commands.NewSetupCommand(container, prompter))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

func newQueryCommand(container *app.Container, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "query [natural language]",
		Short: "Generate a shell command using the saved configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, container.QueryService, strings.Join(args, " "), *timeout, true)
		},
	}
}

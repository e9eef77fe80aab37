package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/doeshing/askcmd/internal/app"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/cli/helpers"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctorDiagnostics(cmd, cmd.OutOrStdout(), container)
		},
	}
}

// runDoctorDiagnostics runs environment diagnostics
func runDoctorDiagnostics(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container.DoctorService == nil {
		return errors.New(ErrDoctorServiceUnavailable)
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	displayDoctorReport(out, report)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	return nil
}

// displayDoctorReport displays the health check report
func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		status := statusStyle(check.Status).Render("[" + strings.ToUpper(string(check.Status)) + "]")
		fmt.Fprintf(out, "%s %s - %s\n", status, check.Name, check.Details)
	}
}

func statusStyle(status domain.HealthStatus) lipgloss.Style {
	switch status {
	case domain.HealthOK:
		return helpers.SuccessStyle
	case domain.HealthWarn:
		return helpers.WarnStyle
	default:
		return helpers.ErrorStyle
	}
}

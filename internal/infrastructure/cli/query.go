package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/askcmd/internal/application/query"
	"github.com/doeshing/askcmd/internal/domain"
)

// runQuery executes one query. With guideSetup, missing or broken config prints
// setup guidance and succeeds instead of failing the command.
func runQuery(cmd *cobra.Command, svc *query.Service, text string, timeout time.Duration, guideSetup bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	spin := NewSpinner(cmd.ErrOrStderr())
	presenter := NewCommandPresenter(cmd.OutOrStdout(), spin.Stop)

	spin.Start()
	resp, err := svc.WithPresenter(presenter).Run(ctx, domain.QueryRequest{Query: text})
	spin.Stop()

	if err != nil {
		if guideSetup && domain.IsSetupRequired(err) {
			RenderGuidance(cmd.OutOrStdout(), err)
			return nil
		}
		return err
	}
	if resp.HistoryErr != nil {
		RenderWarning(cmd.ErrOrStderr(), resp.HistoryErr)
	}
	return nil
}

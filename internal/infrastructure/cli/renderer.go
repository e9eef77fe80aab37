package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/cli/helpers"
	"github.com/doeshing/askcmd/internal/ports"
)

// CommandPresenter prints the normalized command, nothing else, so output can be piped.
type CommandPresenter struct {
	out    io.Writer
	before func()
}

// NewCommandPresenter builds a presenter; before runs ahead of printing (e.g. stopping a spinner).
func NewCommandPresenter(out io.Writer, before func()) *CommandPresenter {
	return &CommandPresenter{out: out, before: before}
}

// Present implements ports.ResponsePresenter.
func (p *CommandPresenter) Present(resp domain.QueryResponse) error {
	if p.before != nil {
		p.before()
	}
	_, err := fmt.Fprintln(p.out, resp.Command)
	return err
}

// RenderGuidance explains how to fix a missing or broken configuration.
func RenderGuidance(out io.Writer, err error) {
	fmt.Fprintln(out, helpers.WarnStyle.Render(domain.Hint(err)))
}

// RenderWarning reports a non-fatal problem after the answer was delivered.
func RenderWarning(out io.Writer, err error) {
	fmt.Fprintf(out, "%s %v\n", helpers.WarnStyle.Render("warning:"), err)
	if hint := domain.Hint(err); hint != "" {
		fmt.Fprintln(out, helpers.MutedStyle.Render(hint))
	}
}

var _ ports.ResponsePresenter = (*CommandPresenter)(nil)

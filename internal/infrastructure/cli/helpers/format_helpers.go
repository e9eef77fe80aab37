package helpers

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/askcmd/internal/domain"
)

// Styles shared by the commands. lipgloss drops colors when output is not a terminal.
var (
	LabelStyle   = lipgloss.NewStyle().Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

// FormatTimestamp renders an RFC3339 timestamp as "Jan 02, 2006 03:04 PM (3 hours ago)".
// Unparseable timestamps are returned unchanged.
func FormatTimestamp(raw string, loc *time.Location, now time.Time) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(domain.DisplayTimestampFormat) + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
}

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/askcmd/internal/app"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/cli/helpers"
	"github.com/doeshing/askcmd/internal/pkg/filesystem"
	"github.com/doeshing/askcmd/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands.
// Without a subcommand it lists every entry.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := newHistoryListCommand(container)
	historyCmd.Use = "history"
	historyCmd.Short = "Show past queries and generated commands"

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history entries, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New("--limit must be >= 0")
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, time.Now())
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Show only the most recent N entries (0 shows all)")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search queries and responses for a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return searchHistoryEntries(cmd.OutOrStdout(), container, strings.Join(args, " "), time.Now())
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearHistory(cmd.OutOrStdout(), container)
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSON or YAML file ('-' writes to stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHistory(cmd.OutOrStdout(), container, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", ExportFormatJSON, "Export format: json or yaml")
	return cmd
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize history and show the most frequent commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.OutOrStdout(), container, time.Now())
		},
	}
}

func historyStore(container *app.Container) (ports.HistoryRepository, error) {
	if container.HistoryStore == nil {
		return nil, errors.New(ErrHistoryStoreUnavailable)
	}
	return container.HistoryStore, nil
}

// listHistoryEntries prints entries; indexes stay stable when limited.
func listHistoryEntries(out io.Writer, container *app.Container, limit int, now time.Time) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryFound)
		return nil
	}

	start := 0
	if limit > 0 && limit < len(entries) {
		start = len(entries) - limit
	}
	for i := start; i < len(entries); i++ {
		printHistoryEntry(out, i, entries[i], now)
	}
	return nil
}

// searchHistoryEntries prints entries whose query or response contains keyword, ignoring case.
func searchHistoryEntries(out io.Writer, container *app.Container, keyword string, now time.Time) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to search history: %w", err)
	}

	needle := strings.ToLower(keyword)
	found := 0
	for i, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Query), needle) ||
			strings.Contains(strings.ToLower(entry.Response), needle) {
			printHistoryEntry(out, i, entry, now)
			found++
		}
	}
	if found == 0 {
		fmt.Fprintln(out, MsgNoMatchingHistory)
	}
	return nil
}

func printHistoryEntry(out io.Writer, index int, entry domain.HistoryEntry, now time.Time) {
	fmt.Fprintf(out, "%s %d\n", helpers.LabelStyle.Render("Index:"), index)
	fmt.Fprintf(out, "%s %s\n", helpers.LabelStyle.Render("Query:"), entry.Query)
	fmt.Fprintf(out, "%s %s\n", helpers.LabelStyle.Render("Response:"), entry.Response)
	fmt.Fprintf(out, "%s %s\n", helpers.LabelStyle.Render("Timestamp:"), helpers.FormatTimestamp(entry.Timestamp, time.Local, now))
	fmt.Fprintln(out)
}

// clearHistory removes the history store
func clearHistory(out io.Writer, container *app.Container) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Fprintln(out, MsgHistoryCleared)
	return nil
}

// exportHistory writes every entry to path in the requested format
func exportHistory(out io.Writer, container *app.Container, path, format string) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	data, err := encodeHistory(entries, format)
	if err != nil {
		return err
	}

	if path == stdoutPath {
		_, err := out.Write(data)
		return err
	}

	path = filesystem.ExpandPath(path)
	if err := filesystem.WriteFileAtomic(path, data, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}

	fmt.Fprintf(out, "Exported %d entries to %s\n", len(entries), path)
	return nil
}

func encodeHistory(entries []domain.HistoryEntry, format string) ([]byte, error) {
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	switch strings.ToLower(format) {
	case ExportFormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case ExportFormatYAML:
		return yaml.Marshal(entries)
	default:
		return nil, fmt.Errorf("unsupported export format %q (want %s or %s)", format, ExportFormatJSON, ExportFormatYAML)
	}
}

// commandCount holds one row of the frequency table
type commandCount struct {
	Command string
	Count   int
}

// showHistoryStats displays entry count, time range and top commands
func showHistoryStats(out io.Writer, container *app.Container, now time.Time) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryFound)
		return nil
	}

	fmt.Fprintf(out, "Entries: %d\n", len(entries))
	fmt.Fprintf(out, "First: %s\n", helpers.FormatTimestamp(entries[0].Timestamp, time.Local, now))
	fmt.Fprintf(out, "Last: %s\n", helpers.FormatTimestamp(entries[len(entries)-1].Timestamp, time.Local, now))

	fmt.Fprintln(out, "Top commands:")
	for _, stat := range topCommands(entries, 5) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Command, stat.Count)
	}
	return nil
}

// topCommands returns the n most frequent responses; ties keep first-seen order.
func topCommands(entries []domain.HistoryEntry, n int) []commandCount {
	freq := make(map[string]int)
	var order []string
	for _, entry := range entries {
		if _, seen := freq[entry.Response]; !seen {
			order = append(order, entry.Response)
		}
		freq[entry.Response]++
	}

	counts := make([]commandCount, 0, len(order))
	for _, cmd := range order {
		counts = append(counts, commandCount{Command: cmd, Count: freq[cmd]})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}


package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rshade/runcache/internal/cache"
)

// Listing layout constants.
const (
	tabPadding        = 2
	maxCommandDisplay = 48
)

// Styles for the cache list output.
var (
	listTitleStyle   = lipgloss.NewStyle().Bold(true)                      //nolint:gochecknoglobals
	listSummaryStyle = lipgloss.NewStyle().Faint(true)                     //nolint:gochecknoglobals
	expiredStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")) //nolint:gochecknoglobals
)

// newCacheCmd creates the cache maintenance command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Cache maintenance commands"}
	cmd.AddCommand(newCacheListCmd(), newCacheClearCmd(), newCacheCleanupCmd())
	return cmd
}

// newCacheClearCmd creates the command that removes every cache entry.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storeFromCmd(cmd)
			if err != nil {
				return err
			}

			removed, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			cmd.Printf("Removed %d cache entries.\n", removed)
			return nil
		},
	}
}

// newCacheCleanupCmd creates the command that removes only expired entries.
func newCacheCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storeFromCmd(cmd)
			if err != nil {
				return err
			}

			removed, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("cleaning up cache: %w", err)
			}

			cmd.Printf("Removed %d expired cache entries.\n", removed)
			return nil
		},
	}
}

// newCacheListCmd creates the command that lists cached entries.
func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storeFromCmd(cmd)
			if err != nil {
				return err
			}

			entries, err := store.Entries()
			if err != nil {
				return fmt.Errorf("listing cache: %w", err)
			}

			if len(entries) == 0 {
				cmd.Println("No cache entries found.")
				return nil
			}

			size, err := store.Size()
			if err != nil {
				return fmt.Errorf("sizing cache: %w", err)
			}

			return displayEntries(cmd, entries, size)
		},
	}
}

// displayEntries renders a tabulated listing plus a summary line.
func displayEntries(cmd *cobra.Command, entries []*cache.Entry, totalSize int64) error {
	cmd.Println(listTitleStyle.Render("Cached results"))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Key\tCommand\tAge\tExpires\tExit\tSize")
	fmt.Fprintln(w, "---\t-------\t---\t-------\t----\t----")

	for _, entry := range entries {
		expires := cache.FormatDuration(entry.TimeUntilExpiration())
		if entry.IsExpired() {
			expires = expiredStyle.Render("expired")
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			cache.KeyPrefix(cache.Key(entry.Command)),
			truncateCommand(entry.Command),
			cache.FormatDuration(entry.Age()),
			expires,
			entry.ExitCode,
			formatBytes(int64(len(entry.Stdout)+len(entry.Stderr))),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d entries, %s on disk", len(entries), formatBytes(totalSize))
	cmd.Println(listSummaryStyle.Render(summary))
	return nil
}

// truncateCommand shortens long command text for the listing. Control
// characters are replaced so binary-ish commands cannot mangle the table.
func truncateCommand(command string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < ' ' {
			return ' '
		}
		return r
	}, command)

	if len(cleaned) <= maxCommandDisplay {
		return cleaned
	}
	return cleaned[:maxCommandDisplay-3] + "..."
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

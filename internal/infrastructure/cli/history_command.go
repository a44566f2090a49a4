package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/smartai-go/internal/app"
	"github.com/doeshing/smartai-go/internal/domain"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit       int
		search      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past questions and answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				entries []domain.HistoryEntry
				err     error
			)
			if search != "" {
				entries, err = container.HistoryStore.Search(search)
			} else {
				entries, err = container.HistoryStore.Recent(limit)
			}
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			if interactive {
				selected, err := BrowseHistory(entries)
				if err != nil {
					return err
				}
				if selected != nil {
					RenderHistoryEntry(cmd.OutOrStdout(), *selected)
				}
				return nil
			}

			RenderHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultHistoryLimit, "Number of recent entries to show")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter entries by substring match")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse history in a full-screen list")

	return cmd
}

func newClearHistoryCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-history",
		Short: "Delete all stored questions, answers and cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.Clear(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			if err := container.CacheStore.ClearCache(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History and cache cleared.")
			return nil
		},
	}
}

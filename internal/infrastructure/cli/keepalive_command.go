package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/smartai-go/internal/app"
	"github.com/doeshing/smartai-go/internal/domain"
)

func newKeepAliveCommand(container *app.Container) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "keepalive",
		Short: "Poll the upstream APIs on an interval to keep them warm",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Polling every %s; press Ctrl+C to stop.\n", interval)
			container.KeepAlive.Interval = interval
			if err := container.KeepAlive.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", domain.DefaultKeepAliveInterval, "Time between probe rounds")
	return cmd
}

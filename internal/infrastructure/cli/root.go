// Package cli exposes the cobra command tree and terminal rendering.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/smartai-go/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. A bare question is forwarded to
// the ask subcommand, so `smartai "what is kubernetes"` just works.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	askCmd := newAskCommand(container)

	root := &cobra.Command{
		Use:   "smartai [question]",
		Short: "Smart AI - search-grounded CLI assistant",
		Long:  "Smart AI answers questions by combining web search with AI completions,\nwith response caching, question history and DevOps helpers.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			askCmd.SetArgs(args)
			return askCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(askCmd)
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newClearHistoryCommand(container))
	root.AddCommand(newConfigureCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newKeepAliveCommand(container))
	root.AddCommand(newK8sGenerateCommand(container))
	root.AddCommand(newDockerCommand(container))
	root.AddCommand(newAnalyzeCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}

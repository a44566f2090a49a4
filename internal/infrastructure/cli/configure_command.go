package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/smartai-go/internal/app"
	"github.com/doeshing/smartai-go/internal/infrastructure/config"
)

func newConfigureCommand(container *app.Container) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store API keys in the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset {
				if err := os.Remove(container.ConfigLoader.EnvPath()); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("reset configuration: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset. Environment variables still apply.")
				return nil
			}

			prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			cfg := container.Config

			serperKey, err := prompter.Ask("Serper API key", cfg.SerperAPIKey)
			if err != nil {
				return err
			}
			openAIKey, err := prompter.Ask("OpenAI API key", cfg.OpenAIAPIKey)
			if err != nil {
				return err
			}
			replicateToken, err := prompter.Ask("Replicate API token", cfg.ReplicateAPIToken)
			if err != nil {
				return err
			}

			values := map[string]string{}
			if serperKey != "" {
				values[config.EnvSerperKey] = serperKey
			}
			if openAIKey != "" {
				values[config.EnvOpenAIKey] = openAIKey
			}
			if replicateToken != "" {
				values[config.EnvReplicateToken] = replicateToken
			}
			if err := container.ConfigLoader.Save(values); err != nil {
				return fmt.Errorf("save configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", container.ConfigLoader.EnvPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Delete the stored .env file")
	return cmd
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/smartai-go/internal/app"
	"github.com/doeshing/smartai-go/internal/domain"
)

func newAskCommand(container *app.Container) *cobra.Command {
	var (
		quick       bool
		detailed    bool
		enhance     bool
		copyAnswer  bool
		suggestions bool
		savePath    string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			question := strings.Join(args, " ")

			if enhance {
				if improved := container.SuggestService.EnhancePrompt(ctx, question); improved != question {
					fmt.Fprintf(cmd.OutOrStdout(), "Optimized question: %s\n\n", improved)
					question = improved
				}
			}

			spinner := NewSpinner(cmd.ErrOrStderr())
			if styled() {
				spinner.Start()
			}
			resp, err := container.AskService.Run(domain.AskRequest{
				Context:  ctx,
				Question: question,
				Quick:    quick,
				Detailed: detailed,
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			RenderAnswer(cmd.OutOrStdout(), resp)

			if savePath != "" {
				if err := saveAnswer(savePath, question, resp.Response); err != nil {
					return fmt.Errorf("save answer: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", savePath)
			}
			if copyAnswer {
				if err := NewClipboard().Copy(resp.Response); err != nil {
					container.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
				}
			}
			if suggestions {
				RenderSuggestions(cmd.OutOrStdout(), container.SuggestService.Suggestions(ctx, question))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quick, "quick", "q", false, "Return a cached answer when one exists")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "Request a longer, example-rich answer")
	cmd.Flags().BoolVarP(&enhance, "enhance", "e", false, "Let the AI rephrase the question before answering")
	cmd.Flags().BoolVarP(&copyAnswer, "copy", "c", false, "Copy the answer to the clipboard")
	cmd.Flags().BoolVar(&suggestions, "suggest", false, "Print related questions and approaches")
	cmd.Flags().StringVarP(&savePath, "save", "s", "", "Write the answer to the given file")
	cmd.Flags().DurationVar(&timeout, "timeout", domain.DefaultHTTPClientTimeout, "Override request timeout")

	return cmd
}

// saveAnswer writes a question/answer transcript to path.
func saveAnswer(path, question, response string) error {
	content := fmt.Sprintf("Question: %s\n\nResponse:\n%s\n\nGenerated on: %s\n",
		question, response, time.Now().UTC().Format(domain.TimestampFormat))
	return os.WriteFile(path, []byte(content), domain.DataFilePermissions)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/smartai-go/internal/app"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and upstream connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			if err != nil {
				return err
			}
			RenderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

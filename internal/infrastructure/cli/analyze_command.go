package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/smartai-go/internal/app"
)

func newAnalyzeCommand(container *app.Container) *cobra.Command {
	var (
		kubernetes bool
		docker     bool
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Suggest optimizations for Kubernetes manifests and Dockerfiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !kubernetes && !docker {
				return fmt.Errorf("nothing to analyze: pass --kubernetes and/or --docker")
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if kubernetes {
				manifests, err := manifestFiles(dir)
				if err != nil {
					return err
				}
				if len(manifests) == 0 {
					fmt.Fprintf(out, "No YAML manifests found in %s\n", dir)
				}
				for _, path := range manifests {
					content, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					fmt.Fprintf(out, "Analysis for %s:\n", filepath.Base(path))
					RenderAnalysis(out, container.AnalyzeService.AnalyzeKubernetes(ctx, string(content)))
				}
			}

			if docker {
				path := filepath.Join(dir, "Dockerfile")
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				fmt.Fprintln(out, "Dockerfile analysis:")
				RenderAnalysis(out, container.AnalyzeService.AnalyzeDockerfile(ctx, string(content)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&kubernetes, "kubernetes", false, "Analyze YAML manifests in the target directory")
	cmd.Flags().BoolVar(&docker, "docker", false, "Analyze the Dockerfile in the target directory")
	cmd.Flags().StringVar(&dir, "path", ".", "Directory to scan")

	return cmd
}

func manifestFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}

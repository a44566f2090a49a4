package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/smartai-go/internal/app"
	"github.com/doeshing/smartai-go/internal/infrastructure/devops"
)

func newK8sGenerateCommand(container *app.Container) *cobra.Command {
	var opts devops.ManifestOptions

	cmd := &cobra.Command{
		Use:   "k8s-generate",
		Short: "Generate Kubernetes Deployment and Service manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := devops.GenerateManifests(opts)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Application name (required)")
	cmd.Flags().StringVar(&opts.Image, "image", "", "Container image (required)")
	cmd.Flags().IntVar(&opts.Replicas, "replicas", 1, "Deployment replica count")
	cmd.Flags().StringVar(&opts.ServiceType, "service-type", "ClusterIP", "Service type (ClusterIP, NodePort, LoadBalancer)")
	cmd.Flags().IntVar(&opts.Port, "port", 80, "Container and service port")
	cmd.Flags().StringVar(&opts.OutputDir, "output", ".", "Directory for generated files")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newDockerCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docker",
		Short: "Build and run container images via the docker CLI",
	}
	cmd.AddCommand(newDockerBuildCommand(), newDockerRunCommand())
	return cmd
}

func newDockerBuildCommand() *cobra.Command {
	var (
		tag string
		dir string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an image, writing a starter Dockerfile when missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			docker := &devops.Docker{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			return docker.Build(cmd.Context(), dir, tag)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Image tag (required)")
	cmd.Flags().StringVar(&dir, "dir", ".", "Build context directory")
	_ = cmd.MarkFlagRequired("tag")
	return cmd
}

func newDockerRunCommand() *cobra.Command {
	var opts devops.RunOptions

	cmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Run a container image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docker := &devops.Docker{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			return docker.Run(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Ports, "publish", "p", nil, "Port mappings as host:container")
	cmd.Flags().StringSliceVarP(&opts.Env, "env", "e", nil, "Environment variables as KEY=VALUE")
	cmd.Flags().StringSliceVarP(&opts.Volumes, "volume", "v", nil, "Volume mounts as host:container")
	cmd.Flags().StringVar(&opts.Network, "network", "", "Network to attach the container to")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Container name")
	cmd.Flags().BoolVarP(&opts.Detach, "detach", "d", false, "Run in the background")
	return cmd
}

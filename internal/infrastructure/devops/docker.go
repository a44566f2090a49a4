package devops

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/doeshing/smartai-go/internal/domain"
)

// Docker shells out to the local docker CLI for the build and run helpers.
type Docker struct {
	Stdout io.Writer
	Stderr io.Writer
}

// defaultDockerfile is written when the target directory has none.
const defaultDockerfile = `FROM alpine:3.20
WORKDIR /app
COPY . .
CMD ["./app"]
`

// Build runs `docker build -t <tag> <dir>`, writing a starter Dockerfile
// first when the directory lacks one.
func (d *Docker) Build(ctx context.Context, dir, tag string) error {
	if tag == "" {
		return fmt.Errorf("image tag is required")
	}
	if dir == "" {
		dir = "."
	}

	dockerfile := filepath.Join(dir, "Dockerfile")
	if _, err := os.Stat(dockerfile); os.IsNotExist(err) {
		if err := os.WriteFile(dockerfile, []byte(defaultDockerfile), domain.DataFilePermissions); err != nil {
			return fmt.Errorf("write default Dockerfile: %w", err)
		}
	}

	return d.run(ctx, "build", "-t", tag, dir)
}

// RunOptions mirror the docker run flags the run helper forwards.
type RunOptions struct {
	Ports   []string
	Env     []string
	Volumes []string
	Network string
	Name    string
	Detach  bool
}

// Run runs `docker run` with the given options.
func (d *Docker) Run(ctx context.Context, image string, opts RunOptions) error {
	args, err := runArgs(image, opts)
	if err != nil {
		return err
	}
	return d.run(ctx, args...)
}

// runArgs validates the options and builds the docker run argument list.
func runArgs(image string, opts RunOptions) ([]string, error) {
	if image == "" {
		return nil, fmt.Errorf("image name is required")
	}
	args := []string{"run"}
	if opts.Detach {
		args = append(args, "-d")
	}
	if opts.Name != "" {
		args = append(args, "--name", opts.Name)
	}
	if opts.Network != "" {
		args = append(args, "--network", opts.Network)
	}
	for _, p := range opts.Ports {
		if !strings.Contains(p, ":") {
			return nil, fmt.Errorf("invalid port mapping %q, want host:container", p)
		}
		args = append(args, "-p", p)
	}
	for _, e := range opts.Env {
		if !strings.Contains(e, "=") {
			return nil, fmt.Errorf("invalid env var %q, want KEY=VALUE", e)
		}
		args = append(args, "-e", e)
	}
	for _, v := range opts.Volumes {
		if !strings.Contains(v, ":") {
			return nil, fmt.Errorf("invalid volume %q, want host:container", v)
		}
		args = append(args, "-v", v)
	}
	args = append(args, image)
	return args, nil
}

func (d *Docker) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdout = d.stdout()
	cmd.Stderr = d.stderr()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker %s: %w", args[0], err)
	}
	return nil
}

func (d *Docker) stdout() io.Writer {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

func (d *Docker) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

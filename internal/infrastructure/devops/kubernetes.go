// Package devops provides the Kubernetes manifest generator and the Docker
// command wrappers behind the helper subcommands.
package devops

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/smartai-go/internal/domain"
)

// ManifestOptions drive manifest generation for one application.
type ManifestOptions struct {
	Name        string
	Image       string
	Replicas    int
	ServiceType string
	Port        int
	OutputDir   string
}

// Manifest shapes below mirror the Kubernetes API surface we emit; they stay
// local because nothing else needs the full client machinery.

type manifest struct {
	APIVersion string                 `yaml:"apiVersion"`
	Kind       string                 `yaml:"kind"`
	Metadata   metadata               `yaml:"metadata"`
	Spec       map[string]interface{} `yaml:"spec"`
}

type metadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels"`
}

// GenerateManifests writes <name>-deployment.yaml and <name>-service.yaml
// into the output directory and returns the written paths.
func GenerateManifests(opts ManifestOptions) ([]string, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("application name is required")
	}
	if opts.Image == "" {
		return nil, fmt.Errorf("container image is required")
	}
	if opts.Replicas <= 0 {
		opts.Replicas = 1
	}
	if opts.ServiceType == "" {
		opts.ServiceType = "ClusterIP"
	}
	if opts.Port <= 0 {
		opts.Port = 80
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if err := os.MkdirAll(opts.OutputDir, domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	files := map[string]manifest{
		opts.Name + "-deployment.yaml": deploymentManifest(opts),
		opts.Name + "-service.yaml":    serviceManifest(opts),
	}

	paths := make([]string, 0, len(files))
	for _, name := range []string{opts.Name + "-deployment.yaml", opts.Name + "-service.yaml"} {
		path := filepath.Join(opts.OutputDir, name)
		data, err := yaml.Marshal(files[name])
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", name, err)
		}
		if err := os.WriteFile(path, data, domain.DataFilePermissions); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func deploymentManifest(opts ManifestOptions) manifest {
	labels := map[string]string{"app": opts.Name}
	return manifest{
		APIVersion: "apps/v1",
		Kind:       "Deployment",
		Metadata:   metadata{Name: opts.Name, Labels: labels},
		Spec: map[string]interface{}{
			"replicas": opts.Replicas,
			"selector": map[string]interface{}{"matchLabels": labels},
			"template": map[string]interface{}{
				"metadata": map[string]interface{}{"labels": labels},
				"spec": map[string]interface{}{
					"containers": []map[string]interface{}{{
						"name":  opts.Name,
						"image": opts.Image,
						"ports": []map[string]interface{}{{"containerPort": opts.Port}},
					}},
				},
			},
		},
	}
}

func serviceManifest(opts ManifestOptions) manifest {
	labels := map[string]string{"app": opts.Name}
	return manifest{
		APIVersion: "v1",
		Kind:       "Service",
		Metadata:   metadata{Name: opts.Name, Labels: labels},
		Spec: map[string]interface{}{
			"type":     opts.ServiceType,
			"selector": labels,
			"ports": []map[string]interface{}{{
				"port":       opts.Port,
				"targetPort": opts.Port,
				"protocol":   "TCP",
			}},
		},
	}
}

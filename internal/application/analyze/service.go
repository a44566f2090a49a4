// Package analyze produces AI-generated optimization suggestions for
// Kubernetes manifests and Dockerfiles.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

// Service asks the primary provider to review configuration content. Every
// failure degrades to a static suggestion set; analysis is advisory only.
// Results are memoized per content so re-analyzing an unchanged file costs
// nothing.
type Service struct {
	Primary ports.CompletionProvider
	Logger  ports.Logger

	mu    sync.Mutex
	memo  map[string]domain.InfraAnalysis
	ready bool
}

// AnalyzeKubernetes reviews one manifest. Unparseable YAML skips the model
// call entirely and returns the defaults.
func (s *Service) AnalyzeKubernetes(ctx context.Context, yamlContent string) domain.InfraAnalysis {
	if cached, ok := s.cached(domain.InfraKubernetes, yamlContent); ok {
		return cached
	}

	var parsed interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &parsed); err != nil {
		s.Logger.Warn("manifest not valid YAML, using default suggestions", map[string]interface{}{"error": err.Error()})
		return defaultSuggestions(domain.InfraKubernetes)
	}
	serialized, err := json.Marshal(parsed)
	if err != nil {
		return defaultSuggestions(domain.InfraKubernetes)
	}

	prompt := fmt.Sprintf(`Analyze this Kubernetes configuration and provide optimization suggestions:
%s

Return JSON with:
{
  "security": ["security improvement suggestions"],
  "performance": ["performance optimization suggestions"],
  "reliability": ["reliability improvement suggestions"],
  "scalability": ["scalability recommendations"],
  "bestPractices": ["general best practices suggestions"]
}`, serialized)

	return s.generate(ctx, domain.InfraKubernetes, yamlContent, prompt)
}

// AnalyzeDockerfile reviews one Dockerfile.
func (s *Service) AnalyzeDockerfile(ctx context.Context, content string) domain.InfraAnalysis {
	if cached, ok := s.cached(domain.InfraDockerfile, content); ok {
		return cached
	}

	prompt := fmt.Sprintf(`Analyze this Dockerfile and provide optimization suggestions:
%s

Return JSON with:
{
  "security": ["security improvement suggestions"],
  "performance": ["performance optimization suggestions"],
  "size": ["image size reduction suggestions"],
  "caching": ["layer caching optimization suggestions"],
  "bestPractices": ["general best practices suggestions"]
}`, content)

	return s.generate(ctx, domain.InfraDockerfile, content, prompt)
}

func (s *Service) generate(ctx context.Context, kind domain.InfraKind, content, prompt string) domain.InfraAnalysis {
	raw, err := s.Primary.Generate(ctx, prompt)
	if err != nil {
		s.Logger.Warn("analysis generation failed, using default suggestions", map[string]interface{}{"error": err.Error()})
		return defaultSuggestions(kind)
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		s.Logger.Warn("analysis parse failed, using default suggestions", map[string]interface{}{"error": err.Error()})
		return defaultSuggestions(kind)
	}

	s.remember(kind, content, analysis)
	return analysis
}

// parseAnalysis is strict: malformed JSON is an error and the caller applies
// the default-suggestion policy.
func parseAnalysis(text string) (domain.InfraAnalysis, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	var analysis domain.InfraAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return domain.InfraAnalysis{}, fmt.Errorf("parse analysis: %w", err)
	}
	return analysis, nil
}

func (s *Service) cached(kind domain.InfraKind, content string) (domain.InfraAnalysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	analysis, ok := s.memo[memoKey(kind, content)]
	return analysis, ok
}

func (s *Service) remember(kind domain.InfraKind, content string, analysis domain.InfraAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		s.memo = make(map[string]domain.InfraAnalysis)
		s.ready = true
	}
	s.memo[memoKey(kind, content)] = analysis
}

func memoKey(kind domain.InfraKind, content string) string {
	return string(kind) + "\x00" + content
}

func defaultSuggestions(kind domain.InfraKind) domain.InfraAnalysis {
	if kind == domain.InfraDockerfile {
		return domain.InfraAnalysis{
			Security: []string{
				"Use specific version tags instead of latest",
				"Run containers as non-root user",
				"Implement health checks",
			},
			Performance: []string{
				"Use multi-stage builds",
				"Optimize layer caching",
				"Minimize the number of layers",
			},
			Size: []string{
				"Use alpine-based images",
				"Remove unnecessary files",
				"Clean up package manager caches",
			},
			Caching: []string{
				"Order commands by change frequency",
				"Combine RUN commands",
				"Use .dockerignore file",
			},
			BestPractices: []string{
				"Use COPY instead of ADD",
				"Set proper WORKDIR",
				"Define proper EXPOSE ports",
			},
		}
	}
	return domain.InfraAnalysis{
		Security: []string{
			"Enable RBAC for access control",
			"Use network policies to restrict traffic",
			"Configure resource limits",
		},
		Performance: []string{
			"Configure resource requests appropriately",
			"Use horizontal pod autoscaling",
			"Implement liveness and readiness probes",
		},
		Reliability: []string{
			"Use pod disruption budgets",
			"Implement proper health checks",
			"Configure pod anti-affinity",
		},
		Scalability: []string{
			"Use deployments for rolling updates",
			"Configure horizontal pod autoscaling",
			"Implement proper resource quotas",
		},
		BestPractices: []string{
			"Use namespaces for resource organization",
			"Implement proper labels and annotations",
			"Use configmaps and secrets for configuration",
		},
	}
}

// Package doctor runs environment diagnostics: data directory, credentials
// and upstream reachability.
package doctor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

// Default probe endpoints. Reachability only; no credentials are sent.
const (
	serperProbeURL    = "https://google.serper.dev"
	openAIProbeURL    = "https://api.openai.com/v1"
	replicateProbeURL = "https://api.replicate.com/v1"
)

// Service inspects the local setup and the upstream endpoints and reports a
// health check list. It never mutates anything besides a temp write probe.
type Service struct {
	Config  ports.ConfigProvider
	EnvPath string
	Logger  ports.Logger

	// HTTPClient is swappable for tests. Nil means a client with the
	// default probe timeout.
	HTTPClient *http.Client
}

// Run executes every check and returns the full report. Individual check
// failures are reported, not returned as errors.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	cfg, err := s.Config.Load(ctx)
	if err != nil {
		return domain.HealthReport{}, fmt.Errorf("load config: %w", err)
	}

	report := domain.HealthReport{}
	report.Checks = append(report.Checks, s.checkDataDir(cfg.DataDir))
	report.Checks = append(report.Checks, s.checkEnvFile())
	report.Checks = append(report.Checks,
		checkKey("serper api key", cfg.SerperAPIKey),
		checkKey("openai api key", cfg.OpenAIAPIKey),
		checkKey("replicate api token", cfg.ReplicateAPIToken),
	)
	report.Checks = append(report.Checks,
		s.checkEndpoint(ctx, "serper endpoint", serperProbeURL),
		s.checkEndpoint(ctx, "openai endpoint", probeBase(cfg.OpenAIBaseURL, openAIProbeURL)),
		s.checkEndpoint(ctx, "replicate endpoint", replicateProbeURL),
	)

	for _, check := range report.Checks {
		if check.Status != domain.CheckOK {
			s.Logger.Debug("check not ok", map[string]interface{}{
				"name":   check.Name,
				"status": string(check.Status),
				"detail": check.Detail,
			})
		}
	}
	return report, nil
}

func (s *Service) checkDataDir(dir string) domain.HealthCheck {
	check := domain.HealthCheck{Name: "data directory", Detail: dir}
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		check.Status = domain.CheckFail
		check.Detail = err.Error()
		return check
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), domain.DataFilePermissions); err != nil {
		check.Status = domain.CheckFail
		check.Detail = "not writable: " + err.Error()
		return check
	}
	_ = os.Remove(probe)
	check.Status = domain.CheckOK
	return check
}

func (s *Service) checkEnvFile() domain.HealthCheck {
	check := domain.HealthCheck{Name: "env file", Detail: s.EnvPath}
	if _, err := os.Stat(s.EnvPath); err != nil {
		check.Status = domain.CheckWarn
		check.Detail = "missing; run configure or rely on environment variables"
		return check
	}
	check.Status = domain.CheckOK
	return check
}

func checkKey(name, value string) domain.HealthCheck {
	if value == "" {
		return domain.HealthCheck{Name: name, Status: domain.CheckFail, Detail: "not set"}
	}
	return domain.HealthCheck{Name: name, Status: domain.CheckOK, Detail: maskKey(value)}
}

func (s *Service) checkEndpoint(ctx context.Context, name, url string) domain.HealthCheck {
	check := domain.HealthCheck{Name: name, Detail: url}

	ctx, cancel := context.WithTimeout(ctx, domain.DefaultDoctorProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		check.Status = domain.CheckFail
		check.Detail = err.Error()
		return check
	}
	resp, err := s.client().Do(req)
	if err != nil {
		check.Status = domain.CheckFail
		check.Detail = "unreachable: " + err.Error()
		return check
	}
	resp.Body.Close()

	// Any HTTP response means the host is reachable; auth errors are
	// expected for an unauthenticated probe.
	check.Status = domain.CheckOK
	return check
}

func (s *Service) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return &http.Client{Timeout: domain.DefaultDoctorProbeTimeout}
}

// maskKey keeps only the last four characters visible.
func maskKey(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}

func probeBase(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}

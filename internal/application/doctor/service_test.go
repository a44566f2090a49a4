package doctor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/pkg/logger"
)

type stubConfig struct {
	cfg domain.Config
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, nil }

func findCheck(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in %+v", name, report.Checks)
	return domain.HealthCheck{}
}

func TestRunReportsMissingKeysAndMasksPresentOnes(t *testing.T) {
	dir := t.TempDir()
	svc := &Service{
		Config: stubConfig{cfg: domain.Config{
			SerperAPIKey: "sk-serper-123456",
			DataDir:      dir,
		}},
		EnvPath: filepath.Join(dir, ".env"),
		Logger:  logger.New(false),
		// Reachability probes are not under test here.
		HTTPClient: &http.Client{Transport: failingTransport{}},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	serper := findCheck(t, report, "serper api key")
	if serper.Status != domain.CheckOK {
		t.Errorf("serper key status = %s", serper.Status)
	}
	if serper.Detail != "****3456" {
		t.Errorf("serper key detail = %q, want masked suffix", serper.Detail)
	}
	if strings.Contains(serper.Detail, "sk-serper") {
		t.Errorf("key leaked into report: %q", serper.Detail)
	}

	openai := findCheck(t, report, "openai api key")
	if openai.Status != domain.CheckFail || openai.Detail != "not set" {
		t.Errorf("openai key check = %+v", openai)
	}

	if report.Healthy() {
		t.Error("report with missing keys must not be healthy")
	}
}

func TestRunDataDirAndEnvFileChecks(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	svc := &Service{
		Config:     stubConfig{cfg: domain.Config{DataDir: dir}},
		EnvPath:    envPath,
		Logger:     logger.New(false),
		HTTPClient: &http.Client{Transport: failingTransport{}},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if c := findCheck(t, report, "data directory"); c.Status != domain.CheckOK {
		t.Errorf("data directory check = %+v", c)
	}
	if c := findCheck(t, report, "env file"); c.Status != domain.CheckWarn {
		t.Errorf("env file check = %+v, want warn for missing file", c)
	}
}

func TestCheckEndpointTreatsAnyResponseAsReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := &Service{Logger: logger.New(false), HTTPClient: server.Client()}
	check := svc.checkEndpoint(context.Background(), "probe", server.URL)
	if check.Status != domain.CheckOK {
		t.Errorf("check = %+v, want ok for a 401 response", check)
	}
}

func TestCheckEndpointUnreachable(t *testing.T) {
	svc := &Service{
		Logger:     logger.New(false),
		HTTPClient: &http.Client{Transport: failingTransport{}},
	}
	check := svc.checkEndpoint(context.Background(), "probe", "https://unreachable.invalid")
	if check.Status != domain.CheckFail {
		t.Errorf("check = %+v, want fail", check)
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, http.ErrHandlerTimeout
}

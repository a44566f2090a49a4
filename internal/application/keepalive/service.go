// Package keepalive periodically probes the upstream APIs so hosted
// endpoints stay warm during long sessions.
package keepalive

import (
	"context"
	"time"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

// Service probes the search client and both completion providers on a fixed
// interval. Probe failures are logged and never stop the loop.
type Service struct {
	Search   ports.SearchClient
	Primary  ports.CompletionProvider
	Fallback ports.CompletionProvider
	Logger   ports.Logger

	Interval time.Duration
}

// Run probes immediately, then on every interval tick until ctx is
// cancelled. It returns ctx.Err() once stopped.
func (s *Service) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = domain.DefaultKeepAliveInterval
	}

	s.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("keep-alive stopped", nil)
			return ctx.Err()
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *Service) probe(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	if _, err := s.Search.Search(ctx, "ping"); err != nil {
		s.Logger.Warn("keep-alive search probe failed", map[string]interface{}{
			"latency": time.Since(start).String(),
			"error":   err.Error(),
		})
	} else {
		s.Logger.Debug("keep-alive search probe ok", map[string]interface{}{
			"latency": time.Since(start).String(),
		})
	}

	for _, provider := range []ports.CompletionProvider{s.Primary, s.Fallback} {
		if provider == nil {
			continue
		}
		start := time.Now()
		if _, err := provider.Generate(ctx, "ping"); err != nil {
			s.Logger.Warn("keep-alive completion probe failed", map[string]interface{}{
				"provider": provider.Name(),
				"latency":  time.Since(start).String(),
				"error":    err.Error(),
			})
		} else {
			s.Logger.Debug("keep-alive completion probe ok", map[string]interface{}{
				"provider": provider.Name(),
				"latency":  time.Since(start).String(),
			})
		}
	}
}

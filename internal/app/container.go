// Package app wires application services to infrastructure adapters.
package app

import (
	"context"

	"github.com/doeshing/smartai-go/internal/application/analyze"
	"github.com/doeshing/smartai-go/internal/application/ask"
	"github.com/doeshing/smartai-go/internal/application/doctor"
	"github.com/doeshing/smartai-go/internal/application/keepalive"
	"github.com/doeshing/smartai-go/internal/application/suggest"
	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/infrastructure/ai"
	"github.com/doeshing/smartai-go/internal/infrastructure/config"
	"github.com/doeshing/smartai-go/internal/infrastructure/history"
	"github.com/doeshing/smartai-go/internal/infrastructure/search"
	"github.com/doeshing/smartai-go/internal/pkg/logger"
	"github.com/doeshing/smartai-go/internal/ports"
)

// Container holds the fully wired dependency graph.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.EnvLoader
	AskService     *ask.Service
	SuggestService *suggest.Service
	AnalyzeService *analyze.Service
	KeepAlive      *keepalive.Service
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	CacheStore     ports.CacheRepository
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewEnvLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)

	// The file store always exists: it owns the cache document even when
	// history itself is routed to SQLite.
	fileStore, err := history.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	var historyStore ports.HistoryRepository = fileStore
	if cfg.HistoryBackend == "sqlite" {
		sqliteStore, err := history.NewSQLiteStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		historyStore = sqliteStore
	}

	searchClient := search.NewSerperClient(cfg.SerperAPIKey, nil)
	primary := ai.NewOpenAIProvider(cfg)
	fallback := ai.NewReplicateProvider(cfg, nil)

	askService := &ask.Service{
		Search:   searchClient,
		Primary:  primary,
		Fallback: fallback,
		History:  historyStore,
		Cache:    fileStore,
		Logger:   log,
	}

	suggestService := &suggest.Service{
		Primary:  primary,
		Fallback: fallback,
		Logger:   log,
	}

	analyzeService := &analyze.Service{
		Primary: primary,
		Logger:  log,
	}

	keepAlive := &keepalive.Service{
		Search:   searchClient,
		Primary:  primary,
		Fallback: fallback,
		Logger:   log,
	}

	doctorService := &doctor.Service{
		Config:  cfgLoader,
		EnvPath: cfgLoader.EnvPath(),
		Logger:  log,
	}

	return &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		AskService:     askService,
		SuggestService: suggestService,
		AnalyzeService: analyzeService,
		KeepAlive:      keepAlive,
		DoctorService:  doctorService,
		HistoryStore:   historyStore,
		CacheStore:     fileStore,
		Logger:         log,
	}, nil
}

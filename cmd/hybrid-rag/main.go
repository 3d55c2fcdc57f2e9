// Command hybrid-rag indexes platform records and answers hybrid
// semantic and keyword queries over them.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/hybrid-rag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hybrid-rag/internal/adapters/driven/records"
	"github.com/custodia-labs/hybrid-rag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hybrid-rag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/hybrid-rag/internal/adapters/driving/cli"
	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
	"github.com/custodia-labs/hybrid-rag/internal/core/services"
	"github.com/custodia-labs/hybrid-rag/internal/logger"
	"github.com/custodia-labs/hybrid-rag/internal/postprocessors"
)

// version is set at build time via -ldflags.
var version = "dev"

// Environment variables read at startup. A .env file in the working
// directory is loaded first.
const (
	envHome     = "HYBRID_RAG_HOME"
	envLogLevel = "HYBRID_RAG_LOG_LEVEL"
	envVerbose  = "HYBRID_RAG_VERBOSE"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	if lvl := os.Getenv(envLogLevel); lvl != "" {
		l, err := logger.ParseLevel(lvl)
		if err != nil {
			logger.Warn("%v, using %s", err, l)
		}
		logger.SetLevel(l)
	}
	if v, err := strconv.ParseBool(os.Getenv(envVerbose)); err == nil && v {
		logger.SetVerbose(true)
	}

	home := os.Getenv(envHome)

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading settings: %v\n", err)
		return err
	}

	pipeline, err := postprocessors.NewDefaultPipeline(*settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	engine, err := services.NewHybridSearchEngine(pipeline,
		services.WithWorkers(settings.Index.Workers),
		services.WithSearchDefaults(settings.Search.Effective()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	defer engine.Release()

	store, closeStore, err := openDocumentStore(settings.Storage.Backend, home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening corpus store: %v\n", err)
		return err
	}
	defer closeStore()

	retrieval, err := services.NewRetrievalService(engine, store,
		services.WithDefaultSearchConfig(settingsService.SearchDefaults()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	// A stored corpus is re-indexed so search works without re-running index.
	ctx := context.Background()
	if n, err := store.Count(ctx); err != nil {
		logger.Warn("Counting stored corpus failed: %v", err)
	} else if n > 0 {
		if err := retrieval.Reload(ctx); err != nil {
			logger.Warn("Rebuilding index from stored corpus failed: %v", err)
		}
	}

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Retrieval: retrieval,
		Settings:  settingsService,
		Loader:    records.NewFileLoader(),
	})
	return cli.Execute()
}

// openDocumentStore returns the corpus store for backend and a func that
// releases it.
func openDocumentStore(backend domain.StorageBackend, home string) (driven.DocumentStore, func(), error) {
	switch backend {
	case domain.StorageBackendMemory:
		return memory.NewDocumentStore(), func() {}, nil
	default:
		dataDir := ""
		if home != "" {
			dataDir = filepath.Join(home, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return store.DocumentStore(), func() {
			if err := store.Close(); err != nil {
				logger.Warn("Closing corpus store: %v", err)
			}
		}, nil
	}
}

package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bryanwahyu/pwncheck/internal/application"
	appai "github.com/bryanwahyu/pwncheck/internal/application/ai"
	applookup "github.com/bryanwahyu/pwncheck/internal/application/lookup"
	"github.com/bryanwahyu/pwncheck/internal/config"
	"github.com/bryanwahyu/pwncheck/internal/infra/ai/openai"
	"github.com/bryanwahyu/pwncheck/internal/infra/hibp"
	"github.com/bryanwahyu/pwncheck/internal/infra/render/chart"
	"github.com/bryanwahyu/pwncheck/internal/infra/render/docx"
	"github.com/bryanwahyu/pwncheck/internal/infra/render/pdf"
	minioStore "github.com/bryanwahyu/pwncheck/internal/infra/storage"
)

// ConfigPath returns CONFIG_PATH or config.yaml.
func ConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "config.yaml"
}

// NewLookupService wires the infra adapters selected by cfg.
func NewLookupService(ctx context.Context, cfg *config.Config) (*applookup.Service, error) {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	svc := &applookup.Service{
		Retriever: hibp.NewClient(hibp.Config{
			BaseURL:   cfg.HIBP.BaseURL,
			APIKey:    cfg.HIBP.APIKey,
			UserAgent: cfg.HIBP.UserAgent,
		}),
		OutputDir: cfg.Output.Dir,
		Clock:     application.SystemClock{},
	}

	if cfg.AI.Enabled {
		svc.Summaries = appai.NewService(openai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL))
	}
	if cfg.Output.Chart {
		svc.Chart = chart.NewRenderer()
	}
	if cfg.Output.PDF {
		svc.Reports = append(svc.Reports, pdf.NewRenderer())
	}
	if cfg.Output.DOCX {
		svc.Reports = append(svc.Reports, docx.NewRenderer())
	}

	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return nil, fmt.Errorf("minio init: %w", err)
		}
		svc.Artifacts = store
	}

	log.Printf("lookup service ready ai=%t chart=%t reports=%d publish=%t",
		svc.Summaries != nil, svc.Chart != nil, len(svc.Reports), svc.Artifacts != nil)
	return svc, nil
}

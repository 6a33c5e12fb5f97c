package breach

import (
	"context"
	"time"
)

// Retriever port (lookup against the breach API)
type Retriever interface {
	Lookup(ctx context.Context, account string) (Result, error)
}

// ChartRenderer port. Rendering zero points writes nothing and returns "".
type ChartRenderer interface {
	RenderChart(points []ChartPoint, path string) (string, error)
}

// ReportInput is everything a report renderer consumes.
type ReportInput struct {
	LookupID    string
	Account     string
	Rows        []Row
	Summary     string
	ChartPath   string
	GeneratedAt time.Time
}

// ReportRenderer port (PDF, DOCX, ...)
type ReportRenderer interface {
	Extension() string
	RenderReport(in ReportInput, path string) error
}

// ArtifactStore port (publishes local artifacts)
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}

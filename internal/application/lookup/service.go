package lookup

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/pwncheck/internal/application"
	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

// Summarizer produces the free-text summary. Implementations must not fail;
// *ai.Service degrades generator errors to a placeholder.
type Summarizer interface {
	Summarize(ctx context.Context, account string, breaches []breach.Breach) string
}

// Service implements the lookup use-cases. Every collaborator except
// Retriever is optional; a nil one skips its step.
type Service struct {
	Retriever breach.Retriever
	Summaries Summarizer
	Chart     breach.ChartRenderer
	Reports   []breach.ReportRenderer
	Artifacts breach.ArtifactStore
	OutputDir string
	Clock     application.Clock
}

// Report is the outcome of Run.
type Report struct {
	ID           string         `json:"id"`
	Account      string         `json:"account"`
	Outcome      breach.Outcome `json:"outcome"`
	StatusCode   int            `json:"status_code,omitempty"`
	Message      string         `json:"message,omitempty"`
	Rows         []breach.Row   `json:"rows"`
	Summary      string         `json:"summary,omitempty"`
	ChartPath    string         `json:"chart_path,omitempty"`
	ReportPaths  []string       `json:"report_paths,omitempty"`
	ArtifactURLs []string       `json:"artifact_urls,omitempty"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

// Lookup runs the retriever and normalizer only.
func (s *Service) Lookup(ctx context.Context, account string) (breach.Result, []breach.Row, error) {
	account = strings.TrimSpace(account)
	res, err := s.Retriever.Lookup(ctx, account)
	if err != nil {
		return breach.Result{}, nil, err
	}
	return res, breach.Normalize(res), nil
}

// Run jalankan lookup → summary → chart → reports → publish.
// NotFound and upstream errors return a report without artifacts.
func (s *Service) Run(ctx context.Context, account string) (*Report, error) {
	account = strings.TrimSpace(account)
	res, rows, err := s.Lookup(ctx, account)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		ID:          uuid.New().String(),
		Account:     account,
		Outcome:     res.Outcome,
		StatusCode:  res.StatusCode,
		Message:     res.Message,
		Rows:        rows,
		GeneratedAt: s.now(),
	}

	switch res.Outcome {
	case breach.OutcomeNotFound:
		log.Printf("lookup id=%s account=%s outcome=not_found", rep.ID, account)
		return rep, nil
	case breach.OutcomeError:
		log.Printf("lookup id=%s account=%s outcome=error status=%d", rep.ID, account, res.StatusCode)
		return rep, nil
	}
	log.Printf("lookup id=%s account=%s outcome=found breaches=%d", rep.ID, account, len(rows))

	if s.Summaries != nil {
		rep.Summary = s.Summaries.Summarize(ctx, account, res.Breaches)
	} else {
		rep.Summary = DefaultSummary(account, rows)
	}

	var written []string
	fail := func(err error) (*Report, error) {
		for _, p := range written {
			_ = os.Remove(p)
		}
		return nil, err
	}

	if s.Chart != nil {
		chartPath := breach.ChartPath(s.OutputDir, account)
		out, err := s.Chart.RenderChart(breach.ChartPoints(rows), chartPath)
		if err != nil {
			_ = os.Remove(chartPath)
			return fail(fmt.Errorf("render chart: %w", err))
		}
		if out != "" {
			rep.ChartPath = out
			written = append(written, out)
		}
	}

	for _, r := range s.Reports {
		path := breach.ReportPath(s.OutputDir, account, r.Extension())
		in := breach.ReportInput{
			LookupID:    rep.ID,
			Account:     account,
			Rows:        rows,
			Summary:     rep.Summary,
			ChartPath:   rep.ChartPath,
			GeneratedAt: rep.GeneratedAt,
		}
		if err := r.RenderReport(in, path); err != nil {
			_ = os.Remove(path)
			return fail(fmt.Errorf("render %s report: %w", r.Extension(), err))
		}
		rep.ReportPaths = append(rep.ReportPaths, path)
		written = append(written, path)
	}

	if s.Artifacts != nil {
		for _, p := range written {
			url, err := s.Artifacts.Upload(ctx, p, breach.ObjectKey(account, p))
			if err != nil {
				return nil, fmt.Errorf("publish artifact: %w", err)
			}
			rep.ArtifactURLs = append(rep.ArtifactURLs, url)
		}
	}

	return rep, nil
}

// DefaultSummary is used when no summary generator is configured.
func DefaultSummary(account string, rows []breach.Row) string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	noun := "breaches"
	if len(rows) == 1 {
		noun = "breach"
	}
	return fmt.Sprintf("%s appears in %d known %s: %s.", account, len(rows), noun, strings.Join(names, ", "))
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

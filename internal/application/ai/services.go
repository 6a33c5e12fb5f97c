package ai

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bryanwahyu/pwncheck/internal/domain/ai"
	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

// SummaryUnavailable replaces the summary when the generator fails.
const SummaryUnavailable = "AI summary unavailable."

type Service struct {
	client ai.Client
}

func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

// Generate returns the raw generator result, wrapping failures in
// breach.ErrSummaryGeneration.
func (s *Service) Generate(ctx context.Context, account string, breaches []breach.Breach) (string, error) {
	text, err := s.client.Summarize(ctx, account, breaches)
	if err != nil {
		return "", fmt.Errorf("%w: %w", breach.ErrSummaryGeneration, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty response", breach.ErrSummaryGeneration)
	}
	return text, nil
}

// Summarize never fails: generator errors degrade to SummaryUnavailable.
func (s *Service) Summarize(ctx context.Context, account string, breaches []breach.Breach) string {
	text, err := s.Generate(ctx, account, breaches)
	if err != nil {
		if errors.Is(err, ai.ErrQuotaExceeded) {
			log.Printf("summary skipped account=%s reason=quota", account)
		} else {
			log.Printf("summary failed account=%s err=%v", account, err)
		}
		return SummaryUnavailable
	}
	return text
}

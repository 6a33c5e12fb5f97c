//go:generate mockgen -source=port.go -destination=mocks/mocks.go -package=mocks Client

package ai

import (
	"context"

	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

// Client turns breach records into a free-text summary.
type Client interface {
	Summarize(ctx context.Context, account string, breaches []breach.Breach) (string, error)
}

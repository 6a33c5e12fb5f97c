package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domai "github.com/bryanwahyu/pwncheck/internal/domain/ai"
	"github.com/bryanwahyu/pwncheck/internal/domain/ai/mocks"
	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

func TestService_Summarize(t *testing.T) {
	breaches := []breach.Breach{{Name: "Adobe", DataClasses: []string{"Emails", "Passwords"}}}

	t.Run("returns generator text", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			Summarize(gomock.Any(), "test@example.com", breaches).
			Return("Your account appeared in the Adobe breach.", nil)

		svc := NewService(client)
		assert.Equal(t, "Your account appeared in the Adobe breach.", svc.Summarize(context.Background(), "test@example.com", breaches))
	})

	t.Run("generator failure degrades to placeholder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("connection reset"))

		svc := NewService(client)
		assert.Equal(t, SummaryUnavailable, svc.Summarize(context.Background(), "a", breaches))
	})

	t.Run("quota errors degrade too", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", fmt.Errorf("%w: 429", domai.ErrQuotaExceeded))

		svc := NewService(client)
		assert.Equal(t, SummaryUnavailable, svc.Summarize(context.Background(), "a", breaches))
	})
}

func TestService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).Return("", domai.ErrQuotaExceeded)
	client.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)

	svc := NewService(client)

	_, err := svc.Generate(context.Background(), "a", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, breach.ErrSummaryGeneration)
	assert.ErrorIs(t, err, domai.ErrQuotaExceeded)

	_, err = svc.Generate(context.Background(), "a", nil)
	assert.ErrorIs(t, err, breach.ErrSummaryGeneration)
}

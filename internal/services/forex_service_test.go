package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/apperrors"
	"github.com/deb007/travelbuddy/internal/models"
)

func TestSetLoadedCreatesAndUpdates(t *testing.T) {
	svc := NewForexCardService(newTestDB(t), testConfig())
	ctx := context.Background()

	status, err := svc.SetLoaded(ctx, "myr", d("300"))
	require.NoError(t, err)
	assert.Equal(t, "MYR", status.Currency)
	assert.True(t, status.LoadedAmount.Equal(d("300")))
	assert.True(t, status.Remaining.Equal(d("300")))

	status, err = svc.SetLoaded(ctx, "MYR", d("450"))
	require.NoError(t, err)
	assert.True(t, status.LoadedAmount.Equal(d("450")))
}

func TestSetLoadedPreservesSpentCounter(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()
	svc := NewForexCardService(database, cfg)
	ctx := context.Background()

	_, err := svc.SetLoaded(ctx, "SGD", d("200"))
	require.NoError(t, err)

	expenses := NewExpenseService(database, cfg, NewRateResolver(database, cfg, nil, zap.NewNop()), zap.NewNop())
	_, err = expenses.Create(ctx, CreateExpenseInput{
		Amount:        d("60"),
		Currency:      "SGD",
		Category:      "food",
		Date:          day("2026-03-08"),
		PaymentMethod: models.PaymentForexCard,
	})
	require.NoError(t, err)

	// Topping up the card only changes the loaded side.
	status, err := svc.SetLoaded(ctx, "SGD", d("400"))
	require.NoError(t, err)
	assert.True(t, status.LoadedAmount.Equal(d("400")))
	assert.True(t, status.SpentAmount.Equal(d("60")))
	assert.True(t, status.Remaining.Equal(d("340")))
}

func TestSetLoadedValidation(t *testing.T) {
	svc := NewForexCardService(newTestDB(t), testConfig())
	ctx := context.Background()

	// The home currency carries no forex card.
	_, err := svc.SetLoaded(ctx, "INR", d("100"))
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.SetLoaded(ctx, "SGD", d("-10"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestForexCardGetAndList(t *testing.T) {
	svc := NewForexCardService(newTestDB(t), testConfig())
	ctx := context.Background()

	_, err := svc.Get(ctx, "SGD")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.SetLoaded(ctx, "SGD", d("200"))
	require.NoError(t, err)
	_, err = svc.SetLoaded(ctx, "MYR", d("300"))
	require.NoError(t, err)

	statuses, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "MYR", statuses[0].Currency)
	assert.Equal(t, "SGD", statuses[1].Currency)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deb007/travelbuddy/internal/apperrors"
)

func TestSetCapCreatesAndUpdates(t *testing.T) {
	database := newTestDB(t)
	svc := NewBudgetService(database, testConfig())
	ctx := context.Background()

	status, err := svc.SetCap(ctx, "sgd", d("1000"))
	require.NoError(t, err)
	assert.Equal(t, "SGD", status.Currency)
	assert.True(t, status.MaxAmount.Equal(d("1000")))
	assert.True(t, status.SpentAmount.IsZero())

	status, err = svc.SetCap(ctx, "SGD", d("1500"))
	require.NoError(t, err)
	assert.True(t, status.MaxAmount.Equal(d("1500")))
}

func TestSetCapPreservesSpentCounter(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()
	svc := NewBudgetService(database, cfg)
	ctx := context.Background()

	// Spend first so the budget row exists with a non-zero counter.
	expenses := NewExpenseService(database, cfg, NewRateResolver(database, cfg, nil, zap.NewNop()), zap.NewNop())
	_, err := expenses.Create(ctx, cashExpense("250", "INR", "2026-03-08"))
	require.NoError(t, err)

	status, err := svc.SetCap(ctx, "INR", d("2000"))
	require.NoError(t, err)
	assert.True(t, status.MaxAmount.Equal(d("2000")))
	assert.True(t, status.SpentAmount.Equal(d("250")), "re-setting the cap must not reset spend")
}

func TestSetCapValidation(t *testing.T) {
	svc := NewBudgetService(newTestDB(t), testConfig())
	ctx := context.Background()

	_, err := svc.SetCap(ctx, "USD", d("100"))
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.SetCap(ctx, "SGD", d("-1"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestBudgetGetAndList(t *testing.T) {
	svc := NewBudgetService(newTestDB(t), testConfig())
	ctx := context.Background()

	_, err := svc.Get(ctx, "SGD")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.SetCap(ctx, "SGD", d("1000"))
	require.NoError(t, err)
	_, err = svc.SetCap(ctx, "INR", d("50000"))
	require.NoError(t, err)

	statuses, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "INR", statuses[0].Currency)
	assert.Equal(t, "SGD", statuses[1].Currency)
}

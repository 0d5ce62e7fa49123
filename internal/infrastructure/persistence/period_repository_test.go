package persistence

import (
	"context"
	"testing"

	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPeriodRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPeriodRepository(db)
	ctx := context.Background()

	period := testPeriod(t)
	require.NoError(t, repo.Create(ctx, period))

	t.Run("find open", func(t *testing.T) {
		open, err := repo.FindOpen(ctx)
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, period.ID, open[0].ID)
	})

	t.Run("close is conditional on open status", func(t *testing.T) {
		require.NoError(t, period.Close(adminActor()))
		require.NoError(t, repo.SaveClose(ctx, period))

		found, err := repo.FindByID(ctx, period.ID)
		require.NoError(t, err)
		assert.Equal(t, expense.PeriodStatusClosed, found.Status)

		open, err := repo.FindOpen(ctx)
		require.NoError(t, err)
		assert.Empty(t, open)

		// A stale close finds no open row
		err = repo.SaveClose(ctx, period)
		assert.ErrorIs(t, err, shared.ErrConcurrentUpdate)
	})

	t.Run("find all paginated", func(t *testing.T) {
		periods, total, err := repo.FindAll(ctx, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, periods, 1)
	})
}

func TestGormCategoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	meal := testMealCategory(t)
	require.NoError(t, repo.Create(ctx, meal))

	overnight, err := expense.NewCategory("Découcher", decimal.NewFromInt(45),
		expense.ApplicabilityHeavy, expense.CategoryKindBonus, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, overnight))

	t.Run("find active ordered by display order", func(t *testing.T) {
		categories, err := repo.FindActive(ctx, nil)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Repas", categories[0].Name)
		assert.Equal(t, "Découcher", categories[1].Name)
	})

	t.Run("find active by kind", func(t *testing.T) {
		kind := expense.CategoryKindBonus
		categories, err := repo.FindActive(ctx, &kind)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Découcher", categories[0].Name)
	})

	t.Run("deactivated category drops out of active list", func(t *testing.T) {
		meal.Deactivate()
		require.NoError(t, repo.Update(ctx, meal))

		categories, err := repo.FindActive(ctx, nil)
		require.NoError(t, err)
		require.Len(t, categories, 1)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("default amount survives round trip", func(t *testing.T) {
		found, err := repo.FindByID(ctx, overnight.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(45).Equal(found.DefaultAmount))
	})
}

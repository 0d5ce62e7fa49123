package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminActor() identity.Actor {
	return identity.Actor{ProfileID: uuid.New(), Role: identity.RoleAdmin}
}

func officeActor() identity.Actor {
	return identity.Actor{ProfileID: uuid.New(), Role: identity.RoleOffice}
}

func testPeriod(t *testing.T) *expense.ExpensePeriod {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	period, err := expense.NewExpensePeriod(adminActor(), start, end)
	require.NoError(t, err)
	return period
}

func testMealCategory(t *testing.T) *expense.Category {
	t.Helper()
	category, err := expense.NewCategory("Repas", decimal.NewFromInt(10), expense.ApplicabilityAll, expense.CategoryKindExpense, 1)
	require.NoError(t, err)
	return category
}

// buildDraftWithLines saves a draft report with two checked meal days
func buildDraftWithLines(t *testing.T, repo *GormReportRepository, ctx context.Context) (*expense.ExpenseReport, identity.Actor) {
	t.Helper()

	period := testPeriod(t)
	category := testMealCategory(t)
	ownerID := uuid.New()
	owner := identity.Actor{ProfileID: ownerID, Role: identity.RoleDriver}

	report, err := expense.NewExpenseReport(ownerID, period.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, report))

	grid := expense.NewGrid(period, []*expense.Category{category})
	require.NoError(t, grid.ToggleExpense("2026-01-05", category.ID))
	require.NoError(t, grid.ToggleExpense("2026-01-06", category.ID))
	require.NoError(t, report.SaveDraft(owner, grid))
	require.NoError(t, repo.SaveDraft(ctx, report))

	return report, owner
}

func TestGormReportRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	periodID := uuid.New()

	report, err := expense.NewExpenseReport(ownerID, periodID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, report))

	t.Run("one report per owner per period", func(t *testing.T) {
		dup, err := expense.NewExpenseReport(ownerID, periodID)
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("same owner different period is fine", func(t *testing.T) {
		other, err := expense.NewExpenseReport(ownerID, uuid.New())
		require.NoError(t, err)
		assert.NoError(t, repo.Create(ctx, other))
	})
}

func TestGormReportRepository_SaveDraftAndReload(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	report, _ := buildDraftWithLines(t, repo, ctx)

	found, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.ReportStatusDraft, found.Status)
	assert.Len(t, found.Lines, 2)
	assert.True(t, decimal.NewFromInt(20).Equal(found.GrandTotal))
}

func TestGormReportRepository_SaveTransition(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	t.Run("submit persists status and totals", func(t *testing.T) {
		report, owner := buildDraftWithLines(t, repo, ctx)
		require.NoError(t, report.Submit(owner))
		require.NoError(t, repo.SaveTransition(ctx, report, expense.ReportStatusDraft))

		found, err := repo.FindByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, expense.ReportStatusSubmitted, found.Status)
		assert.True(t, decimal.NewFromInt(20).Equal(found.GrandTotal))
	})

	t.Run("racing transitions lose with concurrent modification", func(t *testing.T) {
		report, owner := buildDraftWithLines(t, repo, ctx)
		require.NoError(t, report.Submit(owner))
		require.NoError(t, repo.SaveTransition(ctx, report, expense.ReportStatusDraft))

		// A second caller still holding the draft copy
		stale, err := repo.FindByID(ctx, report.ID)
		require.NoError(t, err)
		require.NoError(t, stale.Validate(officeActor()))
		require.NoError(t, repo.SaveTransition(ctx, stale, expense.ReportStatusSubmitted))

		// First validator raced and already won; replay must fail
		err = repo.SaveTransition(ctx, stale, expense.ReportStatusSubmitted)
		assert.ErrorIs(t, err, shared.ErrConcurrentUpdate)
	})
}

func TestGormReportRepository_SaveCorrection(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	report, owner := buildDraftWithLines(t, repo, ctx)
	require.NoError(t, report.Submit(owner))
	require.NoError(t, repo.SaveTransition(ctx, report, expense.ReportStatusDraft))

	reloaded, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)

	correction, err := expense.NewCorrection(reloaded.ID, officeActor().ProfileID,
		"note", "", "receipt missing for 05/01", "checked with the driver")
	require.NoError(t, err)

	require.NoError(t, reloaded.Correct(officeActor(), []*expense.Correction{correction}))
	require.NoError(t, repo.SaveCorrection(ctx, reloaded, expense.ReportStatusSubmitted, []*expense.Correction{correction}))

	t.Run("status and history persisted together", func(t *testing.T) {
		found, err := repo.FindByID(ctx, reloaded.ID)
		require.NoError(t, err)
		assert.Equal(t, expense.ReportStatusCorrected, found.Status)

		history, err := repo.ListCorrections(ctx, reloaded.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "receipt missing for 05/01", history[0].NewValue)
	})
}

func TestGormReportRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	report, _ := buildDraftWithLines(t, repo, ctx)
	_, _ = buildDraftWithLines(t, repo, ctx)

	t.Run("filter by owner", func(t *testing.T) {
		reports, total, err := repo.FindAll(ctx, expense.NewReportFilter().WithOwner(report.OwnerID))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, reports, 1)
	})

	t.Run("filter by status", func(t *testing.T) {
		_, total, err := repo.FindAll(ctx, expense.NewReportFilter().WithStatus(expense.ReportStatusDraft))
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})
}

func TestGormDisputeRepository(t *testing.T) {
	db := setupTestDB(t)
	reportRepo := NewGormReportRepository(db)
	repo := NewGormDisputeRepository(db)
	ctx := context.Background()

	reloaded, owner := correctedReport(t, reportRepo, ctx)

	dispute, err := reloaded.OpenDispute(owner, "Je conteste la correction", false)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, dispute))

	t.Run("open dispute detected", func(t *testing.T) {
		open, err := repo.HasOpenDispute(ctx, reloaded.ID)
		require.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("resolution is conditional on open status", func(t *testing.T) {
		require.NoError(t, dispute.Resolve(officeActor()))
		require.NoError(t, repo.SaveResolution(ctx, dispute))

		open, err := repo.HasOpenDispute(ctx, reloaded.ID)
		require.NoError(t, err)
		assert.False(t, open)

		// Replaying the resolution finds no open row
		err = repo.SaveResolution(ctx, dispute)
		assert.ErrorIs(t, err, shared.ErrConcurrentUpdate)
	})

	t.Run("history newest first", func(t *testing.T) {
		disputes, err := repo.FindByReport(ctx, reloaded.ID)
		require.NoError(t, err)
		require.Len(t, disputes, 1)
		assert.Equal(t, expense.DisputeStatusResolved, disputes[0].Status)
	})
}

// correctedReport drives a report through submit and correction so a
// dispute can be opened on it
func correctedReport(t *testing.T, reportRepo *GormReportRepository, ctx context.Context) (*expense.ExpenseReport, identity.Actor) {
	t.Helper()

	report, owner := buildDraftWithLines(t, reportRepo, ctx)
	require.NoError(t, report.Submit(owner))
	require.NoError(t, reportRepo.SaveTransition(ctx, report, expense.ReportStatusDraft))

	reloaded, err := reportRepo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	correction, err := expense.NewCorrection(reloaded.ID, officeActor().ProfileID, "note", "", "fixed", "")
	require.NoError(t, err)
	require.NoError(t, reloaded.Correct(officeActor(), []*expense.Correction{correction}))
	require.NoError(t, reportRepo.SaveCorrection(ctx, reloaded, expense.ReportStatusSubmitted, []*expense.Correction{correction}))

	return reloaded, owner
}

func TestGormDisputeRepository_SingleOpenDispute(t *testing.T) {
	db := setupTestDB(t)
	reportRepo := NewGormReportRepository(db)
	repo := NewGormDisputeRepository(db)
	ctx := context.Background()

	report, owner := correctedReport(t, reportRepo, ctx)

	first, err := report.OpenDispute(owner, "Je conteste la correction", false)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	t.Run("racing open loses at the index", func(t *testing.T) {
		// Both callers passed the advisory HasOpenDispute check before
		// either insert landed; the second insert must still fail.
		second, err := report.OpenDispute(owner, "Deuxième contestation", false)
		require.NoError(t, err)

		err = repo.Create(ctx, second)
		assert.ErrorIs(t, err, shared.ErrDuplicateDispute)

		disputes, err := repo.FindByReport(ctx, report.ID)
		require.NoError(t, err)
		assert.Len(t, disputes, 1)
	})

	t.Run("resolved dispute frees the slot", func(t *testing.T) {
		require.NoError(t, first.Resolve(officeActor()))
		require.NoError(t, repo.SaveResolution(ctx, first))

		next, err := report.OpenDispute(owner, "Nouvelle contestation", false)
		require.NoError(t, err)
		assert.NoError(t, repo.Create(ctx, next))

		disputes, err := repo.FindByReport(ctx, report.ID)
		require.NoError(t, err)
		assert.Len(t, disputes, 2)
	})

	t.Run("different report is unaffected", func(t *testing.T) {
		other, otherOwner := correctedReport(t, reportRepo, ctx)
		dispute, err := other.OpenDispute(otherOwner, "Je conteste", false)
		require.NoError(t, err)
		assert.NoError(t, repo.Create(ctx, dispute))
	})
}

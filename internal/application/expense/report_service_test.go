package expense

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportFixture struct {
	service      *ReportService
	reportRepo   *MockReportRepository
	periodRepo   *MockPeriodRepository
	categoryRepo *MockCategoryRepository
	disputeRepo  *MockDisputeRepository
	profileRepo  *MockProfileRepository
	publisher    *recordingPublisher
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		reportRepo:   new(MockReportRepository),
		periodRepo:   new(MockPeriodRepository),
		categoryRepo: new(MockCategoryRepository),
		disputeRepo:  new(MockDisputeRepository),
		profileRepo:  new(MockProfileRepository),
		publisher:    &recordingPublisher{},
	}
	f.service = NewReportService(f.reportRepo, f.periodRepo, f.categoryRepo, f.disputeRepo, f.profileRepo, zap.NewNop())
	f.service.SetEventPublisher(f.publisher)
	return f
}

func heavyDriverProfile(t *testing.T, actor identity.Actor) *identity.Profile {
	t.Helper()
	profile, err := identity.NewProfile("Garnier", "Paul", "paul.garnier@transport.example", "Password123", identity.RoleDriver, identity.VehicleProfileHeavy)
	require.NoError(t, err)
	profile.ID = actor.ProfileID
	profile.ClearDomainEvents()
	return profile
}

func draftReport(t *testing.T, owner identity.Actor, periodID uuid.UUID) *expense.ExpenseReport {
	t.Helper()
	report, err := expense.NewExpenseReport(owner.ProfileID, periodID)
	require.NoError(t, err)
	report.ClearDomainEvents()
	return report
}

func submittedReport(t *testing.T, owner identity.Actor, periodID uuid.UUID) *expense.ExpenseReport {
	t.Helper()
	report := draftReport(t, owner, periodID)
	require.NoError(t, report.Submit(owner))
	report.ClearDomainEvents()
	return report
}

func correctedReport(t *testing.T, owner identity.Actor, deciderID uuid.UUID, periodID uuid.UUID) *expense.ExpenseReport {
	t.Helper()
	report := submittedReport(t, owner, periodID)
	correction, err := expense.NewCorrection(report.ID, deciderID, "comment", "", "Justificatif manquant", "")
	require.NoError(t, err)
	decider := identity.Actor{ProfileID: deciderID, Role: identity.RoleOffice}
	require.NoError(t, report.Correct(decider, []*expense.Correction{correction}))
	report.ClearDomainEvents()
	return report
}

func TestReportService_Create(t *testing.T) {
	t.Run("driver creates a report in an open period", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)

		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*expense.ExpenseReport")).Return(nil)

		dto, err := f.service.Create(context.Background(), driver, period.ID)

		require.NoError(t, err)
		assert.Equal(t, driver.ProfileID, dto.OwnerID)
		assert.Equal(t, "draft", dto.Status)
		f.reportRepo.AssertExpectations(t)
	})

	t.Run("closed period rejects new reports", func(t *testing.T) {
		f := newReportFixture()
		period := marchPeriod(t)
		require.NoError(t, period.Close(adminActor()))

		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)

		_, err := f.service.Create(context.Background(), driverActor(), period.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PERIOD_CLOSED", domainErr.Code)
		f.reportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("one report per owner and period", func(t *testing.T) {
		f := newReportFixture()
		period := marchPeriod(t)

		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
		f.reportRepo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := f.service.Create(context.Background(), driverActor(), period.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "REPORT_EXISTS", domainErr.Code)
	})
}

func TestReportService_SaveDraft(t *testing.T) {
	t.Run("toggled cells capture the catalog amount", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := draftReport(t, driver, period.ID)
		meal := mealCategory(t)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
		f.profileRepo.On("FindByID", mock.Anything, driver.ProfileID).Return(heavyDriverProfile(t, driver), nil)
		f.categoryRepo.On("FindActive", mock.Anything, (*expense.CategoryKind)(nil)).Return([]*expense.Category{meal}, nil)
		f.reportRepo.On("SaveDraft", mock.Anything, report).Return(nil)

		grid, err := f.service.SaveDraft(context.Background(), driver, SaveDraftInput{
			ReportID: report.ID,
			ExpenseCells: []ExpenseCellInput{
				{Day: "2026-03-02", CategoryID: meal.ID, Checked: true},
				{Day: "2026-03-03", CategoryID: meal.ID, Checked: true},
			},
		})

		require.NoError(t, err)
		assert.True(t, grid.Totals.ExpenseSubtotal.Equal(decimal.NewFromFloat(31.00)))
		require.Len(t, report.Lines, 2)
		assert.True(t, report.Lines[0].Amount.Equal(decimal.NewFromFloat(15.50)))
		f.reportRepo.AssertExpectations(t)
	})

	t.Run("only the owner edits the draft", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := draftReport(t, driver, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)

		_, err := f.service.SaveDraft(context.Background(), officeActor(), SaveDraftInput{ReportID: report.ID})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.reportRepo.AssertNotCalled(t, "SaveDraft", mock.Anything, mock.Anything)
	})

	t.Run("day outside the period is rejected", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := draftReport(t, driver, period.ID)
		meal := mealCategory(t)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
		f.profileRepo.On("FindByID", mock.Anything, driver.ProfileID).Return(heavyDriverProfile(t, driver), nil)
		f.categoryRepo.On("FindActive", mock.Anything, (*expense.CategoryKind)(nil)).Return([]*expense.Category{meal}, nil)

		_, err := f.service.SaveDraft(context.Background(), driver, SaveDraftInput{
			ReportID:     report.ID,
			ExpenseCells: []ExpenseCellInput{{Day: "2026-04-01", CategoryID: meal.ID, Checked: true}},
		})

		assert.ErrorIs(t, err, shared.ErrInvalidDay)
	})

	t.Run("light-only category stays off a heavy driver grid", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := draftReport(t, driver, period.ID)

		lightOnly, err := expense.NewCategory("Indemnité VL", decimal.NewFromFloat(9), expense.ApplicabilityLight, expense.CategoryKindExpense, 5)
		require.NoError(t, err)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
		f.profileRepo.On("FindByID", mock.Anything, driver.ProfileID).Return(heavyDriverProfile(t, driver), nil)
		f.categoryRepo.On("FindActive", mock.Anything, (*expense.CategoryKind)(nil)).Return([]*expense.Category{lightOnly}, nil)

		_, err = f.service.SaveDraft(context.Background(), driver, SaveDraftInput{
			ReportID:     report.ID,
			ExpenseCells: []ExpenseCellInput{{Day: "2026-03-02", CategoryID: lightOnly.ID, Checked: true}},
		})

		assert.ErrorIs(t, err, shared.ErrInvalidCategory)
	})

	t.Run("closed period freezes draft edits", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := draftReport(t, driver, period.ID)
		require.NoError(t, period.Close(adminActor()))

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)

		_, err := f.service.SaveDraft(context.Background(), driver, SaveDraftInput{ReportID: report.ID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PERIOD_CLOSED", domainErr.Code)
		f.reportRepo.AssertNotCalled(t, "SaveDraft", mock.Anything, mock.Anything)
	})
}

func TestReportService_Submit(t *testing.T) {
	t.Run("owner submits and the event goes out", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := draftReport(t, driver, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
		f.reportRepo.On("SaveTransition", mock.Anything, report, expense.ReportStatusDraft).Return(nil)

		dto, err := f.service.Submit(context.Background(), driver, report.ID)

		require.NoError(t, err)
		assert.Equal(t, "submitted", dto.Status)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, expense.EventTypeReportSubmitted, f.publisher.events[0].EventType())
	})

	t.Run("decider cannot submit on the owner's behalf", func(t *testing.T) {
		f := newReportFixture()
		period := marchPeriod(t)
		report := draftReport(t, driverActor(), period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)

		_, err := f.service.Submit(context.Background(), officeActor(), report.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("closed period blocks submission", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := draftReport(t, driver, period.ID)
		require.NoError(t, period.Close(adminActor()))

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)

		_, err := f.service.Submit(context.Background(), driver, report.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PERIOD_CLOSED", domainErr.Code)
		f.reportRepo.AssertNotCalled(t, "SaveTransition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race surfaces unchanged", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := draftReport(t, driver, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.periodRepo.On("FindByID", mock.Anything, period.ID).Return(period, nil)
		f.reportRepo.On("SaveTransition", mock.Anything, report, expense.ReportStatusDraft).Return(shared.ErrConcurrentUpdate)

		_, err := f.service.Submit(context.Background(), driver, report.ID)

		assert.ErrorIs(t, err, shared.ErrConcurrentUpdate)
		assert.Empty(t, f.publisher.events)
	})
}

func TestReportService_Validate(t *testing.T) {
	t.Run("office validates a submitted report", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		office := officeActor()
		period := marchPeriod(t)
		report := submittedReport(t, driver, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.reportRepo.On("SaveTransition", mock.Anything, report, expense.ReportStatusSubmitted).Return(nil)

		dto, err := f.service.Validate(context.Background(), office, report.ID)

		require.NoError(t, err)
		assert.Equal(t, "validated", dto.Status)
		require.NotNil(t, dto.ValidatorID)
		assert.Equal(t, office.ProfileID, *dto.ValidatorID)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, expense.EventTypeReportValidated, f.publisher.events[0].EventType())
	})

	t.Run("driver cannot validate", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := submittedReport(t, driver, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)

		_, err := f.service.Validate(context.Background(), driver, report.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestReportService_Correct(t *testing.T) {
	t.Run("cell correction rewrites the line amount", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		office := officeActor()
		period := marchPeriod(t)
		meal := mealCategory(t)

		report := draftReport(t, driver, period.ID)
		grid := expense.NewGrid(period, []*expense.Category{meal})
		require.NoError(t, grid.ToggleExpense("2026-03-02", meal.ID))
		require.NoError(t, report.SaveDraft(driver, grid))
		require.NoError(t, report.Submit(driver))
		report.ClearDomainEvents()

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.reportRepo.On("SaveCorrection", mock.Anything, report, expense.ReportStatusSubmitted, mock.AnythingOfType("[]*expense.Correction")).Return(nil)

		dto, err := f.service.Correct(context.Background(), office, CorrectInput{
			ReportID: report.ID,
			Corrections: []CorrectionInput{{
				Field:      "amount",
				OldValue:   "15.5",
				NewValue:   "12",
				Note:       "Plafond convention collective",
				Day:        "2026-03-02",
				CategoryID: meal.ID,
			}},
		})

		require.NoError(t, err)
		assert.Equal(t, "corrected", dto.Status)
		assert.True(t, dto.ExpenseSubtotal.Equal(decimal.NewFromInt(12)))
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, expense.EventTypeReportCorrected, f.publisher.events[0].EventType())
	})

	t.Run("a correction needs at least one field change", func(t *testing.T) {
		f := newReportFixture()
		period := marchPeriod(t)
		report := submittedReport(t, driverActor(), period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)

		_, err := f.service.Correct(context.Background(), officeActor(), CorrectInput{ReportID: report.ID})

		assert.ErrorIs(t, err, shared.ErrEmptyCorrection)
	})

	t.Run("identical old and new values are rejected", func(t *testing.T) {
		f := newReportFixture()
		period := marchPeriod(t)
		report := submittedReport(t, driverActor(), period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)

		_, err := f.service.Correct(context.Background(), officeActor(), CorrectInput{
			ReportID:    report.ID,
			Corrections: []CorrectionInput{{Field: "comment", OldValue: "x", NewValue: "x"}},
		})

		assert.ErrorIs(t, err, shared.ErrEmptyCorrection)
	})
}

func TestReportService_Disputes(t *testing.T) {
	t.Run("owner disputes a corrected report", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		office := officeActor()
		period := marchPeriod(t)
		report := correctedReport(t, driver, office.ProfileID, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.disputeRepo.On("HasOpenDispute", mock.Anything, report.ID).Return(false, nil)
		f.disputeRepo.On("Create", mock.Anything, mock.AnythingOfType("*expense.Dispute")).Return(nil)

		dto, err := f.service.OpenDispute(context.Background(), driver, OpenDisputeInput{
			ReportID: report.ID,
			Message:  "Le découcher du 12 mars était bien justifié",
		})

		require.NoError(t, err)
		assert.Equal(t, "open", dto.Status)
		assert.Equal(t, driver.ProfileID, dto.RaisedBy)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, expense.EventTypeDisputeOpened, f.publisher.events[0].EventType())
	})

	t.Run("one open dispute at a time", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		office := officeActor()
		period := marchPeriod(t)
		report := correctedReport(t, driver, office.ProfileID, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.disputeRepo.On("HasOpenDispute", mock.Anything, report.ID).Return(true, nil)

		_, err := f.service.OpenDispute(context.Background(), driver, OpenDisputeInput{
			ReportID: report.ID,
			Message:  "Toujours pas d'accord",
		})

		assert.ErrorIs(t, err, shared.ErrDuplicateDispute)
		f.disputeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate detected at insert surfaces unchanged", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		office := officeActor()
		period := marchPeriod(t)
		report := correctedReport(t, driver, office.ProfileID, period.ID)

		// A concurrent open slipped in between the advisory check and
		// the insert; the unique index rejects ours.
		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.disputeRepo.On("HasOpenDispute", mock.Anything, report.ID).Return(false, nil)
		f.disputeRepo.On("Create", mock.Anything, mock.AnythingOfType("*expense.Dispute")).Return(shared.ErrDuplicateDispute)

		_, err := f.service.OpenDispute(context.Background(), driver, OpenDisputeInput{
			ReportID: report.ID,
			Message:  "Contestation simultanée",
		})

		assert.ErrorIs(t, err, shared.ErrDuplicateDispute)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("only a corrected report can be disputed", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		report := submittedReport(t, driver, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.disputeRepo.On("HasOpenDispute", mock.Anything, report.ID).Return(false, nil)

		_, err := f.service.OpenDispute(context.Background(), driver, OpenDisputeInput{
			ReportID: report.ID,
			Message:  "Contestation",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})

	t.Run("office resolves a dispute", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		office := officeActor()
		period := marchPeriod(t)
		report := correctedReport(t, driver, office.ProfileID, period.ID)

		f.reportRepo.On("FindByID", mock.Anything, report.ID).Return(report, nil)
		f.disputeRepo.On("HasOpenDispute", mock.Anything, report.ID).Return(false, nil)
		f.disputeRepo.On("Create", mock.Anything, mock.AnythingOfType("*expense.Dispute")).Return(nil)

		opened, err := f.service.OpenDispute(context.Background(), driver, OpenDisputeInput{
			ReportID: report.ID,
			Message:  "Le découcher du 12 mars était bien justifié",
		})
		require.NoError(t, err)
		f.publisher.events = nil

		dispute := &expense.Dispute{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			ReportID:          report.ID,
			RaisedBy:          driver.ProfileID,
			Message:           opened.Message,
			Status:            expense.DisputeStatusOpen,
		}
		dispute.ID = opened.ID
		f.disputeRepo.On("FindByID", mock.Anything, opened.ID).Return(dispute, nil)
		f.disputeRepo.On("SaveResolution", mock.Anything, dispute).Return(nil)

		resolved, err := f.service.ResolveDispute(context.Background(), office, opened.ID)

		require.NoError(t, err)
		assert.Equal(t, "resolved", resolved.Status)
		require.NotNil(t, resolved.ResolvedBy)
		assert.Equal(t, office.ProfileID, *resolved.ResolvedBy)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, expense.EventTypeDisputeResolved, f.publisher.events[0].EventType())
	})

	t.Run("driver cannot resolve a dispute", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()

		dispute := &expense.Dispute{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			ReportID:          uuid.New(),
			RaisedBy:          driver.ProfileID,
			Message:           "Contestation",
			Status:            expense.DisputeStatusOpen,
		}
		f.disputeRepo.On("FindByID", mock.Anything, dispute.ID).Return(dispute, nil)

		_, err := f.service.ResolveDispute(context.Background(), driver, dispute.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestReportService_Visibility(t *testing.T) {
	t.Run("driver sees only own reports", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()
		period := marchPeriod(t)
		other := draftReport(t, driverActor(), period.ID)

		f.reportRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

		_, err := f.service.GetByID(context.Background(), driver, other.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("driver list is forced onto own reports", func(t *testing.T) {
		f := newReportFixture()
		driver := driverActor()

		f.reportRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter expense.ReportFilter) bool {
			return filter.OwnerID != nil && *filter.OwnerID == driver.ProfileID
		})).Return([]*expense.ExpenseReport{}, int64(0), nil)

		_, err := f.service.List(context.Background(), driver, expense.NewReportFilter())

		require.NoError(t, err)
		f.reportRepo.AssertExpectations(t)
	})
}

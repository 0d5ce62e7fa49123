package expense

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/expense"
	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) Create(ctx context.Context, period *expense.ExpensePeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) SaveClose(ctx context.Context, period *expense.ExpensePeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.ExpensePeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.ExpensePeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOpen(ctx context.Context) ([]*expense.ExpensePeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.ExpensePeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindAll(ctx context.Context, page, pageSize int) ([]*expense.ExpensePeriod, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*expense.ExpensePeriod), args.Get(1).(int64), args.Error(2)
}

func (m *MockPeriodRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *expense.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *expense.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindActive(ctx context.Context, kind *expense.CategoryKind) ([]*expense.Category, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]*expense.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Category), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *expense.ExpenseReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) SaveDraft(ctx context.Context, report *expense.ExpenseReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) SaveTransition(ctx context.Context, report *expense.ExpenseReport, expected expense.ReportStatus) error {
	args := m.Called(ctx, report, expected)
	return args.Error(0)
}

func (m *MockReportRepository) SaveCorrection(ctx context.Context, report *expense.ExpenseReport, expected expense.ReportStatus, corrections []*expense.Correction) error {
	args := m.Called(ctx, report, expected, corrections)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.ExpenseReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.ExpenseReport), args.Error(1)
}

func (m *MockReportRepository) FindByOwnerAndPeriod(ctx context.Context, ownerID, periodID uuid.UUID) (*expense.ExpenseReport, error) {
	args := m.Called(ctx, ownerID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.ExpenseReport), args.Error(1)
}

func (m *MockReportRepository) FindAll(ctx context.Context, filter expense.ReportFilter) ([]*expense.ExpenseReport, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*expense.ExpenseReport), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportRepository) ListCorrections(ctx context.Context, reportID uuid.UUID) ([]*expense.Correction, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Correction), args.Error(1)
}

func (m *MockReportRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockDisputeRepository struct {
	mock.Mock
}

func (m *MockDisputeRepository) Create(ctx context.Context, dispute *expense.Dispute) error {
	args := m.Called(ctx, dispute)
	return args.Error(0)
}

func (m *MockDisputeRepository) SaveResolution(ctx context.Context, dispute *expense.Dispute) error {
	args := m.Called(ctx, dispute)
	return args.Error(0)
}

func (m *MockDisputeRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Dispute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Dispute), args.Error(1)
}

func (m *MockDisputeRepository) FindByReport(ctx context.Context, reportID uuid.UUID) ([]*expense.Dispute, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Dispute), args.Error(1)
}

func (m *MockDisputeRepository) HasOpenDispute(ctx context.Context, reportID uuid.UUID) (bool, error) {
	args := m.Called(ctx, reportID)
	return args.Bool(0), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *identity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*identity.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context, filter identity.ProfileFilter) ([]*identity.Profile, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*identity.Profile), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// recordingPublisher captures published domain events for assertions
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

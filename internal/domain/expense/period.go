package expense

import (
	"fmt"
	"time"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
)

// DayFormat is the ISO day key used throughout the expense grids
const DayFormat = "2006-01-02"

// PeriodStatus represents the status of an expense period
type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "open"
	PeriodStatusClosed PeriodStatus = "closed"
)

// IsValid checks if the status is a valid PeriodStatus
func (s PeriodStatus) IsValid() bool {
	return s == PeriodStatusOpen || s == PeriodStatusClosed
}

// String returns the string representation of PeriodStatus
func (s PeriodStatus) String() string {
	return string(s)
}

// ExpensePeriod is the date window expense reports are filed against.
// Zero or several open periods are tolerated states; callers handle
// "no open period" themselves.
type ExpensePeriod struct {
	shared.BaseAggregateRoot
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
}

// NewExpensePeriod creates a new open period. Admin only.
func NewExpensePeriod(actor identity.Actor, startDate, endDate time.Time) (*ExpensePeriod, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "End date cannot precede start date")
	}

	return &ExpensePeriod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StartDate:         truncateToDay(startDate),
		EndDate:           truncateToDay(endDate),
		Status:            PeriodStatusOpen,
	}, nil
}

// Close closes the period. Admin only; closing a closed period fails.
func (p *ExpensePeriod) Close(actor identity.Actor) error {
	if actor.Role != identity.RoleAdmin {
		return shared.ErrForbidden
	}
	if p.Status != PeriodStatusOpen {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot close period in %s status", p.Status))
	}

	p.Status = PeriodStatusClosed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Days returns every calendar day of the period inclusive as ISO day keys.
// Weekends and holidays are ordinary days here.
func (p *ExpensePeriod) Days() []string {
	days := make([]string, 0)
	for d := p.StartDate; !d.After(p.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayFormat))
	}
	return days
}

// ContainsDay returns true if the ISO day key falls inside the period
func (p *ExpensePeriod) ContainsDay(day string) bool {
	d, err := time.Parse(DayFormat, day)
	if err != nil {
		return false
	}
	d = truncateToDay(d)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

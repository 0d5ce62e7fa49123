package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/absence"
)

// AbsenceRequestModel is the persistence model for the AbsenceRequest aggregate.
type AbsenceRequestModel struct {
	AggregateModel
	RequesterID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Type            absence.AbsenceType   `gorm:"type:varchar(30);not null"`
	LastWorkedDay   time.Time             `gorm:"not null"`
	ReturnDay       time.Time             `gorm:"not null"`
	Comment         string                `gorm:"type:text"`
	Status          absence.RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string                `gorm:"type:text"`
	ApproverID      *uuid.UUID            `gorm:"type:uuid;index"`
	DecidedAt       *time.Time
	LastMinute      bool `gorm:"not null;default:false"`

	Alternatives []AbsenceAlternativeModel `gorm:"foreignKey:RequestID"`
}

// TableName returns the table name for GORM
func (AbsenceRequestModel) TableName() string {
	return "absence_requests"
}

// AbsenceAlternativeModel stores an alternative date range proposed on a request.
type AbsenceAlternativeModel struct {
	RequestID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position      int       `gorm:"primaryKey"`
	LastWorkedDay time.Time `gorm:"not null"`
	ReturnDay     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AbsenceAlternativeModel) TableName() string {
	return "absence_alternatives"
}

// ToDomain converts the persistence model to a domain AbsenceRequest.
func (m *AbsenceRequestModel) ToDomain() *absence.AbsenceRequest {
	alternatives := make([]absence.DateRange, len(m.Alternatives))
	for i, alt := range m.Alternatives {
		alternatives[i] = absence.DateRange{
			LastWorkedDay: alt.LastWorkedDay,
			ReturnDay:     alt.ReturnDay,
		}
	}

	return &absence.AbsenceRequest{
		BaseAggregateRoot: m.ToAggregateRoot(),
		RequesterID:       m.RequesterID,
		Type:              m.Type,
		Range: absence.DateRange{
			LastWorkedDay: m.LastWorkedDay,
			ReturnDay:     m.ReturnDay,
		},
		Alternatives:    alternatives,
		Comment:         m.Comment,
		Status:          m.Status,
		RejectionReason: m.RejectionReason,
		ApproverID:      m.ApproverID,
		DecidedAt:       m.DecidedAt,
		LastMinute:      m.LastMinute,
	}
}

// FromDomain populates the persistence model from a domain AbsenceRequest.
func (m *AbsenceRequestModel) FromDomain(r *absence.AbsenceRequest) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.RequesterID = r.RequesterID
	m.Type = r.Type
	m.LastWorkedDay = r.Range.LastWorkedDay
	m.ReturnDay = r.Range.ReturnDay
	m.Comment = r.Comment
	m.Status = r.Status
	m.RejectionReason = r.RejectionReason
	m.ApproverID = r.ApproverID
	m.DecidedAt = r.DecidedAt
	m.LastMinute = r.LastMinute

	m.Alternatives = make([]AbsenceAlternativeModel, len(r.Alternatives))
	for i, alt := range r.Alternatives {
		m.Alternatives[i] = AbsenceAlternativeModel{
			RequestID:     r.ID,
			Position:      i,
			LastWorkedDay: alt.LastWorkedDay,
			ReturnDay:     alt.ReturnDay,
		}
	}
}

// AbsenceRequestModelFromDomain creates a new persistence model from a domain AbsenceRequest.
func AbsenceRequestModelFromDomain(r *absence.AbsenceRequest) *AbsenceRequestModel {
	m := &AbsenceRequestModel{}
	m.FromDomain(r)
	return m
}

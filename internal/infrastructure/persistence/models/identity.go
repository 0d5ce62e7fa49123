package models

import (
	"time"

	"github.com/hrportal/backend/internal/domain/identity"
)

// ProfileModel is the persistence model for the Profile domain entity.
type ProfileModel struct {
	AggregateModel
	Surname        string                  `gorm:"type:varchar(100);not null"`
	GivenName      string                  `gorm:"type:varchar(100);not null"`
	Email          string                  `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string                  `gorm:"type:varchar(255);not null"`
	Role           identity.Role           `gorm:"type:varchar(20);not null;default:'driver'"`
	VehicleProfile identity.VehicleProfile `gorm:"type:varchar(20);not null;default:'none'"`
	Active         bool                    `gorm:"not null;default:true"`
	LastLoginAt    *time.Time
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile entity.
func (m *ProfileModel) ToDomain() *identity.Profile {
	return &identity.Profile{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Surname:           m.Surname,
		GivenName:         m.GivenName,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		VehicleProfile:    m.VehicleProfile,
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain Profile entity.
func (m *ProfileModel) FromDomain(p *identity.Profile) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Surname = p.Surname
	m.GivenName = p.GivenName
	m.Email = p.Email
	m.PasswordHash = p.PasswordHash
	m.Role = p.Role
	m.VehicleProfile = p.VehicleProfile
	m.Active = p.Active
	m.LastLoginAt = p.LastLoginAt
}

// ProfileModelFromDomain creates a new persistence model from a domain Profile entity.
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	m := &ProfileModel{}
	m.FromDomain(p)
	return m
}

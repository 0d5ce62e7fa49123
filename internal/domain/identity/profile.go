package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/hrportal/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the access level of a profile
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOffice Role = "office"
	RoleDriver Role = "driver"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOffice, RoleDriver:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanDecide returns true if the role may approve, reject, validate or correct
func (r Role) CanDecide() bool {
	return r == RoleAdmin || r == RoleOffice
}

// VehicleProfile represents the vehicle class a driver operates
type VehicleProfile string

const (
	VehicleProfileLight VehicleProfile = "light"
	VehicleProfileHeavy VehicleProfile = "heavy"
	VehicleProfileNone  VehicleProfile = "none"
)

// IsValid checks if the vehicle profile is valid
func (v VehicleProfile) IsValid() bool {
	switch v {
	case VehicleProfileLight, VehicleProfileHeavy, VehicleProfileNone:
		return true
	}
	return false
}

// String returns the string representation of VehicleProfile
func (v VehicleProfile) String() string {
	return string(v)
}

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Profile represents a person using the portal
// It is the aggregate root for identity-related operations
type Profile struct {
	shared.BaseAggregateRoot
	Surname        string
	GivenName      string
	Email          string
	PasswordHash   string
	Role           Role
	VehicleProfile VehicleProfile
	Active         bool
	LastLoginAt    *time.Time
}

// NewProfile creates a new active profile
func NewProfile(surname, givenName, email, password string, role Role, vehicle VehicleProfile) (*Profile, error) {
	if strings.TrimSpace(surname) == "" {
		return nil, shared.NewDomainError("INVALID_SURNAME", "Surname cannot be empty")
	}
	if strings.TrimSpace(givenName) == "" {
		return nil, shared.NewDomainError("INVALID_GIVEN_NAME", "Given name cannot be empty")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}
	if !vehicle.IsValid() {
		return nil, shared.NewDomainError("INVALID_VEHICLE_PROFILE", "Vehicle profile is not valid")
	}
	// Drivers fill in per-vehicle allowance grids, so their class must be known
	if role == RoleDriver && vehicle == VehicleProfileNone {
		return nil, shared.NewDomainError("INVALID_VEHICLE_PROFILE", "Drivers must carry a vehicle profile")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	profile := &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Surname:           strings.TrimSpace(surname),
		GivenName:         strings.TrimSpace(givenName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      hash,
		Role:              role,
		VehicleProfile:    vehicle,
		Active:            true,
	}

	profile.AddDomainEvent(NewProfileCreatedEvent(profile))

	return profile, nil
}

// FullName returns the display name of the profile
func (p *Profile) FullName() string {
	return p.GivenName + " " + p.Surname
}

// UpdateContact updates the profile's name and email
func (p *Profile) UpdateContact(surname, givenName, email string) error {
	if strings.TrimSpace(surname) == "" {
		return shared.NewDomainError("INVALID_SURNAME", "Surname cannot be empty")
	}
	if strings.TrimSpace(givenName) == "" {
		return shared.NewDomainError("INVALID_GIVEN_NAME", "Given name cannot be empty")
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	p.Surname = strings.TrimSpace(surname)
	p.GivenName = strings.TrimSpace(givenName)
	p.Email = strings.ToLower(strings.TrimSpace(email))
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ChangeRole changes the profile's role
func (p *Profile) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}
	if role == RoleDriver && p.VehicleProfile == VehicleProfileNone {
		return shared.NewDomainError("INVALID_VEHICLE_PROFILE", "Drivers must carry a vehicle profile")
	}

	p.Role = role
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetVehicleProfile sets the vehicle class of the profile
func (p *Profile) SetVehicleProfile(vehicle VehicleProfile) error {
	if !vehicle.IsValid() {
		return shared.NewDomainError("INVALID_VEHICLE_PROFILE", "Vehicle profile is not valid")
	}
	if p.Role == RoleDriver && vehicle == VehicleProfileNone {
		return shared.NewDomainError("INVALID_VEHICLE_PROFILE", "Drivers must carry a vehicle profile")
	}

	p.VehicleProfile = vehicle
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate re-enables a deactivated profile
func (p *Profile) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate disables the profile without deleting its history
func (p *Profile) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ChangePassword changes the password after checking the current one
func (p *Profile) ChangePassword(oldPassword, newPassword string) error {
	if !p.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return p.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one (admin reset)
func (p *Profile) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	p.PasswordHash = hash
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (p *Profile) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful login time
func (p *Profile) RecordLogin() {
	now := time.Now()
	p.LastLoginAt = &now
	p.UpdatedAt = now
}

// Actor returns the actor value used for transition guard checks
func (p *Profile) Actor() Actor {
	return Actor{ProfileID: p.ID, Role: p.Role}
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is not valid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

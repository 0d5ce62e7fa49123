package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	t.Run("creates driver profile with vehicle class", func(t *testing.T) {
		profile, err := NewProfile("Moreau", "Luc", "luc.moreau@example.com", "Password123", RoleDriver, VehicleProfileHeavy)

		require.NoError(t, err)
		assert.NotNil(t, profile)
		assert.Equal(t, "Moreau", profile.Surname)
		assert.Equal(t, "Luc", profile.GivenName)
		assert.Equal(t, "luc.moreau@example.com", profile.Email)
		assert.NotEmpty(t, profile.PasswordHash)
		assert.Equal(t, RoleDriver, profile.Role)
		assert.Equal(t, VehicleProfileHeavy, profile.VehicleProfile)
		assert.True(t, profile.Active)
		assert.Nil(t, profile.LastLoginAt)

		// Should have domain event
		events := profile.GetDomainEvents()
		assert.Len(t, events, 1)
		_, ok := events[0].(*ProfileCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		profile, err := NewProfile("Moreau", "Luc", "Luc.Moreau@Example.COM", "Password123", RoleOffice, VehicleProfileNone)

		require.NoError(t, err)
		assert.Equal(t, "luc.moreau@example.com", profile.Email)
	})

	t.Run("trims name whitespace", func(t *testing.T) {
		profile, err := NewProfile("  Moreau  ", "  Luc  ", "luc@example.com", "Password123", RoleAdmin, VehicleProfileNone)

		require.NoError(t, err)
		assert.Equal(t, "Moreau", profile.Surname)
		assert.Equal(t, "Luc", profile.GivenName)
	})

	t.Run("fails with empty surname", func(t *testing.T) {
		_, err := NewProfile("", "Luc", "luc@example.com", "Password123", RoleDriver, VehicleProfileLight)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Surname")
	})

	t.Run("fails with empty given name", func(t *testing.T) {
		_, err := NewProfile("Moreau", "   ", "luc@example.com", "Password123", RoleDriver, VehicleProfileLight)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Given name")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewProfile("Moreau", "Luc", "not-an-email", "Password123", RoleDriver, VehicleProfileLight)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewProfile("Moreau", "Luc", "luc@example.com", "short", RoleDriver, VehicleProfileLight)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with invalid role", func(t *testing.T) {
		_, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", Role("manager"), VehicleProfileNone)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Role")
	})

	t.Run("fails when driver has no vehicle profile", func(t *testing.T) {
		_, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleDriver, VehicleProfileNone)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "vehicle profile")
	})
}

func TestRole(t *testing.T) {
	t.Run("valid roles", func(t *testing.T) {
		assert.True(t, RoleAdmin.IsValid())
		assert.True(t, RoleOffice.IsValid())
		assert.True(t, RoleDriver.IsValid())
		assert.False(t, Role("manager").IsValid())
		assert.False(t, Role("").IsValid())
	})

	t.Run("decision rights", func(t *testing.T) {
		assert.True(t, RoleAdmin.CanDecide())
		assert.True(t, RoleOffice.CanDecide())
		assert.False(t, RoleDriver.CanDecide())
	})
}

func TestVehicleProfile(t *testing.T) {
	assert.True(t, VehicleProfileLight.IsValid())
	assert.True(t, VehicleProfileHeavy.IsValid())
	assert.True(t, VehicleProfileNone.IsValid())
	assert.False(t, VehicleProfile("tractor").IsValid())
}

func TestProfileUpdateContact(t *testing.T) {
	profile, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleOffice, VehicleProfileNone)
	require.NoError(t, err)
	versionBefore := profile.GetVersion()

	t.Run("updates names and email", func(t *testing.T) {
		err := profile.UpdateContact("Martin", "Paul", "paul.martin@example.com")

		require.NoError(t, err)
		assert.Equal(t, "Martin", profile.Surname)
		assert.Equal(t, "Paul", profile.GivenName)
		assert.Equal(t, "paul.martin@example.com", profile.Email)
		assert.Equal(t, versionBefore+1, profile.GetVersion())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := profile.UpdateContact("Martin", "Paul", "bad email")

		assert.Error(t, err)
		assert.Equal(t, "paul.martin@example.com", profile.Email)
	})
}

func TestProfileChangeRole(t *testing.T) {
	t.Run("changes role", func(t *testing.T) {
		profile, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleOffice, VehicleProfileNone)
		require.NoError(t, err)

		err = profile.ChangeRole(RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, profile.Role)
	})

	t.Run("rejects driver role without vehicle profile", func(t *testing.T) {
		profile, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleOffice, VehicleProfileNone)
		require.NoError(t, err)

		err = profile.ChangeRole(RoleDriver)

		assert.Error(t, err)
		assert.Equal(t, RoleOffice, profile.Role)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		profile, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleOffice, VehicleProfileNone)
		require.NoError(t, err)

		err = profile.ChangeRole(Role("intern"))

		assert.Error(t, err)
	})
}

func TestProfileSetVehicleProfile(t *testing.T) {
	profile, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleDriver, VehicleProfileLight)
	require.NoError(t, err)

	t.Run("changes vehicle class", func(t *testing.T) {
		err := profile.SetVehicleProfile(VehicleProfileHeavy)

		require.NoError(t, err)
		assert.Equal(t, VehicleProfileHeavy, profile.VehicleProfile)
	})

	t.Run("rejects none for a driver", func(t *testing.T) {
		err := profile.SetVehicleProfile(VehicleProfileNone)

		assert.Error(t, err)
		assert.Equal(t, VehicleProfileHeavy, profile.VehicleProfile)
	})
}

func TestProfileActivation(t *testing.T) {
	profile, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleDriver, VehicleProfileLight)
	require.NoError(t, err)

	profile.Deactivate()
	assert.False(t, profile.Active)

	profile.Activate()
	assert.True(t, profile.Active)
}

func TestProfilePassword(t *testing.T) {
	profile, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleDriver, VehicleProfileLight)
	require.NoError(t, err)

	t.Run("verifies correct password", func(t *testing.T) {
		assert.True(t, profile.VerifyPassword("Password123"))
		assert.False(t, profile.VerifyPassword("WrongPassword"))
	})

	t.Run("changes password with correct current password", func(t *testing.T) {
		err := profile.ChangePassword("Password123", "NewPassword456")

		require.NoError(t, err)
		assert.True(t, profile.VerifyPassword("NewPassword456"))
		assert.False(t, profile.VerifyPassword("Password123"))
	})

	t.Run("rejects change with wrong current password", func(t *testing.T) {
		err := profile.ChangePassword("WrongPassword", "AnotherPass789")

		assert.Error(t, err)
		assert.True(t, profile.VerifyPassword("NewPassword456"))
	})

	t.Run("admin reset skips current password check", func(t *testing.T) {
		err := profile.SetPassword("ResetPass999")

		require.NoError(t, err)
		assert.True(t, profile.VerifyPassword("ResetPass999"))
	})
}

func TestProfileActor(t *testing.T) {
	profile, err := NewProfile("Moreau", "Luc", "luc@example.com", "Password123", RoleDriver, VehicleProfileLight)
	require.NoError(t, err)

	actor := profile.Actor()
	assert.Equal(t, profile.ID, actor.ProfileID)
	assert.Equal(t, RoleDriver, actor.Role)
	assert.False(t, actor.IsZero())
	assert.False(t, actor.CanDecide())
	assert.True(t, actor.Is(profile.ID))
	assert.False(t, actor.Is(uuid.New()))

	assert.True(t, Actor{}.IsZero())
}

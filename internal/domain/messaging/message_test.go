package messaging

import (
	"testing"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	senderID := uuid.New()
	recipientID := uuid.New()

	t.Run("creates direct message", func(t *testing.T) {
		message, err := NewMessage(senderID, &recipientID, "Planning semaine 12", "Voir pièce jointe")

		require.NoError(t, err)
		assert.False(t, message.IsBroadcast())
		assert.True(t, message.VisibleTo(recipientID))
		assert.True(t, message.VisibleTo(senderID))
		assert.False(t, message.VisibleTo(uuid.New()))
	})

	t.Run("creates broadcast with nil recipient", func(t *testing.T) {
		message, err := NewMessage(senderID, nil, "Note de service", "Fermeture exceptionnelle vendredi")

		require.NoError(t, err)
		assert.True(t, message.IsBroadcast())
		assert.True(t, message.VisibleTo(uuid.New()))
	})

	t.Run("rejects empty subject", func(t *testing.T) {
		_, err := NewMessage(senderID, &recipientID, "  ", "body")

		assert.Error(t, err)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := NewMessage(senderID, &recipientID, "subject", "")

		assert.Error(t, err)
	})
}

func TestMessageAttach(t *testing.T) {
	senderID := uuid.New()
	recipientID := uuid.New()
	sender := identity.Actor{ProfileID: senderID, Role: identity.RoleOffice}

	message, err := NewMessage(senderID, &recipientID, "subject", "body")
	require.NoError(t, err)

	t.Run("sender attaches once", func(t *testing.T) {
		require.NoError(t, message.Attach(sender, "messages/2026/03/scan.pdf"))
		assert.Equal(t, "messages/2026/03/scan.pdf", message.AttachmentKey)

		err := message.Attach(sender, "messages/2026/03/other.pdf")
		assert.Error(t, err)
	})

	t.Run("recipient cannot attach", func(t *testing.T) {
		recipient := identity.Actor{ProfileID: recipientID, Role: identity.RoleDriver}

		err := message.Attach(recipient, "key")

		assert.Error(t, err)
	})
}

func TestMessageMarkRead(t *testing.T) {
	senderID := uuid.New()
	recipientID := uuid.New()
	recipient := identity.Actor{ProfileID: recipientID, Role: identity.RoleDriver}

	t.Run("recipient marks direct message read", func(t *testing.T) {
		message, err := NewMessage(senderID, &recipientID, "subject", "body")
		require.NoError(t, err)

		require.NoError(t, message.MarkRead(recipient))
		require.NotNil(t, message.ReadAt)

		// Second read keeps the original stamp
		stamp := *message.ReadAt
		require.NoError(t, message.MarkRead(recipient))
		assert.Equal(t, stamp, *message.ReadAt)
	})

	t.Run("sender cannot mark read", func(t *testing.T) {
		message, err := NewMessage(senderID, &recipientID, "subject", "body")
		require.NoError(t, err)

		err = message.MarkRead(identity.Actor{ProfileID: senderID, Role: identity.RoleOffice})

		assert.Error(t, err)
	})

	t.Run("broadcast carries no read state", func(t *testing.T) {
		message, err := NewMessage(senderID, nil, "subject", "body")
		require.NoError(t, err)

		err = message.MarkRead(recipient)

		assert.Error(t, err)
	})
}

func TestNotification(t *testing.T) {
	recipientID := uuid.New()
	referenceID := uuid.New()

	t.Run("creates unread notification", func(t *testing.T) {
		notification, err := NewNotification(recipientID, NotificationAbsenceApproved, "Demande approuvée", "Votre absence du 06/03 est approuvée", referenceID)

		require.NoError(t, err)
		assert.False(t, notification.Read)
		assert.Equal(t, referenceID, notification.ReferenceID)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewNotification(recipientID, NotificationKind("pigeon"), "subject", "", referenceID)

		assert.Error(t, err)
	})

	t.Run("recipient marks read", func(t *testing.T) {
		notification, err := NewNotification(recipientID, NotificationReportValidated, "Relevé validé", "", referenceID)
		require.NoError(t, err)

		require.NoError(t, notification.MarkRead(identity.Actor{ProfileID: recipientID, Role: identity.RoleDriver}))
		assert.True(t, notification.Read)

		err = notification.MarkRead(identity.Actor{ProfileID: uuid.New(), Role: identity.RoleAdmin})
		assert.Error(t, err)
	})
}

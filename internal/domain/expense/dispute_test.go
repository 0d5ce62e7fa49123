package expense

import (
	"testing"

	"github.com/hrportal/backend/internal/domain/identity"
	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func correctedReport(t *testing.T) (*ExpenseReport, identity.Actor) {
	t.Helper()
	report, owner := submittedReport(t)
	require.NoError(t, report.Correct(office(), []*Correction{noteCorrection(t, report, "comment", "", "recounted")}))
	report.ClearDomainEvents()
	return report, owner
}

// Owner disputes a corrected report; a second dispute is refused while
// the first is open; after resolution a new dispute may open.
func TestDisputeLifecycle(t *testing.T) {
	report, owner := correctedReport(t)

	dispute, err := report.OpenDispute(owner, "Le 15/01 je n'ai pas travaillé", false)
	require.NoError(t, err)
	assert.Equal(t, DisputeStatusOpen, dispute.Status)
	assert.Equal(t, report.ID, dispute.ReportID)
	assert.Equal(t, owner.ProfileID, dispute.RaisedBy)

	// Second dispute while the first is open
	_, err = report.OpenDispute(owner, "autre souci", true)
	assert.ErrorIs(t, err, shared.ErrDuplicateDispute)

	// Resolution stamps the resolver and leaves the message alone
	resolver := office()
	require.NoError(t, dispute.Resolve(resolver))
	assert.Equal(t, DisputeStatusResolved, dispute.Status)
	require.NotNil(t, dispute.ResolvedBy)
	assert.Equal(t, resolver.ProfileID, *dispute.ResolvedBy)
	assert.NotNil(t, dispute.ResolvedAt)
	assert.Equal(t, "Le 15/01 je n'ai pas travaillé", dispute.Message)

	// Resolving does not change the report status
	assert.Equal(t, ReportStatusCorrected, report.Status)

	// A new dispute may open once the prior one is resolved
	second, err := report.OpenDispute(owner, "toujours pas d'accord", false)
	require.NoError(t, err)
	assert.Equal(t, DisputeStatusOpen, second.Status)
}

func TestOpenDisputeGuards(t *testing.T) {
	t.Run("only the owner may dispute", func(t *testing.T) {
		report, _ := correctedReport(t)
		stranger := identity.Actor{ProfileID: uuid.New(), Role: identity.RoleDriver}

		_, err := report.OpenDispute(stranger, "message", false)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("only corrected reports may be disputed", func(t *testing.T) {
		report, owner := submittedReport(t)

		_, err := report.OpenDispute(owner, "message", false)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "submitted status")
	})

	t.Run("message cannot be empty", func(t *testing.T) {
		report, owner := correctedReport(t)

		_, err := report.OpenDispute(owner, "   ", false)

		assert.ErrorIs(t, err, shared.ErrEmptyDisputeMessage)
	})
}

func TestResolveDisputeGuards(t *testing.T) {
	t.Run("driver cannot resolve", func(t *testing.T) {
		report, owner := correctedReport(t)
		dispute, err := report.OpenDispute(owner, "message", false)
		require.NoError(t, err)

		err = dispute.Resolve(owner)

		assert.Error(t, err)
		assert.Equal(t, DisputeStatusOpen, dispute.Status)
	})

	t.Run("re-resolution fails", func(t *testing.T) {
		report, owner := correctedReport(t)
		dispute, err := report.OpenDispute(owner, "message", false)
		require.NoError(t, err)
		require.NoError(t, dispute.Resolve(office()))

		err = dispute.Resolve(office())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "resolved status")
	})
}

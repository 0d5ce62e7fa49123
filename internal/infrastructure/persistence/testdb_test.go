package persistence

import (
	"testing"

	"github.com/hrportal/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProfileModel{},
		&models.AbsenceRequestModel{},
		&models.AbsenceAlternativeModel{},
		&models.ExpensePeriodModel{},
		&models.CategoryModel{},
		&models.ExpenseReportModel{},
		&models.ExpenseLineModel{},
		&models.BonusLineModel{},
		&models.CorrectionModel{},
		&models.DisputeModel{},
		&models.MessageModel{},
		&models.NotificationModel{},
	)
	require.NoError(t, err)

	// AutoMigrate cannot express partial indexes, so mirror the one from
	// the migrations by hand. SQLite supports the same WHERE form as
	// Postgres.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_report_disputes_open
		ON report_disputes (report_id)
		WHERE status = 'open'`).Error
	require.NoError(t, err)

	return db
}

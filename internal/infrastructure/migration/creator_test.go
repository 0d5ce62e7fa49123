package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add profiles table", "add_profiles_table"},
		{"Add-Absence-Requests", "add_absence_requests"},
		{"ADD_EXPENSE_REPORTS", "add_expense_reports"},
		{"add__bonus__lines", "add_bonus_lines"},
		{"Add Disputes 123", "add_disputes_123"},
		{"create-expense-category", "create_expense_category"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	tmpDir := t.TempDir()

	mf, err := CreateMigration(tmpDir, "add profiles table", "Create profiles table")
	require.NoError(t, err)
	require.NotNil(t, mf)

	// Version is a 14-digit timestamp
	assert.Len(t, mf.Version, 14)

	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)
	assert.Contains(t, upBase, "add_profiles_table")

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add profiles table")

	downContent, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
}

func TestListMigrations(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("empty directory", func(t *testing.T) {
		migrations, err := ListMigrations(tmpDir)
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("missing directory", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(tmpDir, "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists pairs once", func(t *testing.T) {
		for _, name := range []string{
			"20260101000000_init.up.sql",
			"20260101000000_init.down.sql",
			"20260102000000_add_messages.up.sql",
			"20260102000000_add_messages.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("-- x"), 0644))
		}

		migrations, err := ListMigrations(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"20260101000000_init", "20260102000000_add_messages"}, migrations)
	})
}

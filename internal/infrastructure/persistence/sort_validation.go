package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProfileSortFields contains allowed sort fields for profiles
var ProfileSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"surname":       true,
	"given_name":    true,
	"email":         true,
	"role":          true,
	"active":        true,
	"last_login_at": true,
}

// AbsenceRequestSortFields contains allowed sort fields for absence requests
var AbsenceRequestSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"last_worked_day": true,
	"return_day":      true,
	"type":            true,
	"status":          true,
	"decided_at":      true,
}

// ExpenseReportSortFields contains allowed sort fields for expense reports
var ExpenseReportSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"grand_total":  true,
	"validated_at": true,
}

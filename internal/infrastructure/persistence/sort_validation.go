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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"order_number":     true,
	"customer_id":      true,
	"customer_name":    true,
	"status":           true,
	"payment_status":   true,
	"production_stage": true,
	"grand_total":      true,
	"items_total":      true,
	"discount_total":   true,
	"shipping":         true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"category":       true,
	"unit_price":     true,
	"tax_percentage": true,
	"stock":          true,
	"reorder_level":  true,
	"active":         true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"company":    true,
	"email":      true,
	"phone":      true,
	"active":     true,
}

// ExpenseRecordSortFields contains allowed sort fields for expense records
var ExpenseRecordSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"category":    true,
	"amount":      true,
	"incurred_at": true,
	"reference":   true,
}

// AuditLogSortFields contains allowed sort fields for audit log entries
var AuditLogSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"action_type": true,
	"entity_type": true,
}

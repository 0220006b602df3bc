package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE orders;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortOrder(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateSortField(t *testing.T) {
	allowedFields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}

	tests := []struct {
		name         string
		input        string
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", "created_at", "created_at"},
		{"valid field returns field", "name", "created_at", "name"},
		{"invalid field returns default", "invalid_field", "created_at", "created_at"},
		{"sql injection attempt returns default", "id; DROP TABLE orders;--", "created_at", "created_at"},
		{"case sensitive - uppercase invalid", "NAME", "created_at", "created_at"},
		{"whitespace around valid field returns field", "  name  ", "created_at", "name"},
		{"field with quotes injection returns default", "name'--", "created_at", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortField(tt.input, allowedFields, tt.defaultField)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"OrderSortFields":         OrderSortFields,
		"ProductSortFields":       ProductSortFields,
		"CustomerSortFields":      CustomerSortFields,
		"ExpenseRecordSortFields": ExpenseRecordSortFields,
	}

	for name, fields := range whitelists {
		t.Run(name+" contains common fields", func(t *testing.T) {
			assert.True(t, fields["id"])
			assert.True(t, fields["created_at"])
			assert.True(t, fields["updated_at"])
		})
	}

	t.Run("audit log entries never sort on updated_at", func(t *testing.T) {
		assert.True(t, AuditLogSortFields["created_at"])
		assert.False(t, AuditLogSortFields["updated_at"])
	})

	t.Run("domain-specific fields are whitelisted", func(t *testing.T) {
		assert.True(t, OrderSortFields["order_number"])
		assert.True(t, OrderSortFields["production_stage"])
		assert.True(t, ProductSortFields["stock"])
		assert.True(t, ExpenseRecordSortFields["incurred_at"])
	})
}

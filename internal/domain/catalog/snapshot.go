package catalog

import (
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the read-only product view consumed by the ordering
// context when pricing a line item. Stock is the availability ceiling; the
// ordering side never writes back through this type.
type ProductSnapshot struct {
	ID            uuid.UUID
	Code          string
	Name          string
	UnitPrice     valueobject.Money
	TaxPercentage decimal.Decimal
	Stock         int
}

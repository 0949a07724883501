package catalog

import (
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceItem is a billable service in the school's catalog: tuition for an
// academic period, transport, meals, study materials. The unit price is the
// VAT-exclusive list price; VAT is applied at assignment time using the item's
// rate.
type ServiceItem struct {
	shared.TenantAggregateRoot
	Name           string
	Description    string
	UnitPrice      decimal.Decimal
	VATRatePercent decimal.Decimal
	IsActive       bool
}

// NewServiceItem creates an active catalog service item.
func NewServiceItem(tenantID uuid.UUID, name string, unitPrice valueobject.Money, vatRatePercent decimal.Decimal) (*ServiceItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Unit price cannot be negative")
	}
	if vatRatePercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SERVICE", "VAT rate cannot be negative")
	}

	return &ServiceItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		UnitPrice:           unitPrice.Amount(),
		VATRatePercent:      vatRatePercent,
		IsActive:            true,
	}, nil
}

// GetUnitPriceMoney returns the list price as Money
func (s *ServiceItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(s.UnitPrice)
}

// Deactivate hides the item from new assignments; existing assignments keep
// their snapshot of the price and name.
func (s *ServiceItem) Deactivate() {
	s.IsActive = false
	s.IncrementVersion()
}

// UpdatePrice changes the list price for future assignments.
func (s *ServiceItem) UpdatePrice(unitPrice valueobject.Money, vatRatePercent decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_SERVICE", "Unit price cannot be negative")
	}
	if vatRatePercent.IsNegative() {
		return shared.NewDomainError("INVALID_SERVICE", "VAT rate cannot be negative")
	}
	s.UnitPrice = unitPrice.Amount()
	s.VATRatePercent = vatRatePercent
	s.IncrementVersion()
	return nil
}

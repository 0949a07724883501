package tuition

import (
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DiscountType determines how a discount is applied to the list price
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE" // discount value is a percentage of the list price
	DiscountTypeFixed      DiscountType = "FIXED"      // discount value is an absolute amount
)

// IsValid checks if the discount type is valid
func (d DiscountType) IsValid() bool {
	return d == DiscountTypePercentage || d == DiscountTypeFixed
}

// String returns the string representation of DiscountType
func (d DiscountType) String() string {
	return string(d)
}

// PricingInput holds the inputs for a payable-amount calculation
type PricingInput struct {
	UnitPrice      valueobject.Money
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal // percentage when PERCENTAGE, absolute amount when FIXED
	VATRatePercent decimal.Decimal
}

// PricingResult holds the VAT-inclusive payable amount and its components.
// All amounts are rounded half-up to 2 decimal places.
type PricingResult struct {
	NetBeforeVAT   valueobject.Money
	DiscountAmount valueobject.Money // absolute discount that was applied
	VATAmount      valueobject.Money
	GrossPayable   valueobject.Money // NetBeforeVAT + VATAmount, billed to the student
}

// CalculatePricing turns a unit price, a discount and a VAT rate into the
// VAT-inclusive payable amount. It is a pure function; intermediate values are
// rounded half-up to 2 decimals before being used downstream so that the result
// is stable regardless of input precision.
func CalculatePricing(in PricingInput) (PricingResult, error) {
	if in.UnitPrice.IsNegative() {
		return PricingResult{}, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	if in.DiscountValue.IsNegative() {
		return PricingResult{}, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	if in.VATRatePercent.IsNegative() {
		return PricingResult{}, shared.NewDomainError("INVALID_INPUT", "VAT rate cannot be negative")
	}
	if !in.DiscountType.IsValid() {
		return PricingResult{}, shared.NewDomainError("INVALID_INPUT", "Discount type is not valid")
	}

	unitPrice := in.UnitPrice.RoundHalfUp(2)

	var discount valueobject.Money
	if in.DiscountType == DiscountTypePercentage {
		discount = unitPrice.CalculatePercentage(in.DiscountValue).RoundHalfUp(2)
	} else {
		discount = valueobject.NewMoneyTRY(in.DiscountValue).RoundHalfUp(2)
	}

	net, err := unitPrice.Subtract(discount)
	if err != nil {
		return PricingResult{}, err
	}
	if net.IsNegative() {
		return PricingResult{}, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the list price")
	}

	vat := net.CalculatePercentage(in.VATRatePercent).RoundHalfUp(2)
	gross, err := net.Add(vat)
	if err != nil {
		return PricingResult{}, err
	}

	return PricingResult{
		NetBeforeVAT:   net,
		DiscountAmount: discount,
		VATAmount:      vat,
		GrossPayable:   gross,
	}, nil
}

// NetComponentOf back-derives the VAT-exclusive component of a VAT-inclusive
// amount. Used when a settlement payment has to be booked with separate
// subtotal and VAT figures.
func NetComponentOf(grossAmount valueobject.Money, vatRatePercent decimal.Decimal) (valueobject.Money, error) {
	divisor := decimal.NewFromInt(1).Add(vatRatePercent.Div(decimal.NewFromInt(100)))
	net, err := grossAmount.Divide(divisor)
	if err != nil {
		return valueobject.Money{}, err
	}
	return net.RoundHalfUp(2), nil
}

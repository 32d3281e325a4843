package ticketing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
)

// VisaNumber formats a sequence value into a visa number
func VisaNumber(seq int64) string {
	return fmt.Sprintf("VSA-%06d", seq)
}

// VisaDetails is the editable content of a visa sale
type VisaDetails struct {
	Reference      string
	CustomerID     *uuid.UUID
	ApplicantName  string
	PassportNumber string
	Country        string
	VisaType       string
	TravelDate     *time.Time
	SupplierName   string
	Notes          string
	Amounts        SaleAmounts
}

func (d VisaDetails) validate() (VisaDetails, error) {
	d.Reference = strings.TrimSpace(d.Reference)
	if d.Reference == "" {
		return d, ErrReferenceRequired
	}
	if err := d.Amounts.Validate(); err != nil {
		return d, err
	}
	d.Amounts = d.Amounts.normalized()
	d.ApplicantName = strings.TrimSpace(d.ApplicantName)
	d.PassportNumber = strings.ToUpper(strings.TrimSpace(d.PassportNumber))
	d.Country = strings.TrimSpace(d.Country)
	return d, nil
}

// Visa is a visa processing sale
type Visa struct {
	shared.TenantAggregateRoot
	VisaNumber     string      `json:"visa_number"`
	Reference      string      `json:"reference"`
	CustomerID     *uuid.UUID  `json:"customer_id,omitempty"`
	ApplicantName  string      `json:"applicant_name"`
	PassportNumber string      `json:"passport_number"`
	Country        string      `json:"country"`
	VisaType       string      `json:"visa_type"`
	TravelDate     *time.Time  `json:"travel_date,omitempty"`
	SupplierName   string      `json:"supplier_name"`
	Notes          string      `json:"notes,omitempty"`
	Amounts        SaleAmounts `json:"amounts"`
	CanceledAt     *time.Time  `json:"canceled_at,omitempty"`
}

// NewVisa validates details and builds a visa sale created at now
func NewVisa(tenantID uuid.UUID, number string, d VisaDetails, now time.Time) (*Visa, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	d, err := d.validate()
	if err != nil {
		return nil, err
	}
	v := &Visa{
		TenantAggregateRoot: shared.NewTenantAggregateRootAt(tenantID, now),
		VisaNumber:          number,
	}
	v.apply(d)
	return v, nil
}

func (v *Visa) apply(d VisaDetails) {
	v.Reference = d.Reference
	v.CustomerID = d.CustomerID
	v.ApplicantName = d.ApplicantName
	v.PassportNumber = d.PassportNumber
	v.Country = d.Country
	v.VisaType = d.VisaType
	v.TravelDate = d.TravelDate
	v.SupplierName = d.SupplierName
	v.Notes = d.Notes
	v.Amounts = d.Amounts
}

// Source returns the ledger source reference for this visa
func (v *Visa) Source() ledger.Source {
	return ledger.NewSource(ledger.SourceVisa, v.ID)
}

// IsCanceled reports whether the visa is canceled
func (v *Visa) IsCanceled() bool {
	return v.CanceledAt != nil
}

// Edit replaces the visa details
func (v *Visa) Edit(d VisaDetails) error {
	if v.IsCanceled() {
		return shared.NewDomainError("VISA_CANCELED", "Canceled visas cannot be edited")
	}
	d, err := d.validate()
	if err != nil {
		return err
	}
	v.apply(d)
	v.IncrementVersion()
	return nil
}

// Cancel is terminal
func (v *Visa) Cancel(at time.Time) error {
	if v.IsCanceled() {
		return shared.ErrAlreadyCanceled
	}
	v.CanceledAt = &at
	v.IncrementVersion()
	v.AddDomainEvent(NewVisaCanceledEvent(v))
	return nil
}

// PaymentDate is the travel date when known, else the creation date
func (v *Visa) PaymentDate() time.Time {
	if v.TravelDate != nil && !v.TravelDate.IsZero() {
		return *v.TravelDate
	}
	return v.CreatedAt
}

// PaymentTerms is what the customer owes for this visa
func (v *Visa) PaymentTerms(payerName string) ledger.PaymentTerms {
	if payerName == "" {
		payerName = v.ApplicantName
	}
	return ledger.PaymentTerms{
		CustomerID:  v.CustomerID,
		PayerName:   payerName,
		Amount:      v.Amounts.NetSales,
		Currency:    v.Amounts.Currency,
		PaymentDate: v.PaymentDate(),
	}
}

// PayableTerms is what the agency owes the embassy or processor
func (v *Visa) PayableTerms() ledger.PayableTerms {
	return ledger.PayableTerms{
		SupplierName: v.SupplierName,
		Amount:       v.Amounts.NetCost,
		Currency:     v.Amounts.Currency,
	}
}

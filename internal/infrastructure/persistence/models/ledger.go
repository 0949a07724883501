package models

import (
	"time"

	"github.com/campus/backend/internal/domain/ledger"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for Payment.
type PaymentModel struct {
	BaseModel
	TenantID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	StudentID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	InstallmentID uuid.UUID            `gorm:"type:uuid;not null;index"`
	AccountID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Method        ledger.PaymentMethod `gorm:"type:varchar(30);not null"`
	Reference     string               `gorm:"type:varchar(100)"`
	PaidAt        time.Time            `gorm:"not null;index"`
	ReceivedBy    *uuid.UUID           `gorm:"type:uuid"`
	Remark        string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID:      m.TenantID,
		StudentID:     m.StudentID,
		InstallmentID: m.InstallmentID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		Method:        m.Method,
		Reference:     m.Reference,
		PaidAt:        m.PaidAt,
		ReceivedBy:    m.ReceivedBy,
		Remark:        m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *ledger.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.StudentID = p.StudentID
	m.InstallmentID = p.InstallmentID
	m.AccountID = p.AccountID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Reference = p.Reference
	m.PaidAt = p.PaidAt
	m.ReceivedBy = p.ReceivedBy
	m.Remark = p.Remark
}

// PaymentModelFromDomain creates a new persistence model from domain.
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// LedgerTransactionModel is the persistence model for LedgerTransaction.
type LedgerTransactionModel struct {
	TenantAggregateModel
	Type          ledger.TransactionType `gorm:"type:varchar(10);not null;index"`
	CategoryID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	AccountID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Subtotal      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	VATAmount     decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Description   string                 `gorm:"type:varchar(500)"`
	ReferenceID   *uuid.UUID             `gorm:"type:uuid;index"`
	ServiceID     *uuid.UUID             `gorm:"type:uuid;index"`
	TransactionAt time.Time              `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the persistence model to a domain LedgerTransaction entity.
func (m *LedgerTransactionModel) ToDomain() *ledger.LedgerTransaction {
	tx := &ledger.LedgerTransaction{
		Type:          m.Type,
		CategoryID:    m.CategoryID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		Subtotal:      m.Subtotal,
		VATAmount:     m.VATAmount,
		Description:   m.Description,
		ReferenceID:   m.ReferenceID,
		ServiceID:     m.ServiceID,
		TransactionAt: m.TransactionAt,
	}
	m.PopulateTenantAggregateRoot(&tx.TenantAggregateRoot)
	return tx
}

// FromDomain populates the persistence model from a domain LedgerTransaction entity.
func (m *LedgerTransactionModel) FromDomain(tx *ledger.LedgerTransaction) {
	m.FromDomainTenantAggregateRoot(tx.TenantAggregateRoot)
	m.Type = tx.Type
	m.CategoryID = tx.CategoryID
	m.AccountID = tx.AccountID
	m.Amount = tx.Amount
	m.Subtotal = tx.Subtotal
	m.VATAmount = tx.VATAmount
	m.Description = tx.Description
	m.ReferenceID = tx.ReferenceID
	m.ServiceID = tx.ServiceID
	m.TransactionAt = tx.TransactionAt
}

// LedgerTransactionModelFromDomain creates a new persistence model from domain.
func LedgerTransactionModelFromDomain(tx *ledger.LedgerTransaction) *LedgerTransactionModel {
	m := &LedgerTransactionModel{}
	m.FromDomain(tx)
	return m
}

// CategoryModel is the persistence model for Category.
type CategoryModel struct {
	BaseModel
	TenantID uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_categories_tenant_name_type"`
	Name     string                 `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_tenant_name_type"`
	Type     ledger.TransactionType `gorm:"type:varchar(10);not null;uniqueIndex:idx_categories_tenant_name_type"`
	IsSystem bool                   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "ledger_categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *ledger.Category {
	return &ledger.Category{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID: m.TenantID,
		Name:     m.Name,
		Type:     m.Type,
		IsSystem: m.IsSystem,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *ledger.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.TenantID = c.TenantID
	m.Name = c.Name
	m.Type = c.Type
	m.IsSystem = c.IsSystem
}

// CategoryModelFromDomain creates a new persistence model from domain.
func CategoryModelFromDomain(c *ledger.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// AccountModel is the persistence model for Account.
type AccountModel struct {
	BaseModel
	TenantID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Name     string             `gorm:"type:varchar(100);not null"`
	Type     ledger.AccountType `gorm:"type:varchar(10);not null"`
	Balance  decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	IsActive bool               `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "settlement_accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID: m.TenantID,
		Name:     m.Name,
		Type:     m.Type,
		Balance:  m.Balance,
		IsActive: m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.TenantID = a.TenantID
	m.Name = a.Name
	m.Type = a.Type
	m.Balance = a.Balance
	m.IsActive = a.IsActive
}

// AccountModelFromDomain creates a new persistence model from domain.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

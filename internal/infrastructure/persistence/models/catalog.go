package models

import (
	"github.com/campus/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceItemModel is the persistence model for ServiceItem.
type ServiceItemModel struct {
	TenantAggregateModel
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VATRatePercent decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	IsActive       bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ServiceItemModel) TableName() string {
	return "service_items"
}

// ToDomain converts the persistence model to a domain ServiceItem entity.
func (m *ServiceItemModel) ToDomain() *catalog.ServiceItem {
	item := &catalog.ServiceItem{
		Name:           m.Name,
		Description:    m.Description,
		UnitPrice:      m.UnitPrice,
		VATRatePercent: m.VATRatePercent,
		IsActive:       m.IsActive,
	}
	m.PopulateTenantAggregateRoot(&item.TenantAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain ServiceItem entity.
func (m *ServiceItemModel) FromDomain(item *catalog.ServiceItem) {
	m.FromDomainTenantAggregateRoot(item.TenantAggregateRoot)
	m.Name = item.Name
	m.Description = item.Description
	m.UnitPrice = item.UnitPrice
	m.VATRatePercent = item.VATRatePercent
	m.IsActive = item.IsActive
}

// ServiceItemModelFromDomain creates a new persistence model from domain.
func ServiceItemModelFromDomain(item *catalog.ServiceItem) *ServiceItemModel {
	m := &ServiceItemModel{}
	m.FromDomain(item)
	return m
}

// StudentModel is the persistence model for Student.
type StudentModel struct {
	TenantAggregateModel
	FirstName string     `gorm:"type:varchar(100);not null"`
	LastName  string     `gorm:"type:varchar(100);not null"`
	Number    string     `gorm:"type:varchar(50);index"`
	ClassID   *uuid.UUID `gorm:"type:uuid;index"`
	IsActive  bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the persistence model to a domain Student entity.
func (m *StudentModel) ToDomain() *catalog.Student {
	s := &catalog.Student{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Number:    m.Number,
		ClassID:   m.ClassID,
		IsActive:  m.IsActive,
	}
	m.PopulateTenantAggregateRoot(&s.TenantAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Student entity.
func (m *StudentModel) FromDomain(s *catalog.Student) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.FirstName = s.FirstName
	m.LastName = s.LastName
	m.Number = s.Number
	m.ClassID = s.ClassID
	m.IsActive = s.IsActive
}

// StudentModelFromDomain creates a new persistence model from domain.
func StudentModelFromDomain(s *catalog.Student) *StudentModel {
	m := &StudentModel{}
	m.FromDomain(s)
	return m
}

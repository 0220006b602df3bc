package models

import (
	"github.com/garmsource/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Company string `gorm:"type:varchar(200)"`
	Email   string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	Notes   string `gorm:"type:text"`
	Active  bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Company:           m.Company,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		Notes:             m.Notes,
		Active:            m.Active,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(customer *partner.Customer) *CustomerModel {
	model := &CustomerModel{
		Name:    customer.Name,
		Company: customer.Company,
		Email:   customer.Email,
		Phone:   customer.Phone,
		Address: customer.Address,
		Notes:   customer.Notes,
		Active:  customer.Active,
	}
	model.FromDomainAggregateRoot(customer.BaseAggregateRoot)
	return model
}

package models

import (
	"github.com/escrowdesk/backend/internal/domain/identity"
)

// UserModel is the persistence model for marketplace users
type UserModel struct {
	AggregateModel
	ExternalID  int64  `gorm:"not null;uniqueIndex"`
	Handle      string `gorm:"size:255"`
	Balance     int64  `gorm:"not null;default:0"`
	BankName    string `gorm:"size:255"`
	BankAccount string `gorm:"size:64"`
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		ExternalID:  m.ExternalID,
		Handle:      m.Handle,
		Balance:     m.Balance,
		BankName:    m.BankName,
		BankAccount: m.BankAccount,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// UserModelFromDomain converts a domain user to its persistence model
func UserModelFromDomain(user *identity.User) *UserModel {
	m := &UserModel{
		ExternalID:  user.ExternalID,
		Handle:      user.Handle,
		Balance:     user.Balance,
		BankName:    user.BankName,
		BankAccount: user.BankAccount,
	}
	m.FromDomainAggregateRoot(user.BaseAggregateRoot)
	return m
}

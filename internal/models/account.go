package models

import (
	"time"
)

// Role enum
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleDoctor   Role = "DOCTOR"
	RoleCustomer Role = "CUSTOMER"
)

// Gender enum. Only two values are accepted at registration.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// IsValid reports whether g is one of the accepted genders. The match is exact.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

// Account represents a login identity. Accounts are soft-deleted, never removed.
type Account struct {
	BaseModel
	Phone    string `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FullName string `gorm:"size:150" json:"fullName"`
	Gender   Gender `gorm:"size:10;not null" json:"gender"`
	Role     Role   `gorm:"size:20;not null" json:"role"`
	Deleted  bool   `gorm:"not null" json:"deleted"`

	Customer *Customer `gorm:"foreignKey:AccountID" json:"-"`
}

// AccountResponse represents the account data that is safe to send in API responses.
type AccountResponse struct {
	ID         uint      `json:"id"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Gender     Gender    `json:"gender"`
	Role       Role      `json:"role"`
	Deleted    bool      `json:"deleted"`
	CustomerID *uint     `json:"customerId,omitempty"` // customer accounts only
	Token      string    `json:"token,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Sanitize creates an AccountResponse from an Account, excluding the password hash.
func (a *Account) Sanitize() AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Phone:     a.Phone,
		Email:     a.Email,
		FullName:  a.FullName,
		Gender:    a.Gender,
		Role:      a.Role,
		Deleted:   a.Deleted,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

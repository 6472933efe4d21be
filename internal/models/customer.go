package models

// Customer is the profile created alongside every registered Account.
type Customer struct {
	BaseModel
	AccountID uint `gorm:"uniqueIndex;not null" json:"accountId"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

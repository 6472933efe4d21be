package models

// Doctor is referenced by appointments. Booking only checks that the row exists.
type Doctor struct {
	BaseModel
	AccountID *uint  `gorm:"index" json:"accountId,omitempty"`
	FullName  string `gorm:"size:150;not null" json:"fullName"`
	Specialty string `gorm:"size:100" json:"specialty"`
	Deleted   bool   `gorm:"not null" json:"deleted"`
}

// Staff authors blogs.
type Staff struct {
	BaseModel
	AccountID *uint  `gorm:"index" json:"accountId,omitempty"`
	FullName  string `gorm:"size:150;not null" json:"fullName"`
	Deleted   bool   `gorm:"not null" json:"deleted"`
}

// TableName pins the table name.
func (Staff) TableName() string {
	return "staffs"
}

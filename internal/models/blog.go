package models

// Blog is an article written by a staff member. CreatedAt is the publication date.
type Blog struct {
	BaseModel
	StaffID uint   `gorm:"index;not null" json:"staffId"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`

	Staff Staff `gorm:"foreignKey:StaffID" json:"-"`
}

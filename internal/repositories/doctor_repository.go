package repositories

import (
	"context"

	"clinic-booking-server/internal/models"

	"gorm.io/gorm"
)

// DoctorRepository defines the data operations on doctors.
type DoctorRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Doctor, error)
}

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a gorm DoctorRepository.
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) FindByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := conn(ctx, r.db).First(&doctor, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &doctor, nil
}

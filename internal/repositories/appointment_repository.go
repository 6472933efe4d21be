package repositories

import (
	"context"

	"clinic-booking-server/internal/models"

	"gorm.io/gorm"
)

// AppointmentRepository defines the data operations on appointments.
// Finders named Active skip soft-deleted rows.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	Save(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindDetailByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindByCustomerID(ctx context.Context, customerID uint) ([]models.Appointment, error)
	FindActive(ctx context.Context) ([]models.Appointment, error)
	FindActiveByDoctorID(ctx context.Context, doctorID uint) ([]models.Appointment, error)
	FindActiveByDoctorIDAndStatus(ctx context.Context, doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error)
	FindActiveByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error)
	CountActiveByDoctorID(ctx context.Context, doctorID uint) (int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a gorm AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return conn(ctx, r.db).Omit("Customer", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) Save(ctx context.Context, appointment *models.Appointment) error {
	return conn(ctx, r.db).Omit("Customer", "Doctor").Save(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := conn(ctx, r.db).First(&appointment, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &appointment, nil
}

// FindDetailByID loads the appointment with its customer account and doctor.
func (r *appointmentRepository) FindDetailByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := conn(ctx, r.db).
		Preload("Customer.Account").
		Preload("Doctor").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("scheduled_at desc").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) FindActive(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.active(ctx).Order("scheduled_at desc").Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) FindActiveByDoctorID(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.active(ctx).
		Where("doctor_id = ?", doctorID).
		Order("scheduled_at desc").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) FindActiveByDoctorIDAndStatus(ctx context.Context, doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.active(ctx).
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Order("scheduled_at desc").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) FindActiveByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.active(ctx).
		Where("status = ?", status).
		Order("scheduled_at desc").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) CountActiveByDoctorID(ctx context.Context, doctorID uint) (int64, error) {
	var count int64
	err := r.active(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) active(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Where("deleted = ?", false)
}

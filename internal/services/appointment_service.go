package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-booking-server/internal/apperror"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/reports"
	"clinic-booking-server/internal/repositories"

	"go.uber.org/zap"
)

const (
	msgBooked          = "Appointment booked successfully."
	msgInvalidBooking  = "Invalid customer or doctor ID"
	msgDoctorRequired  = "Doctor ID is required"
	msgStatusRequired  = "Status is required"
	msgIDRequired      = "Appointment ID is required"
	msgAppointmentGone = "Appointment has been deleted"
)

// AppointmentService books and queries appointments.
type AppointmentService struct {
	appointments repositories.AppointmentRepository
	customers    repositories.CustomerRepository
	doctors      repositories.DoctorRepository
	logger       *zap.Logger
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(
	appointments repositories.AppointmentRepository,
	customers repositories.CustomerRepository,
	doctors repositories.DoctorRepository,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		customers:    customers,
		doctors:      doctors,
		logger:       logger,
	}
}

// BookAppointment creates a PENDING appointment. Unknown customer or doctor ids
// produce a rejected result and nothing is stored.
func (s *AppointmentService) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*BookingResult, error) {
	customerFound, err := s.exists(func() error {
		_, err := s.customers.FindByID(ctx, req.CustomerID)
		return err
	})
	if err != nil {
		return nil, apperror.Internal("failed to load customer", err)
	}
	doctorFound, err := s.exists(func() error {
		_, err := s.doctors.FindByID(ctx, req.DoctorID)
		return err
	})
	if err != nil {
		return nil, apperror.Internal("failed to load doctor", err)
	}

	if !customerFound || !doctorFound {
		s.logger.Info("Booking rejected",
			zap.Uint("customer_id", req.CustomerID),
			zap.Uint("doctor_id", req.DoctorID),
		)
		return &BookingResult{Booked: false, Message: msgInvalidBooking}, nil
	}

	appointment := &models.Appointment{
		CustomerID:  req.CustomerID,
		DoctorID:    req.DoctorID,
		Type:        req.Type,
		Note:        req.Note,
		ScheduledAt: req.Datetime,
		Status:      models.StatusPending,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, apperror.Internal("failed to create appointment", err)
	}

	s.logger.Info("Appointment booked", zap.Uint("appointment_id", appointment.ID))
	resp := newAppointmentResponse(appointment)
	return &BookingResult{Booked: true, Message: msgBooked, Appointment: &resp}, nil
}

// GetAppointmentsByCustomer lists every appointment of a customer, including
// deleted ones.
func (s *AppointmentService) GetAppointmentsByCustomer(ctx context.Context, customerID uint) ([]AppointmentResponse, error) {
	appointments, err := s.appointments.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	return newAppointmentResponses(appointments), nil
}

// GetAllAppointments lists every non-deleted appointment.
func (s *AppointmentService) GetAllAppointments(ctx context.Context) ([]AppointmentResponse, error) {
	appointments, err := s.appointments.FindActive(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	return newAppointmentResponses(appointments), nil
}

func (s *AppointmentService) GetAppointmentsByDoctorID(ctx context.Context, doctorID uint) ([]AppointmentResponse, error) {
	appointments, err := s.activeByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return newAppointmentResponses(appointments), nil
}

func (s *AppointmentService) GetAppointmentsByDoctorIDAndStatus(ctx context.Context, doctorID uint, status string) ([]AppointmentResponse, error) {
	if doctorID == 0 {
		return nil, apperror.InvalidArgument(msgDoctorRequired)
	}
	parsed, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.FindActiveByDoctorIDAndStatus(ctx, doctorID, parsed)
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	return newAppointmentResponses(appointments), nil
}

// GetAppointmentDetail returns an active appointment with its customer and doctor.
func (s *AppointmentService) GetAppointmentDetail(ctx context.Context, id uint) (*AppointmentDetailResponse, error) {
	if id == 0 {
		return nil, apperror.InvalidArgument(msgIDRequired)
	}

	appointment, err := s.appointments.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.InvalidArgument(fmt.Sprintf("Appointment not found with ID: %d", id))
		}
		return nil, apperror.Internal("failed to load appointment", err)
	}
	if appointment.Deleted {
		return nil, apperror.InvalidArgument(msgAppointmentGone)
	}

	resp := newAppointmentDetailResponse(appointment)
	return &resp, nil
}

// HasDoctorAppointments reports whether the doctor has any active appointment.
func (s *AppointmentService) HasDoctorAppointments(ctx context.Context, doctorID uint) (bool, error) {
	count, err := s.CountAppointmentsByDoctorID(ctx, doctorID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountAppointmentsByDoctorID counts the doctor's active appointments.
func (s *AppointmentService) CountAppointmentsByDoctorID(ctx context.Context, doctorID uint) (int64, error) {
	if doctorID == 0 {
		return 0, apperror.InvalidArgument(msgDoctorRequired)
	}
	count, err := s.appointments.CountActiveByDoctorID(ctx, doctorID)
	if err != nil {
		return 0, apperror.Internal("failed to count appointments", err)
	}
	return count, nil
}

// GetDoctorSummary combines HasDoctorAppointments and CountAppointmentsByDoctorID.
func (s *AppointmentService) GetDoctorSummary(ctx context.Context, doctorID uint) (*DoctorAppointmentSummary, error) {
	count, err := s.CountAppointmentsByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return &DoctorAppointmentSummary{DoctorID: doctorID, HasAppointments: count > 0, Count: count}, nil
}

// GetAppointmentsByStatus lists active appointments with the given status,
// matched without regard to case.
func (s *AppointmentService) GetAppointmentsByStatus(ctx context.Context, status string) ([]AppointmentResponse, error) {
	parsed, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.FindActiveByStatus(ctx, parsed)
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	return newAppointmentResponses(appointments), nil
}

// UpdateAppointmentStatus moves an active appointment to status.
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, id uint, status string) (*AppointmentResponse, error) {
	parsed, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	appointment, err := s.findAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Deleted {
		return nil, apperror.IllegalState(msgAppointmentGone)
	}

	previous := appointment.Status
	appointment.Status = parsed
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, apperror.Internal("failed to update appointment", err)
	}

	s.logger.Info("Appointment status updated",
		zap.Uint("appointment_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(parsed)),
	)
	resp := newAppointmentResponse(appointment)
	return &resp, nil
}

// DeleteAppointment soft-deletes an appointment. Deleting twice is a no-op.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uint) error {
	appointment, err := s.findAppointment(ctx, id)
	if err != nil {
		return err
	}
	if appointment.Deleted {
		return nil
	}

	appointment.Deleted = true
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return apperror.Internal("failed to delete appointment", err)
	}
	s.logger.Info("Appointment deleted", zap.Uint("appointment_id", id))
	return nil
}

// ExportDoctorAppointments renders the doctor's active appointments as an xlsx workbook.
func (s *AppointmentService) ExportDoctorAppointments(ctx context.Context, doctorID uint) ([]byte, error) {
	appointments, err := s.activeByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	data, err := reports.AppointmentsWorkbook(appointments)
	if err != nil {
		return nil, apperror.Internal("failed to build export", err)
	}
	return data, nil
}

func (s *AppointmentService) activeByDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	if doctorID == 0 {
		return nil, apperror.InvalidArgument(msgDoctorRequired)
	}
	appointments, err := s.appointments.FindActiveByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	return appointments, nil
}

func (s *AppointmentService) findAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if id == 0 {
		return nil, apperror.InvalidArgument(msgIDRequired)
	}
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Appointment not found with ID: %d", id))
		}
		return nil, apperror.Internal("failed to load appointment", err)
	}
	return appointment, nil
}

// exists turns a finder's ErrNotFound into false.
func (s *AppointmentService) exists(find func() error) (bool, error) {
	err := find()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func parseStatus(raw string) (models.AppointmentStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperror.InvalidArgument(msgStatusRequired)
	}
	status, ok := models.ParseAppointmentStatus(raw)
	if !ok {
		return "", apperror.InvalidArgument(fmt.Sprintf("Invalid appointment status: %s", raw))
	}
	return status, nil
}

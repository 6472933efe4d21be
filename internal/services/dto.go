package services

import (
	"time"

	"clinic-booking-server/internal/models"
)

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Gender   string `json:"gender" binding:"required"`
}

// LoginRequest represents the request body for login. Username is the phone number.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ForgotPasswordRequest asks for a reset code to be sent to Phone.
type ForgotPasswordRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// ResetPasswordRequest completes a reset with the code received by SMS.
type ResetPasswordRequest struct {
	Phone           string `json:"phone" binding:"required"`
	OTP             string `json:"otp" binding:"required,len=6,numeric"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// BookAppointmentRequest represents the request body for booking.
type BookAppointmentRequest struct {
	CustomerID uint      `json:"customerId" binding:"required"`
	DoctorID   uint      `json:"doctorId" binding:"required"`
	Type       string    `json:"type"`
	Note       string    `json:"note"`
	Datetime   time.Time `json:"datetime" binding:"required"`
}

// UpdateAppointmentStatusRequest represents the request body for a status change.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentResponse is the list projection of an appointment.
type AppointmentResponse struct {
	ID         uint                     `json:"id"`
	CustomerID uint                     `json:"customerId"`
	DoctorID   uint                     `json:"doctorId"`
	Type       string                   `json:"type"`
	Note       string                   `json:"note"`
	Datetime   time.Time                `json:"datetime"`
	Status     models.AppointmentStatus `json:"status"`
	Deleted    bool                     `json:"deleted"`
}

func newAppointmentResponse(a *models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		DoctorID:   a.DoctorID,
		Type:       a.Type,
		Note:       a.Note,
		Datetime:   a.ScheduledAt,
		Status:     a.Status,
		Deleted:    a.Deleted,
	}
}

func newAppointmentResponses(appointments []models.Appointment) []AppointmentResponse {
	responses := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = newAppointmentResponse(&appointments[i])
	}
	return responses
}

// AppointmentDetailResponse adds the customer and doctor behind an appointment.
type AppointmentDetailResponse struct {
	AppointmentResponse
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerEmail   string    `json:"customerEmail"`
	DoctorName      string    `json:"doctorName"`
	DoctorSpecialty string    `json:"doctorSpecialty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func newAppointmentDetailResponse(a *models.Appointment) AppointmentDetailResponse {
	return AppointmentDetailResponse{
		AppointmentResponse: newAppointmentResponse(a),
		CustomerName:        a.Customer.Account.FullName,
		CustomerPhone:       a.Customer.Account.Phone,
		CustomerEmail:       a.Customer.Account.Email,
		DoctorName:          a.Doctor.FullName,
		DoctorSpecialty:     a.Doctor.Specialty,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// BookingResult reports the outcome of a booking. A rejected booking is not an
// error: Booked is false and Message carries the reason.
type BookingResult struct {
	Booked      bool                 `json:"booked"`
	Message     string               `json:"message"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}

// DoctorAppointmentSummary answers whether a doctor has active appointments.
type DoctorAppointmentSummary struct {
	DoctorID        uint  `json:"doctorId"`
	HasAppointments bool  `json:"hasAppointments"`
	Count           int64 `json:"count"`
}

// BlogResponse is the projection of a blog.
type BlogResponse struct {
	ID        uint      `json:"id"`
	StaffID   uint      `json:"staffId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func newBlogResponses(blogs []models.Blog) []BlogResponse {
	responses := make([]BlogResponse, len(blogs))
	for i, b := range blogs {
		responses[i] = BlogResponse{
			ID:        b.ID,
			StaffID:   b.StaffID,
			Title:     b.Title,
			Content:   b.Content,
			CreatedAt: b.CreatedAt,
		}
	}
	return responses
}

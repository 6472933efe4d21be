package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"clinic-booking-server/internal/apperror"
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/services"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AppointmentService is what AppointmentHandler needs from the booking service.
type AppointmentService interface {
	BookAppointment(ctx context.Context, req services.BookAppointmentRequest) (*services.BookingResult, error)
	GetAllAppointments(ctx context.Context) ([]services.AppointmentResponse, error)
	GetAppointmentsByCustomer(ctx context.Context, customerID uint) ([]services.AppointmentResponse, error)
	GetAppointmentsByDoctorID(ctx context.Context, doctorID uint) ([]services.AppointmentResponse, error)
	GetAppointmentsByDoctorIDAndStatus(ctx context.Context, doctorID uint, status string) ([]services.AppointmentResponse, error)
	GetAppointmentsByStatus(ctx context.Context, status string) ([]services.AppointmentResponse, error)
	GetAppointmentDetail(ctx context.Context, id uint) (*services.AppointmentDetailResponse, error)
	GetDoctorSummary(ctx context.Context, doctorID uint) (*services.DoctorAppointmentSummary, error)
	UpdateAppointmentStatus(ctx context.Context, id uint, status string) (*services.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uint) error
	ExportDoctorAppointments(ctx context.Context, doctorID uint) ([]byte, error)
}

// CustomerLookup resolves the customer profile behind an account.
type CustomerLookup interface {
	GetByAccountID(ctx context.Context, accountID uint) (*models.Customer, error)
}

// AppointmentHandler handles appointment related requests. Customers only see
// and book their own appointments; clinic roles are unrestricted.
type AppointmentHandler struct {
	appointments AppointmentService
	customers    CustomerLookup
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments AppointmentService, customers CustomerLookup) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, customers: customers}
}

// ownCustomerID returns the caller's customer id when the caller is a
// customer. restricted is false for every other role. When ok is false the
// response has already been written.
func (h *AppointmentHandler) ownCustomerID(c *gin.Context) (id uint, restricted, ok bool) {
	principal, found := middleware.GetPrincipal(c)
	if !found {
		utils.Unauthorized(c, "Authentication required")
		return 0, false, false
	}
	if principal.Role != models.RoleCustomer {
		return 0, false, true
	}

	customer, err := h.customers.GetByAccountID(c.Request.Context(), principal.AccountID)
	if errors.Is(err, apperror.NotFound("")) {
		utils.Forbidden(c, "No customer profile is linked to this account.")
		return 0, true, false
	}
	if err != nil {
		utils.RespondError(c, err)
		return 0, true, false
	}
	return customer.ID, true, true
}

// CreateAppointment books an appointment. Unknown customer or doctor ids are
// answered with 400 and the rejection reason.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req services.BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	own, restricted, ok := h.ownCustomerID(c)
	if !ok {
		return
	}
	if restricted && req.CustomerID != own {
		utils.Forbidden(c, "Customers can only book appointments for themselves.")
		return
	}

	result, err := h.appointments.BookAppointment(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !result.Booked {
		utils.BadRequest(c, result.Message)
		return
	}

	utils.Created(c, result.Message, result.Appointment)
}

// GetAppointments lists every active appointment.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	appointments, err := h.appointments.GetAllAppointments(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByStatus(c *gin.Context) {
	appointments, err := h.appointments.GetAppointmentsByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByCustomer(c *gin.Context) {
	customerID, ok := uintParam(c, "customerId")
	if !ok {
		return
	}

	own, restricted, ok := h.ownCustomerID(c)
	if !ok {
		return
	}
	if restricted && customerID != own {
		utils.Forbidden(c, "You do not have permission to access this resource.")
		return
	}

	appointments, err := h.appointments.GetAppointmentsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentsByDoctor lists a doctor's active appointments, narrowed by the
// optional status query parameter.
func (h *AppointmentHandler) GetAppointmentsByDoctor(c *gin.Context) {
	doctorID, ok := uintParam(c, "doctorId")
	if !ok {
		return
	}

	var (
		appointments []services.AppointmentResponse
		err          error
	)
	if status, filtered := c.GetQuery("status"); filtered {
		appointments, err = h.appointments.GetAppointmentsByDoctorIDAndStatus(c.Request.Context(), doctorID, status)
	} else {
		appointments, err = h.appointments.GetAppointmentsByDoctorID(c.Request.Context(), doctorID)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

func (h *AppointmentHandler) GetDoctorSummary(c *gin.Context) {
	doctorID, ok := uintParam(c, "doctorId")
	if !ok {
		return
	}

	summary, err := h.appointments.GetDoctorSummary(c.Request.Context(), doctorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Doctor summary fetched successfully", summary)
}

// ExportDoctorAppointments streams the doctor's active appointments as xlsx.
func (h *AppointmentHandler) ExportDoctorAppointments(c *gin.Context) {
	doctorID, ok := uintParam(c, "doctorId")
	if !ok {
		return
	}

	data, err := h.appointments.ExportDoctorAppointments(c.Request.Context(), doctorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("doctor-%d-appointments.xlsx", doctorID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GetAppointmentByID returns the detailed view of an active appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	own, restricted, ok := h.ownCustomerID(c)
	if !ok {
		return
	}

	detail, err := h.appointments.GetAppointmentDetail(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if restricted && detail.CustomerID != own {
		utils.Forbidden(c, "You do not have permission to access this resource.")
		return
	}
	utils.Success(c, "Appointment fetched successfully", detail)
}

// UpdateAppointmentStatus handles updating the status of an appointment.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.appointments.UpdateAppointmentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.appointments.DeleteAppointment(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}

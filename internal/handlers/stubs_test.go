package handlers

import (
	"context"
	"time"

	"clinic-booking-server/internal/apperror"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/otp"
	"clinic-booking-server/internal/security"
	"clinic-booking-server/internal/services"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- stubAuthService ---
var _ AuthService = (*stubAuthService)(nil)

type stubAuthService struct {
	Account *models.AccountResponse
	Entry   otp.Entry
	Err     error

	LastRegister  services.RegisterRequest
	LastLogin     services.LoginRequest
	LastPrincipal security.Principal
	LastPhone     string
}

func (s *stubAuthService) Register(_ context.Context, req services.RegisterRequest) (*models.AccountResponse, error) {
	s.LastRegister = req
	return s.Account, s.Err
}

func (s *stubAuthService) Login(_ context.Context, req services.LoginRequest) (*models.AccountResponse, error) {
	s.LastLogin = req
	return s.Account, s.Err
}

func (s *stubAuthService) GetCurrentAccount(_ context.Context, principal security.Principal) (*models.AccountResponse, error) {
	s.LastPrincipal = principal
	return s.Account, s.Err
}

func (s *stubAuthService) ChangePassword(_ context.Context, principal security.Principal, _ services.ChangePasswordRequest) error {
	s.LastPrincipal = principal
	return s.Err
}

func (s *stubAuthService) SendResetPasswordOtp(_ context.Context, phone string) (otp.Entry, error) {
	s.LastPhone = phone
	return s.Entry, s.Err
}

func (s *stubAuthService) ResetPassword(_ context.Context, req services.ResetPasswordRequest) error {
	s.LastPhone = req.Phone
	return s.Err
}

// --- stubAccountService ---
var _ AccountService = (*stubAccountService)(nil)

type stubAccountService struct {
	Accounts []models.AccountResponse
	Err      error
	LastID   uint
}

func (s *stubAccountService) GetAllAccounts(context.Context) ([]models.AccountResponse, error) {
	return s.Accounts, s.Err
}

func (s *stubAccountService) one(id uint) (*models.AccountResponse, error) {
	s.LastID = id
	if s.Err != nil {
		return nil, s.Err
	}
	return &models.AccountResponse{ID: id}, nil
}

func (s *stubAccountService) GetAccountByID(_ context.Context, id uint) (*models.AccountResponse, error) {
	return s.one(id)
}

func (s *stubAccountService) DeleteAccount(_ context.Context, id uint) (*models.AccountResponse, error) {
	return s.one(id)
}

func (s *stubAccountService) RestoreAccount(_ context.Context, id uint) (*models.AccountResponse, error) {
	return s.one(id)
}

// --- stubAppointmentService ---
var _ AppointmentService = (*stubAppointmentService)(nil)

type stubAppointmentService struct {
	Result       *services.BookingResult
	Appointments []services.AppointmentResponse
	Detail       *services.AppointmentDetailResponse
	Summary      *services.DoctorAppointmentSummary
	Export       []byte
	Err          error

	Calls      []string
	LastID     uint
	LastStatus string
	LastBook   services.BookAppointmentRequest
}

func (s *stubAppointmentService) list(name string) ([]services.AppointmentResponse, error) {
	s.Calls = append(s.Calls, name)
	return s.Appointments, s.Err
}

func (s *stubAppointmentService) BookAppointment(_ context.Context, req services.BookAppointmentRequest) (*services.BookingResult, error) {
	s.LastBook = req
	return s.Result, s.Err
}

func (s *stubAppointmentService) GetAllAppointments(context.Context) ([]services.AppointmentResponse, error) {
	return s.list("GetAllAppointments")
}

func (s *stubAppointmentService) GetAppointmentsByCustomer(_ context.Context, customerID uint) ([]services.AppointmentResponse, error) {
	s.LastID = customerID
	return s.list("GetAppointmentsByCustomer")
}

func (s *stubAppointmentService) GetAppointmentsByDoctorID(_ context.Context, doctorID uint) ([]services.AppointmentResponse, error) {
	s.LastID = doctorID
	return s.list("GetAppointmentsByDoctorID")
}

func (s *stubAppointmentService) GetAppointmentsByDoctorIDAndStatus(_ context.Context, doctorID uint, status string) ([]services.AppointmentResponse, error) {
	s.LastID, s.LastStatus = doctorID, status
	return s.list("GetAppointmentsByDoctorIDAndStatus")
}

func (s *stubAppointmentService) GetAppointmentsByStatus(_ context.Context, status string) ([]services.AppointmentResponse, error) {
	s.LastStatus = status
	return s.list("GetAppointmentsByStatus")
}

func (s *stubAppointmentService) GetAppointmentDetail(_ context.Context, id uint) (*services.AppointmentDetailResponse, error) {
	s.LastID = id
	return s.Detail, s.Err
}

func (s *stubAppointmentService) GetDoctorSummary(_ context.Context, doctorID uint) (*services.DoctorAppointmentSummary, error) {
	s.LastID = doctorID
	return s.Summary, s.Err
}

func (s *stubAppointmentService) UpdateAppointmentStatus(_ context.Context, id uint, status string) (*services.AppointmentResponse, error) {
	s.LastID, s.LastStatus = id, status
	if s.Err != nil {
		return nil, s.Err
	}
	return &services.AppointmentResponse{ID: id, Status: models.AppointmentStatus(status)}, nil
}

func (s *stubAppointmentService) DeleteAppointment(_ context.Context, id uint) error {
	s.LastID = id
	return s.Err
}

func (s *stubAppointmentService) ExportDoctorAppointments(_ context.Context, doctorID uint) ([]byte, error) {
	s.LastID = doctorID
	return s.Export, s.Err
}

// --- stubCustomers ---
var _ CustomerLookup = stubCustomers{}

// stubCustomers maps account ids to customer ids.
type stubCustomers map[uint]uint

func (s stubCustomers) GetByAccountID(_ context.Context, accountID uint) (*models.Customer, error) {
	id, ok := s[accountID]
	if !ok {
		return nil, apperror.NotFound("Customer not found")
	}
	return &models.Customer{BaseModel: models.BaseModel{ID: id}, AccountID: accountID}, nil
}

// --- stubBlogService ---
var _ BlogService = (*stubBlogService)(nil)

type stubBlogService struct {
	Blogs []services.BlogResponse
	Count int64
	Err   error

	Calls     []string
	LastArg   string
	LastID    uint
	LastStart time.Time
	LastEnd   time.Time
	LastYear  int
	LastMonth int
}

func (s *stubBlogService) list(name string) ([]services.BlogResponse, error) {
	s.Calls = append(s.Calls, name)
	return s.Blogs, s.Err
}

func (s *stubBlogService) GetBlogByID(_ context.Context, id uint) (*services.BlogResponse, error) {
	s.LastID = id
	if s.Err != nil {
		return nil, s.Err
	}
	return &services.BlogResponse{ID: id}, nil
}

func (s *stubBlogService) GetBlogsByStaffID(_ context.Context, staffID uint) ([]services.BlogResponse, error) {
	s.LastID = staffID
	return s.list("GetBlogsByStaffID")
}

func (s *stubBlogService) SearchByTitle(_ context.Context, title string) ([]services.BlogResponse, error) {
	s.LastArg = title
	return s.list("SearchByTitle")
}

func (s *stubBlogService) GetBlogsCreatedAfter(_ context.Context, date time.Time) ([]services.BlogResponse, error) {
	s.LastStart = date
	return s.list("GetBlogsCreatedAfter")
}

func (s *stubBlogService) GetBlogsCreatedBefore(_ context.Context, date time.Time) ([]services.BlogResponse, error) {
	s.LastEnd = date
	return s.list("GetBlogsCreatedBefore")
}

func (s *stubBlogService) GetBlogsCreatedBetween(_ context.Context, start, end time.Time) ([]services.BlogResponse, error) {
	s.LastStart, s.LastEnd = start, end
	return s.list("GetBlogsCreatedBetween")
}

func (s *stubBlogService) GetBlogsByActiveStaff(context.Context) ([]services.BlogResponse, error) {
	return s.list("GetBlogsByActiveStaff")
}

func (s *stubBlogService) SearchByContent(_ context.Context, keyword string) ([]services.BlogResponse, error) {
	s.LastArg = keyword
	return s.list("SearchByContent")
}

func (s *stubBlogService) SearchByTitleOrContent(_ context.Context, keyword string) ([]services.BlogResponse, error) {
	s.LastArg = keyword
	return s.list("SearchByTitleOrContent")
}

func (s *stubBlogService) GetBlogsByYearAndMonth(_ context.Context, year, month int) ([]services.BlogResponse, error) {
	s.LastYear, s.LastMonth = year, month
	return s.list("GetBlogsByYearAndMonth")
}

func (s *stubBlogService) CountBlogsByStaffID(_ context.Context, staffID uint) (int64, error) {
	s.LastID = staffID
	return s.Count, s.Err
}

func (s *stubBlogService) GetLatestBlogs(context.Context) ([]services.BlogResponse, error) {
	return s.list("GetLatestBlogs")
}

func (s *stubBlogService) GetAllBlogsSorted(context.Context) ([]services.BlogResponse, error) {
	return s.list("GetAllBlogsSorted")
}

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/otp"
	"clinic-booking-server/internal/repositories"

	"go.uber.org/zap"
)

var errStore = errors.New("store unavailable")

// --- fakeAccountRepository ---
var _ repositories.AccountRepository = (*fakeAccountRepository)(nil)

type fakeAccountRepository struct {
	rows   map[uint]models.Account
	nextID uint

	CreateErr       error
	CreateCallCount int32
	SaveCallCount   int32
}

func newFakeAccountRepository(accounts ...models.Account) *fakeAccountRepository {
	r := &fakeAccountRepository{rows: make(map[uint]models.Account)}
	for _, a := range accounts {
		r.rows[a.ID] = a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *fakeAccountRepository) Create(_ context.Context, account *models.Account) error {
	atomic.AddInt32(&r.CreateCallCount, 1)
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.nextID++
	account.ID = r.nextID
	r.rows[account.ID] = *account
	return nil
}

func (r *fakeAccountRepository) Save(_ context.Context, account *models.Account) error {
	atomic.AddInt32(&r.SaveCallCount, 1)
	r.rows[account.ID] = *account
	return nil
}

func (r *fakeAccountRepository) FindByID(_ context.Context, id uint) (*models.Account, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (r *fakeAccountRepository) FindByPhone(_ context.Context, phone string) (*models.Account, error) {
	for _, a := range r.rows {
		if a.Phone == phone {
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAccountRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	_, err := r.FindByPhone(ctx, phone)
	return err == nil, nil
}

func (r *fakeAccountRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, a := range r.rows {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepository) FindAll(_ context.Context) ([]models.Account, error) {
	out := make([]models.Account, 0, len(r.rows))
	for id := uint(1); id <= r.nextID; id++ {
		if a, ok := r.rows[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepository) snapshot() map[uint]models.Account {
	c := make(map[uint]models.Account, len(r.rows))
	for k, v := range r.rows {
		c[k] = v
	}
	return c
}

// --- fakeCustomerRepository ---
var _ repositories.CustomerRepository = (*fakeCustomerRepository)(nil)

type fakeCustomerRepository struct {
	rows   map[uint]models.Customer
	nextID uint

	CreateErr error
}

func newFakeCustomerRepository(customers ...models.Customer) *fakeCustomerRepository {
	r := &fakeCustomerRepository{rows: make(map[uint]models.Customer)}
	for _, c := range customers {
		r.rows[c.ID] = c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeCustomerRepository) Create(_ context.Context, customer *models.Customer) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.nextID++
	customer.ID = r.nextID
	r.rows[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepository) FindByID(_ context.Context, id uint) (*models.Customer, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepository) FindByAccountID(_ context.Context, accountID uint) (*models.Customer, error) {
	for _, c := range r.rows {
		if c.AccountID == accountID {
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- fakeDoctorRepository ---
var _ repositories.DoctorRepository = fakeDoctorRepository{}

type fakeDoctorRepository map[uint]models.Doctor

func (r fakeDoctorRepository) FindByID(_ context.Context, id uint) (*models.Doctor, error) {
	d, ok := r[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &d, nil
}

// --- fakeAppointmentRepository ---
var _ repositories.AppointmentRepository = (*fakeAppointmentRepository)(nil)

type fakeAppointmentRepository struct {
	rows []models.Appointment

	FindErr         error
	CreateCallCount int32
	// LastStatusFilter records the status handed to the store by status finders.
	LastStatusFilter models.AppointmentStatus
}

func (r *fakeAppointmentRepository) Create(_ context.Context, appointment *models.Appointment) error {
	atomic.AddInt32(&r.CreateCallCount, 1)
	appointment.ID = uint(len(r.rows) + 1)
	r.rows = append(r.rows, *appointment)
	return nil
}

func (r *fakeAppointmentRepository) Save(_ context.Context, appointment *models.Appointment) error {
	for i := range r.rows {
		if r.rows[i].ID == appointment.ID {
			r.rows[i] = *appointment
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeAppointmentRepository) FindByID(_ context.Context, id uint) (*models.Appointment, error) {
	for _, a := range r.rows {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAppointmentRepository) FindDetailByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeAppointmentRepository) FindByCustomerID(_ context.Context, customerID uint) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool { return a.CustomerID == customerID }), r.FindErr
}

func (r *fakeAppointmentRepository) FindActive(_ context.Context) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool { return !a.Deleted }), r.FindErr
}

func (r *fakeAppointmentRepository) FindActiveByDoctorID(_ context.Context, doctorID uint) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool { return !a.Deleted && a.DoctorID == doctorID }), r.FindErr
}

func (r *fakeAppointmentRepository) FindActiveByDoctorIDAndStatus(_ context.Context, doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	r.LastStatusFilter = status
	return r.filter(func(a models.Appointment) bool {
		return !a.Deleted && a.DoctorID == doctorID && a.Status == status
	}), r.FindErr
}

func (r *fakeAppointmentRepository) FindActiveByStatus(_ context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	r.LastStatusFilter = status
	return r.filter(func(a models.Appointment) bool { return !a.Deleted && a.Status == status }), r.FindErr
}

func (r *fakeAppointmentRepository) CountActiveByDoctorID(ctx context.Context, doctorID uint) (int64, error) {
	rows, err := r.FindActiveByDoctorID(ctx, doctorID)
	return int64(len(rows)), err
}

func (r *fakeAppointmentRepository) filter(keep func(models.Appointment) bool) []models.Appointment {
	out := []models.Appointment{}
	for _, a := range r.rows {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// --- MockBlogRepository ---
var _ repositories.BlogRepository = (*MockBlogRepository)(nil)

// MockBlogRepository answers every finder with Blogs, recording the arguments.
type MockBlogRepository struct {
	Blogs []models.Blog
	Count int64
	Err   error

	Calls     []string
	LastStart time.Time
	LastEnd   time.Time
	LastArg   string
}

func (m *MockBlogRepository) record(name string) ([]models.Blog, error) {
	m.Calls = append(m.Calls, name)
	return m.Blogs, m.Err
}

func (m *MockBlogRepository) FindByID(_ context.Context, id uint) (*models.Blog, error) {
	m.Calls = append(m.Calls, "FindByID")
	if m.Err != nil {
		return nil, m.Err
	}
	for _, b := range m.Blogs {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *MockBlogRepository) FindByStaffID(_ context.Context, _ uint) ([]models.Blog, error) {
	return m.record("FindByStaffID")
}

func (m *MockBlogRepository) FindByTitleContaining(_ context.Context, title string) ([]models.Blog, error) {
	m.LastArg = title
	return m.record("FindByTitleContaining")
}

func (m *MockBlogRepository) FindCreatedAfter(_ context.Context, date time.Time) ([]models.Blog, error) {
	m.LastStart = date
	return m.record("FindCreatedAfter")
}

func (m *MockBlogRepository) FindCreatedBefore(_ context.Context, date time.Time) ([]models.Blog, error) {
	m.LastEnd = date
	return m.record("FindCreatedBefore")
}

func (m *MockBlogRepository) FindCreatedBetween(_ context.Context, start, end time.Time) ([]models.Blog, error) {
	m.LastStart, m.LastEnd = start, end
	return m.record("FindCreatedBetween")
}

func (m *MockBlogRepository) FindByActiveStaff(_ context.Context) ([]models.Blog, error) {
	return m.record("FindByActiveStaff")
}

func (m *MockBlogRepository) FindByContentContaining(_ context.Context, keyword string) ([]models.Blog, error) {
	m.LastArg = keyword
	return m.record("FindByContentContaining")
}

func (m *MockBlogRepository) FindByTitleOrContentContaining(_ context.Context, keyword string) ([]models.Blog, error) {
	m.LastArg = keyword
	return m.record("FindByTitleOrContentContaining")
}

func (m *MockBlogRepository) FindByYearAndMonth(_ context.Context, _ int, _ time.Month) ([]models.Blog, error) {
	return m.record("FindByYearAndMonth")
}

func (m *MockBlogRepository) CountByStaffID(_ context.Context, _ uint) (int64, error) {
	m.Calls = append(m.Calls, "CountByStaffID")
	return m.Count, m.Err
}

func (m *MockBlogRepository) FindLatest(_ context.Context) ([]models.Blog, error) {
	return m.record("FindLatest")
}

func (m *MockBlogRepository) FindAllOrderByCreatedDesc(_ context.Context) ([]models.Blog, error) {
	return m.record("FindAllOrderByCreatedDesc")
}

// --- fakeTransactor ---

// fakeTransactor restores the account rows when fn fails, standing in for a rollback.
type fakeTransactor struct {
	accounts  *fakeAccountRepository
	customers *fakeCustomerRepository
	CallCount int32
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	atomic.AddInt32(&t.CallCount, 1)
	accounts, nextAccount := t.accounts.snapshot(), t.accounts.nextID
	customers, nextCustomer := make(map[uint]models.Customer), t.customers.nextID
	for k, v := range t.customers.rows {
		customers[k] = v
	}
	if err := fn(ctx); err != nil {
		t.accounts.rows, t.accounts.nextID = accounts, nextAccount
		t.customers.rows, t.customers.nextID = customers, nextCustomer
		return err
	}
	return nil
}

// --- fakeOTPStore ---
var _ otp.Store = (*fakeOTPStore)(nil)

type fakeOTPStore struct {
	mu      sync.Mutex
	entries map[string]otp.Entry
	ttls    map[string]time.Duration
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{entries: make(map[string]otp.Entry), ttls: make(map[string]time.Duration)}
}

func (s *fakeOTPStore) Save(_ context.Context, phone string, entry otp.Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Attempts = 0
	s.entries[phone] = entry
	s.ttls[phone] = ttl
	return nil
}

func (s *fakeOTPStore) RecordFailure(_ context.Context, phone string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[phone]
	if !ok {
		return 0, otp.ErrNotFound
	}
	entry.Attempts++
	s.entries[phone] = entry
	return entry.Attempts, nil
}

func (s *fakeOTPStore) Get(_ context.Context, phone string) (otp.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[phone]
	if !ok {
		return otp.Entry{}, otp.ErrNotFound
	}
	return entry, nil
}

func (s *fakeOTPStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
	return nil
}

// --- recordingSender ---

type sentMessage struct {
	Phone   string
	Message string
}

type recordingSender struct {
	Sent []sentMessage
	Err  error
}

func (s *recordingSender) Send(_ context.Context, phone, message string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, sentMessage{Phone: phone, Message: message})
	return nil
}

// --- stubTokens ---

type stubTokens struct {
	Err error
}

func (s stubTokens) GenerateToken(account *models.Account) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return "token-for-" + account.Phone, nil
}

var testLogger = zap.NewNop()

package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-booking-server/internal/apperror"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/notify"
	"clinic-booking-server/internal/otp"
	"clinic-booking-server/internal/repositories"
	"clinic-booking-server/internal/security"

	"go.uber.org/zap"
)

// DefaultOTPExpiration is how long a reset code stays valid.
const DefaultOTPExpiration = 5 * time.Minute

// CustomerProfiles creates and resolves the profile that accompanies a
// customer account.
type CustomerProfiles interface {
	CreateCustomer(ctx context.Context, accountID uint) (*models.Customer, error)
	GetByAccountID(ctx context.Context, accountID uint) (*models.Customer, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(account *models.Account) (string, error)
}

// AuthDependencies groups the collaborators of AuthService.
type AuthDependencies struct {
	Accounts      repositories.AccountRepository
	Customers     CustomerProfiles
	Transactor    repositories.Transactor
	Encoder       security.PasswordEncoder
	Tokens        TokenIssuer
	OTPs          otp.Store
	SMS           notify.SMSSender
	OTPExpiration time.Duration
	Logger        *zap.Logger
}

// AuthService handles registration, login, passwords and account lifecycle.
type AuthService struct {
	accounts  repositories.AccountRepository
	customers CustomerProfiles
	tx        repositories.Transactor
	encoder   security.PasswordEncoder
	authn     security.Authenticator
	tokens    TokenIssuer
	otps      otp.Store
	sms       notify.SMSSender
	otpTTL    time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService. Credentials are checked by a
// security.CredentialsAuthenticator that loads accounts through the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	ttl := deps.OTPExpiration
	if ttl <= 0 {
		ttl = DefaultOTPExpiration
	}
	s := &AuthService{
		accounts:  deps.Accounts,
		customers: deps.Customers,
		tx:        deps.Transactor,
		encoder:   deps.Encoder,
		tokens:    deps.Tokens,
		otps:      deps.OTPs,
		sms:       deps.SMS,
		otpTTL:    ttl,
		logger:    deps.Logger,
		now:       time.Now,
	}
	s.authn = security.NewCredentialsAuthenticator(s, deps.Encoder)
	return s
}

// Register creates an account and its customer profile in one transaction.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.AccountResponse, error) {
	account := &models.Account{
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.TrimSpace(req.Email),
		FullName: req.FullName,
		Gender:   models.Gender(req.Gender),
		Role:     models.RoleCustomer,
	}

	if !account.Gender.IsValid() {
		return nil, apperror.InvalidArgument("Not Valid Gender!")
	}

	exists, err := s.accounts.ExistsByPhone(ctx, account.Phone)
	if err != nil {
		return nil, apperror.Internal("failed to check phone", err)
	}
	if exists {
		return nil, apperror.Duplicate("Duplicate phone!")
	}

	exists, err = s.accounts.ExistsByEmail(ctx, account.Email)
	if err != nil {
		return nil, apperror.Internal("failed to check email", err)
	}
	if exists {
		return nil, apperror.Duplicate("Duplicate Email!")
	}

	var customer *models.Customer
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		hashed, err := s.encoder.Encode(req.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		account.Password = hashed

		if err := s.accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		customer, err = s.customers.CreateCustomer(ctx, account.ID)
		return err
	})
	// A concurrent registration can pass the checks above and still lose on
	// the unique index.
	if errors.Is(err, repositories.ErrDuplicate) {
		s.logger.Info("Registration lost unique race", zap.String("phone", account.Phone))
		return nil, apperror.Duplicate("Duplicate phone or email!")
	}
	if err != nil {
		s.logger.Error("Registration failed", zap.String("phone", account.Phone), zap.Error(err))
		return nil, apperror.Wrap(err, "An unexpected error occurred")
	}

	s.logger.Info("Account registered", zap.Uint("account_id", account.ID))
	resp := account.Sanitize()
	resp.CustomerID = &customer.ID
	return &resp, nil
}

// Login verifies credentials and attaches a session token to the response.
// Every failure yields the same message.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*models.AccountResponse, error) {
	account, err := s.authn.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Info("Login rejected", zap.String("username", req.Username), zap.Error(err))
		return nil, apperror.Unauthenticated("Username or password invalid!")
	}

	token, err := s.tokens.GenerateToken(account)
	if err != nil {
		s.logger.Error("Token issuing failed", zap.Uint("account_id", account.ID), zap.Error(err))
		return nil, apperror.Unauthenticated("Username or password invalid!")
	}

	resp, err := s.respond(ctx, account)
	if err != nil {
		return nil, err
	}
	resp.Token = token
	return resp, nil
}

// LoadUserByUsername resolves the account whose phone is username.
func (s *AuthService) LoadUserByUsername(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.accounts.FindByPhone(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Internal("failed to load account", err)
	}
	return account, nil
}

// GetCurrentAccount re-reads the principal's account from the store.
func (s *AuthService) GetCurrentAccount(ctx context.Context, principal security.Principal) (*models.AccountResponse, error) {
	account, err := s.findAccount(ctx, principal.AccountID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, account)
}

// IsAccountActive reports whether the account still exists and is not deleted.
func (s *AuthService) IsAccountActive(ctx context.Context, accountID uint) (bool, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Internal("failed to load account", err)
	}
	return !account.Deleted, nil
}

// ChangePassword replaces the principal's password.
func (s *AuthService) ChangePassword(ctx context.Context, principal security.Principal, req ChangePasswordRequest) error {
	account, err := s.findAccount(ctx, principal.AccountID)
	if err != nil {
		return err
	}

	if !s.encoder.Matches(req.CurrentPassword, account.Password) {
		return apperror.InvalidArgument("Current password is incorrect.")
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperror.InvalidArgument("New password and confirm password do not match.")
	}
	if req.NewPassword == req.CurrentPassword {
		return apperror.InvalidArgument("New password cannot be the same as the current password.")
	}

	return s.storePassword(ctx, account, req.NewPassword)
}

// SendResetPasswordOtp issues a reset code for phone and sends it by SMS. A
// second call before expiry replaces the first code.
func (s *AuthService) SendResetPasswordOtp(ctx context.Context, phone string) (otp.Entry, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return otp.Entry{}, apperror.InvalidArgument("Phone number is required")
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return otp.Entry{}, apperror.Internal("failed to generate otp", err)
	}

	entry := otp.Entry{Code: code, ExpiresAt: s.now().Add(s.otpTTL)}
	if err := s.otps.Save(ctx, phone, entry, s.otpTTL); err != nil {
		return otp.Entry{}, apperror.Internal("failed to store otp", err)
	}

	message := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.", code, int(s.otpTTL.Minutes()))
	if err := s.sms.Send(ctx, phone, message); err != nil {
		return otp.Entry{}, apperror.Internal("failed to send otp", err)
	}

	return entry, nil
}

// ResetPassword sets a new password once the reset code for the phone checks out.
// The code is single use and is discarded after otp.MaxAttempts wrong guesses.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	entry, err := s.otps.Get(ctx, req.Phone)
	if err != nil && !errors.Is(err, otp.ErrNotFound) {
		return apperror.Internal("failed to read otp", err)
	}
	if err != nil || entry.Expired(s.now()) || entry.Locked() {
		return apperror.InvalidArgument("Invalid or expired OTP.")
	}
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(req.OTP)) != 1 {
		s.recordOtpFailure(ctx, req.Phone)
		return apperror.InvalidArgument("Invalid or expired OTP.")
	}

	account, err := s.accounts.FindByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.InvalidArgument("User not found.")
		}
		return apperror.Internal("failed to load account", err)
	}

	if req.NewPassword != req.ConfirmPassword {
		return apperror.InvalidArgument("New password and confirm password do not match.")
	}

	if err := s.storePassword(ctx, account, req.NewPassword); err != nil {
		return err
	}

	if err := s.otps.Delete(ctx, req.Phone); err != nil {
		s.logger.Warn("Failed to delete used otp", zap.String("phone", req.Phone), zap.Error(err))
	}
	return nil
}

// GetAllAccounts lists every account, deleted ones included.
func (s *AuthService) GetAllAccounts(ctx context.Context) ([]models.AccountResponse, error) {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list accounts", err)
	}
	responses := make([]models.AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = accounts[i].Sanitize()
	}
	return responses, nil
}

func (s *AuthService) GetAccountByID(ctx context.Context, id uint) (*models.AccountResponse, error) {
	account, err := s.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := account.Sanitize()
	return &resp, nil
}

// DeleteAccount marks the account deleted.
func (s *AuthService) DeleteAccount(ctx context.Context, id uint) (*models.AccountResponse, error) {
	account, err := s.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	account.Deleted = true
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, apperror.Internal("failed to delete account", err)
	}

	s.logger.Info("Account deleted", zap.Uint("account_id", id))
	resp := account.Sanitize()
	return &resp, nil
}

// RestoreAccount clears the deleted flag. Restoring an active account is an error.
func (s *AuthService) RestoreAccount(ctx context.Context, id uint) (*models.AccountResponse, error) {
	account, err := s.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.Deleted {
		return nil, apperror.IllegalState("Account is not deleted")
	}

	account.Deleted = false
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, apperror.Internal("failed to restore account", err)
	}

	s.logger.Info("Account restored", zap.Uint("account_id", id))
	resp := account.Sanitize()
	return &resp, nil
}

func (s *AuthService) recordOtpFailure(ctx context.Context, phone string) {
	attempts, err := s.otps.RecordFailure(ctx, phone)
	if err != nil {
		s.logger.Warn("Failed to record otp attempt", zap.String("phone", phone), zap.Error(err))
		return
	}
	if attempts < otp.MaxAttempts {
		return
	}

	s.logger.Warn("OTP attempts exhausted", zap.String("phone", phone), zap.Int("attempts", attempts))
	if err := s.otps.Delete(ctx, phone); err != nil {
		s.logger.Warn("Failed to delete exhausted otp", zap.String("phone", phone), zap.Error(err))
	}
}

// respond sanitizes account and attaches the customer id for customer accounts.
func (s *AuthService) respond(ctx context.Context, account *models.Account) (*models.AccountResponse, error) {
	resp := account.Sanitize()
	if account.Role != models.RoleCustomer {
		return &resp, nil
	}

	customer, err := s.customers.GetByAccountID(ctx, account.ID)
	if errors.Is(err, apperror.NotFound("")) {
		return &resp, nil
	}
	if err != nil {
		return nil, err
	}
	resp.CustomerID = &customer.ID
	return &resp, nil
}

func (s *AuthService) findAccount(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Internal("failed to load account", err)
	}
	return account, nil
}

func (s *AuthService) storePassword(ctx context.Context, account *models.Account, raw string) error {
	hashed, err := s.encoder.Encode(raw)
	if err != nil {
		return apperror.Internal("failed to hash password", err)
	}
	account.Password = hashed
	if err := s.accounts.Save(ctx, account); err != nil {
		return apperror.Internal("failed to save password", err)
	}
	return nil
}

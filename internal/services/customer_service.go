package services

import (
	"context"
	"errors"

	"clinic-booking-server/internal/apperror"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/repositories"

	"go.uber.org/zap"
)

// CustomerService manages customer profiles.
type CustomerService struct {
	customers repositories.CustomerRepository
	accounts  repositories.AccountRepository
	logger    *zap.Logger
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customers repositories.CustomerRepository, accounts repositories.AccountRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, accounts: accounts, logger: logger}
}

// CreateCustomer creates the profile linked to an existing account.
func (s *CustomerService) CreateCustomer(ctx context.Context, accountID uint) (*models.Customer, error) {
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Internal("failed to load account", err)
	}

	customer := &models.Customer{AccountID: accountID}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperror.Internal("failed to create customer", err)
	}

	s.logger.Info("Customer profile created",
		zap.Uint("account_id", accountID),
		zap.Uint("customer_id", customer.ID),
	)
	return customer, nil
}

// GetByAccountID returns the profile linked to an account.
func (s *CustomerService) GetByAccountID(ctx context.Context, accountID uint) (*models.Customer, error) {
	customer, err := s.customers.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Customer not found")
		}
		return nil, apperror.Internal("failed to load customer", err)
	}
	return customer, nil
}

package repositories

import (
	"context"

	"clinic-booking-server/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository defines the data operations on customer profiles.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByAccountID(ctx context.Context, accountID uint) (*models.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a gorm CustomerRepository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return duplicate(conn(ctx, r.db).Omit("Account").Create(customer).Error)
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := conn(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

func (r *customerRepository) FindByAccountID(ctx context.Context, accountID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := conn(ctx, r.db).Where("account_id = ?", accountID).First(&customer).Error; err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

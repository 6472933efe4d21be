package repositories

import (
	"context"

	"clinic-booking-server/internal/models"

	"gorm.io/gorm"
)

// AccountRepository defines the data operations on accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	Save(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uint) (*models.Account, error)
	FindByPhone(ctx context.Context, phone string) (*models.Account, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context) ([]models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a gorm AccountRepository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	return duplicate(conn(ctx, r.db).Create(account).Error)
}

func (r *accountRepository) Save(ctx context.Context, account *models.Account) error {
	return conn(ctx, r.db).Save(account).Error
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := conn(ctx, r.db).First(&account, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *accountRepository) FindByPhone(ctx context.Context, phone string) (*models.Account, error) {
	var account models.Account
	if err := conn(ctx, r.db).Where("phone = ?", phone).First(&account).Error; err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *accountRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Account{}).Where("phone = ?", phone).Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Account{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) FindAll(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := conn(ctx, r.db).Order("id").Find(&accounts).Error
	return accounts, err
}

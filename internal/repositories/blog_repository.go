package repositories

import (
	"context"
	"strings"
	"time"

	"clinic-booking-server/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines the read operations on blogs. Date ranges compare
// against the creation timestamp.
type BlogRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Blog, error)
	FindByStaffID(ctx context.Context, staffID uint) ([]models.Blog, error)
	FindByTitleContaining(ctx context.Context, title string) ([]models.Blog, error)
	FindCreatedAfter(ctx context.Context, date time.Time) ([]models.Blog, error)
	FindCreatedBefore(ctx context.Context, date time.Time) ([]models.Blog, error)
	FindCreatedBetween(ctx context.Context, start, end time.Time) ([]models.Blog, error)
	FindByActiveStaff(ctx context.Context) ([]models.Blog, error)
	FindByContentContaining(ctx context.Context, keyword string) ([]models.Blog, error)
	FindByTitleOrContentContaining(ctx context.Context, keyword string) ([]models.Blog, error)
	FindByYearAndMonth(ctx context.Context, year int, month time.Month) ([]models.Blog, error)
	CountByStaffID(ctx context.Context, staffID uint) (int64, error)
	FindLatest(ctx context.Context) ([]models.Blog, error)
	FindAllOrderByCreatedDesc(ctx context.Context) ([]models.Blog, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a gorm BlogRepository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) FindByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := conn(ctx, r.db).First(&blog, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &blog, nil
}

func (r *blogRepository) FindByStaffID(ctx context.Context, staffID uint) ([]models.Blog, error) {
	return r.find(conn(ctx, r.db).Where("staff_id = ?", staffID))
}

func (r *blogRepository) FindByTitleContaining(ctx context.Context, title string) ([]models.Blog, error) {
	return r.find(conn(ctx, r.db).Where("LOWER(title) LIKE ?", contains(strings.ToLower(title))))
}

func (r *blogRepository) FindCreatedAfter(ctx context.Context, date time.Time) ([]models.Blog, error) {
	return r.find(conn(ctx, r.db).Where("created_at > ?", date))
}

func (r *blogRepository) FindCreatedBefore(ctx context.Context, date time.Time) ([]models.Blog, error) {
	return r.find(conn(ctx, r.db).Where("created_at < ?", date))
}

func (r *blogRepository) FindCreatedBetween(ctx context.Context, start, end time.Time) ([]models.Blog, error) {
	return r.find(conn(ctx, r.db).Where("created_at BETWEEN ? AND ?", start, end))
}

func (r *blogRepository) FindByActiveStaff(ctx context.Context) ([]models.Blog, error) {
	return r.find(conn(ctx, r.db).
		Joins("JOIN staffs ON staffs.id = blogs.staff_id").
		Where("staffs.deleted = ?", false))
}

func (r *blogRepository) FindByContentContaining(ctx context.Context, keyword string) ([]models.Blog, error) {
	return r.find(conn(ctx, r.db).Where("content LIKE ?", contains(keyword)))
}

func (r *blogRepository) FindByTitleOrContentContaining(ctx context.Context, keyword string) ([]models.Blog, error) {
	pattern := contains(keyword)
	return r.find(conn(ctx, r.db).Where("title LIKE ? OR content LIKE ?", pattern, pattern))
}

// FindByYearAndMonth matches on a half-open range so the query stays portable
// across MySQL and Postgres and can use an index on created_at.
func (r *blogRepository) FindByYearAndMonth(ctx context.Context, year int, month time.Month) ([]models.Blog, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	return r.find(conn(ctx, r.db).Where("created_at >= ? AND created_at < ?", start, end))
}

func (r *blogRepository) CountByStaffID(ctx context.Context, staffID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Blog{}).Where("staff_id = ?", staffID).Count(&count).Error
	return count, err
}

func (r *blogRepository) FindLatest(ctx context.Context) ([]models.Blog, error) {
	return r.find(conn(ctx, r.db).Order("blogs.created_at desc"))
}

func (r *blogRepository) FindAllOrderByCreatedDesc(ctx context.Context) ([]models.Blog, error) {
	return r.FindLatest(ctx)
}

func (r *blogRepository) find(query *gorm.DB) ([]models.Blog, error) {
	var blogs []models.Blog
	err := query.Find(&blogs).Error
	return blogs, err
}

// contains builds a LIKE pattern matching s anywhere, with wildcards in s escaped.
func contains(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(s) + "%"
}

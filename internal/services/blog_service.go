package services

import (
	"context"
	"errors"
	"time"

	"clinic-booking-server/internal/apperror"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/repositories"
)

// BlogService answers read-only blog queries.
type BlogService struct {
	blogs repositories.BlogRepository
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogs repositories.BlogRepository) *BlogService {
	return &BlogService{blogs: blogs}
}

func (s *BlogService) GetBlogByID(ctx context.Context, id uint) (*BlogResponse, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Blog not found")
		}
		return nil, apperror.Internal("failed to load blog", err)
	}
	resp := newBlogResponses([]models.Blog{*blog})[0]
	return &resp, nil
}

func (s *BlogService) GetBlogsByStaffID(ctx context.Context, staffID uint) ([]BlogResponse, error) {
	return s.list(s.blogs.FindByStaffID(ctx, staffID))
}

// SearchByTitle matches title substrings without regard to case.
func (s *BlogService) SearchByTitle(ctx context.Context, title string) ([]BlogResponse, error) {
	return s.list(s.blogs.FindByTitleContaining(ctx, title))
}

func (s *BlogService) GetBlogsCreatedAfter(ctx context.Context, date time.Time) ([]BlogResponse, error) {
	return s.list(s.blogs.FindCreatedAfter(ctx, date))
}

func (s *BlogService) GetBlogsCreatedBefore(ctx context.Context, date time.Time) ([]BlogResponse, error) {
	return s.list(s.blogs.FindCreatedBefore(ctx, date))
}

// GetBlogsCreatedBetween includes both bounds.
func (s *BlogService) GetBlogsCreatedBetween(ctx context.Context, start, end time.Time) ([]BlogResponse, error) {
	if end.Before(start) {
		return nil, apperror.InvalidArgument("Start date must not be after end date")
	}
	return s.list(s.blogs.FindCreatedBetween(ctx, start, end))
}

// GetBlogsByActiveStaff lists blogs whose author is not deleted.
func (s *BlogService) GetBlogsByActiveStaff(ctx context.Context) ([]BlogResponse, error) {
	return s.list(s.blogs.FindByActiveStaff(ctx))
}

func (s *BlogService) SearchByContent(ctx context.Context, keyword string) ([]BlogResponse, error) {
	return s.list(s.blogs.FindByContentContaining(ctx, keyword))
}

func (s *BlogService) SearchByTitleOrContent(ctx context.Context, keyword string) ([]BlogResponse, error) {
	return s.list(s.blogs.FindByTitleOrContentContaining(ctx, keyword))
}

func (s *BlogService) GetBlogsByYearAndMonth(ctx context.Context, year, month int) ([]BlogResponse, error) {
	if month < 1 || month > 12 {
		return nil, apperror.InvalidArgument("Month must be between 1 and 12")
	}
	return s.list(s.blogs.FindByYearAndMonth(ctx, year, time.Month(month)))
}

func (s *BlogService) CountBlogsByStaffID(ctx context.Context, staffID uint) (int64, error) {
	count, err := s.blogs.CountByStaffID(ctx, staffID)
	if err != nil {
		return 0, apperror.Internal("failed to count blogs", err)
	}
	return count, nil
}

// GetLatestBlogs and GetAllBlogsSorted return the same ordering, newest first.
func (s *BlogService) GetLatestBlogs(ctx context.Context) ([]BlogResponse, error) {
	return s.list(s.blogs.FindLatest(ctx))
}

func (s *BlogService) GetAllBlogsSorted(ctx context.Context) ([]BlogResponse, error) {
	return s.list(s.blogs.FindAllOrderByCreatedDesc(ctx))
}

func (s *BlogService) list(blogs []models.Blog, err error) ([]BlogResponse, error) {
	if err != nil {
		return nil, apperror.Internal("failed to list blogs", err)
	}
	return newBlogResponses(blogs), nil
}

package handlers

import (
	"context"
	"time"

	"clinic-booking-server/internal/services"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// BlogService is what BlogHandler needs from the blog query layer.
type BlogService interface {
	GetBlogByID(ctx context.Context, id uint) (*services.BlogResponse, error)
	GetBlogsByStaffID(ctx context.Context, staffID uint) ([]services.BlogResponse, error)
	SearchByTitle(ctx context.Context, title string) ([]services.BlogResponse, error)
	GetBlogsCreatedAfter(ctx context.Context, date time.Time) ([]services.BlogResponse, error)
	GetBlogsCreatedBefore(ctx context.Context, date time.Time) ([]services.BlogResponse, error)
	GetBlogsCreatedBetween(ctx context.Context, start, end time.Time) ([]services.BlogResponse, error)
	GetBlogsByActiveStaff(ctx context.Context) ([]services.BlogResponse, error)
	SearchByContent(ctx context.Context, keyword string) ([]services.BlogResponse, error)
	SearchByTitleOrContent(ctx context.Context, keyword string) ([]services.BlogResponse, error)
	GetBlogsByYearAndMonth(ctx context.Context, year, month int) ([]services.BlogResponse, error)
	CountBlogsByStaffID(ctx context.Context, staffID uint) (int64, error)
	GetLatestBlogs(ctx context.Context) ([]services.BlogResponse, error)
	GetAllBlogsSorted(ctx context.Context) ([]services.BlogResponse, error)
}

// BlogHandler serves the read-only blog endpoints.
type BlogHandler struct {
	blogs BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogs BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// BlogQuery holds the filters accepted by GetBlogs. At most one filter group
// is applied; without filters every blog is returned newest first.
type BlogQuery struct {
	StaffID     *uint  `form:"staffId"`
	Title       string `form:"title"`
	Keyword     string `form:"keyword"`
	Content     string `form:"content"`
	After       string `form:"after"`
	Before      string `form:"before"`
	From        string `form:"from"`
	To          string `form:"to"`
	Year        int    `form:"year"`
	Month       int    `form:"month"`
	ActiveStaff bool   `form:"activeStaff"`
}

// GetBlogs lists blogs, applying the first filter present in this order:
// staffId, title, keyword, content, from+to, after, before, year+month, activeStaff.
func (h *BlogHandler) GetBlogs(c *gin.Context) {
	var q BlogQuery
	if !utils.BindQuery(c, &q) {
		return
	}

	ctx := c.Request.Context()
	var (
		blogs []services.BlogResponse
		err   error
	)

	switch {
	case q.StaffID != nil:
		blogs, err = h.blogs.GetBlogsByStaffID(ctx, *q.StaffID)
	case q.Title != "":
		blogs, err = h.blogs.SearchByTitle(ctx, q.Title)
	case q.Keyword != "":
		blogs, err = h.blogs.SearchByTitleOrContent(ctx, q.Keyword)
	case q.Content != "":
		blogs, err = h.blogs.SearchByContent(ctx, q.Content)
	case q.From != "" || q.To != "":
		start, end, ok := dateRange(c, q.From, q.To)
		if !ok {
			return
		}
		blogs, err = h.blogs.GetBlogsCreatedBetween(ctx, start, end)
	case q.After != "":
		date, ok := dateQuery(c, q.After)
		if !ok {
			return
		}
		blogs, err = h.blogs.GetBlogsCreatedAfter(ctx, date)
	case q.Before != "":
		date, ok := dateQuery(c, q.Before)
		if !ok {
			return
		}
		blogs, err = h.blogs.GetBlogsCreatedBefore(ctx, date)
	case q.Year != 0 || q.Month != 0:
		if q.Year == 0 || q.Month == 0 {
			utils.BadRequest(c, "year and month must be given together")
			return
		}
		blogs, err = h.blogs.GetBlogsByYearAndMonth(ctx, q.Year, q.Month)
	case q.ActiveStaff:
		blogs, err = h.blogs.GetBlogsByActiveStaff(ctx)
	default:
		blogs, err = h.blogs.GetAllBlogsSorted(ctx)
	}

	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Blogs fetched successfully", blogs)
}

func (h *BlogHandler) GetLatestBlogs(c *gin.Context) {
	blogs, err := h.blogs.GetLatestBlogs(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Blogs fetched successfully", blogs)
}

func (h *BlogHandler) GetBlogByID(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	blog, err := h.blogs.GetBlogByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Blog fetched successfully", blog)
}

// CountBlogsByStaff returns {"staffId": .., "count": ..}.
func (h *BlogHandler) CountBlogsByStaff(c *gin.Context) {
	staffID, ok := uintParam(c, "staffId")
	if !ok {
		return
	}

	count, err := h.blogs.CountBlogsByStaffID(c.Request.Context(), staffID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Blog count fetched successfully", gin.H{"staffId": staffID, "count": count})
}

func dateQuery(c *gin.Context, raw string) (time.Time, bool) {
	date, err := parseDate(raw)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return time.Time{}, false
	}
	return date, true
}

func dateRange(c *gin.Context, from, to string) (time.Time, time.Time, bool) {
	if from == "" || to == "" {
		utils.BadRequest(c, "from and to must be given together")
		return time.Time{}, time.Time{}, false
	}
	start, ok := dateQuery(c, from)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := dateQuery(c, to)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

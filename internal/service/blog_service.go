package service

import (
	"context"
	"strings"
	"time"

	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultBlogLimit = 10

// BlogService handles blog CRUD and the public listing.
type BlogService struct {
	db    *gorm.DB
	cache cache.Invalidator
	now   func() time.Time
}

// BlogFilter describes filters for listing blogs. A nil Published lists both
// drafts and published posts.
type BlogFilter struct {
	Page      int
	Limit     int
	Published *bool
}

// BlogListResult aggregates paginated blog results.
type BlogListResult struct {
	Blogs      []db.Blog  `json:"blogs"`
	Pagination Pagination `json:"pagination"`
}

// BlogInput represents fields accepted when creating or updating a blog.
type BlogInput struct {
	Title      string        `json:"title" validate:"required,max=200"`
	Slug       string        `json:"slug" validate:"required,max=120,slug"`
	Excerpt    string        `json:"excerpt" validate:"max=500"`
	Content    string        `json:"content"`
	CoverImage content.Media `json:"coverImage"`
	Published  bool          `json:"published"`
}

// NewBlogService creates a BlogService instance.
func NewBlogService(gdb *gorm.DB, invalidator cache.Invalidator) *BlogService {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &BlogService{db: gdb, cache: invalidator, now: time.Now}
}

// List returns one page of blogs matching the filter, newest first.
func (s *BlogService) List(ctx context.Context, filter BlogFilter) (BlogListResult, error) {
	result := BlogListResult{
		Blogs: []db.Blog{},
		Pagination: Pagination{
			Page:  normalizePage(filter.Page),
			Limit: normalizePerPage(filter.Limit, defaultBlogLimit),
		},
	}

	query := s.db.WithContext(ctx).Model(&db.Blog{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}

	if err := query.Count(&result.Pagination.Total).Error; err != nil {
		return result, storageError("count blogs", err)
	}
	result.Pagination.Pages = calculateTotalPages(result.Pagination.Total, result.Pagination.Limit)

	offset := (result.Pagination.Page - 1) * result.Pagination.Limit
	if err := query.Order("created_at desc").Order("id desc").
		Limit(result.Pagination.Limit).
		Offset(offset).
		Find(&result.Blogs).Error; err != nil {
		return result, storageError("list blogs", err)
	}

	return result, nil
}

// Get fetches a blog by id.
func (s *BlogService) Get(ctx context.Context, id uint) (*db.Blog, error) {
	var blog db.Blog
	if err := s.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		return nil, lookupError("get blog", err, ErrBlogNotFound)
	}
	return &blog, nil
}

// GetPublishedBySlug returns the oldest published blog with slug.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*db.Blog, error) {
	var blog db.Blog
	if err := s.db.WithContext(ctx).
		Where("slug = ? AND published = ?", strings.TrimSpace(slug), true).
		Order("id asc").
		First(&blog).Error; err != nil {
		return nil, lookupError("get blog by slug", err, ErrBlogNotFound)
	}
	return &blog, nil
}

// Create inserts a blog. An empty slug is derived from the title.
func (s *BlogService) Create(ctx context.Context, input BlogInput) (*db.Blog, error) {
	input = normalizeBlogInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	blog := db.Blog{}
	s.apply(&blog, input)

	if err := s.db.WithContext(ctx).Create(&blog).Error; err != nil {
		return nil, storageError("create blog", err)
	}

	s.cache.Invalidate(cache.TagBlogs, cache.BlogTag(blog.Slug))
	return &blog, nil
}

// Update replaces the editable fields of a blog.
func (s *BlogService) Update(ctx context.Context, id uint, input BlogInput) (*db.Blog, error) {
	blog, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousSlug := blog.Slug

	input = normalizeBlogInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	s.apply(blog, input)

	if err := updateExisting(s.db.WithContext(ctx), blog, "update blog", ErrBlogNotFound); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.TagBlogs, cache.BlogTag(previousSlug), cache.BlogTag(blog.Slug))
	return blog, nil
}

// Delete removes a blog.
func (s *BlogService) Delete(ctx context.Context, id uint) error {
	blog, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(&db.Blog{}, blog.ID)
	if result.Error != nil {
		return storageError("delete blog", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}

	s.cache.Invalidate(cache.TagBlogs, cache.BlogTag(blog.Slug))
	return nil
}

// apply copies input onto blog. PublishedAt is stamped the first time a blog
// is published and cleared when it goes back to draft.
func (s *BlogService) apply(blog *db.Blog, input BlogInput) {
	blog.Title = input.Title
	blog.Slug = input.Slug
	blog.Excerpt = input.Excerpt
	blog.Content = input.Content
	blog.CoverImage = datatypes.NewJSONType(input.CoverImage)

	switch {
	case input.Published && blog.PublishedAt == nil:
		now := s.now()
		blog.PublishedAt = &now
	case !input.Published:
		blog.PublishedAt = nil
	}
	blog.Published = input.Published
}

func normalizeBlogInput(input BlogInput) BlogInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" {
		input.Slug = content.Slugify(input.Title)
	}
	input.Excerpt = strings.TrimSpace(input.Excerpt)
	return input
}

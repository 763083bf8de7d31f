package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxSectionsPerPage = 100

// CustomPageService manages pages built in the dashboard's page builder.
type CustomPageService struct {
	db    *gorm.DB
	cache cache.Invalidator
}

// CustomPageInput is what a new page is created from.
type CustomPageInput struct {
	Title string `json:"title" validate:"required,max=200"`
	Slug  string `json:"slug" validate:"required,max=120,slug"`
}

// CustomPagePatch is a shallow partial update. Nil fields are left unchanged;
// a non-nil Sections replaces the whole sequence.
type CustomPagePatch struct {
	Title       *string
	Slug        *string
	IsPublished *bool
	Sections    *[]content.Section
}

// NewCustomPageService returns a new CustomPageService instance.
func NewCustomPageService(gdb *gorm.DB, invalidator cache.Invalidator) *CustomPageService {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &CustomPageService{db: gdb, cache: invalidator}
}

// Create stores an empty, unpublished page. An empty slug is derived from the title.
// Slugs are not checked for uniqueness.
func (s *CustomPageService) Create(ctx context.Context, input CustomPageInput) (*db.CustomPage, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" {
		input.Slug = content.Slugify(input.Title)
	}

	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	page := db.CustomPage{
		Title:       input.Title,
		Slug:        input.Slug,
		Sections:    datatypes.JSONSlice[content.Section]{},
		IsPublished: false,
	}
	if err := s.db.WithContext(ctx).Create(&page).Error; err != nil {
		return nil, storageError("create custom page", err)
	}

	s.cache.Invalidate(cache.TagPages)
	return &page, nil
}

// Get fetches a page by id.
func (s *CustomPageService) Get(ctx context.Context, id uint) (*db.CustomPage, error) {
	var page db.CustomPage
	if err := s.db.WithContext(ctx).First(&page, id).Error; err != nil {
		return nil, lookupError("get custom page", err, ErrPageNotFound)
	}
	return &page, nil
}

// GetBySlug returns the oldest page with slug, published or not. Callers that
// serve the public site must use GetPublishedBySlug instead.
func (s *CustomPageService) GetBySlug(ctx context.Context, slug string) (*db.CustomPage, error) {
	var page db.CustomPage
	if err := s.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		Order("id asc").
		First(&page).Error; err != nil {
		return nil, lookupError("get custom page by slug", err, ErrPageNotFound)
	}
	return &page, nil
}

// GetPublishedBySlug is GetBySlug plus the publish gate: drafts are reported
// as not found.
func (s *CustomPageService) GetPublishedBySlug(ctx context.Context, slug string) (*db.CustomPage, error) {
	page, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !page.IsPublished {
		return nil, ErrPageNotFound
	}
	return page, nil
}

// ListAll returns every page, newest first.
func (s *CustomPageService) ListAll(ctx context.Context) ([]db.CustomPage, error) {
	var pages []db.CustomPage
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&pages).Error; err != nil {
		return nil, storageError("list custom pages", err)
	}
	return pages, nil
}

// Update merges patch into the page at the top level.
func (s *CustomPageService) Update(ctx context.Context, id uint, patch CustomPagePatch) (*db.CustomPage, error) {
	page, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousSlug := page.Slug

	if patch.Title != nil {
		page.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Slug != nil {
		page.Slug = strings.TrimSpace(*patch.Slug)
	}
	if patch.IsPublished != nil {
		page.IsPublished = *patch.IsPublished
	}
	if patch.Sections != nil {
		page.Sections = copySections(*patch.Sections)
	}

	if err := validatePage(page); err != nil {
		return nil, err
	}

	if err := updateExisting(s.db.WithContext(ctx), page, "update custom page", ErrPageNotFound); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.TagPages, cache.PageTag(previousSlug), cache.PageTag(page.Slug))
	return page, nil
}

// ReplaceSections sets the page's sections to exactly sections, in order.
func (s *CustomPageService) ReplaceSections(ctx context.Context, id uint, sections []content.Section) (*db.CustomPage, error) {
	return s.Update(ctx, id, CustomPagePatch{Sections: &sections})
}

// Delete hard-deletes a page. Deleting an id that does not exist returns
// ErrPageNotFound, including a second delete of the same id.
func (s *CustomPageService) Delete(ctx context.Context, id uint) error {
	page, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(&db.CustomPage{}, page.ID)
	if result.Error != nil {
		return storageError("delete custom page", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}

	s.cache.Invalidate(cache.TagPages, cache.PageTag(page.Slug))
	return nil
}

func validatePage(page *db.CustomPage) error {
	input := CustomPageInput{Title: page.Title, Slug: page.Slug}
	return invalid(validation.Merge(
		validation.Struct(input),
		validateSections(page.Sections),
	))
}

func validateSections(sections []content.Section) error {
	if len(sections) > maxSectionsPerPage {
		return validation.Field("sections", fmt.Sprintf("must have at most %d items", maxSectionsPerPage))
	}

	var errs []error
	for i, section := range sections {
		path := fmt.Sprintf("sections[%d]", i)
		if len(section.ID) > 100 {
			errs = append(errs, validation.Field(path+".id", "must be at most 100 characters"))
		}
		kind := section.Kind()
		if strings.TrimSpace(string(kind)) == "" {
			errs = append(errs, validation.Field(path+".type", "is required"))
			continue
		}
		if !kind.Known() {
			continue
		}
		errs = append(errs, validation.Prefix(path, validation.Struct(section.Data)))
	}
	return validation.Merge(errs...)
}

func copySections(sections []content.Section) datatypes.JSONSlice[content.Section] {
	out := make(datatypes.JSONSlice[content.Section], len(sections))
	copy(out, sections)
	return out
}

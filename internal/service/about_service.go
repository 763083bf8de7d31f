package service

import (
	"context"

	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/validation"
	"gorm.io/gorm"
)

// AboutService provides access to the about-us singleton.
type AboutService struct {
	doc   *singletonDocument[content.About]
	cache cache.Invalidator
}

// NewAboutService returns a new AboutService instance.
func NewAboutService(gdb *gorm.DB, invalidator cache.Invalidator) *AboutService {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &AboutService{
		doc:   newSingletonDocument(gdb, db.DocumentKeyAbout, content.DefaultAbout),
		cache: invalidator,
	}
}

// Get returns the about document, creating the empty one on first access.
func (s *AboutService) Get(ctx context.Context) (content.About, error) {
	doc, err := s.doc.get(ctx)
	if err != nil {
		return content.About{}, err
	}
	doc.Normalize()
	return doc, nil
}

// Update creates or replaces the about document.
func (s *AboutService) Update(ctx context.Context, input content.About) (content.About, error) {
	doc, err := s.doc.update(ctx, func(doc *content.About) error {
		*doc = input
		doc.Normalize()
		return invalid(validation.Struct(doc))
	})
	if err != nil {
		return content.About{}, err
	}

	s.cache.Invalidate(cache.TagAbout)
	return doc, nil
}

package service

import (
	"context"

	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/validation"
	"gorm.io/gorm"
)

// HomepageService reads and edits the homepage singleton.
type HomepageService struct {
	doc   *singletonDocument[content.Homepage]
	cache cache.Invalidator
}

// NewHomepageService constructs HomepageService.
func NewHomepageService(gdb *gorm.DB, invalidator cache.Invalidator) *HomepageService {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &HomepageService{
		doc:   newSingletonDocument(gdb, db.DocumentKeyHomepage, content.DefaultHomepage),
		cache: invalidator,
	}
}

// Get returns the homepage, creating the empty one on first access.
func (s *HomepageService) Get(ctx context.Context) (content.Homepage, error) {
	doc, err := s.doc.get(ctx)
	if err != nil {
		return content.Homepage{}, err
	}
	doc.Normalize()
	return doc, nil
}

// Update replaces the whole homepage document.
func (s *HomepageService) Update(ctx context.Context, input content.Homepage) (content.Homepage, error) {
	return s.save(ctx, func(doc *content.Homepage) {
		*doc = input
	})
}

// UpdateSection replaces one named section, leaving the others as stored.
func (s *HomepageService) UpdateSection(ctx context.Context, section content.HomepageSection) (content.Homepage, error) {
	return s.save(ctx, func(doc *content.Homepage) {
		doc.Apply(section)
	})
}

func (s *HomepageService) save(ctx context.Context, apply func(doc *content.Homepage)) (content.Homepage, error) {
	doc, err := s.doc.update(ctx, func(doc *content.Homepage) error {
		apply(doc)
		doc.Normalize()
		return invalid(validation.Struct(doc))
	})
	if err != nil {
		return content.Homepage{}, err
	}

	s.cache.Invalidate(cache.TagHomepage)
	return doc, nil
}

package service

import (
	"context"

	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/validation"
	"gorm.io/gorm"
)

// OthersContentService manages site-wide content such as the announcement
// bar, legal texts and FAQs.
type OthersContentService struct {
	doc   *singletonDocument[content.Others]
	cache cache.Invalidator
}

// NewOthersContentService constructs OthersContentService.
func NewOthersContentService(gdb *gorm.DB, invalidator cache.Invalidator) *OthersContentService {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &OthersContentService{
		doc:   newSingletonDocument(gdb, db.DocumentKeyOthers, content.DefaultOthers),
		cache: invalidator,
	}
}

// Get returns the stored document or the default one.
func (s *OthersContentService) Get(ctx context.Context) (content.Others, error) {
	doc, err := s.doc.get(ctx)
	if err != nil {
		return content.Others{}, err
	}
	doc.Normalize()
	return doc, nil
}

// Update upserts the document. Every public page shows it, so the whole
// render cache is dropped.
func (s *OthersContentService) Update(ctx context.Context, input content.Others) (content.Others, error) {
	doc, err := s.doc.update(ctx, func(doc *content.Others) error {
		*doc = input
		doc.Normalize()
		return invalid(validation.Struct(doc))
	})
	if err != nil {
		return content.Others{}, err
	}

	s.cache.Invalidate(cache.TagSite)
	return doc, nil
}

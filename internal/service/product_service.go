package service

import (
	"context"
	"strings"

	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductService handles product CRUD.
type ProductService struct {
	db    *gorm.DB
	cache cache.Invalidator
}

// ProductInput represents fields accepted when creating or updating a product.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=2000"`
	Price       int64           `json:"price" validate:"gte=0"`
	Category    string          `json:"category" validate:"max=60"`
	Images      []content.Media `json:"images" validate:"max=20,dive"`
	Featured    bool            `json:"featured"`
	SortOrder   int             `json:"sortOrder"`
}

// NewProductService creates a ProductService instance.
func NewProductService(gdb *gorm.DB, invalidator cache.Invalidator) *ProductService {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &ProductService{db: gdb, cache: invalidator}
}

// ListAll returns all products ordered by priority.
func (s *ProductService) ListAll(ctx context.Context) ([]db.Product, error) {
	var items []db.Product
	if err := s.db.WithContext(ctx).Order("sort_order desc").Order("created_at desc").Find(&items).Error; err != nil {
		return nil, storageError("list products", err)
	}
	return items, nil
}

// ListFeatured returns up to limit featured products.
func (s *ProductService) ListFeatured(ctx context.Context, limit int) ([]db.Product, error) {
	var items []db.Product
	if err := s.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("sort_order desc").Order("created_at desc").
		Limit(normalizePerPage(limit, 6)).
		Find(&items).Error; err != nil {
		return nil, storageError("list featured products", err)
	}
	return items, nil
}

// Get fetches a product by id.
func (s *ProductService) Get(ctx context.Context, id uint) (*db.Product, error) {
	var item db.Product
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, lookupError("get product", err, ErrProductNotFound)
	}
	return &item, nil
}

// Create inserts a new product. A zero sort order places it first.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*db.Product, error) {
	input = normalizeProductInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	sortOrder := input.SortOrder
	if sortOrder == 0 {
		order, err := s.nextSortOrder(ctx)
		if err != nil {
			return nil, err
		}
		sortOrder = order
	}

	item := db.Product{SortOrder: sortOrder}
	applyProductInput(&item, input)

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, storageError("create product", err)
	}

	s.cache.Invalidate(cache.TagProducts)
	return &item, nil
}

// Update modifies an existing product.
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*db.Product, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input = normalizeProductInput(input)
	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	applyProductInput(item, input)
	item.SortOrder = input.SortOrder

	if err := updateExisting(s.db.WithContext(ctx), item, "update product", ErrProductNotFound); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.TagProducts)
	return item, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&db.Product{}, id)
	if result.Error != nil {
		return storageError("delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	s.cache.Invalidate(cache.TagProducts)
	return nil
}

func normalizeProductInput(input ProductInput) ProductInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	if input.Images == nil {
		input.Images = []content.Media{}
	}
	return input
}

func applyProductInput(item *db.Product, input ProductInput) {
	item.Name = input.Name
	item.Slug = content.Slugify(input.Name)
	item.Description = input.Description
	item.Price = input.Price
	item.Category = input.Category
	item.Images = datatypes.NewJSONSlice(input.Images)
	item.Featured = input.Featured
}

func (s *ProductService) nextSortOrder(ctx context.Context) (int, error) {
	var maxOrder int
	if err := s.db.WithContext(ctx).Model(&db.Product{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, storageError("next product sort order", err)
	}
	return maxOrder + 1, nil
}

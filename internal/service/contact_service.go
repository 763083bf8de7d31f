package service

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/validation"
	"gorm.io/gorm"
)

const preferredDateLayout = "2006-01-02"

// ContactService stores booking and contact requests from the public site.
type ContactService struct {
	db     *gorm.DB
	policy *bluemonday.Policy
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name          string `json:"name" validate:"required,max=120"`
	Email         string `json:"email" validate:"required,email,max=200"`
	Phone         string `json:"phone" validate:"max=40"`
	Service       string `json:"service" validate:"max=120"`
	Message       string `json:"message" validate:"max=2000"`
	PreferredDate string `json:"preferredDate" validate:"omitempty,datetime=2006-01-02"`
}

type bookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

// NewContactService creates a ContactService instance.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb, policy: bluemonday.StrictPolicy()}
}

// Create stores a new submission with status "new". Markup is stripped from
// every free-text field and the remaining text is stored unescaped.
func (s *ContactService) Create(ctx context.Context, input ContactInput) (*db.ContactSubmission, error) {
	input = s.normalize(input)
	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	submission := db.ContactSubmission{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Service: input.Service,
		Message: input.Message,
		Status:  db.BookingStatusNew,
	}
	if input.PreferredDate != "" {
		date, err := time.Parse(preferredDateLayout, input.PreferredDate)
		if err != nil {
			return nil, invalidField("preferredDate", "must be a date in the form "+preferredDateLayout)
		}
		submission.PreferredDate = &date
	}

	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		return nil, storageError("create contact submission", err)
	}
	return &submission, nil
}

// List returns every submission, newest first.
func (s *ContactService) List(ctx context.Context) ([]db.ContactSubmission, error) {
	var items []db.ContactSubmission
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, storageError("list contact submissions", err)
	}
	return items, nil
}

// Get fetches a submission by id.
func (s *ContactService) Get(ctx context.Context, id uint) (*db.ContactSubmission, error) {
	var item db.ContactSubmission
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, lookupError("get contact submission", err, ErrBookingNotFound)
	}
	return &item, nil
}

// Delete removes a submission and returns the ones that remain.
func (s *ContactService) Delete(ctx context.Context, id uint) ([]db.ContactSubmission, error) {
	result := s.db.WithContext(ctx).Delete(&db.ContactSubmission{}, id)
	if result.Error != nil {
		return nil, storageError("delete contact submission", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrBookingNotFound
	}
	return s.List(ctx)
}

// UpdateStatus moves a submission through new -> contacted -> closed. Any
// transition between the three is allowed.
func (s *ContactService) UpdateStatus(ctx context.Context, id uint, status string) (*db.ContactSubmission, error) {
	input := bookingStatusInput{Status: strings.ToLower(strings.TrimSpace(status))}
	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(item).Update("status", input.Status).Error; err != nil {
		return nil, storageError("update contact submission status", err)
	}
	item.Status = input.Status
	return item, nil
}

func (s *ContactService) normalize(input ContactInput) ContactInput {
	clean := func(v string) string {
		return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
	}
	input.Name = clean(input.Name)
	input.Email = db.NormalizeEmail(input.Email)
	input.Phone = clean(input.Phone)
	input.Service = clean(input.Service)
	input.Message = clean(input.Message)
	input.PreferredDate = strings.TrimSpace(input.PreferredDate)
	return input
}

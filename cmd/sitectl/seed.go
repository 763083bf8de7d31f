package main

import (
	"context"
	"fmt"

	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty database with demo content",
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := seed(cmd.Context(), db.DB)
		if err != nil {
			return fmt.Errorf("seed demo content: %w", err)
		}
		if !created {
			logger.Info("content already present, nothing seeded")
			return nil
		}
		logger.Info("demo content created", zap.String("page", "/our-services"))
		return nil
	},
}

// seed writes the demo site through the services. It does nothing and reports
// false when products already exist.
func seed(ctx context.Context, gdb *gorm.DB) (bool, error) {
	var count int64
	if err := gdb.WithContext(ctx).Model(&db.Product{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	steps := []func(context.Context, *gorm.DB) error{
		seedHomepage,
		seedAbout,
		seedOthers,
		seedProducts,
		seedBlogs,
		seedPages,
	}
	for _, step := range steps {
		if err := step(ctx, gdb); err != nil {
			return false, err
		}
	}
	return true, nil
}

func seedHomepage(ctx context.Context, gdb *gorm.DB) error {
	_, err := service.NewHomepageService(gdb, nil).Update(ctx, content.Homepage{
		Hero: content.Hero{
			Title:    "A cleaner home, every week",
			Subtitle: "Insured, vetted cleaners across the city.",
			CTALabel: "Book a visit",
			CTALink:  "/products",
		},
		Features: content.Features{
			Heading: "Why customers stay",
			Items: []content.FeatureItem{
				{Icon: "leaf", Title: "Eco products", Description: "Plant-based supplies only."},
				{Icon: "clock", Title: "On time", Description: "Arrival windows of 30 minutes."},
				{Icon: "shield", Title: "Insured", Description: "Every visit is covered."},
			},
		},
		CallToAction: content.CallToAction{
			Heading:     "Ready when you are",
			Body:        "Tell us about your home and we will reply **within a day**.",
			ButtonLabel: "Get a quote",
			ButtonLink:  "/products",
		},
	})
	return err
}

func seedAbout(ctx context.Context, gdb *gorm.DB) error {
	_, err := service.NewAboutService(gdb, nil).Update(ctx, content.About{
		Title:   "About us",
		Story:   "We started with one van and two mops in 2009.",
		Mission: "Give people their weekends back.",
		Team: []content.TeamMember{
			{Name: "Maria Lopez", Role: "Founder"},
			{Name: "Sam Okafor", Role: "Operations"},
		},
	})
	return err
}

func seedOthers(ctx context.Context, gdb *gorm.DB) error {
	_, err := service.NewOthersContentService(gdb, nil).Update(ctx, content.Others{
		Announcement:   "Spring deep-clean slots are open.",
		PrivacyPolicy:  "We only keep the details you send us to arrange a visit.",
		TermsOfService: "Visits can be moved free of charge up to 24 hours ahead.",
		FAQs: []content.FAQ{
			{Question: "Do I need to be home?", Answer: "No, many customers leave a key."},
		},
		SocialLinks: []content.SocialLink{
			{Platform: "x", URL: "https://x.com/example"},
			{Platform: "website", URL: "https://example.com"},
		},
	})
	return err
}

func seedProducts(ctx context.Context, gdb *gorm.DB) error {
	products := service.NewProductService(gdb, nil)
	inputs := []service.ProductInput{
		{Name: "Standard Clean", Description: "Kitchen, bathrooms and floors.", Price: 8000, Category: "home", Featured: true},
		{Name: "Deep Clean", Description: "Inside cupboards, ovens and windows.", Price: 16000, Category: "home", Featured: true},
		{Name: "Office Clean", Description: "Desks, kitchens and meeting rooms.", Price: 20000, Category: "business"},
	}
	for _, input := range inputs {
		if _, err := products.Create(ctx, input); err != nil {
			return fmt.Errorf("create product %s: %w", input.Name, err)
		}
	}
	return nil
}

func seedBlogs(ctx context.Context, gdb *gorm.DB) error {
	blogs := service.NewBlogService(gdb, nil)
	inputs := []service.BlogInput{
		{Title: "Five habits of tidy homes", Excerpt: "Small things that add up.", Content: "1. Make the bed\n2. Wipe as you go", Published: true},
		{Title: "Choosing cleaning products", Content: "Draft notes."},
	}
	for _, input := range inputs {
		if _, err := blogs.Create(ctx, input); err != nil {
			return fmt.Errorf("create blog %s: %w", input.Title, err)
		}
	}
	return nil
}

func seedPages(ctx context.Context, gdb *gorm.DB) error {
	pages := service.NewCustomPageService(gdb, nil)
	page, err := pages.Create(ctx, service.CustomPageInput{Title: "Our Services"})
	if err != nil {
		return err
	}

	if _, err := pages.ReplaceSections(ctx, page.ID, []content.Section{
		{ID: "banner", Data: content.HeaderBanner{Title: "Our services", Subtitle: "Homes and offices"}},
		{ID: "intro", Data: content.TextBlock{Heading: "How it works", Body: "Book online, we confirm by email, we clean."}},
		{ID: "grid", Data: content.GridLayout{Heading: "Options", Columns: 3, Items: []content.GridItem{
			{Title: "Standard"},
			{Title: "Deep"},
			{Title: "Office"},
		}}},
	}); err != nil {
		return err
	}

	published := true
	_, err = pages.Update(ctx, page.ID, service.CustomPagePatch{IsPublished: &published})
	return err
}

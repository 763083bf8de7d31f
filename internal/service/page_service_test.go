package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleSections() []content.Section {
	return []content.Section{
		{ID: "banner", Data: content.HeaderBanner{Title: "Welcome", CTALabel: "Book now", CTALink: "/contact"}},
		{ID: "intro", Data: content.TextBlock{Heading: "About", Body: "We **build** things.", Alignment: "center"}},
		{ID: "grid", Data: content.GridLayout{Columns: 3, Items: []content.GridItem{
			{Title: "One", Image: content.Media{File: "https://cdn.example.com/1.jpg", FileID: "f1"}},
			{Title: "Two"},
		}}},
		{ID: "outro", Data: content.BottomMedia{Caption: "See you", MediaType: "video"}},
	}
}

func TestCustomPageCreateStartsEmptyAndUnpublished(t *testing.T) {
	gdb := setupServiceTestDB(t)
	inv := &recordingInvalidator{}
	svc := NewCustomPageService(gdb, inv)

	page, err := svc.Create(context.Background(), CustomPageInput{Title: "Services", Slug: "services"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if page.ID == 0 {
		t.Fatal("expected id to be assigned")
	}
	if page.IsPublished {
		t.Fatal("expected new page to be unpublished")
	}
	if page.Sections == nil || len(page.Sections) != 0 {
		t.Fatalf("expected empty sections, got %#v", page.Sections)
	}
	if !inv.has(cache.TagPages) {
		t.Fatalf("expected pages tag to be invalidated, got %v", inv.tags)
	}

	stored, err := svc.Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Sections == nil || len(stored.Sections) != 0 {
		t.Fatalf("expected stored sections to be empty, got %#v", stored.Sections)
	}
}

func TestCustomPageCreateDerivesSlugFromTitle(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)

	for _, title := range []string{"Our Team", "  Our   Team!!  "} {
		page, err := svc.Create(context.Background(), CustomPageInput{Title: title})
		if err != nil {
			t.Fatalf("Create(%q) returned error: %v", title, err)
		}
		if page.Slug != "our-team" {
			t.Fatalf("Create(%q) slug = %q, want our-team", title, page.Slug)
		}
	}
}

func TestCustomPageCreateRejectsInvalidInput(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)

	cases := map[string]CustomPageInput{
		"missing title":  {Slug: "valid"},
		"bad slug":       {Title: "Valid", Slug: "-bad--slug-"},
		"title too long": {Title: strings.Repeat("a", 201), Slug: "long"},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	var count int64
	gdb.Model(&db.CustomPage{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected nothing written, found %d pages", count)
	}
}

func TestCustomPageReplaceSectionsRoundTrip(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)
	ctx := context.Background()

	page, err := svc.Create(ctx, CustomPageInput{Title: "Landing", Slug: "landing"})
	require.NoError(t, err)

	sections := sampleSections()
	_, err = svc.ReplaceSections(ctx, page.ID, sections)
	require.NoError(t, err)

	stored, err := svc.Get(ctx, page.ID)
	require.NoError(t, err)
	require.Equal(t, sections, []content.Section(stored.Sections))

	reordered := []content.Section{sections[3], sections[0], sections[2], sections[1]}
	_, err = svc.ReplaceSections(ctx, page.ID, reordered)
	require.NoError(t, err)

	stored, err = svc.Get(ctx, page.ID)
	require.NoError(t, err)
	require.Equal(t, reordered, []content.Section(stored.Sections))
}

func TestCustomPageKeepsUnknownSectionKinds(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)
	ctx := context.Background()

	page, err := svc.Create(ctx, CustomPageInput{Title: "Future", Slug: "future"})
	require.NoError(t, err)

	sections := []content.Section{
		{ID: "x", Data: content.Unknown{Type: "carousel", Data: []byte(`{"slides":3}`)}},
	}
	_, err = svc.ReplaceSections(ctx, page.ID, sections)
	require.NoError(t, err)

	stored, err := svc.Get(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, stored.Sections, 1)
	require.Equal(t, content.Kind("carousel"), stored.Sections[0].Kind())
	require.JSONEq(t, `{"slides":3}`, string(stored.Sections[0].Data.(content.Unknown).Data))
}

func TestCustomPageReplaceSectionsValidatesPayloads(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)
	ctx := context.Background()

	page, err := svc.Create(ctx, CustomPageInput{Title: "Grid", Slug: "grid"})
	require.NoError(t, err)

	_, err = svc.ReplaceSections(ctx, page.ID, []content.Section{
		{ID: "ok", Data: content.TextBlock{Body: "fine"}},
		{ID: "bad", Data: content.GridLayout{Columns: 5}},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields.Map(), "sections[1].columns")

	stored, err := svc.Get(ctx, page.ID)
	require.NoError(t, err)
	require.Empty(t, stored.Sections)
}

func TestCustomPageMissingIDLeavesStoreUnchanged(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)
	ctx := context.Background()

	existing, err := svc.Create(ctx, CustomPageInput{Title: "Keep", Slug: "keep"})
	require.NoError(t, err)

	title := "Changed"
	if _, err := svc.Update(ctx, existing.ID+100, CustomPagePatch{Title: &title}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("Update on missing id: expected ErrPageNotFound, got %v", err)
	}
	if _, err := svc.ReplaceSections(ctx, existing.ID+100, sampleSections()); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("ReplaceSections on missing id: expected ErrPageNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, existing.ID+100); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("Delete on missing id: expected ErrPageNotFound, got %v", err)
	}
	if !errors.Is(ErrPageNotFound, ErrNotFound) {
		t.Fatal("expected ErrPageNotFound to wrap ErrNotFound")
	}

	pages, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, "Keep", pages[0].Title)
	require.Empty(t, pages[0].Sections)
}

func TestCustomPageUpdateMergesShallowly(t *testing.T) {
	gdb := setupServiceTestDB(t)
	inv := &recordingInvalidator{}
	svc := NewCustomPageService(gdb, inv)
	ctx := context.Background()

	page, err := svc.Create(ctx, CustomPageInput{Title: "Pricing", Slug: "pricing"})
	require.NoError(t, err)
	_, err = svc.ReplaceSections(ctx, page.ID, sampleSections())
	require.NoError(t, err)

	published := true
	slug := "plans"
	updated, err := svc.Update(ctx, page.ID, CustomPagePatch{IsPublished: &published, Slug: &slug})
	require.NoError(t, err)

	require.Equal(t, "Pricing", updated.Title)
	require.Equal(t, "plans", updated.Slug)
	require.True(t, updated.IsPublished)
	require.Len(t, updated.Sections, len(sampleSections()))
	require.True(t, inv.has(cache.PageTag("pricing")))
	require.True(t, inv.has(cache.PageTag("plans")))
}

func TestCustomPageGetBySlugIgnoresPublishState(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)
	ctx := context.Background()

	draft, err := svc.Create(ctx, CustomPageInput{Title: "Draft", Slug: "draft"})
	require.NoError(t, err)

	found, err := svc.GetBySlug(ctx, "draft")
	require.NoError(t, err)
	require.Equal(t, draft.ID, found.ID)

	if _, err := svc.GetPublishedBySlug(ctx, "draft"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected unpublished page to be hidden, got %v", err)
	}

	published := true
	_, err = svc.Update(ctx, draft.ID, CustomPagePatch{IsPublished: &published})
	require.NoError(t, err)

	found, err = svc.GetPublishedBySlug(ctx, "draft")
	require.NoError(t, err)
	require.Equal(t, draft.ID, found.ID)
}

func TestCustomPageGetBySlugReturnsOldestDuplicate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, CustomPageInput{Title: "First", Slug: "same"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CustomPageInput{Title: "Second", Slug: "same"})
	require.NoError(t, err)

	found, err := svc.GetBySlug(ctx, "same")
	require.NoError(t, err)
	require.Equal(t, first.ID, found.ID)
}

func TestCustomPageDeleteTwice(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)
	ctx := context.Background()

	page, err := svc.Create(ctx, CustomPageInput{Title: "Gone", Slug: "gone"})
	require.NoError(t, err)

	if err := svc.Delete(ctx, page.ID); err != nil {
		t.Fatalf("first Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, page.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("second Delete: expected ErrPageNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, page.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected page to be gone, got %v", err)
	}
}

func TestCustomPageUpdateDoesNotResurrectDeletedPage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCustomPageService(gdb, nil)
	ctx := context.Background()

	page, err := svc.Create(ctx, CustomPageInput{Title: "Promo", Slug: "promo"})
	require.NoError(t, err)

	// 模拟在读取与写回之间被删除
	err = gdb.Callback().Update().Before("gorm:update").Register("test:delete_before_update", func(tx *gorm.DB) {
		tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM custom_pages WHERE id = ?", page.ID)
	})
	require.NoError(t, err)

	published := true
	if _, err := svc.Update(ctx, page.ID, CustomPagePatch{IsPublished: &published}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}

	var count int64
	require.NoError(t, gdb.Model(&db.CustomPage{}).Count(&count).Error)
	if count != 0 {
		t.Fatalf("expected deleted page to stay deleted, found %d rows", count)
	}
}

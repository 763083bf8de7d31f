package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/sitecms/internal/content"
)

type pageForm struct {
	Title string `json:"title" validate:"required,max=10"`
	Slug  string `json:"slug" validate:"required,slug"`
	Mode  string `json:"mode" validate:"omitempty,oneof=a b"`
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	err := Struct(pageForm{Title: strings.Repeat("x", 11), Slug: "Bad Slug", Mode: "c"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %T", err)
	}

	fields := errs.Map()
	for _, field := range []string{"title", "slug", "mode"} {
		if _, ok := fields[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, fields)
		}
	}
	if fields["title"] != "must be at most 10 characters" {
		t.Fatalf("unexpected title message %q", fields["title"])
	}
}

func TestStructAcceptsValidInput(t *testing.T) {
	if err := Struct(pageForm{Title: "About", Slug: "about-us", Mode: "a"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestMaxCountsRunes(t *testing.T) {
	if err := Struct(pageForm{Title: "关于我们关于我们关于", Slug: "about"}); err != nil {
		t.Fatalf("expected 10 runes to pass max=10, got %v", err)
	}
}

func TestNestedSectionPayloadPaths(t *testing.T) {
	grid := content.GridLayout{Columns: 5, Items: []content.GridItem{{Title: strings.Repeat("t", 201)}}}
	err := Prefix("sections[2]", Struct(grid))

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	fields := errs.Map()
	if _, ok := fields["sections[2].columns"]; !ok {
		t.Fatalf("expected columns error, got %v", fields)
	}
	if _, ok := fields["sections[2].items[0].title"]; !ok {
		t.Fatalf("expected nested item error, got %v", fields)
	}
}

func TestMerge(t *testing.T) {
	if Merge(nil, nil) != nil {
		t.Fatal("expected nil when nothing failed")
	}

	err := Merge(Field("a", "is required"), nil, Field("b", "is invalid"))
	var errs Errors
	if !errors.As(err, &errs) || len(errs) != 2 {
		t.Fatalf("expected two merged errors, got %v", err)
	}

	plain := errors.New("boom")
	if got := Merge(Field("a", "x"), plain); got != plain {
		t.Fatalf("expected non-validation error to pass through, got %v", got)
	}
}

package content

import (
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes     = regexp.MustCompile(`-{2,}`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify derives a URL-safe slug from a title.
// Example: "  Our   Team!!  " -> "our-team"
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ValidSlug reports whether slug is lowercase alphanumerics separated by single hyphens.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

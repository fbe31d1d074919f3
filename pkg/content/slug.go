// Package content holds the pure text helpers shared by the editor and the
// public blog: slugs, word counts, read time, categories and SEO metadata.
package content

import (
	"regexp"
	"strings"
)

var (
	disallowedRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// Slugify turns a title into a URL-safe identifier: lower-case, only
// [a-z0-9-], no leading or trailing hyphen and no doubled hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = disallowedRe.ReplaceAllString(slug, "")
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = hyphenRunRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "- ")
}

package content

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Tax Tips & Tricks!!", "tax-tips-tricks"},
		{"  Hello   World  ", "hello-world"},
		{"Q4 -- Year-End Review", "q4-year-end-review"},
		{"---Leading and trailing---", "leading-and-trailing"},
		{"Café Accounting 101", "caf-accounting-101"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugify_ShapeHoldsForArbitraryTitles(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9-]*$`)
	titles := []string{
		"Why Cash-Flow Matters in 2024?",
		"\tTabs\nand\nnewlines\t",
		"Ünïcödé — dashes – and “quotes”",
		"a - - - b",
		"- - -",
	}

	for _, title := range titles {
		slug := Slugify(title)
		assert.Regexp(t, shape, slug, title)
		assert.False(t, strings.HasPrefix(slug, "-"), title)
		assert.False(t, strings.HasSuffix(slug, "-"), title)
		assert.NotContains(t, slug, "--", title)
	}
}

func TestReadTime(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}

	assert.Equal(t, "0 min read", ReadTime(""))
	assert.Equal(t, "1 min read", ReadTime("one"))
	assert.Equal(t, "1 min read", ReadTime(words(200)))
	assert.Equal(t, "2 min read", ReadTime(words(201)))
	assert.Equal(t, 4, ReadTimeMinutes(words(800)))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount("## Heading\n\nbody"))
}

type item struct {
	name     string
	category string
}

func categoryOf(i item) string { return i.category }

func TestCategories(t *testing.T) {
	items := []item{
		{"a", "Tax Planning"},
		{"b", ""},
		{"c", "Compliance"},
		{"d", "Tax Planning"},
	}

	assert.Equal(t, []string{"All", "Tax Planning", "Compliance"}, Categories(items, categoryOf))
	assert.Equal(t, []string{"All"}, Categories([]item{}, categoryOf))
}

func TestFilterByCategory(t *testing.T) {
	items := []item{
		{"a", "Tax Planning"},
		{"b", "Compliance"},
		{"c", "tax planning"},
	}

	assert.Len(t, FilterByCategory(items, "All", categoryOf), 3)
	assert.Len(t, FilterByCategory(items, "", categoryOf), 3)

	got := FilterByCategory(items, "Tax Planning", categoryOf)
	assert.Equal(t, []item{{"a", "Tax Planning"}}, got)
}

func TestPageSEO(t *testing.T) {
	assert.Equal(t, "Blog - WP Lite CMS | Accounting Industry Insights & Tips", PageSEO("/blog").Title)
	assert.Equal(t, DefaultSEO(), PageSEO("/nowhere"))
}

func TestPostSEO(t *testing.T) {
	seo := PostSEO("Tax Tips", "")
	assert.Equal(t, "Tax Tips - WP Lite Blog", seo.Title)
	assert.Equal(t, `Read "Tax Tips" on WP Lite Blog - expert insights for accounting professionals using modern CMS solutions.`, seo.Description)
	assert.Equal(t, "tax tips, accounting, business, professional advice, CMS, blog", seo.Keywords)

	long := strings.Repeat("x", 200)
	seo = PostSEO("Long", long)
	assert.Len(t, seo.Description, 160)
	assert.True(t, strings.HasSuffix(seo.Description, "..."))
	assert.Equal(t, seo.Description, seo.TwitterDescription)
}

func TestTruncate160(t *testing.T) {
	exact := strings.Repeat("y", 160)
	assert.Equal(t, exact, Truncate160(exact))
	assert.Equal(t, strings.Repeat("y", 157)+"...", Truncate160(exact+"y"))
}

package content

import (
	"fmt"
	"strings"
)

type SEO struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords"`
	OGTitle            string `json:"og_title"`
	OGDescription      string `json:"og_description"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description"`
}

const homeOGDescription = "Build professional accounting websites with WP Lite - the performance-first CMS with built-in SEO optimization and intuitive content management."

var pageSEO = map[string]SEO{
	"/": {
		Title:              "WP Lite - Modern CMS for Accounting Professionals | Performance-First WordPress Alternative",
		Description:        "WP Lite is a modern, lightweight CMS designed for accounting professionals. Get WordPress simplicity with superior performance, SEO optimization, and professional design.",
		Keywords:           "CMS, accounting, WordPress alternative, performance, SEO, content management, professional websites",
		OGTitle:            "WP Lite - Modern CMS for Accounting Professionals",
		OGDescription:      homeOGDescription,
		TwitterTitle:       "WP Lite - Modern CMS for Accounting Professionals",
		TwitterDescription: homeOGDescription,
	},
	"/blog": {
		Title:              "Blog - WP Lite CMS | Accounting Industry Insights & Tips",
		Description:        "Expert insights, tips, and best practices for accounting professionals using modern CMS solutions. Stay updated with the latest industry trends.",
		Keywords:           "accounting blog, CMS tips, professional insights, industry trends, business advice",
		OGTitle:            "WP Lite Blog - Accounting Industry Insights",
		OGDescription:      "Expert insights and tips for accounting professionals using modern CMS solutions.",
		TwitterTitle:       "WP Lite Blog - Accounting Industry Insights",
		TwitterDescription: "Expert insights and tips for accounting professionals using modern CMS solutions.",
	},
	"/auth": {
		Title:              "Login - WP Lite CMS Dashboard Access",
		Description:        "Access your WP Lite CMS dashboard to manage your accounting website content, posts, and settings.",
		Keywords:           "login, dashboard access, CMS admin, content management",
		OGTitle:            "WP Lite CMS - Dashboard Login",
		OGDescription:      "Access your WP Lite CMS dashboard to manage your website content.",
		TwitterTitle:       "WP Lite CMS - Dashboard Login",
		TwitterDescription: "Access your WP Lite CMS dashboard to manage your website content.",
	},
	"/admin": {
		Title:              "Dashboard - WP Lite CMS Admin Panel",
		Description:        "Manage your accounting website content with WP Lite's intuitive admin dashboard. Create, edit, and publish posts with ease.",
		Keywords:           "admin dashboard, content management, CMS admin, website management",
		OGTitle:            "WP Lite CMS - Admin Dashboard",
		OGDescription:      "Manage your accounting website content with WP Lite's intuitive admin dashboard.",
		TwitterTitle:       "WP Lite CMS - Admin Dashboard",
		TwitterDescription: "Manage your accounting website content with WP Lite's intuitive admin dashboard.",
	},
	"/admin/posts": {
		Title:              "Manage Posts - WP Lite CMS Admin",
		Description:        "Create, edit, and manage your blog posts with WP Lite's powerful content management system.",
		Keywords:           "manage posts, blog management, content creation, CMS admin",
		OGTitle:            "WP Lite CMS - Post Management",
		OGDescription:      "Create, edit, and manage your blog posts with WP Lite's powerful content management system.",
		TwitterTitle:       "WP Lite CMS - Post Management",
		TwitterDescription: "Create, edit, and manage your blog posts with WP Lite's powerful content management system.",
	},
}

func DefaultSEO() SEO {
	return pageSEO["/"]
}

// PageSEO returns the metadata for a client route, falling back to the home page.
func PageSEO(path string) SEO {
	if seo, ok := pageSEO[path]; ok {
		return seo
	}
	return DefaultSEO()
}

func PostSEO(title, excerpt string) SEO {
	description := excerpt
	if description == "" {
		description = fmt.Sprintf(`Read "%s" on WP Lite Blog - expert insights for accounting professionals using modern CMS solutions.`, title)
	}
	description = Truncate160(description)
	pageTitle := title + " - WP Lite Blog"

	return SEO{
		Title:              pageTitle,
		Description:        description,
		Keywords:           strings.ToLower(title) + ", accounting, business, professional advice, CMS, blog",
		OGTitle:            pageTitle,
		OGDescription:      description,
		TwitterTitle:       pageTitle,
		TwitterDescription: description,
	}
}

// Truncate160 clips meta descriptions to 160 characters, ending in "...".
func Truncate160(s string) string {
	runes := []rune(s)
	if len(runes) <= 160 {
		return s
	}
	return string(runes[:157]) + "..."
}

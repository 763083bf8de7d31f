package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/render"
	"github.com/sitecms/internal/service"
)

const (
	featuredProductLimit = 6
	blogPageSize         = 10
)

// ShowHome renders the landing page.
func (a *API) ShowHome(c *gin.Context) {
	a.servePage(c, []string{cache.TagHomepage, cache.TagProducts}, func() (string, gin.H, error) {
		ctx := c.Request.Context()
		doc, err := a.homepage.Get(ctx)
		if err != nil {
			return "", nil, err
		}
		featured, err := a.products.ListFeatured(ctx, featuredProductLimit)
		if err != nil {
			return "", nil, err
		}
		return render.PageHome, gin.H{
			"description": doc.Hero.Subtitle,
			"homepage":    doc,
			"featured":    featured,
		}, nil
	})
}

// ShowAbout renders the about-us page.
func (a *API) ShowAbout(c *gin.Context) {
	a.servePage(c, []string{cache.TagAbout}, func() (string, gin.H, error) {
		doc, err := a.about.Get(c.Request.Context())
		if err != nil {
			return "", nil, err
		}
		title := doc.Title
		if title == "" {
			title = "About us"
		}
		return render.PageAbout, gin.H{"title": title, "about": doc}, nil
	})
}

// ShowProducts renders the product catalogue.
func (a *API) ShowProducts(c *gin.Context) {
	a.servePage(c, []string{cache.TagProducts}, func() (string, gin.H, error) {
		items, err := a.products.ListAll(c.Request.Context())
		if err != nil {
			return "", nil, err
		}
		return render.PageProducts, gin.H{"title": "Products", "products": items}, nil
	})
}

// ShowBlogList renders one page of published blogs.
func (a *API) ShowBlogList(c *gin.Context) {
	a.servePage(c, []string{cache.TagBlogs}, func() (string, gin.H, error) {
		published := true
		result, err := a.blogs.List(c.Request.Context(), service.BlogFilter{
			Page:      parsePositiveInt(c.Query("page"), 1),
			Limit:     blogPageSize,
			Published: &published,
		})
		if err != nil {
			return "", nil, err
		}

		p := result.Pagination
		if p.Page > 1 && p.Page > p.Pages {
			return "", nil, service.ErrBlogNotFound
		}
		data := gin.H{"title": "Blog", "blogs": result.Blogs, "pagination": p}
		if p.Page > 1 {
			data["prevPage"] = p.Page - 1
		}
		if p.Page < p.Pages {
			data["nextPage"] = p.Page + 1
		}
		return render.PageBlogList, data, nil
	})
}

// ShowBlogPost renders a single published blog.
func (a *API) ShowBlogPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	a.servePage(c, []string{cache.BlogTag(slug)}, func() (string, gin.H, error) {
		blog, err := a.blogs.GetPublishedBySlug(c.Request.Context(), slug)
		if err != nil {
			return "", nil, err
		}
		return render.PageBlogPost, gin.H{
			"title":       blog.Title,
			"description": blog.Excerpt,
			"blog":        blog,
		}, nil
	})
}

// ShowPrivacy renders the privacy policy from the site-wide content.
func (a *API) ShowPrivacy(c *gin.Context) {
	a.serveDocument(c, "Privacy policy", func(doc content.Others) string { return doc.PrivacyPolicy })
}

// ShowTerms renders the terms of service from the site-wide content.
func (a *API) ShowTerms(c *gin.Context) {
	a.serveDocument(c, "Terms of service", func(doc content.Others) string { return doc.TermsOfService })
}

func (a *API) serveDocument(c *gin.Context, title string, body func(content.Others) string) {
	a.servePage(c, nil, func() (string, gin.H, error) {
		doc, err := a.others.Get(c.Request.Context())
		if err != nil {
			return "", nil, err
		}
		return render.PageDocument, gin.H{"title": title, "body": body(doc)}, nil
	})
}

// ShowCustomPage serves published custom pages at /<slug>. It is registered
// as the router's fallback, so anything else gets a 404: JSON under /api and
// /admin, the not-found page elsewhere.
func (a *API) ShowCustomPage(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin/") || path == "/admin" {
		respondError(c, http.StatusNotFound, "not found")
		return
	}

	slug := strings.Trim(path, "/")
	if (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) || !content.ValidSlug(slug) {
		a.renderNotFound(c)
		return
	}

	a.servePage(c, []string{cache.TagPages, cache.PageTag(slug)}, func() (string, gin.H, error) {
		page, err := a.pages.GetPublishedBySlug(c.Request.Context(), slug)
		if err != nil {
			return "", nil, err
		}
		return render.PageCustom, gin.H{
			"title":    page.Title,
			"page":     page,
			"sections": a.renderer.Sections(page.Sections),
		}, nil
	})
}

package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/logging"
	"github.com/sitecms/internal/render"
	"github.com/sitecms/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	logger    *zap.Logger
	cache     *cache.Store
	renderer  *render.Renderer
	siteName  string
	uploadDir string

	pages    *service.CustomPageService
	homepage *service.HomepageService
	about    *service.AboutService
	others   *service.OthersContentService
	products *service.ProductService
	contacts *service.ContactService
	blogs    *service.BlogService
	users    *service.UserService
}

// Options configures NewAPI. Zero values fall back to working defaults.
type Options struct {
	Logger         *zap.Logger
	Cache          *cache.Store
	Renderer       *render.Renderer
	SiteName       string
	CreateUserHash string

	// UploadDir is where UploadMedia stores files. Empty disables uploads.
	UploadDir string
}

type siteViewModel struct {
	Name         string
	Announcement string
	SocialLinks  []content.SocialLink
}

const siteDataContextKey = "__site_data"

// NewAPI constructs a handler set with shared services. Every mutating service
// invalidates the render cache.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Cache
	if store == nil {
		store = cache.New(0)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.MustNew()
	}
	siteName := strings.TrimSpace(opts.SiteName)
	if siteName == "" {
		siteName = "SiteCMS"
	}

	return &API{
		db:        gdb,
		logger:    logger,
		cache:     store,
		renderer:  renderer,
		siteName:  siteName,
		uploadDir: strings.TrimSpace(opts.UploadDir),
		pages:     service.NewCustomPageService(gdb, store),
		homepage:  service.NewHomepageService(gdb, store),
		about:     service.NewAboutService(gdb, store),
		others:    service.NewOthersContentService(gdb, store),
		products:  service.NewProductService(gdb, store),
		contacts:  service.NewContactService(gdb),
		blogs:     service.NewBlogService(gdb, store),
		users:     service.NewUserService(gdb, opts.CreateUserHash),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Cache exposes the render cache.
func (a *API) Cache() *cache.Store {
	return a.cache
}

func (a *API) log(c *gin.Context) *zap.Logger {
	return logging.FromContext(c, a.logger)
}

// siteData loads the site-wide content once per request.
func (a *API) siteData(c *gin.Context) siteViewModel {
	if cached, exists := c.Get(siteDataContextKey); exists {
		if view, ok := cached.(siteViewModel); ok {
			return view
		}
	}

	view := siteViewModel{Name: a.siteName}
	others, err := a.others.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		a.log(c).Warn("load site data", zap.Error(err))
	} else {
		view.Announcement = strings.TrimSpace(others.Announcement)
		view.SocialLinks = others.SocialLinks
	}

	c.Set(siteDataContextKey, view)
	return view
}

// renderHTML writes page with the site-wide fields added to data.
func (a *API) renderHTML(c *gin.Context, status int, page string, data gin.H) {
	body, err := a.renderBytes(c, page, data)
	if err != nil {
		a.log(c).Error("render page", zap.String("page", page), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

func (a *API) renderBytes(c *gin.Context, page string, data gin.H) ([]byte, error) {
	view := a.siteData(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = view.Name
	}
	if _, exists := payload["announcement"]; !exists {
		payload["announcement"] = view.Announcement
	}
	if _, exists := payload["socialLinks"]; !exists {
		payload["socialLinks"] = view.SocialLinks
	}

	var buf bytes.Buffer
	if err := a.renderer.Page(&buf, page, payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type pageLoader func() (page string, data gin.H, err error)

// servePage serves a public page from the render cache, rendering and caching
// it on a miss. Any load failure shows the not-found page; only unexpected
// failures are logged.
func (a *API) servePage(c *gin.Context, tags []string, load pageLoader) {
	key := "page:" + c.Request.URL.RequestURI()
	if body, ok := a.cache.Get(key); ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
		return
	}

	gen := a.cache.Generation()
	page, data, err := load()
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			a.log(c).Error("load public page", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
		a.renderNotFound(c)
		return
	}

	body, err := a.renderBytes(c, page, data)
	if err != nil {
		a.log(c).Error("render page", zap.String("page", page), zap.Error(err))
		a.renderNotFound(c)
		return
	}

	a.cache.SetIfUnchanged(key, gen, body, append(tags, cache.TagSite)...)
	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (a *API) renderNotFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, render.PageNotFound, gin.H{"title": "Not found"})
}

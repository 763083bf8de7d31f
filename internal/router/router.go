package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/cache"
	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/handler"
	"github.com/sitecms/internal/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionName = "sitecms_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(logging.RequestID(), logging.GinLogger(logger), logging.GinRecovery(logger))

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", logging.RequestIDHeader},
			ExposeHeaders:    []string{logging.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.GinMode == gin.ReleaseMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	api := handler.NewAPI(gdb, handler.Options{
		Logger:         logger,
		Cache:          cache.New(10 * time.Minute),
		SiteName:       cfg.SiteName,
		CreateUserHash: cfg.CreateUserHash,
		UploadDir:      cfg.UploadDir,
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := gdb.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// 公共页面
	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/products", api.ShowProducts)
	r.GET("/blog", api.ShowBlogList)
	r.GET("/blog/:slug", api.ShowBlogPost)
	r.GET("/privacy", api.ShowPrivacy)
	r.GET("/terms", api.ShowTerms)
	if cfg.UploadDir != "" {
		r.Static(handler.UploadURLPrefix, cfg.UploadDir)
	}
	r.NoRoute(api.ShowCustomPage)

	// 公共 API
	public := r.Group("/api")
	{
		public.POST("/contact", api.SubmitContact)
		public.GET("/blogs", api.ListBlogs)
		public.GET("/others-content", api.GetOthersContent)
		public.POST("/others-content", handler.AuthRequired(), api.UpdateOthersContent)
		public.DELETE("/delete-booking", handler.AuthRequired(), api.DeleteBooking)
		public.POST("/v1/cpl/create-user", api.CreateUser)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/site", api.ShowSiteData)
			auth.POST("/uploads", api.UploadMedia)

			auth.GET("/pages", api.ListPages)
			auth.POST("/pages", api.CreatePage)
			auth.GET("/pages/:id", api.GetPage)
			auth.PATCH("/pages/:id", api.UpdatePage)
			auth.DELETE("/pages/:id", api.DeletePage)
			auth.PUT("/pages/:id/sections", api.ReplacePageSections)

			auth.GET("/homepage", api.GetHomepage)
			auth.PUT("/homepage", api.UpdateHomepage)
			auth.PUT("/homepage/sections/:name", api.UpdateHomepageSection)

			auth.GET("/about", api.GetAbout)
			auth.PUT("/about", api.UpdateAbout)

			auth.GET("/others-content", api.GetOthersContent)
			auth.PUT("/others-content", api.UpdateOthersContent)

			auth.GET("/products", api.ListProducts)
			auth.POST("/products", api.CreateProduct)
			auth.GET("/products/:id", api.GetProduct)
			auth.PUT("/products/:id", api.UpdateProduct)
			auth.DELETE("/products/:id", api.DeleteProduct)

			auth.GET("/blogs", api.ListBlogs)
			auth.POST("/blogs", api.CreateBlog)
			auth.GET("/blogs/:id", api.GetBlog)
			auth.PUT("/blogs/:id", api.UpdateBlog)
			auth.DELETE("/blogs/:id", api.DeleteBlog)

			auth.GET("/bookings", api.ListBookings)
			auth.PATCH("/bookings/:id", api.UpdateBookingStatus)
		}
	}

	return r
}

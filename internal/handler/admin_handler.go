package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/render"
	"github.com/sitecms/internal/service"
	"go.uber.org/zap"
)

const (
	sessionUserIDKey = "user_id"
	sessionEmailKey  = "email"
)

type loginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login checks the credentials and starts a dashboard session.
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid login payload")
		return
	}

	user, err := a.users.Authenticate(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		a.respondServiceError(c, err, "login")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionEmailKey, user.Email)
	if err := session.Save(); err != nil {
		a.log(c).Error("save session", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
}

// Logout ends the dashboard session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		a.log(c).Warn("clear session", zap.Error(err))
	}
	respondOK(c, http.StatusOK, nil)
}

// AuthRequired rejects requests without a dashboard session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAuthenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Error: "unauthorized"})
			return
		}
		c.Next()
	}
}

type siteCounts struct {
	Pages    int64 `json:"pages"`
	Products int64 `json:"products"`
	Bookings int64 `json:"bookings"`
	Blogs    int64 `json:"blogs"`
}

// ShowSiteData returns the dashboard's snapshot of the site.
func (a *API) ShowSiteData(c *gin.Context) {
	view := a.siteData(c)

	var counts siteCounts
	ctx := c.Request.Context()
	for _, item := range []struct {
		model any
		dst   *int64
	}{
		{&db.CustomPage{}, &counts.Pages},
		{&db.Product{}, &counts.Products},
		{&db.ContactSubmission{}, &counts.Bookings},
		{&db.Blog{}, &counts.Blogs},
	} {
		if err := a.db.WithContext(ctx).Model(item.model).Count(item.dst).Error; err != nil {
			a.respondServiceError(c, &service.StorageError{Op: "count site data", Err: err}, "load site data")
			return
		}
	}

	respondOK(c, http.StatusOK, gin.H{
		"siteName":     view.Name,
		"announcement": view.Announcement,
		"socialLinks":  view.SocialLinks,
		"platforms":    render.SocialPlatforms(),
		"user":         sessions.Default(c).Get(sessionEmailKey),
		"counts":       counts,
	})
}

// CreateUser bootstraps a dashboard account for callers holding the
// configured secret.
func (a *API) CreateUser(c *gin.Context) {
	var payload service.BootstrapInput
	if !bindJSON(c, &payload, "invalid user payload") {
		return
	}

	user, err := a.users.Bootstrap(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "create user")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
}

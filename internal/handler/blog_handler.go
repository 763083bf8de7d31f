package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
	"go.uber.org/zap"
)

// ListBlogs handles GET /api/blogs?page=&limit=&published=. Visitors without
// a dashboard session only ever see published blogs.
func (a *API) ListBlogs(c *gin.Context) {
	filter := service.BlogFilter{
		Page:      parsePositiveInt(c.Query("page"), 1),
		Limit:     parsePositiveInt(c.Query("limit"), 0),
		Published: parseOptionalBool(c.Query("published")),
	}
	if !isAuthenticated(c) {
		published := true
		filter.Published = &published
	}

	result, err := a.blogs.List(c.Request.Context(), filter)
	if err != nil {
		a.log(c).Error("list blogs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list blogs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"blogs":      result.Blogs,
		"pagination": result.Pagination,
	})
}

// GetBlog returns a blog by id.
func (a *API) GetBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	blog, err := a.blogs.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "get blog")
		return
	}
	respondOK(c, http.StatusOK, blog)
}

// CreateBlog adds a blog.
func (a *API) CreateBlog(c *gin.Context) {
	var payload service.BlogInput
	if !bindJSON(c, &payload, "invalid blog payload") {
		return
	}

	blog, err := a.blogs.Create(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "create blog")
		return
	}
	respondOK(c, http.StatusCreated, blog)
}

// UpdateBlog replaces a blog's fields.
func (a *API) UpdateBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload service.BlogInput
	if !bindJSON(c, &payload, "invalid blog payload") {
		return
	}

	blog, err := a.blogs.Update(c.Request.Context(), id, payload)
	if err != nil {
		a.respondServiceError(c, err, "update blog")
		return
	}
	respondOK(c, http.StatusOK, blog)
}

// DeleteBlog removes a blog.
func (a *API) DeleteBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.blogs.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "delete blog")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/content"
)

// GetHomepage returns the homepage document.
func (a *API) GetHomepage(c *gin.Context) {
	doc, err := a.homepage.Get(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "load homepage")
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// UpdateHomepage replaces the whole homepage document.
func (a *API) UpdateHomepage(c *gin.Context) {
	var payload content.Homepage
	if !bindJSON(c, &payload, "invalid homepage payload") {
		return
	}

	doc, err := a.homepage.Update(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "update homepage")
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// UpdateHomepageSection replaces one homepage section named by the path.
func (a *API) UpdateHomepageSection(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid section payload")
		return
	}

	section, err := content.DecodeHomepageSection(c.Param("name"), raw)
	if err != nil {
		if errors.Is(err, content.ErrUnknownHomepageSection) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusBadRequest, "invalid section payload")
		return
	}

	doc, err := a.homepage.UpdateSection(c.Request.Context(), section)
	if err != nil {
		a.respondServiceError(c, err, "update homepage section")
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// GetAbout returns the about-us document.
func (a *API) GetAbout(c *gin.Context) {
	doc, err := a.about.Get(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "load about")
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// UpdateAbout replaces the about-us document.
func (a *API) UpdateAbout(c *gin.Context) {
	var payload content.About
	if !bindJSON(c, &payload, "invalid about payload") {
		return
	}

	doc, err := a.about.Update(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "update about")
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// GetOthersContent returns the site-wide content, creating it on first use.
func (a *API) GetOthersContent(c *gin.Context) {
	doc, err := a.others.Get(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "load others content")
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// UpdateOthersContent upserts the site-wide content.
func (a *API) UpdateOthersContent(c *gin.Context) {
	var payload content.Others
	if !bindJSON(c, &payload, "invalid content payload") {
		return
	}

	doc, err := a.others.Update(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "update others content")
		return
	}
	respondOK(c, http.StatusOK, doc)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/content"
	"github.com/sitecms/internal/service"
)

type customPagePatchPayload struct {
	Title       *string            `json:"title"`
	Slug        *string            `json:"slug"`
	IsPublished *bool              `json:"isPublished"`
	Sections    *[]content.Section `json:"sections"`
}

type sectionsPayload struct {
	Sections []content.Section `json:"sections"`
}

// ListPages returns every custom page, newest first.
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "list pages")
		return
	}
	respondOK(c, http.StatusOK, pages)
}

// CreatePage creates an empty, unpublished page.
func (a *API) CreatePage(c *gin.Context) {
	var payload service.CustomPageInput
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.pages.Create(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "create page")
		return
	}
	respondOK(c, http.StatusCreated, page)
}

// GetPage returns a page by id, published or not.
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := a.pages.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "get page")
		return
	}
	respondOK(c, http.StatusOK, page)
}

// UpdatePage applies a partial update.
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload customPagePatchPayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.pages.Update(c.Request.Context(), id, service.CustomPagePatch{
		Title:       payload.Title,
		Slug:        payload.Slug,
		IsPublished: payload.IsPublished,
		Sections:    payload.Sections,
	})
	if err != nil {
		a.respondServiceError(c, err, "update page")
		return
	}
	respondOK(c, http.StatusOK, page)
}

// ReplacePageSections stores the page builder's section list as sent.
func (a *API) ReplacePageSections(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload sectionsPayload
	if !bindJSON(c, &payload, "invalid sections payload") {
		return
	}
	if payload.Sections == nil {
		payload.Sections = []content.Section{}
	}

	page, err := a.pages.ReplaceSections(c.Request.Context(), id, payload.Sections)
	if err != nil {
		a.respondServiceError(c, err, "update sections")
		return
	}
	respondOK(c, http.StatusOK, page)
}

// DeletePage removes a page.
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.pages.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "delete page")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

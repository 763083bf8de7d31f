package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
)

// ListProducts returns every product in display order.
func (a *API) ListProducts(c *gin.Context) {
	items, err := a.products.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "list products")
		return
	}
	respondOK(c, http.StatusOK, items)
}

// GetProduct returns a single product.
func (a *API) GetProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := a.products.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "get product")
		return
	}
	respondOK(c, http.StatusOK, item)
}

// CreateProduct adds a product.
func (a *API) CreateProduct(c *gin.Context) {
	var payload service.ProductInput
	if !bindJSON(c, &payload, "invalid product payload") {
		return
	}

	item, err := a.products.Create(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "create product")
		return
	}
	respondOK(c, http.StatusCreated, item)
}

// UpdateProduct replaces a product's fields.
func (a *API) UpdateProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload service.ProductInput
	if !bindJSON(c, &payload, "invalid product payload") {
		return
	}

	item, err := a.products.Update(c.Request.Context(), id, payload)
	if err != nil {
		a.respondServiceError(c, err, "update product")
		return
	}
	respondOK(c, http.StatusOK, item)
}

// DeleteProduct removes a product.
func (a *API) DeleteProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.products.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "delete product")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

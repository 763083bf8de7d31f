package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
	"go.uber.org/zap"
)

type bookingStatusPayload struct {
	Status string `json:"status"`
}

// SubmitContact stores a booking or contact request from the public site.
func (a *API) SubmitContact(c *gin.Context) {
	var payload service.ContactInput
	if !bindJSON(c, &payload, "invalid contact payload") {
		return
	}

	submission, err := a.contacts.Create(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "submit contact")
		return
	}
	respondOK(c, http.StatusCreated, submission)
}

// ListBookings returns every submission, newest first.
func (a *API) ListBookings(c *gin.Context) {
	items, err := a.contacts.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "list bookings")
		return
	}
	respondOK(c, http.StatusOK, items)
}

// UpdateBookingStatus moves a submission to another status.
func (a *API) UpdateBookingStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload bookingStatusPayload
	if !bindJSON(c, &payload, "invalid status payload") {
		return
	}

	item, err := a.contacts.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		a.respondServiceError(c, err, "update booking status")
		return
	}
	respondOK(c, http.StatusOK, item)
}

// DeleteBooking handles DELETE /api/delete-booking?id=. The response carries
// the remaining bookings instead of the usual data field.
func (a *API) DeleteBooking(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "booking id is required"})
		return
	}
	id, err := parseUint(raw, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	remaining, err := a.contacts.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "booking not found"})
		default:
			a.log(c).Error("delete booking", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": remaining})
}

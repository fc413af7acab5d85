package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/agenda-api/internal/apperr"
	"github.com/agendafacil/agenda-api/internal/httperr"
	"github.com/agendafacil/agenda-api/internal/middleware"
	"github.com/agendafacil/agenda-api/internal/models"
	"github.com/agendafacil/agenda-api/internal/repository"
	"github.com/agendafacil/agenda-api/internal/validators"
)

type AppointmentHandler struct {
	repo repository.AppointmentRepository
}

func NewAppointmentHandler(repo repository.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{repo: repo}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required,dateonly"`
	Time        string `json:"time" binding:"required,hhmm"`
}

// UpdateAppointmentRequest uses pointers so only keys present in the body
// are applied.
type UpdateAppointmentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	date := c.Query("date")
	if date != "" && !validators.IsDate(date) {
		httperr.Respond(c, apperr.Validation("invalid date format, use YYYY-MM-DD"))
		return
	}

	aps, err := h.repo.List(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": aps})
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	ap := models.Appointment{
		UserID:      middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	}

	if err := h.repo.Create(c.Request.Context(), &ap); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "appointment created successfully",
		"appointment": ap,
	})
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	// ownership lookup first: a foreign-owned id is a 404 even when the
	// body is also malformed
	ap, err := h.repo.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	// per-field format checks happen before anything is applied
	if req.Date != nil && !validators.IsDate(*req.Date) {
		httperr.Respond(c, apperr.Validation("invalid date format, use YYYY-MM-DD"))
		return
	}
	if req.Time != nil && !validators.IsTime(*req.Time) {
		httperr.Respond(c, apperr.Validation("invalid time format, use HH:MM"))
		return
	}

	if req.Title != nil {
		ap.Title = *req.Title
	}
	if req.Description != nil {
		ap.Description = *req.Description
	}
	if req.Date != nil {
		ap.Date = *req.Date
	}
	if req.Time != nil {
		ap.Time = *req.Time
	}

	// Save refreshes updated_at even when no field changed
	if err := h.repo.Save(c.Request.Context(), ap); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "appointment updated successfully",
		"appointment": ap,
	})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted successfully"})
}

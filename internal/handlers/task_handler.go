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

type TaskHandler struct {
	repo repository.TaskRepository
}

func NewTaskHandler(repo repository.TaskRepository) *TaskHandler {
	return &TaskHandler{repo: repo}
}

// --------- Requests ---------

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate     string `json:"due_date" binding:"omitempty,dateonly"`
}

// UpdateTaskRequest distinguishes an omitted key (nil) from one set to the
// empty string; "due_date": "" clears the due date.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
}

// --------- Handlers ---------

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.repo.List(
		c.Request.Context(),
		middleware.UserID(c),
		c.Query("status"),
		c.Query("priority"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	task := models.Task{
		UserID:      middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if req.DueDate != "" {
		due := req.DueDate
		task.DueDate = &due
	}

	if err := h.repo.Create(c.Request.Context(), &task); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "task created successfully",
		"task":    task,
	})
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	// ownership lookup first: a foreign-owned id is a 404 even when the
	// body is also malformed
	task, err := h.repo.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	// strict allow-listing before any field is applied
	if req.Priority != nil && !models.IsValidPriority(*req.Priority) {
		httperr.Respond(c, apperr.Validation("invalid priority"))
		return
	}
	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		httperr.Respond(c, apperr.Validation("invalid status"))
		return
	}
	if req.DueDate != nil && *req.DueDate != "" && !validators.IsDate(*req.DueDate) {
		httperr.Respond(c, apperr.Validation("invalid date format, use YYYY-MM-DD"))
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			task.DueDate = req.DueDate
		}
	}

	if err := h.repo.Save(c.Request.Context(), task); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "task updated successfully",
		"task":    task,
	})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/agenda-api/internal/httperr"
	"github.com/agendafacil/agenda-api/internal/middleware"
	"github.com/agendafacil/agenda-api/internal/repository"
)

type MeHandler struct {
	users repository.UserRepository
}

func NewMeHandler(users repository.UserRepository) *MeHandler {
	return &MeHandler{users: users}
}

// GetMe returns the authenticated user's profile. A valid token whose user
// row has since vanished yields 404.
func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Draft Payment Reminder
// @Description  Draft a reminder message for an unpaid or overdue invoice
// @Tags         reminders
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Invoice ID"
// @Success      200  {object}  domain.Draft
// @Router       /invoices/{id}/reminder [post]
func (s *Server) DraftReminder(c *gin.Context) {
	id := c.Param("id")
	draft, err := s.reminderSvc.Draft(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "reminder.draft", "invoice", id, map[string]any{
		"source": draft.Source,
	})
	c.JSON(http.StatusOK, gin.H{"data": draft})
}

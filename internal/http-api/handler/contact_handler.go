package handler

import (
	"net/http"

	"editorial/internal/http-api/dto"
	"editorial/internal/http-api/middleware"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	messages service.MessageService
}

func NewContactHandler(messages service.MessageService) *ContactHandler {
	return &ContactHandler{messages: messages}
}

// Submit accepts a contact message from a visitor or, behind OptionalAuth, a signed-in user.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sender *service.Actor
	if a, ok := middleware.CurrentActor(c); ok {
		sender = &a
	}

	msg, err := h.messages.SubmitContact(c.Request.Context(), sender, service.ContactInput{
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent", "id": msg.ID})
}

package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"editorial/internal/http-api/dto"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reports  service.ReportService
	users    service.UserAdminService
	messages service.MessageService
}

func NewAdminHandler(reports service.ReportService, users service.UserAdminService, messages service.MessageService) *AdminHandler {
	return &AdminHandler{reports: reports, users: users, messages: messages}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	d, err := h.reports.AdminDashboard(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *AdminHandler) Reports(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	stats, err := h.reports.Stats(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ExportCSV renders the report fully before responding so a failure still yields a JSON error.
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reports.ExportManuscriptsCSV(c.Request.Context(), a, &buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ReportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var q dto.UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := h.users.List(c.Request.Context(), a, q.Q, q.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.NewUserResponses(users)})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(u)})
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.users.ChangeRole(c.Request.Context(), a, id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user": dto.NewUserResponse(u)})
}

func (h *AdminHandler) Block(c *gin.Context) {
	h.setBlocked(c, true)
}

func (h *AdminHandler) Unblock(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *AdminHandler) setBlocked(c *gin.Context, blocked bool) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	u, err := h.users.SetBlocked(c.Request.Context(), a, id, blocked)
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "User unblocked"
	if blocked {
		msg = "User blocked"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "user": dto.NewUserResponse(u)})
}

func (h *AdminHandler) ListContacts(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	msgs, err := h.messages.List(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": msgs})
}

func (h *AdminHandler) MarkContactDone(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.messages.MarkDone(c.Request.Context(), a, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact marked as done"})
}

func (h *AdminHandler) MarkContactRead(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.messages.MarkRead(c.Request.Context(), a, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact marked as read"})
}

package handler

import (
	"net/http"

	"editorial/internal/http-api/dto"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	content service.ContentService
}

func NewContentHandler(content service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Home returns the latest news and publications for the landing page.
func (h *ContentHandler) Home(c *gin.Context) {
	page, err := h.content.Home(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ContentHandler) ListNews(c *gin.Context) {
	news, err := h.content.ListNews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": news})
}

func (h *ContentHandler) GetNews(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	n, err := h.content.GetNews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": n})
}

func (h *ContentHandler) ListPublications(c *gin.Context) {
	pubs, err := h.content.ListPublications(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"publications": pubs})
}

// GetPublication returns an issue together with the manuscripts published in it.
func (h *ContentHandler) GetPublication(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.content.GetPublication(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ContentHandler) CreateNews(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.NewsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.content.CreateNews(c.Request.Context(), a, service.NewsInput{Title: req.Title, Content: req.Content})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "News created", "news": n})
}

func (h *ContentHandler) UpdateNews(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.NewsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.content.UpdateNews(c.Request.Context(), a, id, service.NewsInput{Title: req.Title, Content: req.Content})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News updated", "news": n})
}

func (h *ContentHandler) DeleteNews(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteNews(c.Request.Context(), a, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News deleted"})
}

func (h *ContentHandler) CreatePublication(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.PublicationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.content.CreatePublication(c.Request.Context(), a, publicationInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Publication created", "publication": p})
}

func (h *ContentHandler) UpdatePublication(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.PublicationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.content.UpdatePublication(c.Request.Context(), a, id, publicationInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Publication updated", "publication": p})
}

// DeletePublication removes the issue; its manuscripts stay, detached from it.
func (h *ContentHandler) DeletePublication(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeletePublication(c.Request.Context(), a, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Publication deleted"})
}

func publicationInput(req dto.PublicationRequest) service.PublicationInput {
	return service.PublicationInput{
		Type:        req.Type,
		Title:       req.Title,
		PubDate:     req.PubDate,
		Description: req.Description,
	}
}

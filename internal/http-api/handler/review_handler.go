package handler

import (
	"net/http"

	"editorial/internal/http-api/dto"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Form returns the manuscript and the caller's current review, if any.
func (h *ReviewHandler) Form(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "manuscript_id")
	if !ok {
		return
	}

	m, review, err := h.reviews.GetOwnReview(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFormResponse{Manuscript: m, Review: review})
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "manuscript_id")
	if !ok {
		return
	}
	var req dto.SubmitReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and a numeric score are required"})
		return
	}

	review, err := h.reviews.SubmitReview(c.Request.Context(), a, id, req.Text, *req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review saved", "review": review})
}

// List returns every review of a manuscript for staff.
func (h *ReviewHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "manuscript_id")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListReviews(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

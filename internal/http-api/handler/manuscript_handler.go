package handler

import (
	"errors"
	"io"
	"net/http"

	"editorial/internal/http-api/dto"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the text fields and boundaries around the file.
const multipartOverhead = 1 << 20

type ManuscriptHandler struct {
	workflow       service.WorkflowService
	reviews        service.ReviewService
	uploadMaxBytes int64
}

func NewManuscriptHandler(workflow service.WorkflowService, reviews service.ReviewService, uploadMaxBytes int64) *ManuscriptHandler {
	return &ManuscriptHandler{workflow: workflow, reviews: reviews, uploadMaxBytes: uploadMaxBytes}
}

// Submit handles the multipart form with title, description and file.
func (h *ManuscriptHandler) Submit(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes+multipartOverhead)

	var req dto.SubmitManuscriptRequest
	if err := c.ShouldBind(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is too large", "field": "file"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := service.SubmitInput{Title: req.Title, Description: req.Description}
	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		f, openErr := fh.Open()
		if openErr != nil {
			respondError(c, openErr)
			return
		}
		defer f.Close()
		in.FileName = fh.Filename
		in.File = f
	case errors.Is(err, http.ErrMissingFile):
		// the service reports the missing file
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is too large", "field": "file"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.workflow.Submit(c.Request.Context(), a, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Manuscript submitted",
		"manuscript": m,
	})
}

// List returns the manuscripts visible to the caller's role.
func (h *ManuscriptHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	list, err := h.workflow.ListForRole(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manuscripts": list})
}

func (h *ManuscriptHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	m, err := h.workflow.Get(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manuscript": m})
}

func (h *ManuscriptHandler) History(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	entries, err := h.workflow.History(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// Publish is idempotent: publishing a published manuscript reports it and changes nothing.
func (h *ManuscriptHandler) Publish(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.workflow.Publish(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}

	msg := "Manuscript published and attached to an issue"
	if res.AlreadyPublished {
		msg = "Manuscript is already published"
	}
	c.JSON(http.StatusOK, dto.PublishResponse{
		Message:          msg,
		AlreadyPublished: res.AlreadyPublished,
		Manuscript:       res.Manuscript,
	})
}

func (h *ManuscriptHandler) StartReview(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.workflow.StartReview(c.Request.Context(), a, id, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Manuscript sent to review", "manuscript": m})
}

func (h *ManuscriptHandler) Decide(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.DecisionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accept := req.Decision == "accept"
	m, err := h.workflow.Decide(c.Request.Context(), a, id, accept, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "Manuscript rejected"
	if accept {
		msg = "Manuscript accepted"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "manuscript": m})
}

func (h *ManuscriptHandler) AssignReviewer(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignReviewerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.AssignReviewer(c.Request.Context(), a, id, req.ReviewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reviewer assigned", "review": review})
}

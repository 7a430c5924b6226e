package dto

import "editorial/internal/http-api/models"

// SubmitManuscriptRequest holds the text fields of the multipart submission; the file is read separately.
type SubmitManuscriptRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type TransitionRequest struct {
	Comment string `json:"comment" form:"comment"`
}

// DecisionRequest carries the staff decision: "accept" or "reject".
type DecisionRequest struct {
	Decision string `json:"decision" form:"decision" binding:"required,oneof=accept reject"`
	Comment  string `json:"comment" form:"comment"`
}

type AssignReviewerRequest struct {
	ReviewerID int64 `json:"reviewer_id" form:"reviewer_id" binding:"required,gt=0"`
}

// SubmitReviewRequest binds score as a pointer so a missing score is told apart from zero.
type SubmitReviewRequest struct {
	Text  string `json:"text" form:"text"`
	Score *int   `json:"score" form:"score" binding:"required"`
}

type PublishResponse struct {
	Message          string             `json:"message"`
	AlreadyPublished bool               `json:"already_published"`
	Manuscript       *models.Manuscript `json:"manuscript"`
}

type ReviewFormResponse struct {
	Manuscript *models.Manuscript `json:"manuscript"`
	Review     *models.Review     `json:"review"`
}

package dto

type NewsRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// PublicationRequest takes pub_date as YYYY-MM-DD; anything else is stored as no date.
type PublicationRequest struct {
	Type        string `json:"type" form:"type"`
	Title       string `json:"title" form:"title"`
	PubDate     string `json:"pub_date" form:"pub_date"`
	Description string `json:"description" form:"description"`
}

type ContactRequest struct {
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Body    string `json:"body" form:"body"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" form:"role" binding:"required"`
}

type UserListQuery struct {
	Q    string `form:"q"`
	Role string `form:"role"`
}

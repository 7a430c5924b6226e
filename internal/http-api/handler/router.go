package handler

import (
	"editorial/internal/http-api/middleware"
	"editorial/internal/http-api/models"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// Routes groups everything RegisterRoutes needs.
type Routes struct {
	Auth        service.AuthService
	RateLimiter *middleware.IPRateLimiter

	Health      *HealthHandler
	AuthH       *AuthHandler
	Content     *ContentHandler
	Manuscripts *ManuscriptHandler
	Reviews     *ReviewHandler
	Dashboard   *DashboardHandler
	Admin       *AdminHandler
	Contact     *ContactHandler
	Media       *MediaHandler
}

func RegisterRoutes(r *gin.Engine, rt Routes) {
	authRequired := middleware.AuthMiddleware(rt.Auth)
	limited := rt.RateLimiter.Middleware()

	staff := middleware.RequireRole(models.RoleStaff)
	author := middleware.RequireRole(models.RoleAuthor)
	reviewer := middleware.RequireRole(models.RoleReviewer)
	admin := middleware.RequireRole(models.RoleAdmin)

	// Public
	r.GET("/health", rt.Health.Check)
	r.GET("/", rt.Content.Home)
	r.GET("/news", rt.Content.ListNews)
	r.GET("/news/:id", rt.Content.GetNews)
	r.GET("/publications", rt.Content.ListPublications)
	r.GET("/publications/:id", rt.Content.GetPublication)

	r.POST("/register", limited, rt.AuthH.Register)
	r.POST("/login", limited, rt.AuthH.Login)
	r.POST("/contact", limited, middleware.OptionalAuth(rt.Auth), rt.Contact.Submit)

	// Authenticated
	r.POST("/logout", authRequired, rt.AuthH.Logout)
	r.GET("/lk", authRequired, rt.Dashboard.Show)
	r.GET("/profile", authRequired, rt.Dashboard.Show)
	r.GET("/media/*filepath", authRequired, rt.Media.Download)

	ms := r.Group("/manuscripts", authRequired)
	{
		ms.POST("/submit", author, rt.Manuscripts.Submit)
		ms.GET("/status", author, rt.Manuscripts.List)
		ms.GET("", middleware.RequireRole(models.RoleStaff, models.RoleReviewer, models.RoleAuthor), rt.Manuscripts.List)
		ms.GET("/:id", rt.Manuscripts.Get)
		ms.GET("/:id/history", rt.Manuscripts.History)
		ms.POST("/:id/publish", staff, rt.Manuscripts.Publish)
		ms.POST("/:id/review-start", staff, rt.Manuscripts.StartReview)
		ms.POST("/:id/decision", staff, rt.Manuscripts.Decide)
		ms.POST("/:id/reviewers", staff, rt.Manuscripts.AssignReviewer)
	}

	rv := r.Group("/reviews", authRequired)
	{
		rv.GET("/list/:manuscript_id", staff, rt.Reviews.List)
		rv.GET("/:manuscript_id", reviewer, rt.Reviews.Form)
		rv.POST("/:manuscript_id", reviewer, rt.Reviews.Submit)
	}

	ad := r.Group("/admin", authRequired, admin)
	{
		ad.GET("/dashboard", rt.Admin.Dashboard)
		ad.GET("/reports", rt.Admin.Reports)
		ad.GET("/reports/export/csv", rt.Admin.ExportCSV)

		ad.GET("/news", rt.Content.ListNews)
		ad.POST("/news", rt.Content.CreateNews)
		ad.GET("/news/:id", rt.Content.GetNews)
		ad.PUT("/news/:id", rt.Content.UpdateNews)
		ad.DELETE("/news/:id", rt.Content.DeleteNews)

		ad.GET("/publications", rt.Content.ListPublications)
		ad.POST("/publications", rt.Content.CreatePublication)
		ad.GET("/publications/:id", rt.Content.GetPublication)
		ad.PUT("/publications/:id", rt.Content.UpdatePublication)
		ad.DELETE("/publications/:id", rt.Content.DeletePublication)

		ad.GET("/users", rt.Admin.ListUsers)
		ad.GET("/users/:id", rt.Admin.GetUser)
		ad.POST("/users/:id/role", rt.Admin.ChangeRole)
		ad.POST("/users/:id/block", rt.Admin.Block)
		ad.POST("/users/:id/unblock", rt.Admin.Unblock)

		ad.GET("/contacts", rt.Admin.ListContacts)
		ad.POST("/contacts/:id/done", rt.Admin.MarkContactDone)
		ad.POST("/contacts/:id/read", rt.Admin.MarkContactRead)
	}
}

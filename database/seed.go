package database

import (
	"context"
	"fmt"
	"time"

	"editorial/internal/http-api/models"
	"editorial/internal/middleware/auth"

	"gorm.io/gorm"
)

type seedUser struct {
	name, email, password string
	role                  models.Role
}

var seedUsers = []seedUser{
	{"Site Administrator", "admin@editorial.test", "adminpass", models.RoleAdmin},
	{"Editor I. Ivanov", "editor@editorial.test", "editorpass", models.RoleStaff},
	{"Reviewer P. Petrov", "reviewer@editorial.test", "reviewpass", models.RoleReviewer},
	{"Author A. Sidorov", "author@editorial.test", "authorpass", models.RoleAuthor},
}

// Seed fills an empty database with demo data. It reports false when users already exist.
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&existing).Error; err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make(map[models.Role]*models.User, len(seedUsers))
		for _, su := range seedUsers {
			hash, err := auth.HashPassword(su.password)
			if err != nil {
				return err
			}
			u := &models.User{FullName: su.name, Email: su.email, PasswordHash: hash, Role: su.role}
			if err := tx.Create(u).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", su.email, err)
			}
			users[su.role] = u
		}

		journal := &models.Publication{
			Type:        "journal",
			Title:       "University Research Journal",
			PubDate:     date(2024, time.May, 15),
			Description: "Issue 1, 2024",
		}
		book := &models.Publication{
			Type:        "book",
			Title:       "Collected Research Papers",
			PubDate:     date(2024, time.June, 1),
			Description: "Best student papers",
		}
		if err := tx.Create([]*models.Publication{journal, book}).Error; err != nil {
			return fmt.Errorf("seed publications: %w", err)
		}

		news := []*models.News{
			{
				Title:       "Manuscript submissions are open",
				Content:     "Dear authors, submissions for the next issue are now open.",
				PublishedAt: time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC),
			},
			{
				Title:       "Previous issue results",
				Content:     "A new issue of the journal is out. See the publications page.",
				PublishedAt: time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC),
			},
		}
		if err := tx.Create(news).Error; err != nil {
			return fmt.Errorf("seed news: %w", err)
		}

		author := users[models.RoleAuthor]
		first := &models.Manuscript{
			Title:         "Innovative teaching methods",
			Description:   "Current approaches to teaching in the digital age.",
			FilePath:      "manuscripts/sample_manuscript1.pdf",
			Status:        models.StatusSubmitted,
			AuthorID:      author.ID,
			PublicationID: &journal.ID,
		}
		second := &models.Manuscript{
			Title:         "Automating the publishing process",
			Description:   "A survey of modern platforms for publishers.",
			FilePath:      "manuscripts/sample_manuscript2.docx",
			Status:        models.StatusUnderReview,
			AuthorID:      author.ID,
			PublicationID: &book.ID,
		}
		if err := tx.Create([]*models.Manuscript{first, second}).Error; err != nil {
			return fmt.Errorf("seed manuscripts: %w", err)
		}

		reviewer := users[models.RoleReviewer]
		score := 4
		review := &models.Review{
			ManuscriptID: second.ID,
			ReviewerID:   reviewer.ID,
			Text:         "Interesting paper, but section 2 needs more work.",
			Score:        &score,
			Status:       models.ReviewSubmitted,
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("seed review: %w", err)
		}
		entry := &models.ManuscriptHistory{
			ManuscriptID: second.ID,
			ActorID:      &reviewer.ID,
			ActorRole:    models.RoleReviewer,
			Action:       models.ActionReviewSubmitted,
			Comment:      "The reviewer left remarks and recommends revising the text.",
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("seed history: %w", err)
		}

		now := time.Now().UTC()
		external := "external_author@example.com"
		messages := []*models.Message{
			{SenderID: &author.ID, Subject: "Publication timeline", Body: "When will my manuscript be published?", SentAt: now, Status: models.MessageNew},
			{SenderID: &users[models.RoleStaff].ID, Subject: "Re: publication timeline", Body: "Publication is expected in June.", SentAt: now, Status: models.MessageDone},
			{SenderEmail: &external, Subject: "Formatting requirements", Body: "I would like to clarify the manuscript formatting rules.", SentAt: now, Status: models.MessageNew},
		}
		if err := tx.Create(messages).Error; err != nil {
			return fmt.Errorf("seed messages: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

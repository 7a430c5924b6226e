package repository

import (
	"context"

	"editorial/internal/http-api/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	List(ctx context.Context, limit int) ([]models.Message, error)
	SetStatus(ctx context.Context, id int64, status models.MessageStatus) error
	MarkRead(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *models.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	var m models.Message
	if err := r.db.WithContext(ctx).Preload("Sender").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) List(ctx context.Context, limit int) ([]models.Message, error) {
	q := r.db.WithContext(ctx).Preload("Sender").Order("sent_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Message
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *messageRepository) SetStatus(ctx context.Context, id int64, status models.MessageStatus) error {
	return r.update(ctx, id, map[string]any{"status": status, "is_read": true})
}

func (r *messageRepository) MarkRead(ctx context.Context, id int64) error {
	return r.update(ctx, id, map[string]any{"is_read": true})
}

func (r *messageRepository) update(ctx context.Context, id int64, values map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).Updates(values).Error
}

func (r *messageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Count(&count).Error
	return count, err
}

func (r *messageRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (r *messageRepository) CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

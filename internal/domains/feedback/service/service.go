package service

import (
	"context"

	"github.com/google/uuid"

	"shop-backend/internal/domains/feedback/model"
	"shop-backend/internal/domains/feedback/repository"
	"shop-backend/pkg/logger"
)

type Service interface {
	// Submit lưu feedback; userID = uuid.Nil khi không đăng nhập
	Submit(ctx context.Context, userID uuid.UUID, req model.FeedbackRequest) (*model.Feedback, error)
	Grid(ctx context.Context, req model.FeedbackQueryRequest) ([]model.Feedback, int64, error)
	Delete(ctx context.Context, id int64) error
}

type feedbackService struct {
	repo repository.Repository
}

func NewFeedbackService(repo repository.Repository) Service {
	return &feedbackService{repo: repo}
}

func (s *feedbackService) Submit(ctx context.Context, userID uuid.UUID, req model.FeedbackRequest) (*model.Feedback, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	f := &model.Feedback{
		Contact: req.Contact,
		Content: req.Content,
		Type:    *req.Type,
	}
	if userID != uuid.Nil {
		f.UserID = &userID
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	logger.Info("Feedback submitted", map[string]interface{}{
		"feedback_id": f.ID,
		"type":        f.Type.String(),
	})
	return f, nil
}

func (s *feedbackService) Grid(ctx context.Context, req model.FeedbackQueryRequest) ([]model.Feedback, int64, error) {
	req.Normalize()
	return s.repo.List(ctx, req)
}

func (s *feedbackService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

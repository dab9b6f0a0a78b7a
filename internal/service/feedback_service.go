package service

import (
	"context"

	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/models"
)

// FeedbackStore 反馈持久化依赖
type FeedbackStore interface {
	FindEventByImageURL(ctx context.Context, imageURL string) (*models.Event, error)
	Submit(ctx context.Context, fb *models.Feedback) error
}

// FeedbackService 误报反馈服务接口
type FeedbackService interface {
	Report(ctx context.Context, imageURL string) error
}

// feedbackService 实现
type feedbackService struct {
	store  FeedbackStore
	logger *zap.Logger
}

// NewFeedbackService 创建 FeedbackService 实例
func NewFeedbackService(store FeedbackStore, logger *zap.Logger) FeedbackService {
	return &feedbackService{
		store:  store,
		logger: logger,
	}
}

// 反馈尚未接入登录态，先记在管理员账号下
const feedbackDefaultUserID = 1

// Report 登记一条误报反馈
// 通过缩略图地址定位事件：找不到对应事件返回 NotFound，
// 事件已有反馈标记返回 Conflict，不重复落库。
func (s *feedbackService) Report(ctx context.Context, imageURL string) error {
	if imageURL == "" {
		return domain.NewError(domain.ErrMissingField, "image URL is required")
	}

	event, err := s.store.FindEventByImageURL(ctx, imageURL)
	if err != nil {
		return domain.WrapPersistence("database error", err)
	}
	if event == nil {
		return domain.NewError(domain.ErrNotFound, "image not found in database")
	}
	if event.HasFeedback {
		return domain.NewError(domain.ErrConflict, "feedback already submitted for this image")
	}

	fb := &models.Feedback{
		EventID: event.ID,
		UserID:  feedbackDefaultUserID,
		Notes:   "Misdetection reported from frontend.",
	}
	if err := s.store.Submit(ctx, fb); err != nil {
		return domain.WrapPersistence("database error", err)
	}

	s.logger.Info("misdetection feedback recorded",
		zap.Int64("event_id", event.ID),
		zap.String("image_url", imageURL),
	)
	return nil
}

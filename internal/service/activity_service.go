package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
)

type activityLogRepository interface {
	Insert(ctx context.Context, entry *models.ActivityLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error)
}

// ActivityService is the append-only audit sink. Appends are best effort:
// a logging failure never fails or rolls back the operation that triggered
// it, it is only reported to the operational log.
type ActivityService struct {
	repo   activityLogRepository
	logger *zap.Logger
	limit  int
}

// NewActivityService constructs the activity service.
func NewActivityService(repo activityLogRepository, logger *zap.Logger, limit int) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = 50
	}
	return &ActivityService{repo: repo, logger: logger, limit: limit}
}

// Record appends one entry, swallowing any store error.
func (s *ActivityService) Record(ctx context.Context, residentName, action, adminUsername string) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &models.ActivityLogEntry{
		ResidentName:  residentName,
		Action:        action,
		AdminUsername: adminUsername,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Warn("failed to append activity log",
			zap.String("resident", residentName),
			zap.String("action", action),
			zap.Error(err))
	}
}

// Recent returns the most recent entries, newest first, capped at the
// configured limit.
func (s *ActivityService) Recent(ctx context.Context) ([]models.ActivityLogEntry, error) {
	entries, err := s.repo.ListRecent(ctx, s.limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activity logs")
	}
	return entries, nil
}

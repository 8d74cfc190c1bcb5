// api/service/condition_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/medicube/radgate/api/dao"
	"github.com/medicube/radgate/api/db"
	radgate_errors "github.com/medicube/radgate/api/errors"
	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
	"github.com/medicube/radgate/api/util"
)

// IConditionService handles the administrative lifecycle of access
// conditions.
type IConditionService interface {
	CreateCondition(ctx context.Context, input model.NewAccessCondition) (*model.AccessCondition, error)
	GetCondition(ctx context.Context, conditionID int64) (*model.AccessCondition, error)
	ListConditions(ctx context.Context, limit, offset int) ([]model.AccessCondition, error)
	DeleteCondition(ctx context.Context, conditionID int64) error
	AssignToProject(ctx context.Context, conditionID, projectID int64, priority int) error
	AssignToRole(ctx context.Context, conditionID, roleID int64, priority int) error
}

// conditionStore is the persistence surface the service needs.
type conditionStore interface {
	CreateCondition(ctx context.Context, condition model.AccessCondition) (int64, error)
	GetCondition(ctx context.Context, conditionID int64) (*model.AccessCondition, error)
	ListConditions(ctx context.Context, limit, offset int) ([]model.AccessCondition, error)
	DeleteCondition(ctx context.Context, conditionID int64) error
	ProjectIDsForCondition(ctx context.Context, conditionID int64) ([]int64, error)
	AssociateWithProject(ctx context.Context, conditionID, projectID int64, priority int) error
	AssociateWithRole(ctx context.Context, conditionID, roleID int64, priority int) error
}

var _ conditionStore = (*dao.ConditionDAO)(nil)

type ConditionService struct {
	conditionDAO    conditionStore
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus

	// dropCachedConditions invalidates a project's cached condition list.
	dropCachedConditions func(ctx context.Context, projectID int64) error
}

func NewConditionService(conditionDAO conditionStore, notificationSvc *util.NotificationService, eventBus *util.EventBus) *ConditionService {
	service := &ConditionService{
		conditionDAO:         conditionDAO,
		notificationSvc:      notificationSvc,
		eventBus:             eventBus,
		dropCachedConditions: db.DeleteCachedProjectConditions,
	}

	eventBus.Subscribe("condition.changed", service.handleConditionChanged)

	return service
}

func (s *ConditionService) handleConditionChanged(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(map[string]interface{})
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	changeType, _ := payload["changeType"].(string)
	condition, _ := payload["condition"].(model.AccessCondition)

	if err := s.notificationSvc.NotifyConditionChange(ctx, changeType, condition); err != nil {
		logger.Warn("Failed to send condition change notification",
			zap.Error(err), zap.Int64("conditionID", condition.ID))
	}
	return nil
}

// CreateCondition validates, normalizes and persists a new condition.
func (s *ConditionService) CreateCondition(ctx context.Context, input model.NewAccessCondition) (*model.AccessCondition, error) {
	condition, err := util.ValidateCondition(input)
	if err != nil {
		return nil, err
	}

	conditionID, err := s.conditionDAO.CreateCondition(ctx, condition)
	if err != nil {
		logger.Error("Error creating access condition", zap.Error(err))
		return nil, fmt.Errorf("failed to create access condition: %w", err)
	}
	condition.ID = conditionID

	s.eventBus.Publish(ctx, "condition.changed", map[string]interface{}{
		"changeType": "created",
		"condition":  condition,
	})

	logger.Info("Access condition created successfully", zap.Int64("conditionID", conditionID))
	return &condition, nil
}

func (s *ConditionService) GetCondition(ctx context.Context, conditionID int64) (*model.AccessCondition, error) {
	condition, err := s.conditionDAO.GetCondition(ctx, conditionID)
	if err != nil {
		if errors.Is(err, radgate_errors.ErrConditionNotFound) {
			return nil, radgate_errors.ErrConditionNotFound
		}
		logger.Error("Error retrieving access condition",
			zap.Error(err), zap.Int64("conditionID", conditionID))
		return nil, radgate_errors.ErrInternalServer
	}
	return condition, nil
}

func (s *ConditionService) ListConditions(ctx context.Context, limit, offset int) ([]model.AccessCondition, error) {
	conditions, err := s.conditionDAO.ListConditions(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing access conditions",
			zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list access conditions: %w", err)
	}
	return conditions, nil
}

// DeleteCondition removes a condition together with its project and role
// associations. Associated project ids are collected before the delete so
// their cached condition lists can be invalidated; a deleted condition must
// stop matching immediately, not at cache TTL expiry.
func (s *ConditionService) DeleteCondition(ctx context.Context, conditionID int64) error {
	condition, err := s.conditionDAO.GetCondition(ctx, conditionID)
	if err != nil {
		return err
	}

	projectIDs, err := s.conditionDAO.ProjectIDsForCondition(ctx, conditionID)
	if err != nil {
		logger.Warn("Failed to list projects for cache invalidation",
			zap.Error(err), zap.Int64("conditionID", conditionID))
	}

	if err := s.conditionDAO.DeleteCondition(ctx, conditionID); err != nil {
		logger.Error("Error deleting access condition",
			zap.Error(err), zap.Int64("conditionID", conditionID))
		return fmt.Errorf("failed to delete access condition: %w", err)
	}

	for _, projectID := range projectIDs {
		if err := s.dropCachedConditions(ctx, projectID); err != nil {
			logger.Warn("Failed to invalidate cached project conditions",
				zap.Error(err), zap.Int64("projectID", projectID))
		}
	}

	s.eventBus.Publish(ctx, "condition.changed", map[string]interface{}{
		"changeType": "deleted",
		"condition":  *condition,
	})

	logger.Info("Access condition deleted successfully", zap.Int64("conditionID", conditionID))
	return nil
}

// AssignToProject associates a condition with a project and drops the
// project's cached condition list so the next evaluation sees the change.
func (s *ConditionService) AssignToProject(ctx context.Context, conditionID, projectID int64, priority int) error {
	if err := s.conditionDAO.AssociateWithProject(ctx, conditionID, projectID, priority); err != nil {
		return err
	}

	if err := s.dropCachedConditions(ctx, projectID); err != nil {
		logger.Warn("Failed to invalidate cached project conditions",
			zap.Error(err), zap.Int64("projectID", projectID))
	}

	logger.Info("Condition assigned to project",
		zap.Int64("conditionID", conditionID),
		zap.Int64("projectID", projectID),
		zap.Int("priority", priority))
	return nil
}

func (s *ConditionService) AssignToRole(ctx context.Context, conditionID, roleID int64, priority int) error {
	if err := s.conditionDAO.AssociateWithRole(ctx, conditionID, roleID, priority); err != nil {
		return err
	}

	logger.Info("Condition assigned to role",
		zap.Int64("conditionID", conditionID),
		zap.Int64("roleID", roleID),
		zap.Int("priority", priority))
	return nil
}

// api/util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyConditionChange(ctx context.Context, changeType string, condition model.AccessCondition) error {
	// In a real implementation, you might send this to a message queue or external notification service
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New access condition created",
			zap.Int64("conditionID", condition.ID),
			zap.String("resourceLevel", string(condition.ResourceLevel)))
	case "updated":
		logger.Info("NOTIFICATION: Access condition updated",
			zap.Int64("conditionID", condition.ID),
			zap.String("resourceLevel", string(condition.ResourceLevel)))
	case "deleted":
		logger.Info("NOTIFICATION: Access condition deleted",
			zap.Int64("conditionID", condition.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	// Logic to notify all system administrators
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}

func (n *NotificationService) NotifyDeniedAccess(ctx context.Context, userID, projectID int64, reason string) error {
	// Logic to flag repeated denials to project administrators
	logger.Info("Notifying denied access",
		zap.Int64("userID", userID),
		zap.Int64("projectID", projectID),
		zap.String("reason", reason))
	return n.NotifyAdmins(ctx, fmt.Sprintf("access denied for user %d in project %d: %s", userID, projectID, reason))
}

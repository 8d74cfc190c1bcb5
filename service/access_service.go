// api/service/access_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/medicube/radgate/api/audit"
	"github.com/medicube/radgate/api/db"
	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
	"github.com/medicube/radgate/api/pdp/engine"
	pdp_model "github.com/medicube/radgate/api/pdp/model"
	"github.com/medicube/radgate/api/util"
)

// IAccessService is the decision surface consumed by the controllers and the
// gateway. Every method returns a decision, never an error: evaluation
// failures surface as denials with a reason code.
type IAccessService interface {
	CheckStudyAccess(ctx context.Context, userID, projectID, studyID int64) pdp_model.Decision
	CheckSeriesAccess(ctx context.Context, userID, projectID, seriesID int64) pdp_model.Decision
	CheckInstanceAccess(ctx context.Context, userID, projectID, instanceID int64) pdp_model.Decision
	EvaluateStudyUID(ctx context.Context, userID, projectID int64, studyUID string) pdp_model.Decision
	EvaluateSeriesUID(ctx context.Context, userID, projectID int64, seriesUID string) pdp_model.Decision
	EvaluateInstanceUID(ctx context.Context, userID, projectID int64, instanceUID string) pdp_model.Decision
}

// denialNotifier flags denied decisions to project administrators.
type denialNotifier interface {
	NotifyDeniedAccess(ctx context.Context, userID, projectID int64, reason string) error
}

// AccessService wraps the evaluator with a short-TTL decision cache and an
// audit trail published through the event bus.
type AccessService struct {
	evaluator    *engine.Evaluator
	eventBus     *util.EventBus
	auditService audit.Service
	notifier     denialNotifier
}

func NewAccessService(evaluator *engine.Evaluator, eventBus *util.EventBus, auditService audit.Service, notifier denialNotifier) *AccessService {
	service := &AccessService{
		evaluator:    evaluator,
		eventBus:     eventBus,
		auditService: auditService,
		notifier:     notifier,
	}

	eventBus.Subscribe("access.decision", service.handleDecisionEvent)

	return service
}

func (s *AccessService) handleDecisionEvent(ctx context.Context, event util.Event) error {
	log, ok := event.Payload.(audit.AccessLog)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return nil
	}
	if err := s.auditService.LogAccess(ctx, log); err != nil {
		logger.Warn("Failed to record access decision", zap.Error(err))
	}
	if !log.AccessGranted {
		if err := s.notifier.NotifyDeniedAccess(ctx, log.UserID, log.ProjectID, log.Reason); err != nil {
			logger.Warn("Failed to notify denied access", zap.Error(err))
		}
	}
	return nil
}

func (s *AccessService) CheckStudyAccess(ctx context.Context, userID, projectID, studyID int64) pdp_model.Decision {
	return s.checkCached(ctx, userID, projectID, model.LevelStudy, studyID, func() pdp_model.Decision {
		return s.evaluator.EvaluateStudyAccess(ctx, userID, projectID, studyID)
	})
}

func (s *AccessService) CheckSeriesAccess(ctx context.Context, userID, projectID, seriesID int64) pdp_model.Decision {
	return s.checkCached(ctx, userID, projectID, model.LevelSeries, seriesID, func() pdp_model.Decision {
		return s.evaluator.EvaluateSeriesAccess(ctx, userID, projectID, seriesID)
	})
}

func (s *AccessService) CheckInstanceAccess(ctx context.Context, userID, projectID, instanceID int64) pdp_model.Decision {
	return s.checkCached(ctx, userID, projectID, model.LevelInstance, instanceID, func() pdp_model.Decision {
		return s.evaluator.EvaluateInstanceAccess(ctx, userID, projectID, instanceID)
	})
}

// UID-keyed evaluation is not cached: UIDs get resolved to internal ids
// inside the evaluator, and the id-keyed cache would need that resolution
// anyway.

func (s *AccessService) EvaluateStudyUID(ctx context.Context, userID, projectID int64, studyUID string) pdp_model.Decision {
	decision := s.evaluator.EvaluateStudyUID(ctx, userID, projectID, studyUID)
	s.publishDecision(ctx, userID, projectID, string(model.LevelStudy), studyUID, decision)
	return decision
}

func (s *AccessService) EvaluateSeriesUID(ctx context.Context, userID, projectID int64, seriesUID string) pdp_model.Decision {
	decision := s.evaluator.EvaluateSeriesUID(ctx, userID, projectID, seriesUID)
	s.publishDecision(ctx, userID, projectID, string(model.LevelSeries), seriesUID, decision)
	return decision
}

func (s *AccessService) EvaluateInstanceUID(ctx context.Context, userID, projectID int64, instanceUID string) pdp_model.Decision {
	decision := s.evaluator.EvaluateInstanceUID(ctx, userID, projectID, instanceUID)
	s.publishDecision(ctx, userID, projectID, string(model.LevelInstance), instanceUID, decision)
	return decision
}

func (s *AccessService) checkCached(ctx context.Context, userID, projectID int64, level model.ResourceLevel, resourceID int64, evaluate func() pdp_model.Decision) pdp_model.Decision {
	if cached, err := db.GetCachedDecision(ctx, userID, projectID, level, resourceID); err == nil && cached != nil {
		logger.Debug("Decision cache hit",
			zap.Int64("userID", userID),
			zap.String("level", string(level)),
			zap.Int64("resourceID", resourceID))
		return *cached
	}

	decision := evaluate()

	if err := db.CacheDecision(ctx, userID, projectID, level, resourceID, decision); err != nil {
		logger.Warn("Failed to cache decision", zap.Error(err))
	}

	s.eventBus.Publish(ctx, "access.decision", audit.AccessLog{
		Timestamp:     time.Now(),
		UserID:        userID,
		ProjectID:     projectID,
		Action:        "CHECK_ACCESS",
		ResourceLevel: string(level),
		ResourceID:    resourceID,
		AccessGranted: decision.Allowed,
		Reason:        decision.Reason,
	})

	return decision
}

func (s *AccessService) publishDecision(ctx context.Context, userID, projectID int64, level, resourceUID string, decision pdp_model.Decision) {
	s.eventBus.Publish(ctx, "access.decision", audit.AccessLog{
		Timestamp:     time.Now(),
		UserID:        userID,
		ProjectID:     projectID,
		Action:        "CHECK_ACCESS",
		ResourceLevel: level,
		ResourceUID:   resourceUID,
		AccessGranted: decision.Allowed,
		Reason:        decision.Reason,
	})
}

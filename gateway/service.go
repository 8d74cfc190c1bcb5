// api/gateway/service.go
package gateway

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
	pdp_model "github.com/medicube/radgate/api/pdp/model"
)

// filterConcurrency caps the number of in-flight decision checks per request.
const filterConcurrency = 8

// QidoAPI is the upstream archive query surface.
type QidoAPI interface {
	Studies(ctx context.Context, params []Param) ([]map[string]interface{}, error)
	Series(ctx context.Context, studyUID string, params []Param) ([]map[string]interface{}, error)
	Instances(ctx context.Context, studyUID, seriesUID string, params []Param) ([]map[string]interface{}, error)
}

// UIDEvaluator decides access for a resource identified by its UID.
type UIDEvaluator interface {
	EvaluateStudyUID(ctx context.Context, userID, projectID int64, studyUID string) pdp_model.Decision
	EvaluateSeriesUID(ctx context.Context, userID, projectID int64, seriesUID string) pdp_model.Decision
	EvaluateInstanceUID(ctx context.Context, userID, projectID int64, instanceUID string) pdp_model.Decision
}

// ConditionSource supplies project conditions for query pushdown.
type ConditionSource interface {
	ProjectConditions(ctx context.Context, projectID int64) ([]model.AccessCondition, error)
}

// Service is the query-filtering gateway: it forwards a QIDO query upstream
// (narrowed by pushdown parameters where possible) and strips every item the
// user may not see before the response leaves the building.
type Service struct {
	qido       QidoAPI
	evaluator  UIDEvaluator
	conditions ConditionSource
}

func NewService(qido QidoAPI, evaluator UIDEvaluator, conditions ConditionSource) *Service {
	return &Service{
		qido:       qido,
		evaluator:  evaluator,
		conditions: conditions,
	}
}

// FilterStudies queries studies upstream and returns only those the user is
// allowed to access, in upstream order. An upstream failure fails the whole
// request rather than returning a partially filtered list.
func (s *Service) FilterStudies(ctx context.Context, userID, projectID int64, userParams []Param) ([]map[string]interface{}, error) {
	params := MergeParams(s.pushdownParams(ctx, projectID), userParams)

	items, err := s.qido.Studies(ctx, params)
	if err != nil {
		return nil, err
	}

	return s.filter(ctx, items, ExtractStudyUID, func(ctx context.Context, uid string) pdp_model.Decision {
		return s.evaluator.EvaluateStudyUID(ctx, userID, projectID, uid)
	})
}

// FilterSeries queries the series of a study. The study UID comes from the
// request path; each series is still checked individually.
func (s *Service) FilterSeries(ctx context.Context, userID, projectID int64, studyUID string, userParams []Param) ([]map[string]interface{}, error) {
	items, err := s.qido.Series(ctx, studyUID, MergeParams(nil, userParams))
	if err != nil {
		return nil, err
	}

	return s.filter(ctx, items, ExtractSeriesUID, func(ctx context.Context, uid string) pdp_model.Decision {
		return s.evaluator.EvaluateSeriesUID(ctx, userID, projectID, uid)
	})
}

// FilterInstances queries the instances of a series.
func (s *Service) FilterInstances(ctx context.Context, userID, projectID int64, studyUID, seriesUID string, userParams []Param) ([]map[string]interface{}, error) {
	items, err := s.qido.Instances(ctx, studyUID, seriesUID, MergeParams(nil, userParams))
	if err != nil {
		return nil, err
	}

	return s.filter(ctx, items, ExtractInstanceUID, func(ctx context.Context, uid string) pdp_model.Decision {
		return s.evaluator.EvaluateInstanceUID(ctx, userID, projectID, uid)
	})
}

// pushdownParams is best-effort: if conditions cannot be loaded the query
// simply goes upstream unnarrowed and the per-item check does all the work.
func (s *Service) pushdownParams(ctx context.Context, projectID int64) []Param {
	conditions, err := s.conditions.ProjectConditions(ctx, projectID)
	if err != nil {
		logger.Warn("Failed to load conditions for pushdown, querying unnarrowed",
			zap.Int64("projectID", projectID), zap.Error(err))
		return nil
	}
	return BuildPushdownParams(conditions)
}

// filter checks every item concurrently and keeps upstream order. Items
// without an extractable UID are dropped.
func (s *Service) filter(
	ctx context.Context,
	items []map[string]interface{},
	extractUID func(map[string]interface{}) string,
	decide func(context.Context, string) pdp_model.Decision,
) ([]map[string]interface{}, error) {
	start := time.Now()
	allowed := make([]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(filterConcurrency)
	for i, item := range items {
		uid := extractUID(item)
		if uid == "" {
			continue
		}
		i := i
		g.Go(func() error {
			decision := decide(gctx, uid)
			allowed[i] = decision.Allowed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		if allowed[i] {
			filtered = append(filtered, item)
		}
	}

	logger.Debug("Filtered gateway response",
		zap.Int("upstream", len(items)),
		zap.Int("allowed", len(filtered)),
		zap.Duration("duration", time.Since(start)))
	return filtered, nil
}

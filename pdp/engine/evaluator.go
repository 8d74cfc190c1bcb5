package engine

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
	pdp_model "github.com/medicube/radgate/api/pdp/model"
)

// The evaluator consumes narrow read interfaces so each collaborator can be
// faked independently in tests. Every lookup failure is treated as "check
// returned false/none": the engine never fails open and never returns an
// error from a public entry point.

type MembershipStore interface {
	IsProjectMember(ctx context.Context, userID, projectID int64) (bool, error)
	UserRoleInProject(ctx context.Context, userID, projectID int64) (*int64, error)
}

type InstitutionStore interface {
	UserInstitution(ctx context.Context, userID int64) (*int64, error)
	DataInstitution(ctx context.Context, studyID int64) (*int64, error)
	CrossAccessActive(ctx context.Context, userInstitutionID, dataInstitutionID int64) (bool, error)
}

type GrantStore interface {
	HasApprovedAccess(ctx context.Context, userID, projectID int64, level model.ResourceLevel, resourceID int64) (bool, error)
}

type HierarchyStore interface {
	StudyAttributes(ctx context.Context, studyID int64) (model.ResourceAttributes, error)
	ParentStudyID(ctx context.Context, seriesID int64) (*int64, error)
	ParentSeriesID(ctx context.Context, instanceID int64) (*int64, error)
	StudyIDForUID(ctx context.Context, projectID int64, studyUID string) (*int64, error)
	SeriesIDForUID(ctx context.Context, projectID int64, seriesUID string) (*int64, error)
	InstanceIDForUID(ctx context.Context, projectID int64, instanceUID string) (*int64, error)
}

type ConditionStore interface {
	ProjectConditions(ctx context.Context, projectID int64) ([]model.AccessCondition, error)
	RoleConditions(ctx context.Context, roleID int64) ([]model.AccessCondition, error)
}

// Evaluator decides whether a user may view a Study, Series or Instance
// inside a project. Each evaluation runs an ordered pipeline that
// short-circuits on the first definitive answer.
type Evaluator struct {
	members      MembershipStore
	institutions InstitutionStore
	grants       GrantStore
	hierarchy    HierarchyStore
	conditions   ConditionStore
}

func NewEvaluator(
	members MembershipStore,
	institutions InstitutionStore,
	grants GrantStore,
	hierarchy HierarchyStore,
	conditions ConditionStore,
) *Evaluator {
	return &Evaluator{
		members:      members,
		institutions: institutions,
		grants:       grants,
		hierarchy:    hierarchy,
		conditions:   conditions,
	}
}

// EvaluateStudyAccess runs membership, institution, explicit-grant and rule
// checks for a study, in that order.
func (e *Evaluator) EvaluateStudyAccess(ctx context.Context, userID, projectID, studyID int64) pdp_model.Decision {
	if !e.isMember(ctx, userID, projectID) {
		return pdp_model.Deny(pdp_model.ReasonNotProjectMember)
	}

	userInst := e.lookupID(e.institutions.UserInstitution(ctx, userID))
	dataInst := e.lookupID(e.institutions.DataInstitution(ctx, studyID))
	if userInst != nil && dataInst != nil {
		if *userInst == *dataInst {
			return pdp_model.Allow(pdp_model.ReasonSameInstitution)
		}
		if e.lookupBool(e.institutions.CrossAccessActive(ctx, *userInst, *dataInst)) {
			return pdp_model.Allow(pdp_model.ReasonInstitutionCrossAccess)
		}
	}

	if e.lookupBool(e.grants.HasApprovedAccess(ctx, userID, projectID, model.LevelStudy, studyID)) {
		return pdp_model.Allow(pdp_model.ExplicitAccessReason(model.LevelStudy))
	}

	attrs := e.studyAttributes(ctx, studyID)
	return e.evaluateRules(ctx, userID, projectID, attrs, model.LevelStudy)
}

// EvaluateSeriesAccess inherits from the parent study: a study-level allow
// carries down, a study-level deny falls through to series-scoped rules.
func (e *Evaluator) EvaluateSeriesAccess(ctx context.Context, userID, projectID, seriesID int64) pdp_model.Decision {
	if !e.isMember(ctx, userID, projectID) {
		return pdp_model.Deny(pdp_model.ReasonNotProjectMember)
	}

	if e.lookupBool(e.grants.HasApprovedAccess(ctx, userID, projectID, model.LevelSeries, seriesID)) {
		return pdp_model.Allow(pdp_model.ExplicitAccessReason(model.LevelSeries))
	}

	studyID := e.lookupID(e.hierarchy.ParentStudyID(ctx, seriesID))
	if studyID == nil {
		return pdp_model.Deny(pdp_model.ReasonSeriesParentStudyNotFound)
	}

	if parent := e.EvaluateStudyAccess(ctx, userID, projectID, *studyID); parent.Allowed {
		return pdp_model.Allow(pdp_model.ReasonInheritedFromStudy)
	}

	// Series rules match on study-derived attributes but are filtered for
	// conditions declared at the series level.
	attrs := e.studyAttributes(ctx, *studyID)
	return e.evaluateRules(ctx, userID, projectID, attrs, model.LevelSeries)
}

// EvaluateInstanceAccess recurses through the series evaluation, which in
// turn recurses into the study. Depth is fixed by the hierarchy.
func (e *Evaluator) EvaluateInstanceAccess(ctx context.Context, userID, projectID, instanceID int64) pdp_model.Decision {
	if !e.isMember(ctx, userID, projectID) {
		return pdp_model.Deny(pdp_model.ReasonNotProjectMember)
	}

	if e.lookupBool(e.grants.HasApprovedAccess(ctx, userID, projectID, model.LevelInstance, instanceID)) {
		return pdp_model.Allow(pdp_model.ExplicitAccessReason(model.LevelInstance))
	}

	seriesID := e.lookupID(e.hierarchy.ParentSeriesID(ctx, instanceID))
	if seriesID == nil {
		return pdp_model.Deny(pdp_model.ReasonInstanceParentStudyNotFound)
	}

	if parent := e.EvaluateSeriesAccess(ctx, userID, projectID, *seriesID); parent.Allowed {
		return pdp_model.Allow(pdp_model.ReasonInheritedFromSeries)
	}

	studyID := e.lookupID(e.hierarchy.ParentStudyID(ctx, *seriesID))
	if studyID == nil {
		return pdp_model.Deny(pdp_model.ReasonInstanceParentStudyNotFound)
	}

	attrs := e.studyAttributes(ctx, *studyID)
	return e.evaluateRules(ctx, userID, projectID, attrs, model.LevelInstance)
}

// UID-keyed variants resolve the identifying UID to an internal id within
// the project before delegating. An unknown UID is a not-found decision.

func (e *Evaluator) EvaluateStudyUID(ctx context.Context, userID, projectID int64, studyUID string) pdp_model.Decision {
	id := e.lookupID(e.hierarchy.StudyIDForUID(ctx, projectID, studyUID))
	if id == nil {
		return pdp_model.Deny(pdp_model.ReasonStudyNotFound)
	}
	return e.EvaluateStudyAccess(ctx, userID, projectID, *id)
}

func (e *Evaluator) EvaluateSeriesUID(ctx context.Context, userID, projectID int64, seriesUID string) pdp_model.Decision {
	id := e.lookupID(e.hierarchy.SeriesIDForUID(ctx, projectID, seriesUID))
	if id == nil {
		return pdp_model.Deny(pdp_model.ReasonSeriesNotFound)
	}
	return e.EvaluateSeriesAccess(ctx, userID, projectID, *id)
}

func (e *Evaluator) EvaluateInstanceUID(ctx context.Context, userID, projectID int64, instanceUID string) pdp_model.Decision {
	id := e.lookupID(e.hierarchy.InstanceIDForUID(ctx, projectID, instanceUID))
	if id == nil {
		return pdp_model.Deny(pdp_model.ReasonInstanceNotFound)
	}
	return e.EvaluateInstanceAccess(ctx, userID, projectID, *id)
}

// evaluateRules runs the two-pass condition scan: project-scoped conditions
// first, then the conditions of the user's role in the project. Each pass
// stops at the first matching condition. Conditions arrive ordered by
// (priority DESC, id ASC) from the condition store.
func (e *Evaluator) evaluateRules(ctx context.Context, userID, projectID int64, attrs model.ResourceAttributes, level model.ResourceLevel) pdp_model.Decision {
	projectConds, err := e.conditions.ProjectConditions(ctx, projectID)
	if err != nil {
		logger.Warn("Failed to load project conditions, skipping pass",
			zap.Int64("projectID", projectID), zap.Error(err))
		projectConds = nil
	}
	if decision, matched := scanConditions(projectConds, attrs, level, pdp_model.ScopeProject); matched {
		return decision
	}

	roleID := e.lookupID(e.members.UserRoleInProject(ctx, userID, projectID))
	if roleID != nil {
		roleConds, err := e.conditions.RoleConditions(ctx, *roleID)
		if err != nil {
			logger.Warn("Failed to load role conditions, skipping pass",
				zap.Int64("roleID", *roleID), zap.Error(err))
			roleConds = nil
		}
		if decision, matched := scanConditions(roleConds, attrs, level, pdp_model.ScopeRole); matched {
			return decision
		}
	}

	return pdp_model.Deny(pdp_model.ReasonNoMatchingRule)
}

// scanConditions is a linear scan that stops at the first condition which
// both targets the evaluated level and matches the attributes. Malformed
// conditions evaluate to non-matches and never abort the scan.
func scanConditions(conds []model.AccessCondition, attrs model.ResourceAttributes, level model.ResourceLevel, scope string) (pdp_model.Decision, bool) {
	for _, cond := range conds {
		if cond.ResourceLevel != level {
			continue
		}
		if !EvaluateCondition(cond, attrs) {
			continue
		}
		return decideMatch(cond, scope), true
	}
	return pdp_model.Decision{}, false
}

// decideMatch is the single decision point for a matched condition. Limit
// currently grants full access with its own reason code; field-level
// narrowing would hook in here.
func decideMatch(cond model.AccessCondition, scope string) pdp_model.Decision {
	switch cond.ConditionType {
	case model.ConditionAllow:
		return pdp_model.Allow(pdp_model.RuleAllowReason(scope, cond.ID))
	case model.ConditionDeny:
		return pdp_model.Deny(pdp_model.RuleDenyReason(scope, cond.ID))
	case model.ConditionLimit:
		return pdp_model.Allow(pdp_model.RuleLimitReason(scope, cond.ID))
	}
	return pdp_model.Deny(pdp_model.ReasonNoMatchingRule)
}

func (e *Evaluator) isMember(ctx context.Context, userID, projectID int64) bool {
	member, err := e.members.IsProjectMember(ctx, userID, projectID)
	if err != nil {
		logger.Warn("Membership lookup failed, denying",
			zap.Int64("userID", userID), zap.Int64("projectID", projectID), zap.Error(err))
		return false
	}
	return member
}

func (e *Evaluator) studyAttributes(ctx context.Context, studyID int64) model.ResourceAttributes {
	attrs, err := e.hierarchy.StudyAttributes(ctx, studyID)
	if err != nil {
		logger.Warn("Study attribute lookup failed, evaluating with empty attributes",
			zap.Int64("studyID", studyID), zap.Error(err))
		return model.ResourceAttributes{}
	}
	return attrs
}

// lookupID and lookupBool fold collaborator failures into absent results.
func (e *Evaluator) lookupID(id *int64, err error) *int64 {
	if err != nil {
		logger.Warn("Lookup failed, treating as not found", zap.Error(err))
		return nil
	}
	return id
}

func (e *Evaluator) lookupBool(value bool, err error) bool {
	if err != nil {
		logger.Warn("Lookup failed, treating as false", zap.Error(err))
		return false
	}
	return value
}

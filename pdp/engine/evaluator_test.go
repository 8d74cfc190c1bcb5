package engine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medicube/radgate/api/model"
	"github.com/medicube/radgate/api/pdp/engine"
	pdp_model "github.com/medicube/radgate/api/pdp/model"
)

// fakeStore implements every store interface of the evaluator from plain
// maps. A nil map simply answers "not found".
type fakeStore struct {
	members      map[int64]bool
	roles        map[int64]int64
	userInst     map[int64]int64
	dataInst     map[int64]int64
	crossAccess  map[[2]int64]bool
	grants       map[string]bool
	parentStudy  map[int64]int64
	parentSeries map[int64]int64
	attrs        map[int64]model.ResourceAttributes
	studyUIDs    map[string]int64
	seriesUIDs   map[string]int64
	instanceUIDs map[string]int64
	projConds    map[int64][]model.AccessCondition
	roleConds    map[int64][]model.AccessCondition

	memberErr error
	grantErr  error
}

func grantKey(userID, projectID int64, level model.ResourceLevel, resourceID int64) string {
	return fmt.Sprintf("%s:%d:%d:%d", level, userID, projectID, resourceID)
}

func (f *fakeStore) IsProjectMember(ctx context.Context, userID, projectID int64) (bool, error) {
	if f.memberErr != nil {
		return false, f.memberErr
	}
	return f.members[userID], nil
}

func (f *fakeStore) UserRoleInProject(ctx context.Context, userID, projectID int64) (*int64, error) {
	roleID, ok := f.roles[userID]
	if !ok {
		return nil, nil
	}
	return &roleID, nil
}

func (f *fakeStore) UserInstitution(ctx context.Context, userID int64) (*int64, error) {
	id, ok := f.userInst[userID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeStore) DataInstitution(ctx context.Context, studyID int64) (*int64, error) {
	id, ok := f.dataInst[studyID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeStore) CrossAccessActive(ctx context.Context, userInstitutionID, dataInstitutionID int64) (bool, error) {
	return f.crossAccess[[2]int64{userInstitutionID, dataInstitutionID}], nil
}

func (f *fakeStore) HasApprovedAccess(ctx context.Context, userID, projectID int64, level model.ResourceLevel, resourceID int64) (bool, error) {
	if f.grantErr != nil {
		return false, f.grantErr
	}
	return f.grants[grantKey(userID, projectID, level, resourceID)], nil
}

func (f *fakeStore) StudyAttributes(ctx context.Context, studyID int64) (model.ResourceAttributes, error) {
	return f.attrs[studyID], nil
}

func (f *fakeStore) ParentStudyID(ctx context.Context, seriesID int64) (*int64, error) {
	id, ok := f.parentStudy[seriesID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeStore) ParentSeriesID(ctx context.Context, instanceID int64) (*int64, error) {
	id, ok := f.parentSeries[instanceID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeStore) StudyIDForUID(ctx context.Context, projectID int64, studyUID string) (*int64, error) {
	id, ok := f.studyUIDs[studyUID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeStore) SeriesIDForUID(ctx context.Context, projectID int64, seriesUID string) (*int64, error) {
	id, ok := f.seriesUIDs[seriesUID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeStore) InstanceIDForUID(ctx context.Context, projectID int64, instanceUID string) (*int64, error) {
	id, ok := f.instanceUIDs[instanceUID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeStore) ProjectConditions(ctx context.Context, projectID int64) ([]model.AccessCondition, error) {
	return f.projConds[projectID], nil
}

func (f *fakeStore) RoleConditions(ctx context.Context, roleID int64) ([]model.AccessCondition, error) {
	return f.roleConds[roleID], nil
}

func newEvaluator(store *fakeStore) *engine.Evaluator {
	return engine.NewEvaluator(store, store, store, store, store)
}

const (
	userID    = int64(1)
	projectID = int64(10)
	studyID   = int64(100)
)

func memberStore() *fakeStore {
	return &fakeStore{
		members: map[int64]bool{userID: true},
		attrs: map[int64]model.ResourceAttributes{
			studyID: {Modality: strPtr("CT"), StudyDate: strPtr("20240115"), PatientID: strPtr("P-1")},
		},
	}
}

func allowCondition(id int64, level model.ResourceLevel, tag, value string, op model.Operator) model.AccessCondition {
	c := condition(tag, value, op)
	c.ID = id
	c.ResourceLevel = level
	return c
}

func denyCondition(id int64, level model.ResourceLevel, tag, value string, op model.Operator) model.AccessCondition {
	c := allowCondition(id, level, tag, value, op)
	c.ConditionType = model.ConditionDeny
	return c
}

func TestStudyAccessNonMemberDenied(t *testing.T) {
	store := memberStore()
	store.members = nil

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonNotProjectMember, decision.Reason)
}

func TestStudyAccessSameInstitution(t *testing.T) {
	store := memberStore()
	store.userInst = map[int64]int64{userID: 5}
	store.dataInst = map[int64]int64{studyID: 5}
	// A same-institution allow wins before grants and rules are consulted.
	store.projConds = map[int64][]model.AccessCondition{
		projectID: {denyCondition(1, model.LevelStudy, "00080060", "CT", model.OperatorEQ)},
	}

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonSameInstitution, decision.Reason)
}

func TestStudyAccessCrossInstitution(t *testing.T) {
	store := memberStore()
	store.userInst = map[int64]int64{userID: 5}
	store.dataInst = map[int64]int64{studyID: 6}
	store.crossAccess = map[[2]int64]bool{{5, 6}: true}

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonInstitutionCrossAccess, decision.Reason)
}

func TestStudyAccessExplicitGrant(t *testing.T) {
	store := memberStore()
	store.grants = map[string]bool{grantKey(userID, projectID, model.LevelStudy, studyID): true}

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "explicit_study_access", decision.Reason)
}

func TestStudyAccessProjectRuleFirstMatchWins(t *testing.T) {
	store := memberStore()
	// The store returns conditions pre-ordered by priority; the first match
	// must decide even when a later condition would contradict it.
	store.projConds = map[int64][]model.AccessCondition{
		projectID: {
			denyCondition(7, model.LevelStudy, "00080060", "CT", model.OperatorEQ),
			allowCondition(8, model.LevelStudy, "00080060", "CT", model.OperatorEQ),
		},
	}

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "rule_based_deny: project_condition_7", decision.Reason)
}

func TestStudyAccessRoleRuleAfterProjectPass(t *testing.T) {
	store := memberStore()
	store.roles = map[int64]int64{userID: 3}
	store.projConds = map[int64][]model.AccessCondition{
		projectID: {allowCondition(1, model.LevelStudy, "00080060", "MR", model.OperatorEQ)},
	}
	store.roleConds = map[int64][]model.AccessCondition{
		3: {allowCondition(2, model.LevelStudy, "00100020", "P-1", model.OperatorEQ)},
	}

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "rule_based_allow: role_condition_2", decision.Reason)
}

func TestStudyAccessLimitGrantsAccess(t *testing.T) {
	store := memberStore()
	limit := allowCondition(4, model.LevelStudy, "00080060", "CT", model.OperatorEQ)
	limit.ConditionType = model.ConditionLimit
	store.projConds = map[int64][]model.AccessCondition{projectID: {limit}}

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "rule_based_limit: project_condition_4", decision.Reason)
}

func TestStudyAccessNoMatchingRule(t *testing.T) {
	store := memberStore()

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonNoMatchingRule, decision.Reason)
}

func TestStudyAccessMalformedConditionSkipped(t *testing.T) {
	store := memberStore()
	malformed := allowCondition(1, model.LevelStudy, "00080020", "20240101", model.OperatorRange)
	valid := allowCondition(2, model.LevelStudy, "00080060", "CT", model.OperatorEQ)
	store.projConds = map[int64][]model.AccessCondition{projectID: {malformed, valid}}

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "rule_based_allow: project_condition_2", decision.Reason)
}

func TestStudyAccessMembershipErrorFailsClosed(t *testing.T) {
	store := memberStore()
	store.memberErr = errors.New("connection refused")

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonNotProjectMember, decision.Reason)
}

func TestStudyAccessGrantErrorFailsClosed(t *testing.T) {
	store := memberStore()
	store.grantErr = errors.New("connection refused")
	store.grants = map[string]bool{grantKey(userID, projectID, model.LevelStudy, studyID): true}

	decision := newEvaluator(store).EvaluateStudyAccess(context.Background(), userID, projectID, studyID)
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonNoMatchingRule, decision.Reason)
}

func TestSeriesAccessInheritsStudyAllow(t *testing.T) {
	seriesID := int64(200)
	store := memberStore()
	store.parentStudy = map[int64]int64{seriesID: studyID}
	store.userInst = map[int64]int64{userID: 5}
	store.dataInst = map[int64]int64{studyID: 5}

	decision := newEvaluator(store).EvaluateSeriesAccess(context.Background(), userID, projectID, seriesID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonInheritedFromStudy, decision.Reason)
}

func TestSeriesAccessParentMissing(t *testing.T) {
	store := memberStore()

	decision := newEvaluator(store).EvaluateSeriesAccess(context.Background(), userID, projectID, 200)
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonSeriesParentStudyNotFound, decision.Reason)
}

func TestSeriesAccessStudyDenyFallsThroughToSeriesRules(t *testing.T) {
	seriesID := int64(200)
	store := memberStore()
	store.parentStudy = map[int64]int64{seriesID: studyID}
	store.projConds = map[int64][]model.AccessCondition{
		projectID: {
			allowCondition(9, model.LevelSeries, "00080060", "CT", model.OperatorEQ),
		},
	}

	decision := newEvaluator(store).EvaluateSeriesAccess(context.Background(), userID, projectID, seriesID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "rule_based_allow: project_condition_9", decision.Reason)
}

func TestSeriesAccessExplicitGrant(t *testing.T) {
	seriesID := int64(200)
	store := memberStore()
	store.grants = map[string]bool{grantKey(userID, projectID, model.LevelSeries, seriesID): true}

	decision := newEvaluator(store).EvaluateSeriesAccess(context.Background(), userID, projectID, seriesID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "explicit_series_access", decision.Reason)
}

func TestInstanceAccessInheritsSeries(t *testing.T) {
	seriesID, instanceID := int64(200), int64(300)
	store := memberStore()
	store.parentSeries = map[int64]int64{instanceID: seriesID}
	store.parentStudy = map[int64]int64{seriesID: studyID}
	store.userInst = map[int64]int64{userID: 5}
	store.dataInst = map[int64]int64{studyID: 5}

	decision := newEvaluator(store).EvaluateInstanceAccess(context.Background(), userID, projectID, instanceID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonInheritedFromSeries, decision.Reason)
}

func TestInstanceAccessParentMissing(t *testing.T) {
	store := memberStore()

	decision := newEvaluator(store).EvaluateInstanceAccess(context.Background(), userID, projectID, 300)
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonInstanceParentStudyNotFound, decision.Reason)
}

func TestInstanceAccessInstanceLevelRule(t *testing.T) {
	seriesID, instanceID := int64(200), int64(300)
	store := memberStore()
	store.parentSeries = map[int64]int64{instanceID: seriesID}
	store.parentStudy = map[int64]int64{seriesID: studyID}
	store.projConds = map[int64][]model.AccessCondition{
		projectID: {
			allowCondition(11, model.LevelInstance, "00100020", "P-1", model.OperatorEQ),
		},
	}

	decision := newEvaluator(store).EvaluateInstanceAccess(context.Background(), userID, projectID, instanceID)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "rule_based_allow: project_condition_11", decision.Reason)
}

func TestEvaluateStudyUIDUnknown(t *testing.T) {
	store := memberStore()

	decision := newEvaluator(store).EvaluateStudyUID(context.Background(), userID, projectID, "1.2.3.4")
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonStudyNotFound, decision.Reason)
}

func TestEvaluateStudyUIDResolves(t *testing.T) {
	store := memberStore()
	store.studyUIDs = map[string]int64{"1.2.3.4": studyID}
	store.userInst = map[int64]int64{userID: 5}
	store.dataInst = map[int64]int64{studyID: 5}

	decision := newEvaluator(store).EvaluateStudyUID(context.Background(), userID, projectID, "1.2.3.4")
	assert.True(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonSameInstitution, decision.Reason)
}

func TestEvaluateSeriesAndInstanceUIDUnknown(t *testing.T) {
	store := memberStore()
	evaluator := newEvaluator(store)

	decision := evaluator.EvaluateSeriesUID(context.Background(), userID, projectID, "1.2.3.5")
	assert.Equal(t, pdp_model.ReasonSeriesNotFound, decision.Reason)

	decision = evaluator.EvaluateInstanceUID(context.Background(), userID, projectID, "1.2.3.6")
	assert.Equal(t, pdp_model.ReasonInstanceNotFound, decision.Reason)
}

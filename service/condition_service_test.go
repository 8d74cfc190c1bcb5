// api/service/condition_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	radgate_errors "github.com/medicube/radgate/api/errors"
	"github.com/medicube/radgate/api/model"
	"github.com/medicube/radgate/api/util"
)

type fakeConditionStore struct {
	condition  *model.AccessCondition
	projectIDs []int64
	projectErr error

	deleted    []int64
	associated []int64
}

func (f *fakeConditionStore) CreateCondition(ctx context.Context, condition model.AccessCondition) (int64, error) {
	return 1, nil
}

func (f *fakeConditionStore) GetCondition(ctx context.Context, conditionID int64) (*model.AccessCondition, error) {
	if f.condition == nil {
		return nil, radgate_errors.ErrConditionNotFound
	}
	return f.condition, nil
}

func (f *fakeConditionStore) ListConditions(ctx context.Context, limit, offset int) ([]model.AccessCondition, error) {
	return nil, nil
}

func (f *fakeConditionStore) DeleteCondition(ctx context.Context, conditionID int64) error {
	f.deleted = append(f.deleted, conditionID)
	return nil
}

func (f *fakeConditionStore) ProjectIDsForCondition(ctx context.Context, conditionID int64) ([]int64, error) {
	return f.projectIDs, f.projectErr
}

func (f *fakeConditionStore) AssociateWithProject(ctx context.Context, conditionID, projectID int64, priority int) error {
	f.associated = append(f.associated, projectID)
	return nil
}

func (f *fakeConditionStore) AssociateWithRole(ctx context.Context, conditionID, roleID int64, priority int) error {
	return nil
}

func newTestConditionService(store conditionStore) (*ConditionService, *[]int64) {
	svc := NewConditionService(store, util.NewNotificationService(), util.NewEventBus())
	dropped := &[]int64{}
	svc.dropCachedConditions = func(ctx context.Context, projectID int64) error {
		*dropped = append(*dropped, projectID)
		return nil
	}
	return svc, dropped
}

func TestDeleteConditionInvalidatesProjectCaches(t *testing.T) {
	store := &fakeConditionStore{
		condition:  &model.AccessCondition{ID: 7, ConditionType: model.ConditionAllow},
		projectIDs: []int64{10, 20},
	}
	svc, dropped := newTestConditionService(store)

	err := svc.DeleteCondition(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, []int64{7}, store.deleted)
	assert.Equal(t, []int64{10, 20}, *dropped)
}

func TestDeleteConditionNotFoundSkipsInvalidation(t *testing.T) {
	store := &fakeConditionStore{}
	svc, dropped := newTestConditionService(store)

	err := svc.DeleteCondition(context.Background(), 99)

	assert.ErrorIs(t, err, radgate_errors.ErrConditionNotFound)
	assert.Empty(t, store.deleted)
	assert.Empty(t, *dropped)
}

func TestDeleteConditionSurvivesProjectListingFailure(t *testing.T) {
	store := &fakeConditionStore{
		condition:  &model.AccessCondition{ID: 7},
		projectErr: radgate_errors.ErrDatabaseOperation,
	}
	svc, dropped := newTestConditionService(store)

	err := svc.DeleteCondition(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, []int64{7}, store.deleted)
	assert.Empty(t, *dropped)
}

func TestAssignToProjectInvalidatesProjectCache(t *testing.T) {
	store := &fakeConditionStore{}
	svc, dropped := newTestConditionService(store)

	err := svc.AssignToProject(context.Background(), 7, 10, 5)

	assert.NoError(t, err)
	assert.Equal(t, []int64{10}, store.associated)
	assert.Equal(t, []int64{10}, *dropped)
}

// api/service/access_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"

	"github.com/medicube/radgate/api/audit"
	pdp_model "github.com/medicube/radgate/api/pdp/model"
	"github.com/medicube/radgate/api/test/mock"
	"github.com/medicube/radgate/api/util"
)

type recordedDenial struct {
	userID, projectID int64
	reason            string
}

type recordingNotifier struct {
	denials []recordedDenial
}

func (r *recordingNotifier) NotifyDeniedAccess(ctx context.Context, userID, projectID int64, reason string) error {
	r.denials = append(r.denials, recordedDenial{userID: userID, projectID: projectID, reason: reason})
	return nil
}

func newTestAccessService() (*AccessService, *mock.MockAuditService, *recordingNotifier) {
	auditService := new(mock.MockAuditService)
	notifier := &recordingNotifier{}
	svc := NewAccessService(nil, util.NewEventBus(), auditService, notifier)
	return svc, auditService, notifier
}

func TestHandleDecisionEventNotifiesOnDenial(t *testing.T) {
	svc, auditService, notifier := newTestAccessService()
	auditService.On("LogAccess", testify_mock.Anything, testify_mock.AnythingOfType("audit.AccessLog")).Return(nil)

	err := svc.handleDecisionEvent(context.Background(), util.Event{
		Type: "access.decision",
		Payload: audit.AccessLog{
			UserID:        1,
			ProjectID:     10,
			AccessGranted: false,
			Reason:        pdp_model.ReasonNoMatchingRule,
		},
	})

	assert.NoError(t, err)
	auditService.AssertExpectations(t)
	if assert.Len(t, notifier.denials, 1) {
		assert.Equal(t, int64(1), notifier.denials[0].userID)
		assert.Equal(t, int64(10), notifier.denials[0].projectID)
		assert.Equal(t, pdp_model.ReasonNoMatchingRule, notifier.denials[0].reason)
	}
}

func TestHandleDecisionEventAllowedSkipsNotification(t *testing.T) {
	svc, auditService, notifier := newTestAccessService()
	auditService.On("LogAccess", testify_mock.Anything, testify_mock.AnythingOfType("audit.AccessLog")).Return(nil)

	err := svc.handleDecisionEvent(context.Background(), util.Event{
		Type: "access.decision",
		Payload: audit.AccessLog{
			UserID:        1,
			ProjectID:     10,
			AccessGranted: true,
			Reason:        pdp_model.ReasonSameInstitution,
		},
	})

	assert.NoError(t, err)
	auditService.AssertExpectations(t)
	assert.Empty(t, notifier.denials)
}

func TestHandleDecisionEventIgnoresUnexpectedPayload(t *testing.T) {
	svc, auditService, notifier := newTestAccessService()

	err := svc.handleDecisionEvent(context.Background(), util.Event{
		Type:    "access.decision",
		Payload: "not an access log",
	})

	assert.NoError(t, err)
	auditService.AssertNotCalled(t, "LogAccess")
	assert.Empty(t, notifier.denials)
}

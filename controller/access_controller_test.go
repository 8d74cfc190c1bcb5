// api/controller/access_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/medicube/radgate/api/controller"
	pdp_model "github.com/medicube/radgate/api/pdp/model"
	mock_service "github.com/medicube/radgate/api/test/service_mock"
)

const testUserID = int64(42)

// setupRouter wires a router with an authenticated test user, standing in
// for the auth middleware.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", testUserID)
		c.Next()
	})
	return r
}

func TestAccessController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccessService := mock_service.NewMockIAccessService(ctrl)
	accessController := controller.NewAccessController(mockAccessService)
	router := setupRouter()
	api := router.Group("/")
	accessController.RegisterRoutes(api)

	t.Run("CheckStudyAccess_Allowed", func(t *testing.T) {
		mockAccessService.EXPECT().
			CheckStudyAccess(gomock.Any(), testUserID, int64(10), int64(100)).
			Return(pdp_model.Allow(pdp_model.ReasonSameInstitution))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/study/100?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decision pdp_model.Decision
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&decision))
		assert.True(t, decision.Allowed)
		assert.Equal(t, pdp_model.ReasonSameInstitution, decision.Reason)
	})

	t.Run("CheckStudyAccess_DeniedIsStill200", func(t *testing.T) {
		mockAccessService.EXPECT().
			CheckStudyAccess(gomock.Any(), testUserID, int64(10), int64(100)).
			Return(pdp_model.Deny(pdp_model.ReasonNoMatchingRule))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/study/100?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decision pdp_model.Decision
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&decision))
		assert.False(t, decision.Allowed)
	})

	t.Run("CheckStudyAccess_MissingProjectID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/study/100", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CheckStudyAccess_InvalidResourceID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/study/abc?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CheckSeriesAccess_Allowed", func(t *testing.T) {
		mockAccessService.EXPECT().
			CheckSeriesAccess(gomock.Any(), testUserID, int64(10), int64(200)).
			Return(pdp_model.Allow(pdp_model.ReasonInheritedFromStudy))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/series/200?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CheckInstanceAccess_Allowed", func(t *testing.T) {
		mockAccessService.EXPECT().
			CheckInstanceAccess(gomock.Any(), testUserID, int64(10), int64(300)).
			Return(pdp_model.Allow(pdp_model.ReasonInheritedFromSeries))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/instance/300?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CheckStudyUID_NotFound", func(t *testing.T) {
		mockAccessService.EXPECT().
			EvaluateStudyUID(gomock.Any(), testUserID, int64(10), "1.2.3").
			Return(pdp_model.Deny(pdp_model.ReasonStudyNotFound))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/study-uid/1.2.3?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decision pdp_model.Decision
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&decision))
		assert.Equal(t, pdp_model.ReasonStudyNotFound, decision.Reason)
	})

	t.Run("CheckSeriesUID_Allowed", func(t *testing.T) {
		mockAccessService.EXPECT().
			EvaluateSeriesUID(gomock.Any(), testUserID, int64(10), "1.2.3.1").
			Return(pdp_model.Allow(pdp_model.ReasonInheritedFromStudy))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/series-uid/1.2.3.1?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAccessControllerUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccessService := mock_service.NewMockIAccessService(ctrl)
	accessController := controller.NewAccessController(mockAccessService)

	gin.SetMode(gin.TestMode)
	router := gin.New() // no user injected
	api := router.Group("/")
	accessController.RegisterRoutes(api)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/access/study/100?project_id=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

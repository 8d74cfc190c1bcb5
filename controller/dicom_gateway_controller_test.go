// api/controller/dicom_gateway_controller_test.go
package controller_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/medicube/radgate/api/controller"
	"github.com/medicube/radgate/api/gateway"
	mock_service "github.com/medicube/radgate/api/test/service_mock"
)

func TestDicomGatewayController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGatewayService := mock_service.NewMockIGatewayService(ctrl)
	gatewayController := controller.NewDicomGatewayController(mockGatewayService)
	router := setupRouter()
	api := router.Group("/")
	gatewayController.RegisterRoutes(api)

	t.Run("QueryStudies_Filtered", func(t *testing.T) {
		items := []map[string]interface{}{
			{"0020000D": map[string]interface{}{"Value": []interface{}{"1.2.3"}}},
			{"0020000D": map[string]interface{}{"Value": []interface{}{"1.2.4"}}},
		}
		mockGatewayService.EXPECT().
			FilterStudies(gomock.Any(), testUserID, int64(10), gomock.Any()).
			Return(items, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dicom/studies?project_id=10&modality=CT", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got []map[string]interface{}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Len(t, got, 2)
	})

	t.Run("QueryStudies_ForwardsUserParams", func(t *testing.T) {
		mockGatewayService.EXPECT().
			FilterStudies(gomock.Any(), testUserID, int64(10),
				[]gateway.Param{
					{Key: gateway.TagModality, Value: "MR"},
					{Key: "limit", Value: "50"},
					{Key: "offset", Value: "0"},
				}).
			Return([]map[string]interface{}{}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dicom/studies?project_id=10&modality=MR", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("QueryStudies_MissingProjectID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dicom/studies", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("QueryStudies_InvalidStudyDate", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dicom/studies?project_id=10&study_date=2024-01-15", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("QueryStudies_UpstreamFailure", func(t *testing.T) {
		mockGatewayService.EXPECT().
			FilterStudies(gomock.Any(), testUserID, int64(10), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dicom/studies?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("QuerySeries_Filtered", func(t *testing.T) {
		items := []map[string]interface{}{
			{"0020000E": map[string]interface{}{"Value": []interface{}{"1.2.3.1"}}},
		}
		mockGatewayService.EXPECT().
			FilterSeries(gomock.Any(), testUserID, int64(10), "1.2.3", gomock.Any()).
			Return(items, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dicom/studies/1.2.3/series?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got []map[string]interface{}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Len(t, got, 1)
	})

	t.Run("QueryInstances_Filtered", func(t *testing.T) {
		mockGatewayService.EXPECT().
			FilterInstances(gomock.Any(), testUserID, int64(10), "1.2.3", "1.2.3.1", gomock.Any()).
			Return([]map[string]interface{}{}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dicom/studies/1.2.3/series/1.2.3.1/instances?project_id=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDicomGatewayControllerUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGatewayService := mock_service.NewMockIGatewayService(ctrl)
	gatewayController := controller.NewDicomGatewayController(mockGatewayService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/")
	gatewayController.RegisterRoutes(api)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dicom/studies?project_id=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

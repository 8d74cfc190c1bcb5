// api/controller/dicom_gateway_controller.go
package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	radgate_errors "github.com/medicube/radgate/api/errors"
	"github.com/medicube/radgate/api/gateway"
	"github.com/medicube/radgate/api/util"
)

// IGatewayService is the filtering surface the controller needs.
type IGatewayService interface {
	FilterStudies(ctx context.Context, userID, projectID int64, userParams []gateway.Param) ([]map[string]interface{}, error)
	FilterSeries(ctx context.Context, userID, projectID int64, studyUID string, userParams []gateway.Param) ([]map[string]interface{}, error)
	FilterInstances(ctx context.Context, userID, projectID int64, studyUID, seriesUID string, userParams []gateway.Param) ([]map[string]interface{}, error)
}

// DicomGatewayController fronts the QIDO archive. Responses contain only the
// items the authenticated user may access within the requested project.
type DicomGatewayController struct {
	gatewayService IGatewayService
}

func NewDicomGatewayController(gatewayService IGatewayService) *DicomGatewayController {
	return &DicomGatewayController{
		gatewayService: gatewayService,
	}
}

// RegisterRoutes registers the API routes
func (gc *DicomGatewayController) RegisterRoutes(r *gin.RouterGroup) {
	dicom := r.Group("/dicom")
	{
		dicom.GET("/studies", gc.QueryStudies)
		dicom.GET("/studies/:studyUID/series", gc.QuerySeries)
		dicom.GET("/studies/:studyUID/series/:seriesUID/instances", gc.QueryInstances)
	}
}

// QueryStudies endpoint
func (gc *DicomGatewayController) QueryStudies(c *gin.Context) {
	userID, projectID, params, ok := gc.requestContext(c)
	if !ok {
		return
	}

	items, err := gc.gatewayService.FilterStudies(c, userID, projectID, params)
	if err != nil {
		util.RespondWithError(c, http.StatusBadGateway, "Upstream archive query failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// QuerySeries endpoint
func (gc *DicomGatewayController) QuerySeries(c *gin.Context) {
	userID, projectID, params, ok := gc.requestContext(c)
	if !ok {
		return
	}

	items, err := gc.gatewayService.FilterSeries(c, userID, projectID, c.Param("studyUID"), params)
	if err != nil {
		util.RespondWithError(c, http.StatusBadGateway, "Upstream archive query failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// QueryInstances endpoint
func (gc *DicomGatewayController) QueryInstances(c *gin.Context) {
	userID, projectID, params, ok := gc.requestContext(c)
	if !ok {
		return
	}

	items, err := gc.gatewayService.FilterInstances(c, userID, projectID,
		c.Param("studyUID"), c.Param("seriesUID"), params)
	if err != nil {
		util.RespondWithError(c, http.StatusBadGateway, "Upstream archive query failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (gc *DicomGatewayController) requestContext(c *gin.Context) (userID, projectID int64, params []gateway.Param, ok bool) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", radgate_errors.ErrUnauthorized)
		return 0, 0, nil, false
	}

	projectID, err = strconv.ParseInt(c.Query("project_id"), 10, 64)
	if err != nil || projectID <= 0 {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid or missing project_id", err)
		return 0, 0, nil, false
	}

	params, err = gateway.ParseUserParams(c.Request.URL.Query())
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", err)
		return 0, 0, nil, false
	}
	return userID, projectID, params, true
}

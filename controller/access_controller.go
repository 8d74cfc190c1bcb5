// api/controller/access_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	radgate_errors "github.com/medicube/radgate/api/errors"
	"github.com/medicube/radgate/api/service"
	"github.com/medicube/radgate/api/util"
)

// AccessController exposes the decision engine directly. Every endpoint
// answers 200 with a decision body; a denial is a result, not an HTTP error.
type AccessController struct {
	accessService service.IAccessService
}

func NewAccessController(accessService service.IAccessService) *AccessController {
	return &AccessController{
		accessService: accessService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	access := r.Group("/access")
	{
		access.GET("/study/:id", ac.CheckStudyAccess)
		access.GET("/series/:id", ac.CheckSeriesAccess)
		access.GET("/instance/:id", ac.CheckInstanceAccess)
		access.GET("/study-uid/:uid", ac.CheckStudyUID)
		access.GET("/series-uid/:uid", ac.CheckSeriesUID)
		access.GET("/instance-uid/:uid", ac.CheckInstanceUID)
	}
}

// CheckStudyAccess endpoint
func (ac *AccessController) CheckStudyAccess(c *gin.Context) {
	userID, projectID, ok := ac.requestIdentity(c)
	if !ok {
		return
	}
	studyID, ok := pathID(c)
	if !ok {
		return
	}

	decision := ac.accessService.CheckStudyAccess(c, userID, projectID, studyID)
	c.JSON(http.StatusOK, decision)
}

// CheckSeriesAccess endpoint
func (ac *AccessController) CheckSeriesAccess(c *gin.Context) {
	userID, projectID, ok := ac.requestIdentity(c)
	if !ok {
		return
	}
	seriesID, ok := pathID(c)
	if !ok {
		return
	}

	decision := ac.accessService.CheckSeriesAccess(c, userID, projectID, seriesID)
	c.JSON(http.StatusOK, decision)
}

// CheckInstanceAccess endpoint
func (ac *AccessController) CheckInstanceAccess(c *gin.Context) {
	userID, projectID, ok := ac.requestIdentity(c)
	if !ok {
		return
	}
	instanceID, ok := pathID(c)
	if !ok {
		return
	}

	decision := ac.accessService.CheckInstanceAccess(c, userID, projectID, instanceID)
	c.JSON(http.StatusOK, decision)
}

// CheckStudyUID endpoint
func (ac *AccessController) CheckStudyUID(c *gin.Context) {
	userID, projectID, ok := ac.requestIdentity(c)
	if !ok {
		return
	}

	decision := ac.accessService.EvaluateStudyUID(c, userID, projectID, c.Param("uid"))
	c.JSON(http.StatusOK, decision)
}

// CheckSeriesUID endpoint
func (ac *AccessController) CheckSeriesUID(c *gin.Context) {
	userID, projectID, ok := ac.requestIdentity(c)
	if !ok {
		return
	}

	decision := ac.accessService.EvaluateSeriesUID(c, userID, projectID, c.Param("uid"))
	c.JSON(http.StatusOK, decision)
}

// CheckInstanceUID endpoint
func (ac *AccessController) CheckInstanceUID(c *gin.Context) {
	userID, projectID, ok := ac.requestIdentity(c)
	if !ok {
		return
	}

	decision := ac.accessService.EvaluateInstanceUID(c, userID, projectID, c.Param("uid"))
	c.JSON(http.StatusOK, decision)
}

func (ac *AccessController) requestIdentity(c *gin.Context) (userID, projectID int64, ok bool) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", radgate_errors.ErrUnauthorized)
		return 0, 0, false
	}

	projectID, err = strconv.ParseInt(c.Query("project_id"), 10, 64)
	if err != nil || projectID <= 0 {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid or missing project_id", err)
		return 0, 0, false
	}
	return userID, projectID, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid resource id", err)
		return 0, false
	}
	return id, true
}

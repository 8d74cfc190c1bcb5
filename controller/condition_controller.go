// api/controller/condition_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	radgate_errors "github.com/medicube/radgate/api/errors"
	"github.com/medicube/radgate/api/model"
	"github.com/medicube/radgate/api/service"
	"github.com/medicube/radgate/api/util"
	helper_util "github.com/medicube/radgate/api/util/helper"
)

type ConditionController struct {
	conditionService service.IConditionService
}

func NewConditionController(conditionService service.IConditionService) *ConditionController {
	return &ConditionController{
		conditionService: conditionService,
	}
}

// RegisterRoutes registers the API routes
func (cc *ConditionController) RegisterRoutes(r *gin.RouterGroup) {
	conditions := r.Group("/conditions")
	{
		conditions.POST("", cc.CreateCondition)
		conditions.GET("", cc.ListConditions)
		conditions.GET("/:id", cc.GetCondition)
		conditions.DELETE("/:id", cc.DeleteCondition)
		conditions.POST("/:id/projects", cc.AssignToProject)
		conditions.POST("/:id/roles", cc.AssignToRole)
	}
}

// CreateCondition endpoint
func (cc *ConditionController) CreateCondition(c *gin.Context) {
	var input model.NewAccessCondition
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid condition data", radgate_errors.ErrInvalidConditionData)
		return
	}

	condition, err := cc.conditionService.CreateCondition(c, input)
	if err != nil {
		switch {
		case errors.Is(err, radgate_errors.ErrInvalidConditionData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid condition data", err)
		case errors.Is(err, radgate_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create condition", radgate_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, condition)
}

// ListConditions endpoint
func (cc *ConditionController) ListConditions(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	conditions, err := cc.conditionService.ListConditions(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list conditions", err)
		return
	}

	c.JSON(http.StatusOK, conditions)
}

// GetCondition endpoint
func (cc *ConditionController) GetCondition(c *gin.Context) {
	conditionID, ok := conditionPathID(c)
	if !ok {
		return
	}

	condition, err := cc.conditionService.GetCondition(c, conditionID)
	if err != nil {
		if errors.Is(err, radgate_errors.ErrConditionNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Condition not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get condition", err)
		}
		return
	}

	c.JSON(http.StatusOK, condition)
}

// DeleteCondition endpoint
func (cc *ConditionController) DeleteCondition(c *gin.Context) {
	conditionID, ok := conditionPathID(c)
	if !ok {
		return
	}

	if err := cc.conditionService.DeleteCondition(c, conditionID); err != nil {
		if errors.Is(err, radgate_errors.ErrConditionNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Condition not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete condition", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

type assignProjectRequest struct {
	ProjectID int64 `json:"project_id" binding:"required"`
	Priority  int   `json:"priority"`
}

// AssignToProject endpoint
func (cc *ConditionController) AssignToProject(c *gin.Context) {
	conditionID, ok := conditionPathID(c)
	if !ok {
		return
	}

	var req assignProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid association data", err)
		return
	}

	if err := cc.conditionService.AssignToProject(c, conditionID, req.ProjectID, req.Priority); err != nil {
		if errors.Is(err, radgate_errors.ErrConditionNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Condition or project not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to assign condition", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

type assignRoleRequest struct {
	RoleID   int64 `json:"role_id" binding:"required"`
	Priority int   `json:"priority"`
}

// AssignToRole endpoint
func (cc *ConditionController) AssignToRole(c *gin.Context) {
	conditionID, ok := conditionPathID(c)
	if !ok {
		return
	}

	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid association data", err)
		return
	}

	if err := cc.conditionService.AssignToRole(c, conditionID, req.RoleID, req.Priority); err != nil {
		if errors.Is(err, radgate_errors.ErrConditionNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Condition or role not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to assign condition", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func conditionPathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid condition id", err)
		return 0, false
	}
	return id, true
}

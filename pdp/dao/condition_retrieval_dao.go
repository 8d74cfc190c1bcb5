package dao

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/medicube/radgate/api/db"
	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
	helper_util "github.com/medicube/radgate/api/util/helper"
)

// ConditionRetrievalDAO reads access-condition definitions for the decision
// engine, ordered by association priority (DESC) then condition id (ASC) so
// ties break on insertion order rather than iteration order.
type ConditionRetrievalDAO struct {
	Driver neo4j.Driver
}

func NewConditionRetrievalDAO(driver neo4j.Driver) *ConditionRetrievalDAO {
	return &ConditionRetrievalDAO{Driver: driver}
}

func (dao *ConditionRetrievalDAO) ProjectConditions(ctx context.Context, projectID int64) ([]model.AccessCondition, error) {
	if cached, err := db.GetCachedProjectConditions(ctx, projectID); err == nil && cached != nil {
		logger.Debug("Cache hit for project conditions", zap.Int64("projectID", projectID))
		return cached, nil
	}

	query := `
	MATCH (p:Project {id: $projectID})-[r:HAS_CONDITION]->(c:AccessCondition)
	RETURN c
	ORDER BY r.priority DESC, c.id ASC
	`
	conditions, err := dao.fetchConditions(query, map[string]interface{}{"projectID": projectID})
	if err != nil {
		logger.Error("Failed to retrieve project conditions",
			zap.Int64("projectID", projectID), zap.Error(err))
		return nil, err
	}

	if err := db.CacheProjectConditions(ctx, projectID, conditions); err != nil {
		logger.Warn("Failed to cache project conditions",
			zap.Int64("projectID", projectID), zap.Error(err))
	}

	return conditions, nil
}

func (dao *ConditionRetrievalDAO) RoleConditions(ctx context.Context, roleID int64) ([]model.AccessCondition, error) {
	query := `
	MATCH (ro:Role {id: $roleID})-[r:HAS_CONDITION]->(c:AccessCondition)
	RETURN c
	ORDER BY r.priority DESC, c.id ASC
	`
	conditions, err := dao.fetchConditions(query, map[string]interface{}{"roleID": roleID})
	if err != nil {
		logger.Error("Failed to retrieve role conditions",
			zap.Int64("roleID", roleID), zap.Error(err))
		return nil, err
	}
	return conditions, nil
}

func (dao *ConditionRetrievalDAO) fetchConditions(query string, params map[string]interface{}) ([]model.AccessCondition, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		result, err := tx.Run(query, params)
		if err != nil {
			return nil, err
		}

		var conditions []model.AccessCondition
		for result.Next() {
			node, ok := result.Record().Values[0].(neo4j.Node)
			if !ok {
				return nil, fmt.Errorf("unexpected record value for condition node")
			}
			condition, err := MapNodeToCondition(node)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, condition)
		}
		return conditions, result.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.AccessCondition), nil
}

// MapNodeToCondition maps a Neo4j node onto the AccessCondition struct.
// Stored operator and condition-type values are re-parsed through the closed
// enums so a corrupted record surfaces as an error here instead of a silent
// non-match in the evaluator.
func MapNodeToCondition(node neo4j.Node) (model.AccessCondition, error) {
	props := node.Props
	condition := model.AccessCondition{}

	id, ok := props["id"].(int64)
	if !ok {
		return condition, fmt.Errorf("failed to assert type for condition id: %v", props["id"])
	}
	condition.ID = id

	resourceType, ok := props["resourceType"].(string)
	if !ok {
		return condition, fmt.Errorf("failed to assert type for condition resourceType: %v", props["resourceType"])
	}
	condition.ResourceType = resourceType

	levelStr, ok := props["resourceLevel"].(string)
	if !ok {
		return condition, fmt.Errorf("failed to assert type for condition resourceLevel: %v", props["resourceLevel"])
	}
	level, err := model.ParseResourceLevel(levelStr)
	if err != nil {
		return condition, err
	}
	condition.ResourceLevel = level

	if tag, ok := props["dicomTag"].(string); ok {
		condition.DicomTag = &tag
	}

	operatorStr, ok := props["operator"].(string)
	if !ok {
		return condition, fmt.Errorf("failed to assert type for condition operator: %v", props["operator"])
	}
	operator, err := model.ParseOperator(operatorStr)
	if err != nil {
		return condition, err
	}
	condition.Operator = operator

	if value, ok := props["value"].(string); ok {
		condition.Value = &value
	}

	typeStr, ok := props["conditionType"].(string)
	if !ok {
		return condition, fmt.Errorf("failed to assert type for condition conditionType: %v", props["conditionType"])
	}
	conditionType, err := model.ParseConditionType(typeStr)
	if err != nil {
		return condition, err
	}
	condition.ConditionType = conditionType

	if createdAt, err := helper_util.ParseNullableTime(props["createdAt"]); err == nil && createdAt != nil {
		condition.CreatedAt = *createdAt
	}

	return condition, nil
}

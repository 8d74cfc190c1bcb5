// api/dao/condition_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	radgate_errors "github.com/medicube/radgate/api/errors"
	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
	pdp_dao "github.com/medicube/radgate/api/pdp/dao"
)

// ConditionDAO manages the administrative lifecycle of access conditions:
// create, read, delete, and association with projects and roles. The
// decision-path reads live in pdp/dao.
type ConditionDAO struct {
	Driver neo4j.Driver
}

func NewConditionDAO(driver neo4j.Driver) *ConditionDAO {
	dao := &ConditionDAO{Driver: driver}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint", zap.Error(err))
	}
	return dao
}

// EnsureUniqueConstraint ensures the unique constraint on the condition id
func (dao *ConditionDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on AccessCondition id")
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("Failed to close Neo4j session", zap.Error(err))
		}
	}()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_access_condition_id IF NOT EXISTS
        FOR (c:AccessCondition) REQUIRE c.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		if err != nil {
			logger.Error("Failed to create unique constraint", zap.Error(err))
			return nil, fmt.Errorf("failed to create unique constraint: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on AccessCondition id", zap.Error(err))
		return err
	}

	return nil
}

// CreateCondition persists a normalized condition and returns its assigned
// id. Ids are allocated from the current maximum inside the write
// transaction.
func (dao *ConditionDAO) CreateCondition(ctx context.Context, condition model.AccessCondition) (int64, error) {
	start := time.Now()
	logger.Info("Creating new access condition",
		zap.String("resourceLevel", string(condition.ResourceLevel)),
		zap.String("conditionType", string(condition.ConditionType)))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        OPTIONAL MATCH (existing:AccessCondition)
        WITH coalesce(max(existing.id), 0) + 1 AS nextId
        CREATE (c:AccessCondition {id: nextId})
        SET c += $props
        RETURN c.id AS id
        `
		parameters := map[string]interface{}{
			"props": map[string]interface{}{
				"resourceType":  condition.ResourceType,
				"resourceLevel": string(condition.ResourceLevel),
				"dicomTag":      nullableString(condition.DicomTag),
				"operator":      string(condition.Operator),
				"value":         nullableString(condition.Value),
				"conditionType": string(condition.ConditionType),
				"createdAt":     time.Now().Format(time.RFC3339),
			},
		}
		result, err := transaction.Run(query, parameters)
		if err != nil {
			return nil, radgate_errors.ErrDatabaseOperation
		}
		if result.Next() {
			id, found := result.Record().Get("id")
			if !found {
				return nil, radgate_errors.ErrInternalServer
			}
			return id, nil
		}
		return nil, radgate_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create access condition",
			zap.Error(err),
			zap.Duration("duration", duration))
		return 0, err
	}

	conditionID := result.(int64)
	logger.Info("Access condition created successfully",
		zap.Int64("conditionID", conditionID),
		zap.Duration("duration", duration))
	return conditionID, nil
}

// GetCondition retrieves a single condition by id
func (dao *ConditionDAO) GetCondition(ctx context.Context, conditionID int64) (*model.AccessCondition, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (c:AccessCondition {id: $id})
        RETURN c
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": conditionID})
		if err != nil {
			return nil, radgate_errors.ErrDatabaseOperation
		}
		if result.Next() {
			node, ok := result.Record().Values[0].(neo4j.Node)
			if !ok {
				return nil, radgate_errors.ErrInternalServer
			}
			condition, err := pdp_dao.MapNodeToCondition(node)
			if err != nil {
				return nil, err
			}
			return &condition, nil
		}
		return nil, radgate_errors.ErrConditionNotFound
	})
	if err != nil {
		if err != radgate_errors.ErrConditionNotFound {
			logger.Error("Failed to get access condition",
				zap.Int64("conditionID", conditionID), zap.Error(err))
		}
		return nil, err
	}
	return result.(*model.AccessCondition), nil
}

// ListConditions retrieves conditions with pagination, newest first
func (dao *ConditionDAO) ListConditions(ctx context.Context, limit, offset int) ([]model.AccessCondition, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (c:AccessCondition)
        RETURN c
        ORDER BY c.id DESC
        SKIP $offset
        LIMIT $limit
        `
		result, err := transaction.Run(query, map[string]interface{}{
			"offset": offset,
			"limit":  limit,
		})
		if err != nil {
			return nil, radgate_errors.ErrDatabaseOperation
		}

		var conditions []model.AccessCondition
		for result.Next() {
			node, ok := result.Record().Values[0].(neo4j.Node)
			if !ok {
				return nil, radgate_errors.ErrInternalServer
			}
			condition, err := pdp_dao.MapNodeToCondition(node)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, condition)
		}
		return conditions, result.Err()
	})
	if err != nil {
		logger.Error("Failed to list access conditions", zap.Error(err))
		return nil, err
	}
	return result.([]model.AccessCondition), nil
}

// DeleteCondition removes a condition and all of its associations
func (dao *ConditionDAO) DeleteCondition(ctx context.Context, conditionID int64) error {
	start := time.Now()
	logger.Info("Deleting access condition", zap.Int64("conditionID", conditionID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (c:AccessCondition {id: $id})
        DETACH DELETE c
        RETURN count(c) AS deleted
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": conditionID})
		if err != nil {
			return nil, radgate_errors.ErrDatabaseOperation
		}
		record, err := result.Single()
		if err != nil {
			return nil, radgate_errors.ErrDatabaseOperation
		}
		if record.Values[0].(int64) == 0 {
			return nil, radgate_errors.ErrConditionNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete access condition",
			zap.Error(err),
			zap.Int64("conditionID", conditionID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Access condition deleted successfully",
		zap.Int64("conditionID", conditionID),
		zap.Duration("duration", duration))
	return nil
}

// ProjectIDsForCondition returns the ids of every project the condition is
// associated with. Callers that delete a condition use this to invalidate the
// per-project condition caches.
func (dao *ConditionDAO) ProjectIDsForCondition(ctx context.Context, conditionID int64) ([]int64, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:Project)-[:HAS_CONDITION]->(c:AccessCondition {id: $id})
        RETURN p.id AS projectId
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": conditionID})
		if err != nil {
			return nil, radgate_errors.ErrDatabaseOperation
		}

		var projectIDs []int64
		for result.Next() {
			id, ok := result.Record().Values[0].(int64)
			if !ok {
				return nil, radgate_errors.ErrInternalServer
			}
			projectIDs = append(projectIDs, id)
		}
		return projectIDs, result.Err()
	})
	if err != nil {
		logger.Error("Failed to list projects for condition",
			zap.Int64("conditionID", conditionID), zap.Error(err))
		return nil, err
	}
	return result.([]int64), nil
}

// AssociateWithProject links a condition to a project with a priority.
// Re-associating updates the priority in place.
func (dao *ConditionDAO) AssociateWithProject(ctx context.Context, conditionID, projectID int64, priority int) error {
	query := `
    MATCH (c:AccessCondition {id: $conditionID})
    MATCH (p:Project {id: $projectID})
    MERGE (p)-[r:HAS_CONDITION]->(c)
    SET r.priority = $priority
    RETURN r
    `
	return dao.associate(query, map[string]interface{}{
		"conditionID": conditionID,
		"projectID":   projectID,
		"priority":    priority,
	}, "Failed to associate condition with project")
}

// AssociateWithRole links a condition to a role with a priority.
func (dao *ConditionDAO) AssociateWithRole(ctx context.Context, conditionID, roleID int64, priority int) error {
	query := `
    MATCH (c:AccessCondition {id: $conditionID})
    MATCH (ro:Role {id: $roleID})
    MERGE (ro)-[r:HAS_CONDITION]->(c)
    SET r.priority = $priority
    RETURN r
    `
	return dao.associate(query, map[string]interface{}{
		"conditionID": conditionID,
		"roleID":      roleID,
		"priority":    priority,
	}, "Failed to associate condition with role")
}

func (dao *ConditionDAO) associate(query string, params map[string]interface{}, errMsg string) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, radgate_errors.ErrDatabaseOperation
		}
		if !result.Next() {
			return nil, radgate_errors.ErrConditionNotFound
		}
		return nil, nil
	})
	if err != nil {
		logger.Error(errMsg, zap.Error(err))
		return err
	}
	return nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

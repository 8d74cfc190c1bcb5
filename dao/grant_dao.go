// api/dao/grant_dao.go
package dao

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
)

// GrantDAO checks resource-level access grants. Grants are stored as nodes
// keyed by user, project, level and resource id so one query covers all
// three hierarchy levels.
type GrantDAO struct {
	Driver neo4j.Driver
}

func NewGrantDAO(driver neo4j.Driver) *GrantDAO {
	return &GrantDAO{Driver: driver}
}

// HasApprovedAccess reports whether an APPROVED grant exists for the exact
// resource. Pending or revoked grants never count.
func (dao *GrantDAO) HasApprovedAccess(ctx context.Context, userID, projectID int64, level model.ResourceLevel, resourceID int64) (bool, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
		MATCH (g:AccessGrant {userId: $userID, projectId: $projectID, resourceLevel: $level, resourceId: $resourceID})
		WHERE g.status = 'APPROVED'
		RETURN count(g) > 0 AS granted
		`
		result, err := tx.Run(query, map[string]interface{}{
			"userID":     userID,
			"projectID":  projectID,
			"level":      string(level),
			"resourceID": resourceID,
		})
		if err != nil {
			return nil, err
		}
		record, err := result.Single()
		if err != nil {
			return nil, err
		}
		return record.Values[0].(bool), nil
	})
	if err != nil {
		logger.Error("Failed to check access grant",
			zap.Int64("userID", userID),
			zap.Int64("projectID", projectID),
			zap.String("level", string(level)),
			zap.Int64("resourceID", resourceID),
			zap.Error(err))
		return false, err
	}
	return result.(bool), nil
}

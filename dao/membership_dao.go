// api/dao/membership_dao.go
package dao

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	logger "github.com/medicube/radgate/api/logging"
)

// MembershipDAO resolves the user-project relationship. Membership is a
// prerequisite for every access decision, so the queries stay as small as
// possible.
type MembershipDAO struct {
	Driver neo4j.Driver
}

func NewMembershipDAO(driver neo4j.Driver) *MembershipDAO {
	return &MembershipDAO{Driver: driver}
}

func (dao *MembershipDAO) IsProjectMember(ctx context.Context, userID, projectID int64) (bool, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
		MATCH (u:User {id: $userID})-[m:MEMBER_OF]->(p:Project {id: $projectID})
		RETURN count(m) > 0 AS isMember
		`
		result, err := tx.Run(query, map[string]interface{}{
			"userID":    userID,
			"projectID": projectID,
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
		logger.Error("Failed to check project membership",
			zap.Int64("userID", userID), zap.Int64("projectID", projectID), zap.Error(err))
		return false, err
	}
	return result.(bool), nil
}

// UserRoleInProject returns the role id carried on the membership
// relationship, or nil when the membership has no role attached.
func (dao *MembershipDAO) UserRoleInProject(ctx context.Context, userID, projectID int64) (*int64, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
		MATCH (u:User {id: $userID})-[m:MEMBER_OF]->(p:Project {id: $projectID})
		RETURN m.roleId AS roleId
		`
		result, err := tx.Run(query, map[string]interface{}{
			"userID":    userID,
			"projectID": projectID,
		})
		if err != nil {
			return nil, err
		}
		if !result.Next() {
			return nil, result.Err()
		}
		roleID, ok := result.Record().Values[0].(int64)
		if !ok {
			return nil, nil
		}
		return &roleID, nil
	})
	if err != nil {
		logger.Error("Failed to resolve user role in project",
			zap.Int64("userID", userID), zap.Int64("projectID", projectID), zap.Error(err))
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*int64), nil
}

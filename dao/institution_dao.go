// api/dao/institution_dao.go
package dao

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	logger "github.com/medicube/radgate/api/logging"
)

// InstitutionDAO answers the affiliation questions of the institution check:
// which institution a user belongs to, which institution produced a study,
// and whether an active cross-access agreement links two institutions.
type InstitutionDAO struct {
	Driver neo4j.Driver
}

func NewInstitutionDAO(driver neo4j.Driver) *InstitutionDAO {
	return &InstitutionDAO{Driver: driver}
}

func (dao *InstitutionDAO) UserInstitution(ctx context.Context, userID int64) (*int64, error) {
	query := `
	MATCH (u:User {id: $userID})-[:AFFILIATED_WITH]->(i:Institution)
	RETURN i.id AS institutionId
	`
	return dao.fetchOptionalID(query, map[string]interface{}{"userID": userID},
		"Failed to resolve user institution")
}

func (dao *InstitutionDAO) DataInstitution(ctx context.Context, studyID int64) (*int64, error) {
	query := `
	MATCH (s:Study {id: $studyID})-[:FROM_INSTITUTION]->(i:Institution)
	RETURN i.id AS institutionId
	`
	return dao.fetchOptionalID(query, map[string]interface{}{"studyID": studyID},
		"Failed to resolve study data institution")
}

func (dao *InstitutionDAO) CrossAccessActive(ctx context.Context, userInstitutionID, dataInstitutionID int64) (bool, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
		MATCH (a:Institution {id: $userInstitutionID})-[r:CROSS_ACCESS]->(b:Institution {id: $dataInstitutionID})
		WHERE r.active = true
		RETURN count(r) > 0 AS active
		`
		result, err := tx.Run(query, map[string]interface{}{
			"userInstitutionID": userInstitutionID,
			"dataInstitutionID": dataInstitutionID,
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
		logger.Error("Failed to check institution cross access",
			zap.Int64("userInstitutionID", userInstitutionID),
			zap.Int64("dataInstitutionID", dataInstitutionID), zap.Error(err))
		return false, err
	}
	return result.(bool), nil
}

func (dao *InstitutionDAO) fetchOptionalID(query string, params map[string]interface{}, errMsg string) (*int64, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		result, err := tx.Run(query, params)
		if err != nil {
			return nil, err
		}
		if !result.Next() {
			return nil, result.Err()
		}
		id, ok := result.Record().Values[0].(int64)
		if !ok {
			return nil, nil
		}
		return &id, nil
	})
	if err != nil {
		logger.Error(errMsg, zap.Error(err))
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*int64), nil
}

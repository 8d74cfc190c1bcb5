// api/dao/hierarchy_dao.go
package dao

import (
	"context"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"go.uber.org/zap"

	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
)

// HierarchyDAO walks the Study/Series/Instance tree: parent hops for
// inheritance, UID resolution scoped to a project, and the study attributes
// the rule evaluator matches against.
type HierarchyDAO struct {
	Driver neo4j.Driver
}

func NewHierarchyDAO(driver neo4j.Driver) *HierarchyDAO {
	return &HierarchyDAO{Driver: driver}
}

// StudyAttributes loads the matchable DICOM attributes of a study. Absent
// properties come back as nil pointers, which the evaluator treats as
// non-matching values.
func (dao *HierarchyDAO) StudyAttributes(ctx context.Context, studyID int64) (model.ResourceAttributes, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
		MATCH (s:Study {id: $studyID})
		RETURN s.modality AS modality, s.studyDate AS studyDate, s.patientId AS patientId
		`
		result, err := tx.Run(query, map[string]interface{}{"studyID": studyID})
		if err != nil {
			return nil, err
		}
		if !result.Next() {
			return model.ResourceAttributes{}, result.Err()
		}
		values := result.Record().Values

		attrs := model.ResourceAttributes{}
		if modality, ok := values[0].(string); ok {
			attrs.Modality = &modality
		}
		attrs.StudyDate = FormatDicomDate(values[1])
		if patientID, ok := values[2].(string); ok {
			attrs.PatientID = &patientID
		}
		return attrs, nil
	})
	if err != nil {
		logger.Error("Failed to load study attributes",
			zap.Int64("studyID", studyID), zap.Error(err))
		return model.ResourceAttributes{}, err
	}
	return result.(model.ResourceAttributes), nil
}

func (dao *HierarchyDAO) ParentStudyID(ctx context.Context, seriesID int64) (*int64, error) {
	query := `
	MATCH (se:Series {id: $id})-[:IN_STUDY]->(st:Study)
	RETURN st.id AS id
	`
	return dao.fetchOptionalID(query, map[string]interface{}{"id": seriesID},
		"Failed to resolve parent study")
}

func (dao *HierarchyDAO) ParentSeriesID(ctx context.Context, instanceID int64) (*int64, error) {
	query := `
	MATCH (i:Instance {id: $id})-[:IN_SERIES]->(se:Series)
	RETURN se.id AS id
	`
	return dao.fetchOptionalID(query, map[string]interface{}{"id": instanceID},
		"Failed to resolve parent series")
}

// UID resolution is always project-scoped: a UID known to the archive but
// not registered under the project resolves to nothing.

func (dao *HierarchyDAO) StudyIDForUID(ctx context.Context, projectID int64, studyUID string) (*int64, error) {
	query := `
	MATCH (s:Study {studyUid: $uid})-[:BELONGS_TO]->(p:Project {id: $projectID})
	RETURN s.id AS id
	`
	return dao.fetchOptionalID(query, map[string]interface{}{"uid": studyUID, "projectID": projectID},
		"Failed to resolve study UID")
}

func (dao *HierarchyDAO) SeriesIDForUID(ctx context.Context, projectID int64, seriesUID string) (*int64, error) {
	query := `
	MATCH (se:Series {seriesUid: $uid})-[:IN_STUDY]->(:Study)-[:BELONGS_TO]->(p:Project {id: $projectID})
	RETURN se.id AS id
	`
	return dao.fetchOptionalID(query, map[string]interface{}{"uid": seriesUID, "projectID": projectID},
		"Failed to resolve series UID")
}

func (dao *HierarchyDAO) InstanceIDForUID(ctx context.Context, projectID int64, instanceUID string) (*int64, error) {
	query := `
	MATCH (i:Instance {instanceUid: $uid})-[:IN_SERIES]->(:Series)-[:IN_STUDY]->(:Study)-[:BELONGS_TO]->(p:Project {id: $projectID})
	RETURN i.id AS id
	`
	return dao.fetchOptionalID(query, map[string]interface{}{"uid": instanceUID, "projectID": projectID},
		"Failed to resolve instance UID")
}

func (dao *HierarchyDAO) fetchOptionalID(query string, params map[string]interface{}, errMsg string) (*int64, error) {
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

// FormatDicomDate converts a stored study date to the 8-digit DICOM form
// the rule evaluator expects. Stored dates may be ISO strings, already
// compact strings, or temporal values from the driver. Anything else maps
// to nil and the date simply never matches a condition.
func FormatDicomDate(value interface{}) *string {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if t, err := time.Parse("2006-01-02", trimmed); err == nil {
			formatted := t.Format("20060102")
			return &formatted
		}
		if _, err := time.Parse("20060102", trimmed); err == nil {
			return &trimmed
		}
		return nil
	case time.Time:
		formatted := v.Format("20060102")
		return &formatted
	case dbtype.Date:
		formatted := v.Time().Format("20060102")
		return &formatted
	default:
		return nil
	}
}

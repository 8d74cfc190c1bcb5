package gateway_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medicube/radgate/api/gateway"
	"github.com/medicube/radgate/api/model"
)

func strPtr(s string) *string { return &s }

func pushCondition(id int64, level model.ResourceLevel, tag, value string, op model.Operator, ct model.ConditionType) model.AccessCondition {
	return model.AccessCondition{
		ID:            id,
		ResourceType:  "dicom",
		ResourceLevel: level,
		DicomTag:      strPtr(tag),
		Operator:      op,
		Value:         strPtr(value),
		ConditionType: ct,
	}
}

func paramMap(params []gateway.Param) map[string]string {
	m := make(map[string]string, len(params))
	for _, p := range params {
		m[p.Key] = p.Value
	}
	return m
}

func TestBuildPushdownParams(t *testing.T) {
	conditions := []model.AccessCondition{
		pushCondition(1, model.LevelStudy, "00080060", "CT", model.OperatorEQ, model.ConditionAllow),
		pushCondition(2, model.LevelStudy, "00080020", "20240101-20240131", model.OperatorRange, model.ConditionAllow),
		pushCondition(3, model.LevelStudy, "00100010", "DOE", model.OperatorContains, model.ConditionAllow),
		// Deny conditions cannot narrow the upstream query.
		pushCondition(4, model.LevelStudy, "00100020", "P-1", model.OperatorEQ, model.ConditionDeny),
		// Series-level conditions never push down to a study query.
		pushCondition(5, model.LevelSeries, "00080060", "MR", model.OperatorEQ, model.ConditionAllow),
		// NE has no QIDO equivalent.
		pushCondition(6, model.LevelStudy, "00080060", "US", model.OperatorNE, model.ConditionAllow),
	}

	params := paramMap(gateway.BuildPushdownParams(conditions))
	assert.Equal(t, map[string]string{
		"00080060": "CT",
		"00080020": "20240101-20240131",
		"00100010": "*DOE*",
	}, params)
}

func TestBuildPushdownParamsFirstConditionPerTagWins(t *testing.T) {
	conditions := []model.AccessCondition{
		pushCondition(1, model.LevelStudy, "00080060", "CT", model.OperatorEQ, model.ConditionAllow),
		pushCondition(2, model.LevelStudy, "00080060", "MR", model.OperatorEQ, model.ConditionAllow),
	}

	params := gateway.BuildPushdownParams(conditions)
	assert.Len(t, params, 1)
	assert.Equal(t, "CT", params[0].Value)
}

func TestParseUserParams(t *testing.T) {
	values := url.Values{}
	values.Set("modality", "CT")
	values.Set("patient_id", "P-9")
	values.Set("study_date", "20240101-20240131")
	values.Set("page", "3")
	values.Set("page_size", "25")
	values.Set("project_id", "10")
	values.Set("includefield", "all")

	params, err := gateway.ParseUserParams(values)
	assert.NoError(t, err)

	m := paramMap(params)
	assert.Equal(t, "CT", m["00080060"])
	assert.Equal(t, "P-9", m["00100020"])
	assert.Equal(t, "20240101-20240131", m["00080020"])
	assert.Equal(t, "25", m["limit"])
	assert.Equal(t, "50", m["offset"])
	assert.Equal(t, "all", m["includefield"])
	// project_id is routing state, never a QIDO parameter.
	_, forwarded := m["project_id"]
	assert.False(t, forwarded)
}

func TestParseUserParamsDefaultsAndClamp(t *testing.T) {
	params, err := gateway.ParseUserParams(url.Values{})
	assert.NoError(t, err)
	m := paramMap(params)
	assert.Equal(t, "50", m["limit"])
	assert.Equal(t, "0", m["offset"])

	values := url.Values{}
	values.Set("page_size", "5000")
	params, err = gateway.ParseUserParams(values)
	assert.NoError(t, err)
	assert.Equal(t, "200", paramMap(params)["limit"])
}

func TestParseUserParamsInvalid(t *testing.T) {
	values := url.Values{}
	values.Set("study_date", "2024-01-01")
	_, err := gateway.ParseUserParams(values)
	assert.Error(t, err)

	values = url.Values{}
	values.Set("page", "0")
	_, err = gateway.ParseUserParams(values)
	assert.Error(t, err)

	values = url.Values{}
	values.Set("page_size", "abc")
	_, err = gateway.ParseUserParams(values)
	assert.Error(t, err)
}

func TestMergeParamsUserWins(t *testing.T) {
	pushdown := []gateway.Param{
		{Key: "00080060", Value: "CT"},
		{Key: "00080020", Value: "20240101-20240131"},
	}
	user := []gateway.Param{
		{Key: "00080060", Value: "MR"},
		{Key: "limit", Value: "10"},
	}

	merged := gateway.MergeParams(pushdown, user)
	m := paramMap(merged)
	assert.Equal(t, "MR", m["00080060"])
	assert.Equal(t, "20240101-20240131", m["00080020"])
	assert.Equal(t, "10", m["limit"])

	// Sorted by key for deterministic request URLs.
	assert.Equal(t, "00080020", merged[0].Key)
	assert.Equal(t, "00080060", merged[1].Key)
	assert.Equal(t, "limit", merged[2].Key)
}

func TestExtractUIDs(t *testing.T) {
	item := map[string]interface{}{
		"0020000D": map[string]interface{}{"Value": []interface{}{"1.2.3"}},
		"0020000E": map[string]interface{}{"Value": []interface{}{"1.2.3.1"}},
		"00080018": map[string]interface{}{"Value": []interface{}{"1.2.3.1.1"}},
	}

	assert.Equal(t, "1.2.3", gateway.ExtractStudyUID(item))
	assert.Equal(t, "1.2.3.1", gateway.ExtractSeriesUID(item))
	assert.Equal(t, "1.2.3.1.1", gateway.ExtractInstanceUID(item))

	assert.Equal(t, "", gateway.ExtractStudyUID(map[string]interface{}{}))
	assert.Equal(t, "", gateway.ExtractStudyUID(map[string]interface{}{
		"0020000D": map[string]interface{}{"Value": []interface{}{}},
	}))
}

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medicube/radgate/api/model"
)

func TestParseOperator(t *testing.T) {
	cases := map[string]model.Operator{
		"EQ":         model.OperatorEQ,
		"EQUALS":     model.OperatorEQ,
		"==":         model.OperatorEQ,
		"NE":         model.OperatorNE,
		"NOT_EQUALS": model.OperatorNE,
		"!=":         model.OperatorNE,
		"RANGE":      model.OperatorRange,
		"BETWEEN":    model.OperatorRange,
		"CONTAINS":   model.OperatorContains,
		"LIKE":       model.OperatorContains,
		" EQ ":       model.OperatorEQ,
	}
	for input, expected := range cases {
		op, err := model.ParseOperator(input)
		assert.NoError(t, err, "input %q", input)
		assert.Equal(t, expected, op, "input %q", input)
	}

	_, err := model.ParseOperator("GT")
	assert.Error(t, err)

	// Operator aliases are case-sensitive.
	_, err = model.ParseOperator("eq")
	assert.Error(t, err)
}

func TestParseConditionType(t *testing.T) {
	for _, input := range []string{"ALLOW", "allow", "Allow"} {
		ct, err := model.ParseConditionType(input)
		assert.NoError(t, err)
		assert.Equal(t, model.ConditionAllow, ct)
	}

	ct, err := model.ParseConditionType("deny")
	assert.NoError(t, err)
	assert.Equal(t, model.ConditionDeny, ct)

	ct, err = model.ParseConditionType("LIMIT")
	assert.NoError(t, err)
	assert.Equal(t, model.ConditionLimit, ct)

	_, err = model.ParseConditionType("BLOCK")
	assert.Error(t, err)
}

func TestParseResourceLevel(t *testing.T) {
	level, err := model.ParseResourceLevel("study")
	assert.NoError(t, err)
	assert.Equal(t, model.LevelStudy, level)

	level, err = model.ParseResourceLevel("SERIES")
	assert.NoError(t, err)
	assert.Equal(t, model.LevelSeries, level)

	level, err = model.ParseResourceLevel("Instance")
	assert.NoError(t, err)
	assert.Equal(t, model.LevelInstance, level)

	_, err = model.ParseResourceLevel("PATIENT")
	assert.Error(t, err)
}

func TestNewAccessConditionNormalize(t *testing.T) {
	tag := "00080060"
	value := "CT"

	input := model.NewAccessCondition{
		ResourceType:  "dicom",
		ResourceLevel: "study",
		DicomTag:      &tag,
		Operator:      "EQUALS",
		Value:         &value,
		ConditionType: "allow",
	}

	condition, err := input.Normalize()
	assert.NoError(t, err)
	assert.Equal(t, model.LevelStudy, condition.ResourceLevel)
	assert.Equal(t, model.OperatorEQ, condition.Operator)
	assert.Equal(t, model.ConditionAllow, condition.ConditionType)
	assert.Equal(t, "CT", *condition.Value)

	input.Operator = "APPROX"
	_, err = input.Normalize()
	assert.Error(t, err)
}

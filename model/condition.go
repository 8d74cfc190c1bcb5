// api/model/condition.go
package model

import (
	"fmt"
	"strings"
	"time"
)

// Operator is the closed set of comparison operators a condition may use.
// String aliases are accepted on input and normalized by ParseOperator.
type Operator string

const (
	OperatorEQ       Operator = "EQ"
	OperatorNE       Operator = "NE"
	OperatorRange    Operator = "RANGE"
	OperatorContains Operator = "CONTAINS"
)

// ParseOperator normalizes an operator string, including the alias
// variants accepted on input (EQUALS/==, NOT_EQUALS/!=, BETWEEN, LIKE).
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "EQ", "EQUALS", "==":
		return OperatorEQ, nil
	case "NE", "NOT_EQUALS", "!=":
		return OperatorNE, nil
	case "RANGE", "BETWEEN":
		return OperatorRange, nil
	case "CONTAINS", "LIKE":
		return OperatorContains, nil
	}
	return "", fmt.Errorf("unknown operator: %q", s)
}

// ConditionType is the verdict a matching condition produces.
type ConditionType string

const (
	ConditionAllow ConditionType = "ALLOW"
	ConditionDeny  ConditionType = "DENY"
	ConditionLimit ConditionType = "LIMIT"
)

func ParseConditionType(s string) (ConditionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALLOW":
		return ConditionAllow, nil
	case "DENY":
		return ConditionDeny, nil
	case "LIMIT":
		return ConditionLimit, nil
	}
	return "", fmt.Errorf("unknown condition type: %q", s)
}

// ResourceLevel is one of the three tiers of the imaging hierarchy.
type ResourceLevel string

const (
	LevelStudy    ResourceLevel = "STUDY"
	LevelSeries   ResourceLevel = "SERIES"
	LevelInstance ResourceLevel = "INSTANCE"
)

func ParseResourceLevel(s string) (ResourceLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STUDY":
		return LevelStudy, nil
	case "SERIES":
		return LevelSeries, nil
	case "INSTANCE":
		return LevelInstance, nil
	}
	return "", fmt.Errorf("unknown resource level: %q", s)
}

// AccessCondition is a single DICOM-attribute rule. Conditions are long-lived
// configuration, read-only to the decision engine; operator and condition
// type are stored normalized.
type AccessCondition struct {
	ID            int64         `json:"id"`
	ResourceType  string        `json:"resource_type"`
	ResourceLevel ResourceLevel `json:"resource_level"`
	DicomTag      *string       `json:"dicom_tag,omitempty"`
	Operator      Operator      `json:"operator"`
	Value         *string       `json:"value,omitempty"`
	ConditionType ConditionType `json:"condition_type"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NewAccessCondition is the admin-facing input shape. Operator, condition
// type and resource level arrive as free strings and are normalized by
// Normalize before anything is persisted.
type NewAccessCondition struct {
	ResourceType  string  `json:"resource_type" binding:"required"`
	ResourceLevel string  `json:"resource_level" binding:"required"`
	DicomTag      *string `json:"dicom_tag,omitempty"`
	Operator      string  `json:"operator" binding:"required"`
	Value         *string `json:"value,omitempty"`
	ConditionType string  `json:"condition_type" binding:"required"`
}

// Normalize validates the free-form enum fields and returns a condition
// ready for persistence. The returned condition has no ID or timestamp.
func (n NewAccessCondition) Normalize() (AccessCondition, error) {
	level, err := ParseResourceLevel(n.ResourceLevel)
	if err != nil {
		return AccessCondition{}, err
	}
	op, err := ParseOperator(n.Operator)
	if err != nil {
		return AccessCondition{}, err
	}
	ct, err := ParseConditionType(n.ConditionType)
	if err != nil {
		return AccessCondition{}, err
	}
	return AccessCondition{
		ResourceType:  n.ResourceType,
		ResourceLevel: level,
		DicomTag:      n.DicomTag,
		Operator:      op,
		Value:         n.Value,
		ConditionType: ct,
	}, nil
}

// ConditionAssociation links a condition to a project or a role. Higher
// priority wins during rule evaluation; ties break on condition id.
type ConditionAssociation struct {
	ConditionID int64 `json:"condition_id"`
	ProjectID   int64 `json:"project_id,omitempty"`
	RoleID      int64 `json:"role_id,omitempty"`
	Priority    int   `json:"priority"`
}

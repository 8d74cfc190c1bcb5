package model

import (
	"fmt"

	"github.com/medicube/radgate/api/model"
)

// Decision is the outcome of a single access evaluation. Reason is always a
// stable machine-readable code so downstream audit logging and tests never
// have to parse prose.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

const (
	ReasonNotProjectMember       = "user_not_project_member"
	ReasonSameInstitution        = "same_institution"
	ReasonInstitutionCrossAccess = "institution_cross_access"
	ReasonInheritedFromStudy     = "inherited_from_study"
	ReasonInheritedFromSeries    = "inherited_from_series"
	ReasonNoMatchingRule         = "no_matching_rule"

	ReasonStudyNotFound    = "study_not_found"
	ReasonSeriesNotFound   = "series_not_found"
	ReasonInstanceNotFound = "instance_not_found"

	ReasonSeriesParentStudyNotFound   = "series_parent_study_not_found"
	ReasonInstanceParentStudyNotFound = "instance_parent_study_not_found"
)

// Condition scopes for rule-based reason codes.
const (
	ScopeProject = "project"
	ScopeRole    = "role"
)

func Allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func Deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// ExplicitAccessReason returns the reason code for a resource-level grant,
// e.g. "explicit_study_access".
func ExplicitAccessReason(level model.ResourceLevel) string {
	switch level {
	case model.LevelStudy:
		return "explicit_study_access"
	case model.LevelSeries:
		return "explicit_series_access"
	default:
		return "explicit_instance_access"
	}
}

func RuleAllowReason(scope string, conditionID int64) string {
	return fmt.Sprintf("rule_based_allow: %s_condition_%d", scope, conditionID)
}

func RuleDenyReason(scope string, conditionID int64) string {
	return fmt.Sprintf("rule_based_deny: %s_condition_%d", scope, conditionID)
}

func RuleLimitReason(scope string, conditionID int64) string {
	return fmt.Sprintf("rule_based_limit: %s_condition_%d", scope, conditionID)
}

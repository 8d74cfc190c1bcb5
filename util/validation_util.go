// api/util/validation_util.go
package util

import (
	"fmt"
	"strings"

	radgate_errors "github.com/medicube/radgate/api/errors"
	"github.com/medicube/radgate/api/model"
)

// ValidateCondition normalizes and sanity-checks an incoming condition
// definition before it reaches the store. Evaluation itself tolerates
// malformed conditions (they simply never match), but admin input gets
// rejected up front so operators see the mistake immediately.
func ValidateCondition(input model.NewAccessCondition) (model.AccessCondition, error) {
	condition, err := input.Normalize()
	if err != nil {
		return model.AccessCondition{}, fmt.Errorf("%w: %v", radgate_errors.ErrInvalidConditionData, err)
	}

	if condition.ResourceType == "" {
		return model.AccessCondition{}, fmt.Errorf("%w: resource type is required", radgate_errors.ErrInvalidConditionData)
	}
	if condition.DicomTag == nil || *condition.DicomTag == "" {
		return model.AccessCondition{}, fmt.Errorf("%w: dicom tag is required", radgate_errors.ErrInvalidConditionData)
	}
	if condition.Value == nil || *condition.Value == "" {
		return model.AccessCondition{}, fmt.Errorf("%w: value is required", radgate_errors.ErrInvalidConditionData)
	}

	if condition.Operator == model.OperatorRange {
		if _, _, found := strings.Cut(*condition.Value, "-"); !found {
			return model.AccessCondition{}, fmt.Errorf("%w: RANGE value must be of the form start-end", radgate_errors.ErrInvalidConditionData)
		}
	}

	return condition, nil
}

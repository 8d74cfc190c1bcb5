package engine

import (
	"strconv"
	"strings"

	"github.com/medicube/radgate/api/model"
)

// EvaluateCondition matches one condition against one resource's resolved
// attribute values. It is total: every malformed or unmatched input resolves
// to false, never a panic. Unknown DICOM tags fail closed.
func EvaluateCondition(cond model.AccessCondition, attrs model.ResourceAttributes) bool {
	if cond.DicomTag == nil {
		return false
	}

	var actual *string
	switch *cond.DicomTag {
	case "00080060", "Modality":
		actual = attrs.Modality
	case "00100020", "PatientID":
		actual = attrs.PatientID
	case "00080020", "StudyDate":
		actual = attrs.StudyDate
	default:
		return false
	}

	if actual == nil || cond.Value == nil {
		return false
	}

	switch cond.Operator {
	case model.OperatorEQ:
		return *actual == *cond.Value
	case model.OperatorNE:
		return *actual != *cond.Value
	case model.OperatorRange:
		// RANGE only applies to the study-date attribute.
		if *cond.DicomTag != "00080020" && *cond.DicomTag != "StudyDate" {
			return false
		}
		return dateInRange(*actual, *cond.Value)
	case model.OperatorContains:
		return strings.Contains(*actual, *cond.Value)
	}
	return false
}

// dateInRange checks START <= actual <= END for a "START-END" range of
// 8-digit dates, inclusive at both bounds.
func dateInRange(actual, rng string) bool {
	startStr, endStr, ok := strings.Cut(rng, "-")
	if !ok {
		return false
	}
	value, err := parseDicomDate(actual)
	if err != nil {
		return false
	}
	start, err := parseDicomDate(strings.TrimSpace(startStr))
	if err != nil {
		return false
	}
	end, err := parseDicomDate(strings.TrimSpace(endStr))
	if err != nil {
		return false
	}
	return start <= value && value <= end
}

// parseDicomDate parses an 8-digit YYYYMMDD string into a comparable integer.
func parseDicomDate(s string) (int, error) {
	if len(s) != 8 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// api/gateway/params.go
package gateway

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/medicube/radgate/api/model"
)

// DICOM tags used in QIDO query parameters and response payloads.
const (
	TagStudyUID        = "0020000D"
	TagSeriesUID       = "0020000E"
	TagInstanceUID     = "00080018"
	TagModality        = "00080060"
	TagPatientID       = "00100020"
	TagStudyDate       = "00080020"
	TagAccessionNumber = "00080050"
	TagPatientName     = "00100010"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Param is a single QIDO query parameter.
type Param struct {
	Key   string
	Value string
}

// BuildPushdownParams derives upstream query parameters from study-level
// allow conditions. This only narrows what the archive returns; the per-item
// decision check downstream stays authoritative, so conditions that cannot
// be expressed as QIDO parameters are simply not pushed.
func BuildPushdownParams(conditions []model.AccessCondition) []Param {
	var params []Param
	seen := map[string]bool{}

	push := func(key, value string) {
		if seen[key] {
			return
		}
		seen[key] = true
		params = append(params, Param{Key: key, Value: value})
	}

	for _, cond := range conditions {
		if cond.ResourceLevel != model.LevelStudy || cond.ConditionType == model.ConditionDeny {
			continue
		}
		if cond.DicomTag == nil || cond.Value == nil {
			continue
		}
		tag, value := *cond.DicomTag, *cond.Value

		switch cond.Operator {
		case model.OperatorEQ:
			switch tag {
			case TagModality, "Modality":
				push(TagModality, value)
			case TagPatientID, "PatientID":
				push(TagPatientID, value)
			case TagAccessionNumber, "AccessionNumber":
				push(TagAccessionNumber, value)
			case TagPatientName, "PatientName":
				push(TagPatientName, value)
			}
		case model.OperatorContains:
			switch tag {
			case TagAccessionNumber, "AccessionNumber":
				push(TagAccessionNumber, "*"+value+"*")
			case TagPatientName, "PatientName":
				push(TagPatientName, "*"+value+"*")
			}
		case model.OperatorRange:
			if tag == TagStudyDate || tag == "StudyDate" {
				push(TagStudyDate, value)
			}
		}
	}
	return params
}

// ParseUserParams converts the caller's query string into QIDO parameters.
// Recognized filters map to their DICOM tags, pagination becomes
// limit/offset, and unrecognized parameters pass through untouched.
// project_id is consumed by the route and never forwarded.
func ParseUserParams(values url.Values) ([]Param, error) {
	var params []Param

	if modality := values.Get("modality"); modality != "" {
		params = append(params, Param{Key: TagModality, Value: modality})
	}
	if patientID := values.Get("patient_id"); patientID != "" {
		params = append(params, Param{Key: TagPatientID, Value: patientID})
	}
	if accession := values.Get("accession_number"); accession != "" {
		params = append(params, Param{Key: TagAccessionNumber, Value: accession})
	}
	if patientName := values.Get("patient_name"); patientName != "" {
		params = append(params, Param{Key: TagPatientName, Value: patientName})
	}
	if studyDate := values.Get("study_date"); studyDate != "" {
		if !isValidStudyDate(studyDate) {
			return nil, fmt.Errorf("invalid study_date %q: expected YYYYMMDD or YYYYMMDD-YYYYMMDD", studyDate)
		}
		params = append(params, Param{Key: TagStudyDate, Value: studyDate})
	}

	page := 1
	if raw := values.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid page %q", raw)
		}
		page = parsed
	}
	pageSize := defaultPageSize
	if raw := values.Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid page_size %q", raw)
		}
		pageSize = parsed
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}
	params = append(params,
		Param{Key: "limit", Value: strconv.Itoa(pageSize)},
		Param{Key: "offset", Value: strconv.Itoa((page - 1) * pageSize)},
	)

	handled := map[string]bool{
		"modality": true, "patient_id": true, "accession_number": true,
		"patient_name": true, "study_date": true,
		"project_id": true, "page": true, "page_size": true,
	}
	for key, vals := range values {
		if handled[key] || len(vals) == 0 || vals[0] == "" {
			continue
		}
		params = append(params, Param{Key: key, Value: vals[0]})
	}

	return params, nil
}

// MergeParams combines pushdown and user parameters. On a key collision the
// user's value wins, since the user is narrowing a query the decision check
// already protects. The result is sorted by key for deterministic URLs.
func MergeParams(pushdown, user []Param) []Param {
	merged := map[string]string{}
	for _, p := range pushdown {
		merged[p.Key] = p.Value
	}
	for _, p := range user {
		merged[p.Key] = p.Value
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	params := make([]Param, 0, len(keys))
	for _, key := range keys {
		params = append(params, Param{Key: key, Value: merged[key]})
	}
	return params
}

// isValidStudyDate accepts a single 8-digit date or an 8-digit date range.
func isValidStudyDate(s string) bool {
	if start, end, found := strings.Cut(s, "-"); found {
		return isEightDigits(start) && isEightDigits(end)
	}
	return isEightDigits(s)
}

func isEightDigits(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ExtractStudyUID pulls the StudyInstanceUID out of a QIDO response item.
// Items without the attribute yield an empty string.
func ExtractStudyUID(item map[string]interface{}) string {
	return extractUID(item, TagStudyUID)
}

func ExtractSeriesUID(item map[string]interface{}) string {
	return extractUID(item, TagSeriesUID)
}

func ExtractInstanceUID(item map[string]interface{}) string {
	return extractUID(item, TagInstanceUID)
}

func extractUID(item map[string]interface{}, tag string) string {
	attr, ok := item[tag].(map[string]interface{})
	if !ok {
		return ""
	}
	values, ok := attr["Value"].([]interface{})
	if !ok || len(values) == 0 {
		return ""
	}
	uid, _ := values[0].(string)
	return uid
}

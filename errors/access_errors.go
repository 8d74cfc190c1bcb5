package errors

import "errors"

var (
	ErrStudyNotFound    = errors.New("study not found")
	ErrSeriesNotFound   = errors.New("series not found")
	ErrInstanceNotFound = errors.New("instance not found")

	ErrConditionNotFound    = errors.New("access condition not found")
	ErrConditionConflict    = errors.New("access condition conflict")
	ErrInvalidConditionData = errors.New("invalid access condition data")

	ErrProjectNotFound = errors.New("project not found")
	ErrRoleNotFound    = errors.New("role not found")

	ErrUnauthorized      = errors.New("unauthorized")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrInternalServer    = errors.New("internal server error")
)

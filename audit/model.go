// api/audit/model.go
package audit

import (
	"time"
)

// AccessLog records a single access decision or administrative action.
// Every gateway item check and every direct decision endpoint call
// produces one entry.
type AccessLog struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	UserID        int64     `json:"user_id"`
	ProjectID     int64     `json:"project_id"`
	Action        string    `json:"action"`
	ResourceLevel string    `json:"resource_level,omitempty"`
	ResourceUID   string    `json:"resource_uid,omitempty"`
	ResourceID    int64     `json:"resource_id,omitempty"`
	AccessGranted bool      `json:"access_granted"`
	Reason        string    `json:"reason,omitempty"`
}

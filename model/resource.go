// api/model/resource.go
package model

import "time"

// ResourceAttributes is the resolved view of the DICOM attributes that rule
// conditions match on. Series and Instance views are always derived from
// their ancestor Study; a nil field means the attribute is absent.
type ResourceAttributes struct {
	Modality  *string `json:"modality,omitempty"`
	StudyDate *string `json:"study_date,omitempty"` // 8-digit YYYYMMDD
	PatientID *string `json:"patient_id,omitempty"`
}

// Study is the root of the imaging hierarchy within a project.
type Study struct {
	ID                int64      `json:"id"`
	ProjectID         int64      `json:"project_id"`
	StudyUID          string     `json:"study_uid"`
	Modality          *string    `json:"modality,omitempty"`
	StudyDate         *time.Time `json:"study_date,omitempty"`
	PatientID         *string    `json:"patient_id,omitempty"`
	DataInstitutionID *int64     `json:"data_institution_id,omitempty"`
}

// Series belongs to exactly one Study; the parent id is immutable once set.
type Series struct {
	ID        int64  `json:"id"`
	StudyID   int64  `json:"study_id"`
	SeriesUID string `json:"series_uid"`
}

// Instance belongs to exactly one Series.
type Instance struct {
	ID          int64  `json:"id"`
	SeriesID    int64  `json:"series_id"`
	InstanceUID string `json:"instance_uid"`
}

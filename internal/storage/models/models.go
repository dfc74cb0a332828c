// Package models defines the persistent records. JSON-shaped payloads are
// stored as datatypes.JSON so report schemas can evolve without migrations.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resume is one uploaded or pasted resume.
type Resume struct {
	ID               string `gorm:"primaryKey;type:char(36)"`
	UserID           string `gorm:"type:varchar(64);index"`
	OriginalFilename string `gorm:"type:varchar(255)"`
	StoragePath      string `gorm:"type:varchar(512)"` // MinIO object key, empty for pasted text
	RawTextMD5       string `gorm:"type:char(32);index"`
	RawText          string `gorm:"type:longtext"`

	ParsedHeader   datatypes.JSON `gorm:"type:json"`
	ParsedSections datatypes.JSON `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobDescription is a job posting a resume was compared against.
type JobDescription struct {
	ID        string `gorm:"primaryKey;type:char(36)"`
	UserID    string `gorm:"type:varchar(64);index"`
	Title     string `gorm:"type:varchar(255)"`
	Content   string `gorm:"type:longtext"`
	CreatedAt time.Time
}

// AnalysisReport is one produced analysis or match payload.
type AnalysisReport struct {
	ID               string  `gorm:"primaryKey;type:char(36)"`
	ResumeID         string  `gorm:"type:char(36);index"`
	JobDescriptionID *string `gorm:"type:char(36);index"`
	Kind             string  `gorm:"type:varchar(16);index"` // analysis or match

	Payload      datatypes.JSON `gorm:"type:json"`
	FromFallback bool

	CreatedAt time.Time
}

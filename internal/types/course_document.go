package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CourseDocumentRecord holds the single persisted course document for
// one (owner, slug) pair. The document payload itself is opaque jsonb
// here; its shape and merge rules live in internal/content. Rows are
// only ever replaced through the merge engine, never by a raw
// overwrite of Doc.
type CourseDocumentRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_course_document_owner_slug" json:"owner_user_id"`
	Owner       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerUserID;references:ID" json:"owner,omitempty"`
	Slug        string         `gorm:"not null;uniqueIndex:idx_course_document_owner_slug;column:slug" json:"slug"`
	Doc         datatypes.JSON `gorm:"column:doc;type:jsonb" json:"doc"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (CourseDocumentRecord) TableName() string { return "course_document" }

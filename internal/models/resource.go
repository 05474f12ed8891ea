package models

import "time"

// ResourceType enumerates the kinds of study material PrepNerdz serves.
type ResourceType string

const (
	ResourceShivaniBooks ResourceType = "SHIVANI_BOOKS"
	ResourceMidSemPaper  ResourceType = "MID_SEM_PAPER"
	ResourceEndSemPaper  ResourceType = "END_SEM_PAPER"
	ResourceImpQuestion  ResourceType = "IMP_QUESTION"
	ResourceImpTopic     ResourceType = "IMP_TOPIC"
	ResourceNotes        ResourceType = "NOTES"
	ResourceSyllabus     ResourceType = "SYLLABUS"
	ResourceLabManual    ResourceType = "LAB_MANUAL"
)

// ResourceTypes lists every known resource type in display order.
var ResourceTypes = []ResourceType{
	ResourceShivaniBooks,
	ResourceMidSemPaper,
	ResourceEndSemPaper,
	ResourceImpQuestion,
	ResourceImpTopic,
	ResourceNotes,
	ResourceSyllabus,
	ResourceLabManual,
}

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	for _, known := range ResourceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Resource is a single uploaded study material.
type Resource struct {
	ID           string       `db:"id" json:"id"`
	Type         ResourceType `db:"type" json:"type"`
	Title        string       `db:"title" json:"title"`
	Description  string       `db:"description" json:"description"`
	Year         string       `db:"year" json:"year"`
	Month        string       `db:"month" json:"month"`
	FileURL      string       `db:"file_url" json:"fileUrl"`
	FileSize     int64        `db:"file_size" json:"fileSize"`
	FileType     string       `db:"file_type" json:"fileType"`
	SubjectID    string       `db:"subject_id" json:"subjectId"`
	UploadedByID string       `db:"uploaded_by_id" json:"uploadedById"`
	Verified     bool         `db:"verified" json:"verified"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`

	Subject    *Subject  `db:"-" json:"subject,omitempty"`
	UploadedBy *Uploader `db:"-" json:"uploadedBy,omitempty"`
}

// Uploader is the public projection of the user who uploaded a resource.
type Uploader struct {
	Username string `json:"username"`
}

// ResourceCreated acknowledges an admin upload.
type ResourceCreated struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *Resource `json:"data"`
}

package storage

import (
	"time"

	"github.com/google/uuid"
)

const (
	ImportStatusSubmitted = "submitted"
	ImportStatusNoRows    = "no_rows"
	ImportStatusFailed    = "failed"
)

type ImportRun struct {
	ID              uuid.UUID `json:"id"`
	Filename        string    `json:"filename"`
	FileSHA256      string    `json:"file_sha256"`
	TotalRows       int       `json:"total_rows"`
	Transformed     int       `json:"transformed"`
	Created         int       `json:"created"`
	Failed          int       `json:"failed"`
	DuplicateGroups int       `json:"duplicate_groups"`
	Status          string    `json:"status"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

package common

import (
	"github.com/google/uuid"
)

// NewJobID generates a unique lead job ID with the "job_" prefix
// Format: job_<uuid>
func NewJobID() string {
	return "job_" + uuid.New().String()
}

// NewProfileID generates a unique profile document ID with the "prof_" prefix
// Format: prof_<uuid>
func NewProfileID() string {
	return "prof_" + uuid.New().String()
}

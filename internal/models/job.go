package models

import (
	"errors"
	"time"
)

// JobStatus represents the state of a lead job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// ErrJobFinished is returned by storage when a write would move a job
// out of a terminal state. Callers racing the pipeline (the stale-job
// sweep, a recover path after completion) treat it as benign.
var ErrJobFinished = errors.New("job already finished")

// LeadJob represents one asynchronous lead-generation run.
//
// Lifecycle: created in pending at submission time (the query is already
// parsed), moved to running by the pipeline goroutine, and finished in
// exactly one of completed/failed. Terminal states are absorbing: storage
// rejects any transition out of them. The orchestrator is the only writer
// of a job's record.
type LeadJob struct {
	ID            string          `json:"id"`
	OriginalQuery string          `json:"original_query"`
	ParsedQuery   StructuredQuery `json:"parsed_query"`
	Provider      string          `json:"llm_provider"` // Which backend parsed the query
	MaxResults    int             `json:"max_results"`
	Status        JobStatus       `json:"status"`
	// Profiles holds the scored result set, populated on completion.
	// Order is collection order; ProfilesFound is its length at completion.
	Profiles      []CandidateProfile `json:"profiles,omitempty"`
	ProfilesFound int                `json:"profiles_found"`
	CreatedAt     time.Time          `json:"created_at"`
	StartedAt     *time.Time         `json:"started_at,omitempty"`
	// LastHeartbeat is refreshed at each pipeline stage boundary; the
	// scheduler fails running jobs whose heartbeat goes stale (process
	// death leaves no other trace).
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	// ErrorMessage contains a concise, user-facing description of why the
	// job failed. Only populated when status is failed.
	ErrorMessage string `json:"error_message,omitempty"`
}

// IsTerminal reports whether the job has reached an absorbing state
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// IsValid reports whether the status is one of the four known states
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

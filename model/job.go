package model

import (
	"time"
)

// Job tracks one asynchronous agent invocation through its lifecycle.
type Job struct {
	JobID     string    `json:"jobId"`
	Status    string    `json:"status"` // pending, processing, completed, failed
	InputText string    `json:"inputText"`
	SessionID string    `json:"sessionId,omitempty"`
	JobType   string    `json:"jobType"`
	Result    string    `json:"result,omitempty"`
	ErrorMsg  string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Job status constants
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

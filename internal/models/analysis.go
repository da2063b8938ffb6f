package models

import "time"

// RunStatus is the lifecycle state of an analysis run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// AnalysisRun tracks one video analysis from submission to result.
type AnalysisRun struct {
	ID         string       `json:"id"`
	Source     string       `json:"source"`
	Mode       CountingMode `json:"mode"`
	Status     RunStatus    `json:"status"`
	FPS        float64      `json:"fps,omitempty"`
	Frames     int64        `json:"frames,omitempty"`
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
}

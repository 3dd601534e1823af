package model

// JobStatus represents the status of a conversion job
type JobStatus string

const (
	// JobStatusPending means the job is built but not started
	JobStatusPending JobStatus = "Pending"

	// JobStatusRunning means the external pitch-shift process is running
	JobStatusRunning JobStatus = "Running"

	// JobStatusPlanned means the job was only printed during a dry run
	JobStatusPlanned JobStatus = "Planned"

	// JobStatusStopped means the run was cancelled while the job was active
	JobStatusStopped JobStatus = "Stopped"

	// JobStatusCompleted means the converted file was written
	JobStatusCompleted JobStatus = "Completed"

	// JobStatusError means the conversion failed
	JobStatusError JobStatus = "Error"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job is currently being converted
func (js JobStatus) IsActive() bool {
	return js == JobStatusRunning
}

// IsFinished returns true if the job reached a terminal state
func (js JobStatus) IsFinished() bool {
	switch js {
	case JobStatusPlanned, JobStatusStopped, JobStatusCompleted, JobStatusError:
		return true
	}
	return false
}

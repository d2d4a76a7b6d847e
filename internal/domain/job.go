package domain

import (
	"encoding/json"
	"fmt"
)

// JobState enumerates job lifecycle states.
type JobState string

const (
	JobQueued     JobState = "queued"
	JobRunning    JobState = "running"
	JobSolved     JobState = "solved"
	JobInfeasible JobState = "infeasible"
	JobFailed     JobState = "failed"
)

// JobStatus is an externally-tagged sum type mirroring
// original_source/crates/jobs: {"status": "<state>", ...}. Only Solved
// carries a result on the wire; Failed carries a message. Infeasible is
// reported bare over the job-status endpoint (spec.md §6: the result
// endpoint only returns a body for Solved).
type JobStatus struct {
	State   JobState
	Result  *SolveResult
	Message string
}

// QueuedStatus, RunningStatus, SolvedStatus, InfeasibleStatus and
// FailedStatus build each JobStatus variant.
func QueuedStatus() JobStatus  { return JobStatus{State: JobQueued} }
func RunningStatus() JobStatus { return JobStatus{State: JobRunning} }

func SolvedStatus(r SolveResult) JobStatus {
	return JobStatus{State: JobSolved, Result: &r}
}

func InfeasibleStatus(r SolveResult) JobStatus {
	return JobStatus{State: JobInfeasible, Result: &r}
}

func FailedStatus(message string) JobStatus {
	return JobStatus{State: JobFailed, Message: message}
}

// MarshalJSON externally tags the status with its discriminant.
func (j JobStatus) MarshalJSON() ([]byte, error) {
	switch j.State {
	case JobSolved:
		return json.Marshal(struct {
			Status string       `json:"status"`
			Result *SolveResult `json:"result,omitempty"`
		}{Status: string(j.State), Result: j.Result})
	case JobFailed:
		return json.Marshal(struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}{Status: string(j.State), Message: j.Message})
	default:
		return json.Marshal(struct {
			Status string `json:"status"`
		}{Status: string(j.State)})
	}
}

// UnmarshalJSON parses the externally-tagged representation.
func (j *JobStatus) UnmarshalJSON(data []byte) error {
	var shape struct {
		Status  string       `json:"status"`
		Result  *SolveResult `json:"result"`
		Message string       `json:"message"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return err
	}
	state := JobState(shape.Status)
	switch state {
	case JobQueued, JobRunning, JobSolved, JobInfeasible, JobFailed:
	default:
		return fmt.Errorf("jobstatus: unknown status %q", shape.Status)
	}
	j.State = state
	j.Result = shape.Result
	j.Message = shape.Message
	return nil
}

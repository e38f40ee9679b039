package engine

// Status is the build pipeline state machine. Progress is derived from the
// current status, never tracked separately.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusDesigning  Status = "designing"
	StatusGenerating Status = "generating"
	StatusValidating Status = "validating"
	StatusDebugging  Status = "debugging"
	StatusRunning    Status = "running"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var progressByStatus = map[Status]int{
	StatusIdle:       0,
	StatusDesigning:  15,
	StatusGenerating: 40,
	StatusValidating: 65,
	StatusDebugging:  80,
	StatusRunning:    90,
	StatusCompleted:  100,
	StatusFailed:     100,
}

// Progress returns the percentage projection of a status. Unknown statuses
// report zero.
func (s Status) Progress() int {
	return progressByStatus[s]
}

// Terminal reports whether the pipeline is done.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

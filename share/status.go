package share

// Status is the lifecycle of a single fetch-backed view.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// StatusOf maps a finished fetch to its view status.
func StatusOf(err error, rows int) Status {
	switch {
	case err != nil:
		return StatusFailed
	case rows == 0:
		return StatusEmpty
	default:
		return StatusReady
	}
}

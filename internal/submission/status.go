// Package submission tracks the lifecycle of one user-initiated write
// (a product save or an order) from Idle through Processing to a terminal
// Success or Error, including the timed return to Idle.
package submission

import (
	"errors"
	"fmt"
)

// Status is the lifecycle stage of a single submission attempt.
type Status int

const (
	Idle Status = iota
	Processing
	Success
	Error
)

var (
	ErrBusy           = errors.New("a submission is already in progress")
	ErrClosed         = errors.New("submission view is closed")
	ErrNothingPending = errors.New("nothing is pending confirmation")
)

var statusNames = [...]string{"idle", "processing", "success", "error"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText renders the status by name in JSON view models.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for i, n := range statusNames {
		if n == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown submission status %q", string(b))
}

// Snapshot is a point-in-time copy of a tracker, safe to hand to views.
type Snapshot struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

package browser

import (
	"fmt"
	"strings"
)

// LaunchAttempt records one failed engine launch.
type LaunchAttempt struct {
	Engine   string
	ExecPath string
	Err      error
}

// LaunchError aggregates every failure from an exhausted launch chain
// so the caller sees all causes, not just the last one.
type LaunchError struct {
	Attempts []LaunchAttempt
}

// Unwrap exposes the attempt errors to errors.Is and errors.As.
func (e *LaunchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		errs = append(errs, attempt.Err)
	}
	return errs
}

func (e *LaunchError) Error() string {
	if len(e.Attempts) == 0 {
		return "no browser engines available to launch"
	}

	var b strings.Builder
	b.WriteString("all browser launch attempts failed: ")
	for i, attempt := range e.Attempts {
		if i > 0 {
			b.WriteString("; ")
		}
		if attempt.ExecPath != "" {
			fmt.Fprintf(&b, "%s (%s): %v", attempt.Engine, attempt.ExecPath, attempt.Err)
		} else {
			fmt.Fprintf(&b, "%s: %v", attempt.Engine, attempt.Err)
		}
	}
	return b.String()
}

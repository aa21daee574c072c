package present

import (
	"sync"

	"github.com/stsysd/reelbook/tracker"
)

// Warning is a recorded OnWarning call.
type Warning struct {
	Message  string           `json:"message" yaml:"message"`
	Severity tracker.Severity `json:"severity" yaml:"severity"`
}

// Recorder collects the warnings raised by a single request or command.
// Other notifications are ignored.
type Recorder struct {
	Nop

	mu       sync.Mutex
	warnings []Warning
}

var _ tracker.Presenter = (*Recorder)(nil)

func (r *Recorder) OnWarning(message string, severity tracker.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Warning{Message: message, Severity: severity})
}

// Warnings returns the recorded warnings of the given severities, or all of
// them when none are given.
func (r *Recorder) Warnings(severities ...tracker.Severity) []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Warning{}
	for _, w := range r.warnings {
		if len(severities) == 0 || containsSeverity(severities, w.Severity) {
			out = append(out, w)
		}
	}
	return out
}

func containsSeverity(list []tracker.Severity, s tracker.Severity) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

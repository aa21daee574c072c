package tracker

import "github.com/stsysd/reelbook/model"

// Severity classifies a warning sent to the presentation layer.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Presenter is notified after every mutation so a view can redraw.
// Calls are made synchronously while the store is locked; implementations
// must not call back into the Store.
type Presenter interface {
	OnProjectsChanged(projects []model.Snapshot)
	OnProjectUpdated(project model.Snapshot)
	OnGlobalStatsChanged(stats model.Stats)
	OnWarning(message string, severity Severity)
	// OnProjectCompleted fires once per INCOMPLETE->COMPLETE transition.
	OnProjectCompleted(project model.Snapshot)
}

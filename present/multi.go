package present

import (
	"github.com/stsysd/reelbook/model"
	"github.com/stsysd/reelbook/tracker"
)

// Multi fans every notification out to several presenters in order.
type Multi []tracker.Presenter

var _ tracker.Presenter = Multi(nil)

func (m Multi) OnProjectsChanged(projects []model.Snapshot) {
	for _, p := range m {
		p.OnProjectsChanged(projects)
	}
}

func (m Multi) OnProjectUpdated(project model.Snapshot) {
	for _, p := range m {
		p.OnProjectUpdated(project)
	}
}

func (m Multi) OnGlobalStatsChanged(stats model.Stats) {
	for _, p := range m {
		p.OnGlobalStatsChanged(stats)
	}
}

func (m Multi) OnWarning(message string, severity tracker.Severity) {
	for _, p := range m {
		p.OnWarning(message, severity)
	}
}

func (m Multi) OnProjectCompleted(project model.Snapshot) {
	for _, p := range m {
		p.OnProjectCompleted(project)
	}
}

// Nop ignores every notification. Embed it to handle only some of them.
type Nop struct{}

var _ tracker.Presenter = Nop{}

func (Nop) OnProjectsChanged([]model.Snapshot) {}
func (Nop) OnProjectUpdated(model.Snapshot)    {}
func (Nop) OnGlobalStatsChanged(model.Stats)   {}
func (Nop) OnWarning(string, tracker.Severity) {}
func (Nop) OnProjectCompleted(model.Snapshot)  {}

// Package present provides Presenter implementations for the tracker.
package present

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/stsysd/reelbook/model"
	"github.com/stsysd/reelbook/tracker"
)

// NewLogger builds the application logger.
func NewLogger(w io.Writer, level string, verbose bool) *log.Logger {
	lvl := ParseLogLevel(level)
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: verbose,
		Prefix:          "reelbook",
	})
}

// ParseLogLevel parses a level name. Unknown names fall back to info.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Logger writes store notifications to a structured logger.
type Logger struct {
	logger *log.Logger
}

var _ tracker.Presenter = (*Logger)(nil)

// NewLoggerPresenter returns a Presenter that logs every notification.
func NewLoggerPresenter(logger *log.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) OnProjectsChanged(projects []model.Snapshot) {
	l.logger.Debug("projects changed", "count", len(projects))
}

func (l *Logger) OnProjectUpdated(project model.Snapshot) {
	l.logger.Debug("project updated", "id", project.ID, "progress", project.Progress)
}

func (l *Logger) OnGlobalStatsChanged(stats model.Stats) {
	l.logger.Debug("stats changed",
		"total", stats.TotalProjects,
		"completed", stats.CompletedProjects,
		"percentage", stats.CompletedPercentage,
	)
}

func (l *Logger) OnWarning(message string, severity tracker.Severity) {
	switch severity {
	case tracker.SeverityError:
		l.logger.Error(message)
	case tracker.SeverityWarning:
		l.logger.Warn(message)
	default:
		l.logger.Info(message)
	}
}

func (l *Logger) OnProjectCompleted(project model.Snapshot) {
	l.logger.Info("project complete", "id", project.ID, "name", project.Name)
}

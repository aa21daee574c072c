package present

import (
	"fmt"
	"io"

	"github.com/stsysd/reelbook/model"
	"github.com/stsysd/reelbook/tracker"
)

// Console prints user facing notifications for the command line.
// Warnings go to errW, completion messages to outW. List and stats
// notifications are left to the command that requested them.
type Console struct {
	Nop

	outW io.Writer
	errW io.Writer
	// Quiet suppresses info level messages.
	Quiet bool
}

var _ tracker.Presenter = (*Console)(nil)

// NewConsole returns a Console writing to the given streams.
func NewConsole(outW, errW io.Writer) *Console {
	return &Console{outW: outW, errW: errW}
}

func (c *Console) OnWarning(message string, severity tracker.Severity) {
	switch severity {
	case tracker.SeverityError:
		fmt.Fprintf(c.errW, "Error: %s\n", message)
	case tracker.SeverityWarning:
		fmt.Fprintf(c.errW, "Warning: %s\n", message)
	default:
		if !c.Quiet {
			fmt.Fprintln(c.errW, message)
		}
	}
}

func (c *Console) OnProjectCompleted(project model.Snapshot) {
	fmt.Fprintf(c.outW, "Project %q is now complete!\n", project.Name)
}

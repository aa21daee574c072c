package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"

	"github.com/stsysd/reelbook/model"
)

const timeLayout = "2006-01-02 15:04 MST"

// status returns the one word state shown in listings.
func status(p model.Snapshot) string {
	switch {
	case p.Completed:
		return "Complete"
	case p.Progress == 0:
		return "Not started"
	default:
		return "In progress"
	}
}

func renderList(w io.Writer, projects []model.Snapshot) error {
	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, "No projects yet. Add one with: reelbook add NAME DATE")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tNAME\tPROGRESS\tSTATUS\tID")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%d%%\t%s\t%s\n", p.Date, p.Name, p.Progress, status(p), p.ID)
	}
	return tw.Flush()
}

func renderProject(w io.Writer, p model.Snapshot, tag language.Tag) error {
	fmt.Fprintln(w, p.Name)
	fmt.Fprintf(w, "%-11s%s\n", "ID:", p.ID)
	fmt.Fprintf(w, "%-11s%s\n", "Date:", p.DateFormatted)
	fmt.Fprintf(w, "%-11s%d%%\n", "Progress:", p.Progress)
	fmt.Fprintf(w, "%-11s%s\n", "Status:", status(p))
	fmt.Fprintln(w, "Tasks:")
	for _, key := range model.AllTaskKeys {
		done, _ := p.Tasks.Get(key)
		mark := " "
		if done {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %s\n", mark, key.Label(tag))
	}
	fmt.Fprintf(w, "%-11s%s\n", "Created:", p.CreatedAt.UTC().Format(timeLayout))
	if p.LastModified != nil {
		fmt.Fprintf(w, "%-11s%s\n", "Updated:", p.LastModified.UTC().Format(timeLayout))
	}
	return nil
}

func renderStats(w io.Writer, stats model.Stats) error {
	_, err := fmt.Fprintf(w, "%-21s%d\n%-21s%d\n%-21s%d%%\n",
		"Total projects:", stats.TotalProjects,
		"Completed projects:", stats.CompletedProjects,
		"Completion:", stats.CompletedPercentage,
	)
	return err
}

func renderTaskUpdate(w io.Writer, u model.TaskUpdate, key model.TaskKey, done bool, tag language.Tag) error {
	state := "done"
	if !done {
		state = "not done"
	}
	_, err := fmt.Fprintf(w, "%s: %s marked %s (%d%%)\n", u.Project.Name, key.Label(tag), state, u.Project.Progress)
	return err
}

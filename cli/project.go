package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stsysd/reelbook/model"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <date>",
		Short: "Add a wedding project",
		Long: `Add a wedding project with all four tasks not done.

The date is YYYY-MM-DD or an RFC3339 timestamp.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, cmd, args[0], args[1])
		},
	}
}

func runAdd(opts *RootOptions, cmd *cobra.Command, name, date string) error {
	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := sess.store.Create(cmd.Context(), name, date)
	if err != nil {
		return sess.fail(err)
	}
	project, _ := sess.store.FindByID(id)

	return sess.formatter.Success(project, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, project.ID)
		return err
	})
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects by wedding date",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	projects := sess.store.Projects()
	if projects == nil {
		projects = []model.Snapshot{}
	}

	return sess.formatter.Success(projects, func(w io.Writer) error {
		return renderList(w, projects)
	})
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}
}

func runShow(opts *RootOptions, cmd *cobra.Command, rawID string) error {
	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := model.ParseProjectID(rawID)
	if err != nil {
		return sess.fail(err)
	}
	project, ok := sess.store.FindByID(id)
	if !ok {
		return sess.fail(&model.NotFoundError{ID: id})
	}

	return sess.formatter.Success(project, func(w io.Writer) error {
		return renderProject(w, project, opts.config.Language())
	})
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show overall completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	stats := sess.store.GlobalStats()
	return sess.formatter.Success(stats, func(w io.Writer) error {
		return renderStats(w, stats)
	})
}

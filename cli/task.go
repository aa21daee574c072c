package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/stsysd/reelbook/model"
)

// TaskOptions holds flags for the task command.
type TaskOptions struct {
	Undo bool
}

// NewTaskCommand creates the task command.
func NewTaskCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TaskOptions{}

	cmd := &cobra.Command{
		Use:   "task <id> <task>",
		Short: "Mark a task done",
		Long: `Mark one of a project's tasks as done, or not done with --undo.

Tasks: cull, speeches, featureFilm, shortFilm.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(rootOpts, opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&opts.Undo, "undo", false, "mark the task as not done")

	return cmd
}

func runTask(rootOpts *RootOptions, opts *TaskOptions, cmd *cobra.Command, rawID, task string) error {
	sess, err := rootOpts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := model.ParseProjectID(rawID)
	if err != nil {
		return sess.fail(err)
	}
	done := !opts.Undo
	update, err := sess.store.SetTask(cmd.Context(), id, task, done)
	if err != nil {
		return sess.fail(err)
	}

	return sess.formatter.Success(update, func(w io.Writer) error {
		return renderTaskUpdate(w, update, model.TaskKey(task), done, rootOpts.config.Language())
	})
}

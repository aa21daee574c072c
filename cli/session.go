package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/stsysd/reelbook/model"
	"github.com/stsysd/reelbook/present"
	"github.com/stsysd/reelbook/store"
	"github.com/stsysd/reelbook/tracker"
)

// session is an opened project store for the duration of one command.
type session struct {
	store     *tracker.Store
	slot      store.Slot
	formatter *OutputFormatter
}

func (s *session) Close() error {
	return s.slot.Close()
}

func (o *RootOptions) newFormatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// openSession opens the configured backend and loads the project store.
// Notifications go to the console; structured output keeps stdout clean.
func (o *RootOptions) openSession(cmd *cobra.Command) (*session, error) {
	return o.openSessionWith(cmd, nil)
}

func (o *RootOptions) openSessionWith(cmd *cobra.Command, presenter tracker.Presenter) (*session, error) {
	formatter := o.newFormatter(cmd)
	cfg := o.config

	slot, err := store.OpenSlot(cfg.Backend, cfg.DataDir)
	if err != nil {
		_ = formatter.Error(ErrCodeStorage, err.Error())
		return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}
	adapter, err := store.NewAdapter(slot, cfg.Slot, cfg.QuotaBytes)
	if err != nil {
		slot.Close()
		return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}
	formatter.VerboseLog("Using %s backend in %s (slot %s)", cfg.Backend, cfg.DataDir, adapter.SlotName())

	if presenter == nil {
		out := cmd.OutOrStdout()
		if o.Format != "text" {
			out = cmd.ErrOrStderr()
		}
		console := present.NewConsole(out, cmd.ErrOrStderr())
		console.Quiet = o.Format != "text"
		presenter = console
		if o.Verbose {
			presenter = present.Multi{console, present.NewLoggerPresenter(o.logger)}
		}
	}

	s := tracker.Open(cmd.Context(), adapter, tracker.WithPresenter(presenter))
	return &session{store: s, slot: slot, formatter: formatter}, nil
}

// fail reports a store error and converts it into an ExitError.
func (s *session) fail(err error) error {
	code := ErrCodeGeneric
	var (
		verr    *model.ValidationError
		invalid *model.InvalidTaskKeyError
	)
	switch {
	case errors.As(err, &verr):
		code = ErrCodeValidation
	case errors.Is(err, model.ErrProjectNotFound):
		code = ErrCodeNotFound
	case errors.As(err, &invalid):
		code = ErrCodeInvalidTask
	}
	_ = s.formatter.Error(code, err.Error())
	return WrapExitError(ExitFailure, code, err)
}

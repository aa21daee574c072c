package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/stsysd/reelbook/api"
	"github.com/stsysd/reelbook/present"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	Port string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API and chart endpoints.

Requests under /api/ need the X-API-Key header to match REELBOOK_API_KEY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Port, "port", "p", rootOpts.config.Port, "listen port")

	return cmd
}

func runServe(rootOpts *RootOptions, opts *ServeOptions, cmd *cobra.Command) error {
	cfg := rootOpts.config
	if err := cfg.RequireAPIKey(); err != nil {
		return WrapExitError(ExitCommandError, "cannot start server", err)
	}
	cfg.Port = opts.Port

	sess, err := rootOpts.openSessionWith(cmd, present.NewLoggerPresenter(rootOpts.logger))
	if err != nil {
		return err
	}
	defer sess.Close()

	server := api.NewServer(sess.store, cfg, rootOpts.logger)
	return server.Run(cmd.Context(), net.JoinHostPort("", cfg.Port))
}

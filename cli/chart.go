package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stsysd/reelbook/chart"
)

// ChartOptions holds flags for the chart command.
type ChartOptions struct {
	Output string
	Kind   string // "doughnut" | "bars" | "calendar"
	Year   int
}

// NewChartCommand creates the chart command.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a completion chart as SVG",
		Long: `Render the overall completion doughnut, one progress bar per
project with --kind bars, or a year of wedding dates with --kind calendar.
The SVG is written to stdout unless -o is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&opts.Kind, "kind", "doughnut", "chart kind (doughnut|bars|calendar)")
	cmd.Flags().IntVar(&opts.Year, "year", 0, "calendar year (default: current year)")

	return cmd
}

func runChart(rootOpts *RootOptions, opts *ChartOptions, cmd *cobra.Command) error {
	var svg string
	switch opts.Kind {
	case "doughnut", "bars", "calendar":
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid chart kind %q: must be doughnut, bars or calendar", opts.Kind))
	}

	sess, err := rootOpts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	switch opts.Kind {
	case "bars":
		svg = chart.GenerateProgressBarsSVG(sess.store.Projects(), nil)
	case "calendar":
		year := opts.Year
		if year == 0 {
			year = time.Now().Year()
		}
		o := chart.DefaultCalendarOptions()
		o.Title = fmt.Sprintf("Weddings in %d", year)
		svg = chart.GenerateCalendarSVG(sess.store.Projects(), year, o)
	default:
		o := chart.DefaultDoughnutOptions()
		o.Title = "Project Completion"
		svg = chart.GenerateDoughnutSVG(sess.store.GlobalStats(), o)
	}

	if opts.Output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), svg+"\n")
		return err
	}

	if err := os.WriteFile(opts.Output, []byte(svg), 0644); err != nil {
		_ = sess.formatter.Error(ErrCodeWriteFailed, err.Error())
		return WrapExitError(ExitCommandError, "failed to write chart", err)
	}
	sess.formatter.VerboseLog("Wrote %s", opts.Output)
	return nil
}

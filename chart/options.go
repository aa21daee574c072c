// Package chart renders completion charts as SVG strings.
package chart

// Options configures rendering parameters.
type Options struct {
	Size       int      // doughnut diameter, or bar width (px)
	Thickness  int      // ring or bar thickness (px)
	FontSize   int      // font size for the main label (px)
	FontFamily string   // font family for labels
	Colors     []string // [completed, in progress]
	Title      string   // optional title, rendered as a tooltip
}

const (
	textColor  = "#333333"
	mutedColor = "#777"
	fontFamily = "'Segoe UI', Tahoma, Geneva, Verdana, sans-serif"
)

// DefaultDoughnutOptions returns the options used when nil is passed to
// GenerateDoughnutSVG.
func DefaultDoughnutOptions() *Options {
	return &Options{
		Size:       200,
		Thickness:  30,
		FontSize:   24,
		FontFamily: fontFamily,
		Colors:     []string{"#4caf50", "#e0e0e0"},
	}
}

// DefaultBarOptions returns the options used when nil is passed to
// GenerateProgressBarsSVG.
func DefaultBarOptions() *Options {
	return &Options{
		Size:       400,
		Thickness:  12,
		FontSize:   12,
		FontFamily: fontFamily,
		Colors:     []string{"#4caf50", "#e0e0e0"},
	}
}

func (o *Options) color(i int, fallback string) string {
	if i < len(o.Colors) && o.Colors[i] != "" {
		return o.Colors[i]
	}
	return fallback
}

// DefaultCalendarOptions returns the options used when nil is passed to
// GenerateCalendarSVG. Size is the day cell size and Thickness the gap
// between cells.
func DefaultCalendarOptions() *Options {
	return &Options{
		Size:       12,
		Thickness:  2,
		FontSize:   10,
		FontFamily: fontFamily,
		Colors:     []string{"#4caf50", "#ff9800", "#ebedf0"},
	}
}

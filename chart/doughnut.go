package chart

import (
	"fmt"
	"html"
	"strings"

	"github.com/stsysd/reelbook/model"
)

// GenerateDoughnutSVG draws the global completion ratio as a ring with the
// percentage in the centre. The arc uses pathLength="100" so the percentage
// is used directly as the dash length.
func GenerateDoughnutSVG(stats model.Stats, opts *Options) string {
	if opts == nil {
		opts = DefaultDoughnutOptions()
	}

	pct := min(max(stats.CompletedPercentage, 0), 100)
	size := opts.Size
	c := size / 2
	r := (size - opts.Thickness) / 2
	legendTop := size + 8
	legendRow := opts.FontSize/2 + 6
	height := legendTop + 2*legendRow

	completedColor := opts.color(0, "#4caf50")
	remainingColor := opts.color(1, "#e0e0e0")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", size, height))
	sb.WriteString(fmt.Sprintf(`  <style>.pct{font-family:%s;font-size:%dpx;font-weight:bold;fill:%s}.label{font-family:%s;font-size:%dpx;fill:%s}</style>`+"\n",
		opts.FontFamily, opts.FontSize, textColor, opts.FontFamily, opts.FontSize/2, mutedColor))
	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <title>%s</title>`+"\n", html.EscapeString(opts.Title)))
	}

	// 背景のリングが未完了分を表す
	sb.WriteString(fmt.Sprintf(`  <circle cx="%d" cy="%d" r="%d" fill="none" stroke="%s" stroke-width="%d" data-label="In Progress" data-value="%d"/>`+"\n",
		c, c, r, remainingColor, opts.Thickness, 100-pct))
	if pct > 0 {
		sb.WriteString(fmt.Sprintf(`  <circle cx="%d" cy="%d" r="%d" fill="none" stroke="%s" stroke-width="%d" pathLength="100" stroke-dasharray="%d %d" transform="rotate(-90 %d %d)" data-label="Completed" data-value="%d"/>`+"\n",
			c, c, r, completedColor, opts.Thickness, pct, 100-pct, c, c, pct))
	}

	sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" class="pct">%d%%</text>`+"\n",
		c, c, pct))
	sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" class="label">Complete</text>`+"\n",
		c, c+opts.FontSize))

	// 凡例
	for i, entry := range []struct {
		label string
		color string
	}{
		{"Completed", completedColor},
		{"In Progress", remainingColor},
	} {
		y := legendTop + i*legendRow
		sb.WriteString(fmt.Sprintf(`  <rect x="0" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			y, opts.FontSize/2, opts.FontSize/2, entry.color))
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="label">%s</text>`+"\n",
			opts.FontSize, y+opts.FontSize/2, entry.label))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

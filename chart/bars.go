package chart

import (
	"fmt"
	"html"
	"strings"

	"github.com/stsysd/reelbook/model"
)

// GenerateProgressBarsSVG draws one horizontal progress bar per project in
// the given order. It returns an empty string when there are no projects.
func GenerateProgressBarsSVG(projects []model.Snapshot, opts *Options) string {
	if opts == nil {
		opts = DefaultBarOptions()
	}

	if len(projects) == 0 {
		return ""
	}

	const padding = 4
	rowHeight := opts.FontSize + padding + opts.Thickness + 2*padding
	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 2*padding
	}
	width := opts.Size
	height := titleHeight + len(projects)*rowHeight

	doneColor := opts.color(0, "#4caf50")
	trackColor := opts.color(1, "#e0e0e0")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height))
	sb.WriteString(fmt.Sprintf(`  <style>.label{font-family:%s;font-size:%dpx;fill:%s}.title{font-family:%s;font-size:%dpx;fill:%s;font-weight:bold}</style>`+"\n",
		opts.FontFamily, opts.FontSize, textColor, opts.FontFamily, opts.FontSize, textColor))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="0" y="%d" class="title">%s</text>`+"\n",
			opts.FontSize, html.EscapeString(opts.Title)))
	}

	for i, p := range projects {
		progress := min(max(p.Progress, 0), 100)
		top := titleHeight + i*rowHeight
		barY := top + opts.FontSize + padding

		label := fmt.Sprintf("%s (%s) %d%%", p.Name, p.DateFormatted, progress)
		sb.WriteString(fmt.Sprintf(`  <text x="0" y="%d" class="label">%s</text>`+"\n",
			top+opts.FontSize, html.EscapeString(label)))

		sb.WriteString(fmt.Sprintf(`  <g data-id="%s" data-progress="%d" data-completed="%t">`+"\n",
			html.EscapeString(p.ID.String()), progress, p.Completed))
		sb.WriteString(fmt.Sprintf(`    <rect x="0" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			barY, width, opts.Thickness, trackColor))
		if progress > 0 {
			sb.WriteString(fmt.Sprintf(`    <rect x="0" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				barY, width*progress/100, opts.Thickness, doneColor))
		}
		sb.WriteString(`  </g>` + "\n")
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

package chart

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/stsysd/reelbook/model"
)

// calendarDay collects the weddings that fall on one day.
type calendarDay struct {
	names   []string
	pending int
}

// GenerateCalendarSVG draws a year of wedding dates as a week-column grid,
// one cell per day. Days with weddings still in post-production use the
// second color, days whose films are all delivered use the first.
func GenerateCalendarSVG(projects []model.Snapshot, year int, opts *Options) string {
	if opts == nil {
		opts = DefaultCalendarOptions()
	}

	days := make(map[string]*calendarDay)
	for _, p := range projects {
		if p.Date.Time().Year() != year {
			continue
		}
		key := p.Date.String()
		d, ok := days[key]
		if !ok {
			d = &calendarDay{}
			days[key] = d
		}
		d.names = append(d.names, p.Name)
		if !p.Completed {
			d.pending++
		}
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	// 1列目は日曜始まり
	firstSunday := start.AddDate(0, 0, -int(start.Weekday()))
	weeks := int(end.Sub(firstSunday).Hours()/24)/7 + 1

	cell := opts.Size
	gap := opts.Thickness
	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 8
	}
	gridTop := titleHeight + opts.FontSize + 4
	width := weeks*(cell+gap) + gap
	height := gridTop + 7*(cell+gap) + gap

	doneColor := opts.color(0, "#4caf50")
	pendingColor := opts.color(1, "#ff9800")
	emptyColor := opts.color(2, "#ebedf0")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height))
	sb.WriteString(fmt.Sprintf(`  <style>.label{font-family:%s;font-size:%dpx;fill:%s}.title{font-family:%s;font-size:%dpx;fill:%s;font-weight:bold}</style>`+"\n",
		opts.FontFamily, opts.FontSize, mutedColor, opts.FontFamily, opts.FontSize, textColor))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="title">%s</text>`+"\n",
			gap, opts.FontSize, html.EscapeString(opts.Title)))
	}

	// 月ラベル
	lastMonth := time.Month(0)
	for w := range weeks {
		current := firstSunday.AddDate(0, 0, w*7)
		if current.Year() != year {
			current = start
		}
		if current.Day() <= 7 && current.Month() != lastMonth {
			x := gap + w*(cell+gap)
			sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="label">%s</text>`+"\n",
				x, titleHeight+opts.FontSize, current.Format("Jan")))
			lastMonth = current.Month()
		}
	}

	for w := range weeks {
		for i := range 7 {
			current := firstSunday.AddDate(0, 0, w*7+i)
			if current.Year() != year {
				continue
			}
			key := current.Format("2006-01-02")
			x := gap + w*(cell+gap)
			y := gridTop + gap + i*(cell+gap)

			d, ok := days[key]
			if !ok {
				sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" data-date="%s"/>`+"\n",
					x, y, cell, cell, emptyColor, key))
				continue
			}

			fill := doneColor
			if d.pending > 0 {
				fill = pendingColor
			}
			sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" data-date="%s" data-count="%d" data-pending="%d">`+"\n",
				x, y, cell, cell, fill, key, len(d.names), d.pending))
			sb.WriteString(fmt.Sprintf(`    <title>%s: %s</title>`+"\n",
				current.Format("January 2, 2006"), html.EscapeString(strings.Join(d.names, ", "))))
			sb.WriteString(`  </rect>` + "\n")
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

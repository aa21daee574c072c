package chart

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stsysd/reelbook/model"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGenerateDoughnutSVG_Golden(t *testing.T) {
	svg := GenerateDoughnutSVG(model.Stats{TotalProjects: 2, CompletedProjects: 1, CompletedPercentage: 50}, nil)

	newGoldie(t).Assert(t, "doughnut_half", []byte(svg))
}

func TestGenerateDoughnutSVG(t *testing.T) {
	tests := []struct {
		description string
		stats       model.Stats
		wantArc     bool
		wantDash    string
		wantText    string
	}{
		{
			description: "no projects",
			stats:       model.Stats{},
			wantArc:     false,
			wantText:    ">0%<",
		},
		{
			description: "one third complete",
			stats:       model.Stats{TotalProjects: 3, CompletedProjects: 1, CompletedPercentage: 33},
			wantArc:     true,
			wantDash:    `stroke-dasharray="33 67"`,
			wantText:    ">33%<",
		},
		{
			description: "all complete",
			stats:       model.Stats{TotalProjects: 4, CompletedProjects: 4, CompletedPercentage: 100},
			wantArc:     true,
			wantDash:    `stroke-dasharray="100 0"`,
			wantText:    ">100%<",
		},
		{
			description: "out of range is clamped",
			stats:       model.Stats{CompletedPercentage: 140},
			wantArc:     true,
			wantDash:    `stroke-dasharray="100 0"`,
			wantText:    ">100%<",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			svg := GenerateDoughnutSVG(tt.stats, nil)

			if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
				t.Fatalf("expected an svg document, got %q", svg)
			}
			if got := strings.Contains(svg, `data-label="Completed"`); got != tt.wantArc {
				t.Errorf("completed arc present = %v, want %v", got, tt.wantArc)
			}
			if tt.wantDash != "" && !strings.Contains(svg, tt.wantDash) {
				t.Errorf("expected %s in svg", tt.wantDash)
			}
			if !strings.Contains(svg, tt.wantText) {
				t.Errorf("expected centre text %s", tt.wantText)
			}
			if !strings.Contains(svg, ">Complete<") {
				t.Error("expected Complete caption")
			}
		})
	}
}

func TestGenerateDoughnutSVG_Options(t *testing.T) {
	opts := &Options{
		Size:       100,
		Thickness:  10,
		FontSize:   16,
		FontFamily: "serif",
		Colors:     []string{"#000000"},
		Title:      "Smith & Jones",
	}

	svg := GenerateDoughnutSVG(model.Stats{TotalProjects: 1, CompletedProjects: 1, CompletedPercentage: 100}, opts)

	for _, want := range []string{
		`<svg width="100"`,
		`r="45"`,
		`stroke="#000000"`,
		// 指定のない色は既定値
		`stroke="#e0e0e0"`,
		`font-family:serif`,
		`<title>Smith &amp; Jones</title>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected %q in svg", want)
		}
	}
}

func TestGenerateProgressBarsSVG_Golden(t *testing.T) {
	projects := []model.Snapshot{
		{ID: "a", Name: "Smith Wedding", DateFormatted: "June 1, 2025", Progress: 50},
		{ID: "b", Name: "Jones & Co", DateFormatted: "April 12, 2025", Progress: 100, Completed: true},
		{ID: "c", Name: "Lee Wedding", DateFormatted: "July 4, 2025", Progress: 0},
	}

	svg := GenerateProgressBarsSVG(projects, nil)

	newGoldie(t).Assert(t, "progress_bars", []byte(svg))
}

func TestGenerateProgressBarsSVG_Empty(t *testing.T) {
	if svg := GenerateProgressBarsSVG(nil, nil); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestGenerateProgressBarsSVG_Title(t *testing.T) {
	opts := DefaultBarOptions()
	opts.Title = "<Season>"
	projects := []model.Snapshot{{ID: "a", Name: "A", DateFormatted: "June 1, 2025", Progress: 75}}

	svg := GenerateProgressBarsSVG(projects, opts)

	if !strings.Contains(svg, `class="title">&lt;Season&gt;</text>`) {
		t.Error("expected escaped title")
	}
	if !strings.Contains(svg, `width="300" height="12"`) {
		t.Error("expected a 75% bar of the 400px track")
	}
	if !strings.Contains(svg, `data-progress="75"`) {
		t.Error("expected data-progress attribute")
	}
}

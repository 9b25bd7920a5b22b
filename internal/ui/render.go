package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/seeder"
)

// RenderReport renders one line per check followed by a summary line.
func RenderReport(p *Palette, r *seeder.Report) string {
	var b strings.Builder

	b.WriteString(p.Title("Verification"))
	b.WriteString("\n")

	passed := 0
	for _, c := range r.Checks {
		mark := p.Err("✗")
		if c.Passed {
			mark = p.OK("✓")
			passed++
		}
		fmt.Fprintf(&b, "%s %-8s %s\n", mark, c.Name, p.Help(c.Detail))
	}

	summary := fmt.Sprintf("%d/%d checks passed", passed, len(r.Checks))
	if r.OK() {
		b.WriteString("\n" + p.OK(summary) + "\n")
	} else {
		b.WriteString("\n" + p.Err(summary) + "\n")
	}
	return b.String()
}

// RenderHistory renders journal entries, newest first.
func RenderHistory(p *Palette, runs []*models.SeedRun) string {
	if len(runs) == 0 {
		return p.Help("no seed runs recorded") + "\n"
	}

	var b strings.Builder
	b.WriteString(p.Title("Seed runs"))
	b.WriteString("\n")

	for _, run := range runs {
		var status string
		switch run.Status {
		case models.RunSucceeded:
			status = p.OK(string(run.Status))
		case models.RunFailed:
			status = p.Err(string(run.Status))
		default:
			status = p.Warn(string(run.Status))
		}

		fmt.Fprintf(&b, "#%-4d %s  %s  %s/%s  %s\n",
			run.Sequence,
			run.StartedAt.Local().Format(time.DateTime),
			status,
			run.Target,
			run.Database,
			p.Help(run.Duration().Round(time.Millisecond).String()),
		)
		if run.Status == models.RunFailed {
			fmt.Fprintf(&b, "      at %s: %s\n", run.FailedStep, run.Error)
		}
	}
	return b.String()
}

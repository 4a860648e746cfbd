package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar       *progressbar.ProgressBar
	action    string
	okLabel   string
	failLabel string
}

// NewCheckProgressBar creates a progress bar counting conforming and drifted specs
func NewCheckProgressBar(count int) *ProgressBar {
	return NewProgressBar(count, "Checking specs: ", "conforming", "drifted")
}

// NewScaffoldProgressBar creates a progress bar counting scaffolded and failed specs
func NewScaffoldProgressBar(count int) *ProgressBar {
	return NewProgressBar(count, "Scaffolding: ", "done", "failed")
}

// NewProgressBar creates a new progress bar
func NewProgressBar(count int, action, okLabel, failLabel string) *ProgressBar {
	p := &ProgressBar{
		action:    action,
		okLabel:   okLabel,
		failLabel: failLabel,
	}
	p.bar = progressbar.NewOptions(count,
		progressbar.OptionSetDescription(p.describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return p
}

// Update updates the progress bar with success and failure counts
func (p *ProgressBar) Update(okCount, failCount int) {
	p.bar.Set(okCount + failCount)
	p.bar.Describe(p.describe(okCount, failCount))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}

func (p *ProgressBar) describe(okCount, failCount int) string {
	return color.CyanString("%s", p.action) +
		color.GreenString("[%s: %d", p.okLabel, okCount) +
		" | " +
		color.RedString("%s: %d]", p.failLabel, failCount)
}

package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"btt/internal/config"
	"btt/internal/domain"
	"btt/internal/storage"
)

// DriftViewer displays drifted test files in an interactive TUI
type DriftViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewDriftViewer creates a new DriftViewer
func NewDriftViewer(cfg *config.Config, st storage.Storage) *DriftViewer {
	return &DriftViewer{
		config:  cfg,
		storage: st,
	}
}

// DriftedResults returns the indexes of the report details worth viewing
func DriftedResults(report *domain.CheckReport) []int {
	var indexes []int
	for i, result := range report.Details {
		if result.Errored() || len(result.Entries) > 0 {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// View displays drifted test files in an interactive TUI
func (dv *DriftViewer) View(report *domain.CheckReport) error {
	drifted := DriftedResults(report)
	if len(drifted) == 0 {
		color.Green("✓ No structural drift found!")
		return nil
	}

	// Create the application
	app := tview.NewApplication()

	// Create list for drifted files (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	// Function to get formatted text for a list item
	getListItemText := func(item int) string {
		result := report.Details[drifted[item]]
		name := dv.relative(result.TestPath)
		if result.Resolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", item+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", item+1, name)
	}

	for i := range drifted {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	// Set list colors for better visibility
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Create stats header view (shows spec and test file paths)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Create text view for drift details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// List on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for _, index := range drifted {
			if !report.Details[index].Resolved {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" Drifted Specs (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(drifted), unresolved))
	}
	updateHeader()

	updateDetails := func() {
		item := list.GetCurrentItem()
		if item >= 0 && item < len(drifted) {
			result := report.Details[drifted[item]]
			statsView.SetText(dv.formatStats(result))
			detailsView.SetText(FormatDriftDetails(result))
			detailsView.ScrollToBeginning()
		}
	}

	var saveErr error
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				item := list.GetCurrentItem()
				if item >= 0 && item < len(drifted) {
					index := drifted[item]
					report.Details[index].Resolved = !report.Details[index].Resolved
					list.SetItemText(item, getListItemText(item), "")
					updateHeader()
					updateDetails()
					if err := dv.storage.SaveReport(report); err != nil {
						saveErr = err
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("save resolved status: %w", saveErr)
	}
	return nil
}

// FormatDriftDetails formats the entries of a result using tview color tags
func FormatDriftDetails(result domain.CheckResult) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	if result.TestFileMissing {
		fmt.Fprintf(w, "[red]Test file does not exist[white]\n\n")
	}
	if result.ErrorMessage != "" {
		fmt.Fprintf(w, "[red]✗ Check failed:[white]\n%s\n\n", tview.Escape(result.ErrorMessage))
	}

	if len(result.Entries) > 0 {
		fmt.Fprintf(w, "[yellow]Entries (%d):[white]\n", len(result.Entries))
	}
	for _, entry := range result.Entries {
		tag := "red"
		if entry.Severity == domain.SeverityWarning {
			tag = "yellow"
		}
		location := ""
		if entry.Line > 0 {
			location = fmt.Sprintf("line %d", entry.Line)
		}
		fmt.Fprintf(w, "  [%s]%s[white]\t/%s\t[gray]%s[white]\n",
			tag, entry.Kind, tview.Escape(strings.Join(entry.Path, "/")), location)
	}

	if len(result.Entries) > 0 {
		fmt.Fprintf(w, "\n[yellow]Details:[white]\n")
		for _, entry := range result.Entries {
			fmt.Fprintf(w, "  %s\n", tview.Escape(entry.String()))
		}
	}

	w.Flush()
	return builder.String()
}

func (dv *DriftViewer) formatStats(result domain.CheckResult) string {
	return fmt.Sprintf("[cyan]spec:[white] [yellow]%s[white]\n[cyan]test:[white] [yellow]%s[white]\n",
		dv.relative(result.TreePath), dv.relative(result.TestPath))
}

func (dv *DriftViewer) relative(path string) string {
	return (&Formatter{config: dv.config}).relative(path)
}

package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/fatih/color"

	"btt/internal/config"
	"btt/internal/domain"
	"btt/internal/treespec"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{
		config: cfg,
		out:    color.Output,
	}
}

// SetOutput redirects everything the formatter prints
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintCheckSummary displays the statistics of a check run
func (f *Formatter) PrintCheckSummary(report *domain.CheckReport) {
	meta := report.Meta
	cyan := color.New(color.FgCyan)
	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	// Print header
	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                   Structural Check Statistics                 ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	separator := "├─────────────────────────────────┼─────────────────────────────┤"
	row := func(label string, c *color.Color, value any) {
		fmt.Fprintf(f.out, "│ %-31s │ ", label)
		c.Fprintf(f.out, "%-27v", value)
		fmt.Fprintln(f.out, " │")
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Total Specs", white, meta.TotalSpecs)
	fmt.Fprintln(f.out, separator)
	row("Conforming Specs", green, meta.ConformingSpecs)
	fmt.Fprintln(f.out, separator)
	row("Drifted Specs", red, meta.DriftedSpecs)
	fmt.Fprintln(f.out, separator)
	row("Errored Specs", yellow, meta.ErroredSpecs)
	fmt.Fprintln(f.out, separator)
	row("Diff Entries", white, meta.Entries)
	fmt.Fprintln(f.out, separator)
	row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintln(f.out, separator)
	row("Workers", white, meta.Workers)
	fmt.Fprintln(f.out, separator)
	row("Timestamp", white, meta.Timestamp)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Fprintln(f.out)
	if meta.Fixed > 0 {
		green.Fprintf(f.out, "✓ %d issue(s) fixed\n", meta.Fixed)
	}
	failing := meta.DriftedSpecs + meta.ErroredSpecs
	if failing == 0 {
		green.Fprintln(f.out, "✓ All test files match their specs!")
		return
	}
	red.Fprintf(f.out, "✗ %d spec(s) drifted, %d could not be checked\n", meta.DriftedSpecs, meta.ErroredSpecs)
	fmt.Fprintln(f.out)
	for _, result := range report.Details {
		if result.Conforms() && len(result.Entries) == 0 {
			continue
		}
		if err := f.PrintDrift(result); err != nil {
			red.Fprintf(f.out, "Error rendering %s: %v\n", result.TestPath, err)
		}
	}
}

// PrintDrift renders the entries of one result as a tree of scopes, rooted
// at the test file
func (f *Formatter) PrintDrift(result domain.CheckResult) error {
	label := f.relative(result.TestPath)
	if result.TestFileMissing {
		label += " (missing)"
	}
	root := gtree.NewRoot(label)

	if result.Errored() {
		message := result.ErrorMessage
		if message == "" && result.Error != nil {
			message = result.Error.Error()
		}
		root.Add(color.RedString("error: %s", message))
	}

	for _, entry := range result.Entries {
		node := root
		for _, id := range entry.Scope() {
			node = node.Add(id)
		}
		node.Add(EntryLabel(entry))
	}

	if err := gtree.OutputFromRoot(f.out, root); err != nil {
		return fmt.Errorf("render drift tree: %w", err)
	}
	fmt.Fprintln(f.out)
	return nil
}

// EntryLabel describes a diff entry relative to its scope
func EntryLabel(entry domain.DiffEntry) string {
	var text string
	switch entry.Kind {
	case domain.DiffMissing:
		text = fmt.Sprintf("- %s (missing %s)", entry.Name(), entry.Expected)
	case domain.DiffExtra:
		text = fmt.Sprintf("+ %s (unexpected %s)", entry.Name(), entry.Actual)
	case domain.DiffRenamed:
		text = fmt.Sprintf("~ %s -> %s (renamed)", entry.Expected, entry.Actual)
	case domain.DiffReordered:
		text = fmt.Sprintf("↕ %s (expected position %s, found %s)", entry.Name(), entry.Expected, entry.Actual)
	case domain.DiffKindMismatch:
		text = fmt.Sprintf("! %s (expected %s, found %s)", entry.Name(), entry.Expected, entry.Actual)
	default:
		text = entry.String()
	}
	if entry.Line > 0 {
		text += fmt.Sprintf(" line %d", entry.Line)
	}

	if entry.Severity == domain.SeverityWarning {
		return color.YellowString("%s", text)
	}
	return color.RedString("%s", text)
}

// PrintScaffoldSummary reports what scaffolding did for each spec
func (f *Formatter) PrintScaffoldSummary(results []domain.ScaffoldResult) {
	var written, skipped, failed int
	for _, result := range results {
		switch {
		case result.Error != nil:
			failed++
			color.New(color.FgRed).Fprintf(f.out, "✗ %s: %v\n", f.relative(result.TreePath), result.Error)
		case result.Skipped:
			skipped++
			color.New(color.FgYellow).Fprintf(f.out, "• %s exists, skipped (use --force to overwrite)\n", f.relative(result.TestPath))
		case result.Written:
			written++
			color.New(color.FgGreen).Fprintf(f.out, "✓ %s\n", f.relative(result.TestPath))
		}
	}

	fmt.Fprintln(f.out)
	color.New(color.FgCyan).Fprintf(f.out, "Scaffolded %d file(s), skipped %d, failed %d\n", written, skipped, failed)
}

// PrintSpecList prints a list of spec files, optionally with their trees and
// the identifier each scope receives
func (f *Formatter) PrintSpecList(specs []string, showTree bool) error {
	color.New(color.FgGreen).Fprintf(f.out, "Found %d spec file(s):\n\n", len(specs))

	if !showTree {
		for i, spec := range specs {
			connector := "├──"
			if i == len(specs)-1 {
				connector = "└──"
			}
			color.New(color.FgCyan).Fprintf(f.out, "%s %s\n", connector, f.relative(spec))
		}
		return nil
	}

	for i, spec := range specs {
		forest, err := treespec.Load(spec)
		if err != nil {
			color.New(color.FgRed).Fprintf(f.out, "Error reading spec file %s: %v\n", spec, err)
			continue
		}
		model, err := f.config.Strategy().Model(forest)
		if err != nil {
			color.New(color.FgRed).Fprintf(f.out, "Error in spec file %s: %v\n", spec, err)
			continue
		}

		root := gtree.NewRoot(color.CyanString("%s", f.relative(spec)))
		for _, scope := range model.Roots {
			addScope(root, scope)
		}
		if err := gtree.OutputFromRoot(f.out, root); err != nil {
			return fmt.Errorf("render spec tree: %w", err)
		}

		// Add spacing between files (except for the last one)
		if i < len(specs)-1 {
			fmt.Fprintln(f.out)
		}
	}
	return nil
}

func addScope(parent *gtree.Node, scope *domain.ModelNode) {
	description := strings.ReplaceAll(strings.TrimSpace(scope.Description), "\n", " ")
	label := fmt.Sprintf("%s %s", description, color.YellowString("[%s]", scope.Identifier))
	if description == "" {
		label = color.YellowString("[%s]", scope.Identifier)
	}
	node := parent.Add(label)
	for _, child := range scope.Children {
		addScope(node, child)
	}
}

// relative returns path relative to the project for cleaner display
func (f *Formatter) relative(path string) string {
	if f.config == nil || f.config.ProjectPath == "" {
		return path
	}
	rel, err := filepath.Rel(f.config.ProjectPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

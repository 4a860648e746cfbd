// Package emitter renders BTT trees as scaffolded Go test files: one
// top-level test function per root, one t.Run scope per branch and leaf.
package emitter

import (
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"

	"btt/internal/domain"
	"btt/internal/naming"
)

const (
	// RootPrefix starts the name of every top-level scaffolded test function
	RootPrefix = "Test_"
	// SkipMessage is the placeholder reason emitted into leaves with EmitSkip
	SkipMessage = "not implemented"
)

// Options controls the emitted source
type Options struct {
	PackageName        string // Package clause; derived from the first root when empty
	Source             string // Spec file name mentioned in the header comment
	EmitSkip           bool   // Emit t.Skip placeholders into leaves
	FormatDescriptions bool   // Capitalize and punctuate leaf descriptions
}

// Emitter renders trees as Go test source
type Emitter struct {
	options  Options
	strategy naming.Strategy
}

// NewEmitter creates a new Emitter
func NewEmitter(opts Options, strategy naming.Strategy) *Emitter {
	return &Emitter{
		options:  opts,
		strategy: strategy,
	}
}

// Emit renders the forest. The output is gofmt-formatted and depends only on
// the forest and the options, so emitting an unchanged tree twice yields the
// same bytes.
func (e *Emitter) Emit(forest domain.Forest) ([]byte, error) {
	model, err := e.strategy.Model(forest)
	if err != nil {
		return nil, err
	}

	pkg, err := e.packageName(model)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if e.options.Source != "" {
		fmt.Fprintf(&b, "// Scaffolded by btt from %s.\n\n", e.options.Source)
	} else {
		b.WriteString("// Scaffolded by btt.\n\n")
	}
	fmt.Fprintf(&b, "package %s\n\nimport \"testing\"\n", pkg)

	for _, root := range model.Roots {
		b.WriteString("\n")
		e.writeRoot(&b, root)
	}

	formatted, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("format emitted source: %w", err)
	}
	return formatted, nil
}

// RenderRoot renders one top-level test function, unformatted
func (e *Emitter) RenderRoot(root *domain.ModelNode) string {
	var b strings.Builder
	e.writeRoot(&b, root)
	return b.String()
}

// RenderScope renders one subtest called on param, unformatted
func (e *Emitter) RenderScope(scope *domain.ModelNode, param string) string {
	var b strings.Builder
	e.writeScope(&b, scope, param, 0)
	return b.String()
}

func (e *Emitter) writeRoot(b *strings.Builder, root *domain.ModelNode) {
	fmt.Fprintf(b, "func %s%s(t *testing.T) {\n", RootPrefix, root.Identifier)
	writeComment(b, root.Description, 1)
	for _, child := range root.Children {
		e.writeScope(b, child, "t", 1)
	}
	b.WriteString("}\n")
}

func (e *Emitter) writeScope(b *strings.Builder, scope *domain.ModelNode, param string, depth int) {
	indent := strings.Repeat("\t", depth)
	fmt.Fprintf(b, "%s%s.Run(%s, func(t *testing.T) {\n", indent, param, strconv.Quote(scope.Identifier))

	description := scope.Description
	if scope.Kind == domain.KindLeaf && e.options.FormatDescriptions {
		description = FormatDescription(description)
	}
	writeComment(b, description, depth+1)

	if scope.Kind == domain.KindLeaf {
		if e.options.EmitSkip {
			fmt.Fprintf(b, "%s\tt.Skip(%s)\n", indent, strconv.Quote(SkipMessage))
		}
	} else {
		for _, child := range scope.Children {
			e.writeScope(b, child, "t", depth+1)
		}
	}

	fmt.Fprintf(b, "%s})\n", indent)
}

func (e *Emitter) packageName(model *domain.Model) (string, error) {
	if e.options.PackageName != "" {
		if !token.IsIdentifier(e.options.PackageName) {
			return "", fmt.Errorf("invalid package name %q", e.options.PackageName)
		}
		return e.options.PackageName, nil
	}

	name := strings.ReplaceAll(model.Roots[0].Identifier, "_", "")
	if name == "" || token.IsKeyword(name) || !token.IsIdentifier(name) {
		name = "x" + name
	}
	return name, nil
}

// writeComment writes a description as line comments, one per line
func writeComment(b *strings.Builder, description string, depth int) {
	text := strings.TrimSpace(description)
	if text == "" {
		return
	}
	indent := strings.Repeat("\t", depth)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			fmt.Fprintf(b, "%s//\n", indent)
			continue
		}
		fmt.Fprintf(b, "%s// %s\n", indent, line)
	}
}

// FormatDescription capitalizes the first letter and ensures the text ends
// with terminal punctuation
func FormatDescription(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	runes := []rune(trimmed)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	formatted := string(runes)

	if strings.HasSuffix(formatted, ".") || strings.HasSuffix(formatted, "!") || strings.HasSuffix(formatted, "?") {
		return formatted
	}
	return formatted + "."
}

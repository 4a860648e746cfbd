package cli

import (
	"github.com/spf13/cobra"

	"btt/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ProjectPath        string
	Processors         int
	SpecPath           string
	Filter             string
	Verbose            bool
	Force              bool
	Stdout             bool
	EmitSkip           bool
	FormatDescriptions bool
	PackageName        string
	StripPrefixes      bool
	Reordered          string
	DetectRenames      bool
	JSON               bool
	FailFast           bool
	Open               bool
	Fix                bool
	Tree               bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors: f.Processors,
		Filter:     f.Filter,
		SpecPath:   f.SpecPath,
		Verbose:    f.Verbose,
		Force:      f.Force,
		Stdout:     f.Stdout,
		JSON:       f.JSON,
		FailFast:   f.FailFast,
		Open:       f.Open,
		Fix:        f.Fix,
		Tree:       f.Tree,
	}
}

// Apply loads the project configuration into cfg and layers the flags that
// were set explicitly on top of it
func (f *Flags) Apply(cmd *cobra.Command, cfg *config.Config) error {
	loaded, err := config.Load(f.ProjectPath)
	if err != nil {
		return err
	}

	loaded.Flags = f.ToConfigFlags()
	changed := cmd.Flags().Changed

	if changed("processors") && f.Processors > 0 {
		loaded.Processors = f.Processors
	}
	if changed("skip") {
		loaded.Emit.EmitSkip = f.EmitSkip
	}
	if changed("format-descriptions") {
		loaded.Emit.FormatDescriptions = f.FormatDescriptions
	}
	if changed("package") {
		loaded.Emit.PackageName = f.PackageName
	}
	if changed("strip-prefixes") {
		loaded.Naming.StripPrefixes = f.StripPrefixes
	}
	if changed("reordered") {
		loaded.Check.Reordered = f.Reordered
	}
	if changed("detect-renames") {
		loaded.Check.DetectRenames = f.DetectRenames
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	*cfg = *loaded
	return nil
}

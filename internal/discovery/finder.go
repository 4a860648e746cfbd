package discovery

import (
	"fmt"
	"os"
	"sort"

	"btt/internal/config"
)

// Finder resolves the spec files a command should process
type Finder struct {
	config *config.Config
	filter *Filter
}

// NewFinder creates a new Finder
func NewFinder(cfg *config.Config, filter *Filter) *Finder {
	return &Finder{
		config: cfg,
		filter: filter,
	}
}

// Find returns the explicitly named spec files, or scans the spec path when
// none are named. The name filter applies either way.
func (f *Finder) Find(args []string) ([]string, error) {
	var specs []string

	if len(args) > 0 {
		seen := make(map[string]bool, len(args))
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("spec file does not exist: %s", arg)
			}
			if info.IsDir() {
				found, err := f.scan(arg)
				if err != nil {
					return nil, err
				}
				for _, spec := range found {
					if !seen[spec] {
						seen[spec] = true
						specs = append(specs, spec)
					}
				}
				continue
			}
			if !seen[arg] {
				seen[arg] = true
				specs = append(specs, arg)
			}
		}
	} else {
		found, err := f.scan(f.config.GetSpecPath())
		if err != nil {
			return nil, err
		}
		specs = found
	}

	return f.filter.FilterByName(specs, f.config.Flags.Filter), nil
}

func (f *Finder) scan(root string) ([]string, error) {
	specs, err := NewScanner(f.config.PathsToIgnore, f.config.TreeSuffix).Scan(root)
	if err != nil {
		return nil, err
	}
	sort.Strings(specs)
	return specs, nil
}

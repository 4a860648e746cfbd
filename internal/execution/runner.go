package execution

import (
	"errors"
	"fmt"
	"os"
	"time"

	"btt/internal/config"
	"btt/internal/domain"
	"btt/internal/emitter"
	"btt/internal/extractor"
	"btt/internal/fixer"
	"btt/internal/treespec"
	"btt/internal/validator"
)

// Runner scaffolds or checks a single tree spec
type Runner struct {
	config    *config.Config
	extractor *extractor.Extractor
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		config:    cfg,
		extractor: extractor.NewExtractor(),
	}
}

// Check compares the test file paired with treePath against the tree. A
// missing test file is drift, not an error: every root is reported missing.
// With Fix set, repairable drift is fixed first and the result describes
// the fixed source.
func (r *Runner) Check(treePath string) domain.CheckResult {
	start := time.Now()
	result := domain.CheckResult{
		TreePath: treePath,
		TestPath: r.config.GetTestPath(treePath),
	}

	if err := r.check(&result); err != nil {
		result.Error = err
		result.ErrorMessage = err.Error()
	}
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) check(result *domain.CheckResult) error {
	forest, err := treespec.Load(result.TreePath)
	if err != nil {
		return err
	}

	expected, err := r.config.Strategy().Model(forest)
	if err != nil {
		return fmt.Errorf("%s: %w", result.TreePath, err)
	}

	policy, err := r.config.Policy()
	if err != nil {
		return err
	}
	compare := validator.New(policy)

	actual := &domain.Model{}
	src, err := os.ReadFile(result.TestPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.TestFileMissing = true
	case err != nil:
		return fmt.Errorf("read test file: %w", err)
	default:
		actual, err = r.extractor.Extract(result.TestPath, src)
		if err != nil {
			return fmt.Errorf("%s: %w", result.TestPath, err)
		}
	}

	diff, err := compare.Compare(expected, actual)
	if err != nil {
		return err
	}
	result.Entries = diff

	if !r.config.Flags.Fix || fixer.Fixable(diff) == 0 {
		return nil
	}
	return r.fix(result, forest, expected, src, compare)
}

// fix repairs the drift in result and compares the repaired source again
func (r *Runner) fix(result *domain.CheckResult, forest domain.Forest, expected *domain.Model, src []byte, compare *validator.Validator) error {
	em := emitter.NewEmitter(r.config.EmitOptions(result.TreePath), r.config.Strategy())

	var fixed []byte
	var err error
	if result.TestFileMissing {
		fixed, err = em.Emit(forest)
	} else {
		fixed, err = fixer.NewFixer(em).Fix(result.TestPath, src, expected, result.Entries)
	}
	if err != nil {
		return fmt.Errorf("fix %s: %w", result.TestPath, err)
	}

	actual, err := r.extractor.Extract(result.TestPath, fixed)
	if err != nil {
		return fmt.Errorf("%s: fixed source: %w", result.TestPath, err)
	}
	remaining, err := compare.Compare(expected, actual)
	if err != nil {
		return err
	}

	result.Fixed = fixer.Fixable(result.Entries)
	result.Entries = remaining
	result.Source = fixed

	if r.config.Flags.Stdout {
		return nil
	}
	if err := os.WriteFile(result.TestPath, fixed, 0644); err != nil {
		return fmt.Errorf("write test file: %w", err)
	}
	result.TestFileMissing = false
	return nil
}

// Scaffold emits the test file for treePath. An existing file is left
// untouched unless Force is set; with Stdout nothing is written.
func (r *Runner) Scaffold(treePath string) domain.ScaffoldResult {
	result := domain.ScaffoldResult{
		TreePath: treePath,
		TestPath: r.config.GetTestPath(treePath),
	}

	forest, err := treespec.Load(treePath)
	if err != nil {
		result.Error = err
		return result
	}

	source, err := emitter.NewEmitter(r.config.EmitOptions(treePath), r.config.Strategy()).Emit(forest)
	if err != nil {
		result.Error = fmt.Errorf("%s: %w", treePath, err)
		return result
	}
	result.Source = source

	if r.config.Flags.Stdout {
		return result
	}

	if _, err := os.Stat(result.TestPath); err == nil && !r.config.Flags.Force {
		result.Skipped = true
		return result
	}

	if err := os.WriteFile(result.TestPath, source, 0644); err != nil {
		result.Error = fmt.Errorf("write test file: %w", err)
		return result
	}
	result.Written = true
	return result
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bsthun/gut"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"btt/internal/domain"
	"btt/internal/emitter"
	"btt/internal/naming"
	"btt/internal/treespec"
	bttvalidator "btt/internal/validator"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"-"`
	SpecPath    string `yaml:"spec_path" validate:"required"`
	TreeSuffix  string `yaml:"tree_suffix" validate:"required"`
	TestSuffix  string `yaml:"test_suffix" validate:"required,endswith=_test.go"`

	// Output settings
	OutputJSONFile string `yaml:"output_json_file" validate:"required"`
	OutputJSONDir  string `yaml:"output_json_dir" validate:"required"`

	// Execution settings
	Processors int `yaml:"processors" validate:"min=1,max=256"`

	// Paths to ignore when scanning
	PathsToIgnore []string `yaml:"paths_to_ignore"`

	Naming NamingConfig `yaml:"naming"`
	Emit   EmitConfig   `yaml:"emit"`
	Check  CheckConfig  `yaml:"check"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// NamingConfig configures identifier derivation
type NamingConfig struct {
	MaxLength      int    `yaml:"max_length" validate:"min=8,max=255"`
	StripPrefixes  bool   `yaml:"strip_prefixes"`
	Placeholder    string `yaml:"placeholder" validate:"required,lowercase"`
	ReservedPrefix string `yaml:"reserved_prefix" validate:"required,lowercase"`
}

// EmitConfig configures emitted test files
type EmitConfig struct {
	PackageName        string `yaml:"package_name"`
	EmitSkip           bool   `yaml:"skip"`
	FormatDescriptions bool   `yaml:"format_descriptions"`
}

// CheckConfig configures the structural check
type CheckConfig struct {
	Reordered     string `yaml:"reordered" validate:"oneof=error warning off"`
	DetectRenames bool   `yaml:"detect_renames"`
}

// Flags holds command-line flags
type Flags struct {
	Processors int
	Filter     string
	SpecPath   string
	Verbose    bool

	// scaffold
	Force  bool
	Stdout bool

	// check
	JSON     bool
	FailFast bool
	Open     bool
	Fix      bool

	// list
	Tree bool
}

// New creates a new Config with defaults
func New() *Config {
	strategy := naming.Default()
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SpecPath:       DefaultSpecPath,
		TreeSuffix:     DefaultTreeSuffix,
		TestSuffix:     DefaultTestSuffix,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Naming: NamingConfig{
			MaxLength:      strategy.MaxLength,
			StripPrefixes:  strategy.StripPrefixes,
			Placeholder:    strategy.Placeholder,
			ReservedPrefix: strategy.ReservedPrefix,
		},
		Check: CheckConfig{
			Reordered: DefaultReordered,
		},
		Flags: Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load builds the configuration for a project: defaults, then the project's
// .env file, then .btt.yml, then BTT_* environment variables
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	envFile := filepath.Join(cfg.ProjectPath, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	configFile := filepath.Join(cfg.ProjectPath, DefaultConfigFile)
	if yml, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(yml, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", configFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its field constraints
func (c *Config) Validate() error {
	if err := gut.Validate(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var fields []string
			for _, fieldErr := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Namespace(), fieldErr.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, id := range []string{c.Naming.Placeholder, c.Naming.ReservedPrefix} {
		if !naming.IsIdentifier(id) {
			return fmt.Errorf("invalid configuration: %q is not a valid identifier fragment", id)
		}
	}
	if c.Emit.PackageName != "" && !naming.IsIdentifier(c.Emit.PackageName) {
		return fmt.Errorf("invalid configuration: package name %q is not a valid identifier", c.Emit.PackageName)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("SPEC_PATH"); ok {
		c.SpecPath = v
	}
	if v, ok := lookupEnv("PROCESSORS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPROCESSORS: %w", EnvPrefix, err)
		}
		c.Processors = n
		c.Flags.Processors = n
	}
	if v, ok := lookupEnv("REORDERED"); ok {
		c.Check.Reordered = v
	}
	if v, ok := lookupEnv("DETECT_RENAMES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDETECT_RENAMES: %w", EnvPrefix, err)
		}
		c.Check.DetectRenames = b
	}
	if v, ok := lookupEnv("STRIP_PREFIXES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSTRIP_PREFIXES: %w", EnvPrefix, err)
		}
		c.Naming.StripPrefixes = b
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// GetSpecPath returns the spec directory, using the flag if provided
func (c *Config) GetSpecPath() string {
	path := c.SpecPath
	if c.Flags.SpecPath != "" {
		path = c.Flags.SpecPath
	}
	// Relative spec paths are resolved against the project path
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectPath, path)
}

// GetOutputPath returns the full path to the check report, under the project
// so check and view always use the same file regardless of cwd
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetTestPath returns the test file paired with a tree spec
func (c *Config) GetTestPath(treePath string) string {
	return treespec.TestPathFor(treePath, c.TreeSuffix, c.TestSuffix)
}

// Strategy returns the naming strategy described by the configuration
func (c *Config) Strategy() naming.Strategy {
	return naming.Strategy{
		MaxLength:      c.Naming.MaxLength,
		StripPrefixes:  c.Naming.StripPrefixes,
		Placeholder:    c.Naming.Placeholder,
		ReservedPrefix: c.Naming.ReservedPrefix,
	}
}

// EmitOptions returns the emitter options for the given spec file
func (c *Config) EmitOptions(treePath string) emitter.Options {
	return emitter.Options{
		PackageName:        c.Emit.PackageName,
		Source:             filepath.Base(treePath),
		EmitSkip:           c.Emit.EmitSkip,
		FormatDescriptions: c.Emit.FormatDescriptions,
	}
}

// Policy returns the validator policy described by the configuration
func (c *Config) Policy() (bttvalidator.Policy, error) {
	severity, err := domain.ParseSeverity(c.Check.Reordered)
	if err != nil {
		return bttvalidator.Policy{}, err
	}
	return bttvalidator.Policy{
		Reordered:     severity,
		DetectRenames: c.Check.DetectRenames,
	}, nil
}

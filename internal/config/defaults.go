package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSpecPath is the default directory scanned for tree specs
	DefaultSpecPath = "."
	// DefaultTreeSuffix identifies tree spec files
	DefaultTreeSuffix = ".tree.yml"
	// DefaultTestSuffix replaces the tree suffix to name the paired test file
	DefaultTestSuffix = "_test.go"
	// DefaultConfigFile is the optional project configuration file
	DefaultConfigFile = ".btt.yml"
	// DefaultOutputJSONFile is the default check report file name
	DefaultOutputJSONFile = "check-report.json"
	// DefaultOutputJSONDir is the default report directory
	DefaultOutputJSONDir = ".btt"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
	// DefaultReordered is the default severity of reordered scopes
	DefaultReordered = "error"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "BTT_"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for specs
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
}

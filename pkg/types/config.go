package types

// OutputFormat selects the report output format.
type OutputFormat string

const (
	OutputMarkdown OutputFormat = "markdown"
	OutputHTML     OutputFormat = "html"
)

// ReportConfig holds settings for the report stage.
type ReportConfig struct {
	// Format selects the output format: markdown or html.
	Format OutputFormat `json:"format" yaml:"format"`

	// OutputPath is the report destination file. Empty means stdout.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
}

// IndexConfig holds settings for the SQLite index stage.
type IndexConfig struct {
	// DataDir is the base directory for the index (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Report ReportConfig `json:"report" yaml:"report"`
	Index  IndexConfig  `json:"index" yaml:"index"`
}

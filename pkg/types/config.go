package types

// ParserConfig holds settings for normalization and document splitting.
type ParserConfig struct {
	// EntitiesFile is an optional YAML file of entity replacements
	// merged over the built-in table. Entries in the file win.
	EntitiesFile string `json:"entities_file" yaml:"entities_file"`

	// BufferSize is the scanner read-chunk size in bytes (default 64 KiB).
	BufferSize int `json:"buffer_size" yaml:"buffer_size"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// OutputDir is the directory for exported files (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Formats selects which exports to write: csv, json, yaml, xlsx.
	Formats []string `json:"formats" yaml:"formats"`

	// StripMarkup controls whether residual tags and entity codes are
	// removed from claim and abstract text at export time. The records
	// themselves always keep the captured text verbatim.
	StripMarkup bool `json:"strip_markup" yaml:"strip_markup"`
}

// StoreConfig holds settings for the grant archive.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "grants.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parser ParserConfig `json:"parser" yaml:"parser"`
	Export ExportConfig `json:"export" yaml:"export"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
